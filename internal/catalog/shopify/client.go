// Package shopify 원격 카탈로그(Shopify Admin REST API)와 통신하는 클라이언트를 제공합니다.
//
// Client는 호출 간격 제한, 429/잠금 409 재시도를 담당하고,
// API는 동기화 엔진이 필요로 하는 엔드포인트를 타입이 있는 메서드로 감쌉니다.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/catalog-sync/internal/pkg/errors"
	applog "github.com/darkkaiser/catalog-sync/pkg/log"
	"github.com/tidwall/gjson"
)

const component = "catalog.shopify"

const (
	// DefaultAPIVersion 기본 Admin API 버전
	DefaultAPIVersion = "2024-01"

	DefaultMaxAttempts     = 3
	DefaultRetryAfter      = 2 * time.Second
	DefaultConflictBackoff = 500 * time.Millisecond
	DefaultRequestTimeout  = 120 * time.Second
)

const (
	maxResponseBodySize = 10 << 20

	retryReasonRateLimited  = "rate_limited"
	retryReasonEntityLocked = "entity_locked"

	accessTokenHeader = "X-Shopify-Access-Token"
	contentTypeJSON   = "application/json"
)

// Config Client 설정입니다.
type Config struct {
	// Store 상점 이름 (<store>.myshopify.com)
	Store       string
	AccessToken string
	APIVersion  string

	// BaseURL 지정하면 https://<store>.myshopify.com 대신 사용합니다.
	BaseURL string

	MinInterval       time.Duration
	MaxAttempts       int
	DefaultRetryAfter time.Duration
	ConflictBackoff   time.Duration
	RequestTimeout    time.Duration
}

// Observer 물리적 호출과 재시도를 관찰합니다. 메트릭 수집에 사용됩니다.
type Observer interface {
	ObserveRequest(method string, statusCode int, elapsed time.Duration)
	ObserveRetry(reason string)
}

// Response 본문을 모두 읽은 원격 응답입니다.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// IsSuccess 2xx 응답인지 확인합니다.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// JSON 본문을 gjson으로 파싱합니다.
func (r *Response) JSON() gjson.Result {
	return gjson.ParseBytes(r.Body)
}

// Option Client 생성 옵션입니다.
type Option func(*Client)

// WithHTTPClient 사용할 http.Client를 지정합니다.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithClock 대기와 시각 조회에 사용할 Clock을 지정합니다.
func WithClock(clock Clock) Option {
	return func(c *Client) { c.clock = clock }
}

// WithObserver 호출 관찰자를 지정합니다.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithThrottle 다른 Client와 공유할 Throttle을 지정합니다.
func WithThrottle(t *Throttle) Option {
	return func(c *Client) { c.throttle = t }
}

// Client 간격 제한과 재시도를 적용하는 원격 API 클라이언트입니다.
type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
	clock      Clock
	throttle   *Throttle
	observer   Observer
}

// NewClient Client를 생성합니다. 설정하지 않은 값은 기본값으로 채워집니다.
func NewClient(cfg Config, opts ...Option) *Client {
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.DefaultRetryAfter <= 0 {
		cfg.DefaultRetryAfter = DefaultRetryAfter
	}
	if cfg.ConflictBackoff <= 0 {
		cfg.ConflictBackoff = DefaultConflictBackoff
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	c := &Client{cfg: cfg, clock: SystemClock{}}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: cfg.RequestTimeout}
	}
	if c.throttle == nil {
		c.throttle = NewThrottle(cfg.MinInterval, c.clock)
	}

	c.baseURL = strings.TrimRight(cfg.BaseURL, "/")
	if c.baseURL == "" {
		c.baseURL = fmt.Sprintf("https://%s.myshopify.com", cfg.Store)
	}

	return c
}

// URL Admin API 경로(예: "products.json")를 전체 URL로 변환합니다.
func (c *Client) URL(path string) string {
	return fmt.Sprintf("%s/admin/api/%s/%s", c.baseURL, c.cfg.APIVersion, strings.TrimLeft(path, "/"))
}

// Send 요청을 보내고 응답을 반환합니다.
//
// 429 응답은 Retry-After(없으면 기본값)만큼, 잠금 409 응답은 ConflictBackoff × 시도 횟수만큼
// 대기한 뒤 MaxAttempts까지 다시 시도합니다. 시도를 모두 소진하면 마지막 응답을 그대로 반환하며,
// 상태 코드의 해석은 호출자의 몫입니다. 응답 자체를 받지 못한 전송 오류는 재시도하지 않습니다.
func (c *Client) Send(ctx context.Context, method, url string, body any) (*Response, error) {
	for attempt := 1; ; attempt++ {
		resp, err := c.do(ctx, method, url, body)
		if err != nil {
			return nil, err
		}

		var delay time.Duration
		var reason string

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			reason = retryReasonRateLimited
			delay = c.cfg.DefaultRetryAfter
			if d, ok := parseRetryAfter(resp.Header.Get("Retry-After"), c.clock.Now()); ok {
				delay = d
			}

		case isEntityLocked(resp):
			reason = retryReasonEntityLocked
			delay = c.cfg.ConflictBackoff * time.Duration(attempt)

		default:
			return resp, nil
		}

		if attempt >= c.cfg.MaxAttempts {
			applog.WithComponentAndFields(component, applog.Fields{
				"method":       method,
				"url":          redactURL(url),
				"status_code":  resp.StatusCode,
				"attempts":     attempt,
				"retry_reason": reason,
			}).Warn("재시도 횟수를 모두 소진하여 마지막 응답을 반환합니다")

			return resp, nil
		}

		applog.WithComponentAndFields(component, applog.Fields{
			"method":       method,
			"url":          redactURL(url),
			"status_code":  resp.StatusCode,
			"attempt":      attempt,
			"max_attempts": c.cfg.MaxAttempts,
			"retry_reason": reason,
			"delay":        delay.String(),
		}).Warn("재시도 대기 중: 원격 서버의 일시적 거부로 요청을 다시 시도합니다")

		if c.observer != nil {
			c.observer.ObserveRetry(reason)
		}

		if err := c.clock.Sleep(ctx, delay); err != nil {
			return nil, apperrors.Wrap(err, apperrors.Unavailable, "재시도 대기 중 요청이 취소되었습니다")
		}
	}
}

// do 간격 제한을 지킨 뒤 물리적 호출 한 번을 수행합니다.
func (c *Client) do(ctx context.Context, method, url string, body any) (*Response, error) {
	if err := c.throttle.Wait(ctx); err != nil {
		return nil, apperrors.Wrap(err, apperrors.Unavailable, "호출 간격 대기 중 요청이 취소되었습니다")
	}

	// 재시도마다 본문을 새로 인코딩합니다.
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.Internal, "요청 본문을 JSON으로 인코딩하지 못했습니다")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "요청을 생성하지 못했습니다: %s %s", method, redactURL(url))
	}
	req.Header.Set(accessTokenHeader, c.cfg.AccessToken)
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", contentTypeJSON)

	start := c.clock.Now()
	httpResp, err := c.httpClient.Do(req)
	c.throttle.Mark()
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.Unavailable, "원격 서버에 요청하지 못했습니다: %s %s", method, redactURL(url))
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBodySize))
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.Unavailable, "응답 본문을 읽지 못했습니다: %s %s", method, redactURL(url))
	}

	elapsed := c.clock.Now().Sub(start)

	applog.WithComponentAndFields(component, applog.Fields{
		"method":      method,
		"url":         redactURL(url),
		"status_code": httpResp.StatusCode,
		"duration":    elapsed.String(),
		"body_size":   len(data),
	}).Debug("원격 API 호출 완료")

	if c.observer != nil {
		c.observer.ObserveRequest(method, httpResp.StatusCode, elapsed)
	}

	return &Response{StatusCode: httpResp.StatusCode, Header: httpResp.Header, Body: data}, nil
}

// parseRetryAfter Retry-After 헤더(초 단위 정수 또는 HTTP-date)를 해석합니다.
func parseRetryAfter(value string, now time.Time) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	var seconds float64
	if _, err := fmt.Sscanf(value, "%g", &seconds); err == nil && seconds >= 0 {
		return time.Duration(seconds * float64(time.Second)), true
	}

	if date, err := http.ParseTime(value); err == nil {
		d := date.Sub(now)
		if d < 0 {
			d = 0
		}
		return d, true
	}

	return 0, false
}
