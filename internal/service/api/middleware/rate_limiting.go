package middleware

import (
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/darkkaiser/catalog-sync/internal/service/api/constants"
	applog "github.com/darkkaiser/catalog-sync/pkg/log"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter IP 주소별 토큰 버킷을 관리합니다.
//
// idleTTL 동안 요청이 없던 IP는 다음 정리 시점에 제거됩니다. 정리는 요청 처리 중에
// 최대 idleTTL마다 한 번 수행됩니다.
type ipRateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time

	rate    rate.Limit
	burst   int
	idleTTL time.Duration

	now func() time.Time
}

func newIPRateLimiter(requestsPerSecond int, burst int, idleTTL time.Duration) *ipRateLimiter {
	return &ipRateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// allow ip의 요청을 허용할지 결정합니다. 거절하면 다음 토큰까지 기다려야 하는 시간을 함께 반환합니다.
func (l *ipRateLimiter) allow(ip string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now

	r := v.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, time.Second
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}

	return true, 0
}

func (l *ipRateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.idleTTL {
		return
	}
	l.lastSweep = now

	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) >= l.idleTTL {
			delete(l.visitors, ip)
		}
	}
}

func (l *ipRateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.visitors)
}

// retryAfterSeconds Retry-After 헤더 값(초, 최소 1)을 만듭니다.
func retryAfterSeconds(d time.Duration) string {
	return strconv.Itoa(int(math.Max(1, math.Ceil(d.Seconds()))))
}

// RateLimiting IP 기반 속도 제한 미들웨어를 반환합니다.
//
// 제한을 넘으면 다음 토큰까지 남은 시간(초)을 Retry-After 헤더에 담아 429를 반환합니다.
// requestsPerSecond 또는 burst가 0 이하이면 panic이 발생합니다.
func RateLimiting(requestsPerSecond int, burst int) echo.MiddlewareFunc {
	if requestsPerSecond <= 0 {
		panic(fmt.Sprintf(constants.PanicMsgRateLimitRequestsPerSecondInvalid, requestsPerSecond))
	}
	if burst <= 0 {
		panic(fmt.Sprintf(constants.PanicMsgRateLimitBurstInvalid, burst))
	}

	return rateLimitingWith(newIPRateLimiter(requestsPerSecond, burst, constants.DefaultRateLimitIdleTTL))
}

func rateLimitingWith(limiter *ipRateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			allowed, wait := limiter.allow(ip)
			if !allowed {
				applog.WithComponentAndFields(constants.ComponentMiddlewareRateLimit, applog.Fields{
					"remote_ip": ip,
					"path":      c.Request().URL.Path,
					"method":    c.Request().Method,
					"wait":      wait.String(),
				}).Warn(constants.LogMsgRateLimitExceeded)

				c.Response().Header().Set(echo.HeaderRetryAfter, retryAfterSeconds(wait))

				return ErrRateLimitExceeded
			}

			return next(c)
		}
	}
}
