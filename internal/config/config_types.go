package config

import (
	"fmt"
	"time"

	"github.com/darkkaiser/catalog-sync/internal/catalog/feed"
	"github.com/darkkaiser/catalog-sync/internal/catalog/product"
	"github.com/darkkaiser/catalog-sync/internal/catalog/shopify"
	"github.com/darkkaiser/catalog-sync/internal/catalog/syncrun"
	apperrors "github.com/darkkaiser/catalog-sync/internal/pkg/errors"
	"github.com/darkkaiser/catalog-sync/internal/pkg/validator"
	"github.com/darkkaiser/catalog-sync/internal/service/api/constants"
	"github.com/darkkaiser/catalog-sync/internal/service/settings"
	"github.com/darkkaiser/catalog-sync/pkg/cronx"
)

// AppConfig 애플리케이션의 모든 설정을 관장하는 최상위 루트 구조체
type AppConfig struct {
	Debug      bool             `json:"debug"`
	Timezone   string           `json:"timezone" validate:"required,timezone" korean:"timezone"`
	Shopify    ShopifyConfig    `json:"shopify"`
	Feed       FeedConfig       `json:"feed"`
	Enrichment EnrichmentConfig `json:"enrichment"`
	Settings   SettingsConfig   `json:"settings"`
	Scheduler  SchedulerConfig  `json:"scheduler"`
	Notifier   NotifierConfig   `json:"notifier"`
	Web        WebConfig        `json:"web"`
	Log        LogConfig        `json:"log"`
}

// ShopifyConfig 원격 카탈로그 접속 설정
type ShopifyConfig struct {
	Store       string `json:"store" validate:"required_without=BaseURL" korean:"shopify.store"`
	AccessToken string `json:"access_token" validate:"required" korean:"shopify.access_token"`
	APIVersion  string `json:"api_version" validate:"required" korean:"shopify.api_version"`
	BaseURL     string `json:"base_url" validate:"omitempty,url" korean:"shopify.base_url"`

	// LocationID 재고 수량을 기록할 창고(location) ID
	LocationID int64 `json:"location_id" validate:"gt=0" korean:"shopify.location_id"`

	MinInterval     time.Duration `json:"min_interval" validate:"gte=0" korean:"shopify.min_interval"`
	MaxAttempts     int           `json:"max_attempts" validate:"min=1" korean:"shopify.max_attempts"`
	RetryAfter      time.Duration `json:"retry_after" validate:"gt=0" korean:"shopify.retry_after"`
	ConflictBackoff time.Duration `json:"conflict_backoff" validate:"gt=0" korean:"shopify.conflict_backoff"`
	RequestTimeout  time.Duration `json:"request_timeout" validate:"gt=0" korean:"shopify.request_timeout"`
}

// ClientConfig shopify.Client 설정으로 변환합니다.
func (c ShopifyConfig) ClientConfig() shopify.Config {
	return shopify.Config{
		Store:             c.Store,
		AccessToken:       c.AccessToken,
		APIVersion:        c.APIVersion,
		BaseURL:           c.BaseURL,
		MinInterval:       c.MinInterval,
		MaxAttempts:       c.MaxAttempts,
		DefaultRetryAfter: c.RetryAfter,
		ConflictBackoff:   c.ConflictBackoff,
		RequestTimeout:    c.RequestTimeout,
	}
}

// FeedConfig 상품 피드 파일 설정
type FeedConfig struct {
	FTP              FTPConfig `json:"ftp"`
	Delimiter        string    `json:"delimiter" validate:"len=1" korean:"feed.delimiter"`
	FallbackEncoding string    `json:"fallback_encoding" validate:"required" korean:"feed.fallback_encoding"`
	GroupKeyField    string    `json:"group_key_field" validate:"required" korean:"feed.group_key_field"`
	OptionFields     []string  `json:"option_fields" validate:"min=1,dive,required" korean:"feed.option_fields"`
}

// FTPConfig 피드 파일을 가져올 FTP 서버 설정
type FTPConfig struct {
	Host     string        `json:"host" validate:"required" korean:"feed.ftp.host"`
	User     string        `json:"user" korean:"feed.ftp.user"`
	Password string        `json:"password" korean:"feed.ftp.password"`
	Path     string        `json:"path" validate:"required" korean:"feed.ftp.path"`
	Timeout  time.Duration `json:"timeout" validate:"gt=0" korean:"feed.ftp.timeout"`
}

// SourceConfig feed.FTPConfig로 변환합니다.
func (c FTPConfig) SourceConfig() feed.FTPConfig {
	return feed.FTPConfig{
		Host:     c.Host,
		User:     c.User,
		Password: c.Password,
		Path:     c.Path,
		Timeout:  c.Timeout,
	}
}

// EnrichmentConfig 보강 스프레드시트 설정. Path가 비어 있으면 보강 없이 동기화합니다.
type EnrichmentConfig struct {
	Path string `json:"path" korean:"enrichment.path"`
}

// SettingsConfig 동기화 설정 파일 위치
type SettingsConfig struct {
	Path string `json:"path" validate:"required" korean:"settings.path"`
}

// SchedulerConfig 예약 동기화 설정
type SchedulerConfig struct {
	Enabled bool   `json:"enabled"`
	Spec    string `json:"spec" validate:"required_if=Enabled true" korean:"scheduler.spec"`
}

// NotifierConfig 실행 결과 알림 설정
type NotifierConfig struct {
	Telegram TelegramConfig `json:"telegram"`
}

// TelegramConfig 텔레그램 알림 설정
type TelegramConfig struct {
	Enabled  bool   `json:"enabled"`
	BotToken string `json:"bot_token" validate:"required_if=Enabled true" korean:"notifier.telegram.bot_token"`
	ChatID   int64  `json:"chat_id" validate:"required_if=Enabled true" korean:"notifier.telegram.chat_id"`
}

// WebConfig 웹 화면과 API 서버 설정
type WebConfig struct {
	ListenPort         int           `json:"listen_port" validate:"min=1,max=65535" korean:"web.listen_port"`
	AllowOrigins       []string      `json:"allow_origins" validate:"min=1,dive,cors_origin" korean:"web.allow_origins"`
	RequestTimeout     time.Duration `json:"request_timeout" validate:"gt=0" korean:"web.request_timeout"`
	RateLimitPerSecond int           `json:"rate_limit_per_second" validate:"min=1" korean:"web.rate_limit_per_second"`
	RateLimitBurst     int           `json:"rate_limit_burst" validate:"min=1" korean:"web.rate_limit_burst"`
}

// LogConfig 로그 파일 설정
type LogConfig struct {
	Dir    string `json:"dir" korean:"log.dir"`
	MaxAge int    `json:"max_age" validate:"gte=0" korean:"log.max_age"`
}

// newDefaultConfig 설정 파일과 환경 변수가 덮어쓰기 전의 기본값입니다.
func newDefaultConfig() AppConfig {
	return AppConfig{
		Timezone: syncrun.DefaultTimezone,
		Shopify: ShopifyConfig{
			APIVersion:      shopify.DefaultAPIVersion,
			MinInterval:     shopify.DefaultMinInterval,
			MaxAttempts:     shopify.DefaultMaxAttempts,
			RetryAfter:      shopify.DefaultRetryAfter,
			ConflictBackoff: shopify.DefaultConflictBackoff,
			RequestTimeout:  shopify.DefaultRequestTimeout,
		},
		Feed: FeedConfig{
			FTP: FTPConfig{
				Path:    feed.DefaultFTPPath,
				Timeout: 30 * time.Second,
			},
			Delimiter:        string(feed.DefaultDelimiter),
			FallbackEncoding: feed.DefaultFallbackEncoding,
			GroupKeyField:    product.FieldArticul,
			OptionFields:     append([]string{}, product.DefaultOptionCandidates...),
		},
		Settings: SettingsConfig{
			Path: settings.DefaultFile,
		},
		Scheduler: SchedulerConfig{
			Spec: "0 0 */6 * * *",
		},
		Web: WebConfig{
			ListenPort:         constants.DefaultListenPort,
			AllowOrigins:       []string{"*"},
			RequestTimeout:     constants.DefaultRequestTimeout,
			RateLimitPerSecond: constants.DefaultRateLimitPerSecond,
			RateLimitBurst:     constants.DefaultRateLimitBurst,
		},
		Log: LogConfig{
			Dir:    "logs",
			MaxAge: 30,
		},
	}
}

// validate 태그 기반 검증 후, 태그로 표현할 수 없는 규칙을 검사합니다.
func (c *AppConfig) validate() error {
	if err := validator.Struct(c); err != nil {
		return apperrors.New(apperrors.InvalidInput, validator.FormatValidationError(err))
	}

	if c.Scheduler.Enabled {
		if err := cronx.Validate(c.Scheduler.Spec); err != nil {
			return apperrors.Wrapf(err, apperrors.InvalidInput, "스케줄러(scheduler.spec) 설정이 유효하지 않습니다: '%s'", c.Scheduler.Spec)
		}
	}

	for _, origin := range c.Web.AllowOrigins {
		if origin == "*" && len(c.Web.AllowOrigins) > 1 {
			return apperrors.New(apperrors.InvalidInput, "와일드카드(*)는 다른 도메인과 함께 사용할 수 없습니다. 모든 도메인을 허용하려면 와일드카드만 설정하세요")
		}
	}

	return nil
}

// Location Timezone을 *time.Location으로 변환합니다.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DelimiterRune 피드 구분 문자를 반환합니다.
func (c FeedConfig) DelimiterRune() rune {
	for _, r := range c.Delimiter {
		return r
	}
	return feed.DefaultDelimiter
}

// VerifyRecommendations 강제하지는 않지만 권장되지 않는 설정에 대한 경고 메시지를 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	if c.Web.ListenPort < 1024 {
		warnings = append(warnings, fmt.Sprintf("시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다(port: %d). 이 경우 서버 구동 시 관리자 권한이 필요할 수 있습니다", c.Web.ListenPort))
	}
	if c.Shopify.MinInterval < shopify.DefaultMinInterval {
		warnings = append(warnings, fmt.Sprintf("원격 API 호출 간격(shopify.min_interval=%s)이 권장값(%s)보다 짧아 429 응답이 늘어날 수 있습니다", c.Shopify.MinInterval, shopify.DefaultMinInterval))
	}
	if c.Feed.FTP.User == "" {
		warnings = append(warnings, "FTP 사용자(feed.ftp.user)가 설정되지 않아 익명으로 접속합니다")
	}

	return warnings
}
