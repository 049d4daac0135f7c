package main

import (
	"io"

	"github.com/darkkaiser/catalog-sync/internal/catalog/feed"
	"github.com/darkkaiser/catalog-sync/internal/catalog/shopify"
	"github.com/darkkaiser/catalog-sync/internal/catalog/syncrun"
	"github.com/darkkaiser/catalog-sync/internal/config"
	"github.com/darkkaiser/catalog-sync/internal/pkg/version"
	"github.com/darkkaiser/catalog-sync/internal/service"
	"github.com/darkkaiser/catalog-sync/internal/service/api"
	"github.com/darkkaiser/catalog-sync/internal/service/notification"
	"github.com/darkkaiser/catalog-sync/internal/service/scheduler"
	"github.com/darkkaiser/catalog-sync/internal/service/settings"
	applog "github.com/darkkaiser/catalog-sync/pkg/log"
)

var (
	_ service.Service = (*syncrun.Service)(nil)
	_ service.Service = (*scheduler.Scheduler)(nil)
	_ service.Service = (*api.Service)(nil)
)

// application 설정으로부터 조립된 구성 요소 묶음입니다.
type application struct {
	cfg *config.AppConfig

	store    *settings.Store
	metrics  *syncrun.Metrics
	notifier notification.Notifier

	runner      *syncrun.Runner
	syncService *syncrun.Service
}

// newApplication 설정에 따라 피드, 원격 카탈로그, 설정 저장소, 알림을 연결한 실행기를 만듭니다.
func newApplication(cfg *config.AppConfig) (*application, error) {
	store, err := settings.Open(cfg.Settings.Path)
	if err != nil {
		return nil, err
	}

	notifier, err := notification.New(notificationConfig(cfg))
	if err != nil {
		return nil, err
	}

	metrics := syncrun.NewMetrics()

	client := shopify.NewClient(cfg.Shopify.ClientConfig(), shopify.WithObserver(metrics))

	deps := syncrun.Deps{
		Feed:     feed.NewFTPSource(cfg.Feed.FTP.SourceConfig()),
		Settings: store,
		Catalog:  shopify.NewAPI(client),
		Notifier: notifier,
		Metrics:  metrics,
	}
	if cfg.Enrichment.Path != "" {
		deps.Enrichment = feed.ExcelEnrichment{Path: cfg.Enrichment.Path}
	}

	runner := syncrun.New(syncrun.Config{
		Delimiter:        cfg.Feed.DelimiterRune(),
		FallbackEncoding: cfg.Feed.FallbackEncoding,
		GroupKeyField:    cfg.Feed.GroupKeyField,
		OptionFields:     cfg.Feed.OptionFields,
		LocationID:       cfg.Shopify.LocationID,
		Location:         cfg.Location(),
	}, deps)

	return &application{
		cfg: cfg,

		store:    store,
		metrics:  metrics,
		notifier: notifier,

		runner:      runner,
		syncService: syncrun.NewService(runner),
	}, nil
}

// services 시작 순서대로 정렬된 서비스 목록을 반환합니다.
func (a *application) services(buildInfo version.Info) []service.Service {
	services := []service.Service{a.syncService}

	if a.cfg.Scheduler.Enabled {
		services = append(services, scheduler.NewService(a.cfg.Scheduler.Spec, a.cfg.Location(), a.runner))
	}

	services = append(services, api.NewService(api.Config{
		HTTPServerConfig: api.HTTPServerConfig{
			Debug:              a.cfg.Debug,
			AllowOrigins:       a.cfg.Web.AllowOrigins,
			RequestTimeout:     a.cfg.Web.RequestTimeout,
			RateLimitPerSecond: a.cfg.Web.RateLimitPerSecond,
			RateLimitBurst:     a.cfg.Web.RateLimitBurst,
		},
		ListenPort: a.cfg.Web.ListenPort,
	}, api.Deps{
		Sync:     a.syncService,
		Runner:   a.runner,
		Settings: a.store,
		Metrics:  a.metrics,
		Notifier: a.notifier,

		BuildInfo: buildInfo,
	}))

	return services
}

func notificationConfig(cfg *config.AppConfig) notification.Config {
	nc := notification.Config{Debug: cfg.Debug}

	if t := cfg.Notifier.Telegram; t.Enabled {
		nc.Telegram = &notification.TelegramConfig{
			BotToken: t.BotToken,
			ChatID:   t.ChatID,
		}
	}

	return nc
}

// setupLogging 로그 시스템을 초기화합니다. console이 true이면 표준 출력에도 기록합니다.
func setupLogging(cfg *config.AppConfig, console bool) (io.Closer, error) {
	var opts applog.Options
	if cfg.Debug {
		opts = applog.NewDevelopmentOptions(config.AppName)
	} else {
		opts = applog.NewProductionOptions(config.AppName)
	}

	opts.Dir = cfg.Log.Dir
	opts.MaxAge = cfg.Log.MaxAge
	if console {
		opts.EnableConsoleLog = true
	}

	closer, err := applog.Setup(opts)
	if err != nil {
		return nil, err
	}

	applog.SetDebugMode(cfg.Debug)

	return closer, nil
}
