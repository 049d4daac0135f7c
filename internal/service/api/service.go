package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/darkkaiser/catalog-sync/internal/catalog/syncrun"
	"github.com/darkkaiser/catalog-sync/internal/pkg/version"
	"github.com/darkkaiser/catalog-sync/internal/service/api/constants"
	"github.com/darkkaiser/catalog-sync/internal/service/api/handler/system"
	v1 "github.com/darkkaiser/catalog-sync/internal/service/api/v1"
	v1handler "github.com/darkkaiser/catalog-sync/internal/service/api/v1/handler"
	"github.com/darkkaiser/catalog-sync/internal/service/api/web"
	"github.com/darkkaiser/catalog-sync/internal/service/notification"
	"github.com/darkkaiser/catalog-sync/internal/service/settings"
	applog "github.com/darkkaiser/catalog-sync/pkg/log"
	"github.com/labstack/echo/v4"
)

// Config API 서비스 설정입니다.
type Config struct {
	HTTPServerConfig

	// ListenPort 0이면 constants.DefaultListenPort
	ListenPort int
}

// Deps API 서비스가 사용하는 구성 요소입니다. Metrics는 생략할 수 있습니다.
type Deps struct {
	Sync     *syncrun.Service
	Runner   *syncrun.Runner
	Settings *settings.Store
	Metrics  *syncrun.Metrics
	Notifier notification.Notifier

	BuildInfo version.Info
}

// Service 웹 화면, JSON API, 시스템 엔드포인트를 제공하는 HTTP 서버의 생명주기를 관리합니다.
//
// Start로 시작하고 serviceStopCtx 취소로 종료됩니다. 종료 시 5초 동안 Graceful Shutdown을 시도합니다.
// HTTP 서버가 예기치 않게 종료되면 Notifier로 운영자에게 알립니다.
type Service struct {
	cfg  Config
	deps Deps

	running   bool
	runningMu sync.Mutex
}

// NewService Service 인스턴스를 생성합니다.
func NewService(cfg Config, deps Deps) *Service {
	if deps.Sync == nil {
		panic(constants.PanicMsgSyncServiceRequired)
	}
	if deps.Runner == nil {
		panic(constants.PanicMsgRunStatusRequired)
	}
	if deps.Settings == nil {
		panic(constants.PanicMsgSettingsStoreRequired)
	}
	if deps.Notifier == nil {
		panic(constants.PanicMsgNotifierRequired)
	}

	if cfg.ListenPort <= 0 {
		cfg.ListenPort = constants.DefaultListenPort
	}

	return &Service{
		cfg:  cfg,
		deps: deps,
	}
}

// Start API 서비스를 시작합니다.
//
// 호출자는 Start 이전에 serviceStopWG.Add(1)을 호출해야 합니다.
// 서버 구성에 실패하면 에러를 반환하며, 이 경우에도 serviceStopWG.Done()이 호출됩니다.
// 실제 서버는 고루틴에서 실행되고 이 함수는 즉시 반환됩니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarting)

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn(constants.LogMsgServiceAlreadyStarted)
		return nil
	}

	e, err := s.setupServer()
	if err != nil {
		serviceStopWG.Done()
		return err
	}

	s.running = true

	go s.runServiceLoop(serviceStopCtx, serviceStopWG, e)

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port": s.cfg.ListenPort,
	}).Info(constants.LogMsgServiceStarted)

	return nil
}

func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup, e *echo.Echo) {
	defer serviceStopWG.Done()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

// setupServer Echo 서버를 생성하고 핸들러와 라우트를 등록합니다.
//
//  1. 핸들러 생성 (system, v1, web)
//  2. Echo 서버 생성 (미들웨어 체인 포함)
//  3. 라우트 등록 (시스템/Swagger, /api/v1, HTML 화면)
func (s *Service) setupServer() (*echo.Echo, error) {
	var metricsHandler http.Handler
	if s.deps.Metrics != nil {
		metricsHandler = s.deps.Metrics.Handler()
	}

	// 1. 핸들러 생성
	systemHandler := system.NewHandler(s.deps.Runner, s.deps.Settings.Path(), metricsHandler, s.deps.BuildInfo)
	v1Handler := v1handler.NewHandler(s.deps.Sync, s.deps.Runner)
	webHandler := web.NewHandler(s.deps.Settings, s.deps.Sync, s.deps.Runner)

	// 2. Echo 서버 생성
	e := NewHTTPServer(s.cfg.HTTPServerConfig)

	// 3. 라우트 등록
	RegisterRoutes(e, systemHandler)
	v1.RegisterRoutes(e, v1Handler)
	if err := web.RegisterRoutes(e, webHandler); err != nil {
		return nil, newErrServerSetup(err)
	}

	return e, nil
}

// startHTTPServer HTTP 서버를 시작합니다. 서버가 종료되면 done 채널을 닫습니다.
func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port": s.cfg.ListenPort,
	}).Debug(constants.LogMsgServiceHTTPServerStarting)

	err := e.Start(fmt.Sprintf(":%d", s.cfg.ListenPort))

	s.handleServerError(err)
}

// handleServerError HTTP 서버가 반환한 에러를 처리합니다.
//
//   - http.ErrServerClosed: Graceful Shutdown이므로 Info 레벨로 기록
//   - 그 외: Error 레벨로 기록하고 운영자에게 알림
func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceHTTPServerStopped)
		return
	}

	message := constants.LogMsgServiceHTTPServerFatalError
	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port":  s.cfg.ListenPort,
		"error": err,
	}).Error(message)

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()

	if notifyErr := s.deps.Notifier.Notify(ctx, fmt.Sprintf("%s\n\n%s", message, err)); notifyErr != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": notifyErr,
		}).Warn(constants.LogMsgServiceNotifyFailed)
	}
}

// waitForShutdown 종료 신호를 기다린 뒤 Graceful Shutdown을 수행합니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopping)
	case <-httpServerDone:
		// 포트 바인딩 실패 등으로 서버가 먼저 종료됨
		applog.WithComponent(constants.ComponentService).Error(constants.LogMsgServiceUnexpectedExit)

		s.cleanup()

		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgServiceHTTPServerShutdownError)
	}

	<-httpServerDone

	s.cleanup()
}

func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopped)
}
