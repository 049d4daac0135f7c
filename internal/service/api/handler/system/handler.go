// Package system 헬스체크, 버전 정보, 지표 같은 시스템 엔드포인트 핸들러를 제공합니다.
package system

import (
	"net/http"
	"os"
	"time"

	"github.com/darkkaiser/catalog-sync/internal/catalog/syncrun"
	"github.com/darkkaiser/catalog-sync/internal/pkg/version"
	"github.com/darkkaiser/catalog-sync/internal/service/api/constants"
	"github.com/darkkaiser/catalog-sync/internal/service/api/model/system"
	applog "github.com/darkkaiser/catalog-sync/pkg/log"
	"github.com/labstack/echo/v4"
)

// RunStatus 동기화 실행 상태 조회입니다. syncrun.Runner가 구현합니다.
type RunStatus interface {
	InProgress() bool
	LastReport() *syncrun.Report
}

// Handler 시스템 엔드포인트 핸들러
type Handler struct {
	runStatus    RunStatus
	settingsPath string

	metrics http.Handler

	buildInfo version.Info

	serverStartTime time.Time
}

// NewHandler Handler 인스턴스를 생성합니다. metrics가 nil이면 /metrics는 404를 반환합니다.
func NewHandler(runStatus RunStatus, settingsPath string, metrics http.Handler, buildInfo version.Info) *Handler {
	if runStatus == nil {
		panic(constants.PanicMsgRunStatusRequired)
	}

	return &Handler{
		runStatus:    runStatus,
		settingsPath: settingsPath,

		metrics: metrics,

		buildInfo: buildInfo,

		serverStartTime: time.Now(),
	}
}

// HealthCheckHandler godoc
// @Summary 서버 헬스체크
// @Description 서버와 내부 의존성(동기화 실행기, 설정 파일)의 상태를 확인합니다.
// @Description 마지막 동기화가 중단되었거나 설정 파일에 접근할 수 없으면 unhealthy입니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.HealthResponse "헬스체크 결과"
// @Router /health [get]
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/health",
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgHealthCheck)

	deps := map[string]system.DependencyStatus{
		constants.DependencySyncRunner:    h.runnerStatus(),
		constants.DependencySettingsStore: h.settingsStatus(),
	}

	status := constants.HealthStatusHealthy
	for _, dep := range deps {
		if dep.Status != constants.HealthStatusHealthy {
			status = constants.HealthStatusUnhealthy
			break
		}
	}

	return c.JSON(http.StatusOK, system.HealthResponse{
		Status:       status,
		Uptime:       int64(time.Since(h.serverStartTime).Seconds()),
		Dependencies: deps,
	})
}

func (h *Handler) runnerStatus() system.DependencyStatus {
	if h.runStatus.InProgress() {
		return system.DependencyStatus{Status: constants.HealthStatusHealthy, Message: constants.MsgDepStatusRunning}
	}
	if last := h.runStatus.LastReport(); last != nil && last.Aborted {
		return system.DependencyStatus{
			Status:  constants.HealthStatusUnhealthy,
			Message: constants.MsgDepStatusLastAbort + ": " + last.AbortReason,
		}
	}
	return system.DependencyStatus{Status: constants.HealthStatusHealthy, Message: constants.MsgDepStatusHealthy}
}

func (h *Handler) settingsStatus() system.DependencyStatus {
	if h.settingsPath != "" {
		if _, err := os.Stat(h.settingsPath); err != nil {
			return system.DependencyStatus{
				Status:  constants.HealthStatusUnhealthy,
				Message: constants.MsgDepStatusUnreadable,
			}
		}
	}
	return system.DependencyStatus{Status: constants.HealthStatusHealthy, Message: constants.MsgDepStatusHealthy}
}

// VersionHandler godoc
// @Summary 서버 버전 정보
// @Description 서버의 버전, Git 커밋 해시, 빌드 날짜, 빌드 번호, Go 버전을 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.VersionResponse "버전 정보"
// @Router /version [get]
func (h *Handler) VersionHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/version",
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgVersionInfo)

	return c.JSON(http.StatusOK, system.VersionResponse{
		Version:     h.buildInfo.Version,
		Commit:      h.buildInfo.Commit,
		BuildDate:   h.buildInfo.BuildDate,
		BuildNumber: h.buildInfo.BuildNumber,
		GoVersion:   h.buildInfo.GoVersion,
	})
}

// MetricsHandler Prometheus 지표를 노출합니다.
func (h *Handler) MetricsHandler(c echo.Context) error {
	if h.metrics == nil {
		return echo.ErrNotFound
	}

	h.metrics.ServeHTTP(c.Response(), c.Request())
	return nil
}
