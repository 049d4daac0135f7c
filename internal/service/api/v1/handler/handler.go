// Package handler v1 JSON API의 HTTP 요청 핸들러를 제공합니다.
package handler

import (
	"github.com/darkkaiser/catalog-sync/internal/catalog/syncrun"
	"github.com/darkkaiser/catalog-sync/internal/service/api/constants"
	applog "github.com/darkkaiser/catalog-sync/pkg/log"
	"github.com/labstack/echo/v4"
)

// SyncTrigger 백그라운드 동기화 실행을 요청합니다. syncrun.Service가 구현합니다.
type SyncTrigger interface {
	TriggerAsync(by syncrun.Trigger) error
}

// RunStatus 동기화 실행 상태 조회입니다. syncrun.Runner가 구현합니다.
type RunStatus interface {
	InProgress() bool
	LastReport() *syncrun.Report
}

var (
	_ SyncTrigger = (*syncrun.Service)(nil)
	_ RunStatus   = (*syncrun.Runner)(nil)
)

// Handler v1 API 요청을 처리합니다.
type Handler struct {
	trigger SyncTrigger
	status  RunStatus
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(trigger SyncTrigger, status RunStatus) *Handler {
	if trigger == nil {
		panic(constants.PanicMsgSyncServiceRequired)
	}
	if status == nil {
		panic(constants.PanicMsgRunStatusRequired)
	}

	return &Handler{
		trigger: trigger,
		status:  status,
	}
}

// log 공통 로깅 필드가 설정된 로거 엔트리를 반환합니다.
func (h *Handler) log(c echo.Context) *applog.Entry {
	return applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":   c.Path(),
		"remote_ip":  c.RealIP(),
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	})
}
