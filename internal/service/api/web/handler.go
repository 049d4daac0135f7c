// Package web 운영자가 브라우저에서 사용하는 HTML 화면을 제공합니다.
//
//   - GET  /               홈 화면
//   - GET  /report         마지막 동기화 실행 로그
//   - GET  /settings       동기화 스위치와 메타필드 열 관리 화면
//   - POST /settings       폼 동작(action) 처리 후 303으로 /settings 로 돌아갑니다
//   - POST /settings/save  스위치 하나를 JSON으로 저장합니다 (204)
package web

import (
	"github.com/darkkaiser/catalog-sync/internal/catalog/syncrun"
	"github.com/darkkaiser/catalog-sync/internal/service/api/constants"
	"github.com/darkkaiser/catalog-sync/internal/service/settings"
	applog "github.com/darkkaiser/catalog-sync/pkg/log"
	"github.com/labstack/echo/v4"
)

// SettingsStore 화면에서 변경하는 동기화 설정 저장소입니다. settings.Store가 구현합니다.
type SettingsStore interface {
	Snapshot() settings.Settings
	MetaColumns() []string
	SetToggle(key string, value bool) error
	SaveToggles(priceQty, salePrice, description bool) error
	AddMetaColumn(name string) error
	DeleteMetaColumn(name string) error
	ClearMetaColumns() error
}

// SyncTrigger 백그라운드 동기화 실행을 요청합니다.
type SyncTrigger interface {
	TriggerAsync(by syncrun.Trigger) error
}

// RunStatus 동기화 실행 상태 조회입니다.
type RunStatus interface {
	InProgress() bool
	LastReport() *syncrun.Report
}

var (
	_ SettingsStore = (*settings.Store)(nil)
	_ SyncTrigger   = (*syncrun.Service)(nil)
	_ RunStatus     = (*syncrun.Runner)(nil)
)

// Handler HTML 화면 요청을 처리합니다.
type Handler struct {
	store   SettingsStore
	trigger SyncTrigger
	status  RunStatus
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(store SettingsStore, trigger SyncTrigger, status RunStatus) *Handler {
	if store == nil {
		panic(constants.PanicMsgSettingsStoreRequired)
	}
	if trigger == nil {
		panic(constants.PanicMsgSyncServiceRequired)
	}
	if status == nil {
		panic(constants.PanicMsgRunStatusRequired)
	}

	return &Handler{
		store:   store,
		trigger: trigger,
		status:  status,
	}
}

func (h *Handler) log(c echo.Context) *applog.Entry {
	return applog.WithComponentAndFields(constants.ComponentWeb, applog.Fields{
		"endpoint":   c.Path(),
		"remote_ip":  c.RealIP(),
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	})
}
