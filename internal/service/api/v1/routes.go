// Package v1 /api/v1 하위의 JSON API 라우트를 정의합니다.
//
//   - POST /api/v1/sync         동기화 실행 (202, 실행 중이면 409)
//   - GET  /api/v1/sync/status  실행 중 여부와 마지막 실행 요약
//   - GET  /api/v1/sync/report  마지막 실행 보고서 (없으면 404)
package v1

import (
	"github.com/darkkaiser/catalog-sync/internal/service/api/v1/handler"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes Echo 인스턴스에 v1 API 라우트를 등록합니다.
func RegisterRoutes(e *echo.Echo, h *handler.Handler) {
	g := e.Group("/api/v1")

	g.POST("/sync", h.StartSyncHandler)
	g.GET("/sync/status", h.SyncStatusHandler)
	g.GET("/sync/report", h.SyncReportHandler)
}
