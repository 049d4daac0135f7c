package web

import (
	"github.com/darkkaiser/catalog-sync/internal/service/api/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes Echo 인스턴스에 HTML 화면 라우트를 등록합니다.
//
// 렌더러가 설정되어 있지 않으면 내장 템플릿으로 만든 Renderer를 설정합니다.
func RegisterRoutes(e *echo.Echo, h *Handler) error {
	if e.Renderer == nil {
		r, err := NewRenderer()
		if err != nil {
			return err
		}
		e.Renderer = r
	}

	e.GET("/", h.HomeHandler)
	e.GET("/report", h.ReportHandler)
	e.GET("/settings", h.SettingsPageHandler)
	e.POST("/settings", h.SettingsActionHandler, middleware.ValidateContentType(echo.MIMEApplicationForm))
	e.POST("/settings/save", h.SaveSettingHandler, middleware.ValidateContentType(echo.MIMEApplicationJSON))

	return nil
}
