package api

import (
	"net/http"

	"github.com/darkkaiser/catalog-sync/docs"
	"github.com/darkkaiser/catalog-sync/internal/service/api/handler/system"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const swaggerIndexPath = "/swagger/index.html"

// RegisterRoutes 시스템 엔드포인트와 API 문서 라우트를 등록합니다.
//
//   - GET|HEAD /health, GET /version, GET /metrics
//   - GET /swagger (index로 이동), GET /swagger/*
func RegisterRoutes(e *echo.Echo, h *system.Handler) {
	e.Match([]string{http.MethodGet, http.MethodHead}, "/health", h.HealthCheckHandler)
	e.GET("/version", h.VersionHandler)
	e.GET("/metrics", h.MetricsHandler)

	e.GET("/swagger", func(c echo.Context) error {
		return c.Redirect(http.StatusMovedPermanently, swaggerIndexPath)
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(
		echoSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
		echoSwagger.URL("/swagger/doc.json"),
		echoSwagger.DeepLinking(true),
		echoSwagger.DocExpansion("list"),
	))
}
