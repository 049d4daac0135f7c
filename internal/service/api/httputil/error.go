// Package httputil HTTP 에러 생성과 전역 에러 응답 처리를 제공합니다.
package httputil

import (
	"net/http"

	"github.com/darkkaiser/catalog-sync/internal/service/api/constants"
	"github.com/darkkaiser/catalog-sync/internal/service/api/model/response"
	applog "github.com/darkkaiser/catalog-sync/pkg/log"
	"github.com/labstack/echo/v4"
)

// ErrorHandler Echo 프레임워크의 전역 에러 핸들러입니다.
//
// 모든 HTTP 에러를 가로채서 표준 ErrorResponse JSON 형식으로 변환하여 반환합니다.
// 5xx는 Error, 4xx는 Warn 레벨로 기록합니다.
func ErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := constants.ErrMsgInternalServer

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			message = m
		case response.ErrorResponse:
			message = m.Message
		}

		switch code {
		case http.StatusNotFound:
			if _, custom := he.Message.(response.ErrorResponse); !custom {
				message = constants.ErrMsgNotFound
			}
		case http.StatusRequestEntityTooLarge:
			message = constants.ErrMsgRequestEntityTooLarge
		case http.StatusServiceUnavailable:
			if _, custom := he.Message.(response.ErrorResponse); !custom {
				message = constants.ErrMsgServiceUnavailable
			}
		}
	}

	fields := applog.Fields{
		"path":        c.Request().URL.Path,
		"method":      c.Request().Method,
		"status_code": code,
		"error":       err,
		"remote_ip":   c.RealIP(),
		"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
	}

	if code >= http.StatusInternalServerError {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Error(constants.LogMsgHTTP5xxServerError)
	} else if code >= http.StatusBadRequest {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Warn(constants.LogMsgHTTP4xxClientError)
	}

	// 이미 응답이 전송된 경우 추가 응답 시도하지 않음
	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		c.NoContent(code)
		return
	}

	c.JSON(code, response.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}
