package handler

import (
	"errors"
	"net/http"

	"github.com/darkkaiser/catalog-sync/internal/catalog/syncrun"
	"github.com/darkkaiser/catalog-sync/internal/service/api/constants"
	"github.com/darkkaiser/catalog-sync/internal/service/api/v1/model/response"
	"github.com/labstack/echo/v4"
)

// StartSyncHandler godoc
// @Summary 동기화 실행
// @Description 카탈로그 동기화를 백그라운드에서 시작하고 즉시 응답합니다.
// @Description 이미 실행 중이면 아무것도 시작하지 않고 409를 반환합니다.
// @Tags Sync
// @Produce json
// @Success 202 {object} response.SyncStartedResponse "실행 시작"
// @Failure 409 {object} response.ErrorResponse "이미 실행 중"
// @Failure 503 {object} response.ErrorResponse "서비스 종료 중"
// @Router /api/v1/sync [post]
func (h *Handler) StartSyncHandler(c echo.Context) error {
	err := h.trigger.TriggerAsync(syncrun.TriggerManual)
	switch {
	case err == nil:
		h.log(c).Info(constants.LogMsgSyncTriggered)
		return c.JSON(http.StatusAccepted, response.SyncStartedResponse{RunStarted: true})

	case errors.Is(err, syncrun.ErrRunInProgress):
		h.log(c).Warn(constants.LogMsgSyncRejected)
		return ErrSyncInProgress

	case errors.Is(err, syncrun.ErrServiceNotRunning):
		return ErrServiceStopped

	default:
		return err
	}
}

// SyncStatusHandler godoc
// @Summary 동기화 상태
// @Description 실행 중 여부와 마지막 실행 요약을 반환합니다.
// @Tags Sync
// @Produce json
// @Success 200 {object} response.SyncStatusResponse "상태"
// @Router /api/v1/sync/status [get]
func (h *Handler) SyncStatusHandler(c echo.Context) error {
	resp := response.SyncStatusResponse{InProgress: h.status.InProgress()}
	if last := h.status.LastReport(); last != nil {
		resp.LastReportSummary = last.Summary()
		resp.LastReportID = last.ID
	}

	return c.JSON(http.StatusOK, resp)
}

// SyncReportHandler godoc
// @Summary 마지막 실행 보고서
// @Description 마지막 동기화 실행의 카운터와 실행 로그 전체를 반환합니다.
// @Tags Sync
// @Produce json
// @Success 200 {object} syncrun.Report "보고서"
// @Failure 404 {object} response.ErrorResponse "실행 기록 없음"
// @Router /api/v1/sync/report [get]
func (h *Handler) SyncReportHandler(c echo.Context) error {
	last := h.status.LastReport()
	if last == nil {
		return ErrNoLastReport
	}

	return c.JSON(http.StatusOK, last)
}
