package handler

import (
	"github.com/darkkaiser/catalog-sync/internal/service/api/constants"
	"github.com/darkkaiser/catalog-sync/internal/service/api/httputil"
)

var (
	// ErrSyncInProgress 이미 동기화가 실행 중일 때 반환하는 409 에러입니다.
	ErrSyncInProgress = httputil.NewConflictError(constants.ErrMsgConflictSyncInProgress)

	// ErrNoLastReport 아직 동기화가 실행된 적이 없을 때 반환하는 404 에러입니다.
	ErrNoLastReport = httputil.NewNotFoundError(constants.ErrMsgNotFoundLastReport)

	// ErrServiceStopped 동기화 서비스가 종료 중일 때 반환하는 503 에러입니다.
	ErrServiceStopped = httputil.NewServiceUnavailableError(constants.ErrMsgServiceUnavailable)
)
