package syncrun

import apperrors "github.com/darkkaiser/catalog-sync/internal/pkg/errors"

var (
	// ErrRunInProgress 이미 동기화가 실행 중일 때 반환됩니다.
	ErrRunInProgress = apperrors.New(apperrors.Conflict, "동기화가 이미 실행 중입니다")

	// ErrServiceNotRunning 서비스가 시작되지 않았거나 이미 종료된 상태에서 실행을 요청하면 반환됩니다.
	ErrServiceNotRunning = apperrors.New(apperrors.Unavailable, "동기화 서비스가 실행 중이 아닙니다")
)
