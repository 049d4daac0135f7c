package reconcile

import (
	apperrors "github.com/darkkaiser/catalog-sync/internal/pkg/errors"
)

// DuplicateHandleError 한 실행 안에서 이미 처리된 핸들을 다른 그룹이 다시 만들었을 때의 에러입니다.
type DuplicateHandleError struct {
	Handle string

	// GroupKey 건너뛴 그룹의 키
	GroupKey string

	// FirstGroupKey 같은 핸들을 먼저 사용한 그룹의 키
	FirstGroupKey string

	cause error
}

func newDuplicateHandleError(handle, groupKey, firstGroupKey string) *DuplicateHandleError {
	return &DuplicateHandleError{
		Handle:        handle,
		GroupKey:      groupKey,
		FirstGroupKey: firstGroupKey,
		cause: apperrors.Newf(apperrors.Conflict,
			"핸들 '%s'가 이미 그룹 '%s'에서 사용되어 그룹 '%s'를 건너뜁니다", handle, firstGroupKey, groupKey),
	}
}

func (e *DuplicateHandleError) Error() string { return e.cause.Error() }

func (e *DuplicateHandleError) Unwrap() error { return e.cause }
