package api

import (
	apperrors "github.com/darkkaiser/catalog-sync/internal/pkg/errors"
)

// newErrServerSetup 라우트나 템플릿 구성에 실패했을 때 반환하는 에러를 생성합니다.
func newErrServerSetup(cause error) error {
	return apperrors.Wrap(cause, apperrors.Internal, "API 서버 구성에 실패했습니다")
}
