package middleware

import (
	"fmt"
	"net/http"

	apperrors "github.com/darkkaiser/catalog-sync/internal/pkg/errors"
	"github.com/darkkaiser/catalog-sync/internal/service/api/constants"
	"github.com/darkkaiser/catalog-sync/internal/service/api/httputil"
	"github.com/labstack/echo/v4"
)

var (
	// ErrRateLimitExceeded 허용된 요청 빈도를 초과한 클라이언트에게 반환하는 429 에러입니다.
	ErrRateLimitExceeded = httputil.NewTooManyRequestsError(constants.ErrMsgTooManyRequests)

	// ErrUnsupportedMediaType 지원하지 않는 Content-Type 요청에 반환하는 415 에러입니다.
	ErrUnsupportedMediaType = echo.NewHTTPError(http.StatusUnsupportedMediaType, constants.ErrMsgUnsupportedMediaType)
)

// newErrPanicRecovered 복구된 패닉 값을 내부 오류로 감쌉니다.
func newErrPanicRecovered(r any) error {
	if err, ok := r.(error); ok {
		return apperrors.Wrap(err, apperrors.Internal, "핸들러에서 패닉이 발생했습니다")
	}
	return apperrors.New(apperrors.Internal, fmt.Sprintf("%v", r))
}
