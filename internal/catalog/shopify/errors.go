package shopify

import (
	"fmt"
	"net/http"
	"strings"

	apperrors "github.com/darkkaiser/catalog-sync/internal/pkg/errors"
	"github.com/tidwall/gjson"
)

// maxErrorBodyLen 에러에 보관하는 응답 본문의 최대 길이
const maxErrorBodyLen = 4096

// entityLockedMessage 상품이 다른 작업에 의해 잠겨 있을 때 409 응답 본문에 포함되는 문구
const entityLockedMessage = "This product is currently being modified"

// TransientRemoteError 재시도를 모두 소진한 429 또는 잠금 409 응답입니다.
type TransientRemoteError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string

	cause error
}

func (e *TransientRemoteError) Error() string { return e.cause.Error() }

func (e *TransientRemoteError) Unwrap() error { return e.cause }

// TerminalRemoteError 재시도 대상이 아닌 2xx 이외의 응답입니다.
type TerminalRemoteError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string

	cause error
}

func (e *TerminalRemoteError) Error() string { return e.cause.Error() }

func (e *TerminalRemoteError) Unwrap() error { return e.cause }

// CheckStatus 응답 상태 코드를 검사하여 2xx이면 nil, 아니면 원격 에러를 반환합니다.
func CheckStatus(method, url string, resp *Response) error {
	if resp == nil {
		return apperrors.Newf(apperrors.Internal, "%s %s: 응답이 없습니다", method, url)
	}
	if resp.IsSuccess() {
		return nil
	}

	body := string(resp.Body)
	if len(body) > maxErrorBodyLen {
		body = body[:maxErrorBodyLen] + "...(truncated)"
	}
	message := fmt.Sprintf("%s %s: HTTP %d: %s", method, url, resp.StatusCode, body)

	if resp.StatusCode == http.StatusTooManyRequests || isEntityLocked(resp) {
		return &TransientRemoteError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       body,
			cause:      apperrors.New(apperrors.Unavailable, message),
		}
	}

	errType := apperrors.ExecutionFailed
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		errType = apperrors.Unauthorized
	case http.StatusForbidden:
		errType = apperrors.Forbidden
	case http.StatusNotFound:
		errType = apperrors.NotFound
	}

	return &TerminalRemoteError{
		Method:     method,
		URL:        url,
		StatusCode: resp.StatusCode,
		Body:       body,
		cause:      apperrors.New(errType, message),
	}
}

// isEntityLocked 409 응답이 상품 잠금에 의한 일시적 충돌인지 확인합니다.
func isEntityLocked(resp *Response) bool {
	if resp.StatusCode != http.StatusConflict {
		return false
	}
	return strings.HasPrefix(gjson.GetBytes(resp.Body, "errors.product.0").String(), entityLockedMessage)
}
