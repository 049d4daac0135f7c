package errors

import "strconv"

// ErrorType 에러의 분류를 나타냅니다.
//
// 호출자는 메시지 문자열이 아니라 ErrorType으로 에러를 판별해야 합니다.
type ErrorType int

const (
	// Unknown 분류되지 않은 에러
	Unknown ErrorType = iota

	// Internal 내부 로직 오류
	Internal

	// System 디스크, 네트워크 등 실행 환경의 오류
	System

	// Unauthorized 인증 실패
	Unauthorized

	// Forbidden 권한 부족
	Forbidden

	// InvalidInput 잘못된 입력값 또는 스키마 불일치
	InvalidInput

	// Conflict 리소스 충돌 (중복 핸들, 이미 실행 중인 동기화 등)
	Conflict

	// NotFound 리소스를 찾을 수 없음
	NotFound

	// ExecutionFailed 원격 호출 또는 비즈니스 로직 수행 실패
	ExecutionFailed

	// ParsingFailed 데이터 파싱 실패
	ParsingFailed

	// Timeout 작업 시간 초과
	Timeout

	// Unavailable 일시적으로 사용할 수 없는 상태 (재시도 가능)
	Unavailable
)

var errorTypeNames = [...]string{
	Unknown:         "Unknown",
	Internal:        "Internal",
	System:          "System",
	Unauthorized:    "Unauthorized",
	Forbidden:       "Forbidden",
	InvalidInput:    "InvalidInput",
	Conflict:        "Conflict",
	NotFound:        "NotFound",
	ExecutionFailed: "ExecutionFailed",
	ParsingFailed:   "ParsingFailed",
	Timeout:         "Timeout",
	Unavailable:     "Unavailable",
}

func (t ErrorType) String() string {
	if t < 0 || int(t) >= len(errorTypeNames) {
		return "ErrorType(" + strconv.Itoa(int(t)) + ")"
	}
	return errorTypeNames[t]
}
