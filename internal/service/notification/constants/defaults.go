package constants

import "time"

const (
	// DefaultRetryDelay 발송 실패 후 재시도 전 대기 시간의 기본값입니다. 서버가 retry_after를 주면 그 값을 따릅니다.
	DefaultRetryDelay = 1 * time.Second

	// DefaultMaxRetries 메시지 한 조각을 보내기 위한 최대 시도 횟수
	DefaultMaxRetries = 3

	// DefaultRateLimit 텔레그램 API Rate Limit 기본값 (초당 허용 요청 수)
	// 공식 문서는 채팅방당 초당 1회를 권장합니다.
	DefaultRateLimit = 1

	// DefaultRateBurst 순간 최대 허용 요청 수
	DefaultRateBurst = 5

	// DefaultHTTPClientTimeout 텔레그램 API 클라이언트의 HTTP 요청 타임아웃
	DefaultHTTPClientTimeout = 30 * time.Second

	// DefaultNotifyTimeout 실행 보고서 알림 한 건에 허용하는 최대 시간
	DefaultNotifyTimeout = 30 * time.Second

	// MaxMessageLength 텔레그램 메시지 한 건의 최대 길이 (문자 수)
	MaxMessageLength = 4096
)
