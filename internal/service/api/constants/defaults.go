package constants

import "time"

// 서버 설정 기본값 상수입니다.
const (
	// DefaultListenPort 설정이 없을 때 사용하는 포트
	DefaultListenPort = 8080

	// DefaultRequestTimeout HTTP 요청 처리의 기본 타임아웃 시간 (60초)
	DefaultRequestTimeout = 60 * time.Second

	// DefaultShutdownTimeout Graceful Shutdown 시 최대 대기 시간
	DefaultShutdownTimeout = 5 * time.Second

	// DefaultRateLimitPerSecond IP당 초당 허용 요청 수
	DefaultRateLimitPerSecond = 20

	// DefaultRateLimitBurst IP당 버스트 허용량
	DefaultRateLimitBurst = 40
)
