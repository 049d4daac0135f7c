package constants

// 로그 메시지 상수 정의
const (
	LogMsgTelegramInitClient      = "텔레그램 Notifier 초기화 및 봇 API 클라이언트 생성"
	LogMsgTelegramRateLimitCancel = "RateLimiter 대기 중 컨텍스트 취소됨 (전송 중단)"
	LogMsgTelegramSendSuccess     = "알림메시지 발송 성공"
	LogMsgTelegramSendFail        = "알림메시지 발송 실패"
	LogMsgTelegramCriticalError   = "재시도할 수 없는 API 오류 발생, 재시도 중단"
	LogMsgTelegramRetryWait       = "재시도 전 대기합니다"
	LogMsgNotifierDisabled        = "알림 발송이 비활성화되어 있어 메시지를 버립니다"
)
