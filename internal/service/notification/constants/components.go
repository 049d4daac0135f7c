package constants

// 로그 발생 위치(컴포넌트) 식별을 위한 상수입니다.
const (
	// ComponentNotifier 알림 발송 컴포넌트 이름
	ComponentNotifier = "notification.notifier"

	// ComponentNotifierTelegram Telegram Notifier 컴포넌트 이름
	ComponentNotifierTelegram = "notification.notifier.telegram"
)
