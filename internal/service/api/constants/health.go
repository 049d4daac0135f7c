package constants

// 헬스체크 및 시스템 상태 관련 상수입니다.
const (
	// HealthStatusHealthy 헬스체크 상태: 정상
	HealthStatusHealthy = "healthy"

	// HealthStatusUnhealthy 헬스체크 상태: 비정상
	HealthStatusUnhealthy = "unhealthy"

	// DependencySyncRunner 외부 의존성 ID: 동기화 실행기
	DependencySyncRunner = "sync_runner"

	// DependencySettingsStore 외부 의존성 ID: 설정 저장소
	DependencySettingsStore = "settings_store"

	MsgDepStatusHealthy    = "정상 작동 중"
	MsgDepStatusRunning    = "동기화 실행 중"
	MsgDepStatusLastAbort  = "마지막 동기화가 중단되었습니다"
	MsgDepStatusUnreadable = "설정 파일에 접근할 수 없습니다"
)
