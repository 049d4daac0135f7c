package response

import apiresponse "github.com/darkkaiser/catalog-sync/internal/service/api/model/response"

// ErrorResponse API 오류 응답 (문서화를 위한 별칭)
type ErrorResponse = apiresponse.ErrorResponse

// SyncStartedResponse 동기화 실행 요청 수락 응답
type SyncStartedResponse struct {
	RunStarted bool `json:"run_started" example:"true"`
}

// SyncStatusResponse 동기화 상태 응답
type SyncStatusResponse struct {
	// InProgress 현재 실행 중인지 여부
	InProgress bool `json:"in_progress" example:"false"`

	// LastReportSummary 마지막 실행 요약, 실행한 적이 없으면 빈 문자열
	LastReportSummary string `json:"last_report_summary" example:"created=3 updated=120 skipped=0 failed=1"`

	// LastReportID 마지막 실행 ID
	LastReportID string `json:"last_report_id,omitempty" example:"8a6e0804-2bd0-4672-b79d-d97027f9071a"`
}
