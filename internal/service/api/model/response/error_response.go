package response

// ErrorResponse API 오류 응답
type ErrorResponse struct {
	// ResultCode HTTP 상태 코드 (예: 400, 409, 500)
	ResultCode int `json:"result_code" example:"409"`

	// Message 에러 메시지
	Message string `json:"message" example:"동기화가 이미 실행 중입니다"`
}
