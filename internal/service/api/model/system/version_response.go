package system

// VersionResponse 서버 버전 정보 응답
type VersionResponse struct {
	Version     string `json:"version" example:"v1.2.0"`
	Commit      string `json:"commit" example:"abc1234"`
	BuildDate   string `json:"build_date" example:"2025-12-01T14:00:00Z"`
	BuildNumber string `json:"build_number" example:"100"`
	GoVersion   string `json:"go_version" example:"go1.24.0"`
}
