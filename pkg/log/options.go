package log

import (
	"fmt"
	"os"
)

// Options 로깅 시스템 초기화 옵션입니다.
type Options struct {
	Name  string // 로그 파일명 접두어 (애플리케이션 이름)
	Dir   string // 로그 디렉토리 (빈 값이면 "logs")
	Level Level  // 최소 로그 레벨 (0이면 Info)

	MaxAge     int // 보관 일수 (0: 삭제 안 함)
	MaxSizeMB  int // 파일 하나의 최대 크기 (0: 100MB)
	MaxBackups int // 보관할 백업 파일 수 (0: 20개)

	EnableCriticalLog bool // ERROR 이상을 <name>.critical.log 로 별도 기록
	EnableVerboseLog  bool // DEBUG 이하를 <name>.verbose.log 로 별도 기록
	EnableConsoleLog  bool // 표준 출력에도 기록

	ReportCaller     bool
	CallerPathPrefix string // 호출자 함수 경로에서 잘라낼 접두어
}

// Validate 옵션 값의 유효성을 검사합니다.
func (o *Options) Validate() error {
	if o.Name == "" {
		return fmt.Errorf("애플리케이션 식별자(Name)가 설정되지 않았습니다")
	}
	if o.Dir != "" {
		if info, err := os.Stat(o.Dir); err == nil && !info.IsDir() {
			return fmt.Errorf("로그 디렉토리 경로(%s)가 이미 파일로 존재합니다", o.Dir)
		}
	}
	if o.MaxAge < 0 || o.MaxSizeMB < 0 || o.MaxBackups < 0 {
		return fmt.Errorf("로그 보관 설정은 0 이상이어야 합니다 (max_age=%d, max_size_mb=%d, max_backups=%d)", o.MaxAge, o.MaxSizeMB, o.MaxBackups)
	}
	return nil
}

// NewProductionOptions 운영 환경용 기본 옵션을 반환합니다.
func NewProductionOptions(appName string) Options {
	return Options{
		Name:              appName,
		Level:             InfoLevel,
		MaxAge:            30,
		MaxSizeMB:         100,
		MaxBackups:        20,
		EnableCriticalLog: true,
		EnableVerboseLog:  true,
		EnableConsoleLog:  false,
		ReportCaller:      true,
		CallerPathPrefix:  "github.com/darkkaiser",
	}
}

// NewDevelopmentOptions 개발 환경용 기본 옵션을 반환합니다.
func NewDevelopmentOptions(appName string) Options {
	return Options{
		Name:              appName,
		Level:             TraceLevel,
		MaxAge:            1,
		MaxSizeMB:         50,
		MaxBackups:        5,
		EnableCriticalLog: false,
		EnableVerboseLog:  false,
		EnableConsoleLog:  true,
		ReportCaller:      true,
		CallerPathPrefix:  "github.com/darkkaiser",
	}
}
