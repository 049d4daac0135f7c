// Package cronx 동기화 스케줄에 사용하는 Cron 표현식 파서를 제공합니다.
package cronx

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// StandardParser 초 단위를 포함하는 6필드 형식과 Descriptor(@daily, @every 등)를 지원하는 파서를 반환합니다.
//
//   - "0 0 */6 * * *" : 6시간마다 정각
//   - "@every 30m"    : 30분 간격
func StandardParser() cron.Parser {
	return cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
}

// Validate 표현식이 StandardParser로 해석 가능한지 검사합니다.
func Validate(spec string) error {
	if _, err := StandardParser().Parse(spec); err != nil {
		return fmt.Errorf("잘못된 cron 표현식 '%s': %w", spec, err)
	}
	return nil
}

// Next 주어진 시각 이후 처음으로 실행될 시각을 계산합니다.
func Next(spec string, from time.Time) (time.Time, error) {
	schedule, err := StandardParser().Parse(spec)
	if err != nil {
		return time.Time{}, fmt.Errorf("잘못된 cron 표현식 '%s': %w", spec, err)
	}
	return schedule.Next(from), nil
}
