package shopify

import (
	"context"
	"time"
)

// Clock 현재 시각 조회와 대기를 추상화합니다. 테스트에서는 가짜 구현으로 교체됩니다.
type Clock interface {
	Now() time.Time

	// Sleep d 만큼 대기합니다. 대기 중 ctx가 취소되면 ctx.Err()를 반환합니다.
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock 실제 시스템 시계를 사용하는 Clock입니다.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
