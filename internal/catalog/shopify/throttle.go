package shopify

import (
	"context"
	"sync/atomic"
	"time"
)

// DefaultMinInterval 원격 API 호출 사이의 기본 최소 간격
const DefaultMinInterval = 500 * time.Millisecond

// Throttle 프로세스 전체에서 공유되는 호출 간격 제한기입니다.
//
// 마지막 호출 시각은 원자적으로 보관되며, 성공 여부와 관계없이 모든 물리적 호출 후에 갱신됩니다.
type Throttle struct {
	interval time.Duration
	clock    Clock

	// lastCall 마지막 호출 시각 (UnixNano), 0이면 호출 이력 없음
	lastCall atomic.Int64
}

// NewThrottle Throttle을 생성합니다. interval이 0 이하이면 대기하지 않습니다.
func NewThrottle(interval time.Duration, clock Clock) *Throttle {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Throttle{interval: interval, clock: clock}
}

// Wait 마지막 호출 이후 최소 간격이 지나지 않았으면 남은 시간만큼 대기합니다.
func (t *Throttle) Wait(ctx context.Context) error {
	last := t.lastCall.Load()
	if last == 0 || t.interval <= 0 {
		return nil
	}

	elapsed := t.clock.Now().Sub(time.Unix(0, last))
	if elapsed >= t.interval {
		return nil
	}

	return t.clock.Sleep(ctx, t.interval-elapsed)
}

// Mark 물리적 호출이 끝났음을 기록합니다.
func (t *Throttle) Mark() {
	t.lastCall.Store(t.clock.Now().UnixNano())
}
