// Package runlog 한 번의 동기화 실행 동안 기록되는 사람이 읽는 로그 줄을 보관합니다.
//
// 기록된 줄은 실행 보고서와 웹 화면에 그대로 노출되며, 동시에 애플리케이션 로그에도 남습니다.
package runlog

import (
	"fmt"
	"sync"
	"time"

	applog "github.com/darkkaiser/catalog-sync/pkg/log"
)

const component = "catalog.runlog"

// Line 타임스탬프가 붙은 로그 한 줄입니다.
type Line struct {
	Time time.Time `json:"time"`
	Text string    `json:"text"`
}

// Log 순서가 보장되는 실행 로그입니다. 동시에 사용해도 안전합니다.
type Log struct {
	mu    sync.Mutex
	lines []Line

	now   func() time.Time
	entry *applog.Entry
}

// New 실행 ID가 붙은 새 Log를 생성합니다.
func New(runID string) *Log {
	return &Log{
		now:   time.Now,
		entry: applog.WithComponentAndFields(component, applog.Fields{"run_id": runID}),
	}
}

// Printf 한 줄을 기록합니다.
func (l *Log) Printf(format string, args ...any) {
	l.append(fmt.Sprintf(format, args...))
}

// Print 한 줄을 기록합니다.
func (l *Log) Print(text string) {
	l.append(text)
}

func (l *Log) append(text string) {
	l.mu.Lock()
	l.lines = append(l.lines, Line{Time: l.now(), Text: text})
	l.mu.Unlock()

	l.entry.Info(text)
}

// Lines 지금까지 기록된 줄의 복사본을 반환합니다.
func (l *Log) Lines() []Line {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]Line(nil), l.lines...)
}

// Texts 지금까지 기록된 줄의 본문만 반환합니다.
func (l *Log) Texts() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	texts := make([]string, 0, len(l.lines))
	for _, line := range l.lines {
		texts = append(texts, line.Text)
	}
	return texts
}

// Len 기록된 줄 수를 반환합니다.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.lines)
}
