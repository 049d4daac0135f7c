package syncrun

import (
	"fmt"
	"strings"
	"time"

	"github.com/darkkaiser/catalog-sync/internal/catalog/reconcile"
	"github.com/darkkaiser/catalog-sync/internal/catalog/runlog"
)

// Report 동기화 실행 한 번의 결과입니다. 마지막 보고서 하나만 보관됩니다.
type Report struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Groups  int `json:"groups"`
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`

	// Aborted 피드 누락, 스키마 오류 등으로 상품 처리 전에 중단되었는지 여부
	Aborted     bool   `json:"aborted"`
	AbortReason string `json:"abort_reason,omitempty"`

	Lines []runlog.Line `json:"lines"`
}

// Duration 실행 시간을 반환합니다.
func (r *Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Texts 로그 줄의 본문만 반환합니다.
func (r *Report) Texts() []string {
	texts := make([]string, 0, len(r.Lines))
	for _, l := range r.Lines {
		texts = append(texts, l.Text)
	}
	return texts
}

// Summary 한 줄 요약을 반환합니다.
func (r *Report) Summary() string {
	if r.Aborted {
		return fmt.Sprintf("aborted: %s", r.AbortReason)
	}
	return fmt.Sprintf("created=%d updated=%d skipped=%d failed=%d", r.Created, r.Updated, r.Skipped, r.Failed)
}

// Message 운영자 알림용 메시지를 만듭니다.
func (r *Report) Message() string {
	var sb strings.Builder

	if r.Aborted {
		fmt.Fprintf(&sb, "❌ Синхронізацію перервано\n%s", r.AbortReason)
	} else {
		fmt.Fprintf(&sb, "🏁 Синхронізація завершена\nстворено=%d, оновлено=%d, пропущено=%d, помилок=%d",
			r.Created, r.Updated, r.Skipped, r.Failed)
	}
	fmt.Fprintf(&sb, "\nгруп=%d, тривалість=%s\nid=%s", r.Groups, r.Duration().Round(time.Second), r.ID)

	return sb.String()
}

func (r *Report) count(o reconcile.Outcome) {
	switch o {
	case reconcile.Created:
		r.Created++
	case reconcile.Updated:
		r.Updated++
	case reconcile.Skipped:
		r.Skipped++
	case reconcile.Failed:
		r.Failed++
	}
}
