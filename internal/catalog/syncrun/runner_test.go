package syncrun

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/darkkaiser/catalog-sync/internal/catalog/feed"
	apperrors "github.com/darkkaiser/catalog-sync/internal/pkg/errors"
	"github.com/darkkaiser/catalog-sync/internal/service/settings"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

type runnerFixture struct {
	runner   *Runner
	feed     *fakeFeed
	catalog  *memoryCatalog
	notifier *recordingNotifier
	metrics  *Metrics
}

func newRunnerFixture(t *testing.T, data []byte) *runnerFixture {
	t.Helper()

	f := &runnerFixture{
		feed:     &fakeFeed{data: data},
		catalog:  newMemoryCatalog(),
		notifier: &recordingNotifier{},
		metrics:  NewMetrics(),
	}
	f.runner = New(Config{LocationID: 7, Location: time.UTC}, Deps{
		Feed: f.feed,
		Enrichment: fakeEnrichment{table: feed.EnrichmentTable{
			"AB-12-1": {Title: "Боти зимові", Images: []string{"https://img.example.com/1.jpg"}},
		}},
		Settings: fixedSettings(settings.Defaults()),
		Catalog:  f.catalog,
		Notifier: f.notifier,
		Metrics:  f.metrics,
	})
	f.runner.now = func() time.Time { return testStart }
	f.runner.newID = func() string { return "run-1" }

	return f
}

func containsLine(lines []string, substr string) bool {
	for _, l := range lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func TestNew_필수_의존성(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, "FeedSource는 필수입니다", func() {
		New(Config{}, Deps{Settings: fixedSettings{}, Catalog: newMemoryCatalog()})
	})
	assert.PanicsWithValue(t, "SettingsSource는 필수입니다", func() {
		New(Config{}, Deps{Feed: &fakeFeed{}, Catalog: newMemoryCatalog()})
	})
	assert.PanicsWithValue(t, "Catalog는 필수입니다", func() {
		New(Config{}, Deps{Feed: &fakeFeed{}, Settings: fixedSettings{}})
	})
}

func TestRunner_Run_정상_실행(t *testing.T) {
	t.Parallel()

	f := newRunnerFixture(t, testFeed(defaultFeedRows...))

	report, err := f.runner.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, "run-1", report.ID)
	assert.False(t, report.Aborted)
	assert.Equal(t, 2, report.Groups)
	assert.Equal(t, 2, report.Created)
	assert.Equal(t, 0, report.Updated)
	assert.Equal(t, 2, f.catalog.size())

	texts := report.Texts()
	require.NotEmpty(t, texts)
	assert.Equal(t, "2024-05-01 10:00:00 UTC 🔄 Старт синхронізації", texts[0])
	assert.Contains(t, texts, "🔑 Всього SKU-груп: 2")
	assert.Contains(t, texts, "▶ Articul=AB-12, variants=2")
	assert.Contains(t, texts, "  • Excel[AB-12-1]: є")
	assert.Contains(t, texts, "  • Excel[CD-34-3]: немає")
	assert.Contains(t, texts, "🏁 Синхронізація завершена: створено=2, оновлено=0")
	assert.Contains(t, texts, "🗑️ Файл видалено з FTP")

	_, removes := f.feed.counts()
	assert.Equal(t, 1, removes)

	assert.Same(t, report, f.runner.LastReport())
	assert.False(t, f.runner.InProgress())

	messages := f.notifier.all()
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "створено=2, оновлено=0")
}

func TestRunner_Run_두_번째_실행은_갱신만(t *testing.T) {
	t.Parallel()

	f := newRunnerFixture(t, testFeed(defaultFeedRows...))

	_, err := f.runner.Run(context.Background())
	require.NoError(t, err)

	report, err := f.runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, report.Created)
	assert.Equal(t, 2, report.Updated)
	assert.Equal(t, 2, f.catalog.size())
	assert.Contains(t, report.Texts(), "🏁 Синхронізація завершена: створено=0, оновлено=2")
}

func TestRunner_Run_피드_없음(t *testing.T) {
	t.Parallel()

	f := newRunnerFixture(t, nil)
	f.feed.fetchErr = apperrors.New(apperrors.NotFound, "피드 파일이 없습니다")

	report, err := f.runner.Run(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.NotFound))

	require.NotNil(t, report)
	assert.True(t, report.Aborted)
	assert.NotEmpty(t, report.AbortReason)
	assert.Contains(t, report.Texts(), "Немає файлу Торгсофт")
	assert.Zero(t, f.catalog.size())

	_, removes := f.feed.counts()
	assert.Zero(t, removes, "중단된 실행은 피드를 삭제하지 않아야 합니다")

	assert.Same(t, report, f.runner.LastReport())
	require.Len(t, f.notifier.all(), 1)
	assert.Contains(t, f.notifier.all()[0], "Синхронізацію перервано")
}

func TestRunner_Run_스키마_오류(t *testing.T) {
	t.Parallel()

	data := []byte("Articul;Description\nAB-12;Боти\n")
	f := newRunnerFixture(t, data)

	report, err := f.runner.Run(context.Background())
	require.Error(t, err)

	var schemaErr *feed.SchemaError
	require.ErrorAs(t, err, &schemaErr)

	assert.True(t, report.Aborted)
	assert.True(t, containsLine(report.Texts(), "❌ Помилка структури файлу"))
	assert.Zero(t, f.catalog.size())
}

func TestRunner_Run_보강_데이터_로드_실패는_계속_진행(t *testing.T) {
	t.Parallel()

	f := newRunnerFixture(t, testFeed(defaultFeedRows...))
	f.runner.deps.Enrichment = fakeEnrichment{err: apperrors.New(apperrors.NotFound, "no excel")}

	report, err := f.runner.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, containsLine(report.Texts(), "⚠️ Не вдалося завантажити Excel"))
	assert.Contains(t, report.Texts(), "  • Excel[AB-12-1]: немає")
	assert.Equal(t, 2, report.Created)
}

func TestRunner_Run_취소된_Context(t *testing.T) {
	t.Parallel()

	f := newRunnerFixture(t, testFeed(defaultFeedRows...))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := f.runner.Run(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.Unavailable))
	assert.True(t, report.Aborted)
	assert.Zero(t, report.Created)

	_, removes := f.feed.counts()
	assert.Zero(t, removes)
}

func TestRunner_Run_동시_실행_거부(t *testing.T) {
	t.Parallel()

	f := newRunnerFixture(t, testFeed(defaultFeedRows...))
	f.feed.block = make(chan struct{})
	f.feed.entered = make(chan struct{})
	entered := f.feed.entered

	done := make(chan error, 1)
	go func() {
		_, err := f.runner.Run(context.Background())
		done <- err
	}()

	<-entered
	assert.True(t, f.runner.InProgress())

	report, err := f.runner.Run(context.Background())
	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrRunInProgress)
	assert.True(t, apperrors.Is(err, apperrors.Conflict))

	close(f.feed.block)
	require.NoError(t, <-done)

	fetches, _ := f.feed.counts()
	assert.Equal(t, 1, fetches)
	assert.False(t, f.runner.InProgress())
}

func TestRunner_Run_지표_기록(t *testing.T) {
	t.Parallel()

	f := newRunnerFixture(t, testFeed(defaultFeedRows...))

	_, err := f.runner.Run(context.Background())
	require.NoError(t, err)

	m := f.metrics
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runsTotal.WithLabelValues("completed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.productsTotal.WithLabelValues("created")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.productsTotal.WithLabelValues("failed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inProgress))
	assert.Equal(t, float64(testStart.Unix()), testutil.ToFloat64(m.lastRunTimestamp))

	f.feed.fetchErr = apperrors.New(apperrors.NotFound, "gone")
	_, err = f.runner.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runsTotal.WithLabelValues("aborted")))
}

func TestReport_Summary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		report Report
		want   string
	}{
		{
			name:   "완료",
			report: Report{Created: 1, Updated: 2, Skipped: 3, Failed: 4},
			want:   "created=1 updated=2 skipped=3 failed=4",
		},
		{
			name:   "중단",
			report: Report{Aborted: true, AbortReason: "no feed"},
			want:   "aborted: no feed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.report.Summary())
		})
	}
}

func TestReport_Duration(t *testing.T) {
	t.Parallel()

	r := Report{StartedAt: testStart}
	assert.Zero(t, r.Duration())

	r.FinishedAt = testStart.Add(90 * time.Second)
	assert.Equal(t, 90*time.Second, r.Duration())
}
