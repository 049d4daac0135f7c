// Package syncrun 동기화 실행 한 번의 전체 흐름을 조율합니다.
//
// 피드를 가져와 그룹으로 묶고, 그룹마다 목표 상품을 만들어 원격 카탈로그에 반영한 뒤
// 결과를 마지막 보고서로 게시합니다. 동시에 두 번 실행되지 않도록 원자적 플래그로 보호합니다.
package syncrun

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/darkkaiser/catalog-sync/internal/catalog/feed"
	"github.com/darkkaiser/catalog-sync/internal/catalog/product"
	"github.com/darkkaiser/catalog-sync/internal/catalog/reconcile"
	"github.com/darkkaiser/catalog-sync/internal/catalog/runlog"
	apperrors "github.com/darkkaiser/catalog-sync/internal/pkg/errors"
	"github.com/darkkaiser/catalog-sync/internal/service/settings"
	applog "github.com/darkkaiser/catalog-sync/pkg/log"
	"github.com/google/uuid"
)

const component = "catalog.syncrun"

// startTimeLayout 시작 줄에 사용하는 시각 형식 (예: 2024-05-01 10:00:00 EEST)
const startTimeLayout = "2006-01-02 15:04:05 MST"

// DefaultTimezone 실행 로그 시각에 사용하는 기본 시간대
const DefaultTimezone = "Europe/Kyiv"

// FeedSource 피드 파일을 가져오고, 동기화가 끝난 뒤 삭제합니다. feed.FTPSource가 구현합니다.
type FeedSource interface {
	Fetch(ctx context.Context) ([]byte, error)
	Remove(ctx context.Context) (feed.RemoveResult, error)
}

// EnrichmentSource 보강 데이터를 읽습니다. feed.ExcelEnrichment가 구현합니다.
type EnrichmentSource interface {
	Load() (feed.EnrichmentTable, error)
}

// SettingsSource 실행 시작 시점의 설정 스냅샷을 제공합니다. settings.Store가 구현합니다.
type SettingsSource interface {
	Snapshot() settings.Settings
}

// Notifier 실행 결과 요약을 운영자에게 전달합니다.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

var (
	_ FeedSource       = (*feed.FTPSource)(nil)
	_ EnrichmentSource = feed.ExcelEnrichment{}
	_ SettingsSource   = (*settings.Store)(nil)
)

// Config 실행 흐름 설정입니다.
type Config struct {
	Delimiter        rune
	FallbackEncoding string
	GroupKeyField    string
	OptionFields     []string
	LocationID       int64

	// Location 시작 줄 시각의 시간대, nil이면 DefaultTimezone
	Location *time.Location
}

// Deps Runner가 사용하는 외부 구성 요소입니다. Enrichment, Notifier, Metrics는 생략할 수 있습니다.
type Deps struct {
	Feed       FeedSource
	Enrichment EnrichmentSource
	Settings   SettingsSource
	Catalog    reconcile.Catalog
	Notifier   Notifier
	Metrics    *Metrics
}

// Runner 동기화 실행기입니다.
type Runner struct {
	cfg  Config
	deps Deps

	inProgress atomic.Bool

	lastMu sync.RWMutex
	last   *Report

	now   func() time.Time
	newID func() string
}

// New Runner를 생성합니다.
func New(cfg Config, deps Deps) *Runner {
	if deps.Feed == nil {
		panic("FeedSource는 필수입니다")
	}
	if deps.Settings == nil {
		panic("SettingsSource는 필수입니다")
	}
	if deps.Catalog == nil {
		panic("Catalog는 필수입니다")
	}

	if cfg.Delimiter == 0 {
		cfg.Delimiter = feed.DefaultDelimiter
	}
	if cfg.FallbackEncoding == "" {
		cfg.FallbackEncoding = feed.DefaultFallbackEncoding
	}
	if cfg.GroupKeyField == "" {
		cfg.GroupKeyField = product.FieldArticul
	}
	if cfg.Location == nil {
		loc, err := time.LoadLocation(DefaultTimezone)
		if err != nil {
			loc = time.UTC
		}
		cfg.Location = loc
	}

	return &Runner{
		cfg:   cfg,
		deps:  deps,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// InProgress 실행 중인지 여부를 반환합니다.
func (r *Runner) InProgress() bool {
	return r.inProgress.Load()
}

// LastReport 마지막 실행 보고서를 반환합니다. 실행한 적이 없으면 nil입니다.
func (r *Runner) LastReport() *Report {
	r.lastMu.RLock()
	defer r.lastMu.RUnlock()

	return r.last
}

// Run 동기화를 한 번 실행합니다.
//
// 이미 실행 중이면 아무것도 시작하지 않고 ErrRunInProgress를 반환합니다.
// 피드 누락 또는 스키마 오류로 중단되면 보고서와 함께 원인 에러를 반환합니다.
// 상품 단위의 실패는 보고서에 집계될 뿐 에러로 반환되지 않습니다.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if !r.inProgress.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}

	return r.runClaimed(ctx)
}

// runClaimed inProgress 플래그를 이미 획득한 상태에서 실행하고, 끝나면 플래그를 해제합니다.
func (r *Runner) runClaimed(ctx context.Context) (*Report, error) {
	defer r.inProgress.Store(false)

	if r.deps.Metrics != nil {
		r.deps.Metrics.setInProgress(true)
		defer r.deps.Metrics.setInProgress(false)
	}

	report := &Report{ID: r.newID(), StartedAt: r.now()}
	log := runlog.New(report.ID)

	runErr := r.run(ctx, report, log)
	if runErr != nil {
		report.Aborted = true
		report.AbortReason = runErr.Error()
	}

	report.FinishedAt = r.now()
	report.Lines = log.Lines()

	r.lastMu.Lock()
	r.last = report
	r.lastMu.Unlock()

	entry := applog.WithComponentAndFields(component, applog.Fields{
		"run_id":   report.ID,
		"groups":   report.Groups,
		"created":  report.Created,
		"updated":  report.Updated,
		"skipped":  report.Skipped,
		"failed":   report.Failed,
		"duration": report.Duration().String(),
	})
	if runErr != nil {
		entry.WithField("error", runErr).Error("동기화 실행이 중단되었습니다")
	} else {
		entry.Info("동기화 실행 완료")
	}

	if r.deps.Metrics != nil {
		r.deps.Metrics.observeRun(report)
	}

	if r.deps.Notifier != nil {
		if err := r.deps.Notifier.Notify(ctx, report.Message()); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"run_id": report.ID,
				"error":  err,
			}).Warn("실행 결과 알림 전송에 실패했습니다")
		}
	}

	return report, runErr
}

func (r *Runner) run(ctx context.Context, report *Report, log *runlog.Log) error {
	log.Printf("%s 🔄 Старт синхронізації", report.StartedAt.In(r.cfg.Location).Format(startTimeLayout))

	snap := r.deps.Settings.Snapshot()
	toggles := product.Toggles{
		UpdatePriceQty:    snap.UpdatePriceQty,
		UpdateSalePrice:   snap.UpdateSalePrice,
		UpdateDescription: snap.UpdateDescription,
	}
	log.Printf("⚙️ Налаштування: ціни/залишки=%t, розпродаж=%t, опис=%t, meta=%v",
		toggles.UpdatePriceQty, toggles.UpdateSalePrice, toggles.UpdateDescription, snap.MetaColumns)
	if !toggles.UpdateDescription {
		log.Print("⚠️ Оновлення опису вимкнено: опис залишиться без змін")
	}
	if !toggles.UpdateSalePrice {
		log.Print("⚠️ Оновлення розпродажної ціни вимкнено: буде використана тільки стандартна ціна")
	}

	raw, err := r.deps.Feed.Fetch(ctx)
	if err != nil {
		log.Print("Немає файлу Торгсофт")
		log.Printf("❌ %v", err)
		return err
	}

	text, err := feed.Decode(raw, r.cfg.FallbackEncoding)
	if err != nil {
		log.Printf("❌ Не вдалося декодувати файл: %v", err)
		return err
	}

	parsed, err := feed.Parse(strings.NewReader(text), r.cfg.Delimiter)
	if err != nil {
		log.Printf("❌ Помилка структури файлу: %v", err)
		return err
	}

	builder, err := product.NewBuilder(parsed.Header, product.Options{
		OptionCandidates: r.cfg.OptionFields,
		AttributeFields:  snap.MetaColumns,
		Toggles:          toggles,
	})
	if err != nil {
		log.Printf("❌ Помилка структури файлу: %v", err)
		return err
	}
	if missing := builder.MissingOptions(); len(missing) > 0 {
		log.Printf("⚠️ Поля опцій відсутні у файлі: %v", missing)
	}

	groups, err := feed.GroupBy(parsed.Header, parsed.Records, r.cfg.GroupKeyField)
	if err != nil {
		log.Printf("❌ Помилка структури файлу: %v", err)
		return err
	}
	report.Groups = len(groups)
	log.Printf("🔑 Всього SKU-груп: %d", len(groups))

	table := r.loadEnrichment(log)
	rec := reconcile.New(r.deps.Catalog, reconcile.Options{LocationID: r.cfg.LocationID}, log)

	for _, g := range groups {
		if err := ctx.Err(); err != nil {
			log.Printf("⛔ Синхронізацію зупинено: %v", err)
			return apperrors.Wrap(err, apperrors.Unavailable, "동기화 실행이 취소되었습니다")
		}

		log.Printf("▶ Articul=%s, variants=%d", g.Key, len(g.Records))

		key := feed.EnrichmentKey(g.Key, g.Representative().Get(product.FieldGoodID))
		enrichment := table.Lookup(key)
		if enrichment != nil {
			log.Printf("  • Excel[%s]: є", key)
		} else {
			log.Printf("  • Excel[%s]: немає", key)
		}

		target := builder.Build(g, enrichment)
		log.Printf("  • Опції: %v", target.OptionNames())
		log.Printf("  • варіантів = %d", len(target.Variants))
		if len(target.Images) > 0 {
			log.Printf("  • Додаємо %d image(s)", len(target.Images))
		}

		report.count(rec.Reconcile(ctx, target))
	}

	log.Printf("🏁 Синхронізація завершена: створено=%d, оновлено=%d", report.Created, report.Updated)

	r.removeFeed(ctx, log)

	return nil
}

func (r *Runner) loadEnrichment(log *runlog.Log) feed.EnrichmentTable {
	if r.deps.Enrichment == nil {
		return feed.EnrichmentTable{}
	}

	table, err := r.deps.Enrichment.Load()
	if err != nil {
		log.Printf("⚠️ Не вдалося завантажити Excel: %v", err)
		return feed.EnrichmentTable{}
	}
	log.Printf("📗 Excel: %d записів", len(table))

	return table
}

func (r *Runner) removeFeed(ctx context.Context, log *runlog.Log) {
	result, err := r.deps.Feed.Remove(ctx)
	if err != nil {
		log.Printf("❌ Помилка видалення файлу з FTP: %v", err)
		return
	}

	log.Printf("📂 Вміст %s: %v", result.Dir, result.Entries)
	if result.Deleted {
		log.Print("🗑️ Файл видалено з FTP")
	} else {
		log.Print("⚠️ Файл не знайдено на FTP")
	}
}
