// Package reconcile 목표 상품 상태를 원격 카탈로그에 반영합니다.
//
// 핸들로 원격 상품을 조회해 생성 또는 갱신을 결정하고,
// 변형의 가격/재고와 메타필드를 개별 호출로 적용합니다.
// 하위 작업의 실패는 실행 로그에 남기고 다음 작업을 계속합니다.
package reconcile

import (
	"context"
	"strings"

	"github.com/darkkaiser/catalog-sync/internal/catalog/product"
	"github.com/darkkaiser/catalog-sync/internal/catalog/runlog"
	"github.com/darkkaiser/catalog-sync/internal/catalog/shopify"
)

// Catalog Reconciler가 사용하는 원격 카탈로그 연산입니다. shopify.API가 구현합니다.
type Catalog interface {
	FindProductsByHandle(ctx context.Context, handle string) ([]shopify.RemoteProduct, error)
	CreateProduct(ctx context.Context, t *product.Target) (*shopify.RemoteProduct, error)
	ReplaceProduct(ctx context.Context, productID int64, t *product.Target) (*shopify.RemoteProduct, error)
	ListMetafields(ctx context.Context, productID int64, namespace string) ([]shopify.RemoteAttribute, error)
	CreateMetafield(ctx context.Context, productID int64, attr product.Attribute) error
	UpdateMetafield(ctx context.Context, productID, metafieldID int64, attr product.Attribute) error
	UpdateVariantPrice(ctx context.Context, variantID int64, pricing product.Pricing) error
	SetInventoryLevel(ctx context.Context, locationID, inventoryItemID int64, available int) error
}

var _ Catalog = (*shopify.API)(nil)

// Outcome 상품 하나의 처리 결과입니다.
type Outcome int

const (
	Created Outcome = iota
	Updated
	Skipped
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Updated:
		return "updated"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Options Reconciler 옵션입니다.
type Options struct {
	// LocationID 재고 수량을 설정할 원격 재고 위치
	LocationID int64
}

// Reconciler 한 번의 동기화 실행 동안 상품을 하나씩 반영합니다.
//
// 핸들 중복 검사를 위한 상태를 가지므로 실행마다 새로 생성해야 하며, 동시에 사용할 수 없습니다.
type Reconciler struct {
	catalog Catalog
	opts    Options
	log     *runlog.Log

	// seen 이번 실행에서 처리된 핸들 → 그룹 키
	seen map[string]string

	errs []error
}

// New Reconciler를 생성합니다.
func New(catalog Catalog, opts Options, log *runlog.Log) *Reconciler {
	return &Reconciler{
		catalog: catalog,
		opts:    opts,
		log:     log,
		seen:    make(map[string]string),
	}
}

// Errors 상품 단위로 발생한 에러(중복 핸들, 조회/생성/갱신 실패)를 발생 순서대로 반환합니다.
func (r *Reconciler) Errors() []error {
	return append([]error(nil), r.errs...)
}

// Reconcile 목표 상품 하나를 원격 카탈로그에 반영합니다.
func (r *Reconciler) Reconcile(ctx context.Context, t *product.Target) Outcome {
	if first, ok := r.seen[t.Handle]; ok {
		err := newDuplicateHandleError(t.Handle, t.GroupKey, first)
		r.errs = append(r.errs, err)
		r.log.Printf("⚠️ Пропускаємо дублікат: handle=%s вже оброблений (%s)", t.Handle, first)
		return Skipped
	}
	r.seen[t.Handle] = t.GroupKey

	products, err := r.catalog.FindProductsByHandle(ctx, t.Handle)
	if err != nil {
		r.errs = append(r.errs, err)
		r.log.Printf("  ❌ Помилка пошуку товару handle=%s: %v", t.Handle, err)
		return Failed
	}
	r.log.Printf("  • У Shopify: %d", len(products))

	if len(products) == 0 {
		return r.create(ctx, t)
	}
	return r.update(ctx, t, products[0])
}

func (r *Reconciler) create(ctx context.Context, t *product.Target) Outcome {
	r.log.Print("🚀 Створюємо новий товар")

	created, err := r.catalog.CreateProduct(ctx, t)
	if err != nil {
		r.errs = append(r.errs, err)
		r.log.Printf("    ❌ Помилка створення товару: %v", err)
		return Failed
	}

	r.log.Print("    🔄 Оновлюємо ціни та залишки для нових товарів:")
	r.syncVariants(ctx, t, created.Variants)

	r.log.Printf("    ✅ СТВОРЕНО, ID=%d", created.ID)

	identity := t.IdentityAttribute()
	if err := r.catalog.CreateMetafield(ctx, created.ID, identity); err != nil {
		r.log.Printf("    ❌ Помилка створення Article: %v", err)
	} else {
		r.log.Printf("    ✨ Створено Article → '%s'", identity.Value)
	}

	for _, attr := range t.Attributes {
		if attr.Key == product.IdentityKey {
			continue
		}
		if err := r.catalog.CreateMetafield(ctx, created.ID, attr); err != nil {
			r.log.Printf("    ❌ Помилка створення metafield '%s': %v", attr.Key, err)
			continue
		}
		r.log.Printf("    ✨ Metafield '%s' створено", attr.Key)
	}

	return Created
}

func (r *Reconciler) update(ctx context.Context, t *product.Target, existing shopify.RemoteProduct) Outcome {
	suffix := ""
	if t.IncludePriceQty {
		suffix = " (ціни/залишки)"
	}
	r.log.Printf("🛠️ Оновлюємо товар ID=%d%s", existing.ID, suffix)

	replaced, err := r.catalog.ReplaceProduct(ctx, existing.ID, t)
	if err != nil {
		r.errs = append(r.errs, err)
		r.log.Printf("    ❌ Помилка оновлення товару ID=%d: %v", existing.ID, err)
		return Failed
	}
	r.log.Print("    ✅ Товар ОНОВЛЕНО")

	r.syncAttributes(ctx, t, existing.ID)

	if !t.IncludePriceQty {
		r.log.Print("    ⚠️ Опція оновлення цін/залишків вимкнена")
		return Updated
	}

	variants := existing.Variants
	if replaced != nil && len(replaced.Variants) > 0 {
		variants = replaced.Variants
	}

	r.log.Print("    🔄 Оновлюємо ціни та залишки:")
	r.syncVariants(ctx, t, variants)

	return Updated
}

// syncAttributes 갱신 경로의 메타필드 규칙을 적용합니다.
//
// 식별 메타필드는 없으면 생성하고, 값이 비어 있을 때만 채웁니다.
// country/season/last_size는 상품 페이로드로만 전달되며 개별 호출하지 않습니다.
func (r *Reconciler) syncAttributes(ctx context.Context, t *product.Target, productID int64) {
	remote, err := r.catalog.ListMetafields(ctx, productID, product.AttributeNamespace)
	if err != nil {
		r.log.Printf("    ❌ Помилка отримання metafields: %v", err)
		remote = nil
	}

	existing := make(map[string]shopify.RemoteAttribute, len(remote))
	pairs := make([]string, 0, len(remote))
	for _, m := range remote {
		existing[m.Key] = m
		pairs = append(pairs, m.Key+"="+m.Value)
	}
	r.log.Printf("    ℹ️ Існуючі MF та їхні значення: [%s]", strings.Join(pairs, ", "))

	identity := t.IdentityAttribute()
	if cur, ok := existing[product.IdentityKey]; ok {
		r.log.Printf("    ℹ️ Поточне значення Article = '%s'", cur.Value)
		if cur.Value == "" {
			if err := r.catalog.UpdateMetafield(ctx, productID, cur.ID, identity); err != nil {
				r.log.Printf("    ❌ Помилка оновлення Article: %v", err)
			} else {
				r.log.Printf("    🔄 Article оновлено → '%s'", identity.Value)
			}
		}
	} else {
		if err := r.catalog.CreateMetafield(ctx, productID, identity); err != nil {
			r.log.Printf("    ❌ Помилка створення Article: %v", err)
		} else {
			r.log.Printf("    ✨ Створено Article → '%s'", identity.Value)
		}
	}

	for _, attr := range t.Attributes {
		if product.IsReserved(attr.Key) {
			continue
		}

		if cur, ok := existing[attr.Key]; ok {
			if err := r.catalog.UpdateMetafield(ctx, productID, cur.ID, attr); err != nil {
				r.log.Printf("    ❌ Помилка оновлення metafield '%s': %v", attr.Key, err)
				continue
			}
			r.log.Printf("    🔄 Metafield '%s' оновлено", attr.Key)
			continue
		}

		if err := r.catalog.CreateMetafield(ctx, productID, attr); err != nil {
			r.log.Printf("    ❌ Помилка створення metafield '%s': %v", attr.Key, err)
			continue
		}
		r.log.Printf("    ✨ Metafield '%s' створено", attr.Key)
	}
}

// syncVariants 원격 변형마다 대응하는 목표 변형을 찾아 가격과 재고를 각각 설정합니다.
func (r *Reconciler) syncVariants(ctx context.Context, t *product.Target, variants []shopify.RemoteVariant) {
	for _, rv := range variants {
		match := t.MatchVariant(rv.Option1)
		pricing := match.Pricing

		if pricing.CompareAt != nil {
			r.log.Printf("      💲 Зі знижкою: price=%s, compare_at_price=%s", pricing.Price, pricing.CompareAt)
		} else {
			r.log.Printf("      💲 Без знижки: price=%s", pricing.Price)
		}

		if err := r.catalog.UpdateVariantPrice(ctx, rv.ID, pricing); err != nil {
			r.log.Printf("      ❌ Помилка оновлення ціни variant_id=%d: %v", rv.ID, err)
		} else {
			r.log.Printf("      ✅ Variant %d price updated", rv.ID)
		}

		if err := r.catalog.SetInventoryLevel(ctx, r.opts.LocationID, rv.InventoryItemID, match.Quantity); err != nil {
			r.log.Printf("      ❌ Помилка оновлення залишків для option=%q: %v", rv.Option1, err)
		} else {
			r.log.Printf("      • option=%q → доступно=%d", rv.Option1, match.Quantity)
		}
	}
}
