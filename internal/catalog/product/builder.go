// Package product 피드 그룹과 보강 데이터로부터 원격 상품의 목표 상태를 만듭니다.
package product

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/darkkaiser/catalog-sync/internal/catalog/feed"
	applog "github.com/darkkaiser/catalog-sync/pkg/log"
)

const component = "catalog.product"

// 피드 필드 이름
const (
	FieldArticul             = "Articul"
	FieldGoodID              = "GoodID"
	FieldDescription         = "Description"
	FieldProducer            = "ProducerCollectionFull"
	FieldCountry             = "Country"
	FieldSeason              = "Season"
	FieldVisibility          = "visibility_on_site"
	FieldGoodType            = "GoodTypeFull"
	FieldSize                = "TheSize"
	FieldQuantity            = "WarehouseQuantity"
	FieldBarcode             = "Barcode"
	FieldRetailPrice         = "RetailPrice"
	FieldRetailPriceDiscount = "RetailPriceWithDiscount"
)

// RequiredFields 피드 헤더에 반드시 있어야 하는 필드 목록입니다.
var RequiredFields = []string{
	FieldArticul,
	FieldGoodID,
	FieldDescription,
	FieldProducer,
	FieldCountry,
	FieldSeason,
	FieldVisibility,
	FieldGoodType,
	FieldSize,
	FieldQuantity,
	FieldBarcode,
	FieldRetailPrice,
	FieldRetailPriceDiscount,
}

// DefaultOptionCandidates 옵션으로 사용할 수 있는 필드의 기본 목록입니다. 순서가 옵션 순서가 됩니다.
var DefaultOptionCandidates = []string{FieldSize, "dlina_stelki", "objem_golenisha"}

// Toggles 한 번의 동기화 실행 동안 고정되는 동작 스위치입니다.
type Toggles struct {
	UpdatePriceQty    bool
	UpdateSalePrice   bool
	UpdateDescription bool
}

// Options Builder 생성 옵션입니다.
type Options struct {
	// OptionCandidates 옵션 후보 필드, 비어 있으면 DefaultOptionCandidates
	OptionCandidates []string

	// AttributeFields 메타필드로 추가할 피드 필드 (설정의 meta_columns)
	AttributeFields []string

	Toggles Toggles
}

// Builder 그룹을 Target으로 변환합니다. 헤더 검증은 생성 시 한 번만 수행됩니다.
type Builder struct {
	options         []string
	missingOptions  []string
	attributeFields []string
	toggles         Toggles
}

// NewBuilder 헤더를 검증하고 Builder를 생성합니다.
//
// 필수 필드가 없으면 feed.SchemaError를 반환합니다.
// 헤더에 없는 옵션 후보는 MissingOptions로 보고되며, 헤더에 없는 메타필드 필드는 무시됩니다.
func NewBuilder(header *feed.Header, opts Options) (*Builder, error) {
	if err := header.Require(RequiredFields...); err != nil {
		return nil, err
	}

	candidates := opts.OptionCandidates
	if len(candidates) == 0 {
		candidates = DefaultOptionCandidates
	}

	b := &Builder{toggles: opts.Toggles}
	for _, c := range candidates {
		if header.Has(c) {
			b.options = append(b.options, c)
		} else {
			b.missingOptions = append(b.missingOptions, c)
		}
	}
	for _, f := range opts.AttributeFields {
		if header.Has(f) {
			b.attributeFields = append(b.attributeFields, f)
		}
	}

	if len(b.missingOptions) > 0 {
		applog.WithComponentAndFields(component, applog.Fields{
			"missing_options": b.missingOptions,
		}).Warn("일부 옵션 후보 필드가 피드 헤더에 없습니다")
	}

	return b, nil
}

// MissingOptions 헤더에 없는 옵션 후보 필드를 반환합니다.
func (b *Builder) MissingOptions() []string {
	return append([]string(nil), b.missingOptions...)
}

// Build 그룹과 보강 데이터로 Target을 만듭니다. 원격 호출은 하지 않습니다.
func (b *Builder) Build(group feed.Group, enrichment *feed.Enrichment) *Target {
	rep := group.Representative()

	title := rep.Get(FieldDescription)
	var images []string
	if enrichment != nil {
		if enrichment.Title != "" {
			title = enrichment.Title
		}
		images = append(images, enrichment.Images...)
	}

	status := StatusDraft
	if rep.Get(FieldVisibility) == "1" {
		status = StatusActive
	}

	t := &Target{
		GroupKey:           group.Key,
		Title:              title,
		Description:        rep.Get(FieldDescription),
		Vendor:             rep.Trimmed(FieldProducer),
		Handle:             Handle(title, group.Key),
		Status:             status,
		Tags:               rep.Get(FieldGoodType),
		Images:             images,
		IncludeDescription: b.toggles.UpdateDescription,
		IncludePriceQty:    b.toggles.UpdatePriceQty,
	}

	t.Options = b.buildOptions(group.Records)
	t.Variants = b.buildVariants(group.Key, group.Records, t.Options)
	t.Attributes = b.buildAttributes(rep, group.Records)

	return t
}

// buildOptions 모든 레코드에서 값이 비어 있지 않은 후보 필드만 옵션으로 사용합니다.
func (b *Builder) buildOptions(records []feed.Record) []Option {
	var options []Option

	for _, name := range b.options {
		distinct := make(map[string]struct{})
		complete := len(records) > 0
		for _, r := range records {
			v := r.Trimmed(name)
			if v == "" {
				complete = false
				break
			}
			distinct[v] = struct{}{}
		}
		if !complete {
			continue
		}

		values := make([]string, 0, len(distinct))
		for v := range distinct {
			values = append(values, v)
		}
		sort.Strings(values)

		options = append(options, Option{Name: name, Values: values})
	}

	return options
}

func (b *Builder) buildVariants(sku string, records []feed.Record, options []Option) []Variant {
	variants := make([]Variant, 0, len(records))

	for _, r := range records {
		values := make([]string, 0, len(options))
		for _, o := range options {
			values = append(values, r.Trimmed(o.Name))
		}

		variants = append(variants, Variant{
			SKU:          sku,
			Barcode:      r.Get(FieldBarcode),
			OptionValues: values,
			Quantity:     ParseQuantity(r.Get(FieldQuantity)),
			Pricing:      ResolvePrice(r.Get(FieldRetailPrice), r.Get(FieldRetailPriceDiscount), b.toggles.UpdateSalePrice),
		})
	}

	return variants
}

func (b *Builder) buildAttributes(rep feed.Record, records []feed.Record) []Attribute {
	attrs := []Attribute{
		NewAttribute(CountryKey, rep.Trimmed(FieldCountry)),
		NewAttribute(SeasonKey, rep.Get(FieldSeason)),
	}

	for _, f := range b.attributeFields {
		attrs = append(attrs, NewAttribute(f, rep.Trimmed(f)))
	}

	if sizes := ActiveSizes(records); len(sizes) == 1 {
		attrs = append(attrs, NewAttribute(LastSizeKey, sizes[0]))
	}

	return attrs
}

// ActiveSizes 재고가 남아 있는 레코드의 사이즈를 레코드 순서대로 반환합니다.
func ActiveSizes(records []feed.Record) []string {
	var sizes []string
	for _, r := range records {
		if ParseQuantity(r.Get(FieldQuantity)) > 0 {
			sizes = append(sizes, r.Trimmed(FieldSize))
		}
	}
	return sizes
}

// ParseQuantity 재고 수량을 해석합니다. 비어 있거나 숫자가 아니면 0입니다.
func ParseQuantity(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int(f)
	}
	return 0
}
