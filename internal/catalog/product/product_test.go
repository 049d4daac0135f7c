package product

import (
	"encoding/json"
	"testing"

	"github.com/darkkaiser/catalog-sync/internal/catalog/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testHeaderNames = []string{
	"Articul", "GoodID", "Description", "ProducerCollectionFull", "Country", "Season",
	"visibility_on_site", "GoodTypeFull", "TheSize", "WarehouseQuantity", "Barcode",
	"RetailPrice", "RetailPriceWithDiscount", "dlina_stelki", "Material",
}

type testRow struct {
	size, qty, retail, discount, insole string
}

func newTestGroup(t *testing.T, key string, rows ...testRow) (*feed.Header, feed.Group) {
	t.Helper()

	h := feed.NewHeader(testHeaderNames)
	g := feed.Group{Key: key}
	for i, r := range rows {
		g.Records = append(g.Records, h.NewRecord([]string{
			key, "100", "Zimovi Boots", " Acme ", " Україна ", "Зима",
			"1", "Черевики", r.size, r.qty, "48200" + string(rune('0'+i)),
			r.retail, r.discount, r.insole, " шкіра ",
		}))
	}
	return h, g
}

func newTestBuilder(t *testing.T, h *feed.Header, toggles Toggles) *Builder {
	t.Helper()

	b, err := NewBuilder(h, Options{AttributeFields: []string{"Material", "NotInHeader"}, Toggles: toggles})
	require.NoError(t, err)
	return b
}

var allOn = Toggles{UpdatePriceQty: true, UpdateSalePrice: true, UpdateDescription: true}

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"영문 공백", "Zimovi Boots", "zimovi-boots"},
		{"연속된 구분자", "  Boots!!  (new) ", "boots-new"},
		{"키릴 문자 유지", "Зимові Черевики", "зимові-черевики"},
		{"밑줄과 하이픈 유지", "a_b-c", "a_b-c"},
		{"앞뒤 하이픈 제거", "--x--", "x"},
		{"빈 문자열", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestHandle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "zimovi-boots-ab-12", Handle("Zimovi Boots", "AB 12"))
}

func TestResolvePrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		retail        string
		discount      string
		sale          bool
		wantPrice     string
		wantNumeric   bool
		wantCompareAt string
	}{
		{"할인 적용", "100", "80", true, "80", true, "100"},
		{"할인 비활성화", "100", "80", false, "100", true, ""},
		{"할인가가 더 높음", "100", "120", true, "100", true, ""},
		{"할인가 동일", "100", "100", true, "100", true, ""},
		{"할인가 공백", "100", "  ", true, "100", true, ""},
		{"할인가 해석 불가", "100", "n/a", true, "100", true, ""},
		{"소수점 가격", "99.50", "79.9", true, "79.9", true, "99.5"},
		{"정상가 해석 불가", " call us ", "80", true, "call us", false, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := ResolvePrice(tt.retail, tt.discount, tt.sale)
			assert.Equal(t, tt.wantPrice, p.Price.String())
			assert.Equal(t, tt.wantNumeric, p.Price.IsNumeric())
			if tt.wantCompareAt == "" {
				assert.Nil(t, p.CompareAt)
				assert.False(t, p.OnSale())
			} else {
				require.NotNil(t, p.CompareAt)
				assert.Equal(t, tt.wantCompareAt, p.CompareAt.String())
			}

			assert.Equal(t, p, ResolvePrice(tt.retail, tt.discount, tt.sale))
		})
	}
}

func TestPrice_MarshalJSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(map[string]Price{"n": NumericPrice(80), "u": UnparsedPrice("abc")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":"80","u":"abc"}`, string(b))

	amount, ok := UnparsedPrice("abc").Amount()
	assert.False(t, ok)
	assert.Zero(t, amount)
}

func TestParseQuantity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, ParseQuantity(" 5 "))
	assert.Equal(t, 3, ParseQuantity("3.0"))
	assert.Equal(t, 0, ParseQuantity(""))
	assert.Equal(t, 0, ParseQuantity("many"))
	assert.Equal(t, -2, ParseQuantity("-2"))
}

func TestNewBuilder_필수_필드_누락(t *testing.T) {
	t.Parallel()

	_, err := NewBuilder(feed.NewHeader([]string{"Articul", "GoodID"}), Options{})

	var schemaErr *feed.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, FieldDescription, schemaErr.Field)
}

func TestNewBuilder_옵션_후보_검증(t *testing.T) {
	t.Parallel()

	h, _ := newTestGroup(t, "AB 12")
	b := newTestBuilder(t, h, allOn)

	assert.Equal(t, []string{"objem_golenisha"}, b.MissingOptions())
}

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	h, g := newTestGroup(t, "AB 12",
		testRow{size: "39", qty: "0", retail: "100", discount: "80", insole: "25"},
		testRow{size: "38", qty: "2", retail: "100", discount: "", insole: "24.5"},
	)
	b := newTestBuilder(t, h, allOn)

	target := b.Build(g, nil)

	assert.Equal(t, "AB 12", target.GroupKey)
	assert.Equal(t, "Zimovi Boots", target.Title)
	assert.Equal(t, "zimovi-boots-ab-12", target.Handle)
	assert.Equal(t, StatusActive, target.Status)
	assert.Equal(t, "Acme", target.Vendor)
	assert.Equal(t, "Черевики", target.Tags)
	assert.True(t, target.IncludeDescription)
	assert.True(t, target.IncludePriceQty)
	assert.Empty(t, target.Images)

	assert.Equal(t, []Option{
		{Name: "TheSize", Values: []string{"38", "39"}},
		{Name: "dlina_stelki", Values: []string{"24.5", "25"}},
	}, target.Options)

	require.Len(t, target.Variants, 2)
	assert.Equal(t, []string{"39", "25"}, target.Variants[0].OptionValues)
	assert.Equal(t, "AB 12", target.Variants[0].SKU)
	assert.Equal(t, "80", target.Variants[0].Pricing.Price.String())
	assert.Equal(t, "100", target.Variants[1].Pricing.Price.String())
	assert.Equal(t, 2, target.Variants[1].Quantity)

	assert.Equal(t, []string{"country", "season", "Material", "last_size"}, target.AttributeKeys())
	assert.Equal(t, "Україна", target.Attributes[0].Value)
	assert.Equal(t, "шкіра", target.Attributes[2].Value)
	assert.Equal(t, NewAttribute(LastSizeKey, "38"), target.Attributes[3])

	assert.Equal(t, NewAttribute(IdentityKey, "AB 12"), target.IdentityAttribute())
}

func TestBuilder_Build_보강_데이터(t *testing.T) {
	t.Parallel()

	h, g := newTestGroup(t, "AB 12", testRow{size: "38", qty: "1", retail: "100"})
	b := newTestBuilder(t, h, Toggles{})

	target := b.Build(g, &feed.Enrichment{Title: "Зимові черевики", Images: []string{"https://cdn/1.jpg"}})

	assert.Equal(t, "Зимові черевики", target.Title)
	assert.Equal(t, "зимові-черевики-ab-12", target.Handle)
	assert.Equal(t, "Zimovi Boots", target.Description)
	assert.Equal(t, []string{"https://cdn/1.jpg"}, target.Images)
	assert.False(t, target.IncludeDescription)
	assert.False(t, target.IncludePriceQty)

	untitled := b.Build(g, &feed.Enrichment{})
	assert.Equal(t, "Zimovi Boots", untitled.Title)
}

func TestBuilder_Build_last_size(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		qty      []string
		expected bool
	}{
		{"재고가 하나만 남음", []string{"0", "3", "0"}, true},
		{"재고가 여러 개", []string{"1", "3", "0"}, false},
		{"재고 없음", []string{"0", "0", ""}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rows := make([]testRow, 0, len(tt.qty))
			for i, q := range tt.qty {
				rows = append(rows, testRow{size: string(rune('6' + i)), qty: q, retail: "10", insole: "x"})
			}
			h, g := newTestGroup(t, "K1", rows...)
			target := newTestBuilder(t, h, allOn).Build(g, nil)

			assert.Equal(t, tt.expected, containsKey(target.AttributeKeys(), LastSizeKey))
		})
	}
}

func TestBuilder_Build_옵션_포함_단조성(t *testing.T) {
	t.Parallel()

	h, g := newTestGroup(t, "AB 12",
		testRow{size: "38", qty: "1", retail: "10", insole: "24"},
		testRow{size: "39", qty: "1", retail: "10", insole: " "},
	)
	b := newTestBuilder(t, h, allOn)

	target := b.Build(g, nil)
	assert.Equal(t, []string{"TheSize"}, target.OptionNames())

	// 레코드를 제거해도 이미 포함된 옵션은 빠지지 않는다
	sub := feed.Group{Key: g.Key, Records: g.Records[:1]}
	assert.Subset(t, b.Build(sub, nil).OptionNames(), target.OptionNames())
}

func TestTarget_MatchVariant(t *testing.T) {
	t.Parallel()

	h, g := newTestGroup(t, "AB 12",
		testRow{size: "38", qty: "1", retail: "10", insole: "x"},
		testRow{size: "39", qty: "4", retail: "20", insole: "x"},
	)
	target := newTestBuilder(t, h, allOn).Build(g, nil)

	assert.Equal(t, 4, target.MatchVariant("39").Quantity)
	assert.Equal(t, 1, target.MatchVariant("40").Quantity)

	optionless := &Target{Variants: target.Variants}
	assert.Equal(t, 1, optionless.MatchVariant("39").Quantity)
	assert.Equal(t, Variant{}, (&Target{}).MatchVariant("x"))
}

func TestIsReserved(t *testing.T) {
	t.Parallel()

	for _, k := range []string{"country", "season", "last_size", "Article"} {
		assert.True(t, IsReserved(k), k)
	}
	assert.False(t, IsReserved("Material"))
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
