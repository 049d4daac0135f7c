package product

// 원격 메타필드 규칙
const (
	AttributeNamespace = "custom"
	AttributeType      = "single_line_text_field"

	// IdentityKey 원격 상품과 피드 그룹을 연결하는 식별 메타필드 키
	IdentityKey = "Article"

	CountryKey  = "country"
	SeasonKey   = "season"
	LastSizeKey = "last_size"
)

// 상품 상태
const (
	StatusActive = "active"
	StatusDraft  = "draft"
)

// Option 상품 옵션(예: 사이즈)과 그 값 목록입니다.
type Option struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Variant 피드 레코드 하나에 대응하는 변형의 목표 상태입니다.
type Variant struct {
	SKU          string
	Barcode      string
	OptionValues []string
	Quantity     int
	Pricing      Pricing
}

// Attribute 상품에 붙는 네임스페이스 메타필드입니다.
type Attribute struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	Type      string `json:"type"`
}

// NewAttribute 기본 네임스페이스와 타입을 사용하는 Attribute를 생성합니다.
func NewAttribute(key, value string) Attribute {
	return Attribute{
		Namespace: AttributeNamespace,
		Key:       key,
		Value:     value,
		Type:      AttributeType,
	}
}

// IsReserved 갱신 경로에서 개별 메타필드 호출로 다루지 않는 키인지 확인합니다.
func IsReserved(key string) bool {
	switch key {
	case CountryKey, SeasonKey, LastSizeKey, IdentityKey:
		return true
	}
	return false
}

// Target 그룹 하나로부터 만들어진 원격 상품의 목표 상태입니다.
type Target struct {
	GroupKey    string
	Title       string
	Description string
	Vendor      string
	Handle      string
	Status      string
	Tags        string

	Options    []Option
	Variants   []Variant
	Attributes []Attribute
	Images     []string

	// IncludeDescription 설명(body_html)을 전송할지 여부
	IncludeDescription bool

	// IncludePriceQty 가격과 재고를 상품 페이로드에 포함할지 여부
	IncludePriceQty bool
}

// IdentityAttribute 그룹 키를 값으로 하는 식별 메타필드를 반환합니다.
func (t *Target) IdentityAttribute() Attribute {
	return NewAttribute(IdentityKey, t.GroupKey)
}

// MatchVariant 원격 변형의 첫 번째 옵션 값으로 목표 변형을 찾습니다.
//
// 옵션이 없거나 일치하는 변형이 없으면 그룹의 첫 번째 변형을 반환합니다.
func (t *Target) MatchVariant(option1 string) Variant {
	if len(t.Options) > 0 {
		for _, v := range t.Variants {
			if len(v.OptionValues) > 0 && v.OptionValues[0] == option1 {
				return v
			}
		}
	}
	if len(t.Variants) == 0 {
		return Variant{}
	}
	return t.Variants[0]
}

// OptionNames 옵션 이름 목록을 반환합니다.
func (t *Target) OptionNames() []string {
	names := make([]string, 0, len(t.Options))
	for _, o := range t.Options {
		names = append(names, o.Name)
	}
	return names
}

// AttributeKeys 메타필드 키 목록을 반환합니다.
func (t *Target) AttributeKeys() []string {
	keys := make([]string, 0, len(t.Attributes))
	for _, a := range t.Attributes {
		keys = append(keys, a.Key)
	}
	return keys
}
