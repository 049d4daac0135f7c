package product

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Price 숫자로 해석된 가격 또는 해석에 실패한 원본 문자열 중 하나를 담는 값입니다.
//
// 숫자 비교는 Numeric 가격에 대해서만 수행되며, Unparsed 가격은 원본 문자열 그대로 전송됩니다.
type Price struct {
	amount  float64
	raw     string
	numeric bool
}

// NumericPrice 숫자 가격을 생성합니다.
func NumericPrice(amount float64) Price {
	return Price{amount: amount, numeric: true}
}

// UnparsedPrice 숫자로 해석할 수 없는 가격 문자열을 감쌉니다.
func UnparsedPrice(raw string) Price {
	return Price{raw: raw}
}

// ParsePrice 가격 문자열을 해석합니다. 공백, 숫자가 아닌 값, NaN/Inf는 Unparsed가 됩니다.
func ParsePrice(s string) Price {
	trimmed := strings.TrimSpace(s)
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return UnparsedPrice(trimmed)
	}
	return NumericPrice(v)
}

func (p Price) IsNumeric() bool { return p.numeric }

// Amount 숫자 가격의 값을 반환합니다. Unparsed 가격이면 ok가 false입니다.
func (p Price) Amount() (amount float64, ok bool) {
	return p.amount, p.numeric
}

// String 원격 API로 전송되는 가격 문자열을 반환합니다. 숫자 가격은 불필요한 소수점 없이 표현됩니다.
func (p Price) String() string {
	if p.numeric {
		return strconv.FormatFloat(p.amount, 'f', -1, 64)
	}
	return p.raw
}

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// Pricing 변형 하나의 판매 가격과 (할인 중일 때의) 정상 가격입니다.
type Pricing struct {
	Price     Price
	CompareAt *Price
}

// OnSale 할인 가격이 적용되었는지 여부를 반환합니다.
func (p Pricing) OnSale() bool {
	return p.CompareAt != nil
}

// ResolvePrice 정상가와 할인가로 변형의 가격을 결정합니다.
//
// 정상가를 해석할 수 없으면 원본 문자열을 그대로 사용합니다.
// 할인가가 비어 있지 않고 정상가보다 낮으며 할인 가격 반영이 켜져 있으면
// 할인가가 판매 가격, 정상가가 비교 가격이 됩니다. 그 밖에는 정상가만 사용합니다.
func ResolvePrice(retail, discount string, saleEnabled bool) Pricing {
	r := ParsePrice(retail)
	retailAmount, ok := r.Amount()
	if !ok {
		return Pricing{Price: r}
	}

	if saleEnabled && strings.TrimSpace(discount) != "" {
		d := ParsePrice(discount)
		if discountAmount, ok := d.Amount(); ok && discountAmount < retailAmount {
			return Pricing{Price: d, CompareAt: &r}
		}
	}

	return Pricing{Price: r}
}
