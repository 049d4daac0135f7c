// Package feed 상품 피드(구분자 텍스트)와 보강 데이터(스프레드시트)를 읽어
// 동기화 엔진이 사용하는 레코드와 그룹으로 변환합니다.
package feed

import (
	"fmt"
	"strings"

	apperrors "github.com/darkkaiser/catalog-sync/internal/pkg/errors"
)

const component = "catalog.feed"

// SchemaError 필수 필드가 피드 헤더에 없을 때 반환됩니다.
//
// 그룹화 자체가 불가능해지므로 동기화 실행 전체가 중단됩니다.
type SchemaError struct {
	// Field 누락된 필드 이름, 헤더 행 자체가 없으면 빈 문자열
	Field string

	cause error
}

func newSchemaError(field string) *SchemaError {
	var cause error
	if field == "" {
		cause = apperrors.New(apperrors.InvalidInput, "피드에 헤더 행이 없습니다")
	} else {
		cause = apperrors.Newf(apperrors.InvalidInput, "필수 필드 '%s'가 피드 헤더에 없습니다", field)
	}
	return &SchemaError{Field: field, cause: cause}
}

func (e *SchemaError) Error() string {
	return e.cause.Error()
}

func (e *SchemaError) Unwrap() error {
	return e.cause
}

// Header 피드 헤더 행의 필드 이름과 열 위치를 보관합니다.
//
// 모든 값 접근은 필드 이름으로 이루어지며, 열 순서가 바뀌어도 결과는 같습니다.
type Header struct {
	names []string
	index map[string]int
}

// NewHeader 헤더 행으로부터 이름→열 위치 표를 만듭니다.
// 같은 이름이 여러 번 나오면 마지막 열이 사용됩니다.
func NewHeader(names []string) *Header {
	h := &Header{
		names: make([]string, len(names)),
		index: make(map[string]int, len(names)),
	}
	for i, name := range names {
		name = strings.TrimSpace(name)
		h.names[i] = name
		h.index[name] = i
	}
	return h
}

// Names 헤더의 필드 이름을 원래 순서대로 반환합니다.
func (h *Header) Names() []string {
	out := make([]string, len(h.names))
	copy(out, h.names)
	return out
}

// Has 필드가 헤더에 존재하는지 확인합니다.
func (h *Header) Has(name string) bool {
	_, ok := h.index[name]
	return ok
}

// Require 주어진 필드가 모두 존재하는지 확인하고, 처음 발견된 누락 필드에 대한 SchemaError를 반환합니다.
func (h *Header) Require(names ...string) error {
	for _, name := range names {
		if !h.Has(name) {
			return newSchemaError(name)
		}
	}
	return nil
}

// NewRecord 이 헤더에 묶인 레코드를 만듭니다. cells는 복사되어 이후 변경의 영향을 받지 않습니다.
func (h *Header) NewRecord(cells []string) Record {
	c := make([]string, len(cells))
	copy(c, cells)
	return Record{header: h, cells: c}
}

// Record 피드의 한 행입니다. 재고 단위(사이즈 등) 하나에 해당합니다.
type Record struct {
	header *Header
	cells  []string
}

// Get 필드 값을 그대로 반환합니다. 필드가 없거나 행이 짧으면 빈 문자열을 반환합니다.
func (r Record) Get(name string) string {
	if r.header == nil {
		return ""
	}
	i, ok := r.header.index[name]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return r.cells[i]
}

// Trimmed 앞뒤 공백을 제거한 필드 값을 반환합니다.
func (r Record) Trimmed(name string) string {
	return strings.TrimSpace(r.Get(name))
}

func (r Record) String() string {
	return fmt.Sprintf("%v", r.cells)
}
