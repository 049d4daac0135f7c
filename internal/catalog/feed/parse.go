package feed

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	apperrors "github.com/darkkaiser/catalog-sync/internal/pkg/errors"
	"golang.org/x/net/html/charset"
)

const (
	// DefaultDelimiter 피드 파일의 기본 구분자
	DefaultDelimiter = ';'

	// DefaultFallbackEncoding UTF-8이 아닌 피드에 적용하는 기본 문자셋
	DefaultFallbackEncoding = "windows-1251"

	utf8BOM = "\ufeff"
)

// Feed 헤더와 데이터 행을 파싱한 결과입니다.
type Feed struct {
	Header  *Header
	Records []Record
}

// Decode 원본 바이트를 UTF-8 문자열로 변환합니다.
//
// 올바른 UTF-8이면 그대로 사용하고, 아니면 fallback 문자셋(예: windows-1251)으로 디코딩합니다.
func Decode(raw []byte, fallback string) (string, error) {
	if utf8.Valid(raw) {
		return strings.TrimPrefix(string(raw), utf8BOM), nil
	}

	if fallback == "" {
		fallback = DefaultFallbackEncoding
	}

	enc, name := charset.Lookup(fallback)
	if enc == nil {
		return "", apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 피드 문자셋입니다: '%s'", fallback)
	}

	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", apperrors.Wrapf(err, apperrors.ParsingFailed, "피드를 %s 문자셋으로 디코딩하지 못했습니다", name)
	}

	return string(decoded), nil
}

// Parse 구분자 텍스트를 읽어 첫 행을 헤더로, 나머지를 레코드로 변환합니다.
//
// 행마다 필드 수가 달라도 허용하며, 짧은 행의 누락된 값은 빈 문자열로 취급됩니다.
func Parse(r io.Reader, delimiter rune) (*Feed, error) {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}

	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	names, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, newSchemaError("")
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ParsingFailed, "피드 헤더 행을 읽지 못했습니다")
	}
	if len(names) > 0 {
		names[0] = strings.TrimPrefix(names[0], utf8BOM)
	}

	header := NewHeader(names)
	feed := &Feed{Header: header}

	for {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ParsingFailed, "피드 데이터 행을 읽지 못했습니다")
		}
		if len(cells) == 1 && strings.TrimSpace(cells[0]) == "" {
			continue
		}
		feed.Records = append(feed.Records, header.NewRecord(cells))
	}

	return feed, nil
}
