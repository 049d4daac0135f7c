package feed

import (
	"strings"

	apperrors "github.com/darkkaiser/catalog-sync/internal/pkg/errors"
	applog "github.com/darkkaiser/catalog-sync/pkg/log"
	"github.com/xuri/excelize/v2"
)

// 보강 스프레드시트의 열 위치 (헤더 행 없음)
const (
	enrichKeyColumn       = 0
	enrichTitleColumn     = 6
	enrichImagesColumn    = 17
	enrichImagesAltColumn = 18
)

// Enrichment 상품 제목 재정의와 이미지 URL 목록입니다.
type Enrichment struct {
	Title  string
	Images []string
}

// EnrichmentTable "<그룹 키>-<GoodID>" 를 키로 하는 보강 데이터 표입니다.
type EnrichmentTable map[string]Enrichment

// EnrichmentKey 그룹 키와 보조 식별자로 조회 키를 만듭니다.
func EnrichmentKey(groupKey, secondaryID string) string {
	return groupKey + "-" + secondaryID
}

// Lookup 키에 해당하는 보강 데이터를 반환합니다. 없으면 nil입니다.
func (t EnrichmentTable) Lookup(key string) *Enrichment {
	e, ok := t[key]
	if !ok {
		return nil
	}
	return &e
}

// ExcelEnrichment 스프레드시트(.xlsx)의 첫 번째 시트에서 보강 데이터를 읽습니다.
type ExcelEnrichment struct {
	Path string
}

// Load 스프레드시트 전체를 읽어 EnrichmentTable을 만듭니다.
func (e ExcelEnrichment) Load() (EnrichmentTable, error) {
	f, err := excelize.OpenFile(e.Path)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.NotFound, "보강 스프레드시트를 열 수 없습니다: '%s'", e.Path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.Newf(apperrors.ParsingFailed, "보강 스프레드시트에 시트가 없습니다: '%s'", e.Path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ParsingFailed, "보강 스프레드시트 시트를 읽지 못했습니다: '%s'", sheets[0])
	}

	table := parseEnrichmentRows(rows)

	applog.WithComponentAndFields(component, applog.Fields{
		"path":    e.Path,
		"sheet":   sheets[0],
		"entries": len(table),
	}).Info("보강 스프레드시트 로드 완료")

	return table, nil
}

func parseEnrichmentRows(rows [][]string) EnrichmentTable {
	table := make(EnrichmentTable, len(rows))

	for _, row := range rows {
		key := cell(row, enrichKeyColumn)
		if key == "" {
			continue
		}

		images := cell(row, enrichImagesColumn)
		if images == "" {
			images = cell(row, enrichImagesAltColumn)
		}

		table[key] = Enrichment{
			Title:  cell(row, enrichTitleColumn),
			Images: splitImageURLs(images),
		}
	}

	return table
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// splitImageURLs ';' 또는 줄바꿈으로 구분된 URL 목록을 나눕니다.
func splitImageURLs(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == '\n' || r == '\r'
	})

	urls := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			urls = append(urls, p)
		}
	}
	return urls
}
