// Package settings 동기화 동작 스위치와 추가 메타필드 열 목록을 JSON 파일에 보관합니다.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	apperrors "github.com/darkkaiser/catalog-sync/internal/pkg/errors"
	applog "github.com/darkkaiser/catalog-sync/pkg/log"
	"github.com/iancoleman/strcase"
)

const component = "service.settings"

// DefaultFile 설정 파일의 기본 경로
const DefaultFile = "sync_settings.json"

const tempFilePattern = "sync-settings-*.tmp"

// 스위치 키
const (
	KeyUpdatePriceQty    = "update_price_qty"
	KeyUpdateSalePrice   = "update_sale_price"
	KeyUpdateDescription = "update_description"
)

// Settings 동기화 실행 시작 시점에 고정되는 설정 스냅샷입니다.
type Settings struct {
	UpdatePriceQty    bool     `json:"update_price_qty"`
	UpdateSalePrice   bool     `json:"update_sale_price"`
	UpdateDescription bool     `json:"update_description"`
	MetaColumns       []string `json:"meta_columns"`
}

// Defaults 모든 스위치가 켜진 기본 설정을 반환합니다.
func Defaults() Settings {
	return Settings{
		UpdatePriceQty:    true,
		UpdateSalePrice:   true,
		UpdateDescription: true,
		MetaColumns:       []string{},
	}
}

func (s Settings) clone() Settings {
	s.MetaColumns = append([]string{}, s.MetaColumns...)
	return s
}

// Store 설정 파일을 읽고 쓰는 저장소입니다. 동시에 사용해도 안전합니다.
type Store struct {
	path string

	mu      sync.RWMutex
	current Settings
}

// Open 설정 파일을 엽니다.
//
// 파일이 없으면 기본값으로 생성하고, 파일이 손상되었으면 경고를 남긴 뒤 기본값을 사용합니다.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultFile
	}

	s := &Store{path: path, current: Defaults()}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if err := s.writeAtomic(s.current); err != nil {
			return nil, err
		}
		applog.WithComponentAndFields(component, applog.Fields{
			"file": path,
		}).Info("설정 파일이 없어 기본값으로 생성하였습니다")

	case err != nil:
		return nil, apperrors.Wrapf(err, apperrors.System, "설정 파일을 읽을 수 없습니다: '%s'", path)

	default:
		loaded := Defaults()
		if err := json.Unmarshal(data, &loaded); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"file":  path,
				"error": err,
			}).Warn("설정 파일이 손상되어 기본값을 사용합니다")
			break
		}
		if loaded.MetaColumns == nil {
			loaded.MetaColumns = []string{}
		}
		s.current = loaded
	}

	return s, nil
}

// Path 설정 파일 경로를 반환합니다.
func (s *Store) Path() string {
	return s.path
}

// Snapshot 현재 설정의 복사본을 반환합니다.
func (s *Store) Snapshot() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current.clone()
}

// SetToggle 스위치 하나를 변경합니다. 키는 snake_case로 정규화됩니다. (예: updatePriceQty)
func (s *Store) SetToggle(key string, value bool) error {
	normalized := strcase.ToSnake(strings.TrimSpace(key))

	return s.update(func(next *Settings) error {
		switch normalized {
		case KeyUpdatePriceQty:
			next.UpdatePriceQty = value
		case KeyUpdateSalePrice:
			next.UpdateSalePrice = value
		case KeyUpdateDescription:
			next.UpdateDescription = value
		default:
			return apperrors.Newf(apperrors.InvalidInput, "알 수 없는 설정 키입니다: '%s'", key)
		}
		return nil
	})
}

// SaveToggles 세 스위치를 한 번에 저장합니다.
func (s *Store) SaveToggles(priceQty, salePrice, description bool) error {
	return s.update(func(next *Settings) error {
		next.UpdatePriceQty = priceQty
		next.UpdateSalePrice = salePrice
		next.UpdateDescription = description
		return nil
	})
}

// AddMetaColumn 메타필드로 내보낼 피드 열을 추가합니다. 이미 있으면 아무것도 하지 않습니다.
func (s *Store) AddMetaColumn(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.New(apperrors.InvalidInput, "메타필드 열 이름이 비어 있습니다")
	}

	return s.update(func(next *Settings) error {
		for _, c := range next.MetaColumns {
			if c == name {
				return nil
			}
		}
		next.MetaColumns = append(next.MetaColumns, name)
		return nil
	})
}

// DeleteMetaColumn 메타필드 열을 삭제합니다. 없으면 NotFound를 반환합니다.
func (s *Store) DeleteMetaColumn(name string) error {
	name = strings.TrimSpace(name)

	return s.update(func(next *Settings) error {
		for i, c := range next.MetaColumns {
			if c == name {
				next.MetaColumns = append(next.MetaColumns[:i], next.MetaColumns[i+1:]...)
				return nil
			}
		}
		return apperrors.Newf(apperrors.NotFound, "메타필드 열을 찾을 수 없습니다: '%s'", name)
	})
}

// ClearMetaColumns 모든 메타필드 열을 삭제합니다.
func (s *Store) ClearMetaColumns() error {
	return s.update(func(next *Settings) error {
		next.MetaColumns = []string{}
		return nil
	})
}

// MetaColumns 메타필드 열을 이름순으로 반환합니다.
func (s *Store) MetaColumns() []string {
	cols := s.Snapshot().MetaColumns
	sort.Strings(cols)
	return cols
}

// update 변경 함수를 복사본에 적용하고, 파일 저장에 성공했을 때만 메모리 상태를 교체합니다.
func (s *Store) update(mutate func(next *Settings) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.clone()
	if err := mutate(&next); err != nil {
		return err
	}

	if err := s.writeAtomic(next); err != nil {
		return err
	}
	s.current = next

	return nil
}

// writeAtomic 임시 파일에 쓰고 fsync 후 이름을 바꿔 원자적으로 저장합니다.
func (s *Store) writeAtomic(v Settings) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return apperrors.Wrap(err, apperrors.Internal, "설정을 JSON으로 변환하지 못했습니다")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.Wrapf(err, apperrors.System, "설정 디렉토리를 만들 수 없습니다: '%s'", dir)
	}

	tmp, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return apperrors.Wrap(err, apperrors.System, "임시 설정 파일을 만들 수 없습니다")
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	defer tmp.Close()

	if _, err := tmp.Write(data); err != nil {
		return apperrors.Wrap(err, apperrors.System, "임시 설정 파일에 쓰지 못했습니다")
	}
	if err := tmp.Sync(); err != nil {
		return apperrors.Wrap(err, apperrors.System, "임시 설정 파일을 동기화하지 못했습니다")
	}
	if err := tmp.Close(); err != nil {
		return apperrors.Wrap(err, apperrors.System, "임시 설정 파일을 닫지 못했습니다")
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return apperrors.Wrapf(err, apperrors.System, "설정 파일을 저장하지 못했습니다: '%s'", s.path)
	}

	return nil
}
