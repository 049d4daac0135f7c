package settings

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/darkkaiser/catalog-sync/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "conf", "sync_settings.json")
	s, err := Open(path)
	require.NoError(t, err)
	return s, path
}

func TestOpen_파일이_없으면_기본값으로_생성(t *testing.T) {
	t.Parallel()

	s, path := openTestStore(t)

	assert.Equal(t, Defaults(), s.Snapshot())
	assert.FileExists(t, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"update_price_qty":true,"update_sale_price":true,"update_description":true,"meta_columns":[]}`, string(data))
}

func TestOpen_손상된_파일(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sync_settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s.Snapshot())
}

func TestOpen_기존_파일(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sync_settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"update_sale_price":false,"meta_columns":["Material"]}`), 0644))

	s, err := Open(path)
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.True(t, snap.UpdatePriceQty)
	assert.False(t, snap.UpdateSalePrice)
	assert.Equal(t, []string{"Material"}, snap.MetaColumns)
}

func TestStore_SetToggle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		key     string
		check   func(Settings) bool
		wantErr bool
	}{
		{"snake_case 키", "update_price_qty", func(s Settings) bool { return !s.UpdatePriceQty }, false},
		{"camelCase 키", "updateSalePrice", func(s Settings) bool { return !s.UpdateSalePrice }, false},
		{"PascalCase 키", "UpdateDescription", func(s Settings) bool { return !s.UpdateDescription }, false},
		{"알 수 없는 키", "delete_everything", nil, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, path := openTestStore(t)
			err := s.SetToggle(tt.key, false)
			if tt.wantErr {
				assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
				assert.Equal(t, Defaults(), s.Snapshot())
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.check(s.Snapshot()))

			reopened, err := Open(path)
			require.NoError(t, err)
			assert.Equal(t, s.Snapshot(), reopened.Snapshot())
		})
	}
}

func TestStore_SaveToggles(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)
	require.NoError(t, s.SaveToggles(false, true, false))

	snap := s.Snapshot()
	assert.False(t, snap.UpdatePriceQty)
	assert.True(t, snap.UpdateSalePrice)
	assert.False(t, snap.UpdateDescription)
}

func TestStore_MetaColumns(t *testing.T) {
	t.Parallel()

	s, path := openTestStore(t)

	require.NoError(t, s.AddMetaColumn(" Material "))
	require.NoError(t, s.AddMetaColumn("Color"))
	require.NoError(t, s.AddMetaColumn("Material"))
	assert.True(t, apperrors.Is(s.AddMetaColumn("   "), apperrors.InvalidInput))

	assert.Equal(t, []string{"Color", "Material"}, s.MetaColumns())
	assert.Equal(t, []string{"Material", "Color"}, s.Snapshot().MetaColumns)

	require.NoError(t, s.DeleteMetaColumn("Material"))
	assert.True(t, apperrors.Is(s.DeleteMetaColumn("Material"), apperrors.NotFound))
	assert.Equal(t, []string{"Color"}, s.MetaColumns())

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Color"}, reopened.MetaColumns())

	require.NoError(t, s.ClearMetaColumns())
	assert.Empty(t, s.MetaColumns())
}

func TestStore_Snapshot_복사본(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)
	require.NoError(t, s.AddMetaColumn("Material"))

	snap := s.Snapshot()
	snap.MetaColumns[0] = "changed"

	assert.Equal(t, []string{"Material"}, s.MetaColumns())
}
