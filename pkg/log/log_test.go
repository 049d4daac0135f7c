package log

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskSensitiveData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"빈 문자열", "", ""},
		{"3자 이하", "abc", "***"},
		{"12자 이하", "shpat_12345", "shpa***"},
		{"긴 토큰", "shpat_0123456789abcdef", "shpa***cdef"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, MaskSensitiveData(tt.input))
		})
	}
}

func TestWithComponentAndFields(t *testing.T) {
	t.Parallel()

	fields := Fields{"handle": "boots-ab-12"}
	entry := WithComponentAndFields("catalog.reconcile", fields)

	assert.Equal(t, "catalog.reconcile", entry.Data["component"])
	assert.Equal(t, "boots-ab-12", entry.Data["handle"])
	assert.NotContains(t, fields, "component", "원본 맵은 수정되지 않아야 합니다")

	assert.Equal(t, "catalog.feed", WithComponent("catalog.feed").Data["component"])
}

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"성공: 운영 기본값", NewProductionOptions("catalog-sync"), false},
		{"성공: 개발 기본값", NewDevelopmentOptions("catalog-sync"), false},
		{"실패: 이름 없음", Options{}, true},
		{"실패: 디렉토리가 파일", Options{Name: "app", Dir: file}, true},
		{"실패: 음수 보관 일수", Options{Name: "app", MaxAge: -1}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHook_레벨별_분배(t *testing.T) {
	t.Parallel()

	var mainBuf, criticalBuf, verboseBuf, consoleBuf bytes.Buffer
	h := &hook{
		mainWriter:     &mainBuf,
		criticalWriter: &criticalBuf,
		verboseWriter:  &verboseBuf,
		consoleWriter:  &consoleBuf,
		formatter:      &logrus.TextFormatter{DisableTimestamp: true},
	}

	l := logrus.New()
	l.SetOutput(&bytes.Buffer{})
	l.SetLevel(TraceLevel)
	l.AddHook(h)

	l.Info("info-line")
	l.Error("error-line")
	l.Debug("debug-line")

	assert.Contains(t, mainBuf.String(), "info-line")
	assert.Contains(t, mainBuf.String(), "error-line")
	assert.NotContains(t, mainBuf.String(), "debug-line")

	assert.Contains(t, criticalBuf.String(), "error-line")
	assert.NotContains(t, criticalBuf.String(), "info-line")

	assert.Contains(t, verboseBuf.String(), "debug-line")
	assert.NotContains(t, verboseBuf.String(), "info-line")

	for _, line := range []string{"info-line", "error-line", "debug-line"} {
		assert.Contains(t, consoleBuf.String(), line)
	}

	require.NoError(t, h.Close())
	l.Info("after-close")
	assert.NotContains(t, mainBuf.String(), "after-close")
}

type failingCloser struct{ calls int }

func (f *failingCloser) Close() error {
	f.calls++
	return errors.New("close failed")
}

func TestCloser_한번만_닫힘(t *testing.T) {
	t.Parallel()

	fc := &failingCloser{}
	c := &closer{closers: []io.Closer{fc}, hook: &hook{}}

	assert.Error(t, c.Close())
	assert.NoError(t, c.Close())
	assert.Equal(t, 1, fc.calls)
	assert.True(t, c.hook.closed)
}

func TestSetup_파일_생성(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	l := logrus.New()

	opts := NewProductionOptions("catalog-sync-test")
	opts.Dir = dir

	c, err := setup(l, opts)
	require.NoError(t, err)

	l.WithField("component", "test").Info("hello")
	l.WithField("component", "test").Error("boom")
	require.NoError(t, c.Close())

	mainLog, err := os.ReadFile(filepath.Join(dir, "catalog-sync-test.log"))
	require.NoError(t, err)
	assert.Contains(t, string(mainLog), "hello")

	criticalLog, err := os.ReadFile(filepath.Join(dir, "catalog-sync-test.critical.log"))
	require.NoError(t, err)
	assert.Contains(t, string(criticalLog), "boom")
	assert.NotContains(t, string(criticalLog), "hello")
}

func TestSetup_잘못된_옵션(t *testing.T) {
	t.Parallel()

	_, err := setup(logrus.New(), Options{})
	assert.Error(t, err)
}
