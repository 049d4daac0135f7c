package feed

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	apperrors "github.com/darkkaiser/catalog-sync/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFTPConn struct {
	files    map[string]string
	loginErr error
	deleted  []string
	quits    int
}

func (f *fakeFTPConn) Login(_, _ string) error { return f.loginErr }

func (f *fakeFTPConn) Retrieve(p string) (io.ReadCloser, error) {
	content, ok := f.files[p]
	if !ok {
		return nil, errors.New("550 file not found")
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func (f *fakeFTPConn) NameList(dir string) ([]string, error) {
	var names []string
	for p := range f.files {
		if strings.HasPrefix(p, dir) {
			names = append(names, strings.TrimPrefix(p, dir))
		}
	}
	return names, nil
}

func (f *fakeFTPConn) Delete(p string) error {
	f.deleted = append(f.deleted, p)
	delete(f.files, p)
	return nil
}

func (f *fakeFTPConn) Quit() error {
	f.quits++
	return nil
}

func newTestFTPSource(conn *fakeFTPConn) *FTPSource {
	s := NewFTPSource(FTPConfig{Host: "ftp.example.com", User: "u", Password: "p"})
	s.dial = func(context.Context) (ftpConn, error) { return conn, nil }
	return s
}

func TestFTPSource_Fetch(t *testing.T) {
	t.Parallel()

	conn := &fakeFTPConn{files: map[string]string{DefaultFTPPath: "Articul;GoodID\n"}}
	s := newTestFTPSource(conn)

	raw, err := s.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Articul;GoodID\n", string(raw))
	assert.Equal(t, 1, conn.quits)
	assert.Equal(t, DefaultFTPPath, s.Path())
}

func TestFTPSource_Fetch_파일_없음(t *testing.T) {
	t.Parallel()

	s := newTestFTPSource(&fakeFTPConn{files: map[string]string{}})

	_, err := s.Fetch(context.Background())
	assert.True(t, apperrors.Is(err, apperrors.NotFound))
}

func TestFTPSource_로그인_실패(t *testing.T) {
	t.Parallel()

	conn := &fakeFTPConn{loginErr: errors.New("530 login incorrect")}
	s := newTestFTPSource(conn)

	_, err := s.Fetch(context.Background())
	assert.True(t, apperrors.Is(err, apperrors.Unauthorized))
	assert.Equal(t, 1, conn.quits)
}

func TestFTPSource_연결_실패(t *testing.T) {
	t.Parallel()

	s := NewFTPSource(FTPConfig{Host: "ftp.example.com"})
	s.dial = func(context.Context) (ftpConn, error) { return nil, errors.New("connection refused") }

	_, err := s.Remove(context.Background())
	assert.True(t, apperrors.Is(err, apperrors.Unavailable))
}

func TestFTPSource_Remove(t *testing.T) {
	t.Parallel()

	t.Run("파일이 있으면 삭제", func(t *testing.T) {
		t.Parallel()

		conn := &fakeFTPConn{files: map[string]string{
			DefaultFTPPath:           "data",
			"/csv_folder/other.trs": "x",
		}}
		s := newTestFTPSource(conn)

		result, err := s.Remove(context.Background())
		require.NoError(t, err)
		assert.True(t, result.Deleted)
		assert.Equal(t, "/csv_folder/", result.Dir)
		assert.Len(t, result.Entries, 2)
		assert.Equal(t, []string{DefaultFTPPath}, conn.deleted)
	})

	t.Run("파일이 없으면 아무것도 삭제하지 않음", func(t *testing.T) {
		t.Parallel()

		conn := &fakeFTPConn{files: map[string]string{"/csv_folder/other.trs": "x"}}
		s := newTestFTPSource(conn)

		result, err := s.Remove(context.Background())
		require.NoError(t, err)
		assert.False(t, result.Deleted)
		assert.Empty(t, conn.deleted)
	})
}
