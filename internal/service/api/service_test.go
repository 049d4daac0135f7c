package api

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/darkkaiser/catalog-sync/internal/catalog/feed"
	"github.com/darkkaiser/catalog-sync/internal/catalog/reconcile"
	"github.com/darkkaiser/catalog-sync/internal/catalog/syncrun"
	"github.com/darkkaiser/catalog-sync/internal/pkg/version"
	"github.com/darkkaiser/catalog-sync/internal/service/settings"
	"github.com/darkkaiser/catalog-sync/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Helpers
// =============================================================================

type emptyFeed struct{}

func (emptyFeed) Fetch(context.Context) ([]byte, error) {
	return nil, errors.New("피드 없음")
}

func (emptyFeed) Remove(context.Context) (feed.RemoveResult, error) {
	return feed.RemoveResult{}, nil
}

// unusedCatalog 동기화를 실제로 실행하지 않는 테스트에서 사용합니다.
type unusedCatalog struct {
	reconcile.Catalog
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(_ context.Context, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.messages = append(n.messages, message)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return len(n.messages)
}

func newTestStore(t *testing.T) *settings.Store {
	t.Helper()

	store, err := settings.Open(filepath.Join(t.TempDir(), settings.DefaultFile))
	require.NoError(t, err)
	return store
}

func newTestRunner(t *testing.T) *syncrun.Runner {
	t.Helper()

	return syncrun.New(syncrun.Config{}, syncrun.Deps{
		Feed:     emptyFeed{},
		Settings: newTestStore(t),
		Catalog:  unusedCatalog{},
	})
}

func newTestDeps(t *testing.T) (Deps, *recordingNotifier) {
	t.Helper()

	runner := newTestRunner(t)
	notifier := &recordingNotifier{}

	return Deps{
		Sync:     syncrun.NewService(runner),
		Runner:   runner,
		Settings: newTestStore(t),
		Metrics:  syncrun.NewMetrics(),
		Notifier: notifier,

		BuildInfo: version.Info{Version: "1.0.0", BuildNumber: "100"},
	}, notifier
}

func newTestConfig(port int) Config {
	return Config{
		HTTPServerConfig: HTTPServerConfig{AllowOrigins: []string{"*"}},
		ListenPort:       port,
	}
}

// =============================================================================
// Tests
// =============================================================================

func TestNewService_필수_의존성(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(d *Deps)
		panic  string
	}{
		{name: "Sync 누락", modify: func(d *Deps) { d.Sync = nil }, panic: "SyncService는 필수입니다"},
		{name: "Runner 누락", modify: func(d *Deps) { d.Runner = nil }, panic: "RunStatus는 필수입니다"},
		{name: "Settings 누락", modify: func(d *Deps) { d.Settings = nil }, panic: "SettingsStore는 필수입니다"},
		{name: "Notifier 누락", modify: func(d *Deps) { d.Notifier = nil }, panic: "Notifier는 필수입니다"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			deps, _ := newTestDeps(t)
			tt.modify(&deps)

			assert.PanicsWithValue(t, tt.panic, func() {
				NewService(newTestConfig(8080), deps)
			})
		})
	}
}

func TestNewService_기본_포트(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t)
	s := NewService(Config{}, deps)

	assert.Equal(t, 8080, s.cfg.ListenPort)
}

func TestService_setupServer(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t)
	s := NewService(newTestConfig(8080), deps)

	e, err := s.setupServer()
	require.NoError(t, err)

	registered := make(map[string]bool)
	for _, r := range e.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, route := range []string{
		"GET /health",
		"GET /metrics",
		"POST /api/v1/sync",
		"GET /api/v1/sync/status",
		"GET /",
		"GET /settings",
		"POST /settings",
		"GET /report",
	} {
		assert.True(t, registered[route], "라우트 %s 가 등록되지 않았습니다", route)
	}
}

func TestService_Lifecycle(t *testing.T) {
	t.Parallel()

	port := testutil.FreePort(t)
	deps, _ := newTestDeps(t)
	s := NewService(newTestConfig(port), deps)

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}

	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))

	assert.Equal(t, http.StatusOK, testutil.WaitForHTTP(t, testutil.LocalURL(port, "/health"), 5*time.Second))

	for _, path := range []string{"/", "/settings", "/report", "/api/v1/sync/status", "/version", "/metrics"} {
		resp, err := http.Get(testutil.LocalURL(port, path))
		require.NoError(t, err, path)
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	cancel()
	wg.Wait()

	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	assert.False(t, s.running)
}

func TestService_중복_시작(t *testing.T) {
	t.Parallel()

	port := testutil.FreePort(t)
	deps, _ := newTestDeps(t)
	s := NewService(newTestConfig(port), deps)

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}

	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))

	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))

	testutil.WaitForHTTP(t, testutil.LocalURL(port, "/health"), 5*time.Second)

	cancel()
	wg.Wait()
}

func TestService_포트_사용_중이면_알림(t *testing.T) {
	t.Parallel()

	l, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer l.Close()

	deps, notifier := newTestDeps(t)
	s := NewService(newTestConfig(l.Addr().(*net.TCPAddr).Port), deps)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wg := &sync.WaitGroup{}

	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))

	// 서버가 바로 종료되므로 취소 없이도 WaitGroup이 끝나야 합니다.
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("서비스가 종료되지 않았습니다")
	}

	assert.Equal(t, 1, notifier.count())
}

func TestService_handleServerError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		err          error
		expectNotify int
	}{
		{name: "nil", err: nil, expectNotify: 0},
		{name: "정상 종료", err: http.ErrServerClosed, expectNotify: 0},
		{name: "예기치 않은 에러", err: errors.New("bind: address already in use"), expectNotify: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			deps, notifier := newTestDeps(t)
			s := NewService(newTestConfig(8080), deps)

			s.handleServerError(tt.err)

			assert.Equal(t, tt.expectNotify, notifier.count())
		})
	}
}
