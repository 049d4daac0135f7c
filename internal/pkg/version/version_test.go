package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

// readBuildInfo를 교체하므로 병렬로 실행하지 않습니다.

func withBuildInfo(t *testing.T, bi *debug.BuildInfo, ok bool) {
	t.Helper()

	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, ok }
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		injected  Info
		buildInfo *debug.BuildInfo
		ok        bool
		expected  Info
	}{
		{
			name: "빌드_정보_없음",
			expected: Info{
				Version:     unknown,
				Commit:      unknown,
				BuildDate:   unknown,
				BuildNumber: "0",
			},
		},
		{
			name: "VCS_메타데이터로_보충",
			buildInfo: &debug.BuildInfo{
				Main: debug.Module{Version: "v0.3.1"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "0123456789abcdef"},
					{Key: "vcs.time", Value: "2025-03-01T10:00:00Z"},
					{Key: "vcs.modified", Value: "true"},
				},
			},
			ok: true,
			expected: Info{
				Version:     "v0.3.1",
				Commit:      "0123456",
				BuildDate:   "2025-03-01T10:00:00Z",
				BuildNumber: "0",
				Modified:    true,
			},
		},
		{
			name:     "주입된_값_우선",
			injected: Info{Version: "v1.2.0", Commit: "abc1234", BuildDate: "2025-01-01", BuildNumber: "42"},
			buildInfo: &debug.BuildInfo{
				Main: debug.Module{Version: "(devel)"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "ffffffffffff"},
					{Key: "vcs.time", Value: "2030-01-01T00:00:00Z"},
				},
			},
			ok: true,
			expected: Info{
				Version:     "v1.2.0",
				Commit:      "abc1234",
				BuildDate:   "2025-01-01",
				BuildNumber: "42",
			},
		},
		{
			name:      "devel_버전은_사용하지_않음",
			buildInfo: &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			ok:        true,
			expected: Info{
				Version:     unknown,
				Commit:      unknown,
				BuildDate:   unknown,
				BuildNumber: "0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withBuildInfo(t, tt.buildInfo, tt.ok)

			got := resolve(tt.injected)

			tt.expected.GoVersion = runtime.Version()
			tt.expected.Platform = runtime.GOOS + "/" + runtime.GOARCH
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestInfo_String(t *testing.T) {
	info := Info{Version: "v1.2.0", Commit: "abc1234", BuildDate: "2025-01-01", Platform: "linux/amd64"}
	assert.Equal(t, "v1.2.0 (abc1234, 2025-01-01, linux/amd64)", info.String())

	info.Modified = true
	assert.Equal(t, "v1.2.0 (abc1234-dirty, 2025-01-01, linux/amd64)", info.String())
}

func TestGet(t *testing.T) {
	a := Get()
	b := Get()

	assert.Equal(t, a, b)
	assert.NotEmpty(t, a.Version)
	assert.Equal(t, runtime.Version(), a.GoVersion)
}
