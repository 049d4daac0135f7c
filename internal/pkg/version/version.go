// Package version 빌드 시점에 주입된 버전 정보와 실행 환경 정보를 제공합니다.
//
// 값은 다음과 같이 주입합니다.
//
//	go build -ldflags "-X github.com/darkkaiser/catalog-sync/internal/pkg/version.version=v1.2.0 \
//	  -X github.com/darkkaiser/catalog-sync/internal/pkg/version.commit=$(git rev-parse --short HEAD)"
//
// 주입되지 않은 값은 실행 파일에 기록된 VCS 메타데이터(debug.ReadBuildInfo)로 보충합니다.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
)

const unknown = "unknown"

// -ldflags -X 로 주입되는 값
var (
	version     = ""
	commit      = ""
	buildDate   = ""
	buildNumber = ""
)

// Info 애플리케이션 빌드 정보입니다.
type Info struct {
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	BuildDate   string `json:"build_date"`
	BuildNumber string `json:"build_number"`
	GoVersion   string `json:"go_version"`
	Platform    string `json:"platform"` // GOOS/GOARCH
	Modified    bool   `json:"modified"` // 커밋되지 않은 변경이 있는 상태에서 빌드되었는지 여부
}

// String 로그와 CLI 출력용 한 줄 표현입니다. (예: v1.2.0 (abc1234, 2025-01-01, linux/amd64))
func (i Info) String() string {
	commit := i.Commit
	if i.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s (%s, %s, %s)", i.Version, commit, i.BuildDate, i.Platform)
}

var (
	readBuildInfo = debug.ReadBuildInfo

	current     Info
	currentOnce sync.Once
)

// Get 빌드 정보를 반환합니다. 처음 호출될 때 한 번만 계산합니다.
func Get() Info {
	currentOnce.Do(func() {
		current = resolve(Info{
			Version:     strings.TrimSpace(version),
			Commit:      strings.TrimSpace(commit),
			BuildDate:   strings.TrimSpace(buildDate),
			BuildNumber: strings.TrimSpace(buildNumber),
		})
	})
	return current
}

// resolve 비어 있는 값을 실행 환경과 VCS 메타데이터로 채웁니다.
func resolve(i Info) Info {
	i.GoVersion = runtime.Version()
	i.Platform = runtime.GOOS + "/" + runtime.GOARCH

	if bi, ok := readBuildInfo(); ok {
		vcs := make(map[string]string, len(bi.Settings))
		for _, s := range bi.Settings {
			vcs[s.Key] = s.Value
		}

		if i.Commit == "" {
			i.Commit = shortRevision(vcs["vcs.revision"])
		}
		if i.BuildDate == "" {
			i.BuildDate = vcs["vcs.time"]
		}
		i.Modified = vcs["vcs.modified"] == "true"

		if i.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			i.Version = bi.Main.Version
		}
	}

	for _, field := range []*string{&i.Version, &i.Commit, &i.BuildDate} {
		if *field == "" {
			*field = unknown
		}
	}
	if i.BuildNumber == "" {
		i.BuildNumber = "0"
	}

	return i
}

func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
