// Package testutil 여러 패키지의 테스트가 함께 사용하는 도우미 함수를 제공합니다.
package testutil

import (
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"
)

// FreePort 테스트 서버가 사용할 수 있는 임의의 로컬 포트를 반환합니다.
func FreePort(t testing.TB) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("사용 가능한 포트를 가져오는데 실패했습니다: %v", err)
	}
	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port
}

// WaitForHTTP url이 응답할 때까지 대기하고 마지막 응답 상태 코드를 반환합니다.
func WaitForHTTP(t testing.TB, url string, timeout time.Duration) int {
	t.Helper()

	client := &http.Client{Timeout: 500 * time.Millisecond}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			resp.Body.Close()
			return resp.StatusCode
		}
		time.Sleep(20 * time.Millisecond)
	}

	t.Fatalf("%s 가 %v 안에 응답하지 않았습니다", url, timeout)
	return 0
}

// LocalURL 로컬 포트와 경로로 URL을 만듭니다.
func LocalURL(port int, path string) string {
	return fmt.Sprintf("http://127.0.0.1:%d%s", port, path)
}
