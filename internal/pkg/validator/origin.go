package validator

import (
	"net"
	"net/url"
	"strconv"
	"strings"
)

// isCORSOrigin origin이 '*' 또는 'scheme://host[:port]' 형식인지 확인합니다.
//
// scheme은 http, https만 허용하며 경로(후행 '/' 포함), 쿼리, 프래그먼트, 사용자 정보가 있으면 안 됩니다.
func isCORSOrigin(origin string) bool {
	origin = strings.TrimSpace(origin)
	if origin == "*" {
		return true
	}
	if origin == "" || strings.HasSuffix(origin, "/") {
		return false
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return false
	}

	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil || port < 1 || port > 65535 {
			return false
		}
	}

	return isHostname(u.Hostname())
}

// isHostname localhost, IP 주소, 또는 RFC 1123 호스트명인지 확인합니다.
func isHostname(host string) bool {
	if host == "" {
		return false
	}
	if host == "localhost" || net.ParseIP(host) != nil {
		return true
	}
	if len(host) > 253 {
		return false
	}

	labels := strings.Split(host, ".")
	for _, label := range labels {
		if len(label) == 0 || len(label) > 63 {
			return false
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for _, r := range label {
			if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-') {
				return false
			}
		}
	}

	// TLD는 숫자로만 구성될 수 없습니다.
	tld := labels[len(labels)-1]
	return strings.TrimLeft(tld, "0123456789") != ""
}
