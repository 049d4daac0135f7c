package shopify

import (
	"net/url"
	"strings"
)

var sensitiveQueryKeys = []string{"token", "access_token", "api_key", "key", "secret", "password", "signature"}

// redactURL 로그에 남길 URL에서 사용자 정보와 민감한 쿼리 값을 가립니다.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	if u.User != nil {
		u.User = url.User("xxxxx")
	}

	if u.RawQuery != "" {
		query := u.Query()
		for key := range query {
			if isSensitiveQueryKey(key) {
				query.Set(key, "xxxxx")
			}
		}
		u.RawQuery = query.Encode()
	}

	return u.String()
}

func isSensitiveQueryKey(key string) bool {
	key = strings.ToLower(key)
	for _, k := range sensitiveQueryKeys {
		if key == k {
			return true
		}
	}
	return strings.HasSuffix(key, "_token") || strings.HasSuffix(key, "_secret")
}
