package product

import (
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^\p{L}\p{N}_-]+`)

// Slugify 문자열을 URL 핸들에 사용할 수 있는 형태로 변환합니다.
//
// 소문자로 바꾼 뒤 문자, 숫자, '_', '-' 가 아닌 문자의 연속을 하나의 '-'로 치환하고
// 앞뒤의 '-'를 제거합니다. 키릴 문자 등 유니코드 문자는 그대로 유지됩니다.
func Slugify(s string) string {
	return strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// Handle 제목과 그룹 키로 원격 상품의 핸들을 만듭니다.
func Handle(title, groupKey string) string {
	return Slugify(title) + "-" + strings.ToLower(strings.ReplaceAll(groupKey, " ", "-"))
}
