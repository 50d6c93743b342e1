// Package strutil 문자열 처리를 위한 유틸리티 함수들을 제공합니다.
package strutil

import (
	"net/url"
	"sort"
	"strings"
)

// Mask 토큰, 키 등의 민감한 값을 로그에 안전하게 남길 수 있도록 마스킹합니다.
//
//	"abc"                      -> "***"
//	"abcdefgh"                 -> "abcd***"
//	"eyJhbGciOiJIUzI1NiIsInR5" -> "eyJh***nR5"
func Mask(data string) string {
	if data == "" {
		return ""
	}
	if len(data) <= 3 {
		return "***"
	}
	if len(data) <= 12 {
		return data[:4] + "***"
	}
	return data[:4] + "***" + data[len(data)-4:]
}

// MaskQuery 쿼리 파라미터 중 sensitiveKeys에 해당하는 값을 Mask 처리한 인코딩 문자열을 반환합니다.
// 키 비교는 대소문자를 구분하지 않으며, 결과는 키 이름 순으로 정렬됩니다.
func MaskQuery(values url.Values, sensitiveKeys ...string) string {
	if len(values) == 0 {
		return ""
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sensitive := false
		for _, sk := range sensitiveKeys {
			if strings.EqualFold(k, sk) {
				sensitive = true
				break
			}
		}

		for _, v := range values[k] {
			if sb.Len() > 0 {
				sb.WriteByte('&')
			}
			if sensitive {
				v = Mask(v)
			}
			sb.WriteString(url.QueryEscape(k))
			sb.WriteByte('=')
			sb.WriteString(url.QueryEscape(v))
		}
	}

	return sb.String()
}
