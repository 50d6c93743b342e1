package catalog

import (
	"strings"
)

const (
	// apkExt APK 파일 확장자
	apkExt = ".apk"

	// placeholderIdentifier 클라이언트가 앱 식별자를 알지 못할 때 보내는 값
	placeholderIdentifier = "0"

	// defaultVersion 식별자에 버전 토큰이 없을 때 사용하는 값
	defaultVersion = "0"
)

// Identifier 클라이언트가 요청한 "<name>-<version>" 형식의 앱 식별자입니다.
type Identifier struct {
	// Raw 요청에 포함된 원래 값 (앞뒤 공백 제거)
	Raw string

	// AppName 마지막 하이픈 앞의 문자열을 소문자로 변환한 값 ("my-app-3" -> "my-app")
	// 하이픈이 없으면 식별자 전체를 사용합니다.
	AppName string

	// Version 마지막 하이픈 뒤의 토큰 (".apk" 확장자 제외)
	Version string
}

// ParseIdentifier 요청 파라미터를 Identifier로 변환합니다.
// 값이 비어 있거나 "0"이거나 앱 이름을 추출할 수 없으면 false를 반환합니다.
func ParseIdentifier(raw string) (Identifier, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == placeholderIdentifier {
		return Identifier{}, false
	}

	name := trimAPKExt(raw)
	if idx := strings.LastIndex(name, "-"); idx >= 0 {
		name = name[:idx]
	}
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Identifier{}, false
	}

	return Identifier{
		Raw:     raw,
		AppName: name,
		Version: ExtractVersion(raw),
	}, true
}

// ExtractVersion 이름의 마지막 하이픈 뒤 토큰을 버전으로 반환합니다.
// ".apk" 확장자는 제거하며, 하이픈이 없거나 토큰이 비어 있으면 "0"을 반환합니다.
func ExtractVersion(name string) string {
	name = trimAPKExt(strings.TrimSpace(name))

	idx := strings.LastIndex(name, "-")
	if idx < 0 || idx == len(name)-1 {
		return defaultVersion
	}

	return name[idx+1:]
}

// IsCurrent 저장된 파일의 버전과 요청한 버전이 같으면 true를 반환합니다.
// true는 업데이트가 필요하지 않다는 의미입니다.
// 버전 토큰은 대소문자를 구분하여 비교합니다 ("RC1"과 "rc1"은 다른 버전입니다).
func IsCurrent(storedName, requested string) bool {
	return ExtractVersion(storedName) == ExtractVersion(requested)
}

func trimAPKExt(s string) string {
	if len(s) >= len(apkExt) && strings.EqualFold(s[len(s)-len(apkExt):], apkExt) {
		return s[:len(s)-len(apkExt)]
	}
	return s
}
