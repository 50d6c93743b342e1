package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		ok      bool
		appName string
		version string
	}{
		{"일반 식별자", "myapp-3", true, "myapp", "3"},
		{"대문자", "MyApp-10", true, "myapp", "10"},
		{"확장자 포함", "myapp-3.apk", true, "myapp", "3"},
		{"하이픈이 여러 개", "my-app-3", true, "my-app", "3"},
		{"하이픈이 여러 개 (대문자, 확장자)", "My-Cool-App-1.2.apk", true, "my-cool-app", "1.2"},
		{"버전 없음", "myapp", true, "myapp", "0"},
		{"앞뒤 공백", "  myapp-2  ", true, "myapp", "2"},
		{"빈 값", "", false, "", ""},
		{"공백만", "   ", false, "", ""},
		{"자리표시자", "0", false, "", ""},
		{"앱 이름 없음", "-3", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ParseIdentifier(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.appName, id.AppName)
				assert.Equal(t, tt.version, id.Version)
			}
		})
	}
}

func TestExtractVersion(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"name-5.apk", "5"},
		{"name-5", "5"},
		{"name-1.2.3.APK", "1.2.3"},
		{"my-app-7.apk", "7"},
		{"name.apk", "0"},
		{"name", "0"},
		{"name-", "0"},
		{"", "0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractVersion(tt.in), tt.in)
	}
}

func TestIsCurrent(t *testing.T) {
	assert.True(t, IsCurrent("name-5.apk", "name-5"))
	assert.False(t, IsCurrent("name-5.apk", "name-6"))
	assert.True(t, IsCurrent("name-5.apk", "name-5.apk"))
	assert.True(t, IsCurrent("name-beta.apk", "NAME-beta"), "앱 이름의 대소문자는 버전 비교에 영향을 주지 않습니다")
	assert.False(t, IsCurrent("app-RC1.apk", "app-rc1"), "버전 토큰은 대소문자를 구분합니다")
	assert.True(t, IsCurrent("name.apk", "name"), "버전이 없으면 양쪽 모두 \"0\"으로 비교합니다")
}
