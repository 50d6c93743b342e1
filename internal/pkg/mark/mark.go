// Package mark 운영 알림 메시지에서 사용하는 이모지 상수를 관리합니다.
package mark

// Mark 이모지 상수를 위한 타입입니다.
type Mark string

const (
	// 긴급/오류
	Alert Mark = "🚨"

	// 장애 복구
	Recovered Mark = "✅"
)

// WithSpace 마크(이모지) 앞에 구분용 공백을 추가하여 반환합니다.
func (m Mark) WithSpace() string {
	if m == "" {
		return ""
	}
	return " " + string(m)
}

// String 마크의 순수 이모지 값을 문자열로 반환합니다.
func (m Mark) String() string {
	return string(m)
}
