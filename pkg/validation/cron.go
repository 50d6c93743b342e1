package validation

import "github.com/darkkaiser/apk-update-server/pkg/cronx"

// ValidateCronExpression 초 단위를 포함하는 6필드 Cron 표현식인지 검증합니다.
func ValidateCronExpression(spec string) error {
	return cronx.Validate(spec)
}
