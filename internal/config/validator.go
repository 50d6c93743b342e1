package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/darkkaiser/apk-update-server/internal/pkg/errors"
	"github.com/darkkaiser/apk-update-server/pkg/validation"
)

// 텔레그램 봇 토큰 형식 (예: 123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11)
var telegramBotTokenRegex = regexp.MustCompile(`^\d{3,20}:[a-zA-Z0-9_-]{30,50}$`)

// newValidator 커스텀 검증 태그가 등록된 Validator를 생성합니다.
//
//   - cors_origin: Scheme://Host[:Port] 또는 '*'
//   - cron_spec: 초 단위를 포함하는 6필드 Cron 표현식
//   - endpoint_url: http(s) 기본 주소
//   - telegram_bot_token: 텔레그램 봇 토큰
func newValidator() *validator.Validate {
	v := validator.New()

	// 에러 메시지에 구조체 필드명 대신 설정 키 이름(json 태그)을 사용합니다.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "cors_origin", func(fl validator.FieldLevel) bool {
		return validation.ValidateCORSOrigin(fl.Field().String()) == nil
	})
	mustRegister(v, "cron_spec", func(fl validator.FieldLevel) bool {
		return validation.ValidateCronExpression(fl.Field().String()) == nil
	})
	mustRegister(v, "endpoint_url", func(fl validator.FieldLevel) bool {
		return validation.ValidateEndpointURL(fl.Field().String()) == nil
	})
	mustRegister(v, "telegram_bot_token", func(fl validator.FieldLevel) bool {
		return telegramBotTokenRegex.MatchString(fl.Field().String())
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: '%s' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", tag, err))
	}
}

// checkStruct 구조체를 태그 규칙에 따라 검증하고, 첫 번째 위반 사항을 설정 키 경로가 포함된 도메인 에러로 변환합니다.
func checkStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return apperrors.Wrap(err, apperrors.InvalidInput, "설정 유효성 검증에 실패했습니다")
	}

	fe := validationErrors[0]

	// "AppConfig.api.cors.allow_origins[0]" -> "api.cors.allow_origins[0]"
	key := fe.Namespace()
	if idx := strings.IndexByte(key, '.'); idx != -1 {
		key = key[idx+1:]
	}

	switch fe.Tag() {
	case "cors_origin":
		return apperrors.Newf(apperrors.InvalidInput, "CORS Origin 형식이 올바르지 않습니다: %s='%v' (형식: Scheme://Host[:Port], 예: https://example.com)", key, fe.Value())
	case "cron_spec":
		return apperrors.Newf(apperrors.InvalidInput, "Cron 표현식이 올바르지 않습니다: %s='%v' (형식: 초 분 시 일 월 요일, 예: 0 */5 * * * *)", key, fe.Value())
	case "endpoint_url":
		return apperrors.Newf(apperrors.InvalidInput, "URL 형식이 올바르지 않습니다: %s='%v' (예: https://xyz.supabase.co)", key, fe.Value())
	case "telegram_bot_token":
		return apperrors.Newf(apperrors.InvalidInput, "텔레그램 BotToken 형식이 올바르지 않습니다: %s (올바른 형식: 123456:ABC-DEF...)", key)
	case "cidr":
		return apperrors.Newf(apperrors.InvalidInput, "IP 대역(CIDR) 형식이 올바르지 않습니다: %s='%v' (예: 10.0.0.0/8)", key, fe.Value())
	case "file":
		return apperrors.Newf(apperrors.InvalidInput, "지정된 파일을 찾을 수 없습니다: %s='%v'", key, fe.Value())
	case "required_if", "required_with", "required":
		return apperrors.Newf(apperrors.InvalidInput, "필수 설정 값이 누락되었습니다: %s", key)
	case "oneof":
		return apperrors.Newf(apperrors.InvalidInput, "허용되지 않은 값입니다: %s='%v' (허용 값: %s)", key, fe.Value(), fe.Param())
	}

	return apperrors.Newf(apperrors.InvalidInput, "설정 값이 올바르지 않습니다: %s='%v' (조건: %s=%s)", key, fe.Value(), fe.Tag(), fe.Param())
}
