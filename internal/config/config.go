// Package config 애플리케이션 설정을 계층적으로 로드하고 검증합니다.
//
// 우선순위 (낮음 -> 높음):
//  1. 구조체 기본값 (Default)
//  2. 설정 파일 (.json, .yaml, .yml)
//  3. 레거시 환경 변수 (SUPABASE_URL, SUPABASE_KEY, PORT)
//  4. APKSERVER_ 접두사 환경 변수 (이중 언더스코어(__)가 계층 구분자)
//     예: APKSERVER_STORAGE__SUPABASE__URL -> storage.supabase.url
package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	apperrors "github.com/darkkaiser/apk-update-server/internal/pkg/errors"
)

const (
	// AppName 애플리케이션 식별자 (로그 파일명, User-Agent 등에 사용)
	AppName = "apk-update-server"

	// DefaultFilename 설정 파일 경로가 주어지지 않았을 때 탐색하는 파일명
	DefaultFilename = AppName + ".json"

	// DefaultListenPort 기존 배포 환경과 동일한 기본 포트
	DefaultListenPort = 4000

	// EnvPrefix 구조화된 환경 변수의 접두사
	EnvPrefix = "APKSERVER_"
)

// legacyEnvKeys 기존 배포 환경에서 사용하던 환경 변수와 설정 키의 대응 관계
var legacyEnvKeys = map[string]string{
	"SUPABASE_URL": "storage.supabase.url",
	"SUPABASE_KEY": "storage.supabase.key",
	"PORT":         "api.listen_port",
}

// Load 설정을 로드합니다.
//
// filename이 비어 있으면 DefaultFilename을 사용하되, 파일이 없으면 기본값과 환경 변수만으로 구성합니다.
// filename을 명시했는데 파일이 없으면 에러를 반환합니다.
func Load(filename string) (*AppConfig, error) {
	explicit := filename != ""
	if !explicit {
		filename = DefaultFilename
	}

	k := koanf.New(".")

	// 1. 기본값
	if err := k.Load(structs.Provider(Default(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "기본 설정 로드에 실패했습니다")
	}

	// 2. 설정 파일
	if err := k.Load(file.Provider(filename), parserFor(filename)); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "설정 파일 로드 중 오류가 발생했습니다: '%s'", filename)
		}
		if explicit {
			return nil, apperrors.Wrapf(err, apperrors.NotFound, "설정 파일을 찾을 수 없습니다: '%s'", filename)
		}
	}

	// 3. 레거시 환경 변수
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return legacyEnvKeys[s]
	}), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 4. APKSERVER_ 환경 변수
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	var cfg AppConfig
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			ErrorUnused:      true, // 구조체에 없는 설정 키는 오타로 간주합니다.
			WeaklyTypedInput: true,
			Result:           &cfg,
		},
	}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "설정 데이터를 구조체로 변환하는데 실패했습니다")
	}

	normalize(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "설정('%s')의 유효성 검증에 실패했습니다", filename)
	}

	return &cfg, nil
}

func parserFor(filename string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return yamlParser{}
	default:
		return json.Parser()
	}
}

// normalize 환경 변수로 전달된 목록 값의 공백과 경로 구분자를 정리합니다.
func normalize(cfg *AppConfig) {
	trimAll := func(items []string) []string {
		out := items[:0]
		for _, item := range items {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		return out
	}

	cfg.API.CORS.AllowOrigins = trimAll(cfg.API.CORS.AllowOrigins)
	cfg.API.CORS.AllowMethods = trimAll(cfg.API.CORS.AllowMethods)
	for i, m := range cfg.API.CORS.AllowMethods {
		cfg.API.CORS.AllowMethods[i] = strings.ToUpper(m)
	}
	cfg.API.CORS.AllowHeaders = trimAll(cfg.API.CORS.AllowHeaders)
	cfg.API.CORS.ExposeHeaders = trimAll(cfg.API.CORS.ExposeHeaders)
	cfg.API.TrustedProxies = trimAll(cfg.API.TrustedProxies)

	cfg.Storage.Folder = strings.Trim(strings.TrimSpace(cfg.Storage.Folder), "/")
	cfg.Storage.Supabase.URL = strings.TrimRight(strings.TrimSpace(cfg.Storage.Supabase.URL), "/")
}

// Validate 설정 항목의 정합성을 검증합니다.
func (c *AppConfig) Validate() error {
	if err := checkStruct(newValidator(), c); err != nil {
		return err
	}

	for _, origin := range c.API.CORS.AllowOrigins {
		if origin == "*" && len(c.API.CORS.AllowOrigins) > 1 {
			return apperrors.New(apperrors.InvalidInput, "와일드카드(*)는 다른 CORS Origin과 함께 사용할 수 없습니다")
		}
	}

	switch c.Storage.Provider {
	case ProviderSupabase:
		if c.Storage.Supabase.URL == "" || c.Storage.Supabase.Key == "" {
			return apperrors.New(apperrors.InvalidInput, "supabase 스토리지를 사용하려면 storage.supabase.url과 storage.supabase.key(SUPABASE_URL, SUPABASE_KEY)가 필요합니다")
		}
	case ProviderFile:
		if strings.TrimSpace(c.Storage.File.Root) == "" {
			return apperrors.New(apperrors.InvalidInput, "file 스토리지를 사용하려면 storage.file.root가 필요합니다")
		}
	}

	return nil
}

// VerifyRecommendations 운영 안정성을 위해 권장되는 설정 준수 여부를 진단하여 경고 메시지 목록을 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	if c.API.ListenPort < 1024 {
		warnings = append(warnings, "시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다. 서버 구동 시 관리자 권한이 필요할 수 있습니다")
	}
	if !c.API.RateLimit.Enabled {
		warnings = append(warnings, "요청 수 제한(api.rate_limit)이 비활성화되어 있습니다")
	}
	if c.Storage.MaxDownloadBytes <= 0 {
		warnings = append(warnings, "다운로드 크기 제한(storage.max_download_bytes)이 설정되지 않았습니다")
	}
	if c.Storage.Provider == ProviderMemory {
		warnings = append(warnings, "memory 스토리지는 프로세스 종료 시 데이터가 사라지므로 개발 용도로만 사용해야 합니다")
	}

	return warnings
}
