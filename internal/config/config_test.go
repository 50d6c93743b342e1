package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/apk-update-server/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBotToken = "123456789:ABCdefGHIjklMNOpqrSTUvwxYZ0123456789"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// setSupabaseEnv 기본 provider(supabase)의 필수 값을 환경 변수로 설정합니다.
func setSupabaseEnv(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://abcd.supabase.co/")
	t.Setenv("SUPABASE_KEY", "service-role-key")
}

func TestLoad_DefaultsWithLegacyEnv(t *testing.T) {
	setSupabaseEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.Debug)
	assert.Equal(t, 4000, cfg.API.ListenPort)
	assert.Equal(t, []string{"*"}, cfg.API.CORS.AllowOrigins)
	assert.Equal(t, []string{"GET", "POST"}, cfg.API.CORS.AllowMethods)
	assert.Equal(t, []string{"Content-Type", "Authorization"}, cfg.API.CORS.AllowHeaders)
	assert.Equal(t, 15*time.Minute, cfg.API.RateLimit.Window)
	assert.False(t, cfg.API.StrictStatusCodes)

	assert.Equal(t, ProviderSupabase, cfg.Storage.Provider)
	assert.Equal(t, "apps", cfg.Storage.Bucket)
	assert.Equal(t, "Portafolio", cfg.Storage.Folder)
	assert.Equal(t, "https://abcd.supabase.co", cfg.Storage.Supabase.URL, "후행 슬래시는 제거된다")
	assert.Equal(t, "service-role-key", cfg.Storage.Supabase.Key)

	assert.True(t, cfg.Probe.Enabled)
	assert.False(t, cfg.Notifier.Telegram.Enabled())
}

func TestLoad_PortEnv(t *testing.T) {
	setSupabaseEnv(t)
	t.Setenv("PORT", "8080")
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.API.ListenPort)
}

func TestLoad_PrefixedEnvOverridesLegacy(t *testing.T) {
	setSupabaseEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("APKSERVER_API__LISTEN_PORT", "9090")
	t.Setenv("APKSERVER_API__STRICT_STATUS_CODES", "true")
	t.Setenv("APKSERVER_API__CORS__ALLOW_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("APKSERVER_API__RATE_LIMIT__WINDOW", "1m")
	t.Setenv("APKSERVER_STORAGE__FOLDER", "/Releases/")
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.API.ListenPort)
	assert.True(t, cfg.API.StrictStatusCodes)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.API.CORS.AllowOrigins)
	assert.Equal(t, time.Minute, cfg.API.RateLimit.Window)
	assert.Equal(t, "Releases", cfg.Storage.Folder)
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"debug": true,
		"api": { "listen_port": 5000, "request_timeout": "10s" },
		"storage": {
			"provider": "file",
			"bucket": "apps",
			"file": { "root": "/srv/apk" }
		},
		"probe": { "enabled": false },
		"notifier": { "telegram": { "bot_token": "`+validBotToken+`", "chat_id": 42 } }
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, 5000, cfg.API.ListenPort)
	assert.Equal(t, 10*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, ProviderFile, cfg.Storage.Provider)
	assert.Equal(t, "/srv/apk", cfg.Storage.File.Root)
	assert.Equal(t, "Portafolio", cfg.Storage.Folder, "파일에 없는 값은 기본값을 유지한다")
	assert.False(t, cfg.Probe.Enabled)
	assert.True(t, cfg.Notifier.Telegram.Enabled())
	assert.Equal(t, int64(42), cfg.Notifier.Telegram.ChatID)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeFile(t, "config.yaml", `
api:
  listen_port: 7000
  cors:
    allow_origins:
      - https://app.example.com
storage:
  provider: memory
  list_limit: 50
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.API.ListenPort)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.API.CORS.AllowOrigins)
	assert.Equal(t, ProviderMemory, cfg.Storage.Provider)
	assert.Equal(t, 50, cfg.Storage.ListLimit)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("명시한 파일이 없음", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.NotFound))
	})

	t.Run("잘못된 JSON", func(t *testing.T) {
		_, err := Load(writeFile(t, "bad.json", `{"debug": `))
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	})

	t.Run("알 수 없는 키", func(t *testing.T) {
		setSupabaseEnv(t)
		_, err := Load(writeFile(t, "unknown.json", `{"api": {"listen_prot": 1}}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "listen_prot")
	})

	t.Run("supabase 자격 증명 누락", func(t *testing.T) {
		t.Setenv("SUPABASE_URL", "")
		t.Setenv("SUPABASE_KEY", "")
		_, err := Load(writeFile(t, "empty.json", `{}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.supabase.url")
	})
}

func TestAppConfig_Validate(t *testing.T) {
	valid := func() AppConfig {
		cfg := Default()
		cfg.Storage.Provider = ProviderMemory
		return cfg
	}

	tests := []struct {
		name        string
		mutate      func(*AppConfig)
		errContains string
	}{
		{"기본값", func(c *AppConfig) {}, ""},
		{"포트 범위", func(c *AppConfig) { c.API.ListenPort = 70000 }, "api.listen_port"},
		{"CORS Origin 형식", func(c *AppConfig) { c.API.CORS.AllowOrigins = []string{"example.com"} }, "CORS Origin 형식"},
		{"와일드카드 혼용", func(c *AppConfig) { c.API.CORS.AllowOrigins = []string{"*", "https://a.com"} }, "와일드카드"},
		{"프록시 IP 대역 형식", func(c *AppConfig) { c.API.TrustedProxies = []string{"10.0.0.1"} }, "api.trusted_proxies[0]"},
		{"프록시 IP 대역", func(c *AppConfig) { c.API.TrustedProxies = []string{"10.0.0.0/8", "::1/128"} }, ""},
		{"허용되지 않은 메서드", func(c *AppConfig) { c.API.CORS.AllowMethods = []string{"FETCH"} }, "허용되지 않은 값"},
		{"TLS 인증서 누락", func(c *AppConfig) { c.API.TLS.Enabled = true }, "api.tls.cert_file"},
		{"RateLimit 최대 요청 수 누락", func(c *AppConfig) { c.API.RateLimit.MaxRequests = 0 }, "api.rate_limit.max_requests"},
		{"알 수 없는 provider", func(c *AppConfig) { c.Storage.Provider = "s3" }, "storage.provider"},
		{"버킷 누락", func(c *AppConfig) { c.Storage.Bucket = "" }, "storage.bucket"},
		{"list_limit 범위", func(c *AppConfig) { c.Storage.ListLimit = 0 }, "storage.list_limit"},
		{"file root 누락", func(c *AppConfig) { c.Storage.Provider = ProviderFile; c.Storage.File.Root = " " }, "storage.file.root"},
		{"Supabase URL 형식", func(c *AppConfig) { c.Storage.Supabase.URL = "abcd.supabase.co" }, "URL 형식"},
		{"Cron 표현식", func(c *AppConfig) { c.Probe.TimeSpec = "*/5 * * * *" }, "Cron 표현식"},
		{"프로브 비활성화 시 Cron 미검사", func(c *AppConfig) { c.Probe.Enabled = false; c.Probe.TimeSpec = "" }, ""},
		{"봇 토큰 형식", func(c *AppConfig) { c.Notifier.Telegram.BotToken = "invalid"; c.Notifier.Telegram.ChatID = 1 }, "BotToken"},
		{"ChatID 누락", func(c *AppConfig) { c.Notifier.Telegram.BotToken = validBotToken }, "notifier.telegram.chat_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
			assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
		})
	}
}

func TestAppConfig_VerifyRecommendations(t *testing.T) {
	cfg := Default()
	assert.Empty(t, cfg.VerifyRecommendations())

	cfg.API.ListenPort = 80
	cfg.API.RateLimit.Enabled = false
	cfg.Storage.MaxDownloadBytes = 0
	cfg.Storage.Provider = ProviderMemory
	assert.Len(t, cfg.VerifyRecommendations(), 4)
}
