package config

import "time"

// AppConfig 애플리케이션의 모든 설정을 담는 최상위 구조체입니다.
// 시작 시점에 한 번 생성된 후 변경되지 않으며, 필요한 컴포넌트에 명시적으로 전달됩니다.
type AppConfig struct {
	Debug    bool           `json:"debug"`
	API      APIConfig      `json:"api"`
	Storage  StorageConfig  `json:"storage"`
	Probe    ProbeConfig    `json:"probe"`
	Notifier NotifierConfig `json:"notifier"`
}

// APIConfig HTTP 서버 설정
type APIConfig struct {
	ListenPort     int           `json:"listen_port" validate:"min=1,max=65535"`
	TLS            TLSConfig     `json:"tls"`
	MaxConnections int           `json:"max_connections" validate:"min=0"` // 0: 제한 없음
	RequestTimeout time.Duration `json:"request_timeout" validate:"min=0"` // 0: 타임아웃 미들웨어 비활성화

	// StrictStatusCodes false이면 모든 도메인 에러를 500으로 응답하고,
	// true이면 400/404/409/502로 구분하여 응답합니다.
	StrictStatusCodes bool `json:"strict_status_codes"`

	// TrustedProxies X-Forwarded-For 헤더를 신뢰할 리버스 프록시의 IP 대역(CIDR) 목록
	// 비어 있으면 헤더를 무시하고 TCP 연결의 원격 주소를 클라이언트 IP로 사용합니다.
	TrustedProxies []string `json:"trusted_proxies" validate:"dive,cidr"`

	CORS      CORSConfig      `json:"cors"`
	RateLimit RateLimitConfig `json:"rate_limit"`
}

// TLSConfig HTTPS 서버 설정
type TLSConfig struct {
	Enabled  bool   `json:"enabled"`
	CertFile string `json:"cert_file" validate:"required_if=Enabled true,omitempty,file"`
	KeyFile  string `json:"key_file" validate:"required_if=Enabled true,omitempty,file"`
}

// CORSConfig 교차 출처 리소스 공유(CORS) 정책
type CORSConfig struct {
	AllowOrigins  []string `json:"allow_origins" validate:"min=1,dive,cors_origin"`
	AllowMethods  []string `json:"allow_methods" validate:"min=1,dive,oneof=GET POST PUT PATCH DELETE HEAD OPTIONS"`
	AllowHeaders  []string `json:"allow_headers"`
	ExposeHeaders []string `json:"expose_headers"`
}

// RateLimitConfig 클라이언트 IP별 요청 수 제한
//
// Window 동안 최대 MaxRequests개의 요청을 허용하며, 토큰은 Window/MaxRequests 간격으로 채워집니다.
type RateLimitConfig struct {
	Enabled     bool          `json:"enabled"`
	Window      time.Duration `json:"window" validate:"required_if=Enabled true,omitempty,min=1ms"`
	MaxRequests int           `json:"max_requests" validate:"required_if=Enabled true,omitempty,min=1"`
}

// Storage provider 이름
const (
	ProviderSupabase = "supabase"
	ProviderGCS      = "gcs"
	ProviderFile     = "file"
	ProviderMemory   = "memory"
)

// StorageConfig APK 파일이 저장된 오브젝트 스토리지 설정
type StorageConfig struct {
	Provider string `json:"provider" validate:"oneof=supabase gcs file memory"`
	Bucket   string `json:"bucket" validate:"required"`
	Folder   string `json:"folder"`

	// ListLimit 한 번의 목록 조회로 가져올 최대 오브젝트 수 (페이지네이션은 수행하지 않습니다)
	ListLimit int `json:"list_limit" validate:"min=1,max=1000"`

	// MaxDownloadBytes 다운로드할 APK 파일의 최대 크기 (0 이하: 제한 없음)
	MaxDownloadBytes int64 `json:"max_download_bytes"`

	// Timeout 스토리지 요청 하나의 최대 수행 시간 (0: 요청 Context로만 제어)
	Timeout time.Duration `json:"timeout" validate:"min=0"`

	Supabase SupabaseConfig `json:"supabase"`
	GCS      GCSConfig      `json:"gcs"`
	File     FileConfig     `json:"file"`
}

// SupabaseConfig Supabase Storage REST API 접속 정보
type SupabaseConfig struct {
	URL string `json:"url" validate:"omitempty,endpoint_url"`
	Key string `json:"key"`
}

// GCSConfig Google Cloud Storage 접속 정보
type GCSConfig struct {
	// CredentialsFile 서비스 계정 키 파일 경로 (빈 값: Application Default Credentials 사용)
	CredentialsFile string `json:"credentials_file" validate:"omitempty,file"`

	// Endpoint 에뮬레이터(fake-gcs-server 등) 접속용 엔드포인트 (빈 값: 운영 엔드포인트)
	Endpoint string `json:"endpoint" validate:"omitempty,endpoint_url"`
}

// FileConfig 로컬 디렉토리 기반 스토리지 설정
type FileConfig struct {
	Root string `json:"root"`
}

// ProbeConfig 스토리지 상태를 주기적으로 확인하는 프로브 설정
type ProbeConfig struct {
	Enabled  bool   `json:"enabled"`
	TimeSpec string `json:"time_spec" validate:"required_if=Enabled true,omitempty,cron_spec"`
}

// NotifierConfig 운영 알림 채널 설정
type NotifierConfig struct {
	Telegram TelegramConfig `json:"telegram"`
}

// TelegramConfig 텔레그램 알림 설정. BotToken이 비어 있으면 알림을 보내지 않습니다.
type TelegramConfig struct {
	BotToken string `json:"bot_token" validate:"omitempty,telegram_bot_token"`
	ChatID   int64  `json:"chat_id" validate:"required_with=BotToken"`
}

// Enabled 텔레그램 알림이 설정되었는지 여부를 반환합니다.
func (c TelegramConfig) Enabled() bool {
	return c.BotToken != ""
}

// Default 모든 설정 항목의 기본값을 반환합니다.
func Default() AppConfig {
	return AppConfig{
		Debug: false,
		API: APIConfig{
			ListenPort:     DefaultListenPort,
			MaxConnections: 0,
			RequestTimeout: 60 * time.Second,
			CORS: CORSConfig{
				AllowOrigins:  []string{"*"},
				AllowMethods:  []string{"GET", "POST"},
				AllowHeaders:  []string{"Content-Type", "Authorization"},
				ExposeHeaders: []string{"Content-Disposition", "X-App-Name", "X-Code-Version"},
			},
			RateLimit: RateLimitConfig{
				Enabled:     true,
				Window:      15 * time.Minute,
				MaxRequests: 100,
			},
		},
		Storage: StorageConfig{
			Provider:         ProviderSupabase,
			Bucket:           "apps",
			Folder:           "Portafolio",
			ListLimit:        100,
			MaxDownloadBytes: 512 * 1024 * 1024,
			Timeout:          0,
			File:             FileConfig{Root: "data"},
		},
		Probe: ProbeConfig{
			Enabled:  true,
			TimeSpec: "0 */5 * * * *",
		},
	}
}
