package constants

import "time"

// HTTP 서버 설정 값입니다.
const (
	// DefaultReadHeaderTimeout 요청 헤더를 읽는 최대 시간 (Slowloris 공격 대응)
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultReadTimeout 요청 전체(헤더 + 본문)를 읽는 최대 시간
	DefaultReadTimeout = 30 * time.Second

	// DefaultWriteTimeout 응답 쓰기 최대 시간. APK 스트리밍이 중간에 끊기지 않도록 제한하지 않습니다.
	DefaultWriteTimeout = 0

	// DefaultIdleTimeout Keep-Alive 연결의 최대 유휴 시간
	DefaultIdleTimeout = 120 * time.Second

	// DefaultShutdownTimeout Graceful Shutdown 최대 대기 시간
	DefaultShutdownTimeout = 5 * time.Second

	// DefaultMaxBodySize 요청 본문 최대 크기. 모든 엔드포인트가 쿼리 파라미터만 사용합니다.
	DefaultMaxBodySize = "64K"
)

// 요청/응답 관련 상수입니다.
const (
	// QueryParamApp 앱 식별자("<name>-<version>")를 전달하는 쿼리 파라미터
	QueryParamApp = "app"

	// ContentTypeAPK APK 파일의 MIME 타입
	ContentTypeAPK = "application/vnd.android.package-archive"

	// HeaderXAppName 다운로드 응답에 포함되는 저장된 파일 이름
	HeaderXAppName = "X-App-Name"

	// HeaderXCodeVersion 다운로드 응답에 포함되는 저장된 파일의 버전
	HeaderXCodeVersion = "X-Code-Version"

	// HeaderRetryAfter 요청 수 제한 응답에 포함되는 재시도 대기 시간(초)
	HeaderRetryAfter = "Retry-After"
)

// 헬스체크 관련 상수입니다.
const (
	// HealthStatusHealthy 헬스체크 상태: 정상
	HealthStatusHealthy = "healthy"

	// HealthStatusUnhealthy 헬스체크 상태: 비정상
	HealthStatusUnhealthy = "unhealthy"

	// DependencyStorage 외부 의존성 ID: 오브젝트 스토리지
	DependencyStorage = "storage"

	// DependencyNotificationService 외부 의존성 ID: 알림 서비스
	DependencyNotificationService = "notification_service"

	// MsgDepStatusHealthy 외부 의존성 상태: 정상
	MsgDepStatusHealthy = "정상 작동 중"
)

// 로그 메시지입니다.
const (
	LogMsgServiceStarting       = "API 서비스 시작중..."
	LogMsgServiceStarted        = "API 서비스 시작됨"
	LogMsgServiceStopping       = "API 서비스 중지중..."
	LogMsgServiceStopped        = "API 서비스 중지됨"
	LogMsgServiceAlreadyStarted = "API 서비스가 이미 시작됨!!!"
	LogMsgServerStarting        = "HTTP 서버 시작"
	LogMsgServerFatalError      = "HTTP 서버를 구성하는 중에 치명적인 오류가 발생하였습니다."
	LogMsgServerShutdownError   = "HTTP 서버를 중지하는 중에 오류가 발생하였습니다."
	LogMsgHTTP5xxServerError    = "HTTP 5xx: 서버 내부 오류"
	LogMsgHTTP4xxClientError    = "HTTP 4xx: 클라이언트 요청 오류"
	LogMsgDomainRequestRejected = "요청을 처리할 수 없습니다"
	LogMsgDownloadStreamAborted = "APK 파일 전송이 중단되었습니다"
	LogMsgDownloadStarted       = "APK 파일 전송 시작"
	LogMsgRateLimitExceeded     = "요청 수 제한 초과"
	LogMsgPanicRecovered        = "PANIC RECOVERED"
	LogMsgHealthCheck           = "헬스체크 요청"
	LogMsgVersionInfo           = "버전 정보 요청"
)
