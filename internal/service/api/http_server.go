// Package api APK 다운로드 및 버전 확인 API를 제공하는 HTTP 서비스입니다.
package api

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/darkkaiser/apk-update-server/internal/config"
	"github.com/darkkaiser/apk-update-server/internal/service/api/constants"
	"github.com/darkkaiser/apk-update-server/internal/service/api/httputil"
	appmiddleware "github.com/darkkaiser/apk-update-server/internal/service/api/middleware"
	applog "github.com/darkkaiser/apk-update-server/pkg/log"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// hstsMaxAge HTTPS 사용 시 Strict-Transport-Security 헤더의 max-age (1년)
const hstsMaxAge = 365 * 24 * 60 * 60

// downloadPath 응답 스트리밍 중에 타임아웃을 적용하지 않는 경로
const downloadPath = "/v1/api/app"

// HTTPServerConfig HTTP 서버 생성에 필요한 설정입니다.
type HTTPServerConfig struct {
	Debug bool

	EnableHSTS bool

	// StrictStatusCodes 도메인 에러를 구분된 상태 코드로 응답할지 여부
	StrictStatusCodes bool

	// RequestTimeout 요청 하나의 최대 처리 시간 (0: 제한 없음)
	// APK 다운로드 경로는 제외됩니다. 다운로드 핸들러가 파일 조회 단계에만 별도로 적용합니다.
	RequestTimeout time.Duration

	// TrustedProxies X-Forwarded-For 헤더를 신뢰할 프록시의 IP 대역(CIDR) 목록
	TrustedProxies []string

	CORS config.CORSConfig

	RateLimit config.RateLimitConfig
}

// newHTTPServerConfig 애플리케이션 설정에서 HTTPServerConfig를 구성합니다.
func newHTTPServerConfig(appConfig *config.AppConfig) HTTPServerConfig {
	return HTTPServerConfig{
		Debug:             appConfig.Debug,
		EnableHSTS:        appConfig.API.TLS.Enabled,
		StrictStatusCodes: appConfig.API.StrictStatusCodes,
		RequestTimeout:    appConfig.API.RequestTimeout,
		TrustedProxies:    appConfig.API.TrustedProxies,
		CORS:              appConfig.API.CORS,
		RateLimit:         appConfig.API.RateLimit,
	}
}

// NewHTTPServer 미들웨어가 구성된 Echo 인스턴스를 생성합니다.
//
// 미들웨어 순서는 middleware 패키지 문서를 참고합니다.
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = constants.DefaultReadTimeout
	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	e.Server.WriteTimeout = constants.DefaultWriteTimeout
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	e.Logger = appmiddleware.NewLogger(applog.StandardLogger())

	// c.RealIP()는 IPExtractor가 없으면 X-Forwarded-For 헤더를 그대로 신뢰합니다.
	e.IPExtractor = newIPExtractor(cfg.TrustedProxies)

	e.HTTPErrorHandler = httputil.NewErrorHandler(cfg.StrictStatusCodes)

	e.Use(appmiddleware.PanicRecovery())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(appmiddleware.HTTPLogger())
	if cfg.RateLimit.Enabled {
		e.Use(appmiddleware.RateLimiting(cfg.RateLimit.Window, cfg.RateLimit.MaxRequests))
	}
	e.Use(middleware.BodyLimit(constants.DefaultMaxBodySize))
	if cfg.RequestTimeout > 0 {
		e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
			Skipper: func(c echo.Context) bool {
				return c.Request().Method == http.MethodPost && c.Path() == downloadPath
			},
			Timeout: cfg.RequestTimeout,
		}))
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.CORS.AllowOrigins,
		AllowMethods:  cfg.CORS.AllowMethods,
		AllowHeaders:  cfg.CORS.AllowHeaders,
		ExposeHeaders: cfg.CORS.ExposeHeaders,
	}))

	secureConfig := middleware.DefaultSecureConfig
	if cfg.EnableHSTS {
		secureConfig.HSTSMaxAge = hstsMaxAge
	}
	e.Use(middleware.SecureWithConfig(secureConfig))

	return e
}

// newIPExtractor 클라이언트 IP 추출 방식을 결정합니다.
//
// 신뢰할 프록시가 없으면 TCP 연결의 원격 주소만 사용합니다.
// 프록시가 지정되면 해당 대역에서 들어온 요청에 한해 X-Forwarded-For 헤더를 오른쪽부터 따라가며
// 신뢰할 수 없는 첫 번째 주소를 클라이언트 IP로 사용합니다.
// trustedProxies에 CIDR 형식이 아닌 값이 있으면 panic이 발생합니다.
func newIPExtractor(trustedProxies []string) echo.IPExtractor {
	if len(trustedProxies) == 0 {
		return echo.ExtractIPDirect()
	}

	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, cidr := range trustedProxies {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			panic(fmt.Sprintf("신뢰할 프록시의 IP 대역 형식이 올바르지 않습니다: %q", cidr))
		}
		opts = append(opts, echo.TrustIPRange(ipNet))
	}

	return echo.ExtractIPFromXFFHeader(opts...)
}
