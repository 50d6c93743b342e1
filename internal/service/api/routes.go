package api

import (
	"net/http"

	"github.com/darkkaiser/apk-update-server/internal/service/api/constants"
	"github.com/darkkaiser/apk-update-server/internal/service/api/handler/system"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterRoutes 버전이 없는 공통 라우트를 등록합니다.
//
//	GET /            "Hello World"
//	GET /health      헬스체크
//	GET /version     빌드 정보
//	GET /swagger/*   Swagger UI
func RegisterRoutes(e *echo.Echo, h *system.Handler) {
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, constants.MsgHelloWorld)
	})

	e.GET("/health", h.HealthCheckHandler)
	e.GET("/version", h.VersionHandler)

	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(
		echoSwagger.URL("/swagger/doc.json"),
		echoSwagger.DeepLinking(true),
		echoSwagger.DocExpansion("list"),
	))
}
