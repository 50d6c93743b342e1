// Package v1 APK 업데이트 API v1의 라우트를 등록합니다.
package v1

import (
	"github.com/darkkaiser/apk-update-server/internal/service/api/v1/handler"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes v1 API 라우트를 등록합니다.
//
//	POST /v1/api/app?app=<name>-<version>                 APK 파일 다운로드
//	GET  /v1/api/app/version-check?app=<name>-<version>   새 버전 확인
func RegisterRoutes(e *echo.Echo, h *handler.Handler) {
	if h == nil {
		panic("Handler는 필수입니다")
	}

	grp := e.Group("/v1/api/app")
	{
		grp.POST("", h.DownloadHandler)
		grp.GET("/version-check", h.VersionCheckHandler)
	}
}
