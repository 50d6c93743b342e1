// Package handler APK 다운로드와 버전 확인 API(v1) 핸들러를 제공합니다.
package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/darkkaiser/apk-update-server/internal/catalog"
	apperrors "github.com/darkkaiser/apk-update-server/internal/pkg/errors"
	"github.com/darkkaiser/apk-update-server/internal/service/api/constants"
	"github.com/darkkaiser/apk-update-server/internal/service/api/httputil"
	"github.com/darkkaiser/apk-update-server/internal/service/api/model/response"
	"github.com/darkkaiser/apk-update-server/internal/storage"
	applog "github.com/darkkaiser/apk-update-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// Resolver 앱 식별자를 저장된 파일로 변환합니다. catalog.Resolver가 구현합니다.
type Resolver interface {
	Resolve(ctx context.Context, raw string) catalog.Resolution
	Open(ctx context.Context, obj storage.ObjectInfo) (*storage.Object, error)
}

var _ Resolver = (*catalog.Resolver)(nil)

// Handler APK 다운로드 및 버전 확인 요청을 처리합니다.
type Handler struct {
	resolver Resolver

	// resolveTimeout 파일 조회 단계의 최대 수행 시간 (0: 제한 없음)
	// 파일 전송 단계에는 적용하지 않습니다.
	resolveTimeout time.Duration
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(resolver Resolver, resolveTimeout time.Duration) *Handler {
	if resolver == nil {
		panic("Resolver는 필수입니다")
	}

	return &Handler{
		resolver:       resolver,
		resolveTimeout: resolveTimeout,
	}
}

// DownloadHandler godoc
// @Summary APK 파일 다운로드
// @Description 요청한 앱의 새 버전 APK 파일을 스트림으로 전송합니다.
// @Description 저장된 파일의 버전이 요청한 버전과 같으면 에러를 반환합니다.
// @Description
// @Description 상태 코드는 api.strict_status_codes 설정에 따라 달라집니다.
// @Description - false(기본값): 모든 에러를 500으로 응답
// @Description - true: 400(식별자 누락), 404(파일 없음), 409(최신 버전), 502(다운로드 실패)
// @Tags App
// @Produce application/vnd.android.package-archive
// @Produce json
// @Param app query string true "앱 식별자 (<name>-<version>)" example(myapp-2)
// @Success 200 {file} file "APK 파일"
// @Header 200 {string} Content-Disposition "attachment; filename=myapp-3.apk"
// @Header 200 {string} X-App-Name "저장된 파일 이름"
// @Header 200 {string} X-Code-Version "저장된 파일의 버전"
// @Failure 400 {object} response.ErrorResponse "앱 식별자 누락"
// @Failure 404 {object} response.ErrorResponse "파일 없음"
// @Failure 409 {object} response.ErrorResponse "최신 버전"
// @Failure 500 {object} response.ErrorResponse "에러 (호환 모드)"
// @Failure 502 {object} response.ErrorResponse "다운로드 실패"
// @Router /v1/api/app [post]
func (h *Handler) DownloadHandler(c echo.Context) error {
	res, err := h.resolve(c)
	if err != nil {
		return err
	}

	obj, err := h.resolver.Open(c.Request().Context(), res.Object)
	if err != nil {
		return httputil.NewDomainError(httputil.KindStorage, constants.ErrMsgDownloadFailed, err)
	}
	defer obj.Body.Close()

	name := res.Object.Name

	header := c.Response().Header()
	header.Set(echo.HeaderContentDisposition, "attachment; filename="+name)
	if obj.Size >= 0 {
		header.Set(echo.HeaderContentLength, strconv.FormatInt(obj.Size, 10))
	}
	header.Set(constants.HeaderXAppName, name)
	header.Set(constants.HeaderXCodeVersion, res.StoredVersion)

	fields := applog.Fields{
		"app":        res.Identifier.Raw,
		"file":       name,
		"size":       obj.Size,
		"request_id": header.Get(echo.HeaderXRequestID),
	}
	applog.WithComponentAndFields(constants.ComponentHandler, fields).Info(constants.LogMsgDownloadStarted)

	// 응답 헤더가 전송된 후에는 에러 응답을 보낼 수 없으므로 전송 실패는 로그로만 남깁니다.
	if err := c.Stream(http.StatusOK, constants.ContentTypeAPK, obj.Body); err != nil {
		applog.WithComponentAndFields(constants.ComponentHandler, fields).WithError(err).Warn(constants.LogMsgDownloadStreamAborted)
	}

	return nil
}

// VersionCheckHandler godoc
// @Summary 새 버전 확인
// @Description 요청한 앱의 새 버전이 있는지 확인합니다. 파일은 전송하지 않습니다.
// @Tags App
// @Produce json
// @Param app query string true "앱 식별자 (<name>-<version>)" example(myapp-2)
// @Success 200 {object} response.VersionCheckResponse "새 버전 있음"
// @Failure 400 {object} response.ErrorResponse "앱 식별자 누락"
// @Failure 404 {object} response.ErrorResponse "파일 없음"
// @Failure 409 {object} response.ErrorResponse "최신 버전"
// @Failure 500 {object} response.ErrorResponse "에러 (호환 모드)"
// @Router /v1/api/app/version-check [get]
func (h *Handler) VersionCheckHandler(c echo.Context) error {
	res, err := h.resolve(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.OK(constants.MsgNewVersionAvailable, response.AppVersionData{
		AppName:     res.Object.Name,
		CodeVersion: res.StoredVersion,
	}))
}

// resolve 요청의 앱 식별자로 파일을 조회하고, 새 버전이 없으면 도메인 에러를 반환합니다.
func (h *Handler) resolve(c echo.Context) (catalog.Resolution, error) {
	ctx := c.Request().Context()
	if h.resolveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.resolveTimeout)
		defer cancel()
	}

	res := h.resolver.Resolve(ctx, c.QueryParam(constants.QueryParamApp))

	switch res.Status {
	case catalog.StatusUpdateAvailable:
		return res, nil
	case catalog.StatusInvalidRequest:
		return res, httputil.NewDomainError(httputil.KindValidation, constants.ErrMsgAppNotFound, nil)
	case catalog.StatusNotFound:
		return res, httputil.NewDomainError(httputil.KindNotFound, constants.ErrMsgAppNotFound, res.Cause)
	case catalog.StatusUpToDate:
		return res, httputil.NewDomainError(httputil.KindUpToDate, constants.ErrMsgNoNewVersion, nil)
	default:
		return res, apperrors.Newf(apperrors.Internal, "알 수 없는 조회 결과입니다: %s", res.Status)
	}
}
