// Package httputil HTTP 응답 변환에 필요한 공통 기능을 제공합니다.
package httputil

import (
	"net/http"

	apperrors "github.com/darkkaiser/apk-update-server/internal/pkg/errors"
	"github.com/darkkaiser/apk-update-server/internal/service/api/constants"
	"github.com/darkkaiser/apk-update-server/internal/service/api/model/response"
	applog "github.com/darkkaiser/apk-update-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// Kind 도메인 에러의 종류입니다.
type Kind int

const (
	// KindValidation 앱 식별자가 없거나 형식이 잘못됨
	KindValidation Kind = iota + 1

	// KindNotFound 일치하는 앱 파일이 없거나 목록 조회 실패
	KindNotFound

	// KindUpToDate 요청한 버전이 이미 최신
	KindUpToDate

	// KindStorage 파일 다운로드 실패
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "Validation"
	case KindNotFound:
		return "NotFound"
	case KindUpToDate:
		return "UpToDate"
	case KindStorage:
		return "Storage"
	default:
		return "Unknown"
	}
}

// DomainError 핸들러가 반환하는 도메인 에러입니다.
// Message는 클라이언트에게 그대로 전달되고, Cause는 로그에만 기록됩니다.
type DomainError struct {
	Kind    Kind
	Message string
	Cause   error
}

// NewDomainError DomainError를 생성합니다.
func NewDomainError(kind Kind, message string, cause error) *DomainError {
	return &DomainError{Kind: kind, Message: message, Cause: cause}
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return e.Kind.String() + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// StatusCode 도메인 에러의 HTTP 상태 코드를 반환합니다.
//
// strict가 false이면 기존 클라이언트와의 호환을 위해 항상 500을 반환합니다.
func (e *DomainError) StatusCode(strict bool) int {
	if !strict {
		return http.StatusInternalServerError
	}

	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUpToDate:
		return http.StatusConflict
	case KindStorage:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// frameworkMessages Echo가 생성하는 HTTPError의 상태 코드별 응답 메시지
var frameworkMessages = map[int]string{
	http.StatusBadRequest:            constants.ErrMsgBadRequest,
	http.StatusNotFound:              constants.ErrMsgRouteNotFound,
	http.StatusMethodNotAllowed:      constants.ErrMsgMethodNotAllowed,
	http.StatusRequestEntityTooLarge: constants.ErrMsgRequestTooLarge,
	http.StatusTooManyRequests:       constants.ErrMsgTooManyRequests,
	http.StatusServiceUnavailable:    constants.ErrMsgServiceUnavailable,
	http.StatusInternalServerError:   constants.ErrMsgInternalServerError,
}

// NewErrorHandler Echo 프레임워크의 전역 에러 핸들러를 반환합니다.
//
// 모든 에러를 {error, message, data} 형식의 JSON으로 변환합니다.
//   - DomainError: Message를 그대로 전달하고, 상태 코드는 strict 설정에 따라 결정합니다.
//   - echo.HTTPError: 상태 코드를 유지하고 메시지는 스페인어로 변환합니다.
//   - 그 외: 500 응답
func NewErrorHandler(strict bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		code, message := http.StatusInternalServerError, constants.ErrMsgUnknown

		fields := applog.Fields{
			"path":       c.Request().URL.Path,
			"method":     c.Request().Method,
			"remote_ip":  c.RealIP(),
			"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
		}

		var domainErr *DomainError
		var httpErr *echo.HTTPError
		switch {
		case apperrors.As(err, &domainErr):
			code, message = domainErr.StatusCode(strict), domainErr.Message

			fields["status_code"] = code
			fields["kind"] = domainErr.Kind.String()
			fields["app"] = c.QueryParam(constants.QueryParamApp)
			if domainErr.Cause != nil {
				fields["error"] = domainErr.Cause
			}

			// 호환 모드에서는 정상적인 거부 응답도 500이므로 상태 코드 대신 에러 종류로 로그 레벨을 정합니다.
			entry := applog.WithComponentAndFields(constants.ComponentErrorHandler, fields)
			if domainErr.Kind == KindStorage {
				entry.Error(constants.LogMsgDomainRequestRejected)
			} else {
				entry.Info(constants.LogMsgDomainRequestRejected)
			}

		default:
			if apperrors.As(err, &httpErr) {
				code = httpErr.Code
				if msg, ok := frameworkMessages[code]; ok {
					message = msg
				} else if msg, ok := httpErr.Message.(string); ok {
					message = msg
				}
			}

			fields["status_code"] = code
			fields["error"] = err

			entry := applog.WithComponentAndFields(constants.ComponentErrorHandler, fields)
			if code >= http.StatusInternalServerError {
				entry.Error(constants.LogMsgHTTP5xxServerError)
			} else if code >= http.StatusBadRequest {
				entry.Warn(constants.LogMsgHTTP4xxClientError)
			}
		}

		// 이미 응답(예: APK 스트림)이 전송된 경우 추가 응답을 보내지 않습니다.
		if c.Response().Committed {
			return
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}

		_ = c.JSON(code, response.Fail(message))
	}
}
