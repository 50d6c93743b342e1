package middleware

import (
	"net/http"
	"runtime"

	apperrors "github.com/darkkaiser/apk-update-server/internal/pkg/errors"
	"github.com/darkkaiser/apk-update-server/internal/service/api/constants"
	applog "github.com/darkkaiser/apk-update-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// stackBufferSize panic 발생 시 스택 트레이스를 저장할 버퍼 크기 (4KB)
const stackBufferSize = 4 << 10

// PanicRecovery 핸들러에서 발생한 panic을 복구하여 에러 핸들러로 전달하는 미들웨어를 반환합니다.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				// http.ErrAbortHandler는 net/http가 연결을 끊기 위해 사용하므로 다시 panic을 일으킵니다.
				if r == http.ErrAbortHandler {
					panic(r)
				}

				recovered, ok := r.(error)
				if !ok {
					recovered = apperrors.Newf(apperrors.Internal, "%v", r)
				}

				stack := make([]byte, stackBufferSize)
				length := runtime.Stack(stack, false)

				fields := applog.Fields{
					"error":  recovered,
					"stack":  string(stack[:length]),
					"path":   c.Request().URL.Path,
					"method": c.Request().Method,
				}
				if requestID := c.Response().Header().Get(echo.HeaderXRequestID); requestID != "" {
					fields["request_id"] = requestID
				}

				applog.WithComponentAndFields(constants.ComponentMiddlewarePanicRecovery, fields).Error(constants.LogMsgPanicRecovered)

				err = apperrors.Wrap(recovered, apperrors.Internal, "핸들러 실행 중 panic이 발생했습니다")
			}()

			return next(c)
		}
	}
}
