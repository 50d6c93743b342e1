package middleware

import (
	"strconv"
	"time"

	"github.com/darkkaiser/apk-update-server/internal/service/api/constants"
	applog "github.com/darkkaiser/apk-update-server/pkg/log"
	"github.com/darkkaiser/apk-update-server/pkg/strutil"
	"github.com/labstack/echo/v4"
)

// defaultBytesIn Content-Length 헤더가 없는 경우 bytes_in 필드에 기록되는 값
const defaultBytesIn = "0"

// sensitiveQueryParams 접근 로그에서 값을 마스킹하는 쿼리 파라미터
var sensitiveQueryParams = []string{"apikey", "api_key", "key", "token", "secret"}

// HTTPLogger HTTP 요청/응답을 구조화된 로그로 기록하는 미들웨어를 반환합니다.
//
// 핸들러가 반환한 에러는 c.Error로 즉시 처리하여 로그에 최종 상태 코드가 기록되도록 합니다.
func HTTPLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			start := time.Now()

			defer func() {
				stop := time.Now()
				latency := stop.Sub(start)

				path := req.URL.Path
				if path == "" {
					path = "/"
				}

				bytesIn := req.Header.Get(echo.HeaderContentLength)
				if bytesIn == "" {
					bytesIn = defaultBytesIn
				}

				uri := path
				if req.URL.RawQuery != "" {
					uri += "?" + strutil.MaskQuery(req.URL.Query(), sensitiveQueryParams...)
				}

				fields := applog.Fields{
					"time_rfc3339": stop.Format(time.RFC3339),

					"method":   req.Method,
					"path":     path,
					"uri":      uri,
					"host":     req.Host,
					"protocol": req.Proto,

					"remote_ip":  c.RealIP(),
					"user_agent": req.UserAgent(),
					"referer":    req.Referer(),

					"status":    res.Status,
					"bytes_in":  bytesIn,
					"bytes_out": strconv.FormatInt(res.Size, 10),

					"latency":       strconv.FormatInt(latency.Microseconds(), 10),
					"latency_human": latency.String(),

					"request_id": res.Header().Get(echo.HeaderXRequestID),
				}
				if app := c.QueryParam(constants.QueryParamApp); app != "" {
					fields["app"] = app
				}

				applog.WithComponentAndFields(constants.ComponentMiddlewareHTTPLogger, fields).Info("HTTP 요청")
			}()

			if err := next(c); err != nil {
				c.Error(err)
			}

			return nil
		}
	}
}
