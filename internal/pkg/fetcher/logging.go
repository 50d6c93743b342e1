package fetcher

import (
	"net/http"
	"net/url"
	"time"

	applog "github.com/darkkaiser/apk-update-server/pkg/log"
	"github.com/darkkaiser/apk-update-server/pkg/strutil"
)

// sensitiveQueryKeys URL 로깅 시 값을 마스킹할 쿼리 파라미터 이름
var sensitiveQueryKeys = []string{"apikey", "api_key", "key", "token", "access_token", "signature"}

// LoggingFetcher 요청 메서드, URL, 상태 코드, 소요 시간을 로그로 남기는 데코레이터입니다.
type LoggingFetcher struct {
	delegate Fetcher
}

// NewLoggingFetcher LoggingFetcher를 생성합니다.
func NewLoggingFetcher(delegate Fetcher) *LoggingFetcher {
	return &LoggingFetcher{delegate: delegate}
}

func (f *LoggingFetcher) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := f.delegate.Do(req)

	fields := applog.Fields{
		"method":   req.Method,
		"url":      redactURL(req.URL),
		"duration": time.Since(start).String(),
	}
	if resp != nil {
		fields["status_code"] = resp.StatusCode
	}

	entry := applog.WithComponentAndFields(component, fields).WithContext(req.Context())
	if err != nil {
		entry.WithError(err).Warn("HTTP 요청 실패")
		return resp, err
	}

	entry.Debug("HTTP 요청 완료")

	return resp, nil
}

// redactURL URL의 사용자 정보와 민감한 쿼리 값을 마스킹한 문자열을 반환합니다.
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	clone := *u
	if clone.User != nil {
		clone.User = url.User(clone.User.Username())
	}
	if clone.RawQuery != "" {
		clone.RawQuery = strutil.MaskQuery(clone.Query(), sensitiveQueryKeys...)
	}

	return clone.String()
}
