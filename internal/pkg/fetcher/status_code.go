package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	apperrors "github.com/darkkaiser/apk-update-server/internal/pkg/errors"
)

// bodySnippetLimit 에러에 포함할 응답 본문의 최대 바이트 수
const bodySnippetLimit = 4096

// HTTPStatusError 허용되지 않은 상태 코드의 응답을 표현하는 에러입니다.
// Cause에는 상태 코드에 대응하는 apperrors.AppError가 저장됩니다.
type HTTPStatusError struct {
	StatusCode  int
	Status      string
	URL         string // 쿼리 값이 마스킹된 요청 URL
	BodySnippet string // 응답 본문 앞부분 (최대 4KB)
	Cause       error
}

func (e *HTTPStatusError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "HTTP %d (%s)", e.StatusCode, e.Status)
	if e.URL != "" {
		sb.WriteString(" URL: " + e.URL)
	}
	if e.BodySnippet != "" {
		sb.WriteString(", Body: " + e.BodySnippet)
	}
	if e.Cause != nil {
		fmt.Fprintf(&sb, ": %v", e.Cause)
	}
	return sb.String()
}

func (e *HTTPStatusError) Unwrap() error {
	return e.Cause
}

// StatusCodeFetcher 응답의 상태 코드를 검증하는 데코레이터입니다.
// 허용 목록이 비어 있으면 200 OK만 허용합니다.
type StatusCodeFetcher struct {
	delegate           Fetcher
	allowedStatusCodes []int
}

var _ Fetcher = (*StatusCodeFetcher)(nil)

// NewStatusCodeFetcher allowedStatusCodes에 포함된 상태 코드만 성공으로 처리하는 StatusCodeFetcher를 생성합니다.
func NewStatusCodeFetcher(delegate Fetcher, allowedStatusCodes ...int) *StatusCodeFetcher {
	return &StatusCodeFetcher{
		delegate:           delegate,
		allowedStatusCodes: allowedStatusCodes,
	}
}

// Do 요청을 수행하고, 허용되지 않은 상태 코드이면 Body를 정리한 뒤 *HTTPStatusError를 반환합니다.
func (f *StatusCodeFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.delegate.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, err
	}

	if statusErr := CheckResponseStatus(resp, f.allowedStatusCodes...); statusErr != nil {
		drainAndCloseBody(resp.Body)
		return nil, statusErr
	}

	return resp, nil
}

// CheckResponseStatus 응답 상태 코드를 검증합니다.
// 실패 시 응답 본문의 일부를 읽어 에러에 포함하므로, 호출자는 이후 Body를 닫기만 해야 합니다.
func CheckResponseStatus(resp *http.Response, allowedStatusCodes ...int) error {
	if len(allowedStatusCodes) == 0 {
		if resp.StatusCode == http.StatusOK {
			return nil
		}
	} else if slices.Contains(allowedStatusCodes, resp.StatusCode) {
		return nil
	}

	var errType apperrors.ErrorType
	switch {
	case resp.StatusCode == http.StatusNotFound:
		errType = apperrors.NotFound
	case resp.StatusCode == http.StatusBadRequest:
		errType = apperrors.InvalidInput
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		// 자격 증명 설정 오류
		errType = apperrors.System
	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode == http.StatusRequestTimeout:
		errType = apperrors.Unavailable
	case resp.StatusCode >= 500:
		errType = apperrors.Unavailable
	default:
		errType = apperrors.Internal
	}

	statusErr := &HTTPStatusError{
		StatusCode: resp.StatusCode,
		Status:     http.StatusText(resp.StatusCode),
		Cause:      apperrors.Newf(errType, "허용되지 않은 HTTP 상태 코드입니다 (status=%d)", resp.StatusCode),
	}
	if resp.Request != nil && resp.Request.URL != nil {
		statusErr.URL = redactURL(resp.Request.URL)
	}
	if resp.Body != nil {
		if b, err := io.ReadAll(io.LimitReader(resp.Body, bodySnippetLimit)); err == nil {
			statusErr.BodySnippet = strings.TrimSpace(string(b))
		}
	}

	return statusErr
}
