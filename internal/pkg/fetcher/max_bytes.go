package fetcher

import (
	"errors"
	"io"
	"net/http"

	apperrors "github.com/darkkaiser/apk-update-server/internal/pkg/errors"
)

// NoLimit 응답 본문에 크기 제한을 적용하지 않습니다.
const NoLimit = -1

// errBodyTooLargeMsg 응답 본문이 허용된 크기를 초과했을 때의 에러 메시지
const errBodyTooLargeMsg = "응답 본문의 크기가 허용된 최대값을 초과하였습니다"

type maxBytesReader struct {
	rc    io.ReadCloser
	limit int64
}

func (r *maxBytesReader) Read(p []byte) (int, error) {
	n, err := r.rc.Read(p)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return n, apperrors.Newf(apperrors.Unavailable, "%s (limit=%d bytes)", errBodyTooLargeMsg, r.limit)
		}
	}
	return n, err
}

func (r *maxBytesReader) Close() error {
	return r.rc.Close()
}

// MaxBytesFetcher 응답 본문의 크기를 제한하는 데코레이터입니다.
//
// Content-Length가 제한을 초과하면 Body를 읽기 전에 즉시 실패하고,
// Content-Length가 없거나 실제 크기와 다르면 읽는 시점에 제한을 적용합니다.
type MaxBytesFetcher struct {
	delegate Fetcher
	limit    int64
}

// NewMaxBytesFetcher limit 바이트로 응답 본문을 제한하는 Fetcher를 생성합니다.
// limit이 NoLimit 또는 0 이하이면 delegate를 그대로 반환합니다.
func NewMaxBytesFetcher(delegate Fetcher, limit int64) Fetcher {
	if limit <= 0 {
		return delegate
	}
	return &MaxBytesFetcher{delegate: delegate, limit: limit}
}

func (f *MaxBytesFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.delegate.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, err
	}

	if resp.ContentLength > f.limit {
		drainAndCloseBody(resp.Body)
		return nil, apperrors.Newf(apperrors.Unavailable, "%s (content_length=%d, limit=%d bytes)", errBodyTooLargeMsg, resp.ContentLength, f.limit)
	}

	resp.Body = &maxBytesReader{
		rc:    http.MaxBytesReader(nil, resp.Body, f.limit),
		limit: f.limit,
	}

	return resp, nil
}
