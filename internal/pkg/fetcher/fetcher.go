// Package fetcher 외부 HTTP API 호출에 사용하는 Fetcher 인터페이스와 데코레이터를 제공합니다.
//
// 데코레이터는 다음 순서로 조합하는 것을 권장합니다.
//
//	f := fetcher.NewLoggingFetcher(
//	    fetcher.NewMaxBytesFetcher(
//	        fetcher.NewStatusCodeFetcher(fetcher.NewHTTPFetcher()), limit))
package fetcher

import (
	"context"
	"io"
	"net/http"
)

const component = "fetcher"

// Fetcher HTTP 요청을 수행하는 핵심 인터페이스입니다.
//
// 성공 시 반환된 응답의 Body는 호출자가 반드시 닫아야 합니다.
// 에러가 발생한 경우 응답 객체는 nil이며, Body는 내부에서 정리됩니다.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// Do 요청을 생성하여 f로 전송하는 헬퍼 함수입니다.
func Do(ctx context.Context, f Fetcher, method, url string, header http.Header, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := f.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, err
	}

	return resp, nil
}
