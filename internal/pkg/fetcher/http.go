package fetcher

import (
	"net/http"
	"time"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "apk-update-server"
)

// HTTPFetcher net/http 클라이언트 기반의 기본 Fetcher 구현체입니다.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// Option HTTPFetcher 설정 함수입니다.
type Option func(*HTTPFetcher)

// WithTimeout 요청 전체(연결부터 Body 수신 완료까지)의 타임아웃을 설정합니다.
// 0이면 타임아웃을 적용하지 않으며, 이 경우 요청 Context로만 수명이 제어됩니다.
func WithTimeout(timeout time.Duration) Option {
	return func(h *HTTPFetcher) {
		h.client.Timeout = timeout
	}
}

// WithUserAgent 요청에 User-Agent가 없을 때 사용할 값을 설정합니다.
func WithUserAgent(ua string) Option {
	return func(h *HTTPFetcher) {
		if ua != "" {
			h.userAgent = ua
		}
	}
}

// WithTransport 테스트 또는 프록시 구성을 위해 Transport를 교체합니다.
func WithTransport(rt http.RoundTripper) Option {
	return func(h *HTTPFetcher) {
		h.client.Transport = rt
	}
}

// NewHTTPFetcher 기본 타임아웃(30초)이 설정된 HTTPFetcher를 생성합니다.
func NewHTTPFetcher(opts ...Option) *HTTPFetcher {
	h := &HTTPFetcher{
		client:    &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Do 요청을 실행합니다. User-Agent 헤더가 비어 있으면 기본값을 추가합니다.
func (h *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", h.userAgent)
	}
	return h.client.Do(req)
}
