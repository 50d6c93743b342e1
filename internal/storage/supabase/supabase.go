// Package supabase Supabase Storage REST API를 사용하는 storage.Store 구현체를 제공합니다.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/apk-update-server/internal/pkg/errors"
	"github.com/darkkaiser/apk-update-server/internal/pkg/fetcher"
	"github.com/darkkaiser/apk-update-server/internal/storage"
	"github.com/tidwall/gjson"
)

const defaultListLimit = 100

// Options Store 생성 옵션입니다.
type Options struct {
	URL              string // 프로젝트 URL (예: https://xyz.supabase.co)
	Key              string // service_role 또는 anon 키
	Bucket           string
	ListLimit        int
	MaxDownloadBytes int64
	Timeout          time.Duration

	// Transport 테스트에서 HTTP 전송 계층을 교체할 때 사용합니다.
	Transport http.RoundTripper
}

// Store Supabase Storage 버킷 하나에 바인딩된 클라이언트입니다.
type Store struct {
	baseURL   string
	key       string
	bucket    string
	listLimit int

	// api 목록 조회와 상태 확인에 사용하는 Fetcher
	api fetcher.Fetcher

	// downloader 다운로드 전용 Fetcher (응답 크기 제한 적용)
	downloader fetcher.Fetcher
}

var _ storage.Store = (*Store)(nil)

// New Store를 생성합니다.
func New(opts Options) (*Store, error) {
	if opts.URL == "" {
		return nil, apperrors.New(apperrors.InvalidInput, "Supabase URL이 설정되지 않았습니다")
	}
	if opts.Key == "" {
		return nil, apperrors.New(apperrors.InvalidInput, "Supabase 키가 설정되지 않았습니다")
	}
	if opts.Bucket == "" {
		return nil, apperrors.New(apperrors.InvalidInput, "버킷 이름이 설정되지 않았습니다")
	}
	if _, err := url.ParseRequestURI(opts.URL); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "Supabase URL 형식이 올바르지 않습니다 (url=%s)", opts.URL)
	}

	listLimit := opts.ListLimit
	if listLimit <= 0 {
		listLimit = defaultListLimit
	}

	httpOpts := []fetcher.Option{fetcher.WithTimeout(opts.Timeout)}
	if opts.Transport != nil {
		httpOpts = append(httpOpts, fetcher.WithTransport(opts.Transport))
	}
	base := fetcher.NewStatusCodeFetcher(fetcher.NewHTTPFetcher(httpOpts...))

	return &Store{
		baseURL:    strings.TrimRight(opts.URL, "/"),
		key:        opts.Key,
		bucket:     opts.Bucket,
		listLimit:  listLimit,
		api:        fetcher.NewLoggingFetcher(base),
		downloader: fetcher.NewLoggingFetcher(fetcher.NewMaxBytesFetcher(base, opts.MaxDownloadBytes)),
	}, nil
}

func (s *Store) header() http.Header {
	h := make(http.Header)
	h.Set("Authorization", "Bearer "+s.key)
	h.Set("apikey", s.key)
	return h
}

type listRequest struct {
	Prefix string     `json:"prefix"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
	SortBy listSortBy `json:"sortBy"`
}

type listSortBy struct {
	Column string `json:"column"`
	Order  string `json:"order"`
}

// List 폴더의 항목을 이름 오름차순으로 최대 ListLimit개까지 조회합니다.
func (s *Store) List(ctx context.Context, folder string) ([]storage.ObjectInfo, error) {
	reqBody, err := json.Marshal(listRequest{
		Prefix: strings.Trim(folder, "/"),
		Limit:  s.listLimit,
		SortBy: listSortBy{Column: "name", Order: "asc"},
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "목록 조회 요청 본문 생성에 실패했습니다")
	}

	h := s.header()
	h.Set("Content-Type", "application/json")

	resp, err := fetcher.Do(ctx, s.api, http.MethodPost, s.baseURL+"/storage/v1/object/list/"+url.PathEscape(s.bucket), h, bytes.NewReader(reqBody))
	if err != nil {
		return nil, wrapRequestError(err, "스토리지 목록 조회에 실패했습니다")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Unavailable, "스토리지 목록 응답을 읽지 못했습니다")
	}

	return parseListResponse(body)
}

func parseListResponse(body []byte) ([]storage.ObjectInfo, error) {
	if !gjson.ValidBytes(body) {
		return nil, apperrors.New(apperrors.ParsingFailed, "스토리지 목록 응답이 올바른 JSON이 아닙니다")
	}

	result := gjson.ParseBytes(body)
	if !result.IsArray() {
		return nil, apperrors.New(apperrors.ParsingFailed, "스토리지 목록 응답이 배열이 아닙니다")
	}

	items := result.Array()
	objects := make([]storage.ObjectInfo, 0, len(items))
	for _, item := range items {
		info := storage.ObjectInfo{
			Name: item.Get("name").String(),
			// 폴더 플레이스홀더는 id가 null입니다.
			ID:          item.Get("id").String(),
			Size:        item.Get("metadata.size").Int(),
			ContentType: item.Get("metadata.mimetype").String(),
		}
		if ts := item.Get("updated_at").String(); ts != "" {
			if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
				info.UpdatedAt = t
			}
		}
		objects = append(objects, info)
	}

	return objects, nil
}

func (s *Store) Download(ctx context.Context, path string) (*storage.Object, error) {
	resp, err := fetcher.Do(ctx, s.downloader, http.MethodGet, s.objectURL(path), s.header(), nil)
	if err != nil {
		return nil, wrapRequestError(err, "오브젝트 다운로드에 실패했습니다")
	}

	return &storage.Object{
		Body:        resp.Body,
		Size:        resp.ContentLength,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

func (s *Store) objectURL(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.baseURL + "/storage/v1/object/" + url.PathEscape(s.bucket) + "/" + strings.Join(segments, "/")
}

// Ping 버킷 정보를 조회하여 접근 가능 여부를 확인합니다.
func (s *Store) Ping(ctx context.Context) error {
	resp, err := fetcher.Do(ctx, s.api, http.MethodGet, s.baseURL+"/storage/v1/bucket/"+url.PathEscape(s.bucket), s.header(), nil)
	if err != nil {
		return wrapRequestError(err, "스토리지 상태 확인에 실패했습니다")
	}
	resp.Body.Close()

	return nil
}

func (s *Store) Close() error {
	return nil
}

// wrapRequestError Fetcher 에러를 스토리지 에러로 분류합니다.
//
// Supabase는 존재하지 않는 오브젝트에 대해 400 상태 코드와 함께
// 본문의 statusCode 필드에 "404"를 담아 응답하므로 이를 NotFound로 변환합니다.
// 분류를 바꾸는 경우에는 원래 상태 코드의 AppError가 체인에 남지 않도록 새 에러를 생성합니다.
func wrapRequestError(err error, message string) error {
	var statusErr *fetcher.HTTPStatusError
	if apperrors.As(err, &statusErr) {
		code := gjson.Get(statusErr.BodySnippet, "statusCode").String()
		switch {
		case statusErr.StatusCode == http.StatusNotFound || code == "404":
			return apperrors.Newf(apperrors.NotFound, "%s: %s", message, statusErr.Error())
		case statusErr.StatusCode == http.StatusBadRequest:
			return apperrors.Newf(apperrors.Unavailable, "%s: %s", message, statusErr.Error())
		}
	}

	if errType := apperrors.UnderlyingType(err); errType != apperrors.Unknown {
		return apperrors.Wrap(err, errType, message)
	}

	return apperrors.Wrap(err, apperrors.Unavailable, message)
}
