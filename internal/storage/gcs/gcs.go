// Package gcs Google Cloud Storage를 사용하는 storage.Store 구현체를 제공합니다.
package gcs

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	apperrors "github.com/darkkaiser/apk-update-server/internal/pkg/errors"
	appstorage "github.com/darkkaiser/apk-update-server/internal/storage"
)

// Options Store 생성 옵션입니다.
type Options struct {
	Bucket string

	// CredentialsFile 서비스 계정 키 파일. 비어 있으면 Application Default Credentials를 사용합니다.
	CredentialsFile string

	// Endpoint 에뮬레이터 등 운영 환경이 아닌 엔드포인트를 사용할 때 지정합니다. 지정하면 인증을 생략합니다.
	Endpoint string

	ListLimit        int
	MaxDownloadBytes int64

	// Timeout 목록 조회와 상태 확인 요청의 최대 수행 시간 (0: 요청 Context로만 제어)
	Timeout time.Duration
}

// Store GCS 버킷 하나에 바인딩된 클라이언트입니다.
type Store struct {
	client   *storage.Client
	bucket   *storage.BucketHandle
	name     string
	limit    int
	maxBytes int64
	timeout  time.Duration
}

var _ appstorage.Store = (*Store)(nil)

// New GCS 클라이언트를 생성하고 버킷에 바인딩합니다. 네트워크 요청은 수행하지 않습니다.
func New(ctx context.Context, opts Options) (*Store, error) {
	if opts.Bucket == "" {
		return nil, apperrors.New(apperrors.InvalidInput, "버킷 이름이 설정되지 않았습니다")
	}

	var clientOpts []option.ClientOption
	if opts.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint), option.WithoutAuthentication())
	}

	client, err := storage.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "GCS 클라이언트 생성에 실패했습니다")
	}

	return &Store{
		client:   client,
		bucket:   client.Bucket(opts.Bucket),
		name:     opts.Bucket,
		limit:    opts.ListLimit,
		maxBytes: opts.MaxDownloadBytes,
		timeout:  opts.Timeout,
	}, nil
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return ctx, func() {}
}

// List folder 바로 아래의 오브젝트와 하위 폴더를 조회합니다.
// 하위 폴더는 ID가 없는 항목으로 반환됩니다.
func (s *Store) List(ctx context.Context, folder string) ([]appstorage.ObjectInfo, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	prefix := strings.Trim(folder, "/")
	if prefix != "" {
		prefix += "/"
	}

	it := s.bucket.Objects(ctx, &storage.Query{Prefix: prefix, Delimiter: "/"})

	var objects []appstorage.ObjectInfo
	for s.limit <= 0 || len(objects) < s.limit {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, wrapError(err, "스토리지 목록 조회에 실패했습니다")
		}

		if attrs.Prefix != "" {
			name := strings.TrimSuffix(strings.TrimPrefix(attrs.Prefix, prefix), "/")
			objects = append(objects, appstorage.ObjectInfo{Name: name})
			continue
		}

		name := strings.TrimPrefix(attrs.Name, prefix)
		if name == "" {
			// 폴더 자체를 나타내는 빈 오브젝트
			continue
		}

		objects = append(objects, appstorage.ObjectInfo{
			Name:        name,
			ID:          objectID(attrs),
			Size:        attrs.Size,
			ContentType: attrs.ContentType,
			UpdatedAt:   attrs.Updated,
		})
	}

	return objects, nil
}

func objectID(attrs *storage.ObjectAttrs) string {
	if attrs.Generation > 0 {
		return strconv.FormatInt(attrs.Generation, 10)
	}
	return attrs.Name
}

func (s *Store) Download(ctx context.Context, path string) (*appstorage.Object, error) {
	r, err := s.bucket.Object(strings.Trim(path, "/")).NewReader(ctx)
	if err != nil {
		return nil, wrapError(err, "오브젝트 다운로드에 실패했습니다")
	}

	size := r.Attrs.Size
	if s.maxBytes > 0 && size > s.maxBytes {
		r.Close()
		return nil, apperrors.Newf(apperrors.Unavailable, "오브젝트의 크기가 허용된 최대값을 초과하였습니다 (size=%d, limit=%d bytes)", size, s.maxBytes)
	}

	var body io.ReadCloser = r
	if s.maxBytes > 0 {
		body = struct {
			io.Reader
			io.Closer
		}{io.LimitReader(r, s.maxBytes), r}
	}

	return &appstorage.Object{
		Body:        body,
		Size:        size,
		ContentType: r.Attrs.ContentType,
	}, nil
}

// Ping 버킷 속성을 조회하여 접근 가능 여부를 확인합니다.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.bucket.Attrs(ctx); err != nil {
		return wrapError(err, "스토리지 상태 확인에 실패했습니다")
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// wrapError GCS 클라이언트 에러를 스토리지 에러로 분류합니다.
func wrapError(err error, message string) error {
	if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
		return apperrors.Wrap(err, apperrors.NotFound, message)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusNotFound:
			return apperrors.Wrap(err, apperrors.NotFound, message)
		case apiErr.Code == http.StatusUnauthorized, apiErr.Code == http.StatusForbidden:
			return apperrors.Wrap(err, apperrors.System, message)
		}
	}

	return apperrors.Wrap(err, apperrors.Unavailable, message)
}
