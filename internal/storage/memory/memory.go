// Package memory 프로세스 메모리에 오브젝트를 보관하는 storage.Store 구현체를 제공합니다.
// 개발 환경과 테스트에서 사용합니다.
package memory

import (
	"bytes"
	"context"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	apperrors "github.com/darkkaiser/apk-update-server/internal/pkg/errors"
	"github.com/darkkaiser/apk-update-server/internal/storage"
)

type object struct {
	path        string
	id          string
	data        []byte
	contentType string
	updatedAt   time.Time
}

// Store 삽입 순서를 유지하는 인메모리 스토리지입니다.
// List는 오브젝트를 추가한 순서대로 반환합니다.
type Store struct {
	mu      sync.RWMutex
	objects []*object
	nextID  int
}

var _ storage.Store = (*Store)(nil)

// New 빈 Store를 생성합니다.
func New() *Store {
	return &Store{}
}

// Put 오브젝트를 추가합니다. 같은 경로의 오브젝트가 있으면 목록 내 위치를 유지한 채 내용을 교체합니다.
func (s *Store) Put(path string, data []byte, contentType string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path = strings.Trim(path, "/")
	s.nextID++

	obj := &object{
		path:        path,
		id:          strconv.Itoa(s.nextID),
		data:        bytes.Clone(data),
		contentType: contentType,
		updatedAt:   time.Now(),
	}

	for i, o := range s.objects {
		if o.path == path {
			s.objects[i] = obj
			return
		}
	}
	s.objects = append(s.objects, obj)
}

// Delete 오브젝트를 삭제합니다. 존재하지 않으면 아무 동작도 하지 않습니다.
func (s *Store) Delete(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path = strings.Trim(path, "/")
	for i, o := range s.objects {
		if o.path == path {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			return
		}
	}
}

func (s *Store) List(ctx context.Context, folder string) ([]storage.ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.Unavailable, "목록 조회가 취소되었습니다")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := strings.Trim(folder, "/")
	if prefix != "" {
		prefix += "/"
	}

	var result []storage.ObjectInfo
	seenDirs := make(map[string]bool)
	for _, o := range s.objects {
		rest, ok := strings.CutPrefix(o.path, prefix)
		if !ok || rest == "" {
			continue
		}

		// 하위 폴더는 ID가 없는 플레이스홀더 항목으로 한 번만 노출합니다.
		if dir, _, nested := strings.Cut(rest, "/"); nested {
			if !seenDirs[dir] {
				seenDirs[dir] = true
				result = append(result, storage.ObjectInfo{Name: dir})
			}
			continue
		}

		result = append(result, storage.ObjectInfo{
			Name:        rest,
			ID:          o.id,
			Size:        int64(len(o.data)),
			ContentType: o.contentType,
			UpdatedAt:   o.updatedAt,
		})
	}

	return result, nil
}

func (s *Store) Download(ctx context.Context, path string) (*storage.Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.Unavailable, "다운로드가 취소되었습니다")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	path = strings.Trim(path, "/")
	for _, o := range s.objects {
		if o.path == path {
			return &storage.Object{
				Body:        io.NopCloser(bytes.NewReader(o.data)),
				Size:        int64(len(o.data)),
				ContentType: o.contentType,
			}, nil
		}
	}

	return nil, apperrors.Newf(apperrors.NotFound, "오브젝트를 찾을 수 없습니다: %s", path)
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close() error {
	return nil
}
