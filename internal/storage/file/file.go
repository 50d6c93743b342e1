// Package file 로컬 디렉토리를 버킷으로 사용하는 storage.Store 구현체를 제공합니다.
//
// 오브젝트는 <root>/<bucket>/<folder>/<name> 경로에 저장됩니다.
package file

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/darkkaiser/apk-update-server/internal/pkg/errors"
	"github.com/darkkaiser/apk-update-server/internal/storage"
)

// DefaultContentType 확장자로 판별할 수 없을 때 사용하는 Content-Type입니다.
const DefaultContentType = "application/vnd.android.package-archive"

// Store 로컬 파일 시스템 기반 스토리지입니다.
type Store struct {
	dir string
}

var _ storage.Store = (*Store)(nil)

// New root 아래의 bucket 디렉토리를 사용하는 Store를 생성합니다.
func New(root, bucket string) (*Store, error) {
	if root == "" {
		return nil, apperrors.New(apperrors.InvalidInput, "스토리지 루트 디렉토리가 설정되지 않았습니다")
	}
	if bucket == "" || !filepath.IsLocal(bucket) {
		return nil, apperrors.Newf(apperrors.InvalidInput, "버킷 이름이 올바르지 않습니다 (bucket=%q)", bucket)
	}

	return &Store{dir: filepath.Join(root, bucket)}, nil
}

// resolve 오브젝트 경로를 버킷 디렉토리 내부의 파일 경로로 변환합니다.
// 버킷 디렉토리 밖을 가리키는 경로는 거부합니다.
func (s *Store) resolve(path string) (string, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return s.dir, nil
	}

	local := filepath.FromSlash(path)
	if !filepath.IsLocal(local) {
		return "", apperrors.Newf(apperrors.InvalidInput, "허용되지 않은 오브젝트 경로입니다 (path=%q)", path)
	}

	return filepath.Join(s.dir, local), nil
}

// List 디렉토리 항목을 이름 순으로 반환합니다. 하위 디렉토리는 ID가 없는 항목으로 반환됩니다.
func (s *Store) List(ctx context.Context, folder string) ([]storage.ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.Unavailable, "목록 조회가 취소되었습니다")
	}

	dir, err := s.resolve(folder)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, wrapError(err, "스토리지 목록 조회에 실패했습니다")
	}

	objects := make([]storage.ObjectInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			objects = append(objects, storage.ObjectInfo{Name: entry.Name()})
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// 목록 조회 도중 삭제된 파일
			continue
		}

		objects = append(objects, storage.ObjectInfo{
			Name:        entry.Name(),
			ID:          storage.Join(strings.Trim(folder, "/"), entry.Name()),
			Size:        info.Size(),
			ContentType: DefaultContentType,
			UpdatedAt:   info.ModTime(),
		})
	}

	return objects, nil
}

func (s *Store) Download(ctx context.Context, path string) (*storage.Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.Unavailable, "다운로드가 취소되었습니다")
	}

	name, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, wrapError(err, "오브젝트 다운로드에 실패했습니다")
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, wrapError(err, "오브젝트 정보 조회에 실패했습니다")
	}
	if fi.IsDir() {
		f.Close()
		return nil, apperrors.Newf(apperrors.NotFound, "오브젝트가 아닌 디렉토리입니다 (path=%q)", path)
	}

	return &storage.Object{
		Body:        f,
		Size:        fi.Size(),
		ContentType: DefaultContentType,
	}, nil
}

// Ping 버킷 디렉토리가 존재하는지 확인합니다.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return apperrors.Wrap(err, apperrors.Unavailable, "상태 확인이 취소되었습니다")
	}

	fi, err := os.Stat(s.dir)
	if err != nil {
		return wrapError(err, "스토리지 상태 확인에 실패했습니다")
	}
	if !fi.IsDir() {
		return apperrors.Newf(apperrors.System, "버킷 경로가 디렉토리가 아닙니다 (dir=%s)", s.dir)
	}

	return nil
}

func (s *Store) Close() error {
	return nil
}

func wrapError(err error, message string) error {
	if errors.Is(err, fs.ErrNotExist) {
		return apperrors.Wrap(err, apperrors.NotFound, message)
	}
	return apperrors.Wrap(err, apperrors.System, message)
}
