// Package storage APK 파일이 저장된 오브젝트 스토리지에 대한 공통 인터페이스를 정의합니다.
//
// 구현체(supabase, gcs, file, memory)는 하나의 버킷에 바인딩되며,
// 폴더 경로는 "/"로 구분된 오브젝트 이름의 접두사로 표현됩니다.
package storage

import (
	"context"
	"io"
	"strings"
	"time"
)

// ObjectInfo 목록 조회로 얻은 오브젝트의 메타데이터입니다.
type ObjectInfo struct {
	// Name 폴더 경로를 제외한 파일 이름 (예: "myapp-3.apk")
	Name string

	// ID 오브젝트 식별자. 폴더 플레이스홀더처럼 실제 파일이 아닌 항목은 빈 문자열입니다.
	ID string

	Size        int64
	ContentType string
	UpdatedAt   time.Time
}

// IsFile 실제 파일 오브젝트인지 여부를 반환합니다.
func (o ObjectInfo) IsFile() bool {
	return o.ID != ""
}

// Object 다운로드 중인 오브젝트입니다. Body는 호출자가 반드시 닫아야 합니다.
type Object struct {
	Body        io.ReadCloser
	Size        int64 // 알 수 없으면 -1
	ContentType string
}

// Store 오브젝트 스토리지 클라이언트 인터페이스입니다.
//
// 모든 메서드는 ctx가 취소되면 진행 중인 요청을 중단해야 하며,
// 에러는 apperrors.AppError로 분류되어 반환됩니다 (NotFound, Unavailable, System, ParsingFailed).
type Store interface {
	// List folder 바로 아래의 항목을 스토리지가 반환한 순서대로 조회합니다.
	List(ctx context.Context, folder string) ([]ObjectInfo, error)

	// Download 오브젝트의 내용을 스트림으로 엽니다.
	Download(ctx context.Context, path string) (*Object, error)

	// Ping 스토리지와 버킷에 접근 가능한지 확인합니다.
	Ping(ctx context.Context) error

	// Close 클라이언트가 보유한 리소스를 해제합니다.
	Close() error
}

// Join 폴더와 파일 이름을 오브젝트 경로로 결합합니다.
func Join(folder, name string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name
	}
	return folder + "/" + name
}
