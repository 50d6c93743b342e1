// Package catalog 요청된 앱 식별자에 해당하는 APK 파일을 스토리지에서 찾고 버전을 비교합니다.
//
// 조회 흐름은 다음과 같습니다.
//
//	ValidateQuery -> Locate -> CompareVersion -> {NotFound | UpToDate | UpdateAvailable}
//
// 결과는 에러 대신 Resolution의 Status 값으로 표현되므로,
// 호출자는 switch 문으로 모든 경우를 명시적으로 처리해야 합니다.
package catalog

import (
	"context"
	"strings"

	apperrors "github.com/darkkaiser/apk-update-server/internal/pkg/errors"
	"github.com/darkkaiser/apk-update-server/internal/storage"
	applog "github.com/darkkaiser/apk-update-server/pkg/log"
	"golang.org/x/text/cases"
)

const component = "catalog"

// Status 조회 결과의 종류입니다.
type Status int

const (
	// StatusUpdateAvailable 저장된 파일의 버전이 요청한 버전과 다릅니다.
	StatusUpdateAvailable Status = iota

	// StatusInvalidRequest 식별자가 없거나 자리표시자("0")입니다. 스토리지를 조회하지 않습니다.
	StatusInvalidRequest

	// StatusNotFound 목록 조회에 실패했거나 일치하는 파일이 없습니다.
	StatusNotFound

	// StatusUpToDate 요청한 버전이 이미 최신입니다.
	StatusUpToDate
)

var statusNames = [...]string{
	StatusUpdateAvailable: "UpdateAvailable",
	StatusInvalidRequest:  "InvalidRequest",
	StatusNotFound:        "NotFound",
	StatusUpToDate:        "UpToDate",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "Unknown"
	}
	return statusNames[s]
}

// Resolution Resolve의 결과입니다.
type Resolution struct {
	Status     Status
	Identifier Identifier

	// Object 찾은 파일의 메타데이터 (StatusUpdateAvailable, StatusUpToDate인 경우에만 유효)
	Object storage.ObjectInfo

	// StoredVersion 저장된 파일 이름에서 추출한 버전
	StoredVersion string

	// Cause StatusNotFound의 원인이 된 에러 (일치 항목이 없는 경우 NotFound AppError)
	Cause error
}

// Resolver 하나의 스토리지 폴더를 대상으로 앱 파일을 조회합니다.
type Resolver struct {
	store  storage.Store
	folder string
}

// NewResolver folder를 조회하는 Resolver를 생성합니다.
func NewResolver(store storage.Store, folder string) *Resolver {
	if store == nil {
		panic("catalog: store는 nil일 수 없습니다")
	}

	return &Resolver{
		store:  store,
		folder: strings.Trim(folder, "/"),
	}
}

// Locate 폴더 목록에서 파일 이름에 appName이 포함된(대소문자 무시) 첫 번째 파일을 반환합니다.
//
// 부분 문자열 비교이므로 "myapp"은 "myappextra-1.apk"와도 일치하며,
// 이 경우 스토리지가 먼저 반환한 항목이 선택됩니다.
func (r *Resolver) Locate(ctx context.Context, appName string) (storage.ObjectInfo, error) {
	objects, err := r.store.List(ctx, r.folder)
	if err != nil {
		return storage.ObjectInfo{}, apperrors.Wrapf(err, apperrors.NotFound, "앱 목록을 조회할 수 없습니다 (folder=%s)", r.folder)
	}

	needle := fold(appName)
	for _, obj := range objects {
		if !obj.IsFile() {
			continue
		}
		if strings.Contains(fold(obj.Name), needle) {
			return obj, nil
		}
	}

	return storage.ObjectInfo{}, apperrors.Newf(apperrors.NotFound, "일치하는 앱 파일이 없습니다 (app=%s, folder=%s)", appName, r.folder)
}

// Resolve 요청 파라미터를 검증하고 파일을 찾아 버전을 비교합니다.
func (r *Resolver) Resolve(ctx context.Context, raw string) Resolution {
	id, ok := ParseIdentifier(raw)
	if !ok {
		return Resolution{Status: StatusInvalidRequest}
	}

	obj, err := r.Locate(ctx, id.AppName)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"app":    id.Raw,
			"folder": r.folder,
		}).WithError(err).Debug("앱 파일을 찾지 못했습니다")

		return Resolution{Status: StatusNotFound, Identifier: id, Cause: err}
	}

	res := Resolution{
		Status:        StatusUpdateAvailable,
		Identifier:    id,
		Object:        obj,
		StoredVersion: ExtractVersion(obj.Name),
	}
	if IsCurrent(obj.Name, id.Raw) {
		res.Status = StatusUpToDate
	}

	return res
}

// Open 찾은 파일의 내용을 스트림으로 엽니다. 반환된 Body는 호출자가 닫아야 합니다.
func (r *Resolver) Open(ctx context.Context, obj storage.ObjectInfo) (*storage.Object, error) {
	return r.store.Download(ctx, storage.Join(r.folder, obj.Name))
}

// Ping 조회 대상 스토리지의 상태를 확인합니다.
func (r *Resolver) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}

// fold 유니코드 대소문자 접기(case folding)를 적용합니다.
// cases.Caser는 고루틴 간에 공유할 수 없으므로 호출마다 생성합니다.
func fold(s string) string {
	return cases.Fold().String(s)
}
