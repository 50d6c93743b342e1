package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/darkkaiser/apk-update-server/internal/catalog"
	apperrors "github.com/darkkaiser/apk-update-server/internal/pkg/errors"
	"github.com/darkkaiser/apk-update-server/internal/service/api/constants"
	"github.com/darkkaiser/apk-update-server/internal/service/api/httputil"
	v1 "github.com/darkkaiser/apk-update-server/internal/service/api/v1"
	"github.com/darkkaiser/apk-update-server/internal/service/api/v1/handler"
	"github.com/darkkaiser/apk-update-server/internal/storage"
	"github.com/darkkaiser/apk-update-server/internal/storage/memory"
	"github.com/darkkaiser/apk-update-server/internal/storage/mocks"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const folder = "Portafolio"

type envelope struct {
	Error   bool            `json:"error"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newServer(store storage.Store, strict bool) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = httputil.NewErrorHandler(strict)
	v1.RegisterRoutes(e, handler.NewHandler(catalog.NewResolver(store, folder), time.Second))
	return e
}

func newMemoryStore(names ...string) *memory.Store {
	store := memory.New()
	for _, name := range names {
		store.Put(folder+"/"+name, []byte("apk:"+name), constants.ContentTypeAPK)
	}
	return store
}

func do(t *testing.T, e *echo.Echo, method, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))

	var body envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestNewHandler_NilResolverPanics(t *testing.T) {
	assert.Panics(t, func() { handler.NewHandler(nil, 0) })
}

func TestDownloadHandler_UpdateAvailable(t *testing.T) {
	e := newServer(newMemoryStore("otherapp-1.apk", "myapp-3.apk"), false)

	rec, _ := do(t, e, http.MethodPost, "/v1/api/app?app=myapp-4")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, constants.ContentTypeAPK, rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "attachment; filename=myapp-3.apk", rec.Header().Get(echo.HeaderContentDisposition))
	assert.Equal(t, "15", rec.Header().Get(echo.HeaderContentLength))
	assert.Equal(t, "myapp-3.apk", rec.Header().Get(constants.HeaderXAppName))
	assert.Equal(t, "3", rec.Header().Get(constants.HeaderXCodeVersion))
	assert.Equal(t, "apk:myapp-3.apk", rec.Body.String())
}

func TestDownloadHandler_HyphenatedAppName(t *testing.T) {
	e := newServer(newMemoryStore("amy-1.apk", "my-app-3.apk"), true)

	rec, _ := do(t, e, http.MethodPost, "/v1/api/app?app=my-app-2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "my-app-3.apk", rec.Header().Get(constants.HeaderXAppName))
	assert.Equal(t, "3", rec.Header().Get(constants.HeaderXCodeVersion))
	assert.Equal(t, "apk:my-app-3.apk", rec.Body.String())

	rec, body := do(t, e, http.MethodPost, "/v1/api/app?app=my-app-3")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, constants.ErrMsgNoNewVersion, body.Message)
	assert.Empty(t, rec.Header().Get(constants.HeaderXAppName))
}

func TestDownloadHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		strictCode int
		message    string
	}{
		{"최신 버전", "?app=myapp-3", http.StatusConflict, constants.ErrMsgNoNewVersion},
		{"최신 버전 (대소문자 무시)", "?app=MyApp-3", http.StatusConflict, constants.ErrMsgNoNewVersion},
		{"파일 없음", "?app=unknownapp-1", http.StatusNotFound, constants.ErrMsgAppNotFound},
		{"자리표시자", "?app=0", http.StatusBadRequest, constants.ErrMsgAppNotFound},
		{"파라미터 없음", "", http.StatusBadRequest, constants.ErrMsgAppNotFound},
	}

	store := newMemoryStore("myapp-3.apk")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := do(t, newServer(store, false), http.MethodPost, "/v1/api/app"+tt.query)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.True(t, body.Error)
			assert.Equal(t, tt.message, body.Message)
			assert.JSONEq(t, "null", string(body.Data))
			assert.Empty(t, rec.Header().Get(constants.HeaderXAppName))

			rec, body = do(t, newServer(store, true), http.MethodPost, "/v1/api/app"+tt.query)
			assert.Equal(t, tt.strictCode, rec.Code)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestDownloadHandler_InvalidRequestNeverCallsStore(t *testing.T) {
	store := &mocks.MockStore{}
	e := newServer(store, false)

	for _, query := range []string{"", "?app=0", "?app=", "?app=-3"} {
		rec, body := do(t, e, http.MethodPost, "/v1/api/app"+query)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, query)
		assert.Equal(t, constants.ErrMsgAppNotFound, body.Message, query)
	}

	store.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Download", mock.Anything, mock.Anything)
}

func TestDownloadHandler_StorageFailure(t *testing.T) {
	store := &mocks.MockStore{}
	store.On("List", mock.Anything, folder).Return([]storage.ObjectInfo{{Name: "myapp-3.apk", ID: "1", Size: 10}}, nil)
	store.On("Download", mock.Anything, folder+"/myapp-3.apk").Return(nil, apperrors.New(apperrors.Unavailable, "connection reset"))

	rec, body := do(t, newServer(store, false), http.MethodPost, "/v1/api/app?app=myapp-4")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, constants.ErrMsgDownloadFailed, body.Message)

	rec, body = do(t, newServer(store, true), http.MethodPost, "/v1/api/app?app=myapp-4")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, constants.ErrMsgDownloadFailed, body.Message)
}

func TestDownloadHandler_ListFailureIsNotFound(t *testing.T) {
	store := &mocks.MockStore{}
	store.On("List", mock.Anything, folder).Return(nil, apperrors.New(apperrors.Unavailable, "timeout"))

	rec, body := do(t, newServer(store, true), http.MethodPost, "/v1/api/app?app=myapp-4")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, constants.ErrMsgAppNotFound, body.Message)
}

func TestDownloadHandler_UnknownSizeOmitsContentLength(t *testing.T) {
	store := &mocks.MockStore{}
	store.On("List", mock.Anything, folder).Return([]storage.ObjectInfo{{Name: "myapp-3.apk", ID: "1", Size: -1}}, nil)
	store.On("Download", mock.Anything, folder+"/myapp-3.apk").Return(&storage.Object{
		Body: newBody("payload"),
		Size: -1,
	}, nil)

	rec, _ := do(t, newServer(store, false), http.MethodPost, "/v1/api/app?app=myapp-4")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get(echo.HeaderContentLength))
	assert.Equal(t, "payload", rec.Body.String())
}

func TestVersionCheckHandler(t *testing.T) {
	store := newMemoryStore("myapp-3.apk")

	t.Run("새 버전 있음", func(t *testing.T) {
		rec, body := do(t, newServer(store, false), http.MethodGet, "/v1/api/app/version-check?app=myapp-2")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, body.Error)
		assert.Equal(t, constants.MsgNewVersionAvailable, body.Message)
		assert.JSONEq(t, `{"appName":"myapp-3.apk","codeVersion":"3"}`, string(body.Data))
	})

	t.Run("최신 버전", func(t *testing.T) {
		rec, body := do(t, newServer(store, false), http.MethodGet, "/v1/api/app/version-check?app=myapp-3")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, constants.ErrMsgNoNewVersion, body.Message)
	})

	t.Run("파일 없음", func(t *testing.T) {
		rec, body := do(t, newServer(newMemoryStore(), false), http.MethodGet, "/v1/api/app/version-check?app=unknownapp-1")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.True(t, body.Error)
		assert.Equal(t, constants.ErrMsgAppNotFound, body.Message)
		assert.JSONEq(t, "null", string(body.Data))
	})

	t.Run("파일을 다운로드하지 않음", func(t *testing.T) {
		mockStore := &mocks.MockStore{}
		mockStore.On("List", mock.Anything, folder).Return([]storage.ObjectInfo{{Name: "myapp-3.apk", ID: "1"}}, nil)

		rec, _ := do(t, newServer(mockStore, false), http.MethodGet, "/v1/api/app/version-check?app=myapp-1")

		assert.Equal(t, http.StatusOK, rec.Code)
		mockStore.AssertNotCalled(t, "Download", mock.Anything, mock.Anything)
	})
}

func TestDownloadHandler_SubstringMatchUsesListingOrder(t *testing.T) {
	// "myapp"은 "myappextra"의 부분 문자열이므로 스토리지가 먼저 반환한 파일이 선택됩니다.
	rec, _ := do(t, newServer(newMemoryStore("myappextra-1.apk", "myapp-1.apk"), false), http.MethodGet, "/v1/api/app/version-check?app=myapp-2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"appName":"myappextra-1.apk"`)

	rec, _ = do(t, newServer(newMemoryStore("myapp-1.apk", "myappextra-1.apk"), false), http.MethodGet, "/v1/api/app/version-check?app=myapp-2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"appName":"myapp-1.apk"`)
}
