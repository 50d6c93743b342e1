package gcs

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/darkkaiser/apk-update-server/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFakeServer GCS JSON API의 버킷 조회와 오브젝트 목록 조회만 흉내내는 서버를 시작합니다.
func newFakeServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/storage/v1/b/apps", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"kind":"storage#bucket","name":"apps"}`)
	})
	mux.HandleFunc("/storage/v1/b/apps/o", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Portafolio/", r.URL.Query().Get("prefix"))
		assert.Equal(t, "/", r.URL.Query().Get("delimiter"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"kind": "storage#objects",
			"prefixes": ["Portafolio/old/"],
			"items": [
				{"kind":"storage#object","bucket":"apps","name":"Portafolio/","generation":"1","size":"0"},
				{"kind":"storage#object","bucket":"apps","name":"Portafolio/myapp-3.apk","generation":"1714557600123456","size":"2048","contentType":"application/vnd.android.package-archive","updated":"2024-05-01T10:00:00.000Z"}
			]
		}`)
	})
	mux.HandleFunc("/storage/v1/b/missing", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error":{"code":404,"message":"The specified bucket does not exist."}}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func newTestStore(t *testing.T, endpoint, bucket string) *Store {
	t.Helper()

	s, err := New(context.Background(), Options{
		Bucket:   bucket,
		Endpoint: endpoint + "/storage/v1/",
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Options{})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
}

func TestStore_List(t *testing.T) {
	srv := newFakeServer(t)
	s := newTestStore(t, srv.URL, "apps")

	objects, err := s.List(context.Background(), "Portafolio")
	require.NoError(t, err)
	require.Len(t, objects, 2)

	var file, dir bool
	for _, o := range objects {
		switch o.Name {
		case "myapp-3.apk":
			file = true
			assert.True(t, o.IsFile())
			assert.Equal(t, "1714557600123456", o.ID)
			assert.Equal(t, int64(2048), o.Size)
			assert.Equal(t, "application/vnd.android.package-archive", o.ContentType)
		case "old":
			dir = true
			assert.False(t, o.IsFile())
		}
	}
	assert.True(t, file)
	assert.True(t, dir)
}

func TestStore_Ping(t *testing.T) {
	srv := newFakeServer(t)

	require.NoError(t, newTestStore(t, srv.URL, "apps").Ping(context.Background()))

	err := newTestStore(t, srv.URL, "missing").Ping(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.NotFound))
}
