package system

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/darkkaiser/apk-update-server/internal/pkg/version"
	"github.com/darkkaiser/apk-update-server/internal/service/api/constants"
	"github.com/darkkaiser/apk-update-server/internal/service/api/model/system"
	"github.com/darkkaiser/apk-update-server/internal/service/notification"
	"github.com/darkkaiser/apk-update-server/internal/service/probe"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProbe struct {
	enabled bool
	last    *probe.Result
	checked probe.Result
	checks  int
}

func (p *fakeProbe) Enabled() bool { return p.enabled }

func (p *fakeProbe) Last() (probe.Result, bool) {
	if p.last == nil {
		return probe.Result{}, false
	}
	return *p.last, true
}

func (p *fakeProbe) Check(context.Context) probe.Result {
	p.checks++
	return p.checked
}

type failingSender struct {
	notification.NopSender
}

func (failingSender) Health() error { return notification.ErrServiceStopped }

func doHealth(t *testing.T, h *Handler) system.HealthResponse {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	require.NoError(t, h.HealthCheckHandler(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp system.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestNewHandler_Panics(t *testing.T) {
	assert.Panics(t, func() { NewHandler(nil, notification.NopSender{}, version.Info{}) })
	assert.Panics(t, func() { NewHandler(&fakeProbe{}, nil, version.Info{}) })
}

func TestHealthCheckHandler(t *testing.T) {
	healthy := probe.Result{Healthy: true, CheckedAt: time.Now(), Latency: 12 * time.Millisecond}
	unhealthy := probe.Result{Healthy: false, CheckedAt: time.Now(), Err: errors.New("bucket not found")}

	t.Run("프로브 결과 사용", func(t *testing.T) {
		p := &fakeProbe{enabled: true, last: &healthy}
		resp := doHealth(t, NewHandler(p, notification.NopSender{}, version.Info{}))

		assert.Equal(t, constants.HealthStatusHealthy, resp.Status)
		assert.Equal(t, int64(12), resp.Dependencies[constants.DependencyStorage].LatencyMs)
		assert.Zero(t, p.checks)
	})

	t.Run("프로브 결과가 없으면 직접 확인", func(t *testing.T) {
		p := &fakeProbe{enabled: true, checked: healthy}
		resp := doHealth(t, NewHandler(p, notification.NopSender{}, version.Info{}))

		assert.Equal(t, constants.HealthStatusHealthy, resp.Status)
		assert.Equal(t, 1, p.checks)
	})

	t.Run("프로브가 비활성화되어 있으면 매번 직접 확인", func(t *testing.T) {
		p := &fakeProbe{enabled: false, last: &healthy, checked: unhealthy}
		resp := doHealth(t, NewHandler(p, notification.NopSender{}, version.Info{}))

		assert.Equal(t, constants.HealthStatusUnhealthy, resp.Status)
		assert.Equal(t, "bucket not found", resp.Dependencies[constants.DependencyStorage].Message)
		assert.Equal(t, 1, p.checks)
	})

	t.Run("알림 서비스 중지", func(t *testing.T) {
		p := &fakeProbe{enabled: true, last: &healthy}
		resp := doHealth(t, NewHandler(p, failingSender{}, version.Info{}))

		assert.Equal(t, constants.HealthStatusUnhealthy, resp.Status)
		assert.Equal(t, constants.HealthStatusHealthy, resp.Dependencies[constants.DependencyStorage].Status)
		assert.Equal(t, constants.HealthStatusUnhealthy, resp.Dependencies[constants.DependencyNotificationService].Status)
	})
}

func TestVersionHandler(t *testing.T) {
	info := version.Info{Version: "v1.2.3", Commit: "f25b8bf", BuildDate: "2025-12-05T11:30:00Z", BuildNumber: "42", GoVersion: "go1.24.11"}
	h := NewHandler(&fakeProbe{}, notification.NopSender{}, info)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/version", nil), rec)

	require.NoError(t, h.VersionHandler(c))

	var resp system.VersionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, system.VersionResponse{
		Version:     "v1.2.3",
		Commit:      "f25b8bf",
		BuildDate:   "2025-12-05T11:30:00Z",
		BuildNumber: "42",
		GoVersion:   "go1.24.11",
	}, resp)
}
