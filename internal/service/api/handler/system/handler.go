// Package system 헬스체크, 버전 정보 등 시스템 엔드포인트 핸들러를 제공합니다.
package system

import (
	"context"
	"net/http"
	"time"

	"github.com/darkkaiser/apk-update-server/internal/pkg/version"
	"github.com/darkkaiser/apk-update-server/internal/service/api/constants"
	"github.com/darkkaiser/apk-update-server/internal/service/api/model/system"
	"github.com/darkkaiser/apk-update-server/internal/service/notification"
	"github.com/darkkaiser/apk-update-server/internal/service/probe"
	applog "github.com/darkkaiser/apk-update-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// StorageProbe 스토리지 상태 확인 결과를 제공합니다.
type StorageProbe interface {
	// Enabled 주기적인 확인이 활성화되어 있는지 여부를 반환합니다.
	Enabled() bool

	// Last 마지막으로 확인한 결과를 반환합니다. 아직 확인하지 않았으면 false를 반환합니다.
	Last() (probe.Result, bool)

	// Check 스토리지 상태를 즉시 확인합니다.
	Check(ctx context.Context) probe.Result
}

// Handler 시스템 엔드포인트 핸들러
type Handler struct {
	storageProbe StorageProbe

	notificationSender notification.Sender

	buildInfo version.Info

	serverStartTime time.Time
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(storageProbe StorageProbe, notificationSender notification.Sender, buildInfo version.Info) *Handler {
	if storageProbe == nil {
		panic("StorageProbe는 필수입니다")
	}
	if notificationSender == nil {
		panic("NotificationSender는 필수입니다")
	}

	return &Handler{
		storageProbe:       storageProbe,
		notificationSender: notificationSender,
		buildInfo:          buildInfo,
		serverStartTime:    time.Now(),
	}
}

// HealthCheckHandler godoc
// @Summary 서버 헬스체크
// @Description 서버와 외부 의존성(스토리지, 알림 서비스)의 상태를 확인합니다.
// @Description 프로브가 비활성화되어 있으면 요청 시점에 스토리지 상태를 직접 확인합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.HealthResponse "헬스체크 결과"
// @Router /health [get]
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/health",
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgHealthCheck)

	deps := map[string]system.DependencyStatus{
		constants.DependencyStorage:             h.storageStatus(c.Request().Context()),
		constants.DependencyNotificationService: h.notificationStatus(),
	}

	serverStatus := constants.HealthStatusHealthy
	for _, dep := range deps {
		if dep.Status != constants.HealthStatusHealthy {
			serverStatus = constants.HealthStatusUnhealthy
			break
		}
	}

	return c.JSON(http.StatusOK, system.HealthResponse{
		Status:       serverStatus,
		Uptime:       int64(time.Since(h.serverStartTime).Seconds()),
		Dependencies: deps,
	})
}

func (h *Handler) storageStatus(ctx context.Context) system.DependencyStatus {
	// 주기적인 확인이 비활성화되어 있으면 마지막 결과가 갱신되지 않으므로 매번 직접 확인합니다.
	result, ok := h.storageProbe.Last()
	if !ok || !h.storageProbe.Enabled() {
		result = h.storageProbe.Check(ctx)
	}

	status := system.DependencyStatus{
		Status:    constants.HealthStatusHealthy,
		LatencyMs: result.Latency.Milliseconds(),
		CheckedAt: result.CheckedAt.UTC().Format(time.RFC3339),
		Message:   constants.MsgDepStatusHealthy,
	}
	if !result.Healthy {
		status.Status = constants.HealthStatusUnhealthy
		if result.Err != nil {
			status.Message = result.Err.Error()
		}
	}

	return status
}

func (h *Handler) notificationStatus() system.DependencyStatus {
	if err := h.notificationSender.Health(); err != nil {
		return system.DependencyStatus{
			Status:  constants.HealthStatusUnhealthy,
			Message: err.Error(),
		}
	}

	return system.DependencyStatus{
		Status:  constants.HealthStatusHealthy,
		Message: constants.MsgDepStatusHealthy,
	}
}

// VersionHandler godoc
// @Summary 서버 버전 정보
// @Description 서버의 버전, Git 커밋 해시, 빌드 날짜, 빌드 번호, Go 버전을 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.VersionResponse "버전 정보"
// @Router /version [get]
func (h *Handler) VersionHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/version",
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgVersionInfo)

	return c.JSON(http.StatusOK, system.VersionResponse{
		Version:     h.buildInfo.Version,
		Commit:      h.buildInfo.Commit,
		BuildDate:   h.buildInfo.BuildDate,
		BuildNumber: h.buildInfo.BuildNumber,
		GoVersion:   h.buildInfo.GoVersion,
	})
}
