package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	_ "github.com/darkkaiser/apk-update-server/docs"
	"github.com/darkkaiser/apk-update-server/internal/config"
	apperrors "github.com/darkkaiser/apk-update-server/internal/pkg/errors"
	"github.com/darkkaiser/apk-update-server/internal/pkg/version"
	"github.com/darkkaiser/apk-update-server/internal/service/api/constants"
	"github.com/darkkaiser/apk-update-server/internal/service/api/handler/system"
	v1 "github.com/darkkaiser/apk-update-server/internal/service/api/v1"
	v1handler "github.com/darkkaiser/apk-update-server/internal/service/api/v1/handler"
	"github.com/darkkaiser/apk-update-server/internal/service/notification"
	applog "github.com/darkkaiser/apk-update-server/pkg/log"
	"github.com/labstack/echo/v4"
	"golang.org/x/net/netutil"
)

// Service APK 업데이트 API 서버의 생명주기를 관리합니다.
//
// Start에서 포트를 바인딩한 후 별도 고루틴에서 요청을 처리하고,
// serviceStopCtx가 취소되면 진행 중인 요청을 최대 5초간 기다린 후 종료합니다.
// 서버가 예기치 않게 종료되면 운영자에게 알림을 보냅니다.
type Service struct {
	appConfig *config.AppConfig

	resolver v1handler.Resolver

	storageProbe system.StorageProbe

	notificationSender notification.Sender

	buildInfo version.Info

	addr net.Addr

	running   bool
	runningMu sync.Mutex
}

// NewService Service를 생성합니다.
func NewService(appConfig *config.AppConfig, resolver v1handler.Resolver, storageProbe system.StorageProbe, notificationSender notification.Sender, buildInfo version.Info) *Service {
	if appConfig == nil {
		panic("AppConfig는 필수입니다")
	}
	if resolver == nil {
		panic("Resolver는 필수입니다")
	}
	if storageProbe == nil {
		panic("StorageProbe는 필수입니다")
	}
	if notificationSender == nil {
		panic("NotificationSender는 필수입니다")
	}

	return &Service{
		appConfig:          appConfig,
		resolver:           resolver,
		storageProbe:       storageProbe,
		notificationSender: notificationSender,
		buildInfo:          buildInfo,
	}
}

// Start 포트를 바인딩하고 HTTP 서버를 시작합니다.
// 포트 바인딩에 실패하면 serviceStopWG.Done()을 호출한 후 에러를 반환합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarting)

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn(constants.LogMsgServiceAlreadyStarted)
		return nil
	}

	ln, err := s.listen()
	if err != nil {
		serviceStopWG.Done()
		return err
	}

	s.addr = ln.Addr()
	s.running = true

	go s.runServiceLoop(serviceStopCtx, serviceStopWG, s.setupServer(), ln)

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"addr": s.addr.String(),
		"tls":  s.appConfig.API.TLS.Enabled,
	}).Info(constants.LogMsgServiceStarted)

	return nil
}

// Addr 서버가 바인딩된 주소를 반환합니다. Start 이전에는 nil입니다.
func (s *Service) Addr() net.Addr {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	return s.addr
}

// listen 설정된 포트를 바인딩합니다. MaxConnections가 양수이면 동시 연결 수를 제한합니다.
func (s *Service) listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.appConfig.API.ListenPort))
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.System, "HTTP 서버 포트(%d)를 바인딩할 수 없습니다", s.appConfig.API.ListenPort)
	}

	if limit := s.appConfig.API.MaxConnections; limit > 0 {
		ln = netutil.LimitListener(ln, limit)
	}

	return ln, nil
}

func (s *Service) setupServer() *echo.Echo {
	systemHandler := system.NewHandler(s.storageProbe, s.notificationSender, s.buildInfo)
	v1Handler := v1handler.NewHandler(s.resolver, s.appConfig.API.RequestTimeout)

	e := NewHTTPServer(newHTTPServerConfig(s.appConfig))

	RegisterRoutes(e, systemHandler)
	v1.RegisterRoutes(e, v1Handler)

	return e
}

func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup, e *echo.Echo, ln net.Listener) {
	defer serviceStopWG.Done()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, ln, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

func (s *Service) startHTTPServer(e *echo.Echo, ln net.Listener, done chan struct{}) {
	defer close(done)

	// ServeTLS는 인증서 로드에 실패하면 리스너를 닫지 않고 반환합니다.
	defer ln.Close()

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"addr": ln.Addr().String(),
	}).Debug(constants.LogMsgServerStarting)

	// e.Start는 자체적으로 리스너를 생성하므로, 연결 수가 제한된 리스너를 사용하기 위해 http.Server를 직접 실행합니다.
	e.Listener = ln
	e.Server.Handler = e

	var err error
	if tls := s.appConfig.API.TLS; tls.Enabled {
		err = e.Server.ServeTLS(ln, tls.CertFile, tls.KeyFile)
	} else {
		err = e.Server.Serve(ln)
	}

	s.handleServerError(err)
}

func (s *Service) handleServerError(err error) {
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return
	}

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port":  s.appConfig.API.ListenPort,
		"error": err,
	}).Error(constants.LogMsgServerFatalError)

	if notifyErr := s.notificationSender.NotifyError(fmt.Sprintf("%s\n\n%s", constants.LogMsgServerFatalError, err)); notifyErr != nil {
		applog.WithComponent(constants.ComponentService).WithError(notifyErr).Warn("장애 알림을 전송하지 못했습니다")
	}
}

func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopping)

	case <-httpServerDone:
		s.cleanup()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgServerShutdownError)
	}

	<-httpServerDone

	s.cleanup()
}

func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopped)
}
