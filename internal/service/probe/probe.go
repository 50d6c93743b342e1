// Package probe 스토리지 접근 가능 여부를 Cron 스케줄에 따라 주기적으로 확인하는 서비스를 제공합니다.
//
// 상태가 정상에서 비정상으로 바뀌면 운영자에게 알림을 보내고,
// 마지막 확인 결과는 /health 엔드포인트가 조회합니다.
package probe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/darkkaiser/apk-update-server/internal/config"
	"github.com/darkkaiser/apk-update-server/internal/pkg/mark"
	"github.com/darkkaiser/apk-update-server/internal/service/notification"
	"github.com/darkkaiser/apk-update-server/pkg/cronx"
	applog "github.com/darkkaiser/apk-update-server/pkg/log"
	"github.com/robfig/cron/v3"
)

// component Probe 서비스의 로깅용 컴포넌트 이름
const component = "probe.service"

// checkTimeout 스토리지 상태 확인 한 번의 최대 수행 시간
const checkTimeout = 10 * time.Second

// recoveredMessage 스토리지 접근이 복구되었을 때 보내는 알림
var recoveredMessage = "스토리지 접근이 복구되었습니다." + mark.Recovered.WithSpace()

// Pinger 상태를 확인할 대상입니다.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Result 한 번의 상태 확인 결과입니다.
type Result struct {
	Healthy   bool
	CheckedAt time.Time
	Latency   time.Duration
	Err       error
}

// Service 스토리지 프로브 서비스입니다.
type Service struct {
	probeConfig config.ProbeConfig

	target Pinger

	notificationSender notification.Sender

	cron *cron.Cron

	// last 마지막 확인 결과 (hasLast가 false이면 아직 확인하지 않음)
	last    Result
	hasLast bool
	lastMu  sync.RWMutex

	running   bool
	runningMu sync.Mutex
}

// NewService Service를 생성합니다.
func NewService(probeConfig config.ProbeConfig, target Pinger, notificationSender notification.Sender) *Service {
	if target == nil {
		panic("Pinger는 필수입니다")
	}
	if notificationSender == nil {
		panic("NotificationSender는 필수입니다")
	}

	return &Service{
		probeConfig:        probeConfig,
		target:             target,
		notificationSender: notificationSender,
	}
}

// Start 프로브 스케줄을 등록하고 시작합니다. 프로브가 비활성화되어 있으면 종료 신호만 기다립니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("Probe 서비스 시작중...")

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("Probe 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	if s.probeConfig.Enabled {
		s.cron = cronx.New(component)
		if _, err := s.cron.AddFunc(s.probeConfig.TimeSpec, func() { s.Check(context.Background()) }); err != nil {
			s.cron = nil
			serviceStopWG.Done()
			return fmt.Errorf("스케줄 등록 실패: 잘못된 Cron 표현식입니다 (TimeSpec: %s): %w", s.probeConfig.TimeSpec, err)
		}
		s.cron.Start()

		applog.WithComponentAndFields(component, applog.Fields{
			"time_spec": s.probeConfig.TimeSpec,
		}).Info("Probe 서비스 시작됨")
	} else {
		applog.WithComponent(component).Info("스토리지 프로브가 비활성화되어 있습니다")
	}

	s.running = true

	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.Stop()
	}()

	return nil
}

// Stop 스케줄러를 중지하고 실행 중인 확인 작업이 끝날 때까지 기다립니다.
func (s *Service) Stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}

	applog.WithComponent(component).Info("Probe 서비스 중지중...")

	if s.cron != nil {
		<-s.cron.Stop().Done()
		s.cron = nil
	}
	s.running = false

	applog.WithComponent(component).Info("Probe 서비스 중지됨")
}

// Check 스토리지 상태를 즉시 확인하고 결과를 기록합니다.
// 정상에서 비정상으로 바뀐 경우에만 알림을 보냅니다. 첫 확인이 실패한 경우도 알림 대상입니다.
func (s *Service) Check(ctx context.Context) Result {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	start := time.Now()
	err := s.target.Ping(ctx)
	res := Result{
		Healthy:   err == nil,
		CheckedAt: start,
		Latency:   time.Since(start),
		Err:       err,
	}

	s.lastMu.Lock()
	prev, hadPrev := s.last, s.hasLast
	s.last, s.hasLast = res, true
	s.lastMu.Unlock()

	fields := applog.Fields{
		"healthy":    res.Healthy,
		"latency_ms": res.Latency.Milliseconds(),
	}

	switch {
	case !res.Healthy && (!hadPrev || prev.Healthy):
		fields["error"] = err
		applog.WithComponentAndFields(component, fields).Error("스토리지 상태 확인 실패: 스토리지에 접근할 수 없습니다")

		if notifyErr := s.notificationSender.NotifyError(fmt.Sprintf("스토리지에 접근할 수 없습니다.\n\n%v", err)); notifyErr != nil {
			applog.WithComponent(component).WithError(notifyErr).Warn("장애 알림을 전송하지 못했습니다")
		}

	case res.Healthy && hadPrev && !prev.Healthy:
		applog.WithComponentAndFields(component, fields).Info("스토리지 상태 복구됨")
		s.notificationSender.Notify(recoveredMessage)

	default:
		applog.WithComponentAndFields(component, fields).Debug("스토리지 상태 확인 완료")
	}

	return res
}

// Last 마지막 확인 결과를 반환합니다. 아직 확인하지 않았으면 false를 반환합니다.
func (s *Service) Last() (Result, bool) {
	s.lastMu.RLock()
	defer s.lastMu.RUnlock()

	return s.last, s.hasLast
}

// Enabled 주기적인 프로브가 활성화되어 있는지 여부를 반환합니다.
func (s *Service) Enabled() bool {
	return s.probeConfig.Enabled
}
