package notification

import (
	"context"
	"sync"
	"time"

	"github.com/darkkaiser/apk-update-server/internal/config"
	applog "github.com/darkkaiser/apk-update-server/pkg/log"
	"golang.org/x/time/rate"
)

const (
	// queueSize 전송 대기열 크기
	queueSize = 30

	// shutdownTimeout 종료 시 대기열에 남은 메시지를 전송하기 위해 기다리는 최대 시간
	shutdownTimeout = 10 * time.Second

	// sendRateLimit, sendRateBurst 텔레그램 API 정책(채팅방당 초당 1회)에 맞춘 전송 속도
	sendRateLimit = 1
	sendRateBurst = 5
)

type notification struct {
	message       string
	errorOccurred bool
}

// Service 알림 메시지를 대기열에 쌓아 두고 단일 워커 고루틴이 순서대로 전송하는 서비스입니다.
type Service struct {
	appConfig *config.AppConfig

	// newClient 시작 시점에 봇 클라이언트를 생성합니다. 테스트에서 교체합니다.
	newClient func(botToken string, debug bool) (botClient, error)

	client  botClient
	limiter *rate.Limiter
	queue   chan notification

	running   bool
	runningMu sync.RWMutex
}

var _ Sender = (*Service)(nil)

// NewService Service를 생성합니다.
func NewService(appConfig *config.AppConfig) *Service {
	if appConfig == nil {
		panic("AppConfig는 필수입니다")
	}

	return &Service{
		appConfig: appConfig,
		newClient: newBotClient,
		limiter:   rate.NewLimiter(rate.Limit(sendRateLimit), sendRateBurst),
		queue:     make(chan notification, queueSize),
	}
}

// Start 알림 서비스를 시작합니다.
// 텔레그램이 설정되지 않았으면 워커 없이 종료 신호만 기다리며, 모든 알림은 버려집니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("Notification 서비스 시작중...")

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(component).Warn("Notification 서비스가 이미 시작됨!!!")
		return nil
	}

	telegram := s.appConfig.Notifier.Telegram
	if telegram.Enabled() {
		client, err := s.newClient(telegram.BotToken, s.appConfig.Debug)
		if err != nil {
			defer serviceStopWG.Done()
			return err
		}
		s.client = client
	} else {
		applog.WithComponent(component).Info("텔레그램 알림이 설정되지 않아 알림 전송을 비활성화합니다")
	}

	s.running = true

	go s.run(serviceStopCtx, serviceStopWG)

	applog.WithComponent(component).Info("Notification 서비스 시작됨")

	return nil
}

func (s *Service) run(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	for {
		select {
		case n := <-s.queue:
			// 종료 신호와 동시에 꺼낸 메시지도 전송되도록 취소 전파를 끊습니다.
			s.send(context.WithoutCancel(serviceStopCtx), n)

		case <-serviceStopCtx.Done():
			applog.WithComponent(component).Info("Notification 서비스 중지중...")

			s.runningMu.Lock()
			s.running = false
			s.runningMu.Unlock()

			s.drain()

			applog.WithComponent(component).Info("Notification 서비스 중지됨")
			return
		}
	}
}

// drain 대기열에 남은 메시지를 shutdownTimeout 안에서 모두 전송합니다.
func (s *Service) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for {
		select {
		case n := <-s.queue:
			if ctx.Err() != nil {
				applog.WithComponentAndFields(component, applog.Fields{
					"message": n.message,
				}).Warn("종료 시간 초과로 알림 메시지를 전송하지 못했습니다")
				continue
			}
			s.send(ctx, n)
		default:
			return
		}
	}
}

func (s *Service) send(ctx context.Context, n notification) {
	if s.client == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"panic": r,
			}).Error("알림 메시지 전송 중 패닉 복구됨")
		}
	}()

	if err := s.limiter.Wait(ctx); err != nil {
		return
	}

	text := buildMessage(config.AppName, n.message, n.errorOccurred)
	if _, err := s.client.Send(newMessageConfig(s.appConfig.Notifier.Telegram.ChatID, text)); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"chat_id": s.appConfig.Notifier.Telegram.ChatID,
			"error":   err,
		}).Error("텔레그램 알림 메시지 전송 실패")
		return
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"error_occurred": n.errorOccurred,
	}).Debug("텔레그램 알림 메시지 전송 완료")
}

func (s *Service) enqueue(n notification) error {
	s.runningMu.RLock()
	defer s.runningMu.RUnlock()

	if !s.running {
		return ErrServiceStopped
	}
	if s.client == nil {
		return nil
	}

	select {
	case s.queue <- n:
		return nil
	default:
		applog.WithComponentAndFields(component, applog.Fields{
			"message": n.message,
		}).Warn("알림 전송 대기열이 가득 차서 메시지를 버립니다")
		return ErrQueueFull
	}
}

func (s *Service) Notify(message string) error {
	return s.enqueue(notification{message: message})
}

func (s *Service) NotifyError(message string) error {
	return s.enqueue(notification{message: message, errorOccurred: true})
}

func (s *Service) Health() error {
	s.runningMu.RLock()
	defer s.runningMu.RUnlock()

	if !s.running {
		return ErrServiceStopped
	}
	return nil
}
