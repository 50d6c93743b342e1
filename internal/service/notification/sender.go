// Package notification 운영자에게 장애 알림을 전송하는 서비스를 제공합니다.
//
// 현재는 텔레그램 봇만 지원하며, 설정되지 않은 경우 모든 알림을 조용히 버립니다.
package notification

import "errors"

const component = "notification.service"

var (
	// ErrServiceStopped 서비스가 실행 중이 아니어서 알림을 큐에 넣을 수 없습니다.
	ErrServiceStopped = errors.New("알림 서비스가 실행 중이 아닙니다")

	// ErrQueueFull 전송 대기열이 가득 찼습니다.
	ErrQueueFull = errors.New("알림 전송 대기열이 가득 찼습니다")
)

// Sender 알림 발송 기능을 제공하는 인터페이스입니다.
// API 서버와 스토리지 프로브는 이 인터페이스를 통해 알림을 보냅니다.
type Sender interface {
	// Notify 일반 알림 메시지를 발송 대기열에 넣습니다.
	Notify(message string) error

	// NotifyError "오류" 성격의 알림 메시지를 발송 대기열에 넣습니다.
	NotifyError(message string) error

	// Health 서비스가 알림을 받을 수 있는 상태인지 확인합니다.
	Health() error
}

// NopSender 모든 알림을 버리는 Sender입니다.
type NopSender struct{}

var _ Sender = NopSender{}

func (NopSender) Notify(string) error      { return nil }
func (NopSender) NotifyError(string) error { return nil }
func (NopSender) Health() error            { return nil }
