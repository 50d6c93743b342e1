package notification

import (
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/mock"
)

type mockBotClient struct {
	mock.Mock

	mu   sync.Mutex
	sent []tgbotapi.MessageConfig
}

func (m *mockBotClient) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	args := m.Called(c)

	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		m.mu.Lock()
		m.sent = append(m.sent, msg)
		m.mu.Unlock()
	}

	return tgbotapi.Message{}, args.Error(1)
}

func (m *mockBotClient) messages() []tgbotapi.MessageConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]tgbotapi.MessageConfig(nil), m.sent...)
}
