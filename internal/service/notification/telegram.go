package notification

import (
	"html"
	"net/http"
	"time"

	apperrors "github.com/darkkaiser/apk-update-server/internal/pkg/errors"
	"github.com/darkkaiser/apk-update-server/internal/pkg/mark"
	applog "github.com/darkkaiser/apk-update-server/pkg/log"
	"github.com/darkkaiser/apk-update-server/pkg/strutil"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	// messageMaxLength 텔레그램 메시지 최대 길이(4096자)에서 HTML 태그 여유분을 뺀 값
	messageMaxLength = 3900

	// httpClientTimeout 텔레그램 API 호출 타임아웃
	httpClientTimeout = 30 * time.Second
)

// botClient 텔레그램 봇 API와의 통신을 추상화한 인터페이스입니다.
type botClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// newBotClient 봇 토큰으로 텔레그램 API 클라이언트를 생성합니다.
// 토큰 검증을 위해 getMe API를 한 번 호출합니다.
func newBotClient(botToken string, debug bool) (botClient, error) {
	applog.WithComponentAndFields(component, applog.Fields{
		"bot_token": strutil.Mask(botToken),
	}).Debug("텔레그램 봇 API 클라이언트 초기화")

	botAPI, err := tgbotapi.NewBotAPIWithClient(botToken, tgbotapi.APIEndpoint, &http.Client{Timeout: httpClientTimeout})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "텔레그램 봇 API 클라이언트 초기화에 실패했습니다. BotToken이 올바른지 확인해주세요")
	}
	botAPI.Debug = debug

	return botAPI, nil
}

// buildMessage 알림 본문을 텔레그램 HTML 메시지로 변환합니다.
func buildMessage(title, message string, errorOccurred bool) string {
	if r := []rune(message); len(r) > messageMaxLength {
		message = string(r[:messageMaxLength]) + "…"
	}
	body := html.EscapeString(message)

	header := "<b>【 " + html.EscapeString(title) + " 】</b>"
	if errorOccurred {
		header = "<b>【 " + html.EscapeString(title) + " 】</b>" + mark.Alert.WithSpace() + " <b>오류 발생</b>"
	}

	return header + "\n\n" + body
}

func newMessageConfig(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	return msg
}
