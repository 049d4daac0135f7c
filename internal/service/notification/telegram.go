package notification

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/darkkaiser/catalog-sync/internal/service/notification/constants"
	applog "github.com/darkkaiser/catalog-sync/pkg/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// TelegramConfig 텔레그램 봇 설정입니다.
type TelegramConfig struct {
	BotToken string
	ChatID   int64
}

// botClient 테스트에서 교체할 수 있도록 봇 API 중 사용하는 부분만 추린 인터페이스입니다.
type botClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram 텔레그램 채팅방 하나로 메시지를 보내는 Notifier입니다. 동시에 사용해도 안전합니다.
//
// 한도를 넘는 메시지는 줄 단위로 나누어 순서대로 보냅니다.
type Telegram struct {
	bot    botClient
	chatID int64

	limiter *rate.Limiter

	maxRetries int
	retryDelay time.Duration
}

// NewTelegram 봇 토큰을 검증하고 Telegram Notifier를 생성합니다.
func NewTelegram(cfg TelegramConfig, debug bool) (*Telegram, error) {
	applog.WithComponentAndFields(constants.ComponentNotifierTelegram, applog.Fields{
		"bot_token": applog.MaskSensitiveData(cfg.BotToken),
		"chat_id":   cfg.ChatID,
	}).Debug(constants.LogMsgTelegramInitClient)

	client := &http.Client{
		Timeout: constants.DefaultHTTPClientTimeout,
	}

	botAPI, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, newErrInvalidBotToken(err)
	}
	botAPI.Debug = debug

	return newTelegramWithBot(botAPI, cfg.ChatID), nil
}

func newTelegramWithBot(bot botClient, chatID int64) *Telegram {
	return &Telegram{
		bot:    bot,
		chatID: chatID,

		limiter: rate.NewLimiter(rate.Limit(constants.DefaultRateLimit), constants.DefaultRateBurst),

		maxRetries: constants.DefaultMaxRetries,
		retryDelay: constants.DefaultRetryDelay,
	}
}

// Notify 메시지를 일반 텍스트로 보냅니다. 긴 메시지는 줄 단위로 나누어 순서대로 보내며,
// 전체 전송은 DefaultNotifyTimeout 안에 끝나야 합니다.
func (t *Telegram) Notify(ctx context.Context, message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrEmptyMessage
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultNotifyTimeout)
	defer cancel()

	for _, part := range splitMessage(message, constants.MaxMessageLength) {
		if err := t.send(ctx, part); err != nil {
			return err
		}
	}

	return nil
}

func (t *Telegram) send(ctx context.Context, text string) error {
	if err := t.limiter.Wait(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentNotifierTelegram, applog.Fields{
			"error": err,
		}).Debug(constants.LogMsgTelegramRateLimitCancel)
		return err
	}

	msg := tgbotapi.NewMessage(t.chatID, text)

	var lastErr error
	for attempt := 1; attempt <= t.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		_, err := t.bot.Send(msg)
		if err == nil {
			applog.WithComponentAndFields(constants.ComponentNotifierTelegram, applog.Fields{
				"chat_id": t.chatID,
				"attempt": attempt,
			}).Info(constants.LogMsgTelegramSendSuccess)
			return nil
		}

		lastErr = err
		code, retryAfter := telegramErrorCode(err)

		applog.WithComponentAndFields(constants.ComponentNotifierTelegram, applog.Fields{
			"chat_id":    t.chatID,
			"attempt":    attempt,
			"error_code": code,
			"error":      err,
		}).Warn(constants.LogMsgTelegramSendFail)

		if !retryable(code) {
			applog.WithComponentAndFields(constants.ComponentNotifierTelegram, applog.Fields{
				"error_code": code,
			}).Error(constants.LogMsgTelegramCriticalError)
			return newErrSendFailed(err, attempt)
		}
		if attempt == t.maxRetries {
			break
		}

		wait := t.retryDelay
		if retryAfter > 0 {
			wait = time.Duration(retryAfter) * time.Second
		}

		applog.WithComponentAndFields(constants.ComponentNotifierTelegram, applog.Fields{
			"wait": wait,
		}).Debug(constants.LogMsgTelegramRetryWait)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return newErrSendFailed(lastErr, t.maxRetries)
}

// telegramErrorCode 봇 API 에러에서 에러 코드와 retry_after 값을 꺼냅니다. 네트워크 에러는 0을 반환합니다.
func telegramErrorCode(err error) (code int, retryAfter int) {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code, apiErr.ResponseParameters.RetryAfter
	}

	var apiErrValue tgbotapi.Error
	if errors.As(err, &apiErrValue) {
		return apiErrValue.Code, apiErrValue.ResponseParameters.RetryAfter
	}

	return 0, 0
}

// retryable 429와 5xx, 네트워크 에러만 재시도합니다.
func retryable(code int) bool {
	if code >= 400 && code < 500 {
		return code == http.StatusTooManyRequests
	}
	return true
}

// splitMessage 메시지를 limit 문자 이하의 조각으로 나눕니다.
//
// 가능하면 줄 경계에서 나누고, 한 줄이 limit보다 길면 그 줄을 문자 단위로 자릅니다.
func splitMessage(message string, limit int) []string {
	if utf8.RuneCountInString(message) <= limit {
		return []string{message}
	}

	var (
		parts   []string
		current strings.Builder
		count   int
	)

	flush := func() {
		if current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
			count = 0
		}
	}

	for _, line := range strings.SplitAfter(message, "\n") {
		n := utf8.RuneCountInString(line)

		if count+n > limit {
			flush()
		}

		for n > limit {
			runes := []rune(line)
			parts = append(parts, string(runes[:limit]))
			line = string(runes[limit:])
			n -= limit
		}

		current.WriteString(line)
		count += n
	}
	flush()

	return parts
}
