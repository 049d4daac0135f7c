package notification

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	apperrors "github.com/darkkaiser/catalog-sync/internal/pkg/errors"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBot 보낸 메시지를 기록하고, 준비된 에러를 순서대로 반환합니다.
type fakeBot struct {
	mu   sync.Mutex
	errs []error
	sent []tgbotapi.MessageConfig
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.errs) > 0 {
		err := b.errs[0]
		b.errs = b.errs[1:]
		if err != nil {
			return tgbotapi.Message{}, err
		}
	}

	b.sent = append(b.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, nil
}

func (b *fakeBot) texts() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	var texts []string
	for _, m := range b.sent {
		texts = append(texts, m.Text)
	}
	return texts
}

func newTestTelegram(bot *fakeBot) *Telegram {
	t := newTelegramWithBot(bot, 42)
	t.retryDelay = time.Millisecond
	return t
}

func TestTelegram_Notify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		errs          []error
		expectedSent  int
		expectedError bool
		expectedType  apperrors.ErrorType
	}{
		{
			name:         "첫_시도_성공",
			expectedSent: 1,
		},
		{
			name:         "429_후_재시도_성공",
			errs:         []error{&tgbotapi.Error{Code: 429, Message: "Too Many Requests"}},
			expectedSent: 1,
		},
		{
			name:         "네트워크_에러_후_재시도_성공",
			errs:         []error{errors.New("connection reset")},
			expectedSent: 1,
		},
		{
			name:          "400은_재시도하지_않음",
			errs:          []error{&tgbotapi.Error{Code: 400, Message: "Bad Request: chat not found"}},
			expectedError: true,
			expectedType:  apperrors.ExecutionFailed,
		},
		{
			name: "재시도_횟수_초과",
			errs: []error{
				&tgbotapi.Error{Code: 502, Message: "Bad Gateway"},
				&tgbotapi.Error{Code: 502, Message: "Bad Gateway"},
				&tgbotapi.Error{Code: 502, Message: "Bad Gateway"},
			},
			expectedError: true,
			expectedType:  apperrors.ExecutionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			bot := &fakeBot{errs: tt.errs}
			err := newTestTelegram(bot).Notify(context.Background(), "🏁 Синхронізація завершена")

			if tt.expectedError {
				require.Error(t, err)
				assert.True(t, apperrors.Is(err, tt.expectedType))
				assert.Empty(t, bot.texts())
				return
			}

			require.NoError(t, err)
			assert.Len(t, bot.texts(), tt.expectedSent)
		})
	}
}

func TestTelegram_Notify_채팅방과_일반_텍스트(t *testing.T) {
	t.Parallel()

	bot := &fakeBot{}
	require.NoError(t, newTestTelegram(bot).Notify(context.Background(), "<b>not html</b>"))

	require.Len(t, bot.sent, 1)
	assert.Equal(t, int64(42), bot.sent[0].ChatID)
	assert.Empty(t, bot.sent[0].ParseMode)
	assert.Equal(t, "<b>not html</b>", bot.sent[0].Text)
}

func TestTelegram_Notify_빈_메시지(t *testing.T) {
	t.Parallel()

	bot := &fakeBot{}
	err := newTestTelegram(bot).Notify(context.Background(), "  \n ")

	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Empty(t, bot.texts())
}

func TestTelegram_Notify_컨텍스트_취소(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bot := &fakeBot{}
	err := newTestTelegram(bot).Notify(ctx, "message")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, bot.texts())
}

func TestTelegram_Notify_긴_메시지_분할(t *testing.T) {
	t.Parallel()

	line := strings.Repeat("я", 3000) + "\n"
	bot := &fakeBot{}
	require.NoError(t, newTestTelegram(bot).Notify(context.Background(), line+line))

	texts := bot.texts()
	require.Len(t, texts, 2)
	assert.Equal(t, line, texts[0])
	assert.Equal(t, line, texts[1])
}

func TestSplitMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		message  string
		limit    int
		expected []string
	}{
		{"한도_이내", "a\nb", 10, []string{"a\nb"}},
		{"줄_경계에서_분할", "aaa\nbbb\nccc", 8, []string{"aaa\nbbb\n", "ccc"}},
		{"긴_줄은_문자_단위로_자름", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"멀티바이트_문자", "яяяяя", 2, []string{"яя", "яя", "я"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			parts := splitMessage(tt.message, tt.limit)
			assert.Equal(t, tt.expected, parts)
			for _, p := range parts {
				assert.LessOrEqual(t, utf8.RuneCountInString(p), tt.limit)
			}
			assert.Equal(t, tt.message, strings.Join(parts, ""))
		})
	}
}

func TestTelegramErrorCode(t *testing.T) {
	t.Parallel()

	code, retryAfter := telegramErrorCode(&tgbotapi.Error{
		Code:               429,
		ResponseParameters: tgbotapi.ResponseParameters{RetryAfter: 7},
	})
	assert.Equal(t, 429, code)
	assert.Equal(t, 7, retryAfter)

	code, retryAfter = telegramErrorCode(errors.New("dial tcp: timeout"))
	assert.Zero(t, code)
	assert.Zero(t, retryAfter)
}

func TestNew_텔레그램_미설정(t *testing.T) {
	t.Parallel()

	n, err := New(Config{})
	require.NoError(t, err)
	assert.IsType(t, Noop{}, n)
	assert.NoError(t, n.Notify(context.Background(), "ignored"))
}
