// Package notification 동기화 실행 결과를 운영자에게 알리는 Notifier를 제공합니다.
//
// 텔레그램이 설정되어 있으면 Telegram, 그렇지 않으면 메시지를 버리는 Noop을 사용합니다.
package notification

import (
	"context"

	"github.com/darkkaiser/catalog-sync/internal/catalog/syncrun"
	"github.com/darkkaiser/catalog-sync/internal/service/notification/constants"
	applog "github.com/darkkaiser/catalog-sync/pkg/log"
)

// Notifier 운영자에게 텍스트 메시지를 보냅니다.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

var (
	_ syncrun.Notifier = (*Telegram)(nil)
	_ syncrun.Notifier = Noop{}
)

// Config Notifier 생성 설정입니다.
type Config struct {
	// Telegram nil이면 알림을 보내지 않습니다.
	Telegram *TelegramConfig

	Debug bool
}

// New 설정에 맞는 Notifier를 생성합니다.
func New(cfg Config) (Notifier, error) {
	if cfg.Telegram == nil {
		return Noop{}, nil
	}

	t, err := NewTelegram(*cfg.Telegram, cfg.Debug)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Noop 아무것도 보내지 않는 Notifier입니다.
type Noop struct{}

// Notify 메시지를 버립니다.
func (Noop) Notify(_ context.Context, message string) error {
	applog.WithComponentAndFields(constants.ComponentNotifier, applog.Fields{
		"message_length": len(message),
	}).Debug(constants.LogMsgNotifierDisabled)
	return nil
}
