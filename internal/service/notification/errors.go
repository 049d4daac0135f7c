package notification

import (
	apperrors "github.com/darkkaiser/catalog-sync/internal/pkg/errors"
)

var (
	// ErrEmptyMessage 빈 메시지는 보내지 않습니다.
	ErrEmptyMessage = apperrors.New(apperrors.InvalidInput, "알림 메시지가 비어 있습니다")
)

func newErrInvalidBotToken(err error) error {
	return apperrors.Wrap(err, apperrors.InvalidInput, "텔레그램 봇 API 클라이언트 초기화에 실패했습니다. BotToken이 올바른지 확인해주세요")
}

func newErrSendFailed(err error, attempts int) error {
	return apperrors.Wrapf(err, apperrors.ExecutionFailed, "텔레그램 메시지 발송에 실패했습니다 (시도 %d회)", attempts)
}
