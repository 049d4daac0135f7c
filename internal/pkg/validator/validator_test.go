package validator_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/darkkaiser/catalog-sync/internal/pkg/validator"
	playground "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_동시_호출(t *testing.T) {
	t.Parallel()

	const routines = 50
	instances := make([]*playground.Validate, routines)

	var wg sync.WaitGroup
	wg.Add(routines)
	for i := 0; i < routines; i++ {
		go func(i int) {
			defer wg.Done()
			instances[i] = validator.Get()
		}(i)
	}
	wg.Wait()

	for i := 1; i < routines; i++ {
		assert.Same(t, instances[0], instances[i])
	}
}

type schedule struct {
	Enabled  bool   `korean:"활성화"`
	TimeSpec string `validate:"required_if=Enabled true,omitempty,cron" korean:"실행주기"`
	Timezone string `validate:"omitempty,timezone" korean:"시간대"`
	Port     int    `validate:"min=1,max=65535" korean:"포트"`
	Mode     string `validate:"omitempty,oneof=json form" korean:"모드"`
	Name     string `validate:"required"`
}

func TestStruct_FormatValidationError(t *testing.T) {
	t.Parallel()

	valid := schedule{Enabled: true, TimeSpec: "0 0 */2 * * *", Timezone: "Europe/Kyiv", Port: 8080, Name: "sync"}

	tests := []struct {
		name    string
		mutate  func(s *schedule)
		wantMsg string
	}{
		{"정상", func(*schedule) {}, ""},
		{"활성화시_실행주기_필수", func(s *schedule) { s.TimeSpec = "" }, "실행주기는 조건(Enabled=true)에 따라 필수입니다"},
		{"잘못된_Cron", func(s *schedule) { s.TimeSpec = "every hour" }, "실행주기는 올바른 Cron 표현식이어야 합니다"},
		{"잘못된_시간대", func(s *schedule) { s.Timezone = "Mars/Base" }, "시간대는 올바른 시간대 이름이어야 합니다"},
		{"포트_범위", func(s *schedule) { s.Port = 0 }, "포트는 최소 1 이상이어야 합니다"},
		{"oneof", func(s *schedule) { s.Mode = "xml" }, "모드는 [json form] 중 하나여야 합니다"},
		{"korean_태그가_없으면_필드명", func(s *schedule) { s.Name = "" }, "Name는 필수입니다"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := valid
			tt.mutate(&s)

			err := validator.Struct(s)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, validator.FormatValidationError(err))
		})
	}
}

func TestFormatValidationError_일반_에러(t *testing.T) {
	t.Parallel()

	assert.Empty(t, validator.FormatValidationError(nil))
	assert.Equal(t, "plain", validator.FormatValidationError(errors.New("plain")))
}
