package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/darkkaiser/catalog-sync/internal/pkg/errors"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanicRecovery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		panicWith any
		checkErr  func(t *testing.T, err error)
	}{
		{
			name:      "문자열_패닉",
			panicWith: "boom",
			checkErr: func(t *testing.T, err error) {
				assert.True(t, apperrors.Is(err, apperrors.Internal))
				assert.Contains(t, err.Error(), "boom")
			},
		},
		{
			name:      "에러_패닉은_원인을_보존",
			panicWith: errors.New("root cause"),
			checkErr: func(t *testing.T, err error) {
				assert.True(t, apperrors.Is(err, apperrors.Internal))
				assert.EqualError(t, apperrors.RootCause(err), "root cause")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/report", nil), httptest.NewRecorder())

			h := PanicRecovery()(func(echo.Context) error {
				panic(tt.panicWith)
			})

			var err error
			require.NotPanics(t, func() { err = h(c) })
			require.Error(t, err)
			tt.checkErr(t, err)
		})
	}
}

func TestPanicRecovery_ErrAbortHandler는_다시_던짐(t *testing.T) {
	t.Parallel()

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	h := PanicRecovery()(func(echo.Context) error {
		panic(http.ErrAbortHandler)
	})

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() { _ = h(c) })
}
