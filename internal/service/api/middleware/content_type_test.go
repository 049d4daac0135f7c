package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestValidateContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        string
		contentType string
		wantErr     bool
	}{
		{"JSON", `{"key":"a"}`, "application/json", false},
		{"JSON_charset", `{"key":"a"}`, "application/json; charset=UTF-8", false},
		{"본문_없음", "", "", false},
		{"폼", "a=b", "application/x-www-form-urlencoded", true},
		{"헤더_없음", `{}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/settings/save", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set(echo.HeaderContentType, tt.contentType)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			h := ValidateContentType(echo.MIMEApplicationJSON)(func(c echo.Context) error {
				return c.NoContent(http.StatusNoContent)
			})

			err := h(c)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedMediaType)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
