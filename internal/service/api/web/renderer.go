package web

import (
	"embed"
	"html/template"
	"io"

	apperrors "github.com/darkkaiser/catalog-sync/internal/pkg/errors"
	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templatesFS embed.FS

const layoutFile = "templates/layout.html"

// 화면 템플릿 이름
const (
	pageHome     = "home.html"
	pageReport   = "report.html"
	pageSettings = "settings.html"
)

// Renderer 내장된 HTML 템플릿으로 화면을 그리는 echo.Renderer 구현입니다.
//
// 화면마다 공통 레이아웃과 함께 별도의 템플릿 세트로 파싱되므로 "content" 블록이 서로 겹치지 않습니다.
type Renderer struct {
	pages map[string]*template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

// NewRenderer 모든 화면 템플릿을 파싱합니다.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}

	for _, page := range []string{pageHome, pageReport, pageSettings} {
		t, err := template.New(page).ParseFS(templatesFS, layoutFile, "templates/"+page)
		if err != nil {
			return nil, apperrors.Wrapf(err, apperrors.Internal, "화면 템플릿을 파싱할 수 없습니다: %s", page)
		}
		r.pages[page] = t
	}

	return r, nil
}

// Render echo.Renderer 구현입니다.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return apperrors.Newf(apperrors.NotFound, "등록되지 않은 화면 템플릿입니다: %s", name)
	}

	return t.ExecuteTemplate(w, "layout", data)
}
