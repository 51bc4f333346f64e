package view

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"sync"

	"github.com/kapu/social-growth-advisor/internal/domain"
)

//go:embed templates/*.html
var pageTemplateFS embed.FS

const (
	// Title is shown in the header and the browser tab.
	Title = "Social Growth AI Agent"

	pageTemplate   = "index.html"
	refreshSeconds = 3
)

var (
	pageTemplates *template.Template
	pageOnce      sync.Once
	pageErr       error
)

// PageData is everything the page needs. State is never nil after NewPageData.
type PageData struct {
	Title          string
	State          *domain.SessionState
	Busy           bool
	Handle         string
	RefreshSeconds int
}

func NewPageData(state *domain.SessionState) PageData {
	if state == nil {
		state = &domain.SessionState{}
	}

	data := PageData{
		Title:          Title,
		State:          state,
		Busy:           state.Busy,
		RefreshSeconds: refreshSeconds,
	}
	if state.Profile != nil {
		data.Handle = state.Profile.Handle
	}
	return data
}

func loadTemplates() (*template.Template, error) {
	pageOnce.Do(func() {
		pageTemplates, pageErr = template.New("page").ParseFS(pageTemplateFS, "templates/*.html")
	})
	return pageTemplates, pageErr
}

// Render writes the full page. Output is buffered so a template failure never leaves a half-written page.
func Render(w io.Writer, data PageData) error {
	tmpl, err := loadTemplates()
	if err != nil {
		return err
	}
	if data.State == nil {
		data.State = &domain.SessionState{}
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, pageTemplate, data); err != nil {
		return err
	}

	_, err = buf.WriteTo(w)
	return err
}
