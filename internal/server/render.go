package server

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"congress-registration/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	pageForm    = "form"
	pageSuccess = "success"
)

type renderer struct {
	pages map[string]*template.Template
}

func mustTemplates() *renderer {
	r := &renderer{pages: map[string]*template.Template{}}
	for _, name := range []string{pageForm, pageSuccess} {
		t, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			panic(fmt.Sprintf("parse template %s: %v", name, err))
		}
		r.pages[name] = t
	}
	return r
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

type toast struct {
	Kind string
	Text string
}

type typeOption struct {
	Value    string
	Label    string
	Selected bool
}

type formView struct {
	Title  string
	Form   models.RegistrationForm
	Errors map[string]string
	Types  []typeOption
	Toast  *toast
}

type successView struct {
	Title string
	Toast *toast
}

func newFormView(title string, form models.RegistrationForm) formView {
	if form.ParticipantType == "" {
		form.ParticipantType = string(models.Sponsor)
	}
	types := make([]typeOption, 0, len(models.ParticipantTypes))
	for _, t := range models.ParticipantTypes {
		types = append(types, typeOption{
			Value:    string(t),
			Label:    t.Label(),
			Selected: string(t) == form.ParticipantType,
		})
	}
	return formView{Title: title, Form: form, Types: types}
}

func requestLogConfig() middleware.RequestLoggerConfig {
	return middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Printf("http %s %s status=%d latency=%s request_id=%s", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	}
}
