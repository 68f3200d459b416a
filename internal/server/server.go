package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"congress-registration/internal/config"
	"congress-registration/internal/models"
	"congress-registration/internal/registration"
	"congress-registration/internal/schema"
)

// Submitter is the part of the registration pipeline the handlers need.
type Submitter interface {
	Submit(ctx context.Context, form models.RegistrationForm) (registration.Outcome, error)
}

// Ledger backs the CSV export. Nil disables the route.
type Ledger interface {
	ReadParticipants(ctx context.Context) ([][]string, error)
}

type handlers struct {
	cfg    config.Config
	sub    Submitter
	ledger Ledger
}

func New(cfg config.Config, sub Submitter, v *schema.Validator, ledger Ledger) *http.Server {
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: NewRouter(cfg, sub, v, ledger),
	}
}

func NewRouter(cfg config.Config, sub Submitter, v *schema.Validator, ledger Ledger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = v
	e.Renderer = mustTemplates()

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLoggerWithConfig(requestLogConfig()))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("64K"))

	h := &handlers{cfg: cfg, sub: sub, ledger: ledger}

	e.GET("/", h.showForm)
	e.POST("/", h.submitForm)
	e.GET("/success", h.showSuccess)
	e.POST("/api/registrations", h.apiRegister)
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if ledger != nil && cfg.ExportSecret != "" {
		e.GET("/export/participants.csv", h.exportParticipants)
	}

	return e
}
