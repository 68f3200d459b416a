package participants

import (
	"fmt"
	"net/http"

	"congress-registration/internal/config"
	"congress-registration/internal/participants/httpapi"
	"congress-registration/internal/participants/stub"
)

func NewSender(cfg config.Config) (Sender, error) {
	switch cfg.ParticipantsAPI {
	case "http":
		return httpapi.New(cfg.BackendAPIURL, &http.Client{Timeout: cfg.BackendAPITimeout}), nil
	case "stub":
		return stub.New(), nil
	default:
		return nil, fmt.Errorf("unknown participants api: %s", cfg.ParticipantsAPI)
	}
}
