package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const DefaultEventTitle = "Congreso Internacional: Reactivación Petrolera en las Regiones Piura y Tumbes"

type Config struct {
	BackendAPIURL     string        `env:"BACKEND_API_URL"`
	ParticipantsAPI   string        `env:"PARTICIPANTS_API" envDefault:"http"`
	BackendAPITimeout time.Duration `env:"BACKEND_API_TIMEOUT" envDefault:"15s"`

	HTTPAddr   string `env:"HTTP_ADDR" envDefault:":8080"`
	EventTitle string `env:"EVENT_TITLE"`

	TelegramToken string `env:"TELEGRAM_BOT_TOKEN"`
	AdminIDsRaw   string `env:"ADMIN_TG_IDS"`
	AdminTGIDs    map[int64]bool

	SpreadsheetID            string `env:"GOOGLE_SHEETS_SPREADSHEET_ID"`
	GoogleServiceAccountJSON string `env:"GOOGLE_SERVICE_ACCOUNT_JSON"`

	ExportSecret string `env:"EXPORT_SECRET"`
}

// FromEnv reads the process environment once at startup and fails fast on
// anything the service cannot run without.
func FromEnv() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return c, fmt.Errorf("parse env: %w", err)
	}

	c.ParticipantsAPI = strings.ToLower(strings.TrimSpace(c.ParticipantsAPI))
	c.BackendAPIURL = strings.TrimRight(strings.TrimSpace(c.BackendAPIURL), "/")
	c.HTTPAddr = strings.TrimSpace(c.HTTPAddr)
	c.EventTitle = strings.TrimSpace(c.EventTitle)
	if c.EventTitle == "" {
		c.EventTitle = DefaultEventTitle
	}
	c.TelegramToken = strings.TrimSpace(c.TelegramToken)
	c.SpreadsheetID = strings.TrimSpace(c.SpreadsheetID)
	c.GoogleServiceAccountJSON = strings.TrimSpace(c.GoogleServiceAccountJSON)

	if c.ParticipantsAPI == "http" {
		if c.BackendAPIURL == "" {
			return c, fmt.Errorf("BACKEND_API_URL is empty")
		}
		u, err := url.Parse(c.BackendAPIURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return c, fmt.Errorf("BACKEND_API_URL must be an absolute http(s) URL, got %q", c.BackendAPIURL)
		}
	}
	if (c.SpreadsheetID == "") != (c.GoogleServiceAccountJSON == "") {
		return c, fmt.Errorf("GOOGLE_SHEETS_SPREADSHEET_ID and GOOGLE_SERVICE_ACCOUNT_JSON must be set together")
	}

	c.AdminTGIDs = parseAdminIDs(c.AdminIDsRaw)

	return c, nil
}

// SheetsEnabled reports whether the registration ledger is configured.
func (c Config) SheetsEnabled() bool {
	return c.SpreadsheetID != "" && c.GoogleServiceAccountJSON != ""
}

func (c Config) TelegramEnabled() bool {
	return c.TelegramToken != ""
}

func parseAdminIDs(raw string) map[int64]bool {
	m := map[int64]bool{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return m
	}
	parts := strings.Split(raw, ",")
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			continue
		}
		m[v] = true
	}
	return m
}
