// Package tgbot notifies organizers on Telegram about new registrations.
package tgbot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"congress-registration/internal/models"
)

type Notifier struct {
	bot    *tgbotapi.BotAPI
	admins []int64
}

// RequestTimeout bounds every Bot API call made by New.
const RequestTimeout = 10 * time.Second

func New(token string, adminIDs map[int64]bool) (*Notifier, error) {
	return NewWithClient(token, tgbotapi.APIEndpoint, &http.Client{Timeout: RequestTimeout}, adminIDs)
}

// NewWithClient talks to a custom endpoint, formatted like tgbotapi.APIEndpoint.
func NewWithClient(token, endpoint string, client tgbotapi.HTTPClient, adminIDs map[int64]bool) (*Notifier, error) {
	b, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, err
	}
	return newNotifier(b, adminIDs), nil
}

func newNotifier(b *tgbotapi.BotAPI, adminIDs map[int64]bool) *Notifier {
	b.Debug = false
	admins := make([]int64, 0, len(adminIDs))
	for id, ok := range adminIDs {
		if ok {
			admins = append(admins, id)
		}
	}
	sort.Slice(admins, func(i, j int) bool { return admins[i] < admins[j] })
	return &Notifier{bot: b, admins: admins}
}

func (n *Notifier) Name() string { return "telegram" }

func (n *Notifier) SendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := n.bot.Send(msg)
	return err
}

// sendText is SendText bounded by ctx. The Bot API client takes no context, so
// a call still in flight when ctx ends finishes in the background under the
// client's own timeout.
func (n *Notifier) sendText(ctx context.Context, chatID int64, text string) error {
	done := make(chan error, 1)
	go func() { done <- n.SendText(chatID, text) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ParticipantRegistered sends the registration summary to every admin. One
// failing chat does not stop the others; the deadline on ctx stops them all.
func (n *Notifier) ParticipantRegistered(ctx context.Context, p models.Participant) error {
	text := FormatRegistration(p)
	var errs []error
	for _, id := range n.admins {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := n.sendText(ctx, id, text); err != nil {
			errs = append(errs, fmt.Errorf("notify %d: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

func FormatRegistration(p models.Participant) string {
	var b strings.Builder
	b.WriteString("🆕 Nuevo registro\n")
	fmt.Fprintf(&b, "Código: %s\n", p.Code)
	fmt.Fprintf(&b, "Nombre: %s\n", p.Name)
	fmt.Fprintf(&b, "Tipo: %s\n", p.ParticipantType.Label())
	fmt.Fprintf(&b, "Email: %s\n", p.Email)
	fmt.Fprintf(&b, "Teléfono: %d", p.Phone)
	return b.String()
}
