package tgbot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"congress-registration/internal/models"
)

type fakeTelegram struct {
	mu   sync.Mutex
	sent map[string]string
	fail string
}

func (f *fakeTelegram) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.HasSuffix(r.URL.Path, "/getMe"):
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"bot","username":"congress_bot"}}`))
	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		chat := r.Form.Get("chat_id")
		if chat == f.fail {
			_, _ = w.Write([]byte(`{"ok":false,"error_code":403,"description":"Forbidden: bot was blocked by the user"}`))
			return
		}
		f.sent[chat] = r.Form.Get("text")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":` + chat + `,"type":"private"}}}`))
	default:
		http.NotFound(w, r)
	}
}

func sample() models.Participant {
	return models.Participant{
		Name:            "JUAN PEREZ",
		Email:           "juan@test.com",
		Phone:           987654321,
		ParticipantType: models.UniversityStudent,
		Code:            "RP2025-ABCD1234",
	}
}

func newTestNotifier(t *testing.T, f *fakeTelegram, admins map[int64]bool) *Notifier {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	n, err := NewWithClient("token", srv.URL+"/bot%s/%s", srv.Client(), admins)
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}
	return n
}

func TestFormatRegistration(t *testing.T) {
	got := FormatRegistration(sample())
	for _, want := range []string{"RP2025-ABCD1234", "JUAN PEREZ", "Alumno Universitario", "juan@test.com", "987654321"} {
		if !strings.Contains(got, want) {
			t.Fatalf("message %q missing %q", got, want)
		}
	}
}

func TestParticipantRegisteredNotifiesAdmins(t *testing.T) {
	f := &fakeTelegram{sent: map[string]string{}}
	n := newTestNotifier(t, f, map[int64]bool{10: true, 20: true, 30: false})

	if err := n.ParticipantRegistered(context.Background(), sample()); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(f.sent) != 2 {
		t.Fatalf("expected 2 messages, got %v", f.sent)
	}
	if !strings.Contains(f.sent["10"], "RP2025-ABCD1234") {
		t.Fatalf("unexpected text %q", f.sent["10"])
	}
}

func TestParticipantRegisteredContinuesAfterFailure(t *testing.T) {
	f := &fakeTelegram{sent: map[string]string{}, fail: "10"}
	n := newTestNotifier(t, f, map[int64]bool{10: true, 20: true})

	err := n.ParticipantRegistered(context.Background(), sample())
	if err == nil || !strings.Contains(err.Error(), "notify 10") {
		t.Fatalf("expected error for chat 10, got %v", err)
	}
	if _, ok := f.sent["20"]; !ok {
		t.Fatal("second admin should still be notified")
	}
}

func TestParticipantRegisteredNoAdmins(t *testing.T) {
	n := newTestNotifier(t, &fakeTelegram{sent: map[string]string{}}, nil)
	if err := n.ParticipantRegistered(context.Background(), sample()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Name() != "telegram" {
		t.Fatal("unexpected name")
	}
}

func TestParticipantRegisteredHonorsDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/getMe") {
			_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"bot","username":"congress_bot"}}`))
			return
		}
		<-release
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	n, err := NewWithClient("token", srv.URL+"/bot%s/%s", &http.Client{}, map[int64]bool{10: true, 20: true})
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- n.ParticipantRegistered(ctx, sample()) }()
	select {
	case err := <-done:
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("expected deadline exceeded, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ParticipantRegistered ignored the context deadline")
	}
}
