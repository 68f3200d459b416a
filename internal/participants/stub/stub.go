package stub

import (
	"context"
	"encoding/json"
	"log"

	"congress-registration/internal/models"
	"congress-registration/internal/util"
)

// Sender accepts every record without a backend. Meant for local runs:
// PARTICIPANTS_API=stub.
type Sender struct{}

func New() *Sender { return &Sender{} }

func (s *Sender) Name() string { return "stub" }

type response struct {
	OK         bool   `json:"ok"`
	Code       string `json:"code"`
	ReceivedAt string `json:"received_at"`
}

func (s *Sender) Send(ctx context.Context, p models.Participant) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	log.Printf("stub participants api: %s", body)
	return json.Marshal(response{OK: true, Code: p.Code, ReceivedAt: util.NowISO()})
}
