package participants

import (
	"context"
	"encoding/json"

	"congress-registration/internal/models"
)

type Sender interface {
	Name() string

	// Send delivers one assembled record and returns the raw response body.
	Send(ctx context.Context, p models.Participant) (json.RawMessage, error)
}
