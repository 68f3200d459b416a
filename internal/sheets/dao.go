package sheets

import (
	"context"
	"fmt"
	"strconv"

	sheetsv4 "google.golang.org/api/sheets/v4"

	"congress-registration/internal/models"
	"congress-registration/internal/util"
)

const SheetParticipants = "Participants"

// Header is the first row of the Participants sheet.
var Header = []string{
	"code", "name", "email", "phone", "participant_type",
	"attendance_days", "payment_method", "amount", "created_at",
}

func (c *Client) readAll(ctx context.Context, sheet string) ([][]interface{}, error) {
	resp, err := c.srv.Spreadsheets.Values.Get(c.spreadsheetID, sheet+"!A:Z").Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (c *Client) appendRow(ctx context.Context, sheet string, row []interface{}) error {
	vr := &sheetsv4.ValueRange{Values: [][]interface{}{row}}
	_, err := c.srv.Spreadsheets.Values.Append(c.spreadsheetID, sheet+"!A:Z", vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

// ---------- Participants ----------

func (c *Client) Name() string { return "sheets" }

// ParticipantRegistered appends an accepted registration to the ledger.
func (c *Client) ParticipantRegistered(ctx context.Context, p models.Participant) error {
	if err := c.appendRow(ctx, SheetParticipants, participantRow(p, util.NowISO())); err != nil {
		return fmt.Errorf("append participant %s: %w", p.Code, err)
	}
	return nil
}

// ReadParticipants returns every ledger row as text, header included when
// the sheet has one.
func (c *Client) ReadParticipants(ctx context.Context) ([][]string, error) {
	values, err := c.readAll(ctx, SheetParticipants)
	if err != nil {
		return nil, err
	}
	out := make([][]string, 0, len(values))
	for _, row := range values {
		if len(row) == 0 {
			continue
		}
		rec := make([]string, len(Header))
		for i := range rec {
			rec[i] = get(row, i)
		}
		out = append(out, rec)
	}
	return out, nil
}

func participantRow(p models.Participant, createdAt string) []interface{} {
	amount := ""
	if p.Amount != nil {
		amount = strconv.FormatFloat(*p.Amount, 'f', -1, 64)
	}
	return []interface{}{
		p.Code,
		p.Name,
		p.Email,
		strconv.FormatInt(p.Phone, 10),
		string(p.ParticipantType),
		p.AttendanceDays,
		p.PaymentMethod,
		amount,
		createdAt,
	}
}

// ---------- helpers ----------

func get(row []interface{}, idx int) string {
	if idx < 0 || idx >= len(row) || row[idx] == nil {
		return ""
	}
	return fmt.Sprint(row[idx])
}
