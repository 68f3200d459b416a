// Package httpapi posts participant records to the remote participants API.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"congress-registration/internal/models"
)

const participantsPath = "/participants"

// maxErrorBody caps how much of a failed response is kept for logging.
const maxErrorBody = 4 << 10

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("participants api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("participants api: status %d: %s", e.StatusCode, e.Body)
}

// TransportError wraps failures that happened before a response arrived.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "participants api: " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

type Client struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string, client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (c *Client) Name() string { return "http" }

// Send performs POST {base}/participants with p as the JSON body.
func (c *Client) Send(ctx context.Context, p models.Participant) (json.RawMessage, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode participant: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+participantsPath, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}
	return json.RawMessage(out), nil
}
