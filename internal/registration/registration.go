// Package registration turns a validated form into a participant record and
// delivers it to the participants API.
package registration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"congress-registration/internal/code"
	"congress-registration/internal/models"
	"congress-registration/internal/participants"
	"congress-registration/internal/participants/httpapi"
	"congress-registration/internal/schema"
)

// FailureMessage is the only text an attendee sees when a submission fails.
const FailureMessage = "Error en el registro. Por favor, intente de nuevo."

// SuccessMessage is shown once the API has accepted the record.
const SuccessMessage = "¡Registro exitoso!"

type Kind int

const (
	KindPayloadValidation Kind = iota + 1
	KindNetwork
	KindRejected
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindPayloadValidation:
		return "payload_validation"
	case KindNetwork:
		return "network"
	case KindRejected:
		return "rejected"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// SubmissionError keeps the cause of a failed submission for logging while
// UserMessage stays the same for every kind.
type SubmissionError struct {
	Kind Kind
	Err  error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submit participant (%s): %v", e.Kind, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

func (e *SubmissionError) UserMessage() string { return FailureMessage }

// Observer is told about every participant the API accepted.
type Observer interface {
	Name() string
	ParticipantRegistered(ctx context.Context, p models.Participant) error
}

// Outcome is the result of a successful submission.
type Outcome struct {
	Participant models.Participant
	Response    json.RawMessage
}

type Pipeline struct {
	codes     code.Generator
	validator *schema.Validator
	sender    participants.Sender
	observers []Observer

	observerTimeout time.Duration
	inflight        sync.WaitGroup
}

type Option func(*Pipeline)

// WithObservers registers post-success hooks. They run in their own
// goroutines and never change the outcome.
func WithObservers(obs ...Observer) Option {
	return func(p *Pipeline) { p.observers = append(p.observers, obs...) }
}

func WithObserverTimeout(d time.Duration) Option {
	return func(p *Pipeline) { p.observerTimeout = d }
}

func New(codes code.Generator, v *schema.Validator, sender participants.Sender, opts ...Option) *Pipeline {
	p := &Pipeline{
		codes:           codes,
		validator:       v,
		sender:          sender,
		observerTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Assemble builds the transport record from form input and checks it against
// the transport rules.
func (p *Pipeline) Assemble(form models.RegistrationForm) (models.Participant, error) {
	phone, err := schema.ParsePhone(form.Phone)
	if err != nil {
		return models.Participant{}, err
	}
	rec := models.Participant{
		Name:            schema.NormalizeName(form.Name),
		Email:           form.Email,
		Phone:           phone,
		ParticipantType: models.ParticipantType(form.ParticipantType),
		Code:            p.codes.Generate(),
		AttendanceDays:  models.AttendanceDays,
		PaymentMethod:   models.PaymentCash,
		Amount:          nil,
	}
	if err := p.validator.ValidateParticipant(rec); err != nil {
		return models.Participant{}, err
	}
	return rec, nil
}

// Submit sends one registration. The form is expected to have passed the
// form-level rules already.
func (p *Pipeline) Submit(ctx context.Context, form models.RegistrationForm) (Outcome, error) {
	rec, err := p.Assemble(form)
	if err != nil {
		return Outcome{}, &SubmissionError{Kind: KindPayloadValidation, Err: err}
	}

	resp, err := p.sender.Send(ctx, rec)
	if err != nil {
		return Outcome{}, &SubmissionError{Kind: classify(err), Err: err}
	}

	p.notify(ctx, rec)
	return Outcome{Participant: rec, Response: resp}, nil
}

func classify(err error) Kind {
	var serr *httpapi.StatusError
	if errors.As(err, &serr) {
		if serr.StatusCode >= http.StatusBadRequest && serr.StatusCode < http.StatusInternalServerError {
			return KindRejected
		}
		return KindServer
	}
	return KindNetwork
}

func (p *Pipeline) notify(ctx context.Context, rec models.Participant) {
	for _, o := range p.observers {
		p.inflight.Add(1)
		go func(o Observer) {
			defer p.inflight.Done()
			octx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.observerTimeout)
			defer cancel()
			if err := o.ParticipantRegistered(octx, rec); err != nil {
				log.Printf("observer %s: code=%s: %v", o.Name(), rec.Code, err)
			}
		}(o)
	}
}

// Wait blocks until every observer started so far has returned, or ctx ends.
func (p *Pipeline) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
