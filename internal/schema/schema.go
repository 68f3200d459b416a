// Package schema holds the validation rules for registration input.
//
// Two stages share one validator. The form stage is the loose pre-check run on
// what the attendee typed (phone 7 to 15 digits). The transport stage is the
// contract of the participants API and runs on the assembled record right
// before it is sent (phone at most 9 digits). Both rule sets live on the struct
// tags in package models.
package schema

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"congress-registration/internal/code"
	"congress-registration/internal/models"
)

type Stage string

const (
	StageForm      Stage = "form"
	StageTransport Stage = "transport"
)

// ValidationError maps each offending field to one human readable message.
type ValidationError struct {
	Stage  Stage
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s validation failed: %s", e.Stage, strings.Join(parts, "; "))
}

var digitsRe = regexp.MustCompile(`^\d+$`)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	must(v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		return digitsRe.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}))
	must(v.RegisterValidation("registration_code", func(fl validator.FieldLevel) bool {
		return code.Valid(fl.Field().String())
	}))
	must(v.RegisterValidation("participant_type", func(fl validator.FieldLevel) bool {
		return models.ParticipantType(fl.Field().String()).Valid()
	}))
	must(v.RegisterValidation("attendance_days", func(fl validator.FieldLevel) bool {
		return fl.Field().String() == models.AttendanceDays
	}))
	return &Validator{v: v}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Validate satisfies echo.Validator.
func (s *Validator) Validate(i interface{}) error {
	switch x := i.(type) {
	case *models.RegistrationForm:
		return s.ValidateForm(*x)
	case models.RegistrationForm:
		return s.ValidateForm(x)
	case *models.Participant:
		return s.ValidateParticipant(*x)
	case models.Participant:
		return s.ValidateParticipant(x)
	default:
		return s.check(StageForm, i)
	}
}

// ValidateForm runs the form stage rules on raw input.
func (s *Validator) ValidateForm(f models.RegistrationForm) error {
	return s.check(StageForm, f)
}

// ValidateParticipant runs the transport stage rules on an assembled record.
func (s *Validator) ValidateParticipant(p models.Participant) error {
	return s.check(StageTransport, p)
}

func (s *Validator) check(stage Stage, i interface{}) error {
	err := s.v.Struct(i)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := map[string]string{}
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = message(fe.Field(), fe.Tag())
	}
	return &ValidationError{Stage: stage, Fields: fields}
}

// NormalizeName trims, collapses inner whitespace and upper-cases a name.
func NormalizeName(s string) string {
	return cases.Upper(language.Spanish).String(strings.Join(strings.Fields(s), " "))
}

// ParsePhone coerces the digit string typed on the form into the numeric
// phone the API expects.
func ParsePhone(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, &ValidationError{
			Stage:  StageTransport,
			Fields: map[string]string{"phone": message("phone", "int")},
		}
	}
	return n, nil
}
