package models

// ParticipantType is the attendee category picked on the form.
type ParticipantType string

const (
	Sponsor           ParticipantType = "AUSPICIADOR"
	Authority         ParticipantType = "AUTORIDAD"
	MediaPartner      ParticipantType = "MEDIA_PARTNER"
	UniversityStudent ParticipantType = "ALUMNO_UNIVERSITARIO"
)

// ParticipantTypes lists the accepted types in the order the form shows them.
var ParticipantTypes = []ParticipantType{Sponsor, Authority, MediaPartner, UniversityStudent}

func (t ParticipantType) Label() string {
	switch t {
	case Sponsor:
		return "Auspiciador"
	case Authority:
		return "Autoridad"
	case MediaPartner:
		return "Media Partner"
	case UniversityStudent:
		return "Alumno Universitario"
	default:
		return string(t)
	}
}

func (t ParticipantType) Valid() bool {
	for _, v := range ParticipantTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Fixed values sent with every registration. They are not user-editable.
const (
	AttendanceDays = "1,2,3"
	PaymentCash    = "CASH"
)

// RegistrationForm is the raw input as typed by the attendee.
type RegistrationForm struct {
	Name            string `form:"name" json:"name" validate:"required,notblank"`
	Email           string `form:"email" json:"email" validate:"required,email"`
	Phone           string `form:"phone" json:"phone" validate:"required,digits,min=7,max=15"`
	ParticipantType string `form:"participantType" json:"participantType" validate:"required,participant_type"`
	Code            string `form:"code" json:"code,omitempty"`
}

// Participant is the record posted to the participants API.
type Participant struct {
	Name            string          `json:"name" validate:"required"`
	Email           string          `json:"email" validate:"required,email"`
	Phone           int64           `json:"phone" validate:"gt=0,lte=999999999"`
	ParticipantType ParticipantType `json:"participantType" validate:"participant_type"`
	Code            string          `json:"code" validate:"required,registration_code"`
	AttendanceDays  string          `json:"attendanceDays" validate:"attendance_days"`
	PaymentMethod   string          `json:"paymentMethod" validate:"eq=CASH"`
	Amount          *float64        `json:"amount"`
}
