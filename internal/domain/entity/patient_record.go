package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PatientRecord is the unit of editing. Physician, visit and prescription data
// are carried inline and split across the four tables only when written.
type PatientRecord struct {
	PatientID    string           `json:"patient_id"`
	FirstName    string           `json:"first_name"`
	LastName     string           `json:"last_name"`
	Location     string           `json:"location"`
	Phone        string           `json:"phone"`
	Address      string           `json:"address"`
	Email        string           `json:"email"`
	Age          *int             `json:"age,omitempty"`
	Gender       Gender           `json:"gender"`
	Physician    PhysicianInfo    `json:"physician"`
	Visit        VisitInfo        `json:"visit"`
	Prescription PrescriptionInfo `json:"prescription"`
}

// PhysicianInfo is keyed by its own identifier in the physician table.
type PhysicianInfo struct {
	PhysicianID string `json:"physician_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Phone       string `json:"phone"`
}

// VisitInfo dates are calendar dates; the zero time means "no date".
type VisitInfo struct {
	AppointmentID string              `json:"appointment_id"`
	VisitDate     time.Time           `json:"visit_date"`
	NextVisit     time.Time           `json:"next_visit"`
	Bill          decimal.NullDecimal `json:"bill"`
}

// PrescriptionInfo is tied to the (physician, patient) pair and has no identifier of its own.
type PrescriptionInfo struct {
	Drug string `json:"drug"`
	Dose string `json:"dose"`
}

// NewDraft returns an empty record carrying freshly issued identifiers.
func NewDraft(patientID, appointmentID string) PatientRecord {
	return PatientRecord{
		PatientID: patientID,
		Visit:     VisitInfo{AppointmentID: appointmentID},
	}
}

// FullName joins first and last name with a single space.
func (p PatientRecord) FullName() string {
	return p.FirstName + " " + p.LastName
}

type Gender string

const (
	GenderUnspecified Gender = ""
	GenderMale        Gender = "Male"
	GenderFemale      Gender = "Female"
	GenderOther       Gender = "Other"
)

// ParseGender is case-insensitive; unknown values are unspecified.
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale
	case "female", "f":
		return GenderFemale
	case "other":
		return GenderOther
	default:
		return GenderUnspecified
	}
}

// CalendarDate drops the time of day, keeping the year, month and day as seen in t's location.
func CalendarDate(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay compares two dates by calendar value. Two zero dates are equal.
func SameDay(a, b time.Time) bool {
	return CalendarDate(a).Equal(CalendarDate(b))
}
