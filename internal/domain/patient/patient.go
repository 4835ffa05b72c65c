package patient

import (
	"strings"
	"time"
)

type ContactInfo struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type Patient struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DateOfBirth time.Time `json:"date_of_birth"`

	ContactInfo

	// Append-only; records are referenced by ID, never owned.
	MedicalRecordIDs []string `json:"medical_record_ids"`
}

type Option func(*Patient)

func WithEmail(email string) Option {
	return func(p *Patient) { p.Email = email }
}

func WithPhoneNumber(phone string) Option {
	return func(p *Patient) { p.Phone = phone }
}

func New(id, firstName, lastName string, dateOfBirth time.Time, opts ...Option) *Patient {
	p := &Patient{
		ID:               id,
		FirstName:        firstName,
		LastName:         lastName,
		DateOfBirth:      dateOfBirth,
		MedicalRecordIDs: []string{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Equal compares identity only.
func (p *Patient) Equal(other *Patient) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.ID == other.ID
}

func (p *Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Age is the difference in calendar years between now and the date of birth. It does
// not account for whether the birthday has passed this year.
func (p *Patient) Age(now time.Time) int {
	return now.Year() - p.DateOfBirth.Year()
}

func (p *Patient) AddMedicalRecord(recordID string) {
	p.MedicalRecordIDs = append(p.MedicalRecordIDs, recordID)
}

// Clone returns a deep copy.
func (p *Patient) Clone() *Patient {
	c := *p
	c.MedicalRecordIDs = append([]string{}, p.MedicalRecordIDs...)
	return &c
}

type RegisterPatientCommand struct {
	ID          string
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Email       string
	Phone       string
}
