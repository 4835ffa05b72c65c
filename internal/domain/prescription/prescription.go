package prescription

import (
	"time"

	"github.com/dmehra2102/prod-golang-projects/healthhub/pkg/clock"
)

type PrescriptionStatus string

const (
	StatusActive    PrescriptionStatus = "active"
	StatusExpired   PrescriptionStatus = "expired"
	StatusCancelled PrescriptionStatus = "cancelled"
	StatusFulfilled PrescriptionStatus = "fulfilled"
)

var statusNames = map[PrescriptionStatus]string{
	StatusActive:    "Active",
	StatusExpired:   "Expired",
	StatusCancelled: "Cancelled",
	StatusFulfilled: "Fulfilled",
}

func (s PrescriptionStatus) DisplayName() string {
	return statusNames[s]
}

// Medication is a value object; two medications are equal when all fields are.
type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"` // e.g. "500mg"
	Quantity  int    `json:"quantity"`
	Frequency string `json:"frequency"` // e.g. "twice daily"
}

type Prescription struct {
	ID        string `json:"id"`
	PatientID string `json:"patient_id"`
	DoctorID  string `json:"doctor_id"`

	// Calendar dates; the time of day is ignored.
	IssueDate  time.Time `json:"issue_date"`
	ExpiryDate time.Time `json:"expiry_date"`

	Medications  []Medication       `json:"medications"`
	Instructions string             `json:"instructions,omitempty"`
	Status       PrescriptionStatus `json:"status"`
}

func (p *Prescription) AddMedication(m Medication) {
	p.Medications = append(p.Medications, m)
}

// IsExpired reports whether today (per now) is after the expiry date. It does not
// look at Status.
func (p *Prescription) IsExpired(now time.Time) bool {
	if p.ExpiryDate.IsZero() {
		return false
	}
	return clock.Day(now).After(clock.Day(p.ExpiryDate))
}

// Expire sets the status without checking IsExpired; callers decide when a
// prescription should lapse.
func (p *Prescription) Expire() {
	p.Status = StatusExpired
}

func (p *Prescription) Cancel() error {
	if p.Status != StatusActive {
		return ErrNotActive
	}
	p.Status = StatusCancelled
	return nil
}

func (p *Prescription) Fulfill() error {
	if p.Status != StatusActive {
		return ErrNotActive
	}
	p.Status = StatusFulfilled
	return nil
}

func (p *Prescription) Clone() *Prescription {
	c := *p
	c.Medications = append([]Medication{}, p.Medications...)
	return &c
}

type IssuePrescriptionCommand struct {
	ID           string
	PatientID    string
	DoctorID     string
	IssueDate    time.Time
	ExpiryDate   time.Time
	Medications  []Medication
	Instructions string
}
