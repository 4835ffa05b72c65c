package appointment

import (
	"time"

	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/doctor"
	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/patient"
)

// Cancel and Complete overwrite the status from any state. The other moves are
// guarded:
//
//	scheduled → confirmed → in_progress
//	scheduled → in_progress
//	scheduled | confirmed → no_show
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

var statusNames = map[Status]string{
	StatusScheduled:  "Scheduled",
	StatusConfirmed:  "Confirmed",
	StatusInProgress: "In Progress",
	StatusCompleted:  "Completed",
	StatusCancelled:  "Cancelled",
	StatusNoShow:     "No Show",
}

var transitions = map[Status][]Status{
	StatusScheduled: {StatusConfirmed, StatusInProgress, StatusNoShow},
	StatusConfirmed: {StatusInProgress, StatusNoShow},
}

func Statuses() []Status {
	return []Status{StatusScheduled, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow}
}

func (s Status) IsValid() bool {
	_, ok := statusNames[s]
	return ok
}

func (s Status) DisplayName() string {
	return statusNames[s]
}

// HoldsSlot reports whether an appointment in this status blocks its slot. Only
// cancellation frees a slot; completed and no-show appointments keep holding it.
func (s Status) HoldsSlot() bool {
	return s != StatusCancelled
}

type Appointment struct {
	ID          string    `json:"id"`
	PatientID   string    `json:"patient_id"`
	DoctorID    string    `json:"doctor_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      Status    `json:"status"`
	Reason      string    `json:"reason,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (a *Appointment) Slot() Slot {
	return SlotOf(a.DoctorID, a.ScheduledAt)
}

// overwrites are applied regardless of the current status.
func isOverwrite(next Status) bool {
	return next == StatusCancelled || next == StatusCompleted
}

func (a *Appointment) CanTransitionTo(next Status) bool {
	if isOverwrite(next) {
		return true
	}
	for _, s := range transitions[a.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// TransitionTo moves the appointment to next or returns ErrInvalidStatusTransition.
func (a *Appointment) TransitionTo(next Status, at time.Time) error {
	switch {
	case next == StatusCancelled:
		a.Cancel(at)
	case next == StatusCompleted:
		a.Complete(at)
	case a.CanTransitionTo(next):
		a.Status = next
		a.UpdatedAt = at
	default:
		return ErrInvalidStatusTransition
	}
	return nil
}

func (a *Appointment) Cancel(at time.Time) {
	a.Status = StatusCancelled
	a.UpdatedAt = at
}

// Complete sets the status even on a cancelled appointment; callers that care must
// check first.
func (a *Appointment) Complete(at time.Time) {
	a.Status = StatusCompleted
	a.UpdatedAt = at
}

func (a *Appointment) Clone() *Appointment {
	c := *a
	return &c
}

// Slot is the uniqueness key for scheduling collisions: a doctor at an exact instant.
type Slot struct {
	DoctorID string
	At       time.Time
}

// SlotOf normalises at to UTC without a monotonic reading so that equal instants map
// to equal keys.
func SlotOf(doctorID string, at time.Time) Slot {
	return Slot{DoctorID: doctorID, At: at.UTC().Round(0)}
}

type ScheduleCommand struct {
	Patient     *patient.Patient
	Doctor      *doctor.Doctor
	ScheduledAt time.Time
	Reason      string
	Notes       string
}
