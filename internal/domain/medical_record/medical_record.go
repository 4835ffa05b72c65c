package medical_record

import (
	"time"
)

type RecordType string

const (
	TypeConsultation RecordType = "consultation"
	TypeLabResult    RecordType = "lab_result"
	TypeImaging      RecordType = "imaging"
	TypeSurgery      RecordType = "surgery"
	TypeEmergency    RecordType = "emergency"
	TypeFollowUp     RecordType = "follow_up"
)

var typeNames = map[RecordType]string{
	TypeConsultation: "Consultation",
	TypeLabResult:    "Lab Result",
	TypeImaging:      "Imaging",
	TypeSurgery:      "Surgery",
	TypeEmergency:    "Emergency",
	TypeFollowUp:     "Follow-up",
}

func (t RecordType) IsValid() bool {
	_, ok := typeNames[t]
	return ok
}

func (t RecordType) DisplayName() string {
	return typeNames[t]
}

type RecordStatus string

const (
	StatusActive   RecordStatus = "active"
	StatusArchived RecordStatus = "archived"
	// StatusDeleted is a soft delete: the record stays stored but is hidden from
	// every listing and count.
	StatusDeleted RecordStatus = "deleted"
)

var statusNames = map[RecordStatus]string{
	StatusActive:   "Active",
	StatusArchived: "Archived",
	StatusDeleted:  "Deleted",
}

func (s RecordStatus) DisplayName() string {
	return statusNames[s]
}

type MedicalRecord struct {
	ID         string    `json:"id"`
	PatientID  string    `json:"patient_id"`
	DoctorID   string    `json:"doctor_id"`
	RecordDate time.Time `json:"record_date"`

	Diagnosis string `json:"diagnosis,omitempty"`
	Symptoms  string `json:"symptoms,omitempty"`
	Treatment string `json:"treatment,omitempty"`

	// Append-only, in the order results arrived.
	TestResults []string `json:"test_results"`

	Type   RecordType   `json:"type"`
	Status RecordStatus `json:"status"`
}

func (r *MedicalRecord) AddTestResult(result string) {
	r.TestResults = append(r.TestResults, result)
}

func (r *MedicalRecord) Archive() {
	r.Status = StatusArchived
}

func (r *MedicalRecord) MarkDeleted() {
	r.Status = StatusDeleted
}

func (r *MedicalRecord) IsDeleted() bool {
	return r.Status == StatusDeleted
}

func (r *MedicalRecord) Clone() *MedicalRecord {
	c := *r
	c.TestResults = append([]string{}, r.TestResults...)
	return &c
}

type CreateRecordCommand struct {
	ID          string
	PatientID   string
	DoctorID    string
	RecordDate  time.Time
	Diagnosis   string
	Symptoms    string
	Treatment   string
	TestResults []string
	Type        RecordType
}
