package doctor

import (
	"slices"
	"strings"
)

// Specialization is the clinic's catalogue of departments. Doctor.Specialization stays
// free text; the catalogue only supplies display names for known values.
type Specialization string

const (
	SpecializationCardiology  Specialization = "cardiology"
	SpecializationNeurology   Specialization = "neurology"
	SpecializationPediatrics  Specialization = "pediatrics"
	SpecializationOrthopedics Specialization = "orthopedics"
	SpecializationDermatology Specialization = "dermatology"
	SpecializationGeneral     Specialization = "general"
)

var specializationNames = map[Specialization]string{
	SpecializationCardiology:  "Cardiology",
	SpecializationNeurology:   "Neurology",
	SpecializationPediatrics:  "Pediatrics",
	SpecializationOrthopedics: "Orthopedics",
	SpecializationDermatology: "Dermatology",
	SpecializationGeneral:     "General Practice",
}

// Specializations lists the catalogue in a stable order.
func Specializations() []Specialization {
	return []Specialization{
		SpecializationCardiology,
		SpecializationNeurology,
		SpecializationPediatrics,
		SpecializationOrthopedics,
		SpecializationDermatology,
		SpecializationGeneral,
	}
}

func (s Specialization) DisplayName() string {
	return specializationNames[s]
}

func (s Specialization) IsValid() bool {
	_, ok := specializationNames[s]
	return ok
}

// ParseSpecialization matches free text against the catalogue by key or display name,
// ignoring case and surrounding space.
func ParseSpecialization(s string) (Specialization, bool) {
	s = strings.TrimSpace(s)
	for _, sp := range Specializations() {
		if strings.EqualFold(s, string(sp)) || strings.EqualFold(s, sp.DisplayName()) {
			return sp, true
		}
	}
	return "", false
}

type Doctor struct {
	ID             string `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Specialization string `json:"specialization"`
	LicenseNumber  string `json:"license_number"`

	// Set of patient IDs; order of first assignment is kept.
	PatientIDs []string `json:"patient_ids"`
}

func New(id, licenseNumber string) *Doctor {
	return &Doctor{
		ID:            id,
		LicenseNumber: licenseNumber,
		PatientIDs:    []string{},
	}
}

// Equal compares identity only.
func (d *Doctor) Equal(other *Doctor) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.ID == other.ID
}

// Department is the catalogue display name for the doctor's specialization, or "" when
// the free text matches no known department.
func (d *Doctor) Department() string {
	if sp, ok := ParseSpecialization(d.Specialization); ok {
		return sp.DisplayName()
	}
	return ""
}

func (d *Doctor) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// AddPatient is a no-op when the patient is already assigned.
func (d *Doctor) AddPatient(patientID string) {
	if d.HasPatient(patientID) {
		return
	}
	d.PatientIDs = append(d.PatientIDs, patientID)
}

func (d *Doctor) RemovePatient(patientID string) {
	d.PatientIDs = slices.DeleteFunc(d.PatientIDs, func(id string) bool {
		return id == patientID
	})
}

func (d *Doctor) HasPatient(patientID string) bool {
	return slices.Contains(d.PatientIDs, patientID)
}

func (d *Doctor) Clone() *Doctor {
	c := *d
	c.PatientIDs = append([]string{}, d.PatientIDs...)
	return &c
}

type RegisterDoctorCommand struct {
	ID             string
	FirstName      string
	LastName       string
	Specialization string
	LicenseNumber  string
}
