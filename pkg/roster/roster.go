// Package roster loads the clinic's starting list of doctors and patients from YAML.
package roster

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/doctor"
	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/patient"
)

const dateLayout = "2006-01-02"

type Roster struct {
	Doctors  []Doctor  `yaml:"doctors"`
	Patients []Patient `yaml:"patients"`
}

type Doctor struct {
	ID             string `yaml:"id"`
	FirstName      string `yaml:"first_name"`
	LastName       string `yaml:"last_name"`
	Specialization string `yaml:"specialization"`
	LicenseNumber  string `yaml:"license_number"`
}

type Patient struct {
	ID          string `yaml:"id"`
	FirstName   string `yaml:"first_name"`
	LastName    string `yaml:"last_name"`
	DateOfBirth string `yaml:"date_of_birth"`
	Email       string `yaml:"email"`
	Phone       string `yaml:"phone"`
}

// Problem is one validation failure, located by section and entry index.
type Problem struct {
	Section string
	Index   int
	ID      string
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s[%d] (%s): %s", p.Section, p.Index, p.ID, p.Message)
}

func Load(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster %s: %w", path, err)
	}
	return Parse(bytes.NewReader(data))
}

func Parse(r io.Reader) (*Roster, error) {
	var ro Roster
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ro); err != nil {
		if errors.Is(err, io.EOF) {
			return &ro, nil
		}
		return nil, fmt.Errorf("decoding roster: %w", err)
	}
	return &ro, nil
}

// Validate runs the domain validators over every entry. IDs must be unique within a
// section. An empty result means the roster can be loaded as-is.
func (ro *Roster) Validate(now time.Time) []Problem {
	var problems []Problem
	add := func(section string, i int, id, msg string) {
		problems = append(problems, Problem{Section: section, Index: i, ID: id, Message: msg})
	}

	seen := make(map[string]bool)
	for i, d := range ro.Doctors {
		if strings.TrimSpace(d.ID) == "" {
			add("doctors", i, d.ID, "id is required")
		} else if seen[d.ID] {
			add("doctors", i, d.ID, "duplicate id")
		}
		seen[d.ID] = true
		if !doctor.IsValidLicenseNumber(d.LicenseNumber) {
			add("doctors", i, d.ID, fmt.Sprintf("invalid license number %q", d.LicenseNumber))
		}
		if !doctor.IsValidSpecialization(d.Specialization) {
			add("doctors", i, d.ID, "specialization is required")
		}
	}

	seen = make(map[string]bool)
	for i, p := range ro.Patients {
		if !patient.IsValidPatientID(p.ID) {
			add("patients", i, p.ID, "id is required")
		} else if seen[p.ID] {
			add("patients", i, p.ID, "duplicate id")
		}
		seen[p.ID] = true
		if dob, err := time.Parse(dateLayout, p.DateOfBirth); err != nil {
			add("patients", i, p.ID, fmt.Sprintf("date_of_birth %q is not YYYY-MM-DD", p.DateOfBirth))
		} else if dob.After(now) {
			add("patients", i, p.ID, patient.ErrInvalidDateOfBirth.Error())
		}
		if p.Email != "" && !patient.IsValidEmail(p.Email) {
			add("patients", i, p.ID, fmt.Sprintf("invalid email %q", p.Email))
		}
		if p.Phone != "" && !patient.IsValidPhoneNumber(p.Phone) {
			add("patients", i, p.ID, fmt.Sprintf("invalid phone %q", p.Phone))
		}
	}

	return problems
}

func (ro *Roster) DoctorCommands() []*doctor.RegisterDoctorCommand {
	cmds := make([]*doctor.RegisterDoctorCommand, 0, len(ro.Doctors))
	for _, d := range ro.Doctors {
		cmds = append(cmds, &doctor.RegisterDoctorCommand{
			ID:             d.ID,
			FirstName:      d.FirstName,
			LastName:       d.LastName,
			Specialization: d.Specialization,
			LicenseNumber:  d.LicenseNumber,
		})
	}
	return cmds
}

// PatientCommands converts patient entries; an unparsable date of birth becomes the
// zero time and is rejected at registration.
func (ro *Roster) PatientCommands() []*patient.RegisterPatientCommand {
	cmds := make([]*patient.RegisterPatientCommand, 0, len(ro.Patients))
	for _, p := range ro.Patients {
		dob, _ := time.Parse(dateLayout, p.DateOfBirth)
		cmds = append(cmds, &patient.RegisterPatientCommand{
			ID:          p.ID,
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			DateOfBirth: dob,
			Email:       p.Email,
			Phone:       p.Phone,
		})
	}
	return cmds
}
