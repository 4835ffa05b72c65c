package medical_record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordType_DisplayNames(t *testing.T) {
	assert.Equal(t, "Consultation", TypeConsultation.DisplayName())
	assert.Equal(t, "Lab Result", TypeLabResult.DisplayName())
	assert.Equal(t, "Follow-up", TypeFollowUp.DisplayName())
	assert.True(t, TypeSurgery.IsValid())
	assert.False(t, RecordType("dental").IsValid())
}

func TestMedicalRecord_AddTestResult_KeepsOrder(t *testing.T) {
	r := &MedicalRecord{ID: "MR-001", Status: StatusActive}
	r.AddTestResult("CBC: normal")
	r.AddTestResult("Lipid panel: elevated LDL")

	assert.Equal(t, []string{"CBC: normal", "Lipid panel: elevated LDL"}, r.TestResults)
}

func TestMedicalRecord_Archive(t *testing.T) {
	r := &MedicalRecord{ID: "MR-001", Status: StatusActive}
	r.Archive()
	assert.Equal(t, StatusArchived, r.Status)
	assert.Equal(t, "Archived", r.Status.DisplayName())
	assert.False(t, r.IsDeleted())
}

func TestMedicalRecord_MarkDeleted(t *testing.T) {
	r := &MedicalRecord{ID: "MR-001", Status: StatusArchived}
	r.MarkDeleted()
	assert.True(t, r.IsDeleted())
}

func TestMedicalRecord_Clone_DoesNotAlias(t *testing.T) {
	r := &MedicalRecord{ID: "MR-001"}
	r.AddTestResult("A")

	c := r.Clone()
	c.AddTestResult("B")
	assert.Equal(t, []string{"A"}, r.TestResults)
}
