package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mr "github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/medical_record"
	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/prescription"
)

func seedPatientAndDoctor(t *testing.T, env *testEnv) {
	t.Helper()
	ctx := context.Background()
	_, err := env.patientSvc.RegisterPatient(ctx, validPatientCommand())
	require.NoError(t, err)
	_, err = env.doctorSvc.RegisterDoctor(ctx, validDoctorCommand())
	require.NoError(t, err)
}

func TestAddRecord(t *testing.T) {
	env := newTestEnv(t)
	seedPatientAndDoctor(t, env)
	ctx := context.Background()

	r, err := env.recordSvc.AddRecord(ctx, &mr.CreateRecordCommand{
		PatientID:   "PAT-001",
		DoctorID:    "DOC-001",
		Diagnosis:   "Hypertension",
		TestResults: []string{"BP 150/95"},
		Type:        mr.TypeConsultation,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(r.ID, "MR-"))
	assert.Equal(t, mr.StatusActive, r.Status)
	assert.Equal(t, testNow, r.RecordDate)

	p, err := env.patientSvc.GetPatient(ctx, "PAT-001")
	require.NoError(t, err)
	assert.Equal(t, []string{r.ID}, p.MedicalRecordIDs)

	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.RecordsAdded.WithLabelValues("consultation")))
}

func TestAddRecord_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.recordSvc.AddRecord(ctx, &mr.CreateRecordCommand{PatientID: "PAT-001", Type: "dental"})
	assert.ErrorIs(t, err, mr.ErrInvalidRecordType)

	_, err = env.recordSvc.AddRecord(ctx, &mr.CreateRecordCommand{PatientID: "PAT-404", Type: mr.TypeImaging})
	assert.ErrorIs(t, err, patient.ErrPatientNotFound)
}

func TestRecordQueries_ExcludeDeleted(t *testing.T) {
	env := newTestEnv(t)
	seedPatientAndDoctor(t, env)
	ctx := context.Background()

	for _, cmd := range []*mr.CreateRecordCommand{
		{ID: "MR-1", PatientID: "PAT-001", Type: mr.TypeLabResult},
		{ID: "MR-2", PatientID: "PAT-001", Type: mr.TypeLabResult},
		{ID: "MR-3", PatientID: "PAT-001", Type: mr.TypeSurgery},
	} {
		_, err := env.recordSvc.AddRecord(ctx, cmd)
		require.NoError(t, err)
	}

	_, err := env.recordSvc.ArchiveRecord(ctx, "MR-3")
	require.NoError(t, err)
	require.NoError(t, env.recordSvc.DeleteRecord(ctx, "MR-1"))

	labs, err := env.recordSvc.GetRecordsByType(ctx, mr.TypeLabResult)
	require.NoError(t, err)
	require.Len(t, labs, 1)
	assert.Equal(t, "MR-2", labs[0].ID)

	n, err := env.recordSvc.GetTotalRecordCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = env.recordSvc.GetRecord(ctx, "MR-1")
	assert.ErrorIs(t, err, mr.ErrRecordNotFound)

	require.NoError(t, env.recordSvc.ClearAllRecords(ctx))
	forPatient, err := env.recordSvc.GetRecordsForPatient(ctx, "PAT-001")
	require.NoError(t, err)
	assert.Empty(t, forPatient)
}

func rxCommand() *prescription.IssuePrescriptionCommand {
	return &prescription.IssuePrescriptionCommand{
		ID:         "RX-001",
		PatientID:  "PAT-001",
		DoctorID:   "DOC-001",
		ExpiryDate: testNow.AddDate(0, 0, 30),
		Medications: []prescription.Medication{
			{Name: "Lisinopril", Dosage: "10mg", Quantity: 30, Frequency: "once daily"},
		},
		Instructions: "Take in the morning",
	}
}

func TestIssuePrescription(t *testing.T) {
	env := newTestEnv(t)
	seedPatientAndDoctor(t, env)
	ctx := context.Background()

	v, err := env.prescriptionSvc.IssuePrescription(ctx, rxCommand())
	require.NoError(t, err)
	assert.Equal(t, prescription.StatusActive, v.Status)
	assert.False(t, v.Expired)
	assert.Equal(t, 10, v.IssueDate.Day())

	_, err = env.prescriptionSvc.IssuePrescription(ctx, rxCommand())
	assert.ErrorIs(t, err, prescription.ErrPrescriptionAlreadyExists)

	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.PrescriptionsIssued))
}

func TestIssuePrescription_Validation(t *testing.T) {
	env := newTestEnv(t)
	seedPatientAndDoctor(t, env)

	cmd := rxCommand()
	cmd.ID = "001"
	cmd.Medications = nil
	cmd.ExpiryDate = testNow

	_, err := env.prescriptionSvc.IssuePrescription(context.Background(), cmd)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Fields, 3)
}

func TestIssuePrescription_UnknownDoctor(t *testing.T) {
	env := newTestEnv(t)
	seedPatientAndDoctor(t, env)
	cmd := rxCommand()
	cmd.DoctorID = "DOC-404"

	_, err := env.prescriptionSvc.IssuePrescription(context.Background(), cmd)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, prescription.ErrPrescriptionAlreadyExists)
}

func TestPrescriptionLifecycle(t *testing.T) {
	env := newTestEnv(t)
	seedPatientAndDoctor(t, env)
	ctx := context.Background()

	_, err := env.prescriptionSvc.IssuePrescription(ctx, rxCommand())
	require.NoError(t, err)

	// Expiry is date-derived and independent of the status.
	env.clock.WarpForward(31 * 24 * time.Hour)
	v, err := env.prescriptionSvc.GetPrescription(ctx, "RX-001")
	require.NoError(t, err)
	assert.True(t, v.Expired)
	assert.Equal(t, prescription.StatusActive, v.Status)

	v, err = env.prescriptionSvc.FulfillPrescription(ctx, "RX-001")
	require.NoError(t, err)
	assert.Equal(t, prescription.StatusFulfilled, v.Status)

	_, err = env.prescriptionSvc.CancelPrescription(ctx, "RX-001")
	assert.ErrorIs(t, err, prescription.ErrNotActive)

	v, err = env.prescriptionSvc.ExpirePrescription(ctx, "RX-001")
	require.NoError(t, err)
	assert.Equal(t, prescription.StatusExpired, v.Status)

	list, err := env.prescriptionSvc.ListForPatient(ctx, "PAT-001")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = env.prescriptionSvc.GetPrescription(ctx, "RX-404")
	assert.ErrorIs(t, err, prescription.ErrPrescriptionNotFound)
}
