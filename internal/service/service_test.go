package service

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/repository/memory"
	"github.com/dmehra2102/prod-golang-projects/healthhub/pkg/clock"
	"github.com/dmehra2102/prod-golang-projects/healthhub/pkg/metrics"
)

var testNow = time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

type testEnv struct {
	clock   *clock.ManagedClock
	metrics *metrics.Collector

	audits        *memory.AuditStore
	appointments  *memory.AppointmentStore
	patients      *memory.PatientStore
	doctors       *memory.DoctorStore
	records       *memory.MedicalRecordStore
	prescriptions *memory.PrescriptionStore

	auditSvc        *AuditService
	appointmentSvc  *AppointmentService
	patientSvc      *PatientService
	doctorSvc       *DoctorService
	recordSvc       *MedicalRecordService
	prescriptionSvc *PrescriptionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := zap.NewNop()
	env := &testEnv{
		clock:         clock.NewManaged(testNow),
		metrics:       metrics.NewCollector("healthhub", prometheus.NewRegistry()),
		audits:        memory.NewAuditStore(0),
		patients:      memory.NewPatientStore(),
		doctors:       memory.NewDoctorStore(),
		records:       memory.NewMedicalRecordStore(),
		prescriptions: memory.NewPrescriptionStore(),
	}
	env.appointments = memory.NewAppointmentStore(env.clock)

	env.auditSvc = NewAuditService(env.audits, env.metrics, env.clock, log)
	t.Cleanup(env.auditSvc.Shutdown)

	env.appointmentSvc = NewAppointmentService(env.appointments, env.clock, env.auditSvc, env.metrics, log)
	env.patientSvc = NewPatientService(env.patients, env.clock, env.auditSvc, env.metrics, log)
	env.doctorSvc = NewDoctorService(env.doctors, env.patients, env.auditSvc, env.metrics, log)
	env.recordSvc = NewMedicalRecordService(env.records, env.patients, env.clock, env.auditSvc, env.metrics, log)
	env.prescriptionSvc = NewPrescriptionService(env.prescriptions, env.patients, env.doctors, env.clock, env.auditSvc, env.metrics, log)
	return env
}
