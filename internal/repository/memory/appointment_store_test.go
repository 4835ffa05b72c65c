package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/healthhub/pkg/clock"
)

var slotTime = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func newAppt(id, patientID, doctorID string, at time.Time) *appointment.Appointment {
	return &appointment.Appointment{
		ID:          id,
		PatientID:   patientID,
		DoctorID:    doctorID,
		ScheduledAt: at,
		Status:      appointment.StatusScheduled,
	}
}

func newTestAppointmentStore() *AppointmentStore {
	return NewAppointmentStore(clock.NewManaged(slotTime.Add(-24 * time.Hour)))
}

func TestAppointmentStore_Create_RejectsDoubleBooking(t *testing.T) {
	ctx := context.Background()
	s := newTestAppointmentStore()

	require.NoError(t, s.Create(ctx, newAppt("APT-1", "PAT-001", "DOC-001", slotTime)))

	err := s.Create(ctx, newAppt("APT-2", "PAT-002", "DOC-001", slotTime))
	assert.ErrorIs(t, err, appointment.ErrSlotUnavailable)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "failed create must leave the store unchanged")

	_, err = s.GetByID(ctx, "APT-2")
	assert.ErrorIs(t, err, appointment.ErrAppointmentNotFound)
}

func TestAppointmentStore_SlotIsPerDoctorAndExactInstant(t *testing.T) {
	ctx := context.Background()
	s := newTestAppointmentStore()

	require.NoError(t, s.Create(ctx, newAppt("APT-1", "PAT-001", "DOC-001", slotTime)))
	require.NoError(t, s.Create(ctx, newAppt("APT-2", "PAT-001", "DOC-002", slotTime)))
	require.NoError(t, s.Create(ctx, newAppt("APT-3", "PAT-002", "DOC-001", slotTime.Add(time.Minute))))

	free, err := s.IsSlotAvailable(ctx, "DOC-001", slotTime.Add(time.Second))
	require.NoError(t, err)
	assert.True(t, free)
}

func TestAppointmentStore_SameInstantDifferentLocation(t *testing.T) {
	ctx := context.Background()
	s := newTestAppointmentStore()
	require.NoError(t, s.Create(ctx, newAppt("APT-1", "PAT-001", "DOC-001", slotTime)))

	est := time.FixedZone("EST", -5*60*60)
	free, err := s.IsSlotAvailable(ctx, "DOC-001", slotTime.In(est))
	require.NoError(t, err)
	assert.False(t, free)
}

func TestAppointmentStore_CancelReleasesSlot(t *testing.T) {
	ctx := context.Background()
	s := newTestAppointmentStore()
	require.NoError(t, s.Create(ctx, newAppt("APT-1", "PAT-001", "DOC-001", slotTime)))

	a, err := s.UpdateStatus(ctx, "APT-1", appointment.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, appointment.StatusCancelled, a.Status)

	free, err := s.IsSlotAvailable(ctx, "DOC-001", slotTime)
	require.NoError(t, err)
	assert.True(t, free)

	require.NoError(t, s.Create(ctx, newAppt("APT-2", "PAT-002", "DOC-001", slotTime)))

	free, err = s.IsSlotAvailable(ctx, "DOC-001", slotTime)
	require.NoError(t, err)
	assert.False(t, free)

	list, err := s.ListByDoctor(ctx, "DOC-001")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, appointment.StatusCancelled, list[0].Status)
	assert.Equal(t, appointment.StatusScheduled, list[1].Status)
}

func TestAppointmentStore_CompletedAndNoShowHoldSlot(t *testing.T) {
	ctx := context.Background()
	s := newTestAppointmentStore()
	later := slotTime.Add(time.Hour)
	require.NoError(t, s.Create(ctx, newAppt("APT-1", "PAT-001", "DOC-001", slotTime)))
	require.NoError(t, s.Create(ctx, newAppt("APT-2", "PAT-002", "DOC-001", later)))

	_, err := s.UpdateStatus(ctx, "APT-1", appointment.StatusCompleted)
	require.NoError(t, err)
	_, err = s.UpdateStatus(ctx, "APT-2", appointment.StatusNoShow)
	require.NoError(t, err)

	for _, at := range []time.Time{slotTime, later} {
		free, err := s.IsSlotAvailable(ctx, "DOC-001", at)
		require.NoError(t, err)
		assert.False(t, free)
	}
}

func TestAppointmentStore_UpdateStatus_Errors(t *testing.T) {
	ctx := context.Background()
	s := newTestAppointmentStore()
	require.NoError(t, s.Create(ctx, newAppt("APT-1", "PAT-001", "DOC-001", slotTime)))

	_, err := s.UpdateStatus(ctx, "APT-404", appointment.StatusConfirmed)
	assert.ErrorIs(t, err, appointment.ErrAppointmentNotFound)

	_, err = s.UpdateStatus(ctx, "APT-1", appointment.StatusNoShow)
	require.NoError(t, err)

	_, err = s.UpdateStatus(ctx, "APT-1", appointment.StatusConfirmed)
	assert.ErrorIs(t, err, appointment.ErrInvalidStatusTransition)

	a, err := s.GetByID(ctx, "APT-1")
	require.NoError(t, err)
	assert.Equal(t, appointment.StatusNoShow, a.Status)
}

func TestAppointmentStore_CancelAfterCompleteReleasesSlot(t *testing.T) {
	ctx := context.Background()
	s := newTestAppointmentStore()
	require.NoError(t, s.Create(ctx, newAppt("APT-1", "PAT-001", "DOC-001", slotTime)))

	_, err := s.UpdateStatus(ctx, "APT-1", appointment.StatusCompleted)
	require.NoError(t, err)

	a, err := s.UpdateStatus(ctx, "APT-1", appointment.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, appointment.StatusCancelled, a.Status)

	free, err := s.IsSlotAvailable(ctx, "DOC-001", slotTime)
	require.NoError(t, err)
	assert.True(t, free)
}

func TestAppointmentStore_CompleteCancelledAfterRebook(t *testing.T) {
	ctx := context.Background()
	s := newTestAppointmentStore()
	require.NoError(t, s.Create(ctx, newAppt("APT-1", "PAT-001", "DOC-001", slotTime)))
	_, err := s.UpdateStatus(ctx, "APT-1", appointment.StatusCancelled)
	require.NoError(t, err)
	require.NoError(t, s.Create(ctx, newAppt("APT-2", "PAT-002", "DOC-001", slotTime)))

	// APT-1 now holds the slot again alongside APT-2.
	a, err := s.UpdateStatus(ctx, "APT-1", appointment.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, appointment.StatusCompleted, a.Status)

	_, err = s.UpdateStatus(ctx, "APT-2", appointment.StatusCancelled)
	require.NoError(t, err)

	free, err := s.IsSlotAvailable(ctx, "DOC-001", slotTime)
	require.NoError(t, err)
	assert.False(t, free, "APT-1 still holds the slot")

	_, err = s.UpdateStatus(ctx, "APT-1", appointment.StatusCancelled)
	require.NoError(t, err)

	free, err = s.IsSlotAvailable(ctx, "DOC-001", slotTime)
	require.NoError(t, err)
	assert.True(t, free)
}

func TestAppointmentStore_RepeatedCancelIsHarmless(t *testing.T) {
	ctx := context.Background()
	s := newTestAppointmentStore()
	require.NoError(t, s.Create(ctx, newAppt("APT-1", "PAT-001", "DOC-001", slotTime)))
	_, err := s.UpdateStatus(ctx, "APT-1", appointment.StatusCancelled)
	require.NoError(t, err)
	require.NoError(t, s.Create(ctx, newAppt("APT-2", "PAT-002", "DOC-001", slotTime)))

	_, err = s.UpdateStatus(ctx, "APT-1", appointment.StatusCancelled)
	require.NoError(t, err)

	free, err := s.IsSlotAvailable(ctx, "DOC-001", slotTime)
	require.NoError(t, err)
	assert.False(t, free, "cancelling APT-1 again must not release APT-2's slot")
}

func TestAppointmentStore_UpdateStatus_StampsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	c := clock.NewManaged(slotTime.Add(-time.Hour))
	s := NewAppointmentStore(c)
	require.NoError(t, s.Create(ctx, newAppt("APT-1", "PAT-001", "DOC-001", slotTime)))

	now := c.WarpForward(10 * time.Minute)
	a, err := s.UpdateStatus(ctx, "APT-1", appointment.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, now, a.UpdatedAt)
}

func TestAppointmentStore_ListsKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestAppointmentStore()

	// Interleave two doctors and two patients, out of chronological order.
	require.NoError(t, s.Create(ctx, newAppt("APT-1", "PAT-001", "DOC-001", slotTime.Add(3*time.Hour))))
	require.NoError(t, s.Create(ctx, newAppt("APT-2", "PAT-002", "DOC-002", slotTime)))
	require.NoError(t, s.Create(ctx, newAppt("APT-3", "PAT-002", "DOC-001", slotTime)))
	require.NoError(t, s.Create(ctx, newAppt("APT-4", "PAT-001", "DOC-002", slotTime.Add(time.Hour))))
	require.NoError(t, s.Create(ctx, newAppt("APT-5", "PAT-001", "DOC-001", slotTime.Add(time.Hour))))

	ids := func(list []*appointment.Appointment) []string {
		out := make([]string, 0, len(list))
		for _, a := range list {
			out = append(out, a.ID)
		}
		return out
	}

	byDoc, err := s.ListByDoctor(ctx, "DOC-001")
	require.NoError(t, err)
	assert.Equal(t, []string{"APT-1", "APT-3", "APT-5"}, ids(byDoc))

	byPat, err := s.ListByPatient(ctx, "PAT-001")
	require.NoError(t, err)
	assert.Equal(t, []string{"APT-1", "APT-4", "APT-5"}, ids(byPat))

	none, err := s.ListByDoctor(ctx, "DOC-999")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAppointmentStore_ReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	s := newTestAppointmentStore()
	a := newAppt("APT-1", "PAT-001", "DOC-001", slotTime)
	require.NoError(t, s.Create(ctx, a))

	a.Status = appointment.StatusCancelled
	got, err := s.GetByID(ctx, "APT-1")
	require.NoError(t, err)
	got.Reason = "mutated"

	again, err := s.GetByID(ctx, "APT-1")
	require.NoError(t, err)
	assert.Equal(t, appointment.StatusScheduled, again.Status)
	assert.Empty(t, again.Reason)
}

func TestAppointmentStore_Clear(t *testing.T) {
	ctx := context.Background()
	s := newTestAppointmentStore()
	require.NoError(t, s.Create(ctx, newAppt("APT-1", "PAT-001", "DOC-001", slotTime)))

	require.NoError(t, s.Clear(ctx))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	free, err := s.IsSlotAvailable(ctx, "DOC-001", slotTime)
	require.NoError(t, err)
	assert.True(t, free)

	list, err := s.ListByPatient(ctx, "PAT-001")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAppointmentStore_StoresAreIsolated(t *testing.T) {
	ctx := context.Background()
	a, b := newTestAppointmentStore(), newTestAppointmentStore()
	require.NoError(t, a.Create(ctx, newAppt("APT-1", "PAT-001", "DOC-001", slotTime)))

	require.NoError(t, b.Create(ctx, newAppt("APT-1", "PAT-001", "DOC-001", slotTime)))
	require.NoError(t, b.Clear(ctx))

	n, err := a.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAppointmentStore_ConcurrentCreate_SameSlot(t *testing.T) {
	ctx := context.Background()
	s := newTestAppointmentStore()

	const workers = 64
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		conflicts atomic.Int32
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := s.Create(ctx, newAppt(fmt.Sprintf("APT-%d", i), fmt.Sprintf("PAT-%03d", i), "DOC-001", slotTime))
			switch err {
			case nil:
				successes.Add(1)
			case appointment.ErrSlotUnavailable:
				conflicts.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, successes.Load())
	assert.EqualValues(t, workers-1, conflicts.Load())

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAppointmentStore_CancelledContext(t *testing.T) {
	s := newTestAppointmentStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Create(ctx, newAppt("APT-1", "PAT-001", "DOC-001", slotTime)), context.Canceled)
}
