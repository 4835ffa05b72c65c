package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/service"
)

type scheduleAppointmentRequest struct {
	PatientID   string    `json:"patient_id" binding:"required"`
	DoctorID    string    `json:"doctor_id" binding:"required"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	Reason      string    `json:"reason"`
	Notes       string    `json:"notes"`
}

func (h *Handler) ScheduleAppointment(c *gin.Context) {
	var req scheduleAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	p, err := h.patients.GetPatient(ctx, req.PatientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	d, err := h.doctors.GetDoctor(ctx, req.DoctorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	a, err := h.appointments.ScheduleAppointment(ctx, &appointment.ScheduleCommand{
		Patient:     p,
		Doctor:      d,
		ScheduledAt: req.ScheduledAt,
		Reason:      req.Reason,
		Notes:       req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, a)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	a, err := h.appointments.GetAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, a)
}

func (h *Handler) GetAppointmentsForDoctor(c *gin.Context) {
	ctx := c.Request.Context()
	d, err := h.doctors.GetDoctor(ctx, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	list, err := h.appointments.GetAppointmentsForDoctor(ctx, d)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, list)
}

func (h *Handler) GetAppointmentsForPatient(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := h.patients.GetPatient(ctx, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	list, err := h.appointments.GetAppointmentsForPatient(ctx, p)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, list)
}

type availabilityResponse struct {
	DoctorID  string    `json:"doctor_id"`
	At        time.Time `json:"at"`
	Available bool      `json:"available"`
}

func (h *Handler) IsTimeSlotAvailable(c *gin.Context) {
	at, ok := parseQueryTime(c, "at", time.RFC3339)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	d, err := h.doctors.GetDoctor(ctx, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	free, err := h.appointments.IsTimeSlotAvailable(ctx, d, at)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, availabilityResponse{DoctorID: d.ID, At: at, Available: free})
}

type slotResponse struct {
	Slot   appointment.TimeSlot `json:"slot"`
	Time   string               `json:"time"`
	Period string               `json:"period"`
	At     time.Time            `json:"at"`
}

func (h *Handler) AvailableSlots(c *gin.Context) {
	day, ok := parseQueryTime(c, "date", dateLayout)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	d, err := h.doctors.GetDoctor(ctx, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	slots, err := h.appointments.AvailableSlots(ctx, d, day)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := make([]slotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, slotResponse{Slot: s, Time: s.Time(), Period: s.Period(), At: s.At(day)})
	}
	respondOK(c, out)
}

func (h *Handler) ClearAllAppointments(c *gin.Context) {
	if err := h.appointments.ClearAllAppointments(c.Request.Context()); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type transitionFunc func(s *service.AppointmentService, ctx context.Context, id string) (*appointment.Appointment, error)

func (h *Handler) transition(fn transitionFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, err := fn(h.appointments, c.Request.Context(), c.Param("id"))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondOK(c, a)
	}
}
