package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/doctor"
	mr "github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/medical_record"
	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/prescription"
	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/service"
)

const dateLayout = "2006-01-02"

type APIResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type ValidationErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse[any]{Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, APIResponse[any]{Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

func respondServiceError(c *gin.Context, err error) {
	var validErr *service.ValidationError
	if errors.As(err, &validErr) {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:  "validation failed",
			Fields: validErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, patient.ErrPatientNotFound),
		errors.Is(err, doctor.ErrDoctorNotFound),
		errors.Is(err, appointment.ErrAppointmentNotFound),
		errors.Is(err, mr.ErrRecordNotFound),
		errors.Is(err, prescription.ErrPrescriptionNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, appointment.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: "SLOT_UNAVAILABLE"})

	case errors.Is(err, patient.ErrPatientAlreadyExists),
		errors.Is(err, doctor.ErrDoctorAlreadyExists),
		errors.Is(err, prescription.ErrPrescriptionAlreadyExists):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	case errors.Is(err, appointment.ErrInvalidStatusTransition),
		errors.Is(err, appointment.ErrPatientRequired),
		errors.Is(err, appointment.ErrDoctorRequired),
		errors.Is(err, prescription.ErrNotActive),
		errors.Is(err, mr.ErrInvalidRecordType):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return false
	}

	return true
}

// parseDate accepts an empty string as the zero time.
func parseDate(c *gin.Context, field, raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid "+field+": must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return t, true
}

func parseQueryTime(c *gin.Context, key, layout string) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		respondError(c, http.StatusBadRequest, key+" query parameter is required")
		return time.Time{}, false
	}
	t, err := time.Parse(layout, raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid "+key+": "+err.Error())
		return time.Time{}, false
	}
	return t, true
}
