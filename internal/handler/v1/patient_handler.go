package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/patient"
)

type registerPatientRequest struct {
	ID          string `json:"id" binding:"required"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

func (h *Handler) RegisterPatient(c *gin.Context) {
	var req registerPatientRequest
	if !bindJSON(c, &req) {
		return
	}
	dob, ok := parseDate(c, "date_of_birth", req.DateOfBirth)
	if !ok {
		return
	}

	p, err := h.patients.RegisterPatient(c.Request.Context(), &patient.RegisterPatientCommand{
		ID:          req.ID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: dob,
		Email:       req.Email,
		Phone:       req.Phone,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, p)
}

func (h *Handler) ListPatients(c *gin.Context) {
	list, err := h.patients.ListPatients(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, list)
}

func (h *Handler) GetPatient(c *gin.Context) {
	p, err := h.patients.GetPatient(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

func (h *Handler) GetRecordsForPatient(c *gin.Context) {
	ctx := c.Request.Context()
	if _, err := h.patients.GetPatient(ctx, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	list, err := h.records.GetRecordsForPatient(ctx, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, list)
}

func (h *Handler) GetPrescriptionsForPatient(c *gin.Context) {
	ctx := c.Request.Context()
	if _, err := h.patients.GetPatient(ctx, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	list, err := h.prescriptions.ListForPatient(ctx, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, list)
}
