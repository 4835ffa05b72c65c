package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/prescription"
)

type medicationRequest struct {
	Name      string `json:"name" binding:"required"`
	Dosage    string `json:"dosage"`
	Quantity  int    `json:"quantity"`
	Frequency string `json:"frequency"`
}

type issuePrescriptionRequest struct {
	ID           string              `json:"id"`
	PatientID    string              `json:"patient_id"`
	DoctorID     string              `json:"doctor_id"`
	IssueDate    string              `json:"issue_date"`
	ExpiryDate   string              `json:"expiry_date"`
	Medications  []medicationRequest `json:"medications" binding:"dive"`
	Instructions string              `json:"instructions"`
}

func (h *Handler) IssuePrescription(c *gin.Context) {
	var req issuePrescriptionRequest
	if !bindJSON(c, &req) {
		return
	}
	issued, ok := parseDate(c, "issue_date", req.IssueDate)
	if !ok {
		return
	}
	expiry, ok := parseDate(c, "expiry_date", req.ExpiryDate)
	if !ok {
		return
	}

	meds := make([]prescription.Medication, 0, len(req.Medications))
	for _, m := range req.Medications {
		meds = append(meds, prescription.Medication(m))
	}

	v, err := h.prescriptions.IssuePrescription(c.Request.Context(), &prescription.IssuePrescriptionCommand{
		ID:           req.ID,
		PatientID:    req.PatientID,
		DoctorID:     req.DoctorID,
		IssueDate:    issued,
		ExpiryDate:   expiry,
		Medications:  meds,
		Instructions: req.Instructions,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, v)
}

func (h *Handler) GetPrescription(c *gin.Context) {
	v, err := h.prescriptions.GetPrescription(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, v)
}

func (h *Handler) ExpirePrescription(c *gin.Context) {
	v, err := h.prescriptions.ExpirePrescription(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, v)
}

func (h *Handler) CancelPrescription(c *gin.Context) {
	v, err := h.prescriptions.CancelPrescription(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, v)
}

func (h *Handler) FulfillPrescription(c *gin.Context) {
	v, err := h.prescriptions.FulfillPrescription(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, v)
}
