package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/doctor"
)

// doctorResponse adds the catalogue department to the stored doctor.
type doctorResponse struct {
	*doctor.Doctor
	Department string `json:"department,omitempty"`
}

func newDoctorResponse(d *doctor.Doctor) doctorResponse {
	return doctorResponse{Doctor: d, Department: d.Department()}
}

type specializationResponse struct {
	Code        doctor.Specialization `json:"code"`
	DisplayName string                `json:"display_name"`
}

func (h *Handler) ListSpecializations(c *gin.Context) {
	all := doctor.Specializations()
	out := make([]specializationResponse, 0, len(all))
	for _, sp := range all {
		out = append(out, specializationResponse{Code: sp, DisplayName: sp.DisplayName()})
	}
	respondOK(c, out)
}

type registerDoctorRequest struct {
	ID             string `json:"id" binding:"required"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Specialization string `json:"specialization"`
	LicenseNumber  string `json:"license_number"`
}

func (h *Handler) RegisterDoctor(c *gin.Context) {
	var req registerDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.doctors.RegisterDoctor(c.Request.Context(), &doctor.RegisterDoctorCommand{
		ID:             req.ID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Specialization: req.Specialization,
		LicenseNumber:  req.LicenseNumber,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, newDoctorResponse(d))
}

func (h *Handler) ListDoctors(c *gin.Context) {
	list, err := h.doctors.ListDoctors(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := make([]doctorResponse, 0, len(list))
	for _, d := range list {
		out = append(out, newDoctorResponse(d))
	}
	respondOK(c, out)
}

func (h *Handler) GetDoctor(c *gin.Context) {
	d, err := h.doctors.GetDoctor(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, newDoctorResponse(d))
}

type assignPatientRequest struct {
	PatientID string `json:"patient_id" binding:"required"`
}

func (h *Handler) AssignPatient(c *gin.Context) {
	var req assignPatientRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.doctors.AssignPatient(c.Request.Context(), c.Param("id"), req.PatientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, newDoctorResponse(d))
}

func (h *Handler) UnassignPatient(c *gin.Context) {
	d, err := h.doctors.UnassignPatient(c.Request.Context(), c.Param("id"), c.Param("patientId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, newDoctorResponse(d))
}
