package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	mr "github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/medical_record"
)

type addRecordRequest struct {
	ID          string   `json:"id"`
	PatientID   string   `json:"patient_id" binding:"required"`
	DoctorID    string   `json:"doctor_id"`
	RecordDate  string   `json:"record_date"`
	Diagnosis   string   `json:"diagnosis"`
	Symptoms    string   `json:"symptoms"`
	Treatment   string   `json:"treatment"`
	TestResults []string `json:"test_results"`
	Type        string   `json:"type" binding:"required"`
}

func (h *Handler) AddRecord(c *gin.Context) {
	var req addRecordRequest
	if !bindJSON(c, &req) {
		return
	}
	recordDate, ok := parseDate(c, "record_date", req.RecordDate)
	if !ok {
		return
	}

	r, err := h.records.AddRecord(c.Request.Context(), &mr.CreateRecordCommand{
		ID:          req.ID,
		PatientID:   req.PatientID,
		DoctorID:    req.DoctorID,
		RecordDate:  recordDate,
		Diagnosis:   req.Diagnosis,
		Symptoms:    req.Symptoms,
		Treatment:   req.Treatment,
		TestResults: req.TestResults,
		Type:        mr.RecordType(req.Type),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, r)
}

func (h *Handler) GetRecord(c *gin.Context) {
	r, err := h.records.GetRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, r)
}

func (h *Handler) GetRecordsByType(c *gin.Context) {
	t := c.Query("type")
	if t == "" {
		respondError(c, http.StatusBadRequest, "type query parameter is required")
		return
	}
	list, err := h.records.GetRecordsByType(c.Request.Context(), mr.RecordType(t))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, list)
}

func (h *Handler) GetTotalRecordCount(c *gin.Context) {
	n, err := h.records.GetTotalRecordCount(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"count": n})
}

func (h *Handler) ArchiveRecord(c *gin.Context) {
	r, err := h.records.ArchiveRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, r)
}

func (h *Handler) DeleteRecord(c *gin.Context) {
	if err := h.records.DeleteRecord(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ClearAllRecords(c *gin.Context) {
	if err := h.records.ClearAllRecords(c.Request.Context()); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
