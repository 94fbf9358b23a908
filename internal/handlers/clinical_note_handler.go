package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fisiogest/physio-scheduler/internal/httperr"
	"github.com/fisiogest/physio-scheduler/internal/httpresp"
	"github.com/fisiogest/physio-scheduler/internal/models"
)

type ClinicalNoteHandler struct {
	db *gorm.DB
}

func NewClinicalNoteHandler(db *gorm.DB) *ClinicalNoteHandler {
	return &ClinicalNoteHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type ClinicalNoteRequest struct {
	PatientID     string `json:"patient_id" binding:"required"`
	AppointmentID string `json:"appointment_id"`
	SessionDate   string `json:"session_date"` // 2006-01-02

	PainLevelBefore *int   `json:"pain_level_before"`
	PainLevelAfter  *int   `json:"pain_level_after"`
	PainLocation    string `json:"pain_location"`

	Subjective string `json:"subjective"`
	Objective  string `json:"objective"`
	Assessment string `json:"assessment"`
	Plan       string `json:"plan"`

	TreatmentPerformed string `json:"treatment_performed"`
	TechniquesUsed     string `json:"techniques_used"`

	SessionDurationMinutes *int `json:"session_duration_minutes"`

	ProgressStatus            string `json:"progress_status"`
	NextSessionRecommendation string `json:"next_session_recommendation"`
}

var progressStatuses = map[string]bool{
	"improving": true,
	"stable":    true,
	"worsening": true,
	"recovered": true,
}

// ======================================================
// LIST (por paciente o todas)
// ======================================================

func (h *ClinicalNoteHandler) List(c *gin.Context) {
	therapistID := therapistIDFrom(c)

	q := h.db.
		Preload("Patient").
		Where("therapist_id = ?", therapistID)

	if patientStr := c.Query("patient_id"); patientStr != "" {
		patientID, err := uuid.Parse(patientStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_patient_id", "Identificador de paciente inválido.")
			return
		}
		q = q.Where("patient_id = ?", patientID)
	}

	var notes []models.ClinicalNote
	if err := q.
		Order("session_date DESC").
		Find(&notes).Error; err != nil {
		httperr.Internal(c, "failed_to_list_notes", "Error al listar notas clínicas.")
		return
	}

	httpresp.List(c, notes)
}

// ======================================================
// GET
// ======================================================

func (h *ClinicalNoteHandler) Get(c *gin.Context) {
	therapistID := therapistIDFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var note models.ClinicalNote
	if err := h.db.
		Preload("Patient").
		Where("id = ? AND therapist_id = ?", id, therapistID).
		First(&note).Error; err != nil {
		httperr.NotFound(c, "note_not_found", "Nota clínica no encontrada.")
		return
	}

	httpresp.OK(c, note)
}

// ======================================================
// CREATE
// ======================================================

func (h *ClinicalNoteHandler) Create(c *gin.Context) {
	therapistID := therapistIDFrom(c)

	var req ClinicalNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	note, ok := h.noteFromRequest(c, therapistID, &req)
	if !ok {
		return
	}

	if err := h.db.Create(note).Error; err != nil {
		httperr.Internal(c, "failed_to_create_note", "Error al crear la nota clínica.")
		return
	}

	httpresp.Created(c, note)
}

// ======================================================
// UPDATE
// ======================================================

func (h *ClinicalNoteHandler) Update(c *gin.Context) {
	therapistID := therapistIDFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var existing models.ClinicalNote
	if err := h.db.
		Where("id = ? AND therapist_id = ?", id, therapistID).
		First(&existing).Error; err != nil {
		httperr.NotFound(c, "note_not_found", "Nota clínica no encontrada.")
		return
	}

	var req ClinicalNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	note, ok := h.noteFromRequest(c, therapistID, &req)
	if !ok {
		return
	}

	note.ID = existing.ID
	note.CreatedAt = existing.CreatedAt

	if err := h.db.Save(note).Error; err != nil {
		httperr.Internal(c, "failed_to_update_note", "Error al actualizar la nota clínica.")
		return
	}

	httpresp.OK(c, note)
}

// ======================================================
// DELETE
// ======================================================

func (h *ClinicalNoteHandler) Delete(c *gin.Context) {
	therapistID := therapistIDFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	res := h.db.
		Where("id = ? AND therapist_id = ?", id, therapistID).
		Delete(&models.ClinicalNote{})

	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_note", "Error al eliminar la nota clínica.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "note_not_found", "Nota clínica no encontrada.")
		return
	}

	httpresp.OK(c, gin.H{"deleted": true})
}

// ======================================================
// HELPERS
// ======================================================

func (h *ClinicalNoteHandler) noteFromRequest(
	c *gin.Context,
	therapistID uuid.UUID,
	req *ClinicalNoteRequest,
) (*models.ClinicalNote, bool) {

	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		httperr.BadRequest(c, "invalid_patient_id", "Identificador de paciente inválido.")
		return nil, false
	}

	var patient models.Patient
	if err := h.db.
		Where("id = ? AND therapist_id = ?", patientID, therapistID).
		First(&patient).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", "Paciente no encontrado.")
		return nil, false
	}

	var appointmentID *uuid.UUID
	if req.AppointmentID != "" {
		apID, err := uuid.Parse(req.AppointmentID)
		if err != nil {
			httperr.BadRequest(c, "invalid_appointment_id", "Identificador de cita inválido.")
			return nil, false
		}

		var count int64
		h.db.Model(&models.Appointment{}).
			Where("id = ? AND therapist_id = ?", apID, therapistID).
			Count(&count)
		if count == 0 {
			httperr.NotFound(c, "appointment_not_found", "Cita no encontrada.")
			return nil, false
		}

		appointmentID = &apID
	}

	sessionDate := time.Now().UTC()
	if req.SessionDate != "" {
		d, err := time.Parse("2006-01-02", req.SessionDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_session_date", "Fecha de sesión inválida.")
			return nil, false
		}
		sessionDate = d
	}

	if req.PainLevelBefore != nil && (*req.PainLevelBefore < 0 || *req.PainLevelBefore > 10) {
		httperr.BadRequest(c, "invalid_pain_level", "El nivel de dolor va de 0 a 10.")
		return nil, false
	}
	if req.PainLevelAfter != nil && (*req.PainLevelAfter < 0 || *req.PainLevelAfter > 10) {
		httperr.BadRequest(c, "invalid_pain_level", "El nivel de dolor va de 0 a 10.")
		return nil, false
	}

	if req.ProgressStatus != "" && !progressStatuses[req.ProgressStatus] {
		httperr.BadRequest(c, "invalid_progress_status", "Estado de progreso inválido.")
		return nil, false
	}

	return &models.ClinicalNote{
		TherapistID:               therapistID,
		PatientID:                 patientID,
		AppointmentID:             appointmentID,
		SessionDate:               sessionDate,
		PainLevelBefore:           req.PainLevelBefore,
		PainLevelAfter:            req.PainLevelAfter,
		PainLocation:              req.PainLocation,
		Subjective:                req.Subjective,
		Objective:                 req.Objective,
		Assessment:                req.Assessment,
		Plan:                      req.Plan,
		TreatmentPerformed:        req.TreatmentPerformed,
		TechniquesUsed:            req.TechniquesUsed,
		SessionDurationMinutes:    req.SessionDurationMinutes,
		ProgressStatus:            req.ProgressStatus,
		NextSessionRecommendation: req.NextSessionRecommendation,
	}, true
}
