package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fisiogest/physio-scheduler/internal/httperr"
	"github.com/fisiogest/physio-scheduler/internal/httpresp"
	"github.com/fisiogest/physio-scheduler/internal/models"
)

type PatientHandler struct {
	db *gorm.DB
}

func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type PatientRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Email    string `json:"email"`

	DateOfBirth string `json:"date_of_birth"` // 2006-01-02
	Gender      string `json:"gender"`
	Address     string `json:"address"`
	Occupation  string `json:"occupation"`

	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`

	Allergies          string `json:"allergies"`
	CurrentMedications string `json:"current_medications"`
	PreviousSurgeries  string `json:"previous_surgeries"`
	ChronicConditions  string `json:"chronic_conditions"`

	InitialComplaint string `json:"initial_complaint"`
	Diagnosis        string `json:"diagnosis"`

	Status string `json:"status"`
	Notes  string `json:"notes"`
}

var patientStatuses = map[string]bool{
	"active":     true,
	"inactive":   true,
	"discharged": true,
}

// ======================================================
// LIST (paginado, con búsqueda y filtro de estado)
// ======================================================

func (h *PatientHandler) List(c *gin.Context) {
	therapistID := therapistIDFrom(c)

	search := strings.ToLower(strings.TrimSpace(c.Query("search")))
	status := c.Query("status")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 10
	}

	q := h.db.Model(&models.Patient{}).Where("therapist_id = ?", therapistID)

	if search != "" {
		like := "%" + search + "%"
		q = q.Where(
			"LOWER(full_name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	if status != "" && status != "all" {
		if !patientStatuses[status] {
			httperr.BadRequest(c, "invalid_status", "Estado de paciente inválido.")
			return
		}
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_count_patients", "Error al contar pacientes.")
		return
	}

	var patients []models.Patient
	if err := q.
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&patients).Error; err != nil {

		httperr.Internal(c, "failed_to_list_patients", "Error al listar pacientes.")
		return
	}

	httpresp.Page(c, patients, total, page, pageSize)
}

// ======================================================
// GET
// ======================================================

func (h *PatientHandler) Get(c *gin.Context) {
	therapistID := therapistIDFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var patient models.Patient
	if err := h.db.
		Where("id = ? AND therapist_id = ?", id, therapistID).
		First(&patient).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", "Paciente no encontrado.")
		return
	}

	httpresp.OK(c, patient)
}

// ======================================================
// CREATE
// ======================================================

func (h *PatientHandler) Create(c *gin.Context) {
	therapistID := therapistIDFrom(c)

	var req PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	patient, ok := h.patientFromRequest(c, &req)
	if !ok {
		return
	}
	patient.TherapistID = therapistID

	if err := h.db.Create(patient).Error; err != nil {
		httperr.Internal(c, "failed_to_create_patient", "Error al crear el paciente.")
		return
	}

	httpresp.Created(c, patient)
}

// ======================================================
// UPDATE
// ======================================================

func (h *PatientHandler) Update(c *gin.Context) {
	therapistID := therapistIDFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var existing models.Patient
	if err := h.db.
		Where("id = ? AND therapist_id = ?", id, therapistID).
		First(&existing).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", "Paciente no encontrado.")
		return
	}

	var req PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	patient, ok := h.patientFromRequest(c, &req)
	if !ok {
		return
	}

	patient.ID = existing.ID
	patient.TherapistID = existing.TherapistID
	patient.CreatedAt = existing.CreatedAt

	if err := h.db.Save(patient).Error; err != nil {
		httperr.Internal(c, "failed_to_update_patient", "Error al actualizar el paciente.")
		return
	}

	httpresp.OK(c, patient)
}

// ======================================================
// DELETE
// ======================================================

func (h *PatientHandler) Delete(c *gin.Context) {
	therapistID := therapistIDFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	res := h.db.
		Where("id = ? AND therapist_id = ?", id, therapistID).
		Delete(&models.Patient{})

	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_patient", "Error al eliminar el paciente.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "patient_not_found", "Paciente no encontrado.")
		return
	}

	httpresp.OK(c, gin.H{"deleted": true})
}

// ======================================================
// HELPERS
// ======================================================

func (h *PatientHandler) patientFromRequest(c *gin.Context, req *PatientRequest) (*models.Patient, bool) {
	status := req.Status
	if status == "" {
		status = "active"
	}
	if !patientStatuses[status] {
		httperr.BadRequest(c, "invalid_status", "Estado de paciente inválido.")
		return nil, false
	}

	var dob *time.Time
	if req.DateOfBirth != "" {
		d, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_of_birth", "Fecha de nacimiento inválida.")
			return nil, false
		}
		dob = &d
	}

	return &models.Patient{
		FullName:              req.FullName,
		Phone:                 req.Phone,
		Email:                 strings.ToLower(strings.TrimSpace(req.Email)),
		DateOfBirth:           dob,
		Gender:                req.Gender,
		Address:               req.Address,
		Occupation:            req.Occupation,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
		Allergies:             req.Allergies,
		CurrentMedications:    req.CurrentMedications,
		PreviousSurgeries:     req.PreviousSurgeries,
		ChronicConditions:     req.ChronicConditions,
		InitialComplaint:      req.InitialComplaint,
		Diagnosis:             req.Diagnosis,
		Status:                status,
		Notes:                 req.Notes,
	}, true
}
