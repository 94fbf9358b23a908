package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fisiogest/physio-scheduler/internal/cache"
	domain "github.com/fisiogest/physio-scheduler/internal/domain/appointment"
	"github.com/fisiogest/physio-scheduler/internal/dto"
	"github.com/fisiogest/physio-scheduler/internal/httperr"
	"github.com/fisiogest/physio-scheduler/internal/httpresp"
	usecase "github.com/fisiogest/physio-scheduler/internal/usecase/appointment"
)

type AppointmentHandler struct {
	repo  domain.Repository
	cache *cache.Client

	createUC      *usecase.CreateAppointment
	updateUC      *usecase.UpdateAppointment
	cancelUC      *usecase.CancelAppointment
	completeUC    *usecase.CompleteAppointment
	noShowUC      *usecase.MarkNoShow
	conflictsUC   *usecase.CheckConflicts
	dayScheduleUC *usecase.GetDaySchedule
	listRangeUC   *usecase.ListAppointmentsByRange
}

func NewAppointmentHandler(
	repo domain.Repository,
	cacheClient *cache.Client,
	createUC *usecase.CreateAppointment,
	updateUC *usecase.UpdateAppointment,
	cancelUC *usecase.CancelAppointment,
	completeUC *usecase.CompleteAppointment,
	noShowUC *usecase.MarkNoShow,
	conflictsUC *usecase.CheckConflicts,
	dayScheduleUC *usecase.GetDaySchedule,
	listRangeUC *usecase.ListAppointmentsByRange,
) *AppointmentHandler {
	return &AppointmentHandler{
		repo:          repo,
		cache:         cacheClient,
		createUC:      createUC,
		updateUC:      updateUC,
		cancelUC:      cancelUC,
		completeUC:    completeUC,
		noShowUC:      noShowUC,
		conflictsUC:   conflictsUC,
		dayScheduleUC: dayScheduleUC,
		listRangeUC:   listRangeUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	PatientID   string `json:"patient_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`

	Date      string `json:"date" binding:"required"`       // 2006-01-02
	StartTime string `json:"start_time" binding:"required"` // 15:04
	EndTime   string `json:"end_time" binding:"required"`   // 15:04

	AppointmentType string   `json:"appointment_type"`
	Notes           string   `json:"notes"`
	Price           *float64 `json:"price"`

	Override bool `json:"override"`
}

type UpdateAppointmentRequest struct {
	PatientID *string `json:"patient_id"`

	Title       *string `json:"title"`
	Description *string `json:"description"`
	Notes       *string `json:"notes"`

	Date      *string `json:"date"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`

	Status          *string  `json:"status"`
	AppointmentType *string  `json:"appointment_type"`
	Price           *float64 `json:"price"`
}

type CompleteAppointmentRequest struct {
	Price *float64 `json:"price"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	therapistID := therapistIDFrom(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		httperr.BadRequest(c, "invalid_patient_id", "Identificador de paciente inválido.")
		return
	}

	outcome, err := h.createUC.Execute(c.Request.Context(), usecase.CreateAppointmentInput{
		TherapistID:     therapistID,
		PatientID:       patientID,
		Title:           req.Title,
		Description:     req.Description,
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		AppointmentType: req.AppointmentType,
		Notes:           req.Notes,
		Price:           req.Price,
		Override:        req.Override,
	})
	if err != nil {
		h.writeBusinessError(c, err)
		return
	}

	// Los conflictos no son un error: se devuelven como datos para que
	// el cliente ofrezca "crear de todos modos" con override.
	if !outcome.Created() {
		c.JSON(http.StatusConflict, gin.H{
			"success":   false,
			"conflicts": outcome.Conflicts,
		})
		return
	}

	h.invalidateSchedule(c, therapistID, outcome.Appointment.StartTime)

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"appointment": outcome.Appointment,
	})
}

// ======================================================
// UPDATE / RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	therapistID := therapistIDFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	in := usecase.UpdateAppointmentInput{
		TherapistID:     therapistID,
		AppointmentID:   id,
		Title:           req.Title,
		Description:     req.Description,
		Notes:           req.Notes,
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Status:          req.Status,
		AppointmentType: req.AppointmentType,
		Price:           req.Price,
	}

	if req.PatientID != nil {
		pid, err := uuid.Parse(*req.PatientID)
		if err != nil {
			httperr.BadRequest(c, "invalid_patient_id", "Identificador de paciente inválido.")
			return
		}
		in.PatientID = &pid
	}

	// La fecha original se necesita para invalidar el día anterior
	// cuando la cita se mueve a otro día.
	previous, err := h.repo.GetAppointmentForTherapist(c.Request.Context(), id, therapistID)
	if err != nil {
		httperr.NotFound(c, "appointment_not_found", "Cita no encontrada.")
		return
	}
	previousStart := previous.StartTime

	ap, err := h.updateUC.Execute(c.Request.Context(), in)
	if err != nil {
		h.writeBusinessError(c, err)
		return
	}

	h.invalidateSchedule(c, therapistID, previousStart, ap.StartTime)

	httpresp.OK(c, ap)
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	therapistID := therapistIDFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), therapistID, id)
	if err != nil {
		h.writeBusinessError(c, err)
		return
	}

	h.invalidateSchedule(c, therapistID, ap.StartTime)

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	therapistID := therapistIDFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	// El body es opcional: {"price": ...} ajusta el precio al completar
	var req CompleteAppointmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
			return
		}
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), usecase.CompleteAppointmentInput{
		TherapistID:   therapistID,
		AppointmentID: id,
		Price:         req.Price,
	})
	if err != nil {
		h.writeBusinessError(c, err)
		return
	}

	// Completar genera o ajusta cargos: las estadísticas cambian.
	h.invalidateSchedule(c, therapistID, ap.StartTime)
	h.cache.Invalidate(c.Request.Context(), cache.StatsKey(therapistID))

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) MarkNoShow(c *gin.Context) {
	therapistID := therapistIDFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.noShowUC.Execute(c.Request.Context(), therapistID, id)
	if err != nil {
		h.writeBusinessError(c, err)
		return
	}

	h.invalidateSchedule(c, therapistID, ap.StartTime)

	httpresp.OK(c, ap)
}

// ======================================================
// CONFLICT CHECK
// ======================================================

func (h *AppointmentHandler) CheckConflicts(c *gin.Context) {
	therapistID := therapistIDFrom(c)

	date := c.Query("date")
	startTime := c.Query("start_time")
	endTime := c.Query("end_time")

	if date == "" || startTime == "" || endTime == "" {
		httperr.BadRequest(c, "missing_params", "Se requieren date, start_time y end_time.")
		return
	}

	therapist, err := h.repo.GetTherapistByID(c.Request.Context(), therapistID)
	if err != nil {
		httperr.Internal(c, "failed_to_load_therapist", "Error al cargar el perfil.")
		return
	}

	start, end, err := parseRangeInTZ(therapist.Timezone, date, startTime, endTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Fecha u hora inválida.")
		return
	}

	var excludeID uuid.UUID
	if raw := c.Query("exclude_id"); raw != "" {
		excludeID, err = uuid.Parse(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_exclude_id", "Identificador de exclusión inválido.")
			return
		}
	}

	conflicts, err := h.conflictsUC.Execute(c.Request.Context(), therapistID, start, end, excludeID)
	if err != nil {
		h.writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"has_conflicts": len(conflicts) > 0,
		"conflicts":     conflicts,
	})
}

// ======================================================
// VIEWS
// ======================================================

// DaySchedule devuelve las citas del día con su layout de columnas.
// La respuesta se cachea por terapeuta y fecha hasta la próxima escritura.
func (h *AppointmentHandler) DaySchedule(c *gin.Context) {
	therapistID := therapistIDFrom(c)
	ctx := c.Request.Context()

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Se requiere el parámetro date.")
		return
	}

	key := cache.ScheduleKey(therapistID, dateStr)

	var cached []dto.DayScheduleItemDTO
	if h.cache.GetJSON(ctx, key, &cached) {
		httpresp.OK(c, cached)
		return
	}

	therapist, err := h.repo.GetTherapistByID(ctx, therapistID)
	if err != nil {
		httperr.Internal(c, "failed_to_load_therapist", "Error al cargar el perfil.")
		return
	}

	date, err := parseDateInTZ(therapist.Timezone, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	items, err := h.dayScheduleUC.Execute(ctx, therapistID, date)
	if err != nil {
		h.writeBusinessError(c, err)
		return
	}

	h.cache.SetJSON(ctx, key, items)

	httpresp.OK(c, items)
}

func (h *AppointmentHandler) ListByRange(c *gin.Context) {
	therapistID := therapistIDFrom(c)

	startStr := c.Query("start")
	endStr := c.Query("end")
	if startStr == "" || endStr == "" {
		httperr.BadRequest(c, "missing_params", "Se requieren start y end.")
		return
	}

	therapist, err := h.repo.GetTherapistByID(c.Request.Context(), therapistID)
	if err != nil {
		httperr.Internal(c, "failed_to_load_therapist", "Error al cargar el perfil.")
		return
	}

	start, err := parseDateInTZ(therapist.Timezone, startStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	endDay, err := parseDateInTZ(therapist.Timezone, endStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}
	// end es inclusivo como fecha: el rango cubre hasta el fin de ese día
	end := endDay.Add(24 * time.Hour)

	activeOnly := c.DefaultQuery("active_only", "false") == "true"

	items, err := h.listRangeUC.Execute(c.Request.Context(), therapistID, start, end, activeOnly)
	if err != nil {
		h.writeBusinessError(c, err)
		return
	}

	httpresp.List(c, items)
}

// ListByPatient devuelve el historial de citas de un paciente.
func (h *AppointmentHandler) ListByPatient(c *gin.Context) {
	therapistID := therapistIDFrom(c)

	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	items, err := h.repo.ListAppointmentsForPatient(c.Request.Context(), therapistID, patientID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Error al listar citas.")
		return
	}

	httpresp.List(c, items)
}

// ======================================================
// HELPERS
// ======================================================

func (h *AppointmentHandler) invalidateSchedule(
	c *gin.Context,
	therapistID uuid.UUID,
	times ...time.Time,
) {
	// sin redis no hay nada que invalidar: evita la consulta del terapeuta
	if !h.cache.Enabled() {
		return
	}

	therapist, err := h.repo.GetTherapistByID(c.Request.Context(), therapistID)
	if err != nil {
		return
	}

	dates := scheduleKeysDates(therapist.Timezone, times...)
	keys := make([]string, 0, len(dates))
	for _, d := range dates {
		keys = append(keys, cache.ScheduleKey(therapistID, d))
	}

	h.cache.Invalidate(c.Request.Context(), keys...)
}

func (h *AppointmentHandler) writeBusinessError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Error interno.")
		return
	}

	switch code {
	case "appointment_not_found", "patient_not_found":
		httperr.NotFound(c, code, "Recurso no encontrado.")
	default:
		httperr.BadRequest(c, code, "La operación no es válida.")
	}
}
