package handlers

import (
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fisiogest/physio-scheduler/internal/billing"
	"github.com/fisiogest/physio-scheduler/internal/cache"
	"github.com/fisiogest/physio-scheduler/internal/dto"
	"github.com/fisiogest/physio-scheduler/internal/httperr"
	"github.com/fisiogest/physio-scheduler/internal/httpresp"
	"github.com/fisiogest/physio-scheduler/internal/models"
)

type PaymentHandler struct {
	db    *gorm.DB
	cache *cache.Client
	links *billing.PaymentLinks
}

func NewPaymentHandler(
	db *gorm.DB,
	cacheClient *cache.Client,
	links *billing.PaymentLinks,
) *PaymentHandler {
	return &PaymentHandler{
		db:    db,
		cache: cacheClient,
		links: links,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreatePaymentRequest struct {
	PatientID     string  `json:"patient_id" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
	Description   string  `json:"description"`
}

var paymentMethods = map[string]bool{
	"cash":     true,
	"card":     true,
	"transfer": true,
	"other":    true,
}

// ======================================================
// CREATE PAYMENT (dinero recibido)
// ======================================================

func (h *PaymentHandler) Create(c *gin.Context) {
	therapistID := therapistIDFrom(c)

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if !paymentMethods[req.PaymentMethod] {
		httperr.BadRequest(c, "invalid_payment_method", "Método de pago inválido.")
		return
	}

	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		httperr.BadRequest(c, "invalid_patient_id", "Identificador de paciente inválido.")
		return
	}

	var patient models.Patient
	if err := h.db.
		Where("id = ? AND therapist_id = ?", patientID, therapistID).
		First(&patient).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", "Paciente no encontrado.")
		return
	}

	description := req.Description
	if description == "" {
		description = "Pago recibido"
	}

	payment := models.Payment{
		TherapistID:   therapistID,
		PatientID:     patientID,
		Amount:        req.Amount,
		Type:          models.PaymentTypePayment,
		PaymentMethod: req.PaymentMethod,
		Description:   description,
	}

	if err := h.db.Create(&payment).Error; err != nil {
		httperr.Internal(c, "failed_to_create_payment", "Error al registrar el pago.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), cache.StatsKey(therapistID))

	httpresp.Created(c, payment)
}

// ======================================================
// DELETE
// ======================================================

func (h *PaymentHandler) Delete(c *gin.Context) {
	therapistID := therapistIDFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	res := h.db.
		Where("id = ? AND therapist_id = ?", id, therapistID).
		Delete(&models.Payment{})

	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_payment", "Error al eliminar el movimiento.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "payment_not_found", "Movimiento no encontrado.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), cache.StatsKey(therapistID))

	httpresp.OK(c, gin.H{"deleted": true})
}

// ======================================================
// PATIENT LEDGER
// ======================================================

func (h *PaymentHandler) ListByPatient(c *gin.Context) {
	therapistID := therapistIDFrom(c)

	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var payments []models.Payment
	if err := h.db.
		Where("patient_id = ? AND therapist_id = ?", patientID, therapistID).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_payments", "Error al listar movimientos.")
		return
	}

	httpresp.List(c, payments)
}

// Balance = cargos - pagos
func (h *PaymentHandler) PatientBalance(c *gin.Context) {
	therapistID := therapistIDFrom(c)

	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	balance, err := h.balanceFor(therapistID, patientID)
	if err != nil {
		httperr.Internal(c, "failed_to_compute_balance", "Error al calcular el saldo.")
		return
	}

	httpresp.OK(c, gin.H{
		"patient_id": patientID,
		"balance":    balance,
	})
}

// ======================================================
// FINANCIAL STATS (cacheado)
// ======================================================

func (h *PaymentHandler) FinancialStats(c *gin.Context) {
	therapistID := therapistIDFrom(c)
	ctx := c.Request.Context()

	key := cache.StatsKey(therapistID)

	var cached dto.FinancialStatsDTO
	if h.cache.GetJSON(ctx, key, &cached) {
		httpresp.OK(c, cached)
		return
	}

	var payments []models.Payment
	if err := h.db.
		Where("therapist_id = ?", therapistID).
		Find(&payments).Error; err != nil {
		httperr.Internal(c, "failed_to_load_payments", "Error al cargar movimientos.")
		return
	}

	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var totalCharges, totalPayments, monthlyPayments float64
	balances := make(map[uuid.UUID]float64)

	for _, p := range payments {
		if p.Type == models.PaymentTypeCharge {
			totalCharges += p.Amount
			balances[p.PatientID] += p.Amount
			continue
		}

		totalPayments += p.Amount
		balances[p.PatientID] -= p.Amount
		if !p.CreatedAt.Before(startOfMonth) {
			monthlyPayments += p.Amount
		}
	}

	withBalance := 0
	for _, b := range balances {
		if b > 0 {
			withBalance++
		}
	}

	stats := dto.FinancialStatsDTO{
		TotalIncome:         totalPayments,
		MonthlyIncome:       monthlyPayments,
		PendingBalance:      totalCharges - totalPayments,
		PatientsWithBalance: withBalance,
	}

	h.cache.SetJSON(ctx, key, stats)

	httpresp.OK(c, stats)
}

// ======================================================
// PATIENTS WITH BALANCE
// ======================================================

func (h *PaymentHandler) PatientsWithBalance(c *gin.Context) {
	therapistID := therapistIDFrom(c)

	var payments []models.Payment
	if err := h.db.
		Preload("Patient").
		Where("therapist_id = ?", therapistID).
		Find(&payments).Error; err != nil {
		httperr.Internal(c, "failed_to_load_payments", "Error al cargar movimientos.")
		return
	}

	byPatient := make(map[uuid.UUID]*dto.PatientBalanceDTO)

	for _, p := range payments {
		entry, ok := byPatient[p.PatientID]
		if !ok {
			entry = &dto.PatientBalanceDTO{
				PatientID: p.PatientID,
				FullName:  p.Patient.FullName,
				Phone:     p.Patient.Phone,
			}
			byPatient[p.PatientID] = entry
		}

		if p.Type == models.PaymentTypeCharge {
			entry.TotalCharges += p.Amount
		} else {
			entry.TotalPayments += p.Amount
		}
		entry.Balance = entry.TotalCharges - entry.TotalPayments
	}

	out := make([]dto.PatientBalanceDTO, 0, len(byPatient))
	for _, entry := range byPatient {
		if entry.Balance > 0 {
			out = append(out, *entry)
		}
	}

	// mayor deuda primero
	sort.Slice(out, func(i, j int) bool {
		return out[i].Balance > out[j].Balance
	})

	httpresp.List(c, out)
}

// ======================================================
// PAYMENT LINK (Mercado Pago)
// ======================================================

func (h *PaymentHandler) CreatePaymentLink(c *gin.Context) {
	therapistID := therapistIDFrom(c)

	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var patient models.Patient
	if err := h.db.
		Where("id = ? AND therapist_id = ?", patientID, therapistID).
		First(&patient).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", "Paciente no encontrado.")
		return
	}

	balance, err := h.balanceFor(therapistID, patientID)
	if err != nil {
		httperr.Internal(c, "failed_to_compute_balance", "Error al calcular el saldo.")
		return
	}

	url, err := h.links.CreateForBalance(c.Request.Context(), &patient, balance)
	if err != nil {
		if code, ok := httperr.BusinessCode(err); ok {
			httperr.BadRequest(c, code, "No se pudo generar el link de cobro.")
			return
		}
		httperr.Internal(c, "failed_to_create_payment_link", "Error al generar el link de cobro.")
		return
	}

	httpresp.OK(c, gin.H{
		"patient_id": patientID,
		"amount":     balance,
		"init_point": url,
	})
}

// ======================================================
// HELPERS
// ======================================================

func (h *PaymentHandler) balanceFor(therapistID, patientID uuid.UUID) (float64, error) {
	var payments []models.Payment
	if err := h.db.
		Select("amount", "type").
		Where("patient_id = ? AND therapist_id = ?", patientID, therapistID).
		Find(&payments).Error; err != nil {
		return 0, err
	}

	var balance float64
	for _, p := range payments {
		if p.Type == models.PaymentTypeCharge {
			balance += p.Amount
		} else {
			balance -= p.Amount
		}
	}

	return balance, nil
}
