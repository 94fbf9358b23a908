package dto

import "github.com/google/uuid"

type PatientBalanceDTO struct {
	PatientID     uuid.UUID `json:"patient_id"`
	FullName      string    `json:"full_name"`
	Phone         string    `json:"phone"`
	TotalCharges  float64   `json:"total_charges"`
	TotalPayments float64   `json:"total_payments"`
	Balance       float64   `json:"balance"`
}

type FinancialStatsDTO struct {
	TotalIncome         float64 `json:"total_income"`
	MonthlyIncome       float64 `json:"monthly_income"`
	PendingBalance      float64 `json:"pending_balance"`
	PatientsWithBalance int     `json:"patients_with_balance"`
}
