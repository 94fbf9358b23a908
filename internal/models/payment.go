package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentTypeCharge  = "charge"
	PaymentTypePayment = "payment"
)

// Movimiento del libro mayor del paciente: un "charge" representa una deuda
// (sesión completada), un "payment" representa dinero recibido.
type Payment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	TherapistID uuid.UUID `gorm:"type:uuid;index;not null" json:"therapist_id"`
	Therapist   Therapist `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	PatientID uuid.UUID `gorm:"type:uuid;index;not null" json:"patient_id"`
	Patient   Patient   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	AppointmentID *uuid.UUID `gorm:"type:uuid;index" json:"appointment_id"`

	Amount float64 `gorm:"not null" json:"amount"`
	Type   string  `gorm:"size:10;not null" json:"type"`

	PaymentMethod string `gorm:"size:20" json:"payment_method"`
	Description   string `gorm:"size:255" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
