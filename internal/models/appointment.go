package models

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	TherapistID uuid.UUID `gorm:"type:uuid;index;not null" json:"therapist_id"`
	Therapist   Therapist `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	PatientID uuid.UUID `gorm:"type:uuid;index;not null" json:"patient_id"`
	Patient   Patient   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"patient"`

	Title       string `gorm:"size:100;not null" json:"title"`
	Description string `gorm:"size:255" json:"description"`

	// Siempre almacenados en UTC; los límites de día se calculan en el
	// timezone del terapeuta.
	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status          string `gorm:"size:20;default:'scheduled'" json:"status"`
	AppointmentType string `gorm:"size:20;default:'session'" json:"appointment_type"`

	// Precio de esta sesión; nil usa el precio por defecto del terapeuta
	Price *float64 `json:"price"`

	Notes        string `gorm:"type:text" json:"notes"`
	ReminderSent bool   `gorm:"default:false" json:"reminder_sent"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) DurationMinutes() int {
	return int(a.EndTime.Sub(a.StartTime).Minutes())
}
