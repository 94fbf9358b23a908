package models

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	TherapistID uuid.UUID `gorm:"type:uuid;index;not null" json:"therapist_id"`
	Therapist   Therapist `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	FullName string `gorm:"size:100;not null" json:"full_name"`
	Email    string `gorm:"size:100" json:"email"`
	Phone    string `gorm:"size:20;not null" json:"phone"`

	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      string     `gorm:"size:20" json:"gender"`
	Address     string     `gorm:"size:255" json:"address"`
	Occupation  string     `gorm:"size:100" json:"occupation"`

	EmergencyContactName  string `gorm:"size:100" json:"emergency_contact_name"`
	EmergencyContactPhone string `gorm:"size:20" json:"emergency_contact_phone"`

	Allergies          string `gorm:"type:text" json:"allergies"`
	CurrentMedications string `gorm:"type:text" json:"current_medications"`
	PreviousSurgeries  string `gorm:"type:text" json:"previous_surgeries"`
	ChronicConditions  string `gorm:"type:text" json:"chronic_conditions"`

	InitialComplaint string `gorm:"type:text" json:"initial_complaint"`
	Diagnosis        string `gorm:"type:text" json:"diagnosis"`

	Status string `gorm:"size:20;default:'active'" json:"status"`
	Notes  string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
