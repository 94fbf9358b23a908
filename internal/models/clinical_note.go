package models

import (
	"time"

	"github.com/google/uuid"
)

// Nota clínica en formato SOAP
type ClinicalNote struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	TherapistID uuid.UUID `gorm:"type:uuid;index;not null" json:"therapist_id"`
	Therapist   Therapist `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	PatientID uuid.UUID `gorm:"type:uuid;index;not null" json:"patient_id"`
	Patient   Patient   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	AppointmentID *uuid.UUID `gorm:"type:uuid;index" json:"appointment_id"`

	SessionDate time.Time `json:"session_date"`

	PainLevelBefore *int   `json:"pain_level_before"`
	PainLevelAfter  *int   `json:"pain_level_after"`
	PainLocation    string `gorm:"size:100" json:"pain_location"`

	Subjective string `gorm:"type:text" json:"subjective"`
	Objective  string `gorm:"type:text" json:"objective"`
	Assessment string `gorm:"type:text" json:"assessment"`
	Plan       string `gorm:"type:text" json:"plan"`

	TreatmentPerformed string `gorm:"type:text" json:"treatment_performed"`
	TechniquesUsed     string `gorm:"type:text" json:"techniques_used"`

	SessionDurationMinutes *int `json:"session_duration_minutes"`

	ProgressStatus            string `gorm:"size:20" json:"progress_status"`
	NextSessionRecommendation string `gorm:"type:text" json:"next_session_recommendation"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
