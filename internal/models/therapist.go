package models

import (
	"time"

	"github.com/google/uuid"
)

type Therapist struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	FullName     string `gorm:"size:100;not null" json:"full_name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`

	LicenseNumber string `gorm:"size:50" json:"license_number"`
	Specialty     string `gorm:"size:100;default:'Fisioterapia General'" json:"specialty"`
	ClinicName    string `gorm:"size:100" json:"clinic_name"`
	ClinicAddress string `gorm:"size:255" json:"clinic_address"`

	// Precio por defecto de una sesión; usado como fallback al generar cargos
	DefaultSessionPrice float64 `json:"default_session_price"`

	Timezone  string `gorm:"size:50" json:"timezone"`
	AvatarURL string `gorm:"size:255" json:"avatar_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
