package dto

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentListDTO struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	AppointmentType string    `json:"appointment_type"`
	PatientID       uuid.UUID `json:"patient_id"`
	PatientName     string    `json:"patient_name"`
	PatientPhone    string    `json:"patient_phone"`
	Price           *float64  `json:"price"`
	Notes           string    `json:"notes"`
}

// ConflictDTO lleva lo necesario para que el cliente muestre la advertencia
// "ya existe una cita en ese horario" y ofrezca crear de todos modos
type ConflictDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	PatientName string    `json:"patient_name"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
}

// DayScheduleItemDTO agrega la posición de columna calculada por el layout
type DayScheduleItemDTO struct {
	AppointmentListDTO
	ColumnIndex  int `json:"column_index"`
	TotalColumns int `json:"total_columns"`
}
