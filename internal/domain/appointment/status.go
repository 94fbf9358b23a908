package appointment

import "github.com/fisiogest/physio-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusScheduled, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return Status(s), nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}

// Terminal: no admite más transiciones
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Active: cuenta para detección de conflictos y para el calendario.
// cancelled y no_show liberan el horario.
func (s Status) Active() bool {
	return s != StatusCancelled && s != StatusNoShow
}

// ===============================
// Appointment Type
// ===============================

type Type string

const (
	TypeEvaluation Type = "evaluation"
	TypeSession    Type = "session"
	TypeFollowUp   Type = "follow_up"
	TypeDischarge  Type = "discharge"
)

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeEvaluation, TypeSession, TypeFollowUp, TypeDischarge:
		return Type(s), nil
	}
	return "", httperr.ErrBusiness("invalid_appointment_type")
}

// ===============================
// Validations
// ===============================

// CanCancel define si una cita puede ser cancelada
func CanCancel(current Status) error {
	if current.Terminal() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete define si una cita puede ser completada.
// Una cita ya completada puede completarse de nuevo: la sincronización
// del cargo es idempotente y un reintento no debe fallar.
func CanComplete(current Status) error {
	if current == StatusCancelled || current == StatusNoShow {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanMarkNoShow define si una cita puede marcarse como no asistida
func CanMarkNoShow(current Status) error {
	if current != StatusScheduled && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
