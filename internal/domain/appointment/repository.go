package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fisiogest/physio-scheduler/internal/models"
)

type Repository interface {
	// -------- Therapist --------
	GetTherapistByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Therapist, error)

	// -------- Patient --------
	GetPatientForTherapist(
		ctx context.Context,
		patientID uuid.UUID,
		therapistID uuid.UUID,
	) (*models.Patient, error)

	// -------- Appointment (create / conflict) --------

	// FindConflicts devuelve las citas activas del terapeuta que se solapan
	// con [start, end), ordenadas por inicio, con el paciente precargado.
	// excludeID (si no es uuid.Nil) excluye esa cita, para edición in situ.
	FindConflicts(
		ctx context.Context,
		therapistID uuid.UUID,
		start time.Time,
		end time.Time,
		excludeID uuid.UUID,
	) ([]models.Appointment, error)

	// CreateIfNoConflict verifica e inserta dentro de una misma transacción
	// con bloqueo de filas. Si hay conflictos devuelve la lista y no inserta.
	CreateIfNoConflict(
		ctx context.Context,
		ap *models.Appointment,
	) ([]models.Appointment, error)

	// CreateAppointment inserta sin verificar (camino con override)
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForTherapist(
		ctx context.Context,
		appointmentID uuid.UUID,
		therapistID uuid.UUID,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		therapistID uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// ListAppointmentsForPatient devuelve el historial completo del
	// paciente, más reciente primero
	ListAppointmentsForPatient(
		ctx context.Context,
		therapistID uuid.UUID,
		patientID uuid.UUID,
	) ([]models.Appointment, error)

	// -------- Charges (ledger) --------

	// GetChargeForAppointment devuelve (nil, nil) cuando no existe cargo
	GetChargeForAppointment(
		ctx context.Context,
		appointmentID uuid.UUID,
	) (*models.Payment, error)

	CreatePayment(
		ctx context.Context,
		p *models.Payment,
	) error

	UpdatePayment(
		ctx context.Context,
		p *models.Payment,
	) error

	DeletePayment(
		ctx context.Context,
		id uuid.UUID,
	) error
}
