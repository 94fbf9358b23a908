package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fisiogest/physio-scheduler/internal/audit"
	domain "github.com/fisiogest/physio-scheduler/internal/domain/appointment"
	"github.com/fisiogest/physio-scheduler/internal/dto"
	"github.com/fisiogest/physio-scheduler/internal/httperr"
	"github.com/fisiogest/physio-scheduler/internal/models"
	"github.com/fisiogest/physio-scheduler/internal/timezone"
)

// ======================================================
// INPUT / OUTCOME
// ======================================================

type CreateAppointmentInput struct {
	TherapistID uuid.UUID
	PatientID   uuid.UUID

	Title       string
	Description string

	Date      string // 2006-01-02, en el timezone del terapeuta
	StartTime string // 15:04
	EndTime   string // 15:04

	AppointmentType string
	Notes           string
	Price           *float64

	// Override salta la detección de conflictos por completo
	Override bool
}

// CreateOutcome es el resultado explícito de la creación: o bien la cita
// quedó persistida, o bien la lista de conflictos para que el caller
// ofrezca "crear de todos modos". Los conflictos no son un error.
type CreateOutcome struct {
	Appointment *models.Appointment `json:"appointment"`
	Conflicts   []dto.ConflictDTO   `json:"conflicts"`
}

func (o CreateOutcome) Created() bool {
	return o.Appointment != nil
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (CreateOutcome, error) {

	// --------------------------------------------------
	// 1. Terapeuta y timezone
	// --------------------------------------------------
	therapist, err := uc.repo.GetTherapistByID(ctx, in.TherapistID)
	if err != nil {
		return CreateOutcome{}, err
	}

	loc := timezone.Location(therapist.Timezone)

	// --------------------------------------------------
	// 2. Fechas: se normalizan a UTC al entrar
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.StartTime,
		loc,
	)
	if err != nil {
		return CreateOutcome{}, httperr.ErrBusiness("invalid_date_or_time")
	}

	end, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.EndTime,
		loc,
	)
	if err != nil {
		return CreateOutcome{}, httperr.ErrBusiness("invalid_date_or_time")
	}

	start = start.UTC()
	end = end.UTC()

	if !end.After(start) {
		return CreateOutcome{}, httperr.ErrBusiness("end_before_start")
	}

	// --------------------------------------------------
	// 3. Paciente del terapeuta
	// --------------------------------------------------
	patient, err := uc.repo.GetPatientForTherapist(ctx, in.PatientID, in.TherapistID)
	if err != nil {
		return CreateOutcome{}, httperr.ErrBusiness("patient_not_found")
	}

	// --------------------------------------------------
	// 4. Tipo y precio
	// --------------------------------------------------
	apType := domain.TypeSession
	if in.AppointmentType != "" {
		apType, err = domain.ParseType(in.AppointmentType)
		if err != nil {
			return CreateOutcome{}, err
		}
	}

	if in.Price != nil && *in.Price < 0 {
		return CreateOutcome{}, httperr.ErrBusiness("invalid_price")
	}

	ap := &models.Appointment{
		TherapistID:     in.TherapistID,
		PatientID:       patient.ID,
		Title:           in.Title,
		Description:     in.Description,
		StartTime:       start,
		EndTime:         end,
		Status:          string(domain.InitialStatus()),
		AppointmentType: string(apType),
		Price:           in.Price,
		Notes:           in.Notes,
	}

	// --------------------------------------------------
	// 5. Creación: con override no se verifica nada
	// --------------------------------------------------
	if in.Override {
		if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
			return CreateOutcome{}, err
		}

		uc.audit.Dispatch(audit.Event{
			TherapistID: in.TherapistID,
			Action:      "appointment_created",
			Entity:      "appointment",
			EntityID:    &ap.ID,
			Metadata:    map[string]any{"override": true},
		})

		ap.Patient = *patient
		return CreateOutcome{Appointment: ap}, nil
	}

	// --------------------------------------------------
	// 6. Verificación + inserción transaccional
	// --------------------------------------------------
	conflicts, err := uc.repo.CreateIfNoConflict(ctx, ap)
	if err != nil {
		return CreateOutcome{}, err
	}

	if len(conflicts) > 0 {
		uc.audit.Dispatch(audit.Event{
			TherapistID: in.TherapistID,
			Action:      "appointment_conflict",
			Entity:      "appointment",
			Metadata: map[string]any{
				"start": start,
				"end":   end,
			},
		})

		return CreateOutcome{Conflicts: toConflictDTOs(conflicts)}, nil
	}

	uc.audit.Dispatch(audit.Event{
		TherapistID: in.TherapistID,
		Action:      "appointment_created",
		Entity:      "appointment",
		EntityID:    &ap.ID,
	})

	ap.Patient = *patient
	return CreateOutcome{Appointment: ap}, nil
}
