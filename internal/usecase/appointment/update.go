package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fisiogest/physio-scheduler/internal/audit"
	domain "github.com/fisiogest/physio-scheduler/internal/domain/appointment"
	"github.com/fisiogest/physio-scheduler/internal/httperr"
	"github.com/fisiogest/physio-scheduler/internal/models"
	"github.com/fisiogest/physio-scheduler/internal/timezone"
)

// UpdateAppointmentInput: los campos nil no se tocan. Para reprogramar
// deben venir Date, StartTime y EndTime juntos.
type UpdateAppointmentInput struct {
	TherapistID   uuid.UUID
	AppointmentID uuid.UUID

	PatientID *uuid.UUID

	Title       *string
	Description *string
	Notes       *string

	Date      *string
	StartTime *string
	EndTime   *string

	Status          *string
	AppointmentType *string
	Price           *float64
}

// UpdateAppointment no verifica conflictos al reprogramar: solo el camino
// de creación está protegido. El caller que quiera la advertencia usa
// CheckConflicts con exclusión de la propia cita.
type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	therapist, err := uc.repo.GetTherapistByID(ctx, in.TherapistID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForTherapist(ctx, in.AppointmentID, in.TherapistID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	// --------------------------------------------------
	// Reprogramación
	// --------------------------------------------------
	if in.Date != nil || in.StartTime != nil || in.EndTime != nil {
		if in.Date == nil || in.StartTime == nil || in.EndTime == nil {
			return nil, httperr.ErrBusiness("incomplete_schedule")
		}

		loc := timezone.Location(therapist.Timezone)

		start, err := time.ParseInLocation("2006-01-02 15:04", *in.Date+" "+*in.StartTime, loc)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date_or_time")
		}

		end, err := time.ParseInLocation("2006-01-02 15:04", *in.Date+" "+*in.EndTime, loc)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date_or_time")
		}

		start = start.UTC()
		end = end.UTC()

		if !end.After(start) {
			return nil, httperr.ErrBusiness("end_before_start")
		}

		ap.StartTime = start
		ap.EndTime = end
	}

	// --------------------------------------------------
	// Campos simples
	// --------------------------------------------------
	if in.PatientID != nil {
		patient, err := uc.repo.GetPatientForTherapist(ctx, *in.PatientID, in.TherapistID)
		if err != nil {
			return nil, httperr.ErrBusiness("patient_not_found")
		}
		ap.PatientID = patient.ID
		ap.Patient = *patient
	}

	if in.Title != nil {
		ap.Title = *in.Title
	}
	if in.Description != nil {
		ap.Description = *in.Description
	}
	if in.Notes != nil {
		ap.Notes = *in.Notes
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, httperr.ErrBusiness("invalid_price")
		}
		ap.Price = in.Price
	}

	if in.AppointmentType != nil {
		apType, err := domain.ParseType(*in.AppointmentType)
		if err != nil {
			return nil, err
		}
		ap.AppointmentType = string(apType)
	}

	// El grafo completo de transiciones no se valida aquí: cualquier
	// estado conocido puede escribirse directamente
	if in.Status != nil {
		status, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		ap.Status = string(status)
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TherapistID: in.TherapistID,
		Action:      "appointment_updated",
		Entity:      "appointment",
		EntityID:    &ap.ID,
	})

	return ap, nil
}
