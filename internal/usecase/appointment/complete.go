package appointment

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/fisiogest/physio-scheduler/internal/audit"
	domain "github.com/fisiogest/physio-scheduler/internal/domain/appointment"
	"github.com/fisiogest/physio-scheduler/internal/httperr"
	"github.com/fisiogest/physio-scheduler/internal/models"
	"github.com/fisiogest/physio-scheduler/internal/timezone"
)

type CompleteAppointmentInput struct {
	TherapistID   uuid.UUID
	AppointmentID uuid.UUID

	// Price opcional ajusta el precio de la cita al completarla.
	// Cero elimina el cargo existente; negativos se rechazan.
	Price *float64
}

type CompleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	in CompleteAppointmentInput,
) (*models.Appointment, error) {

	therapist, err := uc.repo.GetTherapistByID(ctx, in.TherapistID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForTherapist(ctx, in.AppointmentID, in.TherapistID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if in.Price != nil {
		if *in.Price < 0 {
			return nil, httperr.ErrBusiness("invalid_price")
		}
		ap.Price = in.Price
	}

	now := timezone.NowIn(therapist.Timezone)
	if err := domain.Complete(ap, now); err != nil {
		return nil, err
	}

	// El cambio de estado es el efecto primario: si falla, se aborta
	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// La sincronización del cargo que falle después no revierte el estado
	if err := uc.syncCharge(ctx, ap, therapist); err != nil {
		log.Printf("charge sync failed for appointment %s: %v", ap.ID, err)
	}

	uc.audit.Dispatch(audit.Event{
		TherapistID: in.TherapistID,
		Action:      "appointment_completed",
		Entity:      "appointment",
		EntityID:    &ap.ID,
	})

	return ap, nil
}

// syncCharge mantiene exactamente un cargo por cita completada:
// lo crea si falta, ajusta el monto si cambió y lo elimina si el precio
// pasó a ser <= 0. Repetir la operación al mismo precio no duplica nada.
func (uc *CompleteAppointment) syncCharge(
	ctx context.Context,
	ap *models.Appointment,
	therapist *models.Therapist,
) error {

	existing, err := uc.repo.GetChargeForAppointment(ctx, ap.ID)
	if err != nil {
		return err
	}

	if ap.Price != nil && *ap.Price <= 0 {
		if existing != nil {
			return uc.repo.DeletePayment(ctx, existing.ID)
		}
		return nil
	}

	amount := domain.ResolveChargeAmount(ap, therapist)
	if amount <= 0 {
		return nil
	}

	if existing == nil {
		apID := ap.ID
		charge := &models.Payment{
			TherapistID:   ap.TherapistID,
			PatientID:     ap.PatientID,
			AppointmentID: &apID,
			Amount:        amount,
			Type:          models.PaymentTypeCharge,
			Description:   fmt.Sprintf("Cargo por sesión - %s", ap.Patient.FullName),
		}
		return uc.repo.CreatePayment(ctx, charge)
	}

	if existing.Amount != amount {
		existing.Amount = amount
		return uc.repo.UpdatePayment(ctx, existing)
	}

	return nil
}
