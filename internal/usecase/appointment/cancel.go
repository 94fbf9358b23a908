package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/fisiogest/physio-scheduler/internal/audit"
	domain "github.com/fisiogest/physio-scheduler/internal/domain/appointment"
	"github.com/fisiogest/physio-scheduler/internal/httperr"
	"github.com/fisiogest/physio-scheduler/internal/models"
	"github.com/fisiogest/physio-scheduler/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	therapistID uuid.UUID,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	therapist, err := uc.repo.GetTherapistByID(ctx, therapistID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForTherapist(ctx, appointmentID, therapistID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(therapist.Timezone)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TherapistID: therapistID,
		Action:      "appointment_cancelled",
		Entity:      "appointment",
		EntityID:    &ap.ID,
	})

	return ap, nil
}
