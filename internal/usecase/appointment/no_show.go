package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/fisiogest/physio-scheduler/internal/audit"
	domain "github.com/fisiogest/physio-scheduler/internal/domain/appointment"
	"github.com/fisiogest/physio-scheduler/internal/httperr"
	"github.com/fisiogest/physio-scheduler/internal/models"
)

type MarkNoShow struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewMarkNoShow(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *MarkNoShow {
	return &MarkNoShow{
		repo:  repo,
		audit: audit,
	}
}

func (uc *MarkNoShow) Execute(
	ctx context.Context,
	therapistID uuid.UUID,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForTherapist(ctx, appointmentID, therapistID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.MarkNoShow(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TherapistID: therapistID,
		Action:      "appointment_no_show",
		Entity:      "appointment",
		EntityID:    &ap.ID,
	})

	return ap, nil
}
