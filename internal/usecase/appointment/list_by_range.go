package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/fisiogest/physio-scheduler/internal/domain/appointment"
	"github.com/fisiogest/physio-scheduler/internal/dto"
	"github.com/fisiogest/physio-scheduler/internal/httperr"
)

// ListAppointmentsByRange alimenta las vistas de semana y mes del
// calendario. activeOnly descarta cancelled/no_show.
type ListAppointmentsByRange struct {
	repo domain.Repository
}

func NewListAppointmentsByRange(
	repo domain.Repository,
) *ListAppointmentsByRange {
	return &ListAppointmentsByRange{
		repo: repo,
	}
}

func (uc *ListAppointmentsByRange) Execute(
	ctx context.Context,
	therapistID uuid.UUID,
	start time.Time,
	end time.Time,
	activeOnly bool,
) ([]dto.AppointmentListDTO, error) {

	if !end.After(start) {
		return nil, httperr.ErrBusiness("end_before_start")
	}

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		therapistID,
		start.UTC(),
		end.UTC(),
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		if activeOnly && !domain.Status(ap.Status).Active() {
			continue
		}
		out = append(out, toListDTO(ap))
	}

	return out, nil
}
