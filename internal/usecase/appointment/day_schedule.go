package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/fisiogest/physio-scheduler/internal/domain/appointment"
	"github.com/fisiogest/physio-scheduler/internal/dto"
	"github.com/fisiogest/physio-scheduler/internal/timezone"
)

// GetDaySchedule devuelve las citas activas de un día con su posición de
// columna para el calendario. Las cancelled/no_show no aparecen.
type GetDaySchedule struct {
	repo domain.Repository
}

func NewGetDaySchedule(repo domain.Repository) *GetDaySchedule {
	return &GetDaySchedule{repo: repo}
}

func (uc *GetDaySchedule) Execute(
	ctx context.Context,
	therapistID uuid.UUID,
	date time.Time,
) ([]dto.DayScheduleItemDTO, error) {

	therapist, err := uc.repo.GetTherapistByID(ctx, therapistID)
	if err != nil {
		return nil, err
	}

	start, end := timezone.DayBounds(date, therapist.Timezone)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, therapistID, start, end)
	if err != nil {
		return nil, err
	}

	layout := domain.LayoutDay(appointments)

	items := make([]dto.DayScheduleItemDTO, 0, len(layout))
	for _, ap := range appointments {
		col, ok := layout[ap.ID]
		if !ok {
			// filtrada por estado: no se pinta
			continue
		}

		items = append(items, dto.DayScheduleItemDTO{
			AppointmentListDTO: toListDTO(ap),
			ColumnIndex:        col.ColumnIndex,
			TotalColumns:       col.TotalColumns,
		})
	}

	return items, nil
}
