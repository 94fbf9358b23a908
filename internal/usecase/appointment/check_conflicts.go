package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/fisiogest/physio-scheduler/internal/domain/appointment"
	"github.com/fisiogest/physio-scheduler/internal/dto"
	"github.com/fisiogest/physio-scheduler/internal/httperr"
)

// CheckConflicts es el detector de conflictos independiente: solo lee.
// excludeID permite editar una cita sin que choque consigo misma.
type CheckConflicts struct {
	repo domain.Repository
}

func NewCheckConflicts(repo domain.Repository) *CheckConflicts {
	return &CheckConflicts{repo: repo}
}

func (uc *CheckConflicts) Execute(
	ctx context.Context,
	therapistID uuid.UUID,
	start time.Time,
	end time.Time,
	excludeID uuid.UUID,
) ([]dto.ConflictDTO, error) {

	if !end.After(start) {
		return nil, httperr.ErrBusiness("end_before_start")
	}

	conflicts, err := uc.repo.FindConflicts(
		ctx,
		therapistID,
		start.UTC(),
		end.UTC(),
		excludeID,
	)
	if err != nil {
		return nil, err
	}

	return toConflictDTOs(conflicts), nil
}
