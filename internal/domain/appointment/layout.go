package appointment

import (
	"sort"

	"github.com/google/uuid"

	"github.com/fisiogest/physio-scheduler/internal/models"
)

// ======================================================
// Calendar layout
// ======================================================

// ColumnAssignment posiciona una cita dentro de su grupo de solapamiento:
// left = ColumnIndex / TotalColumns, width = 1 / TotalColumns.
type ColumnAssignment struct {
	ColumnIndex  int `json:"column_index"`
	TotalColumns int `json:"total_columns"`
}

// LayoutDay agrupa las citas de un día que se solapan entre sí (por cadena
// de solapamientos dos a dos, no necesariamente todas contra todas) y asigna
// a cada una su columna para que el calendario las pinte lado a lado.
//
// Citas cancelled/no_show no se pintan y quedan fuera del mapa resultante.
// Cada cita de un grupo conserva su columna durante toda la vida del grupo,
// aunque una cita anterior haya terminado y su columna quede libre.
func LayoutDay(appointments []models.Appointment) map[uuid.UUID]ColumnAssignment {
	layout := make(map[uuid.UUID]ColumnAssignment)

	active := make([]models.Appointment, 0, len(appointments))
	for _, ap := range appointments {
		if Status(ap.Status).Active() {
			active = append(active, ap)
		}
	}

	if len(active) == 0 {
		return layout
	}

	// Orden por inicio; empates conservan el orden de entrada
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].StartTime.Before(active[j].StartTime)
	})

	var groups [][]models.Appointment

	currentGroup := []models.Appointment{active[0]}
	groupEnd := active[0].EndTime

	for _, ap := range active[1:] {
		if ap.StartTime.Before(groupEnd) {
			// entra al grupo actual
			currentGroup = append(currentGroup, ap)
			if ap.EndTime.After(groupEnd) {
				groupEnd = ap.EndTime
			}
			continue
		}

		groups = append(groups, currentGroup)
		currentGroup = []models.Appointment{ap}
		groupEnd = ap.EndTime
	}
	groups = append(groups, currentGroup)

	for _, group := range groups {
		totalCols := len(group)
		for colIndex, ap := range group {
			layout[ap.ID] = ColumnAssignment{
				ColumnIndex:  colIndex,
				TotalColumns: totalCols,
			}
		}
	}

	return layout
}
