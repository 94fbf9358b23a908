package appointment

import (
	"time"

	"github.com/fisiogest/physio-scheduler/internal/models"
)

// Overlaps es la única fuente de verdad sobre solapamiento de intervalos,
// usada tanto por el detector de conflictos como por el layout del
// calendario. Semántica de intervalo semiabierto [start, end): una cita que
// termina a las 10:00 NO choca con otra que empieza a las 10:00.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// OverlapsRange aplica el predicado sobre una cita existente
func OverlapsRange(ap *models.Appointment, start, end time.Time) bool {
	return Overlaps(ap.StartTime, ap.EndTime, start, end)
}
