package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fisiogest/physio-scheduler/internal/middleware"
	"github.com/fisiogest/physio-scheduler/internal/timezone"
)

func therapistIDFrom(c *gin.Context) uuid.UUID {
	return c.MustGet(middleware.ContextTherapistID).(uuid.UUID)
}

func parseDateInTZ(tz string, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(tz),
	)
}

// parseRangeInTZ arma [start, end) en UTC a partir de una fecha y dos
// horas expresadas en el timezone del terapeuta
func parseRangeInTZ(tz, dateStr, startStr, endStr string) (time.Time, time.Time, error) {
	loc := timezone.Location(tz)

	start, err := time.ParseInLocation("2006-01-02 15:04", dateStr+" "+startStr, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	end, err := time.ParseInLocation("2006-01-02 15:04", dateStr+" "+endStr, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return start.UTC(), end.UTC(), nil
}

// scheduleKeysDates devuelve las fechas (en el timezone del terapeuta)
// cuyas entradas de cache de agenda afecta una escritura
func scheduleKeysDates(tz string, times ...time.Time) []string {
	loc := timezone.Location(tz)

	seen := make(map[string]bool)
	var dates []string

	for _, t := range times {
		if t.IsZero() {
			continue
		}
		d := t.In(loc).Format("2006-01-02")
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}

	return dates
}
