package timezone

import "time"

const DefaultTimezone = "America/Mexico_City"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// DayBounds devuelve [inicio, fin) del día calendario de date en el
// timezone tz, ambos en UTC, para consultar citas almacenadas en UTC.
func DayBounds(date time.Time, tz string) (time.Time, time.Time) {
	loc := Location(tz)
	d := date.In(loc)

	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24 * time.Hour)

	return start.UTC(), end.UTC()
}
