package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("America/Mexico_City"))
	assert.True(t, IsValid("UTC"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Marte/Olympus_Mons"))
}

func TestLocation_FallsBackToDefault(t *testing.T) {
	loc := Location("no-existe")
	assert.Equal(t, DefaultTimezone, loc.String())
}

func TestDayBounds(t *testing.T) {
	// Ciudad de México es UTC-6: el día local empieza a las 06:00 UTC
	date := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	start, end := DayBounds(date, "America/Mexico_City")

	assert.Equal(t, time.Date(2026, 1, 15, 6, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 1, 16, 6, 0, 0, 0, time.UTC), end)
	assert.Equal(t, time.UTC, start.Location())
}

func TestDayBounds_InstantNearLocalMidnight(t *testing.T) {
	// 2026-01-16 03:00 UTC todavía es 15 de enero en Ciudad de México
	date := time.Date(2026, 1, 16, 3, 0, 0, 0, time.UTC)

	start, _ := DayBounds(date, "America/Mexico_City")

	require.Equal(t, time.Date(2026, 1, 15, 6, 0, 0, 0, time.UTC), start)
}
