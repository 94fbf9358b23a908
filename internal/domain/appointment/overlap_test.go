package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		aStart time.Time
		aEnd   time.Time
		bStart time.Time
		bEnd   time.Time
		want   bool
	}{
		{
			name:   "solapamiento parcial",
			aStart: at(9, 0), aEnd: at(10, 0),
			bStart: at(9, 30), bEnd: at(10, 30),
			want: true,
		},
		{
			name:   "contencion total",
			aStart: at(9, 0), aEnd: at(12, 0),
			bStart: at(10, 0), bEnd: at(11, 0),
			want: true,
		},
		{
			name:   "identicos",
			aStart: at(9, 0), aEnd: at(10, 0),
			bStart: at(9, 0), bEnd: at(10, 0),
			want: true,
		},
		{
			name:   "disjuntos",
			aStart: at(9, 0), aEnd: at(10, 0),
			bStart: at(11, 0), bEnd: at(12, 0),
			want: false,
		},
		{
			// intervalos semiabiertos: el fin de una coincide con el
			// inicio de la otra y NO es conflicto (citas consecutivas)
			name:   "extremos que se tocan",
			aStart: at(9, 0), aEnd: at(10, 0),
			bStart: at(10, 0), bEnd: at(11, 0),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			assert.Equal(t, tt.want, got)

			// el predicado es simétrico
			reversed := Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd)
			assert.Equal(t, got, reversed)
		})
	}
}
