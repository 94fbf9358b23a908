package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fisiogest/physio-scheduler/internal/models"
)

func TestResolveChargeAmount(t *testing.T) {
	price := func(v float64) *float64 { return &v }

	therapist := &models.Therapist{DefaultSessionPrice: 50}

	// el precio propio de la cita manda
	ap := &models.Appointment{Price: price(120)}
	assert.Equal(t, 120.0, ResolveChargeAmount(ap, therapist))

	// sin precio propio cae al precio por defecto del terapeuta
	ap = &models.Appointment{}
	assert.Equal(t, 50.0, ResolveChargeAmount(ap, therapist))

	// precio propio no positivo tambien cae al default
	ap = &models.Appointment{Price: price(0)}
	assert.Equal(t, 50.0, ResolveChargeAmount(ap, therapist))

	// sin precio en ninguna parte no hay cargo
	ap = &models.Appointment{}
	assert.Equal(t, 0.0, ResolveChargeAmount(ap, &models.Therapist{}))
}
