package appointment

import "github.com/fisiogest/physio-scheduler/internal/models"

// ResolveChargeAmount determina cuánto cobrar al completar una cita:
// el precio propio de la cita si es positivo, si no el precio de sesión
// por defecto del terapeuta, si no nada (0).
func ResolveChargeAmount(ap *models.Appointment, therapist *models.Therapist) float64 {
	if ap.Price != nil && *ap.Price > 0 {
		return *ap.Price
	}
	if therapist.DefaultSessionPrice > 0 {
		return therapist.DefaultSessionPrice
	}
	return 0
}
