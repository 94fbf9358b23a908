package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	domain "github.com/fisiogest/physio-scheduler/internal/domain/appointment"
	"github.com/fisiogest/physio-scheduler/internal/models"
)

// fakeRepo es un repositorio en memoria para probar los casos de uso
// sin base de datos. Replica la semántica del repositorio gorm: los
// conflictos solo consideran citas activas y la detección usa
// intervalos semiabiertos.
type fakeRepo struct {
	therapists   map[uuid.UUID]*models.Therapist
	patients     map[uuid.UUID]*models.Patient
	appointments map[uuid.UUID]*models.Appointment
	payments     map[uuid.UUID]*models.Payment
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		therapists:   make(map[uuid.UUID]*models.Therapist),
		patients:     make(map[uuid.UUID]*models.Patient),
		appointments: make(map[uuid.UUID]*models.Appointment),
		payments:     make(map[uuid.UUID]*models.Payment),
	}
}

func (r *fakeRepo) addTherapist(defaultPrice float64) *models.Therapist {
	t := &models.Therapist{
		ID:                  uuid.New(),
		Timezone:            "America/Mexico_City",
		DefaultSessionPrice: defaultPrice,
	}
	r.therapists[t.ID] = t
	return t
}

func (r *fakeRepo) addPatient(therapistID uuid.UUID) *models.Patient {
	p := &models.Patient{
		ID:          uuid.New(),
		TherapistID: therapistID,
		FullName:    "Paciente de Prueba",
	}
	r.patients[p.ID] = p
	return p
}

func (r *fakeRepo) addAppointment(
	therapistID, patientID uuid.UUID,
	start, end time.Time,
	status domain.Status,
) *models.Appointment {
	ap := &models.Appointment{
		ID:          uuid.New(),
		TherapistID: therapistID,
		PatientID:   patientID,
		StartTime:   start,
		EndTime:     end,
		Status:      string(status),
	}
	r.appointments[ap.ID] = ap
	return ap
}

// --------------------------------------------------
// domain.Repository
// --------------------------------------------------

func (r *fakeRepo) GetTherapistByID(_ context.Context, id uuid.UUID) (*models.Therapist, error) {
	t, ok := r.therapists[id]
	if !ok {
		return nil, errors.New("therapist not found")
	}
	return t, nil
}

func (r *fakeRepo) GetPatientForTherapist(_ context.Context, patientID, therapistID uuid.UUID) (*models.Patient, error) {
	p, ok := r.patients[patientID]
	if !ok || p.TherapistID != therapistID {
		return nil, errors.New("patient not found")
	}
	return p, nil
}

func (r *fakeRepo) FindConflicts(_ context.Context, therapistID uuid.UUID, start, end time.Time, excludeID uuid.UUID) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.TherapistID != therapistID {
			continue
		}
		if ap.ID == excludeID {
			continue
		}
		if !domain.Status(ap.Status).Active() {
			continue
		}
		if domain.Overlaps(ap.StartTime, ap.EndTime, start, end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateIfNoConflict(ctx context.Context, ap *models.Appointment) ([]models.Appointment, error) {
	conflicts, err := r.FindConflicts(ctx, ap.TherapistID, ap.StartTime, ap.EndTime, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return conflicts, nil
	}
	return nil, r.CreateAppointment(ctx, ap)
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) GetAppointmentForTherapist(_ context.Context, appointmentID, therapistID uuid.UUID) (*models.Appointment, error) {
	ap, ok := r.appointments[appointmentID]
	if !ok || ap.TherapistID != therapistID {
		return nil, errors.New("appointment not found")
	}
	copied := *ap
	return &copied, nil
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	if _, ok := r.appointments[ap.ID]; !ok {
		return errors.New("appointment not found")
	}
	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) ListAppointmentsForPeriod(_ context.Context, therapistID uuid.UUID, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.TherapistID != therapistID {
			continue
		}
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

func (r *fakeRepo) ListAppointmentsForPatient(_ context.Context, therapistID, patientID uuid.UUID) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.TherapistID == therapistID && ap.PatientID == patientID {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetChargeForAppointment(_ context.Context, appointmentID uuid.UUID) (*models.Payment, error) {
	for _, p := range r.payments {
		if p.AppointmentID != nil && *p.AppointmentID == appointmentID && p.Type == models.PaymentTypeCharge {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) CreatePayment(_ context.Context, p *models.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	stored := *p
	r.payments[p.ID] = &stored
	return nil
}

func (r *fakeRepo) UpdatePayment(_ context.Context, p *models.Payment) error {
	if _, ok := r.payments[p.ID]; !ok {
		return errors.New("payment not found")
	}
	stored := *p
	r.payments[p.ID] = &stored
	return nil
}

func (r *fakeRepo) DeletePayment(_ context.Context, id uuid.UUID) error {
	if _, ok := r.payments[id]; !ok {
		return errors.New("payment not found")
	}
	delete(r.payments, id)
	return nil
}

// chargesFor cuenta los cargos asociados a una cita
func (r *fakeRepo) chargesFor(appointmentID uuid.UUID) []*models.Payment {
	var out []*models.Payment
	for _, p := range r.payments {
		if p.AppointmentID != nil && *p.AppointmentID == appointmentID && p.Type == models.PaymentTypeCharge {
			out = append(out, p)
		}
	}
	return out
}
