package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/fisiogest/physio-scheduler/internal/domain/appointment"
	"github.com/fisiogest/physio-scheduler/internal/httperr"
)

// utcAt convierte una hora local de Ciudad de México (UTC-6) a UTC,
// igual que hace la normalización de entrada
func utcAt(hour, min int) time.Time {
	loc, _ := time.LoadLocation("America/Mexico_City")
	return time.Date(2026, 3, 10, hour, min, 0, 0, loc).UTC()
}

func baseInput(therapistID, patientID uuid.UUID) CreateAppointmentInput {
	return CreateAppointmentInput{
		TherapistID: therapistID,
		PatientID:   patientID,
		Title:       "Sesión de rehabilitación",
		Date:        "2026-03-10",
		StartTime:   "09:00",
		EndTime:     "10:00",
	}
}

func TestCreateAppointment_NoConflict(t *testing.T) {
	repo := newFakeRepo()
	therapist := repo.addTherapist(0)
	patient := repo.addPatient(therapist.ID)

	uc := NewCreateAppointment(repo, nil)

	outcome, err := uc.Execute(context.Background(), baseInput(therapist.ID, patient.ID))
	require.NoError(t, err)
	require.True(t, outcome.Created())

	ap := outcome.Appointment
	assert.Equal(t, string(domain.StatusScheduled), ap.Status)
	assert.Equal(t, string(domain.TypeSession), ap.AppointmentType)
	assert.Equal(t, utcAt(9, 0), ap.StartTime)
	assert.Equal(t, utcAt(10, 0), ap.EndTime)

	// quedó persistida
	stored, err := repo.GetAppointmentForTherapist(context.Background(), ap.ID, therapist.ID)
	require.NoError(t, err)
	assert.Equal(t, ap.StartTime, stored.StartTime)
}

func TestCreateAppointment_ConflictReturnsDataNotError(t *testing.T) {
	repo := newFakeRepo()
	therapist := repo.addTherapist(0)
	patient := repo.addPatient(therapist.ID)

	existing := repo.addAppointment(
		therapist.ID, patient.ID,
		utcAt(9, 30), utcAt(10, 30),
		domain.StatusScheduled,
	)

	uc := NewCreateAppointment(repo, nil)

	outcome, err := uc.Execute(context.Background(), baseInput(therapist.ID, patient.ID))
	require.NoError(t, err)

	assert.False(t, outcome.Created())
	require.Len(t, outcome.Conflicts, 1)
	assert.Equal(t, existing.ID, outcome.Conflicts[0].ID)

	// nada nuevo persistido
	assert.Len(t, repo.appointments, 1)
}

func TestCreateAppointment_CancelledDoesNotBlock(t *testing.T) {
	repo := newFakeRepo()
	therapist := repo.addTherapist(0)
	patient := repo.addPatient(therapist.ID)

	repo.addAppointment(
		therapist.ID, patient.ID,
		utcAt(9, 0), utcAt(10, 0),
		domain.StatusCancelled,
	)
	repo.addAppointment(
		therapist.ID, patient.ID,
		utcAt(9, 0), utcAt(10, 0),
		domain.StatusNoShow,
	)

	uc := NewCreateAppointment(repo, nil)

	outcome, err := uc.Execute(context.Background(), baseInput(therapist.ID, patient.ID))
	require.NoError(t, err)
	assert.True(t, outcome.Created())
}

func TestCreateAppointment_BackToBackIsNotConflict(t *testing.T) {
	repo := newFakeRepo()
	therapist := repo.addTherapist(0)
	patient := repo.addPatient(therapist.ID)

	repo.addAppointment(
		therapist.ID, patient.ID,
		utcAt(8, 0), utcAt(9, 0),
		domain.StatusConfirmed,
	)

	uc := NewCreateAppointment(repo, nil)

	outcome, err := uc.Execute(context.Background(), baseInput(therapist.ID, patient.ID))
	require.NoError(t, err)
	assert.True(t, outcome.Created())
}

func TestCreateAppointment_OverrideSkipsCheck(t *testing.T) {
	repo := newFakeRepo()
	therapist := repo.addTherapist(0)
	patient := repo.addPatient(therapist.ID)

	repo.addAppointment(
		therapist.ID, patient.ID,
		utcAt(9, 0), utcAt(10, 0),
		domain.StatusScheduled,
	)

	uc := NewCreateAppointment(repo, nil)

	in := baseInput(therapist.ID, patient.ID)
	in.Override = true

	outcome, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, outcome.Created())
	assert.Len(t, repo.appointments, 2)
}

func TestCreateAppointment_Validation(t *testing.T) {
	repo := newFakeRepo()
	therapist := repo.addTherapist(0)
	patient := repo.addPatient(therapist.ID)

	uc := NewCreateAppointment(repo, nil)

	t.Run("fin antes del inicio", func(t *testing.T) {
		in := baseInput(therapist.ID, patient.ID)
		in.StartTime = "10:00"
		in.EndTime = "09:00"

		_, err := uc.Execute(context.Background(), in)
		assert.True(t, httperr.IsBusiness(err, "end_before_start"))
	})

	t.Run("duracion cero", func(t *testing.T) {
		in := baseInput(therapist.ID, patient.ID)
		in.EndTime = in.StartTime

		_, err := uc.Execute(context.Background(), in)
		assert.True(t, httperr.IsBusiness(err, "end_before_start"))
	})

	t.Run("fecha invalida", func(t *testing.T) {
		in := baseInput(therapist.ID, patient.ID)
		in.Date = "10/03/2026"

		_, err := uc.Execute(context.Background(), in)
		assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
	})

	t.Run("paciente de otro terapeuta", func(t *testing.T) {
		otherTherapist := repo.addTherapist(0)
		in := baseInput(otherTherapist.ID, patient.ID)

		_, err := uc.Execute(context.Background(), in)
		assert.True(t, httperr.IsBusiness(err, "patient_not_found"))
	})

	t.Run("tipo invalido", func(t *testing.T) {
		in := baseInput(therapist.ID, patient.ID)
		in.AppointmentType = "masaje"

		_, err := uc.Execute(context.Background(), in)
		assert.True(t, httperr.IsBusiness(err, "invalid_appointment_type"))
	})
}

func TestCheckConflicts_ExcludesOwnAppointment(t *testing.T) {
	repo := newFakeRepo()
	therapist := repo.addTherapist(0)
	patient := repo.addPatient(therapist.ID)

	existing := repo.addAppointment(
		therapist.ID, patient.ID,
		utcAt(9, 0), utcAt(10, 0),
		domain.StatusScheduled,
	)

	uc := NewCheckConflicts(repo)

	// sin exclusión la cita choca consigo misma
	conflicts, err := uc.Execute(
		context.Background(),
		therapist.ID,
		utcAt(9, 0), utcAt(10, 0),
		uuid.Nil,
	)
	require.NoError(t, err)
	assert.Len(t, conflicts, 1)

	// con exclusión el horario queda libre para editarla
	conflicts, err = uc.Execute(
		context.Background(),
		therapist.ID,
		utcAt(9, 0), utcAt(10, 0),
		existing.ID,
	)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}
