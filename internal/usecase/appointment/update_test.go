package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/fisiogest/physio-scheduler/internal/domain/appointment"
	"github.com/fisiogest/physio-scheduler/internal/httperr"
)

func strptr(s string) *string { return &s }

func TestUpdateAppointment_Reschedule(t *testing.T) {
	repo := newFakeRepo()
	therapist := repo.addTherapist(0)
	patient := repo.addPatient(therapist.ID)

	ap := repo.addAppointment(
		therapist.ID, patient.ID,
		utcAt(9, 0), utcAt(10, 0),
		domain.StatusScheduled,
	)

	uc := NewUpdateAppointment(repo, nil)

	updated, err := uc.Execute(context.Background(), UpdateAppointmentInput{
		TherapistID:   therapist.ID,
		AppointmentID: ap.ID,
		Date:          strptr("2026-03-10"),
		StartTime:     strptr("14:00"),
		EndTime:       strptr("15:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, utcAt(14, 0), updated.StartTime)
	assert.Equal(t, utcAt(15, 0), updated.EndTime)
}

// Reprogramar no pasa por la detección de conflictos: mover una cita
// encima de otra es una decisión del terapeuta, que puede consultar
// CheckConflicts por separado si quiere la advertencia.
func TestUpdateAppointment_RescheduleOntoBusySlotSucceeds(t *testing.T) {
	repo := newFakeRepo()
	therapist := repo.addTherapist(0)
	patient := repo.addPatient(therapist.ID)

	repo.addAppointment(
		therapist.ID, patient.ID,
		utcAt(14, 0), utcAt(15, 0),
		domain.StatusScheduled,
	)
	ap := repo.addAppointment(
		therapist.ID, patient.ID,
		utcAt(9, 0), utcAt(10, 0),
		domain.StatusScheduled,
	)

	uc := NewUpdateAppointment(repo, nil)

	updated, err := uc.Execute(context.Background(), UpdateAppointmentInput{
		TherapistID:   therapist.ID,
		AppointmentID: ap.ID,
		Date:          strptr("2026-03-10"),
		StartTime:     strptr("14:00"),
		EndTime:       strptr("15:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, utcAt(14, 0), updated.StartTime)
}

func TestUpdateAppointment_PartialScheduleRejected(t *testing.T) {
	repo := newFakeRepo()
	therapist := repo.addTherapist(0)
	patient := repo.addPatient(therapist.ID)

	ap := repo.addAppointment(
		therapist.ID, patient.ID,
		utcAt(9, 0), utcAt(10, 0),
		domain.StatusScheduled,
	)

	uc := NewUpdateAppointment(repo, nil)

	_, err := uc.Execute(context.Background(), UpdateAppointmentInput{
		TherapistID:   therapist.ID,
		AppointmentID: ap.ID,
		StartTime:     strptr("14:00"),
	})
	assert.True(t, httperr.IsBusiness(err, "incomplete_schedule"))
}

func TestUpdateAppointment_NilFieldsUntouched(t *testing.T) {
	repo := newFakeRepo()
	therapist := repo.addTherapist(0)
	patient := repo.addPatient(therapist.ID)

	ap := repo.addAppointment(
		therapist.ID, patient.ID,
		utcAt(9, 0), utcAt(10, 0),
		domain.StatusScheduled,
	)
	ap.Title = "Evaluación inicial"
	ap.Notes = "primera visita"

	uc := NewUpdateAppointment(repo, nil)

	updated, err := uc.Execute(context.Background(), UpdateAppointmentInput{
		TherapistID:   therapist.ID,
		AppointmentID: ap.ID,
		Notes:         strptr("seguimiento"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Evaluación inicial", updated.Title)
	assert.Equal(t, "seguimiento", updated.Notes)
	assert.Equal(t, utcAt(9, 0), updated.StartTime)
}

func TestUpdateAppointment_StatusWrittenDirectly(t *testing.T) {
	repo := newFakeRepo()
	therapist := repo.addTherapist(0)
	patient := repo.addPatient(therapist.ID)

	ap := repo.addAppointment(
		therapist.ID, patient.ID,
		utcAt(9, 0), utcAt(10, 0),
		domain.StatusScheduled,
	)

	uc := NewUpdateAppointment(repo, nil)

	updated, err := uc.Execute(context.Background(), UpdateAppointmentInput{
		TherapistID:   therapist.ID,
		AppointmentID: ap.ID,
		Status:        strptr("in_progress"),
	})
	require.NoError(t, err)
	assert.Equal(t, "in_progress", updated.Status)

	_, err = uc.Execute(context.Background(), UpdateAppointmentInput{
		TherapistID:   therapist.ID,
		AppointmentID: ap.ID,
		Status:        strptr("pausada"),
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}
