package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/fisiogest/physio-scheduler/internal/domain/appointment"
	"github.com/fisiogest/physio-scheduler/internal/httperr"
	"github.com/fisiogest/physio-scheduler/internal/models"
)

func price(v float64) *float64 { return &v }

func TestCompleteAppointment_CreatesCharge(t *testing.T) {
	repo := newFakeRepo()
	therapist := repo.addTherapist(0)
	patient := repo.addPatient(therapist.ID)

	ap := repo.addAppointment(
		therapist.ID, patient.ID,
		utcAt(9, 0), utcAt(10, 0),
		domain.StatusConfirmed,
	)
	ap.Price = price(100)

	uc := NewCompleteAppointment(repo, nil)

	done, err := uc.Execute(context.Background(), CompleteAppointmentInput{
		TherapistID:   therapist.ID,
		AppointmentID: ap.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), done.Status)
	require.NotNil(t, done.CompletedAt)

	charges := repo.chargesFor(ap.ID)
	require.Len(t, charges, 1)
	assert.Equal(t, 100.0, charges[0].Amount)
	assert.Equal(t, models.PaymentTypeCharge, charges[0].Type)
	assert.Equal(t, patient.ID, charges[0].PatientID)
}

func TestCompleteAppointment_IsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	therapist := repo.addTherapist(0)
	patient := repo.addPatient(therapist.ID)

	ap := repo.addAppointment(
		therapist.ID, patient.ID,
		utcAt(9, 0), utcAt(10, 0),
		domain.StatusScheduled,
	)
	ap.Price = price(100)

	uc := NewCompleteAppointment(repo, nil)
	in := CompleteAppointmentInput{
		TherapistID:   therapist.ID,
		AppointmentID: ap.ID,
	}

	_, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	// repetir no duplica el cargo ni falla
	_, err = uc.Execute(context.Background(), in)
	require.NoError(t, err)

	charges := repo.chargesFor(ap.ID)
	require.Len(t, charges, 1)
	assert.Equal(t, 100.0, charges[0].Amount)
}

func TestCompleteAppointment_AdjustsChargeOnNewPrice(t *testing.T) {
	repo := newFakeRepo()
	therapist := repo.addTherapist(0)
	patient := repo.addPatient(therapist.ID)

	ap := repo.addAppointment(
		therapist.ID, patient.ID,
		utcAt(9, 0), utcAt(10, 0),
		domain.StatusScheduled,
	)
	ap.Price = price(100)

	uc := NewCompleteAppointment(repo, nil)

	_, err := uc.Execute(context.Background(), CompleteAppointmentInput{
		TherapistID:   therapist.ID,
		AppointmentID: ap.ID,
	})
	require.NoError(t, err)

	// completar de nuevo con otro precio ajusta el cargo existente
	_, err = uc.Execute(context.Background(), CompleteAppointmentInput{
		TherapistID:   therapist.ID,
		AppointmentID: ap.ID,
		Price:         price(150),
	})
	require.NoError(t, err)

	charges := repo.chargesFor(ap.ID)
	require.Len(t, charges, 1)
	assert.Equal(t, 150.0, charges[0].Amount)
}

func TestCompleteAppointment_ZeroPriceRemovesCharge(t *testing.T) {
	repo := newFakeRepo()
	therapist := repo.addTherapist(50)
	patient := repo.addPatient(therapist.ID)

	ap := repo.addAppointment(
		therapist.ID, patient.ID,
		utcAt(9, 0), utcAt(10, 0),
		domain.StatusScheduled,
	)
	ap.Price = price(100)

	uc := NewCompleteAppointment(repo, nil)

	_, err := uc.Execute(context.Background(), CompleteAppointmentInput{
		TherapistID:   therapist.ID,
		AppointmentID: ap.ID,
	})
	require.NoError(t, err)
	require.Len(t, repo.chargesFor(ap.ID), 1)

	// la sesión pasó a ser gratuita: el cargo desaparece
	_, err = uc.Execute(context.Background(), CompleteAppointmentInput{
		TherapistID:   therapist.ID,
		AppointmentID: ap.ID,
		Price:         price(0),
	})
	require.NoError(t, err)
	assert.Empty(t, repo.chargesFor(ap.ID))
}

func TestCompleteAppointment_NegativePriceRejected(t *testing.T) {
	repo := newFakeRepo()
	therapist := repo.addTherapist(50)
	patient := repo.addPatient(therapist.ID)

	ap := repo.addAppointment(
		therapist.ID, patient.ID,
		utcAt(9, 0), utcAt(10, 0),
		domain.StatusScheduled,
	)
	ap.Price = price(100)

	uc := NewCompleteAppointment(repo, nil)

	_, err := uc.Execute(context.Background(), CompleteAppointmentInput{
		TherapistID:   therapist.ID,
		AppointmentID: ap.ID,
		Price:         price(-25),
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_price"))

	// nada persistido: ni estado ni precio
	stored, err := repo.GetAppointmentForTherapist(context.Background(), ap.ID, therapist.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusScheduled), stored.Status)
	require.NotNil(t, stored.Price)
	assert.Equal(t, 100.0, *stored.Price)
	assert.Empty(t, repo.chargesFor(ap.ID))
}

func TestCompleteAppointment_FallsBackToDefaultPrice(t *testing.T) {
	repo := newFakeRepo()
	therapist := repo.addTherapist(50)
	patient := repo.addPatient(therapist.ID)

	ap := repo.addAppointment(
		therapist.ID, patient.ID,
		utcAt(9, 0), utcAt(10, 0),
		domain.StatusScheduled,
	)

	uc := NewCompleteAppointment(repo, nil)

	_, err := uc.Execute(context.Background(), CompleteAppointmentInput{
		TherapistID:   therapist.ID,
		AppointmentID: ap.ID,
	})
	require.NoError(t, err)

	charges := repo.chargesFor(ap.ID)
	require.Len(t, charges, 1)
	assert.Equal(t, 50.0, charges[0].Amount)
}

func TestCompleteAppointment_NoPriceAnywhereNoCharge(t *testing.T) {
	repo := newFakeRepo()
	therapist := repo.addTherapist(0)
	patient := repo.addPatient(therapist.ID)

	ap := repo.addAppointment(
		therapist.ID, patient.ID,
		utcAt(9, 0), utcAt(10, 0),
		domain.StatusScheduled,
	)

	uc := NewCompleteAppointment(repo, nil)

	done, err := uc.Execute(context.Background(), CompleteAppointmentInput{
		TherapistID:   therapist.ID,
		AppointmentID: ap.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), done.Status)
	assert.Empty(t, repo.chargesFor(ap.ID))
}

func TestCompleteAppointment_RejectsCancelled(t *testing.T) {
	repo := newFakeRepo()
	therapist := repo.addTherapist(0)
	patient := repo.addPatient(therapist.ID)

	ap := repo.addAppointment(
		therapist.ID, patient.ID,
		utcAt(9, 0), utcAt(10, 0),
		domain.StatusCancelled,
	)

	uc := NewCompleteAppointment(repo, nil)

	_, err := uc.Execute(context.Background(), CompleteAppointmentInput{
		TherapistID:   therapist.ID,
		AppointmentID: ap.ID,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}
