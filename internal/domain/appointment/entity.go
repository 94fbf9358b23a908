package appointment

import (
	"time"

	"github.com/fisiogest/physio-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	if ap.CompletedAt == nil {
		ap.CompletedAt = &now
	}
	return nil
}

func MarkNoShow(ap *models.Appointment) error {
	if err := CanMarkNoShow(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusNoShow)
	return nil
}
