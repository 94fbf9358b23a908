package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/fisiogest/physio-scheduler/internal/domain/appointment"
	"github.com/fisiogest/physio-scheduler/internal/models"
)

// Estados que liberan el horario: no cuentan como conflicto
var excludedStatuses = []string{
	string(domain.StatusCancelled),
	string(domain.StatusNoShow),
}

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Therapist
// --------------------------------------------------

func (r *AppointmentGormRepository) GetTherapistByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Therapist, error) {

	var t models.Therapist
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// --------------------------------------------------
// Patient
// --------------------------------------------------

func (r *AppointmentGormRepository) GetPatientForTherapist(
	ctx context.Context,
	patientID uuid.UUID,
	therapistID uuid.UUID,
) (*models.Patient, error) {

	var p models.Patient
	if err := r.db.WithContext(ctx).
		Where("id = ? AND therapist_id = ?", patientID, therapistID).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) FindConflicts(
	ctx context.Context,
	therapistID uuid.UUID,
	start time.Time,
	end time.Time,
	excludeID uuid.UUID,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Patient").
		Where(
			"therapist_id = ? AND status NOT IN ? AND start_time < ? AND end_time > ?",
			therapistID, excludedStatuses, end, start,
		)

	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}

	var conflicts []models.Appointment
	if err := q.Order("start_time ASC").Find(&conflicts).Error; err != nil {
		return nil, err
	}

	return conflicts, nil
}

func (r *AppointmentGormRepository) CreateIfNoConflict(
	ctx context.Context,
	ap *models.Appointment,
) ([]models.Appointment, error) {

	var conflicts []models.Appointment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"therapist_id = ? AND status NOT IN ? AND start_time < ? AND end_time > ?",
				ap.TherapistID, excludedStatuses, ap.EndTime, ap.StartTime,
			).
			Order("start_time ASC").
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			// sin insertar; el caller decide si crear con override
			return nil
		}

		return tx.Create(ap).Error
	})
	if err != nil {
		return nil, err
	}

	if len(conflicts) > 0 {
		// hidratar pacientes para la advertencia
		ids := make([]uuid.UUID, 0, len(conflicts))
		for _, c := range conflicts {
			ids = append(ids, c.ID)
		}

		if err := r.db.WithContext(ctx).
			Preload("Patient").
			Where("id IN ?", ids).
			Order("start_time ASC").
			Find(&conflicts).Error; err != nil {
			return nil, err
		}
	}

	return conflicts, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentForTherapist(
	ctx context.Context,
	appointmentID uuid.UUID,
	therapistID uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Where("id = ? AND therapist_id = ?", appointmentID, therapistID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	therapistID uuid.UUID,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Patient").
		Where(
			"therapist_id = ? AND start_time >= ? AND start_time < ?",
			therapistID, start, end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPatient(
	ctx context.Context,
	therapistID uuid.UUID,
	patientID uuid.UUID,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Where("therapist_id = ? AND patient_id = ?", therapistID, patientID).
		Order("start_time DESC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Charges (ledger)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetChargeForAppointment(
	ctx context.Context,
	appointmentID uuid.UUID,
) (*models.Payment, error) {

	var charge models.Payment
	err := r.db.WithContext(ctx).
		Where("appointment_id = ? AND type = ?", appointmentID, models.PaymentTypeCharge).
		First(&charge).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &charge, nil
}

func (r *AppointmentGormRepository) CreatePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *AppointmentGormRepository) UpdatePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *AppointmentGormRepository) DeletePayment(
	ctx context.Context,
	id uuid.UUID,
) error {
	return r.db.WithContext(ctx).Delete(&models.Payment{}, "id = ?", id).Error
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
