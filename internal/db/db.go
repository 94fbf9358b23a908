package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fisiogest/physio-scheduler/internal/config"
	"github.com/fisiogest/physio-scheduler/internal/models"
	"github.com/fisiogest/physio-scheduler/internal/timezone"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Therapist{},
		&models.Patient{},
		&models.Appointment{},
		&models.ClinicalNote{},
		&models.Payment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(
		`UPDATE therapists SET timezone = ? WHERE timezone IS NULL OR timezone = ''`,
		timezone.DefaultTimezone,
	)

	return db
}
