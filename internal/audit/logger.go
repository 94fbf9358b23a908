package audit

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fisiogest/physio-scheduler/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(
	therapistID uuid.UUID,
	action string,
	entity string,
	entityID *uuid.UUID,
	metadata any,
) error {

	var metaJSON string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		TherapistID: therapistID,
		Action:      action,
		Entity:      entity,
		EntityID:    entityID,
		Metadata:    metaJSON,
	}

	return l.db.Create(&entry).Error
}
