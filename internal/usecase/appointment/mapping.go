package appointment

import (
	"github.com/fisiogest/physio-scheduler/internal/dto"
	"github.com/fisiogest/physio-scheduler/internal/models"
)

func toListDTO(ap models.Appointment) dto.AppointmentListDTO {
	return dto.AppointmentListDTO{
		ID:              ap.ID,
		Title:           ap.Title,
		StartTime:       ap.StartTime,
		EndTime:         ap.EndTime,
		DurationMinutes: ap.DurationMinutes(),
		Status:          ap.Status,
		AppointmentType: ap.AppointmentType,
		PatientID:       ap.PatientID,
		PatientName:     ap.Patient.FullName,
		PatientPhone:    ap.Patient.Phone,
		Price:           ap.Price,
		Notes:           ap.Notes,
	}
}

func toConflictDTOs(conflicts []models.Appointment) []dto.ConflictDTO {
	out := make([]dto.ConflictDTO, 0, len(conflicts))
	for _, c := range conflicts {
		out = append(out, dto.ConflictDTO{
			ID:          c.ID,
			Title:       c.Title,
			PatientName: c.Patient.FullName,
			StartTime:   c.StartTime,
			EndTime:     c.EndTime,
			Status:      c.Status,
		})
	}
	return out
}
