package handlers

import (
	"gorm.io/gorm"

	"github.com/gin-gonic/gin"

	"github.com/fisiogest/physio-scheduler/internal/httperr"
	"github.com/fisiogest/physio-scheduler/internal/httpresp"
	"github.com/fisiogest/physio-scheduler/internal/models"
	"github.com/fisiogest/physio-scheduler/internal/storage"
	"github.com/fisiogest/physio-scheduler/internal/timezone"
)

type MeHandler struct {
	db       *gorm.DB
	uploader *storage.Uploader
}

func NewMeHandler(db *gorm.DB, uploader *storage.Uploader) *MeHandler {
	return &MeHandler{db: db, uploader: uploader}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	therapistID := therapistIDFrom(c)

	var therapist models.Therapist
	if err := h.db.First(&therapist, "id = ?", therapistID).Error; err != nil {
		httperr.NotFound(c, "therapist_not_found", "Terapeuta no encontrado.")
		return
	}

	httpresp.OK(c, therapist)
}

type UpdateMeRequest struct {
	FullName            *string  `json:"full_name"`
	Phone               *string  `json:"phone"`
	LicenseNumber       *string  `json:"license_number"`
	Specialty           *string  `json:"specialty"`
	ClinicName          *string  `json:"clinic_name"`
	ClinicAddress       *string  `json:"clinic_address"`
	DefaultSessionPrice *float64 `json:"default_session_price"`
	Timezone            *string  `json:"timezone"`
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	therapistID := therapistIDFrom(c)

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	var therapist models.Therapist
	if err := h.db.First(&therapist, "id = ?", therapistID).Error; err != nil {
		httperr.NotFound(c, "therapist_not_found", "Terapeuta no encontrado.")
		return
	}

	if req.FullName != nil {
		therapist.FullName = *req.FullName
	}
	if req.Phone != nil {
		therapist.Phone = *req.Phone
	}
	if req.LicenseNumber != nil {
		therapist.LicenseNumber = *req.LicenseNumber
	}
	if req.Specialty != nil {
		therapist.Specialty = *req.Specialty
	}
	if req.ClinicName != nil {
		therapist.ClinicName = *req.ClinicName
	}
	if req.ClinicAddress != nil {
		therapist.ClinicAddress = *req.ClinicAddress
	}
	if req.DefaultSessionPrice != nil {
		if *req.DefaultSessionPrice < 0 {
			httperr.BadRequest(c, "invalid_price", "El precio no puede ser negativo.")
			return
		}
		therapist.DefaultSessionPrice = *req.DefaultSessionPrice
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Timezone inválido.")
			return
		}
		therapist.Timezone = *req.Timezone
	}

	if err := h.db.Save(&therapist).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Error al actualizar el perfil.")
		return
	}

	httpresp.OK(c, therapist)
}

// UploadAvatar recibe un multipart "avatar", lo re-codifica a WebP y lo
// guarda en S3
func (h *MeHandler) UploadAvatar(c *gin.Context) {
	therapistID := therapistIDFrom(c)

	file, _, err := c.Request.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Falta el archivo de imagen.")
		return
	}
	defer file.Close()

	url, err := h.uploader.UploadAvatar(c.Request.Context(), therapistID, file)
	if err != nil {
		if code, ok := httperr.BusinessCode(err); ok {
			httperr.BadRequest(c, code, "No se pudo procesar la imagen.")
			return
		}
		httperr.Internal(c, "failed_to_upload_avatar", "Error al subir el avatar.")
		return
	}

	if err := h.db.Model(&models.Therapist{}).
		Where("id = ?", therapistID).
		Update("avatar_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_save_avatar", "Error al guardar el avatar.")
		return
	}

	httpresp.OK(c, gin.H{"avatar_url": url})
}
