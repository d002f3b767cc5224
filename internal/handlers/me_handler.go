package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonflowpro/salon-api/internal/httperr"
	"github.com/salonflowpro/salon-api/internal/middleware"
	"github.com/salonflowpro/salon-api/internal/models"
	"github.com/salonflowpro/salon-api/internal/storage"
)

const maxAvatarBytes = 5 << 20

type MeHandler struct {
	db      *gorm.DB
	avatars *storage.AvatarStorage
}

func NewMeHandler(db *gorm.DB, avatars *storage.AvatarStorage) *MeHandler {
	return &MeHandler{db: db, avatars: avatars}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	userID, ok := userIDVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_user_id_type"})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":         user.ID,
			"name":       user.Name,
			"email":      user.Email,
			"phone":      user.Phone,
			"role":       user.Role,
			"avatar_url": user.AvatarURL,
		},
	})
}

// UploadAvatar recebe a imagem multipart, recomprime para webp e
// publica no bucket antes de gravar a URL no perfil.
func (h *MeHandler) UploadAvatar(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	file, _, err := c.Request.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Envie o arquivo no campo avatar.")
		return
	}
	defer file.Close()

	reader := http.MaxBytesReader(c.Writer, file, maxAvatarBytes)

	url, err := h.avatars.Upload(
		c.Request.Context(),
		fmt.Sprintf("user-%d", user.ID),
		reader,
	)
	if err != nil {
		if code, ok := httperr.BusinessCode(err); ok {
			httperr.BadRequest(c, code, "Imagem inválida.")
			return
		}
		httperr.Internal(c, "failed_to_upload_avatar", "Erro ao enviar avatar.")
		return
	}

	user.AvatarURL = url
	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Erro ao salvar avatar.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}
