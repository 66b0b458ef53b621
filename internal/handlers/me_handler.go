package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
		if httperr.IsRecordNotFound(err) {
			httperr.Unauthorized(c, "user_not_found", "Account no longer exists.")
			return
		}
		httperr.Respond(c, httperr.Unavailable("get_user", err))
		return
	}

	out := gin.H{"user": userJSON(&user)}
	if barberID := c.GetUint(middleware.ContextBarberID); barberID != 0 {
		out["barber_id"] = barberID
	}

	c.JSON(http.StatusOK, out)
}
