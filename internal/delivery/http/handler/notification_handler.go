package handler

import (
	"net/http"
	"strconv"

	service "campusx/internal/service/postgresql"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	notiService *service.NotificationService
}

func NewNotificationHandler(notiService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notiService: notiService}
}

// @Summary      My notifications
// @Tags         Notifications
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  service.NotificationList
// @Router       /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)

	list, err := h.notiService.List(userID, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary      Mark a notification read
// @Tags         Notifications
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	if err := h.notiService.MarkRead(userID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read."})
}
