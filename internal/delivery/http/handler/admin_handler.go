package handler

import (
	"net/http"
	"strconv"

	service "campusx/internal/service/postgresql"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// @Summary      List users
// @Tags         Admin
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {array}  entity.User
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	users, err := h.adminService.ListUsers(limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

type setUserStatusInput struct {
	Active *bool `json:"active" binding:"required"`
}

// @Summary      Block or unblock a user
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /admin/users/{id}/status [patch]
func (h *AdminHandler) SetUserStatus(c *gin.Context) {
	adminID := c.MustGet("user_id").(uuid.UUID)
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid user id")
		return
	}

	var input setUserStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "active flag is required")
		return
	}

	if err := h.adminService.SetUserActive(adminID, userID, *input.Active); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User status updated."})
}

type moderateItemInput struct {
	Action string `json:"action" binding:"required,oneof=hide restore"`
}

// @Summary      Hide or restore an item
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  entity.Item
// @Failure      404  {object}  map[string]interface{}
// @Router       /admin/items/{id}/moderate [patch]
func (h *AdminHandler) ModerateItem(c *gin.Context) {
	adminID := c.MustGet("user_id").(uuid.UUID)
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid item id")
		return
	}

	var input moderateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "action must be hide or restore")
		return
	}

	item, err := h.adminService.ModerateItem(adminID, itemID, input.Action)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item moderated.", "item": item})
}
