package handler

import (
	"net/http"
	"strconv"

	entity "campusx/internal/domain"
	service "campusx/internal/service/postgresql"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// @Summary      Exchange chat history
// @Tags         Chat
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {array}  entity.Message
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /exchanges/{id}/messages [get]
func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	exchangeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid exchange id")
		return
	}
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "100"), 10, 64)

	messages, err := h.chatService.ListMessages(userID, exchangeID, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// @Summary      Send a chat message
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Success      201  {object}  entity.Message
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Router       /exchanges/{id}/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	exchangeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid exchange id")
		return
	}

	var input entity.SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "message text is required")
		return
	}

	msg, err := h.chatService.SendMessage(userID, exchangeID, input.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}
