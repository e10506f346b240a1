package handler

import (
	"net/http"

	entity "campusx/internal/domain"
	service "campusx/internal/service/postgresql"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ExchangeHandler struct {
	exchangeService *service.ExchangeService
}

func NewExchangeHandler(exchangeService *service.ExchangeService) *ExchangeHandler {
	return &ExchangeHandler{exchangeService: exchangeService}
}

// @Summary      Request an exchange
// @Description  Opens a pending exchange for an available item and reserves the item.
// @Tags         Exchanges
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Success      201  {object}  entity.Exchange
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /exchanges [post]
func (h *ExchangeHandler) Create(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	var input entity.CreateExchangeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid input: "+err.Error())
		return
	}

	ex, err := h.exchangeService.Create(userID, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Exchange requested. Waiting for the owner to respond.",
		"exchange": ex,
	})
}

// @Summary      My exchange requests
// @Tags         Exchanges
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {array}  entity.Exchange
// @Router       /exchanges/my [get]
func (h *ExchangeHandler) GetMy(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	exchanges, err := h.exchangeService.ListMine(userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exchanges": exchanges})
}

// @Summary      Incoming exchange requests for my items
// @Tags         Exchanges
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {array}  entity.Exchange
// @Router       /exchanges/inbox [get]
func (h *ExchangeHandler) GetInbox(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	exchanges, err := h.exchangeService.ListInbox(userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exchanges": exchanges})
}

// @Summary      Exchange detail
// @Description  Returns the exchange plus the actions the caller may invoke right now.
// @Tags         Exchanges
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  service.ExchangeDetail
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /exchanges/{id} [get]
func (h *ExchangeHandler) GetDetail(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	exchangeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid exchange id")
		return
	}

	detail, err := h.exchangeService.GetDetail(userID, exchangeID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// @Summary      Respond to a pending exchange
// @Description  Owner accepts or rejects a pending exchange. Rejection releases the item.
// @Tags         Exchanges
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /exchanges/{id}/respond [post]
func (h *ExchangeHandler) Respond(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	exchangeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid exchange id")
		return
	}

	var input entity.RespondExchangeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "action must be accept or reject")
		return
	}

	result, err := h.exchangeService.Respond(userID, exchangeID, entity.ExchangeAction(input.Action))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"data":   gin.H{"action": result.Action},
	})
}

// @Summary      Confirm my side of an exchange
// @Description  Marks the caller's side done; when both sides confirm, the exchange and item complete together.
// @Tags         Exchanges
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /exchanges/{id}/confirm [post]
func (h *ExchangeHandler) Confirm(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	exchangeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid exchange id")
		return
	}

	var input entity.ConfirmExchangeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "role must be owner or requester")
		return
	}

	result, err := h.exchangeService.Confirm(userID, exchangeID, entity.ExchangeRole(input.Role))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"data":   gin.H{"status": result.Status},
	})
}

// @Summary      Cancel an exchange
// @Tags         Exchanges
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /exchanges/{id}/cancel [post]
func (h *ExchangeHandler) Cancel(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	exchangeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid exchange id")
		return
	}

	status, err := h.exchangeService.Cancel(userID, exchangeID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"data":   gin.H{"status": status},
	})
}
