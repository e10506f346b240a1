package handler

import (
	"net/http"

	entity "campusx/internal/domain"
	service "campusx/internal/service/postgresql"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// @Summary      Register
// @Description  Creates a student account, optionally linked to a LINE user id.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      201  {object}  entity.UserResp
// @Failure      400  {object}  map[string]interface{}
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var input entity.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid input: "+err.Error())
		return
	}

	user, err := h.authService.Register(&input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Registered.", "user": user})
}

// @Summary      Login
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  entity.LoginResponse
// @Failure      401  {object}  map[string]interface{}
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input entity.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid input")
		return
	}

	resp, err := h.authService.Login(input.Username, input.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Refresh access token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  entity.RefreshResponse
// @Failure      401  {object}  map[string]interface{}
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var input entity.RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid input")
		return
	}

	token, err := h.authService.Refresh(input.RefreshToken)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.RefreshResponse{Token: token})
}

// @Summary      My profile
// @Tags         Auth
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  entity.UserResp
// @Failure      404  {object}  map[string]interface{}
// @Router       /auth/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	user, err := h.authService.GetProfile(userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
