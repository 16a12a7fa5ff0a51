package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comunitech/acolhe-api/internal/middleware"
	"github.com/comunitech/acolhe-api/internal/models"
	"github.com/comunitech/acolhe-api/internal/service"
	appErrors "github.com/comunitech/acolhe-api/pkg/errors"
	"github.com/comunitech/acolhe-api/pkg/response"
)

// AuthHandler exposes the authentication gateway.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login godoc
// @Summary Authenticate staff or customer credentials
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "payload invalido"))
		return
	}
	result, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// RegisterCliente godoc
// @Summary Self-service cliente registration
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.RegisterClienteRequest true "Registration payload"
// @Success 201 {object} response.Envelope
// @Router /auth/registrar-cliente [post]
func (h *AuthHandler) RegisterCliente(c *gin.Context) {
	var req models.RegisterClienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "payload invalido"))
		return
	}
	result, err := h.auth.RegisterCliente(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// VerifyToken godoc
// @Summary Return the principal behind the bearer token
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /auth/verificar-token [get]
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "token invalido"))
		return
	}
	response.JSON(c, http.StatusOK, principal, nil)
}

// Logout godoc
// @Summary Logout
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// Tokens are stateless, the client just discards its copy.
	response.Message(c, http.StatusOK, "logout efetuado")
}

// CreateAdmin godoc
// @Summary Create a staff account
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateAdminRequest true "Admin payload"
// @Success 201 {object} response.Envelope
// @Router /auth/criar-admin [post]
func (h *AuthHandler) CreateAdmin(c *gin.Context) {
	var req models.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "payload invalido"))
		return
	}
	admin, err := h.auth.CreateAdmin(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, admin)
}
