package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comunitech/acolhe-api/internal/models"
	"github.com/comunitech/acolhe-api/internal/service"
	"github.com/comunitech/acolhe-api/pkg/cep"
	appErrors "github.com/comunitech/acolhe-api/pkg/errors"
	"github.com/comunitech/acolhe-api/pkg/response"
)

// ClienteHandler exposes cliente endpoints.
type ClienteHandler struct {
	clientes *service.ClienteService
	ceps     *cep.Client
}

// NewClienteHandler constructs ClienteHandler.
func NewClienteHandler(clientes *service.ClienteService, ceps *cep.Client) *ClienteHandler {
	return &ClienteHandler{clientes: clientes, ceps: ceps}
}

// List godoc
// @Summary List clientes
// @Tags Clientes
// @Produce json
// @Param nome query string false "Filter by nome prefix"
// @Param email query string false "Filter by email"
// @Param cidade query string false "Filter by cidade"
// @Param status query string false "Filter by status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /clientes [get]
func (h *ClienteHandler) List(c *gin.Context) {
	var filter models.ClienteFilter
	filter.Nome = c.Query("nome")
	filter.Email = c.Query("email")
	filter.Cidade = c.Query("cidade")
	filter.Status = models.StatusCadastro(c.Query("status"))
	filter.Page, filter.PageSize = pageParams(c)

	clientes, pagination, err := h.clientes.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, clientes, pagination)
}

// Get godoc
// @Summary Get cliente by ID
// @Tags Clientes
// @Produce json
// @Param id path string true "Cliente ID"
// @Success 200 {object} response.Envelope
// @Router /clientes/{id} [get]
func (h *ClienteHandler) Get(c *gin.Context) {
	cliente, err := h.clientes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cliente, nil)
}

// Create godoc
// @Summary Create cliente
// @Tags Clientes
// @Accept json
// @Produce json
// @Param payload body service.CreateClienteRequest true "Cliente payload"
// @Success 201 {object} response.Envelope
// @Router /clientes [post]
func (h *ClienteHandler) Create(c *gin.Context) {
	var req service.CreateClienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "payload invalido"))
		return
	}
	cliente, err := h.clientes.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cliente)
}

// Update godoc
// @Summary Update cliente
// @Tags Clientes
// @Accept json
// @Produce json
// @Param id path string true "Cliente ID"
// @Param payload body service.UpdateClienteRequest true "Cliente payload"
// @Success 200 {object} response.Envelope
// @Router /clientes/{id} [put]
func (h *ClienteHandler) Update(c *gin.Context) {
	var req service.UpdateClienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "payload invalido"))
		return
	}
	cliente, err := h.clientes.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cliente, nil)
}

// Delete godoc
// @Summary Delete cliente
// @Tags Clientes
// @Produce json
// @Param id path string true "Cliente ID"
// @Success 204
// @Router /clientes/{id} [delete]
func (h *ClienteHandler) Delete(c *gin.Context) {
	if err := h.clientes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Stats godoc
// @Summary Aggregate cliente statistics
// @Tags Clientes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /clientes/admin/estatisticas [get]
func (h *ClienteHandler) Stats(c *gin.Context) {
	stats, err := h.clientes.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// LookupCEP godoc
// @Summary Resolve a CEP to an address
// @Tags Clientes
// @Produce json
// @Param cep path string true "CEP"
// @Success 200 {object} response.Envelope
// @Router /clientes/cep/{cep} [get]
func (h *ClienteHandler) LookupCEP(c *gin.Context) {
	addr, err := h.ceps.Lookup(c.Request.Context(), c.Param("cep"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "cep nao encontrado"))
		return
	}
	response.JSON(c, http.StatusOK, addr, nil)
}

func pageParams(c *gin.Context) (int, int) {
	page := 1
	size := 20
	if v, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		page = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		size = v
	}
	return page, size
}
