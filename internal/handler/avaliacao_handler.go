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

// AvaliacaoHandler exposes feedback endpoints.
type AvaliacaoHandler struct {
	avaliacoes *service.AvaliacaoService
}

// NewAvaliacaoHandler constructs AvaliacaoHandler.
func NewAvaliacaoHandler(avaliacoes *service.AvaliacaoService) *AvaliacaoHandler {
	return &AvaliacaoHandler{avaliacoes: avaliacoes}
}

// List godoc
// @Summary List avaliacoes
// @Tags Avaliacoes
// @Produce json
// @Param tipo query string false "Filter by tipo"
// @Param categoria query string false "Filter by categoria"
// @Param status query string false "Filter by status"
// @Param prioridade query string false "Filter by prioridade"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /avaliacoes [get]
func (h *AvaliacaoHandler) List(c *gin.Context) {
	var filter models.AvaliacaoFilter
	filter.Tipo = models.TipoAvaliacao(c.Query("tipo"))
	filter.Categoria = c.Query("categoria")
	filter.Status = models.StatusAvaliacao(c.Query("status"))
	filter.Prioridade = models.PrioridadeAvaliacao(c.Query("prioridade"))
	filter.Page, filter.PageSize = pageParams(c)

	avaliacoes, pagination, err := h.avaliacoes.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, avaliacoes, pagination)
}

// Get godoc
// @Summary Get avaliacao by ID
// @Tags Avaliacoes
// @Produce json
// @Param id path string true "Avaliacao ID"
// @Success 200 {object} response.Envelope
// @Router /avaliacoes/{id} [get]
func (h *AvaliacaoHandler) Get(c *gin.Context) {
	avaliacao, err := h.avaliacoes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, avaliacao, nil)
}

// Create godoc
// @Summary Submit feedback
// @Tags Avaliacoes
// @Accept json
// @Produce json
// @Param payload body service.CreateAvaliacaoRequest true "Avaliacao payload"
// @Success 201 {object} response.Envelope
// @Router /avaliacoes [post]
func (h *AvaliacaoHandler) Create(c *gin.Context) {
	var req service.CreateAvaliacaoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "payload invalido"))
		return
	}
	avaliacao, err := h.avaliacoes.Create(c.Request.Context(), req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, avaliacao)
}

// Respond godoc
// @Summary Answer an avaliacao
// @Tags Avaliacoes
// @Accept json
// @Produce json
// @Param id path string true "Avaliacao ID"
// @Param payload body service.RespondAvaliacaoRequest true "Response payload"
// @Success 200 {object} response.Envelope
// @Router /avaliacoes/{id}/responder [put]
func (h *AvaliacaoHandler) Respond(c *gin.Context) {
	var req service.RespondAvaliacaoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "payload invalido"))
		return
	}

	autor := ""
	if principal, ok := middleware.CurrentPrincipal(c); ok {
		autor = principal.Nome
	}

	avaliacao, err := h.avaliacoes.Respond(c.Request.Context(), c.Param("id"), req, autor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, avaliacao, nil)
}

// Pendentes godoc
// @Summary List avaliacoes awaiting a response
// @Tags Avaliacoes
// @Produce json
// @Param prioridade query string false "Filter by prioridade"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /avaliacoes/admin/pendentes [get]
func (h *AvaliacaoHandler) Pendentes(c *gin.Context) {
	page, size := pageParams(c)
	prioridade := models.PrioridadeAvaliacao(c.Query("prioridade"))

	avaliacoes, pagination, err := h.avaliacoes.ListPendentes(c.Request.Context(), prioridade, page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, avaliacoes, pagination)
}

// Stats godoc
// @Summary Aggregate avaliacao statistics
// @Tags Avaliacoes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /avaliacoes/admin/estatisticas [get]
func (h *AvaliacaoHandler) Stats(c *gin.Context) {
	stats, err := h.avaliacoes.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}
