package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comunitech/acolhe-api/internal/models"
	"github.com/comunitech/acolhe-api/internal/service"
	appErrors "github.com/comunitech/acolhe-api/pkg/errors"
	"github.com/comunitech/acolhe-api/pkg/response"
)

// AtividadeHandler exposes atividade endpoints.
type AtividadeHandler struct {
	atividades *service.AtividadeService
}

// NewAtividadeHandler constructs AtividadeHandler.
func NewAtividadeHandler(atividades *service.AtividadeService) *AtividadeHandler {
	return &AtividadeHandler{atividades: atividades}
}

// List godoc
// @Summary List atividades
// @Tags Atividades
// @Produce json
// @Param nome query string false "Filter by nome prefix"
// @Param unidade query string false "Filter by unidade"
// @Param categoria query string false "Filter by categoria"
// @Param responsavelId query string false "Filter by responsavel"
// @Param status query string false "Filter by status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /atividades [get]
func (h *AtividadeHandler) List(c *gin.Context) {
	var filter models.AtividadeFilter
	filter.Nome = c.Query("nome")
	filter.Unidade = c.Query("unidade")
	filter.Categoria = c.Query("categoria")
	filter.ResponsavelID = c.Query("responsavelId")
	filter.Status = models.StatusAtividade(c.Query("status"))
	filter.Page, filter.PageSize = pageParams(c)

	atividades, pagination, err := h.atividades.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, atividades, pagination)
}

// Get godoc
// @Summary Get atividade with resolved responsavel
// @Tags Atividades
// @Produce json
// @Param id path string true "Atividade ID"
// @Success 200 {object} response.Envelope
// @Router /atividades/{id} [get]
func (h *AtividadeHandler) Get(c *gin.Context) {
	detail, err := h.atividades.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Create godoc
// @Summary Create atividade
// @Tags Atividades
// @Accept json
// @Produce json
// @Param payload body service.CreateAtividadeRequest true "Atividade payload"
// @Success 201 {object} response.Envelope
// @Router /atividades [post]
func (h *AtividadeHandler) Create(c *gin.Context) {
	var req service.CreateAtividadeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "payload invalido"))
		return
	}
	atividade, err := h.atividades.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, atividade)
}

// Update godoc
// @Summary Update atividade
// @Tags Atividades
// @Accept json
// @Produce json
// @Param id path string true "Atividade ID"
// @Param payload body service.UpdateAtividadeRequest true "Atividade payload"
// @Success 200 {object} response.Envelope
// @Router /atividades/{id} [put]
func (h *AtividadeHandler) Update(c *gin.Context) {
	var req service.UpdateAtividadeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "payload invalido"))
		return
	}
	atividade, err := h.atividades.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, atividade, nil)
}

// Delete godoc
// @Summary Delete atividade
// @Tags Atividades
// @Produce json
// @Param id path string true "Atividade ID"
// @Success 204
// @Router /atividades/{id} [delete]
func (h *AtividadeHandler) Delete(c *gin.Context) {
	if err := h.atividades.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Stats godoc
// @Summary Aggregate atividade statistics
// @Tags Atividades
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /atividades/admin/estatisticas [get]
func (h *AtividadeHandler) Stats(c *gin.Context) {
	stats, err := h.atividades.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}
