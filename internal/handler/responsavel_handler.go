package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comunitech/acolhe-api/internal/models"
	"github.com/comunitech/acolhe-api/internal/service"
	appErrors "github.com/comunitech/acolhe-api/pkg/errors"
	"github.com/comunitech/acolhe-api/pkg/response"
)

// ResponsavelHandler exposes responsavel endpoints.
type ResponsavelHandler struct {
	responsaveis *service.ResponsavelService
}

// NewResponsavelHandler constructs ResponsavelHandler.
func NewResponsavelHandler(responsaveis *service.ResponsavelService) *ResponsavelHandler {
	return &ResponsavelHandler{responsaveis: responsaveis}
}

// List godoc
// @Summary List responsaveis
// @Tags Responsaveis
// @Produce json
// @Param nome query string false "Filter by nome prefix"
// @Param email query string false "Filter by email"
// @Param unidade query string false "Filter by unidade"
// @Param status query string false "Filter by status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /responsaveis [get]
func (h *ResponsavelHandler) List(c *gin.Context) {
	var filter models.ResponsavelFilter
	filter.Nome = c.Query("nome")
	filter.Email = c.Query("email")
	filter.Unidade = c.Query("unidade")
	filter.Status = models.StatusCadastro(c.Query("status"))
	filter.Page, filter.PageSize = pageParams(c)

	responsaveis, pagination, err := h.responsaveis.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, responsaveis, pagination)
}

// Get godoc
// @Summary Get responsavel with owned atividades
// @Tags Responsaveis
// @Produce json
// @Param id path string true "Responsavel ID"
// @Success 200 {object} response.Envelope
// @Router /responsaveis/{id} [get]
func (h *ResponsavelHandler) Get(c *gin.Context) {
	detail, err := h.responsaveis.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Create godoc
// @Summary Create responsavel
// @Tags Responsaveis
// @Accept json
// @Produce json
// @Param payload body service.CreateResponsavelRequest true "Responsavel payload"
// @Success 201 {object} response.Envelope
// @Router /responsaveis [post]
func (h *ResponsavelHandler) Create(c *gin.Context) {
	var req service.CreateResponsavelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "payload invalido"))
		return
	}
	responsavel, err := h.responsaveis.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, responsavel)
}

// Update godoc
// @Summary Update responsavel
// @Tags Responsaveis
// @Accept json
// @Produce json
// @Param id path string true "Responsavel ID"
// @Param payload body service.UpdateResponsavelRequest true "Responsavel payload"
// @Success 200 {object} response.Envelope
// @Router /responsaveis/{id} [put]
func (h *ResponsavelHandler) Update(c *gin.Context) {
	var req service.UpdateResponsavelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "payload invalido"))
		return
	}
	responsavel, err := h.responsaveis.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, responsavel, nil)
}

// Delete godoc
// @Summary Delete responsavel
// @Tags Responsaveis
// @Produce json
// @Param id path string true "Responsavel ID"
// @Success 204
// @Router /responsaveis/{id} [delete]
func (h *ResponsavelHandler) Delete(c *gin.Context) {
	if err := h.responsaveis.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Stats godoc
// @Summary Atividade counts for one responsavel
// @Tags Responsaveis
// @Produce json
// @Param id path string true "Responsavel ID"
// @Success 200 {object} response.Envelope
// @Router /responsaveis/{id}/estatisticas [get]
func (h *ResponsavelHandler) Stats(c *gin.Context) {
	stats, err := h.responsaveis.Stats(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}
