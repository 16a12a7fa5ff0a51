package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comunitech/acolhe-api/internal/models"
	"github.com/comunitech/acolhe-api/internal/service"
	appErrors "github.com/comunitech/acolhe-api/pkg/errors"
	"github.com/comunitech/acolhe-api/pkg/export"
	"github.com/comunitech/acolhe-api/pkg/response"
)

// InscricaoHandler exposes enrollment ledger endpoints.
type InscricaoHandler struct {
	inscricoes *service.InscricaoService
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
}

// NewInscricaoHandler constructs InscricaoHandler.
func NewInscricaoHandler(inscricoes *service.InscricaoService) *InscricaoHandler {
	return &InscricaoHandler{
		inscricoes: inscricoes,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
	}
}

// List godoc
// @Summary List inscricoes
// @Tags Inscricoes
// @Produce json
// @Param clienteId query string false "Filter by cliente"
// @Param atividadeId query string false "Filter by atividade"
// @Param status query string false "Filter by status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /inscricoes [get]
func (h *InscricaoHandler) List(c *gin.Context) {
	var filter models.InscricaoFilter
	filter.ClienteID = c.Query("clienteId")
	filter.AtividadeID = c.Query("atividadeId")
	filter.Status = models.StatusInscricao(c.Query("status"))
	filter.Page, filter.PageSize = pageParams(c)

	inscricoes, pagination, err := h.inscricoes.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, inscricoes, pagination)
}

// Get godoc
// @Summary Get inscricao with both parents resolved
// @Tags Inscricoes
// @Produce json
// @Param id path string true "Inscricao ID"
// @Success 200 {object} response.Envelope
// @Router /inscricoes/{id} [get]
func (h *InscricaoHandler) Get(c *gin.Context) {
	detail, err := h.inscricoes.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Create godoc
// @Summary Enroll a cliente in an atividade
// @Tags Inscricoes
// @Accept json
// @Produce json
// @Param payload body service.CreateInscricaoRequest true "Inscricao payload"
// @Success 201 {object} response.Envelope
// @Router /inscricoes [post]
func (h *InscricaoHandler) Create(c *gin.Context) {
	var req service.CreateInscricaoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "payload invalido"))
		return
	}
	inscricao, err := h.inscricoes.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, inscricao)
}

// Confirm godoc
// @Summary Confirm a pending inscricao
// @Tags Inscricoes
// @Produce json
// @Param id path string true "Inscricao ID"
// @Success 200 {object} response.Envelope
// @Router /inscricoes/{id}/confirmar [put]
func (h *InscricaoHandler) Confirm(c *gin.Context) {
	inscricao, err := h.inscricoes.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, inscricao, nil)
}

// Cancel godoc
// @Summary Cancel an inscricao and release its seat
// @Tags Inscricoes
// @Accept json
// @Produce json
// @Param id path string true "Inscricao ID"
// @Param payload body service.CancelInscricaoRequest false "Cancellation reason"
// @Success 200 {object} response.Envelope
// @Router /inscricoes/{id}/cancelar [put]
func (h *InscricaoHandler) Cancel(c *gin.Context) {
	var req service.CancelInscricaoRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "payload invalido"))
			return
		}
	}
	inscricao, err := h.inscricoes.Cancel(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, inscricao, nil)
}

// ByCliente godoc
// @Summary List inscricoes for one cliente
// @Tags Inscricoes
// @Produce json
// @Param idCliente path string true "Cliente ID"
// @Success 200 {object} response.Envelope
// @Router /inscricoes/cliente/{idCliente} [get]
func (h *InscricaoHandler) ByCliente(c *gin.Context) {
	filter := models.InscricaoFilter{ClienteID: c.Param("idCliente")}
	filter.Status = models.StatusInscricao(c.Query("status"))
	filter.Page, filter.PageSize = pageParams(c)

	inscricoes, pagination, err := h.inscricoes.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, inscricoes, pagination)
}

// ByAtividade godoc
// @Summary List inscricoes for one atividade
// @Tags Inscricoes
// @Produce json
// @Param idAtividade path string true "Atividade ID"
// @Success 200 {object} response.Envelope
// @Router /inscricoes/atividade/{idAtividade} [get]
func (h *InscricaoHandler) ByAtividade(c *gin.Context) {
	filter := models.InscricaoFilter{AtividadeID: c.Param("idAtividade")}
	filter.Status = models.StatusInscricao(c.Query("status"))
	filter.Page, filter.PageSize = pageParams(c)

	inscricoes, pagination, err := h.inscricoes.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, inscricoes, pagination)
}

// Stats godoc
// @Summary Aggregate inscricao statistics
// @Tags Inscricoes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /inscricoes/admin/estatisticas [get]
func (h *InscricaoHandler) Stats(c *gin.Context) {
	stats, err := h.inscricoes.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// Export godoc
// @Summary Export the enrollment ledger
// @Tags Inscricoes
// @Produce octet-stream
// @Param formato query string false "csv or pdf" default(csv)
// @Success 200
// @Router /inscricoes/admin/exportar [get]
func (h *InscricaoHandler) Export(c *gin.Context) {
	dataset, err := h.inscricoes.ExportDataset(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	stamp := time.Now().UTC().Format("20060102")
	switch c.DefaultQuery("formato", "csv") {
	case "pdf":
		payload, err := h.pdf.Render(*dataset, dataset.Title)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao gerar pdf"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=inscricoes-%s.pdf", stamp))
		c.Data(http.StatusOK, "application/pdf", payload)
	case "csv":
		payload, err := h.csv.Render(*dataset)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao gerar csv"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=inscricoes-%s.csv", stamp))
		c.Data(http.StatusOK, "text/csv", payload)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "formato de exportacao invalido"))
	}
}
