package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/comunitech/acolhe-api/internal/models"
	appErrors "github.com/comunitech/acolhe-api/pkg/errors"
)

const (
	avaliacaoStatsCacheKey = "stats:avaliacoes"

	// Fallback author recorded when a response arrives without an
	// authenticated staff name.
	defaultRespondente = "Administrador"
)

type avaliacaoRepository interface {
	List(ctx context.Context, filter models.AvaliacaoFilter) ([]models.Avaliacao, int, error)
	FindByID(ctx context.Context, id string) (*models.Avaliacao, error)
	Create(ctx context.Context, avaliacao *models.Avaliacao) error
	Respond(ctx context.Context, id, texto, autor string, ts time.Time) error
	Stats(ctx context.Context) (*models.AvaliacaoStats, error)
}

// CreateAvaliacaoRequest describes feedback submission payload. Status,
// visibility and priority are never client-controlled.
type CreateAvaliacaoRequest struct {
	Tipo      string `json:"tipo" validate:"required,oneof=elogio critica sugestao"`
	Titulo    string `json:"titulo" validate:"required"`
	Descricao string `json:"descricao" validate:"required"`
	Categoria string `json:"categoria,omitempty"`
}

// RespondAvaliacaoRequest carries the staff answer to an avaliacao.
type RespondAvaliacaoRequest struct {
	Resposta string `json:"resposta" validate:"required"`
}

// AvaliacaoService orchestrates the feedback intake and triage workflows.
type AvaliacaoService struct {
	repo      avaliacaoRepository
	cache     statsCache
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAvaliacaoService constructs AvaliacaoService.
func NewAvaliacaoService(repo avaliacaoRepository, cache statsCache, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *AvaliacaoService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvaliacaoService{repo: repo, cache: cache, cacheTTL: cacheTTL, validator: validate, logger: logger}
}

// List returns avaliacoes with pagination metadata.
func (s *AvaliacaoService) List(ctx context.Context, filter models.AvaliacaoFilter) ([]models.Avaliacao, *models.Pagination, error) {
	avaliacoes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao listar avaliacoes")
	}
	return avaliacoes, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// ListPendentes returns only avaliacoes awaiting a response, optionally
// narrowed by prioridade.
func (s *AvaliacaoService) ListPendentes(ctx context.Context, prioridade models.PrioridadeAvaliacao, page, pageSize int) ([]models.Avaliacao, *models.Pagination, error) {
	filter := models.AvaliacaoFilter{Status: models.AvaliacaoPendente, Prioridade: prioridade, Page: page, PageSize: pageSize}
	return s.List(ctx, filter)
}

// Get returns a single avaliacao by ID.
func (s *AvaliacaoService) Get(ctx context.Context, id string) (*models.Avaliacao, error) {
	avaliacao, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "avaliacao nao encontrada")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao carregar avaliacao")
	}
	return avaliacao, nil
}

// Create records submitted feedback. The service stamps origin metadata and
// forces the triage defaults regardless of what the caller sent.
func (s *AvaliacaoService) Create(ctx context.Context, req CreateAvaliacaoRequest, ip, userAgent string) (*models.Avaliacao, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "dados da avaliacao invalidos")
	}
	avaliacao := &models.Avaliacao{
		Tipo:       models.TipoAvaliacao(req.Tipo),
		Titulo:     req.Titulo,
		Descricao:  req.Descricao,
		Categoria:  req.Categoria,
		IPOrigem:   ip,
		UserAgent:  userAgent,
		Status:     models.AvaliacaoPendente,
		Visivel:    false,
		Prioridade: models.PrioridadeNormal,
	}
	if err := s.repo.Create(ctx, avaliacao); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao criar avaliacao")
	}
	s.invalidateStats(ctx)
	return avaliacao, nil
}

// Respond records the staff answer and flips the avaliacao to respondida.
// Answering twice is rejected.
func (s *AvaliacaoService) Respond(ctx context.Context, id string, req RespondAvaliacaoRequest, autor string) (*models.Avaliacao, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "resposta invalida")
	}
	avaliacao, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if avaliacao.Status == models.AvaliacaoRespondida {
		return nil, appErrors.Clone(appErrors.ErrConflict, "avaliacao ja respondida")
	}
	if autor == "" {
		autor = defaultRespondente
	}
	now := time.Now().UTC()
	if err := s.repo.Respond(ctx, id, req.Resposta, autor, now); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao responder avaliacao")
	}
	avaliacao.Resposta = req.Resposta
	avaliacao.RespondidaPor = autor
	avaliacao.RespondidaEm = &now
	avaliacao.Status = models.AvaliacaoRespondida
	s.invalidateStats(ctx)
	return avaliacao, nil
}

// Stats returns aggregate avaliacao counts, served from cache when fresh.
func (s *AvaliacaoService) Stats(ctx context.Context) (*models.AvaliacaoStats, error) {
	var cached models.AvaliacaoStats
	if err := s.cache.Get(ctx, avaliacaoStatsCacheKey, &cached); err == nil {
		return &cached, nil
	}

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao calcular estatisticas de avaliacoes")
	}
	if err := s.cache.Set(ctx, avaliacaoStatsCacheKey, stats, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache avaliacao stats", zap.Error(err))
	}
	return stats, nil
}

func (s *AvaliacaoService) invalidateStats(ctx context.Context) {
	if err := s.cache.Delete(ctx, avaliacaoStatsCacheKey+"*"); err != nil {
		s.logger.Warn("failed to invalidate avaliacao stats cache", zap.Error(err))
	}
}
