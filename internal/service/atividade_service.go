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

const atividadeStatsCacheKey = "stats:atividades"

type atividadeRepository interface {
	List(ctx context.Context, filter models.AtividadeFilter) ([]models.Atividade, int, error)
	FindByID(ctx context.Context, id string) (*models.Atividade, error)
	Create(ctx context.Context, atividade *models.Atividade) error
	Update(ctx context.Context, atividade *models.Atividade) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*models.AtividadeStats, error)
}

type responsavelReader interface {
	FindByID(ctx context.Context, id string) (*models.Responsavel, error)
}

type atividadeInscricaoCounter interface {
	CountConfirmadasByAtividade(ctx context.Context, atividadeID string) (int, error)
}

// CreateAtividadeRequest describes atividade creation payload.
type CreateAtividadeRequest struct {
	Nome          string `json:"nome" validate:"required"`
	Descricao     string `json:"descricao,omitempty"`
	Unidade       string `json:"unidade,omitempty"`
	Categoria     string `json:"categoria,omitempty"`
	ResponsavelID string `json:"responsavelId" validate:"required"`
	VagasTotal    int    `json:"vagasTotal" validate:"required,gt=0"`
}

// UpdateAtividadeRequest describes atividade update payload.
type UpdateAtividadeRequest struct {
	Nome          string `json:"nome" validate:"required"`
	Descricao     string `json:"descricao,omitempty"`
	Unidade       string `json:"unidade,omitempty"`
	Categoria     string `json:"categoria,omitempty"`
	ResponsavelID string `json:"responsavelId" validate:"required"`
	VagasTotal    int    `json:"vagasTotal" validate:"required,gt=0"`
	Status        string `json:"status,omitempty" validate:"omitempty,oneof=ativa inativa"`
}

// AtividadeService orchestrates the activity catalog. A dangling responsavel
// reference is rejected as a validation error, not a conflict.
type AtividadeService struct {
	repo         atividadeRepository
	responsaveis responsavelReader
	inscricoes   atividadeInscricaoCounter
	cache        statsCache
	cacheTTL     time.Duration
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewAtividadeService constructs AtividadeService.
func NewAtividadeService(repo atividadeRepository, responsaveis responsavelReader, inscricoes atividadeInscricaoCounter, cache statsCache, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *AtividadeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AtividadeService{repo: repo, responsaveis: responsaveis, inscricoes: inscricoes, cache: cache, cacheTTL: cacheTTL, validator: validate, logger: logger}
}

// List returns atividades with pagination metadata.
func (s *AtividadeService) List(ctx context.Context, filter models.AtividadeFilter) ([]models.Atividade, *models.Pagination, error) {
	atividades, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao listar atividades")
	}
	return atividades, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// Get returns a single atividade by ID.
func (s *AtividadeService) Get(ctx context.Context, id string) (*models.Atividade, error) {
	atividade, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "atividade nao encontrada")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao carregar atividade")
	}
	return atividade, nil
}

// GetDetail returns an atividade together with its resolved responsavel. A
// missing responsavel record does not fail the read.
func (s *AtividadeService) GetDetail(ctx context.Context, id string) (*models.AtividadeDetail, error) {
	atividade, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &models.AtividadeDetail{Atividade: *atividade}
	responsavel, err := s.responsaveis.FindByID(ctx, atividade.ResponsavelID)
	if err != nil {
		if err != sql.ErrNoRows {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao carregar responsavel da atividade")
		}
	} else {
		detail.Responsavel = responsavel
	}
	return detail, nil
}

// Create registers a new atividade with an empty seat counter.
func (s *AtividadeService) Create(ctx context.Context, req CreateAtividadeRequest) (*models.Atividade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "dados da atividade invalidos")
	}
	if err := s.checkResponsavel(ctx, req.ResponsavelID); err != nil {
		return nil, err
	}
	atividade := &models.Atividade{
		Nome:          req.Nome,
		Descricao:     req.Descricao,
		Unidade:       req.Unidade,
		Categoria:     req.Categoria,
		ResponsavelID: req.ResponsavelID,
		VagasTotal:    req.VagasTotal,
		VagasOcupadas: 0,
		Status:        models.AtividadeAtiva,
	}
	if err := s.repo.Create(ctx, atividade); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao criar atividade")
	}
	s.invalidateStats(ctx)
	return atividade, nil
}

// Update modifies an existing atividade. Shrinking vagas_total below the
// current occupancy is rejected so the seat invariant keeps holding.
func (s *AtividadeService) Update(ctx context.Context, id string, req UpdateAtividadeRequest) (*models.Atividade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "dados da atividade invalidos")
	}
	atividade, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkResponsavel(ctx, req.ResponsavelID); err != nil {
		return nil, err
	}
	if req.VagasTotal < atividade.VagasOcupadas {
		return nil, appErrors.Clone(appErrors.ErrConflict, "vagas totais menores que vagas ocupadas")
	}
	atividade.Nome = req.Nome
	atividade.Descricao = req.Descricao
	atividade.Unidade = req.Unidade
	atividade.Categoria = req.Categoria
	atividade.ResponsavelID = req.ResponsavelID
	atividade.VagasTotal = req.VagasTotal
	if req.Status != "" {
		atividade.Status = models.StatusAtividade(req.Status)
	}
	if err := s.repo.Update(ctx, atividade); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao atualizar atividade")
	}
	s.invalidateStats(ctx)
	return atividade, nil
}

// Delete removes an atividade unless it still carries confirmed inscricoes.
func (s *AtividadeService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	confirmadas, err := s.inscricoes.CountConfirmadasByAtividade(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao validar inscricoes da atividade")
	}
	if confirmadas > 0 {
		return appErrors.Clone(appErrors.ErrConflict, "atividade possui inscricoes confirmadas")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao remover atividade")
	}
	s.invalidateStats(ctx)
	return nil
}

// Stats returns aggregate atividade counts, served from cache when fresh.
func (s *AtividadeService) Stats(ctx context.Context) (*models.AtividadeStats, error) {
	var cached models.AtividadeStats
	if err := s.cache.Get(ctx, atividadeStatsCacheKey, &cached); err == nil {
		return &cached, nil
	}

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao calcular estatisticas de atividades")
	}
	if err := s.cache.Set(ctx, atividadeStatsCacheKey, stats, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache atividade stats", zap.Error(err))
	}
	return stats, nil
}

func (s *AtividadeService) checkResponsavel(ctx context.Context, responsavelID string) error {
	if _, err := s.responsaveis.FindByID(ctx, responsavelID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrValidation, "responsavel nao encontrado")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao validar responsavel")
	}
	return nil
}

func (s *AtividadeService) invalidateStats(ctx context.Context) {
	if err := s.cache.Delete(ctx, atividadeStatsCacheKey+"*"); err != nil {
		s.logger.Warn("failed to invalidate atividade stats cache", zap.Error(err))
	}
}
