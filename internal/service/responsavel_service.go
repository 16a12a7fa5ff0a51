package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/comunitech/acolhe-api/internal/models"
	appErrors "github.com/comunitech/acolhe-api/pkg/errors"
)

type responsavelRepository interface {
	List(ctx context.Context, filter models.ResponsavelFilter) ([]models.Responsavel, int, error)
	FindByID(ctx context.Context, id string) (*models.Responsavel, error)
	ExistsByMatricula(ctx context.Context, matricula, excludeID string) (bool, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	Create(ctx context.Context, responsavel *models.Responsavel) error
	Update(ctx context.Context, responsavel *models.Responsavel) error
	Delete(ctx context.Context, id string) error
}

type responsavelAtividadeReader interface {
	ListByResponsavel(ctx context.Context, responsavelID string) ([]models.Atividade, error)
	CountAtivasByResponsavel(ctx context.Context, responsavelID string) (int, error)
	CountByResponsavelPorStatus(ctx context.Context, responsavelID string) (map[string]int, error)
}

// CreateResponsavelRequest describes responsavel creation payload.
type CreateResponsavelRequest struct {
	Nome      string `json:"nome" validate:"required"`
	Matricula string `json:"matricula" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Unidade   string `json:"unidade,omitempty"`
	Telefone  string `json:"telefone,omitempty"`
}

// UpdateResponsavelRequest describes responsavel update payload.
type UpdateResponsavelRequest struct {
	Nome      string `json:"nome" validate:"required"`
	Matricula string `json:"matricula" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Unidade   string `json:"unidade,omitempty"`
	Telefone  string `json:"telefone,omitempty"`
	Status    string `json:"status,omitempty" validate:"omitempty,oneof=ativo inativo"`
}

// ResponsavelService orchestrates staff registry workflows. Matricula and
// email are both unique across responsaveis.
type ResponsavelService struct {
	repo       responsavelRepository
	atividades responsavelAtividadeReader
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewResponsavelService constructs ResponsavelService.
func NewResponsavelService(repo responsavelRepository, atividades responsavelAtividadeReader, validate *validator.Validate, logger *zap.Logger) *ResponsavelService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResponsavelService{repo: repo, atividades: atividades, validator: validate, logger: logger}
}

// List returns responsaveis with pagination metadata.
func (s *ResponsavelService) List(ctx context.Context, filter models.ResponsavelFilter) ([]models.Responsavel, *models.Pagination, error) {
	responsaveis, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao listar responsaveis")
	}
	return responsaveis, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// Get returns a single responsavel by ID.
func (s *ResponsavelService) Get(ctx context.Context, id string) (*models.Responsavel, error) {
	responsavel, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "responsavel nao encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao carregar responsavel")
	}
	return responsavel, nil
}

// GetDetail returns a responsavel together with the atividades it owns.
func (s *ResponsavelService) GetDetail(ctx context.Context, id string) (*models.ResponsavelDetail, error) {
	responsavel, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	atividades, err := s.atividades.ListByResponsavel(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao carregar atividades do responsavel")
	}
	if atividades == nil {
		atividades = []models.Atividade{}
	}
	return &models.ResponsavelDetail{Responsavel: *responsavel, Atividades: atividades}, nil
}

// Create registers a new responsavel after checking both uniqueness rules.
func (s *ResponsavelService) Create(ctx context.Context, req CreateResponsavelRequest) (*models.Responsavel, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "dados do responsavel invalidos")
	}
	if err := s.checkUniqueness(ctx, req.Matricula, req.Email, ""); err != nil {
		return nil, err
	}
	responsavel := &models.Responsavel{
		Nome:      req.Nome,
		Matricula: req.Matricula,
		Email:     req.Email,
		Unidade:   req.Unidade,
		Telefone:  req.Telefone,
		Status:    models.StatusAtivo,
	}
	if err := s.repo.Create(ctx, responsavel); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao criar responsavel")
	}
	return responsavel, nil
}

// Update modifies an existing responsavel.
func (s *ResponsavelService) Update(ctx context.Context, id string, req UpdateResponsavelRequest) (*models.Responsavel, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "dados do responsavel invalidos")
	}
	responsavel, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkUniqueness(ctx, req.Matricula, req.Email, id); err != nil {
		return nil, err
	}
	responsavel.Nome = req.Nome
	responsavel.Matricula = req.Matricula
	responsavel.Email = req.Email
	responsavel.Unidade = req.Unidade
	responsavel.Telefone = req.Telefone
	if req.Status != "" {
		responsavel.Status = models.StatusCadastro(req.Status)
	}
	if err := s.repo.Update(ctx, responsavel); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao atualizar responsavel")
	}
	return responsavel, nil
}

// Delete removes a responsavel unless it still owns active atividades.
func (s *ResponsavelService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	ativas, err := s.atividades.CountAtivasByResponsavel(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao validar atividades do responsavel")
	}
	if ativas > 0 {
		return appErrors.Clone(appErrors.ErrConflict, "responsavel possui atividades ativas")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao remover responsavel")
	}
	return nil
}

// Stats aggregates one responsavel's atividade counts by status.
func (s *ResponsavelService) Stats(ctx context.Context, id string) (*models.ResponsavelStats, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	porStatus, err := s.atividades.CountByResponsavelPorStatus(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao calcular estatisticas do responsavel")
	}
	stats := &models.ResponsavelStats{ResponsavelID: id, PorStatus: porStatus}
	for _, count := range porStatus {
		stats.Total += count
	}
	return stats, nil
}

func (s *ResponsavelService) checkUniqueness(ctx context.Context, matricula, email, excludeID string) error {
	exists, err := s.repo.ExistsByMatricula(ctx, matricula, excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao validar matricula")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "matricula ja cadastrada")
	}
	exists, err = s.repo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao validar email")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "email ja cadastrado")
	}
	return nil
}
