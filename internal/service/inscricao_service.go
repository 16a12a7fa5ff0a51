package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/comunitech/acolhe-api/internal/models"
	"github.com/comunitech/acolhe-api/internal/repository"
	appErrors "github.com/comunitech/acolhe-api/pkg/errors"
	"github.com/comunitech/acolhe-api/pkg/export"
)

const inscricaoStatsCacheKey = "stats:inscricoes"

type inscricaoRepository interface {
	CreateWithReservation(ctx context.Context, inscricao *models.Inscricao) error
	List(ctx context.Context, filter models.InscricaoFilter) ([]models.Inscricao, int, error)
	ListAll(ctx context.Context) ([]models.Inscricao, error)
	FindByID(ctx context.Context, id string) (*models.Inscricao, error)
	Confirm(ctx context.Context, id string, ts time.Time) error
	CancelWithRelease(ctx context.Context, id, atividadeID, motivo string, ts time.Time, releaseSeat bool) error
	Stats(ctx context.Context) (*models.InscricaoStats, error)
}

type clienteReader interface {
	FindByID(ctx context.Context, id string) (*models.Cliente, error)
}

type atividadeReader interface {
	FindByID(ctx context.Context, id string) (*models.Atividade, error)
}

// CreateInscricaoRequest describes inscricao creation payload.
type CreateInscricaoRequest struct {
	ClienteID   string `json:"clienteId" validate:"required"`
	AtividadeID string `json:"atividadeId" validate:"required"`
}

// CancelInscricaoRequest carries the optional cancellation reason.
type CancelInscricaoRequest struct {
	Motivo string `json:"motivo,omitempty"`
}

// InscricaoService orchestrates the enrollment ledger. A seat is reserved the
// moment an inscricao is created and released when it is cancelled, from
// either the pendente or the confirmada state.
type InscricaoService struct {
	repo       inscricaoRepository
	clientes   clienteReader
	atividades atividadeReader
	cache      statsCache
	cacheTTL   time.Duration
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewInscricaoService constructs InscricaoService.
func NewInscricaoService(repo inscricaoRepository, clientes clienteReader, atividades atividadeReader, cache statsCache, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *InscricaoService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InscricaoService{repo: repo, clientes: clientes, atividades: atividades, cache: cache, cacheTTL: cacheTTL, validator: validate, logger: logger}
}

// List returns inscricoes with pagination metadata.
func (s *InscricaoService) List(ctx context.Context, filter models.InscricaoFilter) ([]models.Inscricao, *models.Pagination, error) {
	inscricoes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao listar inscricoes")
	}
	return inscricoes, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// Get returns a single inscricao by ID.
func (s *InscricaoService) Get(ctx context.Context, id string) (*models.Inscricao, error) {
	inscricao, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "inscricao nao encontrada")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao carregar inscricao")
	}
	return inscricao, nil
}

// GetDetail returns an inscricao with both parent records resolved. The
// parents are fetched concurrently; a missing parent leaves the field nil.
func (s *InscricaoService) GetDetail(ctx context.Context, id string) (*models.InscricaoDetail, error) {
	inscricao, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &models.InscricaoDetail{Inscricao: *inscricao}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cliente, err := s.clientes.FindByID(gctx, inscricao.ClienteID)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil
			}
			return err
		}
		detail.Cliente = cliente
		return nil
	})
	g.Go(func() error {
		atividade, err := s.atividades.FindByID(gctx, inscricao.AtividadeID)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil
			}
			return err
		}
		detail.Atividade = atividade
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao carregar detalhes da inscricao")
	}
	return detail, nil
}

// Create enrolls a cliente in an atividade, reserving a seat atomically. Both
// parents are validated concurrently before the reservation runs.
func (s *InscricaoService) Create(ctx context.Context, req CreateInscricaoRequest) (*models.Inscricao, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "dados da inscricao invalidos")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if _, err := s.clientes.FindByID(gctx, req.ClienteID); err != nil {
			if err == sql.ErrNoRows {
				return appErrors.Clone(appErrors.ErrValidation, "cliente nao encontrado")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao validar cliente")
		}
		return nil
	})
	var atividade *models.Atividade
	g.Go(func() error {
		found, err := s.atividades.FindByID(gctx, req.AtividadeID)
		if err != nil {
			if err == sql.ErrNoRows {
				return appErrors.Clone(appErrors.ErrValidation, "atividade nao encontrada")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao validar atividade")
		}
		atividade = found
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if atividade.Status != models.AtividadeAtiva {
		return nil, appErrors.Clone(appErrors.ErrConflict, "atividade inativa")
	}

	inscricao := &models.Inscricao{
		ClienteID:   req.ClienteID,
		AtividadeID: req.AtividadeID,
		Status:      models.InscricaoPendente,
	}
	if err := s.repo.CreateWithReservation(ctx, inscricao); err != nil {
		if err == repository.ErrSemVagas {
			return nil, appErrors.Clone(appErrors.ErrConflict, "nao ha vagas disponiveis")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao criar inscricao")
	}
	s.invalidateStats(ctx)
	return inscricao, nil
}

// Confirm moves a pendente inscricao to confirmada. The seat was already
// reserved at creation, so the counter stays untouched.
func (s *InscricaoService) Confirm(ctx context.Context, id string) (*models.Inscricao, error) {
	inscricao, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inscricao.Status != models.InscricaoPendente {
		return nil, appErrors.Clone(appErrors.ErrConflict, "inscricao nao esta pendente")
	}
	now := time.Now().UTC()
	if err := s.repo.Confirm(ctx, id, now); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao confirmar inscricao")
	}
	inscricao.Status = models.InscricaoConfirmada
	inscricao.ConfirmadaEm = &now
	s.invalidateStats(ctx)
	return inscricao, nil
}

// Cancel moves an inscricao to cancelada and releases its seat. Cancelling an
// already cancelled inscricao is rejected so the seat is never released twice.
func (s *InscricaoService) Cancel(ctx context.Context, id string, req CancelInscricaoRequest) (*models.Inscricao, error) {
	inscricao, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inscricao.Status == models.InscricaoCancelada {
		return nil, appErrors.Clone(appErrors.ErrConflict, "inscricao ja cancelada")
	}
	now := time.Now().UTC()
	if err := s.repo.CancelWithRelease(ctx, id, inscricao.AtividadeID, req.Motivo, now, true); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao cancelar inscricao")
	}
	inscricao.Status = models.InscricaoCancelada
	inscricao.CanceladaEm = &now
	inscricao.MotivoCancelamento = req.Motivo
	s.invalidateStats(ctx)
	return inscricao, nil
}

// Stats returns aggregate inscricao counts, served from cache when fresh.
func (s *InscricaoService) Stats(ctx context.Context) (*models.InscricaoStats, error) {
	var cached models.InscricaoStats
	if err := s.cache.Get(ctx, inscricaoStatsCacheKey, &cached); err == nil {
		return &cached, nil
	}

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao calcular estatisticas de inscricoes")
	}
	if err := s.cache.Set(ctx, inscricaoStatsCacheKey, stats, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache inscricao stats", zap.Error(err))
	}
	return stats, nil
}

// ExportDataset builds the tabular representation of the full ledger used by
// the CSV and PDF exporters.
func (s *InscricaoService) ExportDataset(ctx context.Context) (*export.Dataset, error) {
	inscricoes, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao exportar inscricoes")
	}

	dataset := &export.Dataset{
		Title:   "Inscricoes",
		Headers: []string{"ID", "Cliente", "Atividade", "Status", "Criada em", "Motivo"},
		Rows:    make([]map[string]string, 0, len(inscricoes)),
	}
	for _, i := range inscricoes {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"ID":        i.ID,
			"Cliente":   i.ClienteID,
			"Atividade": i.AtividadeID,
			"Status":    string(i.Status),
			"Criada em": i.CriadaEm.Format(time.RFC3339),
			"Motivo":    i.MotivoCancelamento,
		})
	}
	return dataset, nil
}

func (s *InscricaoService) invalidateStats(ctx context.Context) {
	if err := s.cache.Delete(ctx, inscricaoStatsCacheKey+"*"); err != nil {
		s.logger.Warn("failed to invalidate inscricao stats cache", zap.Error(err))
	}
}
