package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/comunitech/acolhe-api/internal/models"
	"github.com/comunitech/acolhe-api/pkg/cep"
	appErrors "github.com/comunitech/acolhe-api/pkg/errors"
)

const clienteStatsCacheKey = "stats:clientes"

type clienteRepository interface {
	List(ctx context.Context, filter models.ClienteFilter) ([]models.Cliente, int, error)
	FindByID(ctx context.Context, id string) (*models.Cliente, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	Create(ctx context.Context, cliente *models.Cliente) error
	Update(ctx context.Context, cliente *models.Cliente) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*models.ClienteStats, error)
}

type clienteInscricaoCounter interface {
	CountConfirmadasByCliente(ctx context.Context, clienteID string) (int, error)
}

type cepResolver interface {
	Lookup(ctx context.Context, cep string) (*cep.Address, error)
}

type statsCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, pattern string) error
}

// CreateClienteRequest describes cliente creation payload.
type CreateClienteRequest struct {
	Nome           string `json:"nome" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	DataNascimento string `json:"dataNascimento,omitempty"`
	Telefone       string `json:"telefone,omitempty"`
	CEP            string `json:"cep,omitempty"`
}

// UpdateClienteRequest describes cliente update payload.
type UpdateClienteRequest struct {
	Nome           string `json:"nome" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	DataNascimento string `json:"dataNascimento,omitempty"`
	Telefone       string `json:"telefone,omitempty"`
	CEP            string `json:"cep,omitempty"`
	Status         string `json:"status,omitempty" validate:"omitempty,oneof=ativo inativo"`
}

// ClienteService orchestrates cliente workflows, including address enrichment
// through the CEP chain and the delete guard against confirmed inscricoes.
type ClienteService struct {
	repo       clienteRepository
	inscricoes clienteInscricaoCounter
	ceps       cepResolver
	cache      statsCache
	cacheTTL   time.Duration
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewClienteService constructs ClienteService.
func NewClienteService(repo clienteRepository, inscricoes clienteInscricaoCounter, ceps cepResolver, cache statsCache, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *ClienteService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClienteService{repo: repo, inscricoes: inscricoes, ceps: ceps, cache: cache, cacheTTL: cacheTTL, validator: validate, logger: logger}
}

// List returns clientes with pagination metadata.
func (s *ClienteService) List(ctx context.Context, filter models.ClienteFilter) ([]models.Cliente, *models.Pagination, error) {
	clientes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao listar clientes")
	}
	return clientes, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// Get returns a single cliente by ID.
func (s *ClienteService) Get(ctx context.Context, id string) (*models.Cliente, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "cliente nao encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao carregar cliente")
	}
	return cliente, nil
}

// Create registers a new cliente. Email must be unique; when a CEP is given
// the address fields are resolved best-effort.
func (s *ClienteService) Create(ctx context.Context, req CreateClienteRequest) (*models.Cliente, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "dados do cliente invalidos")
	}
	exists, err := s.repo.ExistsByEmail(ctx, req.Email, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao validar email")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email ja cadastrado")
	}

	nascimento, err := parseDataNascimento(req.DataNascimento)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "data de nascimento invalida")
	}

	cliente := &models.Cliente{
		Nome:           req.Nome,
		Email:          req.Email,
		DataNascimento: nascimento,
		Telefone:       req.Telefone,
		CEP:            req.CEP,
		Status:         models.StatusAtivo,
	}
	s.enrichEndereco(ctx, cliente)

	if err := s.repo.Create(ctx, cliente); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao criar cliente")
	}
	s.invalidateStats(ctx)
	return cliente, nil
}

// Update modifies an existing cliente, re-resolving the address when the CEP
// changed.
func (s *ClienteService) Update(ctx context.Context, id string, req UpdateClienteRequest) (*models.Cliente, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "dados do cliente invalidos")
	}
	cliente, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	exists, err := s.repo.ExistsByEmail(ctx, req.Email, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao validar email")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email ja cadastrado")
	}

	nascimento, err := parseDataNascimento(req.DataNascimento)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "data de nascimento invalida")
	}

	cepChanged := req.CEP != cliente.CEP
	cliente.Nome = req.Nome
	cliente.Email = req.Email
	cliente.DataNascimento = nascimento
	cliente.Telefone = req.Telefone
	cliente.CEP = req.CEP
	if req.Status != "" {
		cliente.Status = models.StatusCadastro(req.Status)
	}
	if cepChanged {
		cliente.Endereco = models.Endereco{}
		s.enrichEndereco(ctx, cliente)
	}

	if err := s.repo.Update(ctx, cliente); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao atualizar cliente")
	}
	s.invalidateStats(ctx)
	return cliente, nil
}

// Delete removes a cliente unless it still holds confirmed inscricoes.
func (s *ClienteService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	confirmadas, err := s.inscricoes.CountConfirmadasByCliente(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao validar inscricoes do cliente")
	}
	if confirmadas > 0 {
		return appErrors.Clone(appErrors.ErrConflict, "cliente possui inscricoes ativas")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao remover cliente")
	}
	s.invalidateStats(ctx)
	return nil
}

// Stats returns aggregate cliente counts, served from cache when fresh.
func (s *ClienteService) Stats(ctx context.Context) (*models.ClienteStats, error) {
	var cached models.ClienteStats
	if err := s.cache.Get(ctx, clienteStatsCacheKey, &cached); err == nil {
		return &cached, nil
	}

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao calcular estatisticas de clientes")
	}
	if err := s.cache.Set(ctx, clienteStatsCacheKey, stats, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache cliente stats", zap.Error(err))
	}
	return stats, nil
}

func (s *ClienteService) enrichEndereco(ctx context.Context, cliente *models.Cliente) {
	if cliente.CEP == "" || s.ceps == nil {
		return
	}
	addr, err := s.ceps.Lookup(ctx, cliente.CEP)
	if err != nil {
		s.logger.Warn("cep lookup failed", zap.String("cep", cliente.CEP), zap.Error(err))
		return
	}
	cliente.CEP = addr.CEP
	cliente.Endereco = models.Endereco{
		Logradouro: addr.Logradouro,
		Bairro:     addr.Bairro,
		Cidade:     addr.Cidade,
		Estado:     addr.Estado,
	}
}

func (s *ClienteService) invalidateStats(ctx context.Context) {
	if err := s.cache.Delete(ctx, clienteStatsCacheKey+"*"); err != nil {
		s.logger.Warn("failed to invalidate cliente stats cache", zap.Error(err))
	}
}

func parseDataNascimento(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
