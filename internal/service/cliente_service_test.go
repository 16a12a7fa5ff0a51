package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/comunitech/acolhe-api/internal/models"
	"github.com/comunitech/acolhe-api/pkg/cep"
	appErrors "github.com/comunitech/acolhe-api/pkg/errors"
)

type fakeClienteRepo struct {
	clientes map[string]models.Cliente
	byEmail  map[string]string
	deleted  []string
	stats    *models.ClienteStats
	statsHit int
}

func (f *fakeClienteRepo) List(ctx context.Context, filter models.ClienteFilter) ([]models.Cliente, int, error) {
	var out []models.Cliente
	for _, c := range f.clientes {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (f *fakeClienteRepo) FindByID(ctx context.Context, id string) (*models.Cliente, error) {
	if c, ok := f.clientes[id]; ok {
		return &c, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeClienteRepo) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	id, ok := f.byEmail[email]
	if !ok {
		return false, nil
	}
	return id != excludeID, nil
}

func (f *fakeClienteRepo) Create(ctx context.Context, cliente *models.Cliente) error {
	if f.clientes == nil {
		f.clientes = map[string]models.Cliente{}
		f.byEmail = map[string]string{}
	}
	if cliente.ID == "" {
		cliente.ID = "cli-new"
	}
	f.clientes[cliente.ID] = *cliente
	f.byEmail[cliente.Email] = cliente.ID
	return nil
}

func (f *fakeClienteRepo) Update(ctx context.Context, cliente *models.Cliente) error {
	f.clientes[cliente.ID] = *cliente
	f.byEmail[cliente.Email] = cliente.ID
	return nil
}

func (f *fakeClienteRepo) Delete(ctx context.Context, id string) error {
	delete(f.clientes, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeClienteRepo) Stats(ctx context.Context) (*models.ClienteStats, error) {
	f.statsHit++
	if f.stats != nil {
		return f.stats, nil
	}
	return &models.ClienteStats{Total: len(f.clientes), PorStatus: map[string]int{}, PorCidade: map[string]int{}}, nil
}

type fakeInscricaoCounter struct {
	confirmadas map[string]int
}

func (f *fakeInscricaoCounter) CountConfirmadasByCliente(ctx context.Context, clienteID string) (int, error) {
	return f.confirmadas[clienteID], nil
}

func (f *fakeInscricaoCounter) CountConfirmadasByAtividade(ctx context.Context, atividadeID string) (int, error) {
	return f.confirmadas[atividadeID], nil
}

type fakeCEPResolver struct {
	addresses map[string]*cep.Address
	calls     int
}

func (f *fakeCEPResolver) Lookup(ctx context.Context, raw string) (*cep.Address, error) {
	f.calls++
	if addr, ok := f.addresses[raw]; ok {
		return addr, nil
	}
	return nil, cep.ErrNotFound
}

func newClienteFixture() (*ClienteService, *fakeClienteRepo, *fakeCEPResolver) {
	repo := &fakeClienteRepo{clientes: map[string]models.Cliente{}, byEmail: map[string]string{}}
	ceps := &fakeCEPResolver{addresses: map[string]*cep.Address{
		"52050100": {CEP: "52050100", Logradouro: "Rua das Flores", Bairro: "Gracas", Cidade: "Recife", Estado: "PE"},
	}}
	svc := NewClienteService(repo, &fakeInscricaoCounter{confirmadas: map[string]int{}}, ceps, &fakeStatsCache{}, time.Minute, validator.New(), zap.NewNop())
	return svc, repo, ceps
}

func TestClienteCreateEnrichesEndereco(t *testing.T) {
	svc, _, ceps := newClienteFixture()

	cliente, err := svc.Create(context.Background(), CreateClienteRequest{
		Nome:  "Maria Silva",
		Email: "maria@example.com",
		CEP:   "52050-100",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, ceps.calls)
	assert.Equal(t, "Recife", cliente.Cidade)
	assert.Equal(t, "PE", cliente.Estado)
	assert.Equal(t, models.StatusAtivo, cliente.Status)
}

func TestClienteCreateUnknownCEPStillCreates(t *testing.T) {
	svc, repo, _ := newClienteFixture()

	cliente, err := svc.Create(context.Background(), CreateClienteRequest{
		Nome:  "Joao",
		Email: "joao@example.com",
		CEP:   "00000000",
	})
	require.NoError(t, err)
	assert.Empty(t, cliente.Cidade)
	assert.Contains(t, repo.clientes, cliente.ID)
}

func TestClienteCreateDuplicateEmail(t *testing.T) {
	svc, _, _ := newClienteFixture()

	_, err := svc.Create(context.Background(), CreateClienteRequest{Nome: "Maria", Email: "maria@example.com"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateClienteRequest{Nome: "Outra Maria", Email: "maria@example.com"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestClienteDeleteGuardedByConfirmadas(t *testing.T) {
	repo := &fakeClienteRepo{
		clientes: map[string]models.Cliente{"cli-1": {ID: "cli-1", Email: "a@b.c", Status: models.StatusAtivo}},
		byEmail:  map[string]string{"a@b.c": "cli-1"},
	}
	counter := &fakeInscricaoCounter{confirmadas: map[string]int{"cli-1": 2}}
	svc := NewClienteService(repo, counter, &fakeCEPResolver{}, &fakeStatsCache{}, time.Minute, validator.New(), zap.NewNop())

	err := svc.Delete(context.Background(), "cli-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.deleted)

	counter.confirmadas["cli-1"] = 0
	require.NoError(t, svc.Delete(context.Background(), "cli-1"))
	assert.Contains(t, repo.deleted, "cli-1")
}

func TestClienteStatsUsesCache(t *testing.T) {
	repo := &fakeClienteRepo{
		clientes: map[string]models.Cliente{},
		byEmail:  map[string]string{},
		stats:    &models.ClienteStats{Total: 42, PorStatus: map[string]int{"ativo": 42}, PorCidade: map[string]int{}},
	}
	cache := &fakeStatsCache{}
	svc := NewClienteService(repo, &fakeInscricaoCounter{}, &fakeCEPResolver{}, cache, time.Minute, validator.New(), zap.NewNop())

	first, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, first.Total)
	assert.Equal(t, 1, repo.statsHit)

	second, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, second.Total)
	assert.Equal(t, 1, repo.statsHit)
}

func TestClienteUpdateReEnrichesOnCEPChange(t *testing.T) {
	svc, _, ceps := newClienteFixture()

	created, err := svc.Create(context.Background(), CreateClienteRequest{Nome: "Maria", Email: "maria@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 0, ceps.calls)

	updated, err := svc.Update(context.Background(), created.ID, UpdateClienteRequest{
		Nome:  "Maria",
		Email: "maria@example.com",
		CEP:   "52050100",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, ceps.calls)
	assert.Equal(t, "Recife", updated.Cidade)
}
