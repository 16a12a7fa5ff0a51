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
	appErrors "github.com/comunitech/acolhe-api/pkg/errors"
)

type fakeAtividadeRepo struct {
	atividades map[string]models.Atividade
	deleted    []string
}

func (f *fakeAtividadeRepo) List(ctx context.Context, filter models.AtividadeFilter) ([]models.Atividade, int, error) {
	var out []models.Atividade
	for _, a := range f.atividades {
		out = append(out, a)
	}
	return out, len(out), nil
}

func (f *fakeAtividadeRepo) FindByID(ctx context.Context, id string) (*models.Atividade, error) {
	if a, ok := f.atividades[id]; ok {
		return &a, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAtividadeRepo) Create(ctx context.Context, atividade *models.Atividade) error {
	if f.atividades == nil {
		f.atividades = map[string]models.Atividade{}
	}
	if atividade.ID == "" {
		atividade.ID = "atv-new"
	}
	f.atividades[atividade.ID] = *atividade
	return nil
}

func (f *fakeAtividadeRepo) Update(ctx context.Context, atividade *models.Atividade) error {
	f.atividades[atividade.ID] = *atividade
	return nil
}

func (f *fakeAtividadeRepo) Delete(ctx context.Context, id string) error {
	delete(f.atividades, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAtividadeRepo) Stats(ctx context.Context) (*models.AtividadeStats, error) {
	stats := &models.AtividadeStats{PorStatus: map[string]int{}, PorUnidade: map[string]int{}}
	for _, a := range f.atividades {
		stats.Total++
		stats.PorStatus[string(a.Status)]++
	}
	return stats, nil
}

type fakeResponsavelReader struct {
	responsaveis map[string]*models.Responsavel
}

func (f *fakeResponsavelReader) FindByID(ctx context.Context, id string) (*models.Responsavel, error) {
	if r, ok := f.responsaveis[id]; ok {
		return r, nil
	}
	return nil, sql.ErrNoRows
}

func newAtividadeFixture() (*AtividadeService, *fakeAtividadeRepo, *fakeInscricaoCounter) {
	repo := &fakeAtividadeRepo{atividades: map[string]models.Atividade{}}
	responsaveis := &fakeResponsavelReader{responsaveis: map[string]*models.Responsavel{
		"resp-1": {ID: "resp-1", Nome: "Ana", Status: models.StatusAtivo},
	}}
	counter := &fakeInscricaoCounter{confirmadas: map[string]int{}}
	svc := NewAtividadeService(repo, responsaveis, counter, &fakeStatsCache{}, time.Minute, validator.New(), zap.NewNop())
	return svc, repo, counter
}

func TestAtividadeCreateUnknownResponsavel(t *testing.T) {
	svc, _, _ := newAtividadeFixture()

	_, err := svc.Create(context.Background(), CreateAtividadeRequest{
		Nome: "Oficina", ResponsavelID: "ghost", VagasTotal: 10,
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "responsavel nao encontrado", appErr.Message)
}

func TestAtividadeCreateStartsEmpty(t *testing.T) {
	svc, _, _ := newAtividadeFixture()

	atividade, err := svc.Create(context.Background(), CreateAtividadeRequest{
		Nome: "Oficina", ResponsavelID: "resp-1", VagasTotal: 15,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, atividade.VagasOcupadas)
	assert.Equal(t, 15, atividade.VagasRestantes())
	assert.Equal(t, models.AtividadeAtiva, atividade.Status)
}

func TestAtividadeUpdateCannotShrinkBelowOccupancy(t *testing.T) {
	svc, repo, _ := newAtividadeFixture()
	repo.atividades["atv-1"] = models.Atividade{
		ID: "atv-1", Nome: "Oficina", ResponsavelID: "resp-1",
		VagasTotal: 20, VagasOcupadas: 12, Status: models.AtividadeAtiva,
	}

	_, err := svc.Update(context.Background(), "atv-1", UpdateAtividadeRequest{
		Nome: "Oficina", ResponsavelID: "resp-1", VagasTotal: 10,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)

	updated, err := svc.Update(context.Background(), "atv-1", UpdateAtividadeRequest{
		Nome: "Oficina", ResponsavelID: "resp-1", VagasTotal: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, updated.VagasTotal)
}

func TestAtividadeDeleteGuardedByConfirmadas(t *testing.T) {
	svc, repo, counter := newAtividadeFixture()
	repo.atividades["atv-1"] = models.Atividade{ID: "atv-1", ResponsavelID: "resp-1", Status: models.AtividadeAtiva}
	counter.confirmadas["atv-1"] = 3

	err := svc.Delete(context.Background(), "atv-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.deleted)

	counter.confirmadas["atv-1"] = 0
	require.NoError(t, svc.Delete(context.Background(), "atv-1"))
	assert.Contains(t, repo.deleted, "atv-1")
}

func TestAtividadeGetDetailResolvesResponsavel(t *testing.T) {
	svc, repo, _ := newAtividadeFixture()
	repo.atividades["atv-1"] = models.Atividade{ID: "atv-1", ResponsavelID: "resp-1", Status: models.AtividadeAtiva}

	detail, err := svc.GetDetail(context.Background(), "atv-1")
	require.NoError(t, err)
	require.NotNil(t, detail.Responsavel)
	assert.Equal(t, "Ana", detail.Responsavel.Nome)
}

func TestAtividadeGetDetailToleratesMissingResponsavel(t *testing.T) {
	svc, repo, _ := newAtividadeFixture()
	repo.atividades["atv-1"] = models.Atividade{ID: "atv-1", ResponsavelID: "ghost", Status: models.AtividadeAtiva}

	detail, err := svc.GetDetail(context.Background(), "atv-1")
	require.NoError(t, err)
	assert.Nil(t, detail.Responsavel)
}
