package handler

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/comunitech/acolhe-api/internal/models"
	"github.com/comunitech/acolhe-api/internal/repository"
	"github.com/comunitech/acolhe-api/internal/service"
)

type memInscricaoStore struct {
	seq        int
	inscricoes map[string]*models.Inscricao
	atividades map[string]*models.Atividade
	clientes   map[string]*models.Cliente
}

func newMemInscricaoStore() *memInscricaoStore {
	return &memInscricaoStore{
		inscricoes: map[string]*models.Inscricao{},
		atividades: map[string]*models.Atividade{},
		clientes:   map[string]*models.Cliente{},
	}
}

func (s *memInscricaoStore) CreateWithReservation(ctx context.Context, inscricao *models.Inscricao) error {
	atividade := s.atividades[inscricao.AtividadeID]
	if atividade.VagasOcupadas >= atividade.VagasTotal {
		return repository.ErrSemVagas
	}
	atividade.VagasOcupadas++
	s.seq++
	inscricao.ID = fmt.Sprintf("ins-%d", s.seq)
	inscricao.CriadaEm = time.Now().UTC()
	copied := *inscricao
	s.inscricoes[inscricao.ID] = &copied
	return nil
}

func (s *memInscricaoStore) List(ctx context.Context, filter models.InscricaoFilter) ([]models.Inscricao, int, error) {
	out := []models.Inscricao{}
	for _, i := range s.inscricoes {
		if filter.ClienteID != "" && i.ClienteID != filter.ClienteID {
			continue
		}
		if filter.AtividadeID != "" && i.AtividadeID != filter.AtividadeID {
			continue
		}
		if filter.Status != "" && i.Status != filter.Status {
			continue
		}
		out = append(out, *i)
	}
	return out, len(out), nil
}

func (s *memInscricaoStore) ListAll(ctx context.Context) ([]models.Inscricao, error) {
	out := []models.Inscricao{}
	for _, i := range s.inscricoes {
		out = append(out, *i)
	}
	return out, nil
}

func (s *memInscricaoStore) FindByID(ctx context.Context, id string) (*models.Inscricao, error) {
	i, ok := s.inscricoes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *i
	return &copied, nil
}

func (s *memInscricaoStore) Confirm(ctx context.Context, id string, ts time.Time) error {
	s.inscricoes[id].Status = models.InscricaoConfirmada
	s.inscricoes[id].ConfirmadaEm = &ts
	return nil
}

func (s *memInscricaoStore) CancelWithRelease(ctx context.Context, id, atividadeID, motivo string, ts time.Time, releaseSeat bool) error {
	i := s.inscricoes[id]
	i.Status = models.InscricaoCancelada
	i.CanceladaEm = &ts
	i.MotivoCancelamento = motivo
	if releaseSeat {
		if atividade := s.atividades[atividadeID]; atividade != nil && atividade.VagasOcupadas > 0 {
			atividade.VagasOcupadas--
		}
	}
	return nil
}

func (s *memInscricaoStore) Stats(ctx context.Context) (*models.InscricaoStats, error) {
	stats := &models.InscricaoStats{PorStatus: map[string]int{}}
	for _, i := range s.inscricoes {
		stats.Total++
		stats.PorStatus[string(i.Status)]++
	}
	return stats, nil
}

type storeClienteReader struct{ store *memInscricaoStore }

func (r storeClienteReader) FindByID(ctx context.Context, id string) (*models.Cliente, error) {
	c, ok := r.store.clientes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return c, nil
}

type storeAtividadeReader struct{ store *memInscricaoStore }

func (r storeAtividadeReader) FindByID(ctx context.Context, id string) (*models.Atividade, error) {
	a, ok := r.store.atividades[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *a
	return &copied, nil
}

func buildInscricaoRouter(store *memInscricaoStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewInscricaoService(store, storeClienteReader{store}, storeAtividadeReader{store}, noopCache{}, time.Minute, nil, nil)
	h := NewInscricaoHandler(svc)

	router := gin.New()
	router.POST("/inscricoes", h.Create)
	router.PUT("/inscricoes/:id/cancelar", h.Cancel)
	router.GET("/inscricoes/admin/exportar", h.Export)
	return router
}

func TestInscricaoRoutes(t *testing.T) {
	store := newMemInscricaoStore()
	store.clientes["cli-1"] = &models.Cliente{ID: "cli-1", Nome: "Marcos Souza"}
	store.atividades["atv-1"] = &models.Atividade{ID: "atv-1", Nome: "Yoga", VagasTotal: 1, Status: models.AtividadeAtiva}
	router := buildInscricaoRouter(store)

	enroll := func() int {
		req, _ := http.NewRequest(http.MethodPost, "/inscricoes", bytes.NewBufferString(`{"clienteId":"cli-1","atividadeId":"atv-1"}`))
		req.Header.Set("Content-Type", "application/json")
		return performRequest(router, req).Code
	}

	t.Run("create reserves the last seat", func(t *testing.T) {
		require.Equal(t, http.StatusCreated, enroll())
		require.Equal(t, 1, store.atividades["atv-1"].VagasOcupadas)
	})

	t.Run("full atividade is a conflict", func(t *testing.T) {
		require.Equal(t, http.StatusConflict, enroll())
	})

	t.Run("cancel releases the seat", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPut, "/inscricoes/ins-1/cancelar", bytes.NewBufferString(`{"motivo":"desistencia"}`))
		req.Header.Set("Content-Type", "application/json")
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Equal(t, 0, store.atividades["atv-1"].VagasOcupadas)
		require.Equal(t, http.StatusCreated, enroll())
	})

	t.Run("export csv carries the ledger", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/inscricoes/admin/exportar?formato=csv", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Contains(t, resp.Header().Get("Content-Type"), "text/csv")
		require.Contains(t, resp.Header().Get("Content-Disposition"), "attachment")
		body := resp.Body.String()
		require.True(t, strings.HasPrefix(body, "ID"))
		require.Contains(t, body, "cancelada")
	})

	t.Run("export pdf renders a document", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/inscricoes/admin/exportar?formato=pdf", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Equal(t, "application/pdf", resp.Header().Get("Content-Type"))
		require.True(t, bytes.HasPrefix(resp.Body.Bytes(), []byte("%PDF")))
	})

	t.Run("unknown format is rejected", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/inscricoes/admin/exportar?formato=xml", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusBadRequest, resp.Code)
	})
}
