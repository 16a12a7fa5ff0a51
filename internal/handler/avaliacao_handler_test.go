package handler

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/comunitech/acolhe-api/internal/middleware"
	"github.com/comunitech/acolhe-api/internal/models"
	"github.com/comunitech/acolhe-api/internal/service"
)

type memAvaliacaoRepo struct {
	seq   int
	items map[string]*models.Avaliacao
}

func newMemAvaliacaoRepo() *memAvaliacaoRepo {
	return &memAvaliacaoRepo{items: map[string]*models.Avaliacao{}}
}

func (r *memAvaliacaoRepo) List(ctx context.Context, filter models.AvaliacaoFilter) ([]models.Avaliacao, int, error) {
	out := []models.Avaliacao{}
	for _, a := range r.items {
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		out = append(out, *a)
	}
	return out, len(out), nil
}

func (r *memAvaliacaoRepo) FindByID(ctx context.Context, id string) (*models.Avaliacao, error) {
	a, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *a
	return &copied, nil
}

func (r *memAvaliacaoRepo) Create(ctx context.Context, avaliacao *models.Avaliacao) error {
	r.seq++
	avaliacao.ID = fmt.Sprintf("av-%d", r.seq)
	avaliacao.CriadaEm = time.Now().UTC()
	copied := *avaliacao
	r.items[avaliacao.ID] = &copied
	return nil
}

func (r *memAvaliacaoRepo) Respond(ctx context.Context, id, texto, autor string, ts time.Time) error {
	a, ok := r.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	a.Resposta = texto
	a.RespondidaPor = autor
	a.RespondidaEm = &ts
	a.Status = models.AvaliacaoRespondida
	return nil
}

func (r *memAvaliacaoRepo) Stats(ctx context.Context) (*models.AvaliacaoStats, error) {
	stats := &models.AvaliacaoStats{PorTipo: map[string]int{}}
	for _, a := range r.items {
		stats.Total++
		if a.Status == models.AvaliacaoPendente {
			stats.Pendentes++
		} else {
			stats.Respondidas++
		}
		stats.PorTipo[string(a.Tipo)]++
	}
	return stats, nil
}

type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string, dest interface{}) error {
	return errors.New("cache miss")
}

func (noopCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (noopCache) Delete(ctx context.Context, pattern string) error { return nil }

func testPrincipal() gin.HandlerFunc {
	return func(c *gin.Context) {
		if nome := c.GetHeader("X-Test-Nome"); nome != "" {
			c.Set(middleware.ContextUserKey, &models.Principal{ID: "adm-1", Nome: nome, Role: models.RoleStaff})
		}
		c.Next()
	}
}

func buildAvaliacaoRouter(repo *memAvaliacaoRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewAvaliacaoService(repo, noopCache{}, time.Minute, nil, nil)
	h := NewAvaliacaoHandler(svc)

	router := gin.New()
	router.Use(testPrincipal())
	router.POST("/avaliacoes", h.Create)
	router.PUT("/avaliacoes/:id/responder", h.Respond)
	router.GET("/avaliacoes/admin/pendentes", h.Pendentes)
	return router
}

func performRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestAvaliacaoRoutes(t *testing.T) {
	repo := newMemAvaliacaoRepo()
	router := buildAvaliacaoRouter(repo)

	t.Run("create forces triage defaults and stamps origin", func(t *testing.T) {
		payload := `{"tipo":"critica","titulo":"Fila longa","descricao":"Espera acima de uma hora","status":"respondida","visivel":true,"prioridade":"alta"}`
		req, _ := http.NewRequest(http.MethodPost, "/avaliacoes", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", "acolhe-test/1.0")
		req.RemoteAddr = "10.1.2.3:51234"
		resp := performRequest(router, req)
		require.Equal(t, http.StatusCreated, resp.Code)

		stored := repo.items["av-1"]
		require.NotNil(t, stored)
		require.Equal(t, models.AvaliacaoPendente, stored.Status)
		require.False(t, stored.Visivel)
		require.Equal(t, models.PrioridadeNormal, stored.Prioridade)
		require.Equal(t, "10.1.2.3", stored.IPOrigem)
		require.Equal(t, "acolhe-test/1.0", stored.UserAgent)
	})

	t.Run("create rejects unknown tipo", func(t *testing.T) {
		payload := `{"tipo":"reclamacao","titulo":"x","descricao":"y"}`
		req, _ := http.NewRequest(http.MethodPost, "/avaliacoes", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		resp := performRequest(router, req)
		require.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("respond records the authenticated staff name", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPut, "/avaliacoes/av-1/responder", bytes.NewBufferString(`{"resposta":"Vamos reforcar a equipe"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Test-Nome", "Joana Lima")
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Equal(t, "Joana Lima", repo.items["av-1"].RespondidaPor)
	})

	t.Run("respond twice is a conflict", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPut, "/avaliacoes/av-1/responder", bytes.NewBufferString(`{"resposta":"de novo"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Test-Nome", "Joana Lima")
		resp := performRequest(router, req)
		require.Equal(t, http.StatusConflict, resp.Code)
	})

	t.Run("pendentes excludes answered avaliacoes", func(t *testing.T) {
		payload := `{"tipo":"sugestao","titulo":"Horario estendido","descricao":"Abrir aos sabados"}`
		req, _ := http.NewRequest(http.MethodPost, "/avaliacoes", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		resp := performRequest(router, req)
		require.Equal(t, http.StatusCreated, resp.Code)

		req, _ = http.NewRequest(http.MethodGet, "/avaliacoes/admin/pendentes", nil)
		resp = performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Contains(t, resp.Body.String(), "Horario estendido")
		require.NotContains(t, resp.Body.String(), "Fila longa")
	})
}
