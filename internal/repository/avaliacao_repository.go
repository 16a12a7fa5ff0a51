package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/comunitech/acolhe-api/internal/models"
)

// AvaliacaoRepository manages persistence for avaliacao records.
type AvaliacaoRepository struct {
	db *sqlx.DB
}

// NewAvaliacaoRepository constructs an AvaliacaoRepository.
func NewAvaliacaoRepository(db *sqlx.DB) *AvaliacaoRepository {
	return &AvaliacaoRepository{db: db}
}

const avaliacaoColumns = "id, tipo, titulo, descricao, categoria, ip_origem, user_agent, status, visivel, prioridade, resposta, respondida_por, respondida_em, criada_em"

// List returns avaliacoes matching the provided filters, newest first.
func (r *AvaliacaoRepository) List(ctx context.Context, filter models.AvaliacaoFilter) ([]models.Avaliacao, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.Tipo != "" {
		conditions = append(conditions, fmt.Sprintf("tipo = $%d", len(args)+1))
		args = append(args, filter.Tipo)
	}
	if filter.Categoria != "" {
		conditions = append(conditions, fmt.Sprintf("categoria = $%d", len(args)+1))
		args = append(args, filter.Categoria)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.Prioridade != "" {
		conditions = append(conditions, fmt.Sprintf("prioridade = $%d", len(args)+1))
		args = append(args, filter.Prioridade)
	}

	where := strings.Join(conditions, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s FROM avaliacoes WHERE %s ORDER BY criada_em DESC LIMIT %d OFFSET %d",
		avaliacaoColumns, where, size, offset)

	var avaliacoes []models.Avaliacao
	if err := r.db.SelectContext(ctx, &avaliacoes, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list avaliacoes: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM avaliacoes WHERE %s", where)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count avaliacoes: %w", err)
	}
	return avaliacoes, total, nil
}

// FindByID fetches an avaliacao by ID.
func (r *AvaliacaoRepository) FindByID(ctx context.Context, id string) (*models.Avaliacao, error) {
	query := fmt.Sprintf("SELECT %s FROM avaliacoes WHERE id = $1", avaliacaoColumns)
	var avaliacao models.Avaliacao
	if err := r.db.GetContext(ctx, &avaliacao, query, id); err != nil {
		return nil, err
	}
	return &avaliacao, nil
}

// Create inserts a new avaliacao record.
func (r *AvaliacaoRepository) Create(ctx context.Context, avaliacao *models.Avaliacao) error {
	if avaliacao.ID == "" {
		avaliacao.ID = uuid.NewString()
	}
	if avaliacao.CriadaEm.IsZero() {
		avaliacao.CriadaEm = time.Now().UTC()
	}
	const query = `INSERT INTO avaliacoes (id, tipo, titulo, descricao, categoria, ip_origem, user_agent, status, visivel, prioridade, resposta, respondida_por, respondida_em, criada_em)
        VALUES (:id, :tipo, :titulo, :descricao, :categoria, :ip_origem, :user_agent, :status, :visivel, :prioridade, :resposta, :respondida_por, :respondida_em, :criada_em)`
	if _, err := r.db.NamedExecContext(ctx, query, avaliacao); err != nil {
		return fmt.Errorf("create avaliacao: %w", err)
	}
	return nil
}

// Respond records the admin response and flips the status to respondida.
func (r *AvaliacaoRepository) Respond(ctx context.Context, id, texto, autor string, ts time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE avaliacoes SET resposta = $2, respondida_por = $3, respondida_em = $4, status = $5 WHERE id = $1",
		id, texto, autor, ts, models.AvaliacaoRespondida)
	if err != nil {
		return fmt.Errorf("respond avaliacao: %w", err)
	}
	return nil
}

// Stats aggregates avaliacao totals and per-tipo counts.
func (r *AvaliacaoRepository) Stats(ctx context.Context) (*models.AvaliacaoStats, error) {
	stats := &models.AvaliacaoStats{PorTipo: map[string]int{}}

	type bucket struct {
		Key   sql.NullString `db:"key"`
		Count int            `db:"count"`
	}

	var byStatus []bucket
	if err := r.db.SelectContext(ctx, &byStatus, "SELECT status AS key, COUNT(*) AS count FROM avaliacoes GROUP BY status"); err != nil {
		return nil, fmt.Errorf("avaliacao stats by status: %w", err)
	}
	for _, b := range byStatus {
		stats.Total += b.Count
		switch models.StatusAvaliacao(b.Key.String) {
		case models.AvaliacaoPendente:
			stats.Pendentes = b.Count
		case models.AvaliacaoRespondida:
			stats.Respondidas = b.Count
		}
	}

	var byTipo []bucket
	if err := r.db.SelectContext(ctx, &byTipo, "SELECT tipo AS key, COUNT(*) AS count FROM avaliacoes GROUP BY tipo"); err != nil {
		return nil, fmt.Errorf("avaliacao stats by tipo: %w", err)
	}
	for _, b := range byTipo {
		stats.PorTipo[b.Key.String] = b.Count
	}

	return stats, nil
}
