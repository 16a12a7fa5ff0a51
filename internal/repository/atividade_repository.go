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

// AtividadeRepository manages persistence for atividade records and their
// seat counters.
type AtividadeRepository struct {
	db *sqlx.DB
}

// NewAtividadeRepository constructs an AtividadeRepository.
func NewAtividadeRepository(db *sqlx.DB) *AtividadeRepository {
	return &AtividadeRepository{db: db}
}

const atividadeColumns = "id, nome, descricao, unidade, categoria, responsavel_id, vagas_total, vagas_ocupadas, status, created_at, updated_at"

// List returns atividades matching the provided filters, sorted by nome.
func (r *AtividadeRepository) List(ctx context.Context, filter models.AtividadeFilter) ([]models.Atividade, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.Nome != "" {
		conditions = append(conditions, fmt.Sprintf("nome LIKE $%d", len(args)+1))
		args = append(args, filter.Nome+"%")
	}
	if filter.Unidade != "" {
		conditions = append(conditions, fmt.Sprintf("unidade = $%d", len(args)+1))
		args = append(args, filter.Unidade)
	}
	if filter.Categoria != "" {
		conditions = append(conditions, fmt.Sprintf("categoria = $%d", len(args)+1))
		args = append(args, filter.Categoria)
	}
	if filter.ResponsavelID != "" {
		conditions = append(conditions, fmt.Sprintf("responsavel_id = $%d", len(args)+1))
		args = append(args, filter.ResponsavelID)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
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

	query := fmt.Sprintf("SELECT %s FROM atividades WHERE %s ORDER BY nome ASC LIMIT %d OFFSET %d",
		atividadeColumns, where, size, offset)

	var atividades []models.Atividade
	if err := r.db.SelectContext(ctx, &atividades, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list atividades: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM atividades WHERE %s", where)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count atividades: %w", err)
	}
	return atividades, total, nil
}

// FindByID fetches an atividade by ID.
func (r *AtividadeRepository) FindByID(ctx context.Context, id string) (*models.Atividade, error) {
	query := fmt.Sprintf("SELECT %s FROM atividades WHERE id = $1", atividadeColumns)
	var atividade models.Atividade
	if err := r.db.GetContext(ctx, &atividade, query, id); err != nil {
		return nil, err
	}
	return &atividade, nil
}

// ListByResponsavel returns every atividade owned by the given responsavel.
func (r *AtividadeRepository) ListByResponsavel(ctx context.Context, responsavelID string) ([]models.Atividade, error) {
	query := fmt.Sprintf("SELECT %s FROM atividades WHERE responsavel_id = $1 ORDER BY nome ASC", atividadeColumns)
	var atividades []models.Atividade
	if err := r.db.SelectContext(ctx, &atividades, query, responsavelID); err != nil {
		return nil, fmt.Errorf("list atividades by responsavel: %w", err)
	}
	return atividades, nil
}

// CountAtivasByResponsavel counts the responsavel's atividades with status
// ativa, used by the delete guard.
func (r *AtividadeRepository) CountAtivasByResponsavel(ctx context.Context, responsavelID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM atividades WHERE responsavel_id = $1 AND status = $2",
		responsavelID, models.AtividadeAtiva)
	if err != nil {
		return 0, fmt.Errorf("count atividades ativas: %w", err)
	}
	return count, nil
}

// CountByResponsavelPorStatus aggregates one responsavel's atividades by status.
func (r *AtividadeRepository) CountByResponsavelPorStatus(ctx context.Context, responsavelID string) (map[string]int, error) {
	type bucket struct {
		Key   string `db:"key"`
		Count int    `db:"count"`
	}
	var buckets []bucket
	err := r.db.SelectContext(ctx, &buckets,
		"SELECT status AS key, COUNT(*) AS count FROM atividades WHERE responsavel_id = $1 GROUP BY status",
		responsavelID)
	if err != nil {
		return nil, fmt.Errorf("atividade stats by responsavel: %w", err)
	}
	result := make(map[string]int, len(buckets))
	for _, b := range buckets {
		result[b.Key] = b.Count
	}
	return result, nil
}

// Create inserts a new atividade record.
func (r *AtividadeRepository) Create(ctx context.Context, atividade *models.Atividade) error {
	if atividade.ID == "" {
		atividade.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if atividade.CreatedAt.IsZero() {
		atividade.CreatedAt = now
	}
	atividade.UpdatedAt = now
	const query = `INSERT INTO atividades (id, nome, descricao, unidade, categoria, responsavel_id, vagas_total, vagas_ocupadas, status, created_at, updated_at)
        VALUES (:id, :nome, :descricao, :unidade, :categoria, :responsavel_id, :vagas_total, :vagas_ocupadas, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, atividade); err != nil {
		return fmt.Errorf("create atividade: %w", err)
	}
	return nil
}

// Update modifies an existing atividade. The seat counter is only mutated
// through the inscricao transaction paths.
func (r *AtividadeRepository) Update(ctx context.Context, atividade *models.Atividade) error {
	atividade.UpdatedAt = time.Now().UTC()
	const query = `UPDATE atividades SET nome = :nome, descricao = :descricao, unidade = :unidade, categoria = :categoria,
        responsavel_id = :responsavel_id, vagas_total = :vagas_total, status = :status, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, atividade); err != nil {
		return fmt.Errorf("update atividade: %w", err)
	}
	return nil
}

// Delete removes the atividade record. Dependency guards run in the service.
func (r *AtividadeRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM atividades WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete atividade: %w", err)
	}
	return nil
}

// Stats aggregates atividade counts by status and unidade.
func (r *AtividadeRepository) Stats(ctx context.Context) (*models.AtividadeStats, error) {
	stats := &models.AtividadeStats{
		PorStatus:  map[string]int{},
		PorUnidade: map[string]int{},
	}

	type bucket struct {
		Key   sql.NullString `db:"key"`
		Count int            `db:"count"`
	}

	var byStatus []bucket
	if err := r.db.SelectContext(ctx, &byStatus, "SELECT status AS key, COUNT(*) AS count FROM atividades GROUP BY status"); err != nil {
		return nil, fmt.Errorf("atividade stats by status: %w", err)
	}
	for _, b := range byStatus {
		stats.PorStatus[b.Key.String] = b.Count
		stats.Total += b.Count
	}

	var byUnidade []bucket
	if err := r.db.SelectContext(ctx, &byUnidade, "SELECT unidade AS key, COUNT(*) AS count FROM atividades WHERE unidade <> '' GROUP BY unidade"); err != nil {
		return nil, fmt.Errorf("atividade stats by unidade: %w", err)
	}
	for _, b := range byUnidade {
		stats.PorUnidade[b.Key.String] = b.Count
	}

	return stats, nil
}
