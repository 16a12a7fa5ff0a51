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

// ResponsavelRepository manages persistence for responsavel records.
type ResponsavelRepository struct {
	db *sqlx.DB
}

// NewResponsavelRepository constructs a ResponsavelRepository.
func NewResponsavelRepository(db *sqlx.DB) *ResponsavelRepository {
	return &ResponsavelRepository{db: db}
}

const responsavelColumns = "id, nome, matricula, email, unidade, telefone, status, created_at, updated_at"

// List returns responsaveis matching the provided filters, sorted by nome.
func (r *ResponsavelRepository) List(ctx context.Context, filter models.ResponsavelFilter) ([]models.Responsavel, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.Nome != "" {
		conditions = append(conditions, fmt.Sprintf("nome LIKE $%d", len(args)+1))
		args = append(args, filter.Nome+"%")
	}
	if filter.Email != "" {
		conditions = append(conditions, fmt.Sprintf("email = $%d", len(args)+1))
		args = append(args, filter.Email)
	}
	if filter.Unidade != "" {
		conditions = append(conditions, fmt.Sprintf("unidade = $%d", len(args)+1))
		args = append(args, filter.Unidade)
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

	query := fmt.Sprintf("SELECT %s FROM responsaveis WHERE %s ORDER BY nome ASC LIMIT %d OFFSET %d",
		responsavelColumns, where, size, offset)

	var responsaveis []models.Responsavel
	if err := r.db.SelectContext(ctx, &responsaveis, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list responsaveis: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM responsaveis WHERE %s", where)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count responsaveis: %w", err)
	}
	return responsaveis, total, nil
}

// FindByID fetches a responsavel by ID.
func (r *ResponsavelRepository) FindByID(ctx context.Context, id string) (*models.Responsavel, error) {
	query := fmt.Sprintf("SELECT %s FROM responsaveis WHERE id = $1", responsavelColumns)
	var responsavel models.Responsavel
	if err := r.db.GetContext(ctx, &responsavel, query, id); err != nil {
		return nil, err
	}
	return &responsavel, nil
}

// ExistsByMatricula checks for a responsavel with the given matricula,
// optionally excluding an ID.
func (r *ResponsavelRepository) ExistsByMatricula(ctx context.Context, matricula, excludeID string) (bool, error) {
	return r.exists(ctx, "matricula", matricula, excludeID)
}

// ExistsByEmail checks for a responsavel with the given email, optionally
// excluding an ID.
func (r *ResponsavelRepository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	return r.exists(ctx, "email", email, excludeID)
}

func (r *ResponsavelRepository) exists(ctx context.Context, column, value, excludeID string) (bool, error) {
	query := fmt.Sprintf("SELECT 1 FROM responsaveis WHERE %s = $1", column)
	args := []interface{}{value}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check responsavel %s: %w", column, err)
	}
	return true, nil
}

// Create inserts a new responsavel record.
func (r *ResponsavelRepository) Create(ctx context.Context, responsavel *models.Responsavel) error {
	if responsavel.ID == "" {
		responsavel.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if responsavel.CreatedAt.IsZero() {
		responsavel.CreatedAt = now
	}
	responsavel.UpdatedAt = now
	const query = `INSERT INTO responsaveis (id, nome, matricula, email, unidade, telefone, status, created_at, updated_at)
        VALUES (:id, :nome, :matricula, :email, :unidade, :telefone, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, responsavel); err != nil {
		return fmt.Errorf("create responsavel: %w", err)
	}
	return nil
}

// Update modifies an existing responsavel.
func (r *ResponsavelRepository) Update(ctx context.Context, responsavel *models.Responsavel) error {
	responsavel.UpdatedAt = time.Now().UTC()
	const query = `UPDATE responsaveis SET nome = :nome, matricula = :matricula, email = :email, unidade = :unidade,
        telefone = :telefone, status = :status, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, responsavel); err != nil {
		return fmt.Errorf("update responsavel: %w", err)
	}
	return nil
}

// Delete removes the responsavel record. Dependency guards run in the service.
func (r *ResponsavelRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM responsaveis WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete responsavel: %w", err)
	}
	return nil
}
