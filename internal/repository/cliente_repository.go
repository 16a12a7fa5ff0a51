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

// ClienteRepository manages persistence for cliente records.
type ClienteRepository struct {
	db *sqlx.DB
}

// NewClienteRepository constructs a ClienteRepository.
func NewClienteRepository(db *sqlx.DB) *ClienteRepository {
	return &ClienteRepository{db: db}
}

const clienteColumns = "id, nome, email, data_nascimento, telefone, cep, logradouro, bairro, cidade, estado, status, created_at, updated_at"

// List returns clientes matching the provided filters, sorted by nome.
func (r *ClienteRepository) List(ctx context.Context, filter models.ClienteFilter) ([]models.Cliente, int, error) {
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
	if filter.Cidade != "" {
		conditions = append(conditions, fmt.Sprintf("cidade = $%d", len(args)+1))
		args = append(args, filter.Cidade)
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

	query := fmt.Sprintf("SELECT %s FROM clientes WHERE %s ORDER BY nome ASC LIMIT %d OFFSET %d",
		clienteColumns, where, size, offset)

	var clientes []models.Cliente
	if err := r.db.SelectContext(ctx, &clientes, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list clientes: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM clientes WHERE %s", where)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count clientes: %w", err)
	}
	return clientes, total, nil
}

// FindByID fetches a cliente by ID.
func (r *ClienteRepository) FindByID(ctx context.Context, id string) (*models.Cliente, error) {
	query := fmt.Sprintf("SELECT %s FROM clientes WHERE id = $1", clienteColumns)
	var cliente models.Cliente
	if err := r.db.GetContext(ctx, &cliente, query, id); err != nil {
		return nil, err
	}
	return &cliente, nil
}

// FindByEmail fetches a cliente by exact email match.
func (r *ClienteRepository) FindByEmail(ctx context.Context, email string) (*models.Cliente, error) {
	query := fmt.Sprintf("SELECT %s FROM clientes WHERE email = $1", clienteColumns)
	var cliente models.Cliente
	if err := r.db.GetContext(ctx, &cliente, query, email); err != nil {
		return nil, err
	}
	return &cliente, nil
}

// ExistsByEmail checks for a cliente with the given email, case-sensitive,
// optionally excluding an ID.
func (r *ClienteRepository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	query := "SELECT 1 FROM clientes WHERE email = $1"
	args := []interface{}{email}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check cliente email: %w", err)
	}
	return true, nil
}

// Create inserts a new cliente record.
func (r *ClienteRepository) Create(ctx context.Context, cliente *models.Cliente) error {
	if cliente.ID == "" {
		cliente.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if cliente.CreatedAt.IsZero() {
		cliente.CreatedAt = now
	}
	cliente.UpdatedAt = now
	const query = `INSERT INTO clientes (id, nome, email, data_nascimento, telefone, cep, logradouro, bairro, cidade, estado, status, created_at, updated_at)
        VALUES (:id, :nome, :email, :data_nascimento, :telefone, :cep, :logradouro, :bairro, :cidade, :estado, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, cliente); err != nil {
		return fmt.Errorf("create cliente: %w", err)
	}
	return nil
}

// Update modifies an existing cliente.
func (r *ClienteRepository) Update(ctx context.Context, cliente *models.Cliente) error {
	cliente.UpdatedAt = time.Now().UTC()
	const query = `UPDATE clientes SET nome = :nome, email = :email, data_nascimento = :data_nascimento, telefone = :telefone,
        cep = :cep, logradouro = :logradouro, bairro = :bairro, cidade = :cidade, estado = :estado, status = :status,
        updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, cliente); err != nil {
		return fmt.Errorf("update cliente: %w", err)
	}
	return nil
}

// Delete removes the cliente record. Dependency guards run in the service.
func (r *ClienteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM clientes WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete cliente: %w", err)
	}
	return nil
}

// Stats aggregates cliente counts by status and cidade.
func (r *ClienteRepository) Stats(ctx context.Context) (*models.ClienteStats, error) {
	stats := &models.ClienteStats{
		PorStatus: map[string]int{},
		PorCidade: map[string]int{},
	}

	type bucket struct {
		Key   sql.NullString `db:"key"`
		Count int            `db:"count"`
	}

	var byStatus []bucket
	if err := r.db.SelectContext(ctx, &byStatus, "SELECT status AS key, COUNT(*) AS count FROM clientes GROUP BY status"); err != nil {
		return nil, fmt.Errorf("cliente stats by status: %w", err)
	}
	for _, b := range byStatus {
		stats.PorStatus[b.Key.String] = b.Count
		stats.Total += b.Count
	}

	var byCidade []bucket
	if err := r.db.SelectContext(ctx, &byCidade, "SELECT cidade AS key, COUNT(*) AS count FROM clientes WHERE cidade <> '' GROUP BY cidade"); err != nil {
		return nil, fmt.Errorf("cliente stats by cidade: %w", err)
	}
	for _, b := range byCidade {
		stats.PorCidade[b.Key.String] = b.Count
	}

	return stats, nil
}
