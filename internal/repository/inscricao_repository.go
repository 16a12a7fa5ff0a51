package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/comunitech/acolhe-api/internal/models"
)

// ErrSemVagas is returned when the conditional seat reservation finds the
// atividade already full.
var ErrSemVagas = errors.New("nao ha vagas disponiveis")

// InscricaoRepository manages persistence for inscricao records. Seat
// reservation and release run in the same transaction as the inscricao
// write so concurrent requests cannot overbook an atividade.
type InscricaoRepository struct {
	db *sqlx.DB
}

// NewInscricaoRepository constructs an InscricaoRepository.
func NewInscricaoRepository(db *sqlx.DB) *InscricaoRepository {
	return &InscricaoRepository{db: db}
}

const inscricaoColumns = "id, cliente_id, atividade_id, status, criada_em, confirmada_em, cancelada_em, motivo_cancelamento"

// CreateWithReservation reserves a seat on the atividade and inserts the
// inscricao atomically. The conditional UPDATE guards the upper bound:
// vagas_ocupadas never exceeds vagas_total even under concurrent creations.
func (r *InscricaoRepository) CreateWithReservation(ctx context.Context, inscricao *models.Inscricao) error {
	if inscricao.ID == "" {
		inscricao.ID = uuid.NewString()
	}
	if inscricao.CriadaEm.IsZero() {
		inscricao.CriadaEm = time.Now().UTC()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin inscricao tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx,
		`UPDATE atividades SET vagas_ocupadas = vagas_ocupadas + 1, updated_at = $2
         WHERE id = $1 AND vagas_ocupadas < vagas_total`,
		inscricao.AtividadeID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("reserve vaga: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reserve vaga result: %w", err)
	}
	if affected == 0 {
		return ErrSemVagas
	}

	const insert = `INSERT INTO inscricoes (id, cliente_id, atividade_id, status, criada_em, confirmada_em, cancelada_em, motivo_cancelamento)
        VALUES (:id, :cliente_id, :atividade_id, :status, :criada_em, :confirmada_em, :cancelada_em, :motivo_cancelamento)`
	if _, err := tx.NamedExecContext(ctx, insert, inscricao); err != nil {
		return fmt.Errorf("create inscricao: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit inscricao tx: %w", err)
	}
	return nil
}

// List returns inscricoes matching the provided filters, newest first.
func (r *InscricaoRepository) List(ctx context.Context, filter models.InscricaoFilter) ([]models.Inscricao, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.ClienteID != "" {
		conditions = append(conditions, fmt.Sprintf("cliente_id = $%d", len(args)+1))
		args = append(args, filter.ClienteID)
	}
	if filter.AtividadeID != "" {
		conditions = append(conditions, fmt.Sprintf("atividade_id = $%d", len(args)+1))
		args = append(args, filter.AtividadeID)
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

	query := fmt.Sprintf("SELECT %s FROM inscricoes WHERE %s ORDER BY criada_em DESC LIMIT %d OFFSET %d",
		inscricaoColumns, where, size, offset)

	var inscricoes []models.Inscricao
	if err := r.db.SelectContext(ctx, &inscricoes, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list inscricoes: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM inscricoes WHERE %s", where)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count inscricoes: %w", err)
	}
	return inscricoes, total, nil
}

// ListAll returns the full ledger ordered by creation time, used by exports.
func (r *InscricaoRepository) ListAll(ctx context.Context) ([]models.Inscricao, error) {
	query := fmt.Sprintf("SELECT %s FROM inscricoes ORDER BY criada_em DESC", inscricaoColumns)
	var inscricoes []models.Inscricao
	if err := r.db.SelectContext(ctx, &inscricoes, query); err != nil {
		return nil, fmt.Errorf("list all inscricoes: %w", err)
	}
	return inscricoes, nil
}

// FindByID fetches an inscricao by ID.
func (r *InscricaoRepository) FindByID(ctx context.Context, id string) (*models.Inscricao, error) {
	query := fmt.Sprintf("SELECT %s FROM inscricoes WHERE id = $1", inscricaoColumns)
	var inscricao models.Inscricao
	if err := r.db.GetContext(ctx, &inscricao, query, id); err != nil {
		return nil, err
	}
	return &inscricao, nil
}

// Confirm marks the inscricao as confirmada. The seat counter is untouched:
// it was already reserved at creation.
func (r *InscricaoRepository) Confirm(ctx context.Context, id string, ts time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE inscricoes SET status = $2, confirmada_em = $3 WHERE id = $1",
		id, models.InscricaoConfirmada, ts)
	if err != nil {
		return fmt.Errorf("confirm inscricao: %w", err)
	}
	return nil
}

// CancelWithRelease marks the inscricao as cancelada and, when releaseSeat is
// set, releases the reserved seat in the same transaction. The decrement is
// floored at zero.
func (r *InscricaoRepository) CancelWithRelease(ctx context.Context, id, atividadeID, motivo string, ts time.Time, releaseSeat bool) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cancel tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		"UPDATE inscricoes SET status = $2, cancelada_em = $3, motivo_cancelamento = $4 WHERE id = $1",
		id, models.InscricaoCancelada, ts, motivo)
	if err != nil {
		return fmt.Errorf("cancel inscricao: %w", err)
	}

	if releaseSeat {
		_, err = tx.ExecContext(ctx,
			"UPDATE atividades SET vagas_ocupadas = GREATEST(vagas_ocupadas - 1, 0), updated_at = $2 WHERE id = $1",
			atividadeID, ts)
		if err != nil {
			return fmt.Errorf("release vaga: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cancel tx: %w", err)
	}
	return nil
}

// CountConfirmadasByCliente counts confirmed inscricoes for a cliente, used
// by the cliente delete guard.
func (r *InscricaoRepository) CountConfirmadasByCliente(ctx context.Context, clienteID string) (int, error) {
	return r.countConfirmadas(ctx, "cliente_id", clienteID)
}

// CountConfirmadasByAtividade counts confirmed inscricoes for an atividade,
// used by the atividade delete guard.
func (r *InscricaoRepository) CountConfirmadasByAtividade(ctx context.Context, atividadeID string) (int, error) {
	return r.countConfirmadas(ctx, "atividade_id", atividadeID)
}

func (r *InscricaoRepository) countConfirmadas(ctx context.Context, column, value string) (int, error) {
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM inscricoes WHERE %s = $1 AND status = $2", column)
	if err := r.db.GetContext(ctx, &count, query, value, models.InscricaoConfirmada); err != nil {
		return 0, fmt.Errorf("count inscricoes confirmadas: %w", err)
	}
	return count, nil
}

// Stats aggregates inscricao counts by status.
func (r *InscricaoRepository) Stats(ctx context.Context) (*models.InscricaoStats, error) {
	stats := &models.InscricaoStats{PorStatus: map[string]int{}}

	type bucket struct {
		Key   sql.NullString `db:"key"`
		Count int            `db:"count"`
	}

	var byStatus []bucket
	if err := r.db.SelectContext(ctx, &byStatus, "SELECT status AS key, COUNT(*) AS count FROM inscricoes GROUP BY status"); err != nil {
		return nil, fmt.Errorf("inscricao stats: %w", err)
	}
	for _, b := range byStatus {
		stats.PorStatus[b.Key.String] = b.Count
		stats.Total += b.Count
	}
	return stats, nil
}
