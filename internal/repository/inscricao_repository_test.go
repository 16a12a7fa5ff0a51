package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/comunitech/acolhe-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestCreateWithReservationReservesSeat(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewInscricaoRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE atividades SET vagas_ocupadas = vagas_ocupadas + 1")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO inscricoes").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	inscricao := &models.Inscricao{ClienteID: "cli-1", AtividadeID: "atv-1", Status: models.InscricaoPendente}
	err := repo.CreateWithReservation(context.Background(), inscricao)
	require.NoError(t, err)
	require.NotEmpty(t, inscricao.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithReservationFullActivity(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewInscricaoRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE atividades SET vagas_ocupadas = vagas_ocupadas + 1")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	inscricao := &models.Inscricao{ClienteID: "cli-1", AtividadeID: "atv-1", Status: models.InscricaoPendente}
	err := repo.CreateWithReservation(context.Background(), inscricao)
	require.ErrorIs(t, err, ErrSemVagas)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelWithReleaseDecrementsCounter(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewInscricaoRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE inscricoes SET status = $2, cancelada_em = $3, motivo_cancelamento = $4 WHERE id = $1")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE atividades SET vagas_ocupadas = GREATEST(vagas_ocupadas - 1, 0)")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CancelWithRelease(context.Background(), "ins-1", "atv-1", "desistencia", time.Now().UTC(), true)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelWithoutReleaseLeavesCounter(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewInscricaoRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE inscricoes SET status = $2, cancelada_em = $3, motivo_cancelamento = $4 WHERE id = $1")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CancelWithRelease(context.Background(), "ins-1", "atv-1", "", time.Now().UTC(), false)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInscricaoStats(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewInscricaoRepository(db)

	rows := sqlmock.NewRows([]string{"key", "count"}).
		AddRow("pendente", 3).
		AddRow("confirmada", 5).
		AddRow("cancelada", 2)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status AS key, COUNT(*) AS count FROM inscricoes GROUP BY status")).
		WillReturnRows(rows)

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10, stats.Total)
	require.Equal(t, 5, stats.PorStatus["confirmada"])
	require.NoError(t, mock.ExpectationsWereMet())
}
