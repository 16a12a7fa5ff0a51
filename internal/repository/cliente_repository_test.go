package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/comunitech/acolhe-api/internal/models"
)

func TestClienteListAppliesPrefixFilterAndPagination(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClienteRepository(db)

	rows := sqlmock.NewRows([]string{"id", "nome", "email", "data_nascimento", "telefone", "cep", "logradouro", "bairro", "cidade", "estado", "status", "created_at", "updated_at"}).
		AddRow("cli-1", "Maria", "maria@x.com", nil, "", "", "", "", "Recife", "PE", "ativo", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("nome LIKE $1 ORDER BY nome ASC LIMIT 10 OFFSET 10")).
		WithArgs("Mar%").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM clientes")).
		WithArgs("Mar%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	clientes, total, err := repo.List(context.Background(), models.ClienteFilter{Nome: "Mar", Page: 2, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, clientes, 1)
	require.Equal(t, 25, total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClienteExistsByEmail(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClienteRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM clientes WHERE email = $1 LIMIT 1")).
		WithArgs("maria@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(1))

	exists, err := repo.ExistsByEmail(context.Background(), "maria@x.com", "")
	require.NoError(t, err)
	require.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClienteExistsByEmailNoRows(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClienteRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM clientes WHERE email = $1 LIMIT 1")).
		WithArgs("ninguem@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}))

	exists, err := repo.ExistsByEmail(context.Background(), "ninguem@x.com", "")
	require.NoError(t, err)
	require.False(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClienteStatsGroupsByStatusAndCidade(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClienteRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT status AS key, COUNT(*) AS count FROM clientes GROUP BY status")).
		WillReturnRows(sqlmock.NewRows([]string{"key", "count"}).AddRow("ativo", 7).AddRow("inativo", 3))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT cidade AS key, COUNT(*) AS count FROM clientes")).
		WillReturnRows(sqlmock.NewRows([]string{"key", "count"}).AddRow("Recife", 6).AddRow("Olinda", 4))

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10, stats.Total)
	require.Equal(t, 7, stats.PorStatus["ativo"])
	require.Equal(t, 6, stats.PorCidade["Recife"])
	require.NoError(t, mock.ExpectationsWereMet())
}
