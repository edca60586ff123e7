package postgres

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serviceColumns() []string {
	return []string{"id", "code", "name", "tariff"}
}

func TestServiceRepo_GetByCode(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewServiceRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM services WHERE code").
		WithArgs("PLN").
		WillReturnRows(pgxmock.NewRows(serviceColumns()).AddRow(int64(2), "PLN", "Listrik", int64(10000)))

	s, err := repo.GetByCode(context.Background(), "PLN")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "Listrik", s.Name)
	assert.Equal(t, int64(10000), s.Tariff)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceRepo_GetByCode_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewServiceRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM services WHERE code").
		WithArgs("NOPE").
		WillReturnRows(pgxmock.NewRows(serviceColumns()))

	s, err := repo.GetByCode(context.Background(), "NOPE")
	assert.NoError(t, err)
	assert.Nil(t, s)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceRepo_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewServiceRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM services ORDER BY id").
		WillReturnRows(pgxmock.NewRows(serviceColumns()).
			AddRow(int64(1), "PAJAK", "Pajak PBB", int64(40000)).
			AddRow(int64(2), "PLN", "Listrik", int64(10000)))

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "PAJAK", list[0].Code)
	assert.Equal(t, "PLN", list[1].Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
