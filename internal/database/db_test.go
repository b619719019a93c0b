package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/property-backoffice/internal/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DBConfig{User: "app", Pass: "pw", Host: "db", Port: "3306", Name: "backoffice"})
	assert.Equal(t, "app:pw@tcp(db:3306)/backoffice?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true", dsn)

	dsn = DSN(config.DBConfig{User: "root", Host: "localhost", Port: "3307", Name: "x"})
	assert.Contains(t, dsn, "root@tcp(localhost:3307)/x?")
}

func TestMigrateCreatesEveryTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for _, table := range Tables() {
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS " + table + " (")).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}
	require.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, []string{"properties", "tenants", "contractors", "maintenance_requests", "users", "refresh_tokens"}, Tables())
}

func TestMigrateStopsOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS properties")).
		WillReturnError(errors.New("boom"))

	err = Migrate(context.Background(), db)
	assert.ErrorContains(t, err, "migrate properties")
	assert.NoError(t, mock.ExpectationsWereMet())
}
