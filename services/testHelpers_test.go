package services

import (
	"testing"

	"github.com/ChurchPortal/initializers"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/doug-martin/goqu/v9"
)

func setupTestDB(t *testing.T) sqlmock.Sqlmock {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}
	db.SetMaxOpenConns(1)

	oldDB := initializers.DB
	initializers.DB = goqu.New("postgres", db)
	t.Cleanup(func() {
		db.Close()
		initializers.DB = oldDB
	})

	return mock
}

func countRows(n int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}
