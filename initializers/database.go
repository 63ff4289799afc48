package initializers

import (
	"context"
	"database/sql"
	_ "embed"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/lib/pq"
)

var DB *goqu.Database

//go:embed schema.sql
var schema string

func ConnectDB() {
	db, err := sql.Open("postgres", Config.DBURL)
	if err != nil {
		Log.Fatalw("failed to open database", "error", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err = db.Ping(); err != nil {
		Log.Fatalw("failed to reach database", "error", err)
	}

	DB = goqu.New("postgres", db)

	if Config.AutoMigrate {
		if _, err := DB.Exec(schema); err != nil {
			Log.Fatalw("failed to apply schema", "error", err)
		}
		Log.Info("database schema applied")
	}
}

// PingDB reports database reachability for health checks.
func PingDB(ctx context.Context) error {
	if DB == nil {
		return sql.ErrConnDone
	}
	var one int
	_, err := DB.ScanValContext(ctx, &one, "SELECT 1")
	return err
}
