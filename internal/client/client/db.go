package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/imagenstudio/internal/client/migrations"
	"github.com/dmitrijs2005/imagenstudio/internal/client/repositories/kv"
	"github.com/dmitrijs2005/imagenstudio/internal/common"
)

// MemoryDSN selects a process-local store that is gone on exit.
const MemoryDSN = "memory"

// Database is the opened local store. DB is nil for MemoryDSN.
type Database struct {
	DB *sql.DB
	KV kv.Repository
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	// stdout belongs to the REPL
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

func InitDatabase(ctx context.Context, dsn string) (*Database, error) {
	if dsn == MemoryDSN {
		return &Database{KV: kv.NewMemoryRepository()}, nil
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations failed: %w", err)
	}

	return &Database{DB: db, KV: kv.NewSQLiteRepository(db)}, nil
}

// Wipe removes the users, history and session keys together.
func (d *Database) Wipe(ctx context.Context) error {
	if d.DB == nil {
		return d.KV.Clear(ctx)
	}
	return kv.Purge(ctx, d.DB, common.UsersStorageKey, common.HistoryStorageKey, common.LoggedInStorageKey)
}

func (d *Database) Close() error {
	if d.DB == nil {
		return nil
	}
	return d.DB.Close()
}
