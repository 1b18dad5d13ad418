// Package storage opens the client's local SQLite database and brings its
// schema up to date. The database is the durable home of client state that
// must survive restarts, most importantly the session token slot.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophsocial/internal/client/storage/migrations"
	"github.com/dmitrijs2005/gophsocial/internal/logging"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// gooseLogger routes goose output through our logger at debug level.
type gooseLogger struct {
	log logging.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.log.Debug(context.Background(), fmt.Sprintf(format, v...))
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.log.Error(context.Background(), fmt.Sprintf(format, v...))
	os.Exit(1)
}

func RunMigrations(ctx context.Context, db *sql.DB, log logging.Logger) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(gooseLogger{log: log})

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Open opens (creating if needed) the database at dsn and applies pending
// migrations.
func Open(ctx context.Context, dsn string, log logging.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}

	if err := RunMigrations(ctx, db, log); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
