// Package migration applies the embedded goose migrations for the formora schema.
package migration

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

//go:embed sql/*.sql
var files embed.FS

const dir = "sql"

// gooseUp is a seam for testing goose.UpContext.
var gooseUp = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// EnsureMigrated brings the schema up to the latest embedded version.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *logrus.Entry, dbHost string) error {
	start := time.Now()
	l := log.WithFields(logrus.Fields{
		"component": "database",
		"db_host":   dbHost,
	})
	l.WithField("event", "db_migration_start").Info("applying migrations")

	goose.SetBaseFS(files)
	goose.SetLogger(gooseLogger{l})
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := gooseUp(ctx, db, dir); err != nil {
		l.WithFields(logrus.Fields{
			"event":       "db_migration_failed",
			"duration_ms": time.Since(start).Milliseconds(),
		}).WithError(err).Error("migration failed")
		return fmt.Errorf("run migrations: %w", err)
	}

	l.WithFields(logrus.Fields{
		"event":       "db_migration_success",
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("schema up to date")
	return nil
}

// gooseLogger routes goose output through logrus.
type gooseLogger struct {
	l *logrus.Entry
}

func (g gooseLogger) Fatalf(format string, v ...any) { g.l.Fatalf(format, v...) }
func (g gooseLogger) Printf(format string, v ...any) { g.l.Infof(format, v...) }
