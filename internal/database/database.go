package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"droneapi/internal/config"
)

var sqlOpen = sql.Open

// ResolveDSN validates the configured DATABASE_URL and applies DATABASE_NAME
// as the database path when set, so deployments can point one URL at
// different logical databases.
func ResolveDSN(c config.DatabaseConfig) (string, error) {
	if c.URL == "" {
		return "", fmt.Errorf("invalid database config: DATABASE_URL is required")
	}

	u, err := url.Parse(c.URL)
	if err != nil {
		return "", fmt.Errorf("invalid database config: parse DATABASE_URL: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return "", fmt.Errorf("invalid database config: unsupported scheme %q", u.Scheme)
	}

	if c.Name != "" {
		u.Path = "/" + c.Name
	}

	return u.String(), nil
}

// NewPostgres opens a database/sql connection using the pgx stdlib driver
// wrapped with otelsql, applies pooling settings, and verifies connectivity.
func NewPostgres(c config.DatabaseConfig) (*sql.DB, error) {
	dsn, err := ResolveDSN(c)
	if err != nil {
		return nil, err
	}

	driverName, err := otelsql.Register("pgx",
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithSQLCommenter(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register otelsql: %w", err)
	}

	db, err := sqlOpen(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}

	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetimeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetimeSec) * time.Second)
	}

	// Verify connectivity with a short timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return db, nil
}
