package probe

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // Use pgx via database/sql
	"github.com/jmoiron/sqlx"
)

// PostgresProbe checks a PostgreSQL dependency with a ping.
type PostgresProbe struct {
	name string
	db   *sqlx.DB
}

// NewPostgresProbe creates a Postgres prober. sqlx.Open does not connect,
// so construction succeeds even while the database is down.
func NewPostgresProbe(name, dsn string) (*PostgresProbe, error) {
	db, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Probes are sequential per dependency; keep the pool minimal.
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	return &PostgresProbe{name: name, db: db}, nil
}

func (p *PostgresProbe) Name() string { return p.name }

func (p *PostgresProbe) Probe(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return classify(p.name, err)
	}
	return nil
}

// Close closes the database connection.
func (p *PostgresProbe) Close() error {
	return p.db.Close()
}
