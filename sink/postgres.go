package sink

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/darrenvechain/flight-telemetry/telemetry"
)

const createSamplesTable = `
	CREATE TABLE IF NOT EXISTS telemetry_samples (
		id SERIAL PRIMARY KEY,
		channel VARCHAR NOT NULL,
		seq NUMERIC NOT NULL,
		taken_at_ns BIGINT NOT NULL,
		value DOUBLE PRECISION NOT NULL
	);
`

// Postgres writes samples to the telemetry_samples table.
// The caller registers the driver, e.g. by importing github.com/lib/pq.
type Postgres struct {
	db *sql.DB
}

// NewPostgres creates the samples table if it does not exist yet.
func NewPostgres(ctx context.Context, db *sql.DB) (*Postgres, error) {
	if _, err := db.ExecContext(ctx, createSamplesTable); err != nil {
		return nil, fmt.Errorf("create telemetry_samples: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Write(ctx context.Context, sample telemetry.Sample) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO telemetry_samples (channel, seq, taken_at_ns, value)
		VALUES ($1, $2, $3, $4);`,
		sample.Channel,
		sample.Seq,
		int64(sample.Time),
		sample.Value,
	)
	if err != nil {
		return fmt.Errorf("insert sample %s: %w", sample, err)
	}
	return nil
}

// Count returns the number of stored samples for a channel.
func (p *Postgres) Count(ctx context.Context, channel string) (int, error) {
	var n int
	row := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM telemetry_samples WHERE channel = $1;`, channel)
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("count samples: %w", err)
	}
	return n, nil
}
