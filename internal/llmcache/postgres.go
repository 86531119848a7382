package llmcache

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is a Store backed by PostgreSQL, for sharing cached responses
// across runs and processes.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool and ensures the cache table
// exists.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{pool: pool}
	if err := store.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS llm_responses (
			fingerprint TEXT PRIMARY KEY,
			response    TEXT NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	)
	if err != nil {
		return fmt.Errorf("failed to create cache table: %w", err)
	}
	return nil
}

// Get returns the cached response for a fingerprint, if present
func (s *PostgresStore) Get(ctx context.Context, fingerprint string) (string, bool, error) {
	var response string
	err := s.pool.QueryRow(ctx,
		`SELECT response FROM llm_responses WHERE fingerprint = $1`,
		fingerprint,
	).Scan(&response)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get cached response: %w", err)
	}
	return response, true, nil
}

// Put stores a response under a fingerprint
func (s *PostgresStore) Put(ctx context.Context, fingerprint, response string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO llm_responses (fingerprint, response)
		 VALUES ($1, $2)
		 ON CONFLICT (fingerprint) DO UPDATE SET response = $2, created_at = NOW()`,
		fingerprint, response,
	)
	if err != nil {
		return fmt.Errorf("failed to store cached response: %w", err)
	}
	return nil
}

// Invalidate removes a fingerprint from the store
func (s *PostgresStore) Invalidate(ctx context.Context, fingerprint string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM llm_responses WHERE fingerprint = $1`,
		fingerprint,
	)
	if err != nil {
		return fmt.Errorf("failed to invalidate cached response: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
