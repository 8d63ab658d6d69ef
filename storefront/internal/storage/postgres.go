package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

func (s *PostgresStore) Load(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := s.DB.QueryRowContext(ctx, "SELECT payload FROM client_state WHERE key = $1", key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *PostgresStore) Save(ctx context.Context, key string, payload []byte) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO client_state (key, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()`,
		key, payload)
	return err
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	_, err := s.DB.ExecContext(ctx, "DELETE FROM client_state WHERE key = $1", key)
	return err
}

func (s *PostgresStore) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS client_state (
			key TEXT PRIMARY KEY,
			payload BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		"CREATE INDEX IF NOT EXISTS client_state_updated_at_idx ON client_state (updated_at)",
	}
	for _, stmt := range statements {
		if _, err := s.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}
