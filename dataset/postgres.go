package dataset

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// PostgresMirror copies appended records into a PostgreSQL table.
type PostgresMirror struct {
	conn *pgx.Conn
}

// NewPostgresMirror connects to the database and makes sure the table exists.
func NewPostgresMirror(ctx context.Context, connString string) (*PostgresMirror, error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := initSchema(ctx, conn); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}
	return &PostgresMirror{conn: conn}, nil
}

func initSchema(ctx context.Context, conn *pgx.Conn) error {
	_, err := conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS dataset_records (
			id BIGSERIAL PRIMARY KEY,
			emotion INT NOT NULL,
			pixels BYTEA NOT NULL CHECK (octet_length(pixels) = 2304),
			usage TEXT NOT NULL CHECK (usage IN ('training', 'testing')),
			created_at TIMESTAMPTZ DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS dataset_records_emotion_idx ON dataset_records (emotion, usage);
	`)
	return err
}

// Insert writes the batch inside one transaction, so either every record lands or none does.
func (m *PostgresMirror) Insert(ctx context.Context, records []Record) error {
	tx, err := m.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, rec := range records {
		_, err := tx.Exec(ctx,
			"INSERT INTO dataset_records (emotion, pixels, usage) VALUES ($1, $2, $3)",
			int(rec.Emotion), rec.Pixels, string(rec.Usage))
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Close terminates the database connection.
func (m *PostgresMirror) Close(ctx context.Context) {
	m.conn.Close(ctx)
}
