package movestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

const schema = `CREATE TABLE IF NOT EXISTS move_documents (
    id         TEXT PRIMARY KEY,
    body       TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
)`

// PostgresStore keeps documents in the move_documents table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// NewPostgresStoreFromDB wraps an existing handle.
func NewPostgresStoreFromDB(db *sql.DB) *PostgresStore { return &PostgresStore{db: db} }

func (r *PostgresStore) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// EnsureSchema creates the documents table when it is missing.
func (r *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (r *PostgresStore) Create(ctx context.Context, text string) (*Document, error) {
	doc := &Document{ID: newID(), Text: text, UpdatedAt: now()}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO move_documents (id, body, updated_at) VALUES ($1, $2, $3)`,
		doc.ID, doc.Text, doc.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return doc, nil
}

func (r *PostgresStore) Load(ctx context.Context, id string) (*Document, error) {
	var doc Document
	err := r.db.QueryRowContext(ctx,
		`SELECT id, body, updated_at FROM move_documents WHERE id = $1`,
		strings.TrimSpace(id)).Scan(&doc.ID, &doc.Text, &doc.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	return &doc, nil
}

// Save overwrites an existing document.
func (r *PostgresStore) Save(ctx context.Context, id, text string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE move_documents SET body = $2, updated_at = $3 WHERE id = $1`,
		strings.TrimSpace(id), text, now())
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM move_documents WHERE id = $1`, strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
