package database

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq" // PostgreSQL driver, also used for error codes and identifier quoting
)

const pqUniqueViolation = "23505"

// PostgresStore keeps each collection in its own table with a JSONB document column.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects, pings and creates the collection tables if missing.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.applySchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewPostgresStore wraps an existing connection pool. The schema must already exist.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) applySchema(ctx context.Context) error {
	for _, c := range AllCollections {
		table := pq.QuoteIdentifier(c.Name)
		stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			seq        BIGSERIAL,
			key        TEXT PRIMARY KEY,
			doc        JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, table)
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating table %s: %w", c.Name, err)
		}
	}
	// Secondary lookups used by the routes.
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS orders_mobile_idx ON "orders" ((doc->>'mobile'))`,
		`CREATE INDEX IF NOT EXISTS managers_phone_idx ON "managers" ((doc->>'phone'))`,
	}
	for _, stmt := range indexes {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) Insert(ctx context.Context, c Collection, key string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding %s document: %w", c.Name, err)
	}
	query := fmt.Sprintf(`INSERT INTO %s (key, doc) VALUES ($1, $2)`, pq.QuoteIdentifier(c.Name))
	if _, err := s.db.ExecContext(ctx, query, key, raw); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return ErrDuplicateKey
		}
		return fmt.Errorf("inserting into %s: %w", c.Name, err)
	}
	return nil
}

func (s *PostgresStore) Upsert(ctx context.Context, c Collection, key string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding %s document: %w", c.Name, err)
	}
	query := fmt.Sprintf(`INSERT INTO %s (key, doc) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc`, pq.QuoteIdentifier(c.Name))
	if _, err := s.db.ExecContext(ctx, query, key, raw); err != nil {
		return fmt.Errorf("upserting into %s: %w", c.Name, err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, c Collection, key string, out any) error {
	var raw []byte
	query := fmt.Sprintf(`SELECT doc FROM %s WHERE key = $1`, pq.QuoteIdentifier(c.Name))
	err := s.db.QueryRowContext(ctx, query, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("getting %s/%s: %w", c.Name, key, err)
	}
	return json.Unmarshal(raw, out)
}

func (s *PostgresStore) Find(ctx context.Context, c Collection, filter Filter, out any) error {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`SELECT doc FROM %s`, pq.QuoteIdentifier(c.Name)))

	var conditions []string
	var args []interface{}
	argCounter := 1
	for field, value := range filter {
		conditions = append(conditions, fmt.Sprintf("doc->>($%d::text) = $%d", argCounter, argCounter+1))
		args = append(args, field, value)
		argCounter += 2
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY seq DESC")

	rows, err := s.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return fmt.Errorf("querying %s: %w", c.Name, err)
	}
	defer rows.Close()

	var buf bytes.Buffer
	buf.WriteByte('[')
	first := true
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return fmt.Errorf("scanning %s: %w", c.Name, err)
		}
		if !first {
			buf.WriteByte(',')
		}
		buf.Write(raw)
		first = false
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating %s: %w", c.Name, err)
	}
	buf.WriteByte(']')
	return json.Unmarshal(buf.Bytes(), out)
}

func (s *PostgresStore) Merge(ctx context.Context, c Collection, key string, fields map[string]any) error {
	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encoding %s patch: %w", c.Name, err)
	}
	query := fmt.Sprintf(`UPDATE %s SET doc = doc || $2::jsonb WHERE key = $1`, pq.QuoteIdentifier(c.Name))
	result, err := s.db.ExecContext(ctx, query, key, patch)
	if err != nil {
		return fmt.Errorf("updating %s/%s: %w", c.Name, key, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected for %s/%s: %w", c.Name, key, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, c Collection, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, pq.QuoteIdentifier(c.Name))
	result, err := s.db.ExecContext(ctx, query, key)
	if err != nil {
		return fmt.Errorf("deleting %s/%s: %w", c.Name, key, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected for %s/%s: %w", c.Name, key, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close(context.Context) error {
	return s.db.Close()
}
