// Package sqlite provides a SQLite implementation of run-record storage
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/chisyliu/trackingAlg-dbscan/internal/core/run"
	"github.com/chisyliu/trackingAlg-dbscan/pkg/serialization"
)

// RunStore implements run.Store for SQLite
type RunStore struct {
	db         *sql.DB
	serializer *serialization.Serializer
	tableName  string
}

// NewRunStore creates a new SQLite run store
func NewRunStore(db *sql.DB, serializer *serialization.Serializer) *RunStore {
	if serializer == nil {
		serializer = serialization.DefaultSerializer()
	}
	return &RunStore{
		db:         db,
		serializer: serializer,
		tableName:  "runs",
	}
}

// Open opens (or creates) a SQLite database at path and returns a ready store
func Open(ctx context.Context, path string) (*RunStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	store := NewRunStore(db, nil)
	if err := store.CreateTables(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// WithTableName allows overriding the default table name.
// Only alphanumeric and underscore are permitted to prevent SQL injection
// via identifiers.
func (s *RunStore) WithTableName(name string) *RunStore {
	if isSafeIdent(name) {
		s.tableName = name
	}
	return s
}

func isSafeIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			continue
		}
		return false
	}
	return true
}

// Save stores a run record
func (s *RunStore) Save(ctx context.Context, record *run.Record) error {
	if record == nil {
		return run.ErrInvalidRunID
	}
	if err := record.Validate(); err != nil {
		return fmt.Errorf("run record validation failed: %w", err)
	}

	metadata, err := s.serializer.Serialize(record.Metadata)
	if err != nil {
		return fmt.Errorf("failed to serialize run metadata: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT OR REPLACE INTO %s (id, dataset_id, eps, min_pts, points, clusters, noise, metadata, timestamp, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.tableName)

	_, err = s.db.ExecContext(ctx, query,
		record.ID, record.DatasetID, record.Eps, record.MinPts,
		record.Points, record.Clusters, record.Noise,
		metadata, record.Timestamp.Unix(), record.Version)
	if err != nil {
		return fmt.Errorf("failed to save run record: %w", err)
	}
	return nil
}

// Load retrieves a run record by ID
func (s *RunStore) Load(ctx context.Context, id string) (*run.Record, error) {
	if id == "" {
		return nil, run.ErrInvalidRunID
	}

	query := fmt.Sprintf(`
		SELECT id, dataset_id, eps, min_pts, points, clusters, noise, metadata, timestamp, version
		FROM %s
		WHERE id = ?
	`, s.tableName)

	record, err := s.scanRecord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, run.ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to load run record: %w", err)
	}
	return record, nil
}

// List retrieves run records based on filter criteria
func (s *RunStore) List(ctx context.Context, filter run.Filter) ([]*run.Record, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("filter validation failed: %w", err)
	}

	query, args := s.buildListQuery(filter)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list run records: %w", err)
	}
	defer rows.Close()

	var records []*run.Record
	for rows.Next() {
		record, err := s.scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run record row: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Delete removes a run record by ID
func (s *RunStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return run.ErrInvalidRunID
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", s.tableName)
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete run record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return run.ErrRunNotFound
	}
	return nil
}

// CreateTables creates the necessary database tables
func (s *RunStore) CreateTables(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			dataset_id TEXT NOT NULL,
			eps REAL NOT NULL,
			min_pts INTEGER NOT NULL,
			points INTEGER NOT NULL,
			clusters INTEGER NOT NULL,
			noise INTEGER NOT NULL,
			metadata BLOB,
			timestamp INTEGER NOT NULL,
			version TEXT NOT NULL DEFAULT '1'
		);

		CREATE INDEX IF NOT EXISTS idx_%s_dataset_id ON %s (dataset_id);
		CREATE INDEX IF NOT EXISTS idx_%s_timestamp ON %s (timestamp);
	`, s.tableName, s.tableName, s.tableName, s.tableName, s.tableName)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *RunStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func (s *RunStore) scanRecord(row scanner) (*run.Record, error) {
	var record run.Record
	var metadata []byte
	var timestamp int64

	err := row.Scan(
		&record.ID, &record.DatasetID, &record.Eps, &record.MinPts,
		&record.Points, &record.Clusters, &record.Noise,
		&metadata, &timestamp, &record.Version,
	)
	if err != nil {
		return nil, err
	}

	record.Timestamp = time.Unix(timestamp, 0)
	if len(metadata) > 0 {
		if err := s.serializer.Deserialize(metadata, &record.Metadata); err != nil {
			return nil, fmt.Errorf("failed to deserialize run metadata: %w", err)
		}
	}
	return &record, nil
}

// buildListQuery constructs the SQL query for listing run records
func (s *RunStore) buildListQuery(filter run.Filter) (string, []interface{}) {
	query := fmt.Sprintf("SELECT id, dataset_id, eps, min_pts, points, clusters, noise, metadata, timestamp, version FROM %s WHERE 1=1", s.tableName)
	args := make([]interface{}, 0)

	if filter.DatasetID != "" {
		query += " AND dataset_id = ?"
		args = append(args, filter.DatasetID)
	}
	if filter.Since != nil {
		query += " AND timestamp > ?"
		args = append(args, filter.Since.Unix())
	}
	if filter.Before != nil {
		query += " AND timestamp < ?"
		args = append(args, filter.Before.Unix())
	}

	query += " ORDER BY timestamp DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	return query, args
}
