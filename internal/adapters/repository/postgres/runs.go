// Package postgres provides a PostgreSQL implementation of run-record storage
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chisyliu/trackingAlg-dbscan/internal/core/run"
	"github.com/chisyliu/trackingAlg-dbscan/pkg/serialization"
)

// RunStore implements run.Store for PostgreSQL
type RunStore struct {
	pool       *pgxpool.Pool
	serializer *serialization.Serializer
	tableName  string
}

// NewRunStore creates a new PostgreSQL run store
func NewRunStore(pool *pgxpool.Pool, serializer *serialization.Serializer) *RunStore {
	if serializer == nil {
		serializer = serialization.DefaultSerializer()
	}
	return &RunStore{
		pool:       pool,
		serializer: serializer,
		tableName:  "runs",
	}
}

// Open connects to a PostgreSQL database and returns a ready store
func Open(ctx context.Context, dsn string) (*RunStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	store := NewRunStore(pool, nil)
	if err := store.CreateTables(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
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
		INSERT INTO %s (id, dataset_id, eps, min_pts, points, clusters, noise, metadata, timestamp, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			dataset_id = EXCLUDED.dataset_id,
			eps = EXCLUDED.eps,
			min_pts = EXCLUDED.min_pts,
			points = EXCLUDED.points,
			clusters = EXCLUDED.clusters,
			noise = EXCLUDED.noise,
			metadata = EXCLUDED.metadata,
			timestamp = EXCLUDED.timestamp,
			version = EXCLUDED.version
	`, s.tableName)

	_, err = s.pool.Exec(ctx, query,
		record.ID, record.DatasetID, record.Eps, record.MinPts,
		record.Points, record.Clusters, record.Noise,
		metadata, record.Timestamp, record.Version)
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
		WHERE id = $1
	`, s.tableName)

	record, err := s.scanRecord(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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
	rows, err := s.pool.Query(ctx, query, args...)
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

	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", s.tableName)
	result, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete run record: %w", err)
	}
	if result.RowsAffected() == 0 {
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
			eps DOUBLE PRECISION NOT NULL,
			min_pts INTEGER NOT NULL,
			points INTEGER NOT NULL,
			clusters INTEGER NOT NULL,
			noise INTEGER NOT NULL,
			metadata BYTEA,
			timestamp TIMESTAMPTZ NOT NULL,
			version TEXT NOT NULL DEFAULT '1'
		);

		CREATE INDEX IF NOT EXISTS idx_%s_dataset_id ON %s (dataset_id);
		CREATE INDEX IF NOT EXISTS idx_%s_timestamp ON %s (timestamp);
	`, s.tableName, s.tableName, s.tableName, s.tableName, s.tableName)

	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// Close releases the connection pool
func (s *RunStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func (s *RunStore) scanRecord(row pgx.Row) (*run.Record, error) {
	var record run.Record
	var metadata []byte
	var timestamp time.Time

	err := row.Scan(
		&record.ID, &record.DatasetID, &record.Eps, &record.MinPts,
		&record.Points, &record.Clusters, &record.Noise,
		&metadata, &timestamp, &record.Version,
	)
	if err != nil {
		return nil, err
	}

	record.Timestamp = timestamp
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
	arg := 0

	next := func() string {
		arg++
		return fmt.Sprintf("$%d", arg)
	}

	if filter.DatasetID != "" {
		query += " AND dataset_id = " + next()
		args = append(args, filter.DatasetID)
	}
	if filter.Since != nil {
		query += " AND timestamp > " + next()
		args = append(args, *filter.Since)
	}
	if filter.Before != nil {
		query += " AND timestamp < " + next()
		args = append(args, *filter.Before)
	}

	query += " ORDER BY timestamp DESC"

	if filter.Limit > 0 {
		query += " LIMIT " + next()
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET " + next()
		args = append(args, filter.Offset)
	}

	return query, args
}
