// Package database provides the read-only SQLite adapter backing the
// analysis pipeline.
package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/cubeworks/cubeinsight/internal/ai"
)

// SQLiteStore executes queries against the project dataset. The
// connection is opened read-only, so even a query that slipped past the
// safety gate cannot mutate the file.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens the dataset at path. It fails fast when the file is
// missing or is not a usable dataset.
func Open(path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	// A single connection keeps SQLite happy and the workload is
	// serialized upstream anyway.
	db.SetMaxOpenConns(1)

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM evms").Scan(&count); err != nil {
		db.Close()
		return nil, fmt.Errorf("dataset %s has no evms table: %w", path, err)
	}
	log.Info().Str("path", path).Int("rows", count).Msg("dataset opened")
	return &SQLiteStore{db: db}, nil
}

// Execute runs one query and returns the result with any error
// in-band. Callers never receive a Go error: a failed query is an
// answerable outcome, not a failure of the store.
func (s *SQLiteStore) Execute(ctx context.Context, query string) ai.QueryResult {
	empty := ai.QueryResult{Columns: []string{}, Rows: [][]any{}}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		empty.Err = "SQL 실행 오류: " + err.Error()
		return empty
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		empty.Err = "SQL 실행 오류: " + err.Error()
		return empty
	}

	result := ai.QueryResult{Columns: cols, Rows: [][]any{}}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			result.Err = "SQL 실행 오류: " + err.Error()
			return result
		}
		for i, v := range values {
			// TEXT columns scan as []byte through the generic path.
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		result.Err = "SQL 실행 오류: " + err.Error()
	}
	return result
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
