// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aanand-mishra/number-classifier/internal/storage"
	"github.com/aanand-mishra/number-classifier/internal/types"

	// Registers the "sqlite3" driver.
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at path, creating its parent directory
// and the classifications table if needed.
func New(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite.New: create dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// Schema:
	//   properties    — JSON array, e.g. ["armstrong","odd"]
	//   fact_fallback — 1 when fun_fact is fallback text
	//   created_at    — unix nanoseconds, UTC
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS classifications (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			number        INTEGER NOT NULL,
			is_prime      INTEGER NOT NULL,
			is_perfect    INTEGER NOT NULL,
			properties    TEXT    NOT NULL,
			digit_sum     INTEGER NOT NULL,
			fun_fact      TEXT    NOT NULL,
			fact_fallback INTEGER NOT NULL,
			created_at    INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close releases the underlying connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// SaveClassification inserts one history row.
func (s *SQLite) SaveClassification(result types.ClassificationResult, factFallback bool) (int64, error) {
	props, err := json.Marshal(result.Properties)
	if err != nil {
		return 0, fmt.Errorf("SaveClassification: marshal properties: %w", err)
	}

	stmt, err := s.Db.Prepare(`
		INSERT INTO classifications
			(number, is_prime, is_perfect, properties, digit_sum, fun_fact, fact_fallback, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("SaveClassification: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.Exec(
		result.Number,
		result.IsPrime,
		result.IsPerfect,
		string(props),
		result.DigitSum,
		result.FunFact,
		factFallback,
		time.Now().UTC().UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("SaveClassification: exec: %w", err)
	}

	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("SaveClassification: last insert id: %w", err)
	}

	return lastID, nil
}

// GetClassificationByID fetches one history row by primary key.
func (s *SQLite) GetClassificationByID(id int64) (types.ClassificationRecord, error) {
	stmt, err := s.Db.Prepare(selectColumns + " WHERE id = ? LIMIT 1")
	if err != nil {
		return types.ClassificationRecord{}, fmt.Errorf("GetClassificationByID: prepare: %w", err)
	}
	defer stmt.Close()

	record, err := scanRecord(stmt.QueryRow(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.ClassificationRecord{}, fmt.Errorf("%w: id %d", storage.ErrNotFound, id)
		}
		return types.ClassificationRecord{}, fmt.Errorf("GetClassificationByID: scan: %w", err)
	}

	return record, nil
}

// GetRecentClassifications returns the newest limit rows.
func (s *SQLite) GetRecentClassifications(limit int) ([]types.ClassificationRecord, error) {
	stmt, err := s.Db.Prepare(selectColumns + " ORDER BY id DESC LIMIT ?")
	if err != nil {
		return nil, fmt.Errorf("GetRecentClassifications: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query(limit)
	if err != nil {
		return nil, fmt.Errorf("GetRecentClassifications: query: %w", err)
	}
	defer rows.Close()

	records := make([]types.ClassificationRecord, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("GetRecentClassifications: scan row: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetRecentClassifications: rows iteration: %w", err)
	}

	return records, nil
}

const selectColumns = `
	SELECT id, number, is_prime, is_perfect, properties, digit_sum, fun_fact, fact_fallback, created_at
	FROM classifications`

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (types.ClassificationRecord, error) {
	var (
		record    types.ClassificationRecord
		props     string
		createdAt int64
	)

	if err := row.Scan(
		&record.ID,
		&record.Number,
		&record.IsPrime,
		&record.IsPerfect,
		&props,
		&record.DigitSum,
		&record.FunFact,
		&record.FactFallback,
		&createdAt,
	); err != nil {
		return types.ClassificationRecord{}, err
	}

	if err := json.Unmarshal([]byte(props), &record.Properties); err != nil {
		return types.ClassificationRecord{}, fmt.Errorf("decode properties: %w", err)
	}
	record.CreatedAt = time.Unix(0, createdAt).UTC()

	return record, nil
}
