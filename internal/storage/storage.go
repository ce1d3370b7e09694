// Package storage defines the Storage interface for the classification
// history log.
//
// Handlers depend only on this interface, never on SQLite directly, so a
// fake can stand in for the database in handler tests.
package storage

import (
	"errors"

	"github.com/aanand-mishra/number-classifier/internal/types"
)

// ErrNotFound is returned when a history record does not exist.
var ErrNotFound = errors.New("classification not found")

// Storage is the history log contract.
type Storage interface {
	// SaveClassification appends a record and returns its generated ID.
	// factFallback marks records whose fun fact is fallback text.
	SaveClassification(result types.ClassificationResult, factFallback bool) (int64, error)

	// GetClassificationByID returns one record or an error wrapping
	// ErrNotFound.
	GetClassificationByID(id int64) (types.ClassificationRecord, error)

	// GetRecentClassifications returns up to limit records, newest first.
	// Returns an empty slice (not nil) when the log is empty.
	GetRecentClassifications(limit int) ([]types.ClassificationRecord, error)
}
