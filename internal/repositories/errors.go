package repositories

import (
	"errors"
	"fmt"

	"nightfly_backend/internal/database"
)

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrDatabaseError is returned for unexpected storage errors.
	// It wraps the driver error text for logging.
	ErrDatabaseError = errors.New("database error")

	// ErrDuplicateKey is returned when an insert collides with an existing natural key.
	ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")

	// ErrStoreNotConfigured is returned when the store connection settings were missing.
	ErrStoreNotConfigured = errors.New("storage is not configured")
)

// translateStoreError maps document-store errors onto repository errors.
func translateStoreError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, database.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, database.ErrDuplicateKey):
		return ErrDuplicateKey
	case errors.Is(err, database.ErrNotConfigured):
		return fmt.Errorf("%w: %s", ErrStoreNotConfigured, op)
	default:
		return fmt.Errorf("%w: %s: %v", ErrDatabaseError, op, err)
	}
}
