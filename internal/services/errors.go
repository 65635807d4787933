package services

import (
	"errors"
	"fmt"

	"nightfly_backend/internal/repositories"
)

// Errors shared by every service.
var (
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrUpstream      = errors.New("upstream service error")
)

// storageError keeps configuration failures distinguishable from plain database errors.
func storageError(err error, op string) error {
	if errors.Is(err, repositories.ErrStoreNotConfigured) {
		return fmt.Errorf("%w: %s: %v", ErrConfiguration, op, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
