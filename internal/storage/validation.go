// Package storage provides the data persistence layer for the spendy application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spendy-app/spendy/internal/model"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateSnapshot validates a snapshot before persisting it.
func validateSnapshot(snapshot *model.Snapshot) error {
	if snapshot.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidSnapshot)
	}
	if snapshot.CreatedAt.IsZero() {
		return fmt.Errorf("%w: missing creation time", ErrInvalidSnapshot)
	}
	return nil
}
