// Package service defines the interfaces between the analysis core and its
// collaborators.
package service

import (
	"context"
	"io"
	"time"

	"github.com/spendy-app/spendy/internal/model"
)

// SnapshotStore defines the contract for the per-user snapshot namespace.
// The core is the only reader and writer of this schema.
type SnapshotStore interface {
	// ListSnapshots returns all snapshots for a user, newest first. An
	// unknown or empty userID yields an empty list, never an error.
	ListSnapshots(ctx context.Context, userID string) ([]model.Snapshot, error)
	// SaveSnapshot upserts by snapshot id within the user's namespace.
	// Silently a no-op when userID is empty.
	SaveSnapshot(ctx context.Context, userID string, snapshot model.Snapshot) error
	// DeleteSnapshot removes one snapshot; a no-op when the id is not
	// found or userID is empty.
	DeleteSnapshot(ctx context.Context, userID, id string) error
	Close() error
}

// ImageAnalysis is the result of classifying one uploaded image.
type ImageAnalysis struct {
	Transactions []model.RawRecord
	IsFinancial  bool
}

// ImageAnalyzer extracts expense rows from an image of a financial
// document. A non-financial image is reported through IsFinancial rather
// than an error.
type ImageAnalyzer interface {
	AnalyzeTransactionImage(ctx context.Context, image []byte, mimeType string) (ImageAnalysis, error)
}

// IconGenerator renders a displayable icon for a persona or category
// label. Purely cosmetic; implementations degrade to a placeholder rather
// than failing hard.
type IconGenerator interface {
	GenerateIcon(ctx context.Context, prompt, color string) (string, error)
}

// AuthResult carries the outcome of a directory operation plus the message
// shown to the user.
type AuthResult struct {
	User    *model.User
	Message string
	Success bool
}

// UserDirectory resolves nickname and secret pairs to user identifiers.
// The core never sees raw credentials beyond this boundary.
type UserDirectory interface {
	SignUp(ctx context.Context, nickname, secret string) (AuthResult, error)
	Login(ctx context.Context, nickname, secret string) (AuthResult, error)
}

// RowSource supplies pre-parsed expense rows from some external format.
// Sources filter out empty-item and non-positive-amount rows before the
// rows reach the core.
type RowSource interface {
	Parse(ctx context.Context, r io.Reader) ([]model.RawRecord, error)
}

// RetryOptions configures retry behavior for collaborator calls.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
