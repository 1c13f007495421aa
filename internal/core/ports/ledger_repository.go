package ports

import (
	"context"
	"time"

	"github.com/ecoscan/ewaste-api/internal/core/domain"
)

// RecordInput carries one classification event into the ledger.
type RecordInput struct {
	UserID         int64
	ImagePath      string
	PredictedClass string
	Confidence     float64
}

// LedgerRepository persists and aggregates the append-only classification
// ledger.
type LedgerRepository interface {
	// Insert appends one immutable row and returns its id. Returns
	// domain.ErrUserNotFound when the owning user does not exist.
	Insert(ctx context.Context, in RecordInput) (int64, error)

	// History returns up to limit records for the user, most recent first.
	History(ctx context.Context, userID int64, limit int) ([]domain.ClassificationRecord, error)

	// Stats aggregates the user's ledger. A user with no records yields the
	// zero Stats value, not an error.
	Stats(ctx context.Context, userID int64) (domain.Stats, error)

	// Count returns the user's total number of records.
	Count(ctx context.Context, userID int64) (int64, error)

	// CountSince returns the number of records at or after the given instant.
	CountSince(ctx context.Context, userID int64, since time.Time) (int64, error)
}
