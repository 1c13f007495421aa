package ports

import (
	"context"

	"github.com/ecoscan/ewaste-api/internal/core/domain"
)

// HistoryResult bundles the bounded record list with its aggregates.
type HistoryResult struct {
	Records []domain.ClassificationRecord
	Stats   domain.Stats
}

// DashboardResult is the dashboard summary: lifetime total and the count in
// the trailing seven days.
type DashboardResult struct {
	Total    int64
	ThisWeek int64
}

type ReportService interface {
	History(ctx context.Context, userID int64) (*HistoryResult, error)
	Dashboard(ctx context.Context, userID int64) (*DashboardResult, error)
}
