package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecoscan/ewaste-api/internal/core/ports"
)

// historyLimit caps the history view; the ledger itself is unbounded.
const historyLimit = 50

// weekWindow is the dashboard's rolling "this week" window.
const weekWindow = 7 * 24 * time.Hour

type reportService struct {
	ledger ports.LedgerRepository
	now    func() time.Time
	log    zerolog.Logger
}

// NewReportService returns a ReportService backed by the ledger repository.
func NewReportService(ledger ports.LedgerRepository, log zerolog.Logger) ports.ReportService {
	return &reportService{ledger: ledger, now: time.Now, log: log}
}

func (s *reportService) History(ctx context.Context, userID int64) (*ports.HistoryResult, error) {
	records, err := s.ledger.History(ctx, userID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}

	stats, err := s.ledger.Stats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("history stats: %w", err)
	}

	return &ports.HistoryResult{Records: records, Stats: stats}, nil
}

// Dashboard reports the lifetime total and the count within the trailing
// seven days, boundary inclusive.
func (s *reportService) Dashboard(ctx context.Context, userID int64) (*ports.DashboardResult, error) {
	total, err := s.ledger.Count(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("dashboard total: %w", err)
	}

	since := s.now().Add(-weekWindow)
	week, err := s.ledger.CountSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("dashboard week count: %w", err)
	}

	return &ports.DashboardResult{Total: total, ThisWeek: week}, nil
}
