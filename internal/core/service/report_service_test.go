package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecoscan/ewaste-api/internal/core/domain"
)

func TestReportService_History(t *testing.T) {
	records := []domain.ClassificationRecord{
		{ID: 2, UserID: 1, PredictedClass: "laptop", Confidence: 92.37},
		{ID: 1, UserID: 1, PredictedClass: "phone", Confidence: 55},
	}
	ledger := &stubLedger{
		records: records,
		stats: domain.Stats{
			TotalCount:          2,
			UniqueCategoryCount: 2,
			AverageConfidence:   73.685,
			ModalCategory:       "laptop",
		},
	}
	svc := NewReportService(ledger, zerolog.Nop())

	result, err := svc.History(context.Background(), 1)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(result.Records))
	}
	if result.Records[0].ID != 2 {
		t.Fatalf("expected most recent record first, got id %d", result.Records[0].ID)
	}
	if result.Stats.ModalCategory != "laptop" {
		t.Fatalf("unexpected modal category: %q", result.Stats.ModalCategory)
	}
}

func TestReportService_History_CapsAtFifty(t *testing.T) {
	records := make([]domain.ClassificationRecord, 80)
	for i := range records {
		records[i] = domain.ClassificationRecord{ID: int64(80 - i), UserID: 1}
	}
	ledger := &stubLedger{records: records}
	svc := NewReportService(ledger, zerolog.Nop())

	result, err := svc.History(context.Background(), 1)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(result.Records) != historyLimit {
		t.Fatalf("expected %d records, got %d", historyLimit, len(result.Records))
	}
}

func TestReportService_History_NoData(t *testing.T) {
	svc := NewReportService(&stubLedger{}, zerolog.Nop())

	result, err := svc.History(context.Background(), 1)
	if err != nil {
		t.Fatalf("history with no data should not fail: %v", err)
	}
	if len(result.Records) != 0 {
		t.Fatalf("expected no records, got %d", len(result.Records))
	}
	if result.Stats.TotalCount != 0 || result.Stats.UniqueCategoryCount != 0 {
		t.Fatalf("expected zero counts, got %+v", result.Stats)
	}
	if result.Stats.AverageConfidence != 0 {
		t.Fatalf("expected zero average confidence, got %v", result.Stats.AverageConfidence)
	}
	if result.Stats.ModalCategory != "" {
		t.Fatalf("expected empty modal category, got %q", result.Stats.ModalCategory)
	}
}

func TestReportService_Dashboard_Window(t *testing.T) {
	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	ledger := &stubLedger{total: 9, recent: 3}
	svc := &reportService{
		ledger: ledger,
		now:    func() time.Time { return now },
		log:    zerolog.Nop(),
	}

	result, err := svc.Dashboard(context.Background(), 1)
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}
	if result.Total != 9 || result.ThisWeek != 3 {
		t.Fatalf("unexpected dashboard result: %+v", result)
	}

	want := now.Add(-7 * 24 * time.Hour)
	if !ledger.sinceArg.Equal(want) {
		t.Fatalf("window boundary: got %v, want %v", ledger.sinceArg, want)
	}
}
