package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ecoscan/ewaste-api/internal/core/domain"
	"github.com/ecoscan/ewaste-api/internal/core/ports"
)

type stubReportService struct {
	history   *ports.HistoryResult
	dashboard *ports.DashboardResult
	err       error
}

func (s *stubReportService) History(_ context.Context, _ int64) (*ports.HistoryResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.history, nil
}

func (s *stubReportService) Dashboard(_ context.Context, _ int64) (*ports.DashboardResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.dashboard, nil
}

func reportContext(authenticated bool) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if authenticated {
		c.Set("user_id", int64(7))
	}
	return c, rec
}

func TestReportHandler_History(t *testing.T) {
	ts := time.Date(2026, time.February, 1, 10, 0, 0, 0, time.UTC)
	h := NewReportHandler(&stubReportService{
		history: &ports.HistoryResult{
			Records: []domain.ClassificationRecord{
				{ID: 2, UserID: 7, PredictedClass: "laptop", Confidence: 92.37, Timestamp: ts},
			},
			Stats: domain.Stats{
				TotalCount:          1,
				UniqueCategoryCount: 1,
				AverageConfidence:   92.37,
				ModalCategory:       "laptop",
			},
		},
	})

	c, rec := reportContext(true)
	if err := h.History(c); err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp historyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.History) != 1 || resp.History[0].PredictedClass != "laptop" {
		t.Fatalf("unexpected history: %+v", resp.History)
	}
	if resp.Stats.TotalClassifications != 1 || resp.Stats.MostCommon != "laptop" {
		t.Fatalf("unexpected stats: %+v", resp.Stats)
	}
}

func TestReportHandler_History_OmitsEmptyModal(t *testing.T) {
	h := NewReportHandler(&stubReportService{history: &ports.HistoryResult{}})

	c, rec := reportContext(true)
	if err := h.History(c); err != nil {
		t.Fatalf("history failed: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	var stats map[string]json.RawMessage
	if err := json.Unmarshal(raw["stats"], &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if _, present := stats["most_common"]; present {
		t.Fatal("most_common must be omitted when no records exist")
	}
}

func TestReportHandler_Dashboard(t *testing.T) {
	h := NewReportHandler(&stubReportService{
		dashboard: &ports.DashboardResult{Total: 12, ThisWeek: 4},
	})

	c, rec := reportContext(true)
	if err := h.Dashboard(c); err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}

	var resp dashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 12 || resp.ThisWeek != 4 {
		t.Fatalf("unexpected dashboard: %+v", resp)
	}
}

func TestReportHandler_Unauthenticated(t *testing.T) {
	h := NewReportHandler(&stubReportService{})

	for name, call := range map[string]func(echo.Context) error{
		"history":   h.History,
		"dashboard": h.Dashboard,
	} {
		c, _ := reportContext(false)
		err := call(c)
		var httpErr *echo.HTTPError
		if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %v", name, err)
		}
	}
}
