package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecoscan/ewaste-api/internal/core/domain"
	"github.com/ecoscan/ewaste-api/internal/core/ports"
)

// ReportHandler serves the per-user history and dashboard views.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

type statsResponse struct {
	TotalClassifications int64   `json:"total_classifications"`
	UniqueCategories     int64   `json:"unique_categories"`
	AverageConfidence    float64 `json:"average_confidence"`
	MostCommon           string  `json:"most_common,omitempty"`
}

type historyResponse struct {
	History []domain.ClassificationRecord `json:"history"`
	Stats   statsResponse                 `json:"stats"`
}

type dashboardResponse struct {
	Total    int64 `json:"total"`
	ThisWeek int64 `json:"this_week"`
}

// History returns the caller's 50 most recent classifications plus
// aggregates.
//
// @Summary      Classification history
// @Tags         reports
// @Produce      json
// @Security     SessionAuth
// @Success      200  {object}  historyResponse
// @Failure      401  {object}  map[string]string
// @Router       /history [get]
func (h *ReportHandler) History(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.History(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, historyResponse{
		History: result.Records,
		Stats: statsResponse{
			TotalClassifications: result.Stats.TotalCount,
			UniqueCategories:     result.Stats.UniqueCategoryCount,
			AverageConfidence:    result.Stats.AverageConfidence,
			MostCommon:           result.Stats.ModalCategory,
		},
	})
}

// Dashboard returns the caller's lifetime total and trailing-seven-day count.
//
// @Summary      Dashboard summary
// @Tags         reports
// @Produce      json
// @Security     SessionAuth
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  map[string]string
// @Router       /dashboard [get]
func (h *ReportHandler) Dashboard(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.Dashboard(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		Total:    result.Total,
		ThisWeek: result.ThisWeek,
	})
}
