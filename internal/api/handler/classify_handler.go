package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ecoscan/ewaste-api/internal/api/metrics"
	"github.com/ecoscan/ewaste-api/internal/core/domain"
	"github.com/ecoscan/ewaste-api/internal/core/ports"
)

// ClassifyHandler handles image upload and classification requests.
type ClassifyHandler struct {
	service  ports.ClassificationService
	maxBytes int64
}

func NewClassifyHandler(service ports.ClassificationService, maxBytes int64) *ClassifyHandler {
	return &ClassifyHandler{service: service, maxBytes: maxBytes}
}

// classifyResponse is the structured result contract: either success with a
// category and a two-decimal confidence, or success=false with an error.
type classifyResponse struct {
	Success    bool   `json:"success"`
	Class      string `json:"class,omitempty"`
	Confidence string `json:"confidence,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Form describes the classify entry point for clients that GET it.
func (h *ClassifyHandler) Form(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"message":   "POST a multipart image under field 'file' to classify it",
		"max_bytes": h.maxBytes,
	})
}

// Classify accepts a multipart image upload, classifies it, and records the
// result in the caller's ledger.
//
// @Summary      Classify an uploaded image
// @Tags         classify
// @Accept       multipart/form-data
// @Produce      json
// @Security     SessionAuth
// @Param        file  formData  file  true  "Image to classify (max 5 MB)"
// @Success      200   {object}  classifyResponse
// @Failure      400   {object}  classifyResponse
// @Failure      503   {object}  classifyResponse
// @Router       /classify [post]
func (h *ClassifyHandler) Classify(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "no file uploaded", "missing_file")
	}
	if fileHeader.Filename == "" || fileHeader.Size == 0 {
		return fail(c, http.StatusBadRequest, "no file selected", "empty_file")
	}
	if fileHeader.Size > h.maxBytes {
		return fail(c, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("file exceeds the %d byte upload limit", h.maxBytes), "too_large")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return fail(c, http.StatusBadRequest, "could not read upload", "unreadable")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, h.maxBytes+1))
	if err != nil {
		return fail(c, http.StatusBadRequest, "could not read upload", "unreadable")
	}
	if int64(len(data)) > h.maxBytes {
		return fail(c, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("file exceeds the %d byte upload limit", h.maxBytes), "too_large")
	}

	start := time.Now()
	result, err := h.service.Classify(c.Request().Context(), ports.ClassifyInput{
		UserID:   userID,
		Filename: fileHeader.Filename,
		Data:     data,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidImage):
			return fail(c, http.StatusBadRequest, err.Error(), "invalid_image")
		case errors.Is(err, domain.ErrModelUnavailable):
			return fail(c, http.StatusServiceUnavailable, err.Error(), "model_unavailable")
		default:
			// Unexpected adapter/ledger failure: structured, not a fault.
			metrics.ClassificationErrorsTotal.WithLabelValues("internal").Inc()
			return c.JSON(http.StatusInternalServerError, classifyResponse{
				Success: false,
				Error:   "classification failed",
			})
		}
	}

	metrics.ClassificationsTotal.WithLabelValues(result.Category).Inc()
	metrics.ClassificationConfidence.Observe(result.Confidence)
	metrics.ClassifyDuration.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, classifyResponse{
		Success:    true,
		Class:      result.Category,
		Confidence: fmt.Sprintf("%.2f", result.Confidence),
	})
}

func fail(c echo.Context, code int, msg, reason string) error {
	metrics.ClassificationErrorsTotal.WithLabelValues(reason).Inc()
	return c.JSON(code, classifyResponse{Success: false, Error: msg})
}
