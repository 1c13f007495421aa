package domain

import "time"

// Categories is the closed, order-significant set of e-waste labels the model
// can output. Index i corresponds to position i of the model's probability
// vector; reordering this slice breaks label resolution.
var Categories = []string{
	"battery", "keyboard", "mouse", "monitor", "phone",
	"laptop", "tablet", "printer", "speaker", "cable",
}

// IsCategory reports whether s is a member of the fixed category set.
func IsCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}

// ClampConfidence bounds a confidence percentage to [0, 100].
func ClampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ClassificationRecord is one immutable row of the per-user audit ledger.
// Rows are append-only: created once per successful classification, never
// updated or deleted.
type ClassificationRecord struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	ImagePath      string    `json:"image_path"`
	PredictedClass string    `json:"predicted_class"`
	Confidence     float64   `json:"confidence"`
	Timestamp      time.Time `json:"timestamp"`
}

// Stats aggregates a user's ledger. ModalCategory is empty when the user has
// no records; callers render that as an absent value rather than an error.
type Stats struct {
	TotalCount          int64   `json:"total_count"`
	UniqueCategoryCount int64   `json:"unique_category_count"`
	AverageConfidence   float64 `json:"average_confidence"`
	ModalCategory       string  `json:"modal_category,omitempty"`
}
