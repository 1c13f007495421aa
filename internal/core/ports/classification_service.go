package ports

import "context"

// ClassifyInput is an authenticated upload ready for classification.
type ClassifyInput struct {
	UserID   int64
	Filename string
	Data     []byte
}

// ClassifyResult is the outcome of a stored-and-recorded classification.
type ClassifyResult struct {
	RecordID   int64
	ImagePath  string
	Category   string
	Confidence float64
}

type ClassificationService interface {
	Classify(ctx context.Context, in ClassifyInput) (*ClassifyResult, error)
}

// ImageStore persists uploaded images and returns the stored path.
type ImageStore interface {
	Save(ctx context.Context, userID int64, filename string, data []byte) (string, error)
}
