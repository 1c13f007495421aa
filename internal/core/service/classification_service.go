package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ecoscan/ewaste-api/internal/core/domain"
	"github.com/ecoscan/ewaste-api/internal/core/ports"
)

type classificationService struct {
	store      ports.ImageStore
	classifier ports.Classifier
	ledger     ports.LedgerRepository
	log        zerolog.Logger
}

// NewClassificationService returns a ClassificationService implementation.
func NewClassificationService(
	store ports.ImageStore,
	classifier ports.Classifier,
	ledger ports.LedgerRepository,
	log zerolog.Logger,
) ports.ClassificationService {
	return &classificationService{
		store:      store,
		classifier: classifier,
		ledger:     ledger,
		log:        log,
	}
}

// Classify stores the upload, runs one forward pass, and appends the result
// to the user's ledger. The whole flow is synchronous; a failure at any step
// surfaces to the caller and writes no ledger row.
func (s *classificationService) Classify(ctx context.Context, in ports.ClassifyInput) (*ports.ClassifyResult, error) {
	// 1. Fail fast when the model never loaded; skips the disk write.
	if !s.classifier.Available() {
		return nil, domain.ErrModelUnavailable
	}

	// 2. Persist the upload under a collision-resistant name.
	path, err := s.store.Save(ctx, in.UserID, in.Filename, in.Data)
	if err != nil {
		return nil, fmt.Errorf("classify: save upload: %w", err)
	}

	// 3. Forward pass.
	pred, err := s.classifier.Classify(ctx, in.Data)
	if err != nil {
		return nil, err
	}

	// 4. Normalize at write time; legacy rows may still be dirty but new
	// ones are a clamped float in [0, 100].
	confidence := domain.ClampConfidence(pred.Confidence)

	// 5. Append to the audit ledger.
	recordID, err := s.ledger.Insert(ctx, ports.RecordInput{
		UserID:         in.UserID,
		ImagePath:      path,
		PredictedClass: pred.Category,
		Confidence:     confidence,
	})
	if err != nil {
		return nil, fmt.Errorf("classify: record result: %w", err)
	}

	s.log.Info().
		Int64("user_id", in.UserID).
		Str("category", pred.Category).
		Float64("confidence", confidence).
		Str("image_path", path).
		Msg("image classified")

	return &ports.ClassifyResult{
		RecordID:   recordID,
		ImagePath:  path,
		Category:   pred.Category,
		Confidence: confidence,
	}, nil
}
