package ports

import "context"

// Prediction is the outcome of a single forward pass: the winning category
// and its softmax maximum expressed as a percentage in [0, 100].
type Prediction struct {
	Category   string
	Confidence float64
}

// Classifier wraps the pretrained image model. Implementations hold no
// mutable state after construction and are safe for concurrent use.
type Classifier interface {
	// Classify decodes raw image bytes, runs the fixed preprocessing
	// pipeline and one forward pass, and returns the argmax prediction.
	// Returns domain.ErrInvalidImage for undecodable input and
	// domain.ErrModelUnavailable when the model never loaded.
	Classify(ctx context.Context, image []byte) (Prediction, error)

	// Available reports whether the model loaded at startup.
	Available() bool
}
