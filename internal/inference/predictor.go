package inference

import "context"

// Predictor runs the pretrained consumption model. Implementations must be
// safe for concurrent use; one predictor is constructed at startup and
// shared read-only across request handlers.
type Predictor interface {
	// FeatureNames returns the column names the model was trained on, or
	// nil when the model does not expose them. Callers fall back to the
	// matrix's own columns.
	FeatureNames() []string

	// Predict returns one normalized consumption value in [0,1] per
	// matrix row.
	Predict(ctx context.Context, m *Matrix) ([]float64, error)
}
