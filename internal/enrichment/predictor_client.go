package enrichment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/hereandnowai/customer-ltv-backend/internal/data"
)

// ErrPredictorNotConfigured is returned by every call when the predictor is
// unusable, e.g. a missing API key. It is never retried automatically; the
// configuration has to be fixed externally.
var ErrPredictorNotConfigured = errors.New("predictor is not configured")

// Prediction is the outcome of one value prediction call. Value and Segment
// are always produced together.
type Prediction struct {
	Value   decimal.Decimal
	Segment data.CustomerSegment
}

//go:generate mockery --name=PredictorClient --case=underscore --structname=PredictorClientMock --inpackage --filename=mocks.go
type PredictorClient interface {
	// PredictValue predicts the 12-month lifetime value and segment for one
	// customer snapshot.
	PredictValue(ctx context.Context, customer *data.Customer) (*Prediction, error)
	// RetentionStrategies suggests retention strategies for a customer with
	// the given predicted value and segment.
	RetentionStrategies(ctx context.Context, value decimal.Decimal, segment data.CustomerSegment) ([]string, error)
	// MarketingIdeas suggests personalized marketing efforts for a customer
	// with the given predicted value and segment.
	MarketingIdeas(ctx context.Context, value decimal.Decimal, segment data.CustomerSegment) ([]string, error)
	PredictorType() PredictorType
}
