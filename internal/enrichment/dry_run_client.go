package enrichment

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hereandnowai/customer-ltv-backend/internal/data"
)

// dryRunClient produces deterministic predictions without calling any AI API.
// The value heuristic is total spend plus 50%, which is close enough to keep
// the rest of the pipeline meaningful during development.
type dryRunClient struct{}

func NewDryRunClient() (PredictorClient, error) {
	return &dryRunClient{}, nil
}

func (c *dryRunClient) PredictorType() PredictorType {
	return PredictorTypeDryRun
}

func (c *dryRunClient) PredictValue(_ context.Context, customer *data.Customer) (*Prediction, error) {
	value := customer.SourceTotalSpent.Mul(decimal.NewFromFloat(1.5))

	var segment data.CustomerSegment
	switch {
	case value.GreaterThan(decimal.NewFromInt(500)):
		segment = data.HighValueSegment
	case value.GreaterThan(decimal.NewFromInt(100)):
		segment = data.MediumValueSegment
	case value.IsPositive():
		segment = data.LowValueSegment
	default:
		segment = data.NewSegment
	}

	fmt.Println(strings.Repeat("-", 79))
	fmt.Println("Customer:", customer.ID)
	fmt.Println("Predicted value:", value.StringFixed(2))
	fmt.Println("Segment:", segment)
	fmt.Println(strings.Repeat("-", 79))

	return &Prediction{Value: value, Segment: segment}, nil
}

func (c *dryRunClient) RetentionStrategies(_ context.Context, value decimal.Decimal, segment data.CustomerSegment) ([]string, error) {
	return []string{
		fmt.Sprintf("Strategy 1: Send a personal check-in to this %s customer (predicted LTV $%s).", segment, value.StringFixed(2)),
		"Strategy 2: Offer a loyalty discount on their next purchase.",
		"Strategy 3: Invite them to an early-access program.",
	}, nil
}

func (c *dryRunClient) MarketingIdeas(_ context.Context, value decimal.Decimal, segment data.CustomerSegment) ([]string, error) {
	return []string{
		fmt.Sprintf("Marketing Idea 1: A tailored bundle for %s customers around the $%s mark.", segment, value.StringFixed(2)),
		"Marketing Idea 2: A referral reward for bringing in similar customers.",
		"Marketing Idea 3: A seasonal promotion based on their last purchase date.",
	}, nil
}

var _ PredictorClient = (*dryRunClient)(nil)
