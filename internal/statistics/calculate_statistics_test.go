package statistics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hereandnowai/customer-ltv-backend/internal/data"
)

func enrichedCustomer(id string, value string, segment data.CustomerSegment) *data.Customer {
	predicted := decimal.RequireFromString(value)
	return &data.Customer{ID: id, PredictedValue: &predicted, Segment: segment}
}

func Test_CalculateValueDistribution(t *testing.T) {
	buckets := DefaultValueBuckets()

	t.Run("empty collection reports every bucket with a zero count", func(t *testing.T) {
		distribution := CalculateValueDistribution(nil, buckets)
		require.Len(t, distribution, 6)
		wantLabels := []string{"$0-50", "$51-100", "$101-250", "$251-500", "$501-1k", "$1k+"}
		for i := range buckets {
			assert.Equal(t, wantLabels[i], distribution[i].Label)
			assert.Zero(t, distribution[i].Count)
		}
	})

	t.Run("customers without a prediction are not counted", func(t *testing.T) {
		customers := []*data.Customer{
			{ID: "c-1"},
			enrichedCustomer("c-2", "25", data.LowValueSegment),
		}
		distribution := CalculateValueDistribution(customers, buckets)
		assert.Equal(t, int64(1), distribution[0].Count)
	})

	t.Run("values land in the expected buckets", func(t *testing.T) {
		customers := []*data.Customer{
			enrichedCustomer("c-1", "0", data.NewSegment),
			enrichedCustomer("c-2", "50", data.LowValueSegment),
			enrichedCustomer("c-3", "51", data.LowValueSegment),
			enrichedCustomer("c-4", "250", data.MediumValueSegment),
			enrichedCustomer("c-5", "500", data.MediumValueSegment),
			enrichedCustomer("c-6", "1000", data.HighValueSegment),
			enrichedCustomer("c-7", "5000", data.HighValueSegment),
		}
		distribution := CalculateValueDistribution(customers, buckets)

		assert.Equal(t, int64(2), distribution[0].Count) // $0-50
		assert.Equal(t, int64(1), distribution[1].Count) // $51-100
		assert.Equal(t, int64(1), distribution[2].Count) // $101-250
		assert.Equal(t, int64(1), distribution[3].Count) // $251-500
		assert.Equal(t, int64(1), distribution[4].Count) // $501-1k
		assert.Equal(t, int64(1), distribution[5].Count) // $1k+
	})

	t.Run("first matching bucket wins on overlapping configuration", func(t *testing.T) {
		max := decimal.RequireFromString("100")
		overlapping := []ValueBucketConfig{
			{Label: "first", Min: decimal.Zero, Max: &max},
			{Label: "second", Min: decimal.Zero, Max: nil},
		}
		distribution := CalculateValueDistribution([]*data.Customer{
			enrichedCustomer("c-1", "50", data.LowValueSegment),
		}, overlapping)

		assert.Equal(t, int64(1), distribution[0].Count)
		assert.Zero(t, distribution[1].Count)
	})
}

func Test_CalculateStatistics(t *testing.T) {
	t.Run("empty collection", func(t *testing.T) {
		stats := CalculateStatistics(nil, DefaultValueBuckets())
		assert.Zero(t, stats.TotalCustomers)
		assert.Zero(t, stats.EnrichedCustomers)
		assert.Equal(t, "0.00", stats.AveragePredictedValue)
		assert.Equal(t, "0.00", stats.TotalPredictedValue)
	})

	t.Run("aggregates counters and averages over enriched customers only", func(t *testing.T) {
		customers := []*data.Customer{
			{ID: "c-1"},
			enrichedCustomer("c-2", "100", data.LowValueSegment),
			enrichedCustomer("c-3", "300", data.MediumValueSegment),
			enrichedCustomer("c-4", "800", data.HighValueSegment),
			enrichedCustomer("c-5", "0", data.AtRiskSegment),
		}

		stats := CalculateStatistics(customers, DefaultValueBuckets())

		assert.Equal(t, int64(5), stats.TotalCustomers)
		assert.Equal(t, int64(4), stats.EnrichedCustomers)
		assert.Equal(t, "1200.00", stats.TotalPredictedValue)
		assert.Equal(t, "300.00", stats.AveragePredictedValue)

		assert.Equal(t, int64(1), stats.SegmentCounters.LowValue)
		assert.Equal(t, int64(1), stats.SegmentCounters.MediumValue)
		assert.Equal(t, int64(1), stats.SegmentCounters.HighValue)
		assert.Equal(t, int64(1), stats.SegmentCounters.AtRisk)
		assert.Equal(t, int64(4), stats.SegmentCounters.Total)
	})
}
