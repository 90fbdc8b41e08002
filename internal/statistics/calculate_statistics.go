package statistics

import (
	"github.com/shopspring/decimal"

	"github.com/hereandnowai/customer-ltv-backend/internal/data"
)

// ValueBucketConfig describes one predicted-value range. Max == nil means the
// bucket is unbounded above.
type ValueBucketConfig struct {
	Label string
	Min   decimal.Decimal
	Max   *decimal.Decimal
}

func boundary(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

// DefaultValueBuckets are the ranges the distribution chart has always used.
// Buckets are checked in order and the first match wins, so the configuration
// stays correct even if ranges were ever to overlap.
func DefaultValueBuckets() []ValueBucketConfig {
	return []ValueBucketConfig{
		{Label: "$0-50", Min: decimal.Zero, Max: boundary("50")},
		{Label: "$51-100", Min: decimal.RequireFromString("51"), Max: boundary("100")},
		{Label: "$101-250", Min: decimal.RequireFromString("101"), Max: boundary("250")},
		{Label: "$251-500", Min: decimal.RequireFromString("251"), Max: boundary("500")},
		{Label: "$501-1k", Min: decimal.RequireFromString("501"), Max: boundary("1000")},
		{Label: "$1k+", Min: decimal.RequireFromString("1001"), Max: nil},
	}
}

type ValueBucketCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// CalculateValueDistribution counts enriched customers per predicted-value
// bucket. Buckets always come back in configuration order, zero counts
// included, and customers without a prediction are not counted anywhere.
func CalculateValueDistribution(customers []*data.Customer, buckets []ValueBucketConfig) []ValueBucketCount {
	distribution := make([]ValueBucketCount, len(buckets))
	for i, bucket := range buckets {
		distribution[i] = ValueBucketCount{Label: bucket.Label}
	}

	for _, customer := range customers {
		if customer.PredictedValue == nil {
			continue
		}
		for i, bucket := range buckets {
			if matchesBucket(*customer.PredictedValue, bucket) {
				distribution[i].Count++
				break
			}
		}
	}

	return distribution
}

func matchesBucket(value decimal.Decimal, bucket ValueBucketConfig) bool {
	if value.LessThan(bucket.Min) {
		return false
	}
	return bucket.Max == nil || value.LessThanOrEqual(*bucket.Max)
}

type SegmentCounters struct {
	HighValue   int64 `json:"high_value"`
	MediumValue int64 `json:"medium_value"`
	LowValue    int64 `json:"low_value"`
	AtRisk      int64 `json:"at_risk"`
	New         int64 `json:"new"`
	Unknown     int64 `json:"unknown"`
	Total       int64 `json:"total"`
}

type GeneralStatistics struct {
	TotalCustomers        int64              `json:"total_customers"`
	EnrichedCustomers     int64              `json:"enriched_customers"`
	AveragePredictedValue string             `json:"average_predicted_value"`
	TotalPredictedValue   string             `json:"total_predicted_value"`
	SegmentCounters       SegmentCounters    `json:"segment_counters"`
	ValueDistribution     []ValueBucketCount `json:"value_distribution"`
}

// CalculateStatistics aggregates the whole collection: segment counters over
// enriched customers, predicted-value totals and the bucket distribution.
func CalculateStatistics(customers []*data.Customer, buckets []ValueBucketConfig) *GeneralStatistics {
	statistics := &GeneralStatistics{
		TotalCustomers:    int64(len(customers)),
		ValueDistribution: CalculateValueDistribution(customers, buckets),
	}

	totalPredicted := decimal.Zero
	for _, customer := range customers {
		if customer.PredictedValue == nil {
			continue
		}
		statistics.EnrichedCustomers++
		totalPredicted = totalPredicted.Add(*customer.PredictedValue)

		switch customer.Segment {
		case data.HighValueSegment:
			statistics.SegmentCounters.HighValue++
		case data.MediumValueSegment:
			statistics.SegmentCounters.MediumValue++
		case data.LowValueSegment:
			statistics.SegmentCounters.LowValue++
		case data.AtRiskSegment:
			statistics.SegmentCounters.AtRisk++
		case data.NewSegment:
			statistics.SegmentCounters.New++
		default:
			statistics.SegmentCounters.Unknown++
		}
		statistics.SegmentCounters.Total++
	}

	statistics.TotalPredictedValue = totalPredicted.StringFixed(2)
	if statistics.EnrichedCustomers > 0 {
		average := totalPredicted.Div(decimal.NewFromInt(statistics.EnrichedCustomers))
		statistics.AveragePredictedValue = average.StringFixed(2)
	} else {
		statistics.AveragePredictedValue = "0.00"
	}

	return statistics
}
