package services

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hereandnowai/customer-ltv-backend/internal/data"
)

func Test_ParseExportHeaderPolicy(t *testing.T) {
	policy, err := ParseExportHeaderPolicy("EMIT-HEADER")
	require.NoError(t, err)
	assert.Equal(t, ExportHeaderPolicyEmit, policy)

	policy, err = ParseExportHeaderPolicy("no-header")
	require.NoError(t, err)
	assert.Equal(t, ExportHeaderPolicyNone, policy)

	_, err = ParseExportHeaderPolicy("sometimes")
	assert.EqualError(t, err, `invalid export header policy "sometimes"`)
}

func Test_ExportService_ExportToCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("empty collection produces an empty string", func(t *testing.T) {
		service := NewExportService(data.NewCustomerStore(), "", nil)
		assert.Empty(t, service.ExportToCSV(ctx))
	})

	t.Run("unenriched customer has no predicted value but keeps its segment", func(t *testing.T) {
		store := seedStore(&data.Customer{
			ID:                     "c-1",
			Name:                   "Alice",
			Email:                  "alice@example.com",
			JoinDate:               "2024-01-15",
			SourceTotalSpent:       decimal.RequireFromString("150.5"),
			SourcePurchaseCount:    3,
			SourceLastPurchaseDate: "2024-01-15",
			Segment:                data.UnknownSegment,
		})

		service := NewExportService(store, ExportHeaderPolicyEmit, nil)
		out := service.ExportToCSV(ctx)

		lines := strings.Split(out, "\r\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "id,name,email,joinDate,totalSpent,purchaseCount,lastPurchaseDate,predictedLTV,segment,retentionStrategy1,retentionStrategy2,retentionStrategy3,marketingIdea1,marketingIdea2,marketingIdea3", lines[0])
		assert.Equal(t, "c-1,Alice,alice@example.com,2024-01-15,150.50,3,2024-01-15,,Unknown,,,,,,", lines[1])
		assert.False(t, strings.HasSuffix(out, "\r\n"), "no trailing line break")
	})

	t.Run("enriched customer carries prediction, segment and padded suggestions", func(t *testing.T) {
		value := decimal.RequireFromString("312.555")
		store := seedStore(&data.Customer{
			ID:                     "c-1",
			Name:                   "Alice",
			Email:                  "alice@example.com",
			JoinDate:               "2024-01-15",
			SourceTotalSpent:       decimal.RequireFromString("150.5"),
			SourcePurchaseCount:    3,
			SourceLastPurchaseDate: "2024-01-15",
			PredictedValue:         &value,
			Segment:                data.HighValueSegment,
			RetentionStrategies:    []string{"s1", "s2", "s3", "s4"},
			MarketingIdeas:         []string{"m1"},
		})

		service := NewExportService(store, ExportHeaderPolicyNone, nil)
		out := service.ExportToCSV(ctx)

		assert.Equal(t, "c-1,Alice,alice@example.com,2024-01-15,150.50,3,2024-01-15,312.56,High-Value,s1,s2,s3,m1,,", out)
	})

	t.Run("fields with commas, quotes or line breaks are quoted", func(t *testing.T) {
		store := seedStore(&data.Customer{
			ID:                     "c-1",
			Name:                   `Smith, "Bob"`,
			Email:                  "bob@example.com",
			JoinDate:               "2024-01-15",
			SourceTotalSpent:       decimal.Zero,
			SourceLastPurchaseDate: "2024-01-15",
			MarketingIdeas:         []string{"line one\nline two"},
		})

		service := NewExportService(store, ExportHeaderPolicyNone, nil)
		out := service.ExportToCSV(ctx)

		assert.Contains(t, out, `"Smith, ""Bob"""`)
		assert.Contains(t, out, "\"line one\nline two\"")
	})

	t.Run("rows come out in collection order", func(t *testing.T) {
		store := seedStore(
			&data.Customer{ID: "c-2", Name: "Bob", SourceTotalSpent: decimal.Zero},
			&data.Customer{ID: "c-1", Name: "Alice", SourceTotalSpent: decimal.Zero},
		)

		service := NewExportService(store, ExportHeaderPolicyNone, nil)
		lines := strings.Split(service.ExportToCSV(ctx), "\r\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "c-2,"))
		assert.True(t, strings.HasPrefix(lines[1], "c-1,"))
	})
}
