package data

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() CustomerRecord {
	return CustomerRecord{
		"id":                 "c-1",
		"name":               "Alice",
		"email":              "alice@example.com",
		"total_spent":        "150.50",
		"purchase_count":     "3",
		"last_purchase_date": "2024-01-15",
	}
}

func Test_BuildCustomer_success(t *testing.T) {
	customer, err := BuildCustomer(validRecord(), 0)
	require.NoError(t, err)

	assert.Equal(t, "c-1", customer.ID)
	assert.Equal(t, "Alice", customer.Name)
	assert.Equal(t, "alice@example.com", customer.Email)
	assert.True(t, customer.SourceTotalSpent.Equal(decimal.RequireFromString("150.50")))
	assert.Equal(t, 3, customer.SourcePurchaseCount)
	assert.Equal(t, "2024-01-15", customer.SourceLastPurchaseDate)
	assert.Equal(t, UnknownSegment, customer.Segment)
	// The join date mirrors the normalized last purchase date.
	assert.Equal(t, "2024-01-15", customer.JoinDate)
}

func Test_BuildCustomer_defaults(t *testing.T) {
	record := validRecord()
	record["id"] = ""
	record["name"] = ""
	record["email"] = ""

	customer, err := BuildCustomer(record, 4)
	require.NoError(t, err)

	assert.Equal(t, "gen-row-4", customer.ID)
	assert.Equal(t, "N/A", customer.Name)
	assert.Equal(t, "N/A", customer.Email)
}

func Test_BuildCustomer_dateNormalization(t *testing.T) {
	testCases := []struct {
		raw  string
		want string
	}{
		{"2024-01-15", "2024-01-15"},
		{"2024/01/15", "2024-01-15"},
		{"01/15/2024", "2024-01-15"},
		{"1/5/2024", "2024-01-05"},
		{"Jan 15, 2024", "2024-01-15"},
		{"January 15, 2024", "2024-01-15"},
		{"15-Jan-2024", "2024-01-15"},
		{"2024-01-15T10:30:00Z", "2024-01-15"},
		{"2024-01-15 10:30:00", "2024-01-15"},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			record := validRecord()
			record["last_purchase_date"] = tc.raw

			customer, err := BuildCustomer(record, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.want, customer.JoinDate)
		})
	}
}

func Test_BuildCustomer_validationErrors(t *testing.T) {
	testCases := []struct {
		name      string
		field     string
		value     string
		wantField string
	}{
		{"total_spent not a number", "total_spent", "abc", "total_spent"},
		{"total_spent negative", "total_spent", "-10", "total_spent"},
		{"purchase_count not an integer", "purchase_count", "2.5", "purchase_count"},
		{"purchase_count negative", "purchase_count", "-1", "purchase_count"},
		{"date unparseable", "last_purchase_date", "not-a-date", "last_purchase_date"},
		{"date empty", "last_purchase_date", "", "last_purchase_date"},
		{"year below range", "last_purchase_date", "1899-12-31", "last_purchase_date"},
		{"year above range", "last_purchase_date", "2101-01-01", "last_purchase_date"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			record := validRecord()
			record[tc.field] = tc.value

			customer, err := BuildCustomer(record, 2)
			assert.Nil(t, customer)

			var fieldErr *FieldValidationError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tc.wantField, fieldErr.Field)
			assert.Equal(t, tc.value, fieldErr.Value)
			// rowIndex 2 means source row 4, header included.
			assert.Equal(t, 4, fieldErr.Row)
		})
	}
}

func Test_BuildCustomers_abortsWholeBatchOnFirstError(t *testing.T) {
	bad := validRecord()
	bad["total_spent"] = "oops"

	customers, err := BuildCustomers([]CustomerRecord{validRecord(), bad, validRecord()})
	assert.Nil(t, customers)

	var fieldErr *FieldValidationError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, 3, fieldErr.Row)
}

func Test_synthesizePurchases(t *testing.T) {
	t.Run("count and spend produce one averaged purchase", func(t *testing.T) {
		purchases := synthesizePurchases(decimal.RequireFromString("90"), 3, "2024-01-15")
		require.Len(t, purchases, 1)
		assert.True(t, purchases[0].Amount.Equal(decimal.RequireFromString("30")))
		assert.Equal(t, "2024-01-15", purchases[0].Date)
		assert.Equal(t, []string{"3 items (averaged)"}, purchases[0].Items)
		assert.NotEmpty(t, purchases[0].ID)
	})

	t.Run("spend without count produces one purchase of the full amount", func(t *testing.T) {
		purchases := synthesizePurchases(decimal.RequireFromString("42.42"), 0, "2024-01-15")
		require.Len(t, purchases, 1)
		assert.True(t, purchases[0].Amount.Equal(decimal.RequireFromString("42.42")))
		assert.Empty(t, purchases[0].Items)
	})

	t.Run("zero spend produces no purchases", func(t *testing.T) {
		assert.Empty(t, synthesizePurchases(decimal.Zero, 5, "2024-01-15"))
	})
}

func Test_ParseCustomerSegment(t *testing.T) {
	assert.Equal(t, HighValueSegment, ParseCustomerSegment("high-value"))
	assert.Equal(t, MediumValueSegment, ParseCustomerSegment(" Medium-Value "))
	assert.Equal(t, UnknownSegment, ParseCustomerSegment("platinum"))
	assert.Equal(t, UnknownSegment, ParseCustomerSegment(""))
}
