package data

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCustomer(id, name, email string) *Customer {
	return &Customer{
		ID:               id,
		Name:             name,
		Email:            email,
		Segment:          UnknownSegment,
		SourceTotalSpent: decimal.RequireFromString("100"),
	}
}

func Test_CustomerStore_ReplaceAll(t *testing.T) {
	store := NewCustomerStore()
	store.SetNotice("old notice")

	original := newTestCustomer("c-1", "Alice", "alice@example.com")
	store.ReplaceAll([]*Customer{original})

	assert.Equal(t, 1, store.Count())
	assert.Empty(t, store.Notice(), "replacing the collection clears the notice")

	// Mutating the caller's copy must not leak into the store.
	original.Name = "changed"
	got, err := store.Get("c-1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
}

func Test_CustomerStore_Search(t *testing.T) {
	store := NewCustomerStore()
	store.ReplaceAll([]*Customer{
		newTestCustomer("c-1", "Alice Johnson", "alice@example.com"),
		newTestCustomer("c-2", "Bob Smith", "bob@shop.org"),
	})

	assert.Len(t, store.Search(""), 2)
	assert.Len(t, store.Search("alice"), 1)
	assert.Len(t, store.Search("SHOP.ORG"), 1)
	assert.Len(t, store.Search("johnson"), 1)
	assert.Empty(t, store.Search("nobody"))
}

func Test_CustomerStore_Get_notFound(t *testing.T) {
	store := NewCustomerStore()
	_, err := store.Get("missing")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func Test_CustomerStore_Update(t *testing.T) {
	store := NewCustomerStore()
	customer := newTestCustomer("c-1", "Alice", "alice@example.com")
	customer.Error = "previous failure"
	store.ReplaceAll([]*Customer{customer})

	t.Run("clears the error before the mutation runs", func(t *testing.T) {
		updated, err := store.Update("c-1", func(c *Customer) {
			c.IsEnriching = true
		})
		require.NoError(t, err)
		assert.Empty(t, updated.Error)
		assert.True(t, updated.IsEnriching)
	})

	t.Run("mutation can set a new error", func(t *testing.T) {
		updated, err := store.Update("c-1", func(c *Customer) {
			c.Error = "new failure"
		})
		require.NoError(t, err)
		assert.Equal(t, "new failure", updated.Error)
	})

	t.Run("returns not found for unknown ids", func(t *testing.T) {
		_, err := store.Update("missing", func(c *Customer) {})
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("returned customer is a copy", func(t *testing.T) {
		updated, err := store.Update("c-1", func(c *Customer) {
			c.RetentionStrategies = []string{"a"}
		})
		require.NoError(t, err)
		updated.RetentionStrategies[0] = "tampered"

		got, err := store.Get("c-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, got.RetentionStrategies)
	})
}

func Test_Customer_Clone(t *testing.T) {
	value := decimal.RequireFromString("250")
	customer := &Customer{
		ID:                  "c-1",
		PredictedValue:      &value,
		Purchases:           []Purchase{{ID: "p-1", Amount: decimal.RequireFromString("10")}},
		RetentionStrategies: []string{"s1"},
	}

	clone := customer.Clone()
	clone.Purchases[0].ID = "changed"
	clone.RetentionStrategies[0] = "changed"
	*clone.PredictedValue = decimal.Zero

	assert.Equal(t, "p-1", customer.Purchases[0].ID)
	assert.Equal(t, "s1", customer.RetentionStrategies[0])
	assert.True(t, customer.PredictedValue.Equal(value))
}
