package httphandler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hereandnowai/customer-ltv-backend/internal/data"
	"github.com/hereandnowai/customer-ltv-backend/internal/services"
)

func Test_ExportHandler_ExportCustomers(t *testing.T) {
	t.Run("streams the collection as a CSV attachment", func(t *testing.T) {
		store := data.NewCustomerStore()
		store.ReplaceAll([]*data.Customer{{
			ID:                     "c-1",
			Name:                   "Alice",
			Email:                  "alice@example.com",
			JoinDate:               "2024-01-15",
			SourceTotalSpent:       decimal.RequireFromString("150.5"),
			SourcePurchaseCount:    3,
			SourceLastPurchaseDate: "2024-01-15",
		}})
		handler := ExportHandler{ExportService: services.NewExportService(store, services.ExportHeaderPolicyEmit, nil)}

		r := httptest.NewRequest(http.MethodGet, "/customers/export", nil)
		w := httptest.NewRecorder()
		handler.ExportCustomers(w, r)

		resp := w.Result()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), `attachment; filename="customer_ltv_export_`)

		lines := strings.Split(string(body), "\r\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "id,name,email,"))
		assert.True(t, strings.HasPrefix(lines[1], "c-1,Alice,"))
	})

	t.Run("an empty collection answers 200 with an empty body", func(t *testing.T) {
		handler := ExportHandler{ExportService: services.NewExportService(data.NewCustomerStore(), "", nil)}

		r := httptest.NewRequest(http.MethodGet, "/customers/export", nil)
		w := httptest.NewRecorder()
		handler.ExportCustomers(w, r)

		resp := w.Result()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, body)
	})
}
