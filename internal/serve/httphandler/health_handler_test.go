package httphandler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hereandnowai/customer-ltv-backend/internal/enrichment"
)

func Test_HealthHandler(t *testing.T) {
	t.Run("without a predictor", func(t *testing.T) {
		handler := HealthHandler{Version: "1.0.0", ServiceID: "serve", ReleaseID: "abc123"}

		r := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		resp := w.Result()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{
			"status": "pass",
			"version": "1.0.0",
			"service_id": "serve",
			"release_id": "abc123"
		}`, string(body))
	})

	t.Run("with a predictor", func(t *testing.T) {
		predictorClient, err := enrichment.NewDryRunClient()
		require.NoError(t, err)

		handler := HealthHandler{Version: "1.0.0", ServiceID: "serve", ReleaseID: "abc123", PredictorClient: predictorClient}

		r := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		resp := w.Result()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{
			"status": "pass",
			"version": "1.0.0",
			"service_id": "serve",
			"release_id": "abc123",
			"services": {"predictor": "pass"}
		}`, string(body))
	})
}
