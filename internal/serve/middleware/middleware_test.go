package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hereandnowai/customer-ltv-backend/internal/monitor"
)

func Test_RecoverHandler(t *testing.T) {
	router := chi.NewRouter()
	router.Use(RecoverHandler)
	router.Get("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	})

	r := httptest.NewRequest(http.MethodGet, "/panic", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	resp := w.Result()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func Test_MetricsRequestHandler(t *testing.T) {
	mMonitorService := &monitor.MockMonitorService{}
	mMonitorService.
		On("MonitorHttpRequestDuration", mock.AnythingOfType("time.Duration"), mock.MatchedBy(func(labels monitor.HttpRequestLabels) bool {
			return labels.Status == "200" && labels.Route == "/customers" && labels.Method == http.MethodGet
		})).
		Return(nil).
		Once()

	router := chi.NewRouter()
	router.Use(MetricsRequestHandler(mMonitorService))
	router.Get("/customers", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodGet, "/customers", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Result().StatusCode)
	mMonitorService.AssertExpectations(t)
}

func Test_CorsMiddleware(t *testing.T) {
	router := chi.NewRouter()
	router.Use(CorsMiddleware([]string{"https://app.example.com"}))
	router.Get("/customers", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("allowed origin is echoed back", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/customers", nil)
		r.Header.Set("Origin", "https://app.example.com")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, "https://app.example.com", w.Result().Header.Get("Access-Control-Allow-Origin"))
	})

	t.Run("other origins are not", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/customers", nil)
		r.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Empty(t, w.Result().Header.Get("Access-Control-Allow-Origin"))
	})
}
