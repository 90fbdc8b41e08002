package httphandler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stellar/go-stellar-sdk/support/log"
	"github.com/stellar/go-stellar-sdk/support/render/httpjson"

	"github.com/hereandnowai/customer-ltv-backend/internal/data"
	"github.com/hereandnowai/customer-ltv-backend/internal/enrichment"
	"github.com/hereandnowai/customer-ltv-backend/internal/serve/httperror"
	"github.com/hereandnowai/customer-ltv-backend/internal/services"
)

type EnrichmentHandler struct {
	EnrichmentService *services.EnrichmentService
}

// EnrichCustomer runs the value prediction for one customer and returns the
// updated customer, whether the prediction succeeded or not. The per-customer
// error field carries the failure.
func (h EnrichmentHandler) EnrichCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID := chi.URLParam(r, "id")

	customer, err := h.EnrichmentService.EnrichCustomer(ctx, customerID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			httperror.NotFound("customer not found", err, nil).Render(w)
			return
		case errors.Is(err, enrichment.ErrPredictorNotConfigured):
			httperror.BadRequest("the predictor is not configured, set the API key", err, nil).Render(w)
			return
		case customer != nil:
			// The failure is recorded on the customer itself; the request
			// still answers with the updated snapshot.
			log.Ctx(ctx).Errorf("Error enriching customer %s: %s", customerID, err)
		default:
			httperror.InternalError(ctx, "Cannot enrich customer", err, nil).Render(w)
			return
		}
	}

	httpjson.RenderStatus(w, http.StatusOK, customer, httpjson.JSON)
}

// EnrichAllCustomers runs the prediction over every eligible customer,
// sequentially, and answers with the aggregate summary once the run finishes.
func (h EnrichmentHandler) EnrichAllCustomers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, err := h.EnrichmentService.EnrichAll(ctx, func(current, total int) {
		log.Ctx(ctx).Infof("Bulk enrichment progress: %d/%d", current, total)
	})
	if err != nil {
		httperror.InternalError(ctx, "Cannot enrich customers", err, nil).Render(w)
		return
	}

	httpjson.RenderStatus(w, http.StatusOK, summary, httpjson.JSON)
}

func (h EnrichmentHandler) GetRetentionStrategies(w http.ResponseWriter, r *http.Request) {
	h.fetchAdvice(w, r, h.EnrichmentService.FetchRetentionStrategies)
}

func (h EnrichmentHandler) GetMarketingIdeas(w http.ResponseWriter, r *http.Request) {
	h.fetchAdvice(w, r, h.EnrichmentService.FetchMarketingIdeas)
}

func (h EnrichmentHandler) fetchAdvice(w http.ResponseWriter, r *http.Request, fetch func(ctx context.Context, customerID string) (*data.Customer, error)) {
	ctx := r.Context()
	customerID := chi.URLParam(r, "id")

	customer, err := fetch(ctx, customerID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			httperror.NotFound("customer not found", err, nil).Render(w)
			return
		case errors.Is(err, enrichment.ErrPredictorNotConfigured):
			httperror.BadRequest("the predictor is not configured, set the API key", err, nil).Render(w)
			return
		case customer != nil:
			log.Ctx(ctx).Errorf("Error fetching suggestions for customer %s: %s", customerID, err)
		default:
			httperror.BadRequest(err.Error(), err, nil).Render(w)
			return
		}
	}

	httpjson.RenderStatus(w, http.StatusOK, customer, httpjson.JSON)
}
