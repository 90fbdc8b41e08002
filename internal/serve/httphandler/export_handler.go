package httphandler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/hereandnowai/customer-ltv-backend/internal/services"
)

type ExportHandler struct {
	ExportService *services.ExportService
}

// ExportCustomers streams the collection back as a CSV attachment. An empty
// collection still answers 200, with an empty body.
func (h ExportHandler) ExportCustomers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	content := h.ExportService.ExportToCSV(ctx)

	fileName := fmt.Sprintf("customer_ltv_export_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(content)); err != nil {
		log.Ctx(ctx).Errorf("Error writing CSV export response: %s", err)
	}
}
