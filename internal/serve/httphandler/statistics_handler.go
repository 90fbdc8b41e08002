package httphandler

import (
	"net/http"

	"github.com/stellar/go-stellar-sdk/support/render/httpjson"

	"github.com/hereandnowai/customer-ltv-backend/internal/data"
	"github.com/hereandnowai/customer-ltv-backend/internal/statistics"
)

type StatisticsHandler struct {
	Store *data.CustomerStore
}

func (s StatisticsHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats := statistics.CalculateStatistics(s.Store.GetAll(), statistics.DefaultValueBuckets())

	httpjson.RenderStatus(w, http.StatusOK, stats, httpjson.JSON)
}
