package monitor

type MetricTag string

const (
	HttpRequestDurationTag MetricTag = "requests_duration_seconds"
	// Imports:
	CustomerImportsCounterTag       MetricTag = "customer_imports_counter"
	CustomerImportsFailedCounterTag MetricTag = "customer_imports_failed_counter"
	// Exports:
	CustomerExportsCounterTag MetricTag = "customer_exports_counter"
	// Predictor requests:
	PredictorRequestDurationTag MetricTag = "predictor_request_duration_seconds"
	EnrichmentsCounterTag       MetricTag = "enrichments_counter"
)

func (m MetricTag) ListAll() []MetricTag {
	return []MetricTag{
		HttpRequestDurationTag,
		CustomerImportsCounterTag,
		CustomerImportsFailedCounterTag,
		CustomerExportsCounterTag,
		PredictorRequestDurationTag,
		EnrichmentsCounterTag,
	}
}
