package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
)

func PrometheusMetrics() map[MetricTag]prometheus.Collector {
	metrics := make(map[MetricTag]prometheus.Collector)

	for tag, summaryVec := range SummaryVecMetrics {
		metrics[tag] = summaryVec
	}

	for tag, counter := range CounterMetrics {
		metrics[tag] = counter
	}

	for tag, histogramVec := range HistogramVecMetrics {
		metrics[tag] = histogramVec
	}

	for tag, counterVec := range CounterVecMetrics {
		metrics[tag] = counterVec
	}

	return metrics
}

var SummaryVecMetrics = map[MetricTag]*prometheus.SummaryVec{
	HttpRequestDurationTag: prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace: "ltv", Subsystem: "http", Name: string(HttpRequestDurationTag),
		Help: "HTTP requests durations, sliding window = 10m",
	},
		[]string{"status", "route", "method"},
	),
}

var CounterMetrics = map[MetricTag]prometheus.Counter{
	CustomerImportsCounterTag: prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ltv", Subsystem: "business", Name: string(CustomerImportsCounterTag),
		Help: "A counter of successfully imported CSV files",
	}),
	CustomerImportsFailedCounterTag: prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ltv", Subsystem: "business", Name: string(CustomerImportsFailedCounterTag),
		Help: "A counter of CSV imports rejected by schema or field validation",
	}),
	CustomerExportsCounterTag: prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ltv", Subsystem: "business", Name: string(CustomerExportsCounterTag),
		Help: "A counter of generated CSV export files",
	}),
}

var HistogramVecMetrics = map[MetricTag]*prometheus.HistogramVec{
	PredictorRequestDurationTag: prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ltv", Subsystem: "predictor", Name: string(PredictorRequestDurationTag),
		Help: "A histogram of the predictor request durations",
	},
		PredictorRequestLabelNames,
	),
}

var CounterVecMetrics = map[MetricTag]*prometheus.CounterVec{
	EnrichmentsCounterTag: prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ltv", Subsystem: "business", Name: string(EnrichmentsCounterTag),
		Help: "Enrichments Counter",
	},
		EnrichmentLabelNames,
	),
}
