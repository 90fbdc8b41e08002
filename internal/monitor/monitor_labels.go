package monitor

type HttpRequestLabels struct {
	Status string
	Route  string
	Method string
}

type EnrichmentLabels struct {
	Operation string
	Outcome   string
}

func (e EnrichmentLabels) ToMap() map[string]string {
	return map[string]string{
		"operation": e.Operation,
		"outcome":   e.Outcome,
	}
}

var EnrichmentLabelNames = []string{"operation", "outcome"}

type PredictorRequestLabels struct {
	Operation string
}

func (p PredictorRequestLabels) ToMap() map[string]string {
	return map[string]string{
		"operation": p.Operation,
	}
}

var PredictorRequestLabelNames = []string{"operation"}
