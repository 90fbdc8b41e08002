package enrichment

import (
	"fmt"
	"slices"
	"strings"
)

type PredictorType string

const (
	// PredictorTypeGemini is used to predict customer value with the Gemini API.
	PredictorTypeGemini PredictorType = "GEMINI"
	// PredictorTypeDryRun is used for development environment
	PredictorTypeDryRun PredictorType = "DRY_RUN"
)

func (pt PredictorType) All() []PredictorType {
	return []PredictorType{PredictorTypeGemini, PredictorTypeDryRun}
}

func ParsePredictorType(predictorTypeStr string) (PredictorType, error) {
	predictorTypeStrUpper := strings.ToUpper(predictorTypeStr)
	pType := PredictorType(predictorTypeStrUpper)

	if slices.Contains(PredictorType("").All(), pType) {
		return pType, nil
	}

	return "", fmt.Errorf("invalid predictor type %q", predictorTypeStrUpper)
}

type PredictorOptions struct {
	PredictorType PredictorType

	// Gemini
	GeminiAPIKey string
	GeminiModel  string
}

func GetClient(opts PredictorOptions) (PredictorClient, error) {
	switch opts.PredictorType {
	case PredictorTypeGemini:
		return NewGeminiClient(opts.GeminiAPIKey, opts.GeminiModel)

	case PredictorTypeDryRun:
		return NewDryRunClient()

	default:
		return nil, fmt.Errorf("unknown predictor type: %q", opts.PredictorType)
	}
}
