package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hereandnowai/customer-ltv-backend/internal/data"
	"github.com/hereandnowai/customer-ltv-backend/internal/serve/httpclient"
)

const (
	geminiBaseURL      = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGeminiModel = "gemini-2.5-flash"

	predictionTemperature = 0.3
	adviceTemperature     = 0.7
)

// markdownFenceRegex matches a fenced code block so responses like
// ```json\n{...}\n``` can be unwrapped before decoding.
var markdownFenceRegex = regexp.MustCompile("(?s)^```(?:json)?\\s*\\n?(.*?)\\n?\\s*```$")

type geminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient httpclient.HTTPClientInterface
}

// NewGeminiClient creates a Gemini-backed predictor. An empty API key is
// accepted here so the server can still boot; every call will then fail with
// ErrPredictorNotConfigured until the key is provided.
func NewGeminiClient(apiKey, model string) (PredictorClient, error) {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &geminiClient{
		apiKey:     apiKey,
		model:      model,
		baseURL:    geminiBaseURL,
		httpClient: httpclient.DefaultClient(),
	}, nil
}

func (c *geminiClient) PredictorType() PredictorType {
	return PredictorTypeGemini
}

func (c *geminiClient) PredictValue(ctx context.Context, customer *data.Customer) (*Prediction, error) {
	responseText, err := c.generateContent(ctx, valuePredictionPrompt(customer), predictionTemperature)
	if err != nil {
		return nil, fmt.Errorf("calling Gemini API for value prediction: %w", err)
	}

	var result struct {
		PredictedLTV float64 `json:"predictedLTV"`
		Segment      string  `json:"segment"`
	}
	if err = decodeFencedJSON(responseText, &result); err != nil {
		return nil, fmt.Errorf("parsing value prediction response: %w", err)
	}

	return &Prediction{
		Value:   decimal.NewFromFloat(result.PredictedLTV),
		Segment: data.ParseCustomerSegment(result.Segment),
	}, nil
}

func (c *geminiClient) RetentionStrategies(ctx context.Context, value decimal.Decimal, segment data.CustomerSegment) ([]string, error) {
	responseText, err := c.generateContent(ctx, retentionStrategiesPrompt(value, segment), adviceTemperature)
	if err != nil {
		return nil, fmt.Errorf("calling Gemini API for retention strategies: %w", err)
	}

	var strategies []string
	if err = decodeFencedJSON(responseText, &strategies); err != nil {
		return nil, fmt.Errorf("parsing retention strategies response: %w", err)
	}
	return strategies, nil
}

func (c *geminiClient) MarketingIdeas(ctx context.Context, value decimal.Decimal, segment data.CustomerSegment) ([]string, error) {
	responseText, err := c.generateContent(ctx, marketingIdeasPrompt(value, segment), adviceTemperature)
	if err != nil {
		return nil, fmt.Errorf("calling Gemini API for marketing ideas: %w", err)
	}

	var ideas []string
	if err = decodeFencedJSON(responseText, &ideas); err != nil {
		return nil, fmt.Errorf("parsing marketing ideas response: %w", err)
	}
	return ideas, nil
}

type generateContentRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMimeType string  `json:"responseMimeType"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// generateContent performs one generateContent call and returns the text of
// the first candidate.
func (c *geminiClient) generateContent(ctx context.Context, prompt string, temperature float64) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("gemini API key is not set: %w", ErrPredictorNotConfigured)
	}

	reqBody, err := json.Marshal(generateContentRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:      temperature,
			ResponseMimeType: "application/json",
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshalling request body: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}

	var genResp generateContentResponse
	if err = json.Unmarshal(respBody, &genResp); err != nil {
		return "", fmt.Errorf("unmarshalling response with status %d: %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		if genResp.Error != nil {
			return "", fmt.Errorf("gemini API responded %d: %s", resp.StatusCode, genResp.Error.Message)
		}
		return "", fmt.Errorf("gemini API responded %d", resp.StatusCode)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini API returned no candidates")
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}

// decodeFencedJSON strips an optional markdown code fence and decodes the
// remaining JSON payload.
func decodeFencedJSON(responseText string, target any) error {
	jsonStr := strings.TrimSpace(responseText)
	if match := markdownFenceRegex.FindStringSubmatch(jsonStr); match != nil {
		jsonStr = strings.TrimSpace(match[1])
	}

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("decoding AI response as JSON (raw text: %q): %w", jsonStr, err)
	}
	return nil
}

var _ PredictorClient = (*geminiClient)(nil)
