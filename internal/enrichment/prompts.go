package enrichment

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hereandnowai/customer-ltv-backend/internal/data"
)

// valuePredictionPrompt renders the prediction prompt for one customer
// snapshot. The synthesized purchase history plus the originally reported
// purchase count is all the signal the source data carries.
func valuePredictionPrompt(customer *data.Customer) string {
	var history strings.Builder
	for _, purchase := range customer.Purchases {
		fmt.Fprintf(&history, "  - Date: %s, Amount: $%s\n", purchase.Date, purchase.Amount.StringFixed(2))
	}

	reportedCount := ""
	if customer.SourcePurchaseCount > 0 {
		reportedCount = fmt.Sprintf("- Original reported purchase count: %d\n", customer.SourcePurchaseCount)
	}

	return fmt.Sprintf(`You are a predictive analytics expert specializing in Customer Lifetime Value (LTV).
Analyze the following customer's purchase history and predict their LTV for the next 12 months.
Also, classify this customer into one of these segments: High-Value, Medium-Value, Low-Value, At-Risk, New.
Provide your response strictly as a JSON object with keys 'predictedLTV' (a number, e.g., 450.75) and 'segment' (a string from the provided list).

Customer Data:
- ID: %s
- Joined: %s
- Purchase History (Date: YYYY-MM-DD, Amount: USD):
%s%s
Consider factors like purchase frequency, average order value, recency of purchase, and overall spending trend.
If purchase history is sparse or very recent (e.g., joined in the last 3-6 months with few purchases), they might be 'New'.
If spending has declined significantly or purchases are infrequent after a period of activity, they might be 'At-Risk'.
Base 'High-Value', 'Medium-Value', 'Low-Value' on a combination of recency, frequency, and monetary value relative to typical customer behavior.

JSON Output Example:
{
  "predictedLTV": 500.75,
  "segment": "Medium-Value"
}`, customer.ID, customer.JoinDate, history.String(), reportedCount)
}

func retentionStrategiesPrompt(value decimal.Decimal, segment data.CustomerSegment) string {
	return fmt.Sprintf(`You are a customer retention strategist.
For a customer classified as '%s' with a predicted 12-month LTV of $%s, suggest 3 distinct and actionable retention strategies.
Provide your response strictly as a JSON array of strings.

Example format:
[
  "Strategy 1: Detailed description of the strategy, why it's suitable for this segment/LTV, and a clear action.",
  "Strategy 2: Another detailed description...",
  "Strategy 3: A third detailed description..."
]`, segment, value.StringFixed(2))
}

func marketingIdeasPrompt(value decimal.Decimal, segment data.CustomerSegment) string {
	return fmt.Sprintf(`You are a marketing personalization expert.
For a customer classified as '%s' with a predicted 12-month LTV of $%s, suggest 3 personalized marketing efforts or promotions.
Provide your response strictly as a JSON array of strings.

Example format:
[
  "Marketing Idea 1: Description of the personalized offer, how it aligns with their LTV/segment, and the intended outcome.",
  "Marketing Idea 2: Another personalized idea...",
  "Marketing Idea 3: A third personalized idea..."
]`, segment, value.StringFixed(2))
}
