package data

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrRecordNotFound = errors.New("record not found")

type CustomerSegment string

const (
	HighValueSegment   CustomerSegment = "High-Value"
	MediumValueSegment CustomerSegment = "Medium-Value"
	LowValueSegment    CustomerSegment = "Low-Value"
	AtRiskSegment      CustomerSegment = "At-Risk"
	NewSegment         CustomerSegment = "New"
	UnknownSegment     CustomerSegment = "Unknown"
)

func AllCustomerSegments() []CustomerSegment {
	return []CustomerSegment{HighValueSegment, MediumValueSegment, LowValueSegment, AtRiskSegment, NewSegment, UnknownSegment}
}

// ParseCustomerSegment maps a free-form segment label to one of the known
// segments. Labels the predictor invents that we don't recognize are coerced
// to Unknown instead of being rejected.
func ParseCustomerSegment(label string) CustomerSegment {
	normalized := strings.TrimSpace(label)
	for _, segment := range AllCustomerSegments() {
		if strings.EqualFold(string(segment), normalized) {
			return segment
		}
	}
	return UnknownSegment
}

type Purchase struct {
	ID     string          `json:"id"`
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Items  []string        `json:"items,omitempty"`
}

// Customer is the canonical in-memory representation of one imported customer.
//
// SourceTotalSpent, SourcePurchaseCount and SourceLastPurchaseDate carry the
// raw CSV values through to the export file, independently of the synthesized
// Purchases. JoinDate intentionally mirrors the normalized last purchase date,
// which is how the source data set has always been displayed.
type Customer struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	JoinDate  string     `json:"join_date"`
	Purchases []Purchase `json:"purchases"`

	PredictedValue      *decimal.Decimal `json:"predicted_value,omitempty"`
	Segment             CustomerSegment  `json:"segment"`
	RetentionStrategies []string         `json:"retention_strategies,omitempty"`
	MarketingIdeas      []string         `json:"marketing_ideas,omitempty"`

	SourceTotalSpent       decimal.Decimal `json:"source_total_spent"`
	SourcePurchaseCount    int             `json:"source_purchase_count"`
	SourceLastPurchaseDate string          `json:"source_last_purchase_date"`

	IsEnriching         bool   `json:"is_enriching"`
	IsFetchingRetention bool   `json:"is_fetching_retention"`
	IsFetchingMarketing bool   `json:"is_fetching_marketing"`
	Error               string `json:"error,omitempty"`
}

// Clone returns a deep copy, so callers can hand customers out of the store
// without readers ever observing a half-applied update.
func (c *Customer) Clone() *Customer {
	clone := *c
	clone.Purchases = slices.Clone(c.Purchases)
	clone.RetentionStrategies = slices.Clone(c.RetentionStrategies)
	clone.MarketingIdeas = slices.Clone(c.MarketingIdeas)
	if c.PredictedValue != nil {
		predictedValue := *c.PredictedValue
		clone.PredictedValue = &predictedValue
	}
	return &clone
}

// SchemaError means the CSV file cannot be imported at all: the file is too
// short or the header row is missing a required column.
type SchemaError struct {
	MissingColumn string
	Reason        string
}

func (e *SchemaError) Error() string {
	if e.MissingColumn != "" {
		return fmt.Sprintf("missing required CSV column: %s. Ensure the header row is present and correct", e.MissingColumn)
	}
	return e.Reason
}

// FieldValidationError means one row carried an invalid field value. Per the
// all-or-nothing import contract it aborts the whole batch, so it identifies
// the offending row precisely.
type FieldValidationError struct {
	Field      string
	Value      string
	CustomerID string
	Name       string
	Row        int // 1-based row in the source file, header included
	Hint       string
}

func (e *FieldValidationError) Error() string {
	return fmt.Sprintf("invalid %s value %q for %s (ID: %s) at row %d: %s", e.Field, e.Value, e.Name, e.CustomerID, e.Row, e.Hint)
}
