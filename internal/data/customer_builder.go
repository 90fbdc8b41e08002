package data

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	minAcceptedYear = 1900
	maxAcceptedYear = 2100

	missingFieldPlaceholder = "N/A"
)

// acceptedDateLayouts are the formats we try, in order, when normalizing
// last_purchase_date. The first match wins.
var acceptedDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"02-Jan-2006",
}

// BuildCustomer validates and normalizes one raw record into a Customer.
// rowIndex is 0-based over the data rows; errors report the 1-based source row
// (header included), matching what a user sees in their spreadsheet.
func BuildCustomer(record CustomerRecord, rowIndex int) (*Customer, error) {
	id := record["id"]
	if id == "" {
		id = fmt.Sprintf("gen-row-%d", rowIndex)
	}
	name := record["name"]
	if name == "" {
		name = missingFieldPlaceholder
	}
	email := record["email"]
	if email == "" {
		email = missingFieldPlaceholder
	}
	sourceRow := rowIndex + 2

	totalSpent, err := decimal.NewFromString(strings.TrimSpace(record["total_spent"]))
	if err != nil || totalSpent.IsNegative() {
		return nil, &FieldValidationError{
			Field: "total_spent", Value: record["total_spent"], Name: name, CustomerID: id, Row: sourceRow,
			Hint: "must be a non-negative number",
		}
	}

	purchaseCount, err := strconv.Atoi(strings.TrimSpace(record["purchase_count"]))
	if err != nil || purchaseCount < 0 {
		return nil, &FieldValidationError{
			Field: "purchase_count", Value: record["purchase_count"], Name: name, CustomerID: id, Row: sourceRow,
			Hint: "must be a non-negative integer",
		}
	}

	normalizedDate, err := normalizeDate(record["last_purchase_date"])
	if err != nil {
		return nil, &FieldValidationError{
			Field: "last_purchase_date", Value: record["last_purchase_date"], Name: name, CustomerID: id, Row: sourceRow,
			Hint: err.Error(),
		}
	}

	return &Customer{
		ID:        id,
		Name:      name,
		Email:     email,
		JoinDate:  normalizedDate,
		Purchases: synthesizePurchases(totalSpent, purchaseCount, normalizedDate),
		Segment:   UnknownSegment,

		SourceTotalSpent:       totalSpent,
		SourcePurchaseCount:    purchaseCount,
		SourceLastPurchaseDate: record["last_purchase_date"],
	}, nil
}

// BuildCustomers builds the whole batch. Any row failure aborts the entire
// import and no customers are returned; downstream consumers depend on the
// all-or-nothing semantics.
func BuildCustomers(records []CustomerRecord) ([]*Customer, error) {
	customers := make([]*Customer, 0, len(records))
	for i, record := range records {
		customer, err := BuildCustomer(record, i)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, nil
}

// synthesizePurchases derives a representative purchase history from the
// aggregate CSV columns. The source file has no itemized transactions, so a
// single purchase dated at the last purchase date stands in for the history
// the predictor needs.
func synthesizePurchases(totalSpent decimal.Decimal, purchaseCount int, date string) []Purchase {
	if !totalSpent.IsPositive() {
		return nil
	}

	if purchaseCount > 0 {
		return []Purchase{{
			ID:     uuid.NewString(),
			Date:   date,
			Amount: totalSpent.Div(decimal.NewFromInt(int64(purchaseCount))),
			Items:  []string{fmt.Sprintf("%d items (averaged)", purchaseCount)},
		}}
	}

	return []Purchase{{
		ID:     uuid.NewString(),
		Date:   date,
		Amount: totalSpent,
	}}
}

func normalizeDate(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("must be a date in a common, unambiguous format (e.g. YYYY-MM-DD, MM/DD/YYYY)")
	}

	for _, layout := range acceptedDateLayouts {
		parsed, err := time.Parse(layout, trimmed)
		if err != nil {
			continue
		}
		if year := parsed.Year(); year < minAcceptedYear || year > maxAcceptedYear {
			return "", fmt.Errorf("unlikely year (%d), check the date format", year)
		}
		return parsed.Format("2006-01-02"), nil
	}

	return "", fmt.Errorf("must be a date in a common, unambiguous format (e.g. YYYY-MM-DD, MM/DD/YYYY)")
}
