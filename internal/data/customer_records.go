package data

import (
	"context"
	"slices"
	"strings"

	"github.com/stellar/go-stellar-sdk/support/log"
)

// CustomerRecord is one raw CSV data row, keyed by lower-cased header name,
// before any validation happened.
type CustomerRecord map[string]string

// RequiredCSVHeaders are the columns an import file must carry. Order in the
// file is irrelevant and extra columns are ignored.
var RequiredCSVHeaders = []string{"id", "name", "email", "total_spent", "purchase_count", "last_purchase_date"}

// ParseCustomerRecords tokenizes the raw file into one record per surviving
// data line, in file order.
//
// This is deliberately not a general RFC-4180 parser: fields cannot contain
// literal newlines, and a data line whose field count mismatches the header is
// skipped with a diagnostic rather than failing the file.
func ParseCustomerRecords(ctx context.Context, raw string) ([]CustomerRecord, error) {
	lines := strings.Split(strings.ReplaceAll(strings.TrimSpace(raw), "\r\n", "\n"), "\n")
	if len(lines) < 2 {
		return nil, &SchemaError{Reason: "CSV must have a header row and at least one data row"}
	}

	headers := strings.Split(lines[0], ",")
	for i, header := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(header))
	}
	for _, required := range RequiredCSVHeaders {
		if !slices.Contains(headers, required) {
			return nil, &SchemaError{MissingColumn: required}
		}
	}

	records := make([]CustomerRecord, 0, len(lines)-1)
	for i, line := range lines[1:] {
		values := tokenizeLine(line)
		if len(values) != len(headers) {
			log.Ctx(ctx).Warnf("Line %d has %d values, expected %d. Skipping line: %q", i+2, len(values), len(headers), line)
			continue
		}

		record := make(CustomerRecord, len(headers))
		for j, header := range headers {
			record[header] = unescapeField(values[j])
		}
		records = append(records, record)
	}

	return records, nil
}

// tokenizeLine splits one data line on commas, honoring double quotes: a
// quote toggles quoted mode and commas inside quotes belong to the field.
func tokenizeLine(line string) []string {
	var values []string
	var field strings.Builder
	inQuotes := false

	for _, char := range line {
		switch {
		case char == '"':
			inQuotes = !inQuotes
			field.WriteRune(char)
		case char == ',' && !inQuotes:
			values = append(values, strings.TrimSpace(field.String()))
			field.Reset()
		default:
			field.WriteRune(char)
		}
	}
	values = append(values, strings.TrimSpace(field.String()))

	return values
}

// unescapeField strips the surrounding quotes of a quoted field and collapses
// doubled quotes into one literal quote.
func unescapeField(value string) string {
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		value = value[1 : len(value)-1]
	}
	return strings.ReplaceAll(value, `""`, `"`)
}
