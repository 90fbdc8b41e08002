package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/hereandnowai/customer-ltv-backend/internal/data"
	"github.com/hereandnowai/customer-ltv-backend/internal/monitor"
)

// ExportHeaderPolicy controls whether the export file starts with the header
// row. The historical export format carries it, so that is the default.
type ExportHeaderPolicy string

const (
	ExportHeaderPolicyEmit ExportHeaderPolicy = "emit-header"
	ExportHeaderPolicyNone ExportHeaderPolicy = "no-header"
)

func ParseExportHeaderPolicy(policyStr string) (ExportHeaderPolicy, error) {
	policy := ExportHeaderPolicy(strings.ToLower(policyStr))
	switch policy {
	case ExportHeaderPolicyEmit, ExportHeaderPolicyNone:
		return policy, nil
	default:
		return "", fmt.Errorf("invalid export header policy %q", policyStr)
	}
}

var exportHeaders = []string{
	"id", "name", "email", "joinDate", "totalSpent", "purchaseCount", "lastPurchaseDate",
	"predictedLTV", "segment",
	"retentionStrategy1", "retentionStrategy2", "retentionStrategy3",
	"marketingIdea1", "marketingIdea2", "marketingIdea3",
}

// ExportService renders the current collection back to CSV, enrichment
// results included.
type ExportService struct {
	Store          *data.CustomerStore
	HeaderPolicy   ExportHeaderPolicy
	MonitorService monitor.MonitorServiceInterface
}

func NewExportService(store *data.CustomerStore, headerPolicy ExportHeaderPolicy, monitorService monitor.MonitorServiceInterface) *ExportService {
	if headerPolicy == "" {
		headerPolicy = ExportHeaderPolicyEmit
	}
	return &ExportService{Store: store, HeaderPolicy: headerPolicy, MonitorService: monitorService}
}

// ExportToCSV renders every customer in collection order. An empty collection
// produces an empty string, not a lone header row. Rows are joined with CRLF
// and the output never ends with a trailing line break.
func (s *ExportService) ExportToCSV(ctx context.Context) string {
	customers := s.Store.GetAll()
	if len(customers) == 0 {
		return ""
	}

	rows := make([]string, 0, len(customers)+1)
	if s.HeaderPolicy != ExportHeaderPolicyNone {
		rows = append(rows, strings.Join(exportHeaders, ","))
	}
	for _, customer := range customers {
		rows = append(rows, exportRow(customer))
	}

	if s.MonitorService != nil {
		if err := s.MonitorService.MonitorCounters(monitor.CustomerExportsCounterTag, nil); err != nil {
			log.Ctx(ctx).Errorf("Error trying to monitor exports counter: %s", err)
		}
	}
	log.Ctx(ctx).Infof("Exported %d customers", len(customers))

	return strings.Join(rows, "\r\n")
}

func exportRow(customer *data.Customer) string {
	predictedValue := ""
	if customer.PredictedValue != nil {
		predictedValue = customer.PredictedValue.StringFixed(2)
	}

	fields := []string{
		customer.ID,
		customer.Name,
		customer.Email,
		customer.JoinDate,
		customer.SourceTotalSpent.StringFixed(2),
		fmt.Sprintf("%d", customer.SourcePurchaseCount),
		customer.SourceLastPurchaseDate,
		predictedValue,
		// The segment is always exported, Unknown included; only the
		// predicted value is held back until an enrichment ran.
		string(customer.Segment),
	}
	fields = append(fields, paddedTriple(customer.RetentionStrategies)...)
	fields = append(fields, paddedTriple(customer.MarketingIdeas)...)

	escaped := make([]string, len(fields))
	for i, field := range fields {
		escaped[i] = escapeCSVField(field)
	}
	return strings.Join(escaped, ",")
}

// paddedTriple returns exactly three entries, truncating or padding with
// empty strings, so every row carries the same column count.
func paddedTriple(values []string) []string {
	triple := make([]string, 3)
	for i := 0; i < 3 && i < len(values); i++ {
		triple[i] = values[i]
	}
	return triple
}

// escapeCSVField quotes a field only when it has to: when it contains a
// comma, a double quote or a line break. Quotes inside are doubled.
func escapeCSVField(field string) string {
	if !strings.ContainsAny(field, ",\"\n\r") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
