package services

import (
	"context"
	"fmt"
	"io"

	"github.com/dimchansky/utfbom"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/hereandnowai/customer-ltv-backend/internal/data"
	"github.com/hereandnowai/customer-ltv-backend/internal/monitor"
)

// ImportService turns an uploaded CSV file into the canonical customer
// collection. Imports are all-or-nothing: any parse or validation failure
// leaves the store empty, never partially populated.
type ImportService struct {
	Store          *data.CustomerStore
	MonitorService monitor.MonitorServiceInterface
}

func NewImportService(store *data.CustomerStore, monitorService monitor.MonitorServiceInterface) *ImportService {
	return &ImportService{Store: store, MonitorService: monitorService}
}

// ImportFromCSV reads the whole file, parses and validates it, and replaces
// the current collection with the result. Returns the number of imported
// customers.
func (s *ImportService) ImportFromCSV(ctx context.Context, reader io.Reader) (int, error) {
	raw, err := io.ReadAll(utfbom.SkipOnly(reader))
	if err != nil {
		s.Store.ReplaceAll(nil)
		return 0, fmt.Errorf("reading CSV file: %w", err)
	}

	customers, err := s.buildCustomers(ctx, string(raw))
	if err != nil {
		// The previous collection is discarded even on failure, so callers
		// never keep working against data that no longer matches the file
		// they believe they imported.
		s.Store.ReplaceAll(nil)
		s.monitorCounter(ctx, monitor.CustomerImportsFailedCounterTag)
		return 0, err
	}

	s.Store.ReplaceAll(customers)
	s.monitorCounter(ctx, monitor.CustomerImportsCounterTag)
	log.Ctx(ctx).Infof("Imported %d customers", len(customers))

	return len(customers), nil
}

func (s *ImportService) buildCustomers(ctx context.Context, raw string) ([]*data.Customer, error) {
	records, err := data.ParseCustomerRecords(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("parsing customer records: %w", err)
	}

	customers, err := data.BuildCustomers(records)
	if err != nil {
		return nil, fmt.Errorf("building customers: %w", err)
	}

	return customers, nil
}

func (s *ImportService) monitorCounter(ctx context.Context, tag monitor.MetricTag) {
	if s.MonitorService == nil {
		return
	}
	if err := s.MonitorService.MonitorCounters(tag, nil); err != nil {
		log.Ctx(ctx).Errorf("Error trying to monitor counter %s: %s", tag, err)
	}
}
