package services

import (
	"context"
	"fmt"
	"time"

	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/hereandnowai/customer-ltv-backend/internal/crashtracker"
	"github.com/hereandnowai/customer-ltv-backend/internal/data"
	"github.com/hereandnowai/customer-ltv-backend/internal/enrichment"
	"github.com/hereandnowai/customer-ltv-backend/internal/monitor"
)

// ProgressFunc is invoked after each customer finishes during a bulk run,
// successes and failures alike.
type ProgressFunc func(current, total int)

// BulkEnrichmentSummary is the aggregate outcome of one EnrichAll run.
type BulkEnrichmentSummary struct {
	Total     int    `json:"total"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	Notice    string `json:"notice,omitempty"`
}

// EnrichmentService drives the predictor over the customer collection. Runs
// are strictly sequential, one customer at a time, and never retried
// automatically.
type EnrichmentService struct {
	Store              *data.CustomerStore
	PredictorClient    enrichment.PredictorClient
	MonitorService     monitor.MonitorServiceInterface
	CrashTrackerClient crashtracker.CrashTrackerClient
}

func NewEnrichmentService(store *data.CustomerStore, predictorClient enrichment.PredictorClient, monitorService monitor.MonitorServiceInterface, crashTrackerClient crashtracker.CrashTrackerClient) *EnrichmentService {
	return &EnrichmentService{
		Store:              store,
		PredictorClient:    predictorClient,
		MonitorService:     monitorService,
		CrashTrackerClient: crashTrackerClient,
	}
}

// EnrichCustomer predicts value and segment for one customer. The per-customer
// error message reflects only the most recent attempt: it is cleared when the
// attempt starts and set again only if this attempt fails.
func (s *EnrichmentService) EnrichCustomer(ctx context.Context, customerID string) (*data.Customer, error) {
	customer, err := s.Store.Update(customerID, func(c *data.Customer) {
		c.IsEnriching = true
	})
	if err != nil {
		return nil, fmt.Errorf("marking customer as enriching: %w", err)
	}

	prediction, predictErr := s.predictValue(ctx, customer)

	if predictErr != nil {
		failureMsg := fmt.Sprintf("Failed to analyze %s: %s", customer.Name, predictErr)
		customer, err = s.Store.Update(customerID, func(c *data.Customer) {
			c.IsEnriching = false
			c.Error = failureMsg
		})
		if err != nil {
			return nil, fmt.Errorf("recording enrichment failure: %w", err)
		}
		s.Store.SetNotice(failureMsg)
		return customer, fmt.Errorf("predicting value for customer %s: %w", customerID, predictErr)
	}

	customer, err = s.Store.Update(customerID, func(c *data.Customer) {
		c.IsEnriching = false
		c.PredictedValue = &prediction.Value
		c.Segment = prediction.Segment
	})
	if err != nil {
		return nil, fmt.Errorf("recording enrichment result: %w", err)
	}

	return customer, nil
}

// EnrichAll runs the predictor over every eligible customer, in collection
// order. A customer is eligible when it has no prediction yet and no other
// enrichment is marked in flight for it. There is no cancellation: once
// started, the run visits every eligible customer, and failures, a cancelled
// context included, stay isolated per customer. The most recent failure
// message becomes the aggregate notice.
func (s *EnrichmentService) EnrichAll(ctx context.Context, progress ProgressFunc) (*BulkEnrichmentSummary, error) {
	var eligible []*data.Customer
	for _, customer := range s.Store.GetAll() {
		if customer.PredictedValue == nil && !customer.IsEnriching {
			eligible = append(eligible, customer)
		}
	}

	summary := &BulkEnrichmentSummary{Total: len(eligible)}
	if len(eligible) == 0 {
		summary.Notice = "No customers are eligible for analysis"
		s.Store.SetNotice(summary.Notice)
		log.Ctx(ctx).Info(summary.Notice)
		return summary, nil
	}

	log.Ctx(ctx).Infof("Starting bulk enrichment of %d customers", len(eligible))
	for i, customer := range eligible {
		if _, err := s.EnrichCustomer(ctx, customer.ID); err != nil {
			summary.Failed++
			log.Ctx(ctx).Errorf("Error enriching customer %s: %s", customer.ID, err)
		} else {
			summary.Succeeded++
		}

		if progress != nil {
			progress(i+1, len(eligible))
		}
	}

	if summary.Failed > 0 {
		summary.Notice = s.Store.Notice()
	}
	log.Ctx(ctx).Infof("Bulk enrichment finished: %d succeeded, %d failed", summary.Succeeded, summary.Failed)

	return summary, nil
}

// FetchRetentionStrategies asks the predictor for retention strategies. The
// customer must have been enriched first, the advice prompt is anchored on the
// predicted value and segment.
func (s *EnrichmentService) FetchRetentionStrategies(ctx context.Context, customerID string) (*data.Customer, error) {
	return s.fetchAdvice(ctx, customerID, adviceKindRetention)
}

// FetchMarketingIdeas asks the predictor for personalized marketing ideas,
// under the same contract as FetchRetentionStrategies.
func (s *EnrichmentService) FetchMarketingIdeas(ctx context.Context, customerID string) (*data.Customer, error) {
	return s.fetchAdvice(ctx, customerID, adviceKindMarketing)
}

type adviceKind string

const (
	adviceKindRetention adviceKind = "retention_strategies"
	adviceKindMarketing adviceKind = "marketing_ideas"
)

func (s *EnrichmentService) fetchAdvice(ctx context.Context, customerID string, kind adviceKind) (*data.Customer, error) {
	customer, err := s.Store.Get(customerID)
	if err != nil {
		return nil, fmt.Errorf("getting customer for %s: %w", kind, err)
	}
	if customer.PredictedValue == nil {
		return nil, fmt.Errorf("customer %s must be analyzed before requesting %s", customerID, kind)
	}

	customer, err = s.Store.Update(customerID, func(c *data.Customer) {
		if kind == adviceKindRetention {
			c.IsFetchingRetention = true
		} else {
			c.IsFetchingMarketing = true
		}
	})
	if err != nil {
		return nil, fmt.Errorf("marking customer as fetching %s: %w", kind, err)
	}

	started := time.Now()
	var suggestions []string
	var adviceErr error
	if kind == adviceKindRetention {
		suggestions, adviceErr = s.PredictorClient.RetentionStrategies(ctx, *customer.PredictedValue, customer.Segment)
	} else {
		suggestions, adviceErr = s.PredictorClient.MarketingIdeas(ctx, *customer.PredictedValue, customer.Segment)
	}
	s.monitorPredictorRequest(ctx, string(kind), time.Since(started), adviceErr)

	if adviceErr != nil {
		s.crashTrackerLog(ctx, adviceErr, fmt.Sprintf("Cannot fetch %s for customer %s", kind, customerID))
		failureMsg := fmt.Sprintf("Failed to fetch suggestions for %s: %s", customer.Name, adviceErr)
		customer, err = s.Store.Update(customerID, func(c *data.Customer) {
			c.IsFetchingRetention = false
			c.IsFetchingMarketing = false
			c.Error = failureMsg
		})
		if err != nil {
			return nil, fmt.Errorf("recording %s failure: %w", kind, err)
		}
		s.Store.SetNotice(failureMsg)
		return customer, fmt.Errorf("fetching %s for customer %s: %w", kind, customerID, adviceErr)
	}

	customer, err = s.Store.Update(customerID, func(c *data.Customer) {
		if kind == adviceKindRetention {
			c.IsFetchingRetention = false
			c.RetentionStrategies = suggestions
		} else {
			c.IsFetchingMarketing = false
			c.MarketingIdeas = suggestions
		}
	})
	if err != nil {
		return nil, fmt.Errorf("recording %s result: %w", kind, err)
	}

	return customer, nil
}

func (s *EnrichmentService) predictValue(ctx context.Context, customer *data.Customer) (*enrichment.Prediction, error) {
	started := time.Now()
	prediction, err := s.PredictorClient.PredictValue(ctx, customer)
	s.monitorPredictorRequest(ctx, "predict_value", time.Since(started), err)

	if err != nil {
		s.crashTrackerLog(ctx, err, fmt.Sprintf("Cannot predict value for customer %s", customer.ID))
		return nil, err
	}
	return prediction, nil
}

func (s *EnrichmentService) monitorPredictorRequest(ctx context.Context, operation string, duration time.Duration, reqErr error) {
	if s.MonitorService == nil {
		return
	}

	err := s.MonitorService.MonitorHistogram(duration.Seconds(), monitor.PredictorRequestDurationTag, monitor.PredictorRequestLabels{Operation: operation}.ToMap())
	if err != nil {
		log.Ctx(ctx).Errorf("Error trying to monitor predictor request duration: %s", err)
	}

	outcome := "success"
	if reqErr != nil {
		outcome = "failure"
	}
	err = s.MonitorService.MonitorCounters(monitor.EnrichmentsCounterTag, monitor.EnrichmentLabels{Operation: operation, Outcome: outcome}.ToMap())
	if err != nil {
		log.Ctx(ctx).Errorf("Error trying to monitor enrichments counter: %s", err)
	}
}

func (s *EnrichmentService) crashTrackerLog(ctx context.Context, err error, msg string) {
	if s.CrashTrackerClient == nil {
		log.Ctx(ctx).Errorf("%s: %s", msg, err)
		return
	}
	s.CrashTrackerClient.LogAndReportErrors(ctx, err, msg)
}
