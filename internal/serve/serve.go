package serve

import (
	"fmt"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	supporthttp "github.com/stellar/go-stellar-sdk/support/http"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/hereandnowai/customer-ltv-backend/internal/crashtracker"
	"github.com/hereandnowai/customer-ltv-backend/internal/data"
	"github.com/hereandnowai/customer-ltv-backend/internal/enrichment"
	"github.com/hereandnowai/customer-ltv-backend/internal/monitor"
	"github.com/hereandnowai/customer-ltv-backend/internal/serve/httperror"
	"github.com/hereandnowai/customer-ltv-backend/internal/serve/httphandler"
	"github.com/hereandnowai/customer-ltv-backend/internal/serve/middleware"
	"github.com/hereandnowai/customer-ltv-backend/internal/services"
)

const ServiceID = "serve"

type HTTPServerInterface interface {
	Run(conf supporthttp.Config)
}

type HTTPServer struct{}

func (h *HTTPServer) Run(conf supporthttp.Config) {
	supporthttp.Run(conf)
}

type ServeOptions struct {
	BaseURL            string
	Environment        string
	GitCommit          string
	Port               int
	Version            string
	MonitorService     monitor.MonitorServiceInterface
	CorsAllowedOrigins []string
	PredictorClient    enrichment.PredictorClient
	ExportHeaderPolicy services.ExportHeaderPolicy
	CrashTrackerClient crashtracker.CrashTrackerClient

	store             *data.CustomerStore
	importService     *services.ImportService
	enrichmentService *services.EnrichmentService
	exportService     *services.ExportService
}

// SetupDependencies uses the serve options to setup the dependencies for the server.
func (opts *ServeOptions) SetupDependencies() error {
	// Setup crash tracker:
	// Call crash tracker FlushEvents to flush buffered events before the server terminates
	defer opts.CrashTrackerClient.FlushEvents(2 * time.Second)
	// Call crash tracker Recover for recover from unhandled panics
	defer opts.CrashTrackerClient.Recover()
	// Set crash tracker LogAndReportErrors as DefaultReportErrorFunc
	httperror.SetDefaultReportErrorFunc(opts.CrashTrackerClient.LogAndReportErrors)

	if opts.PredictorClient == nil {
		return fmt.Errorf("predictor client cannot be nil")
	}

	opts.store = data.NewCustomerStore()
	opts.importService = services.NewImportService(opts.store, opts.MonitorService)
	opts.enrichmentService = services.NewEnrichmentService(opts.store, opts.PredictorClient, opts.MonitorService, opts.CrashTrackerClient)
	opts.exportService = services.NewExportService(opts.store, opts.ExportHeaderPolicy, opts.MonitorService)

	return nil
}

func Serve(opts ServeOptions, httpServer HTTPServerInterface) error {
	err := opts.SetupDependencies()
	if err != nil {
		return fmt.Errorf("error starting dependencies: %w", err)
	}

	// Start the server
	listenAddr := fmt.Sprintf(":%d", opts.Port)
	serverConfig := supporthttp.Config{
		ListenAddr:          listenAddr,
		Handler:             handleHTTP(opts),
		TCPKeepAlive:        time.Minute * 3,
		ShutdownGracePeriod: time.Second * 50,
		ReadTimeout:         time.Second * 5,
		WriteTimeout:        time.Second * 120,
		IdleTimeout:         time.Minute * 2,
		OnStarting: func() {
			log.Info("Starting Customer LTV Insights Server")
			log.Infof("Listening on %s, reachable at %s", listenAddr, opts.BaseURL)
		},
		OnStopping: func() {
			log.Info("Stopping Customer LTV Insights Server")
		},
	}
	httpServer.Run(serverConfig)
	return nil
}

func handleHTTP(o ServeOptions) *chi.Mux {
	mux := chi.NewMux()

	// Middleware
	mux.Use(middleware.CorsMiddleware(o.CorsAllowedOrigins))
	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.RealIP)
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.RecoverHandler)
	mux.Use(middleware.MetricsRequestHandler(o.MonitorService))

	mux.Get("/health", httphandler.HealthHandler{
		ReleaseID:       o.GitCommit,
		ServiceID:       ServiceID,
		Version:         o.Version,
		PredictorClient: o.PredictorClient,
	}.ServeHTTP)

	mux.Route("/customers", func(r chi.Router) {
		customerHandler := httphandler.CustomerHandler{
			Store:         o.store,
			ImportService: o.importService,
		}
		r.Get("/", customerHandler.GetCustomers)
		r.Post("/import", customerHandler.ImportCustomers)

		enrichmentHandler := httphandler.EnrichmentHandler{EnrichmentService: o.enrichmentService}
		r.Post("/enrichment", enrichmentHandler.EnrichAllCustomers)

		exportHandler := httphandler.ExportHandler{ExportService: o.exportService}
		r.Get("/export", exportHandler.ExportCustomers)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", customerHandler.GetCustomer)
			r.Post("/enrichment", enrichmentHandler.EnrichCustomer)
			r.Post("/retention-strategies", enrichmentHandler.GetRetentionStrategies)
			r.Post("/marketing-ideas", enrichmentHandler.GetMarketingIdeas)
		})
	})

	mux.Route("/statistics", func(r chi.Router) {
		statisticsHandler := httphandler.StatisticsHandler{Store: o.store}
		r.Get("/", statisticsHandler.GetStatistics)
	})

	return mux
}
