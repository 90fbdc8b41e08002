package cmd

import (
	"fmt"
	"go/types"

	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/config"
	"github.com/stellar/go-stellar-sdk/support/log"

	cmdUtils "github.com/hereandnowai/customer-ltv-backend/cmd/utils"
	"github.com/hereandnowai/customer-ltv-backend/internal/crashtracker"
	"github.com/hereandnowai/customer-ltv-backend/internal/enrichment"
	"github.com/hereandnowai/customer-ltv-backend/internal/monitor"
	"github.com/hereandnowai/customer-ltv-backend/internal/serve"
	"github.com/hereandnowai/customer-ltv-backend/internal/services"
)

type ServeCommand struct{}

type ServerServiceInterface interface {
	StartServe(opts serve.ServeOptions, httpServer serve.HTTPServerInterface)
	StartMetricsServe(opts serve.MetricsServeOptions, httpServer serve.HTTPServerInterface)
}

type ServerService struct{}

// Making sure that ServerService implements ServerServiceInterface
var _ ServerServiceInterface = (*ServerService)(nil)

func (s *ServerService) StartServe(opts serve.ServeOptions, httpServer serve.HTTPServerInterface) {
	err := serve.Serve(opts, httpServer)
	if err != nil {
		log.Fatalf("Error starting server: %s", err.Error())
	}
}

func (s *ServerService) StartMetricsServe(opts serve.MetricsServeOptions, httpServer serve.HTTPServerInterface) {
	err := serve.MetricsServe(opts, httpServer)
	if err != nil {
		log.Fatalf("Error starting metrics server: %s", err.Error())
	}
}

func (c *ServeCommand) Command(serverService ServerServiceInterface, monitorService monitor.MonitorServiceInterface) *cobra.Command {
	serveOpts := serve.ServeOptions{}
	configOpts := config.ConfigOptions{
		{
			Name:        "port",
			Usage:       "Port where the server will be listening on",
			OptType:     types.Int,
			ConfigKey:   &serveOpts.Port,
			FlagDefault: 8000,
			Required:    true,
		},
		{
			Name:           "cors-allowed-origins",
			Usage:          `Cors URLs that are allowed to access the endpoints, separated by ","`,
			OptType:        types.String,
			CustomSetValue: cmdUtils.SetCorsAllowedOrigins,
			ConfigKey:      &serveOpts.CorsAllowedOrigins,
			Required:       true,
		},
		{
			Name:           "export-header-policy",
			Usage:          `Whether the CSV export starts with a header row. Options: "emit-header", "no-header".`,
			OptType:        types.String,
			CustomSetValue: cmdUtils.SetConfigOptionExportHeaderPolicy,
			ConfigKey:      &serveOpts.ExportHeaderPolicy,
			FlagDefault:    string(services.ExportHeaderPolicyEmit),
			Required:       true,
		},
	}

	// predictor config options
	predictorOptions := enrichment.PredictorOptions{}
	configOpts = append(configOpts,
		&config.ConfigOption{
			Name:           "predictor-type",
			Usage:          fmt.Sprintf("Predictor Type. Options: %+v", enrichment.PredictorType("").All()),
			OptType:        types.String,
			CustomSetValue: cmdUtils.SetConfigOptionPredictorType,
			ConfigKey:      &predictorOptions.PredictorType,
			FlagDefault:    string(enrichment.PredictorTypeDryRun),
			Required:       true,
		},
		&config.ConfigOption{
			Name:      "gemini-api-key",
			Usage:     "The API key used to authenticate against the Gemini API.",
			OptType:   types.String,
			ConfigKey: &predictorOptions.GeminiAPIKey,
			Required:  false,
		},
		&config.ConfigOption{
			Name:        "gemini-model",
			Usage:       "The Gemini model used for predictions and suggestions.",
			OptType:     types.String,
			ConfigKey:   &predictorOptions.GeminiModel,
			FlagDefault: enrichment.DefaultGeminiModel,
			Required:    true,
		})

	// crash tracker options
	crashTrackerOptions := crashtracker.CrashTrackerOptions{}
	configOpts = append(configOpts,
		&config.ConfigOption{
			Name:           "crash-tracker-type",
			Usage:          `Crash tracker type. Options: "SENTRY", "DRY_RUN"`,
			OptType:        types.String,
			CustomSetValue: cmdUtils.SetConfigOptionCrashTrackerType,
			ConfigKey:      &crashTrackerOptions.CrashTrackerType,
			FlagDefault:    string(crashtracker.CrashTrackerTypeDryRun),
			Required:       true,
		})

	// metrics server options
	metricsServeOpts := serve.MetricsServeOptions{}
	configOpts = append(configOpts,
		&config.ConfigOption{
			Name:           "metrics-type",
			Usage:          `Metric monitor type. Options: "PROMETHEUS"`,
			OptType:        types.String,
			CustomSetValue: cmdUtils.SetConfigOptionMetricType,
			ConfigKey:      &metricsServeOpts.MetricType,
			FlagDefault:    "PROMETHEUS",
			Required:       true,
		},
		&config.ConfigOption{
			Name:        "metrics-port",
			Usage:       "Port where the metrics server will be listening on",
			OptType:     types.Int,
			ConfigKey:   &metricsServeOpts.Port,
			FlagDefault: 8002,
			Required:    true,
		})

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the Customer LTV Insights API",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.Parent().PersistentPreRun(cmd.Parent(), args)

			// Validate & ingest input parameters
			configOpts.Require()
			err := configOpts.SetValues()
			if err != nil {
				log.Fatalf("Error setting values of config options: %s", err.Error())
			}

			// Initializing monitor service
			metricOptions := monitor.MetricOptions{
				MetricType:  metricsServeOpts.MetricType,
				Environment: globalOptions.Environment,
			}

			err = monitorService.Start(metricOptions)
			if err != nil {
				log.Fatalf("Error creating monitor service: %s", err.Error())
			}

			// Inject crash tracker options dependencies
			globalOptions.PopulateCrashTrackerOptions(&crashTrackerOptions)

			// Inject server dependencies
			serveOpts.BaseURL = globalOptions.BaseURL
			serveOpts.Environment = globalOptions.Environment
			serveOpts.GitCommit = globalOptions.GitCommit
			serveOpts.Version = globalOptions.Version
			serveOpts.MonitorService = monitorService

			// Inject metrics server dependencies
			metricsServeOpts.MonitorService = monitorService
			metricsServeOpts.Environment = globalOptions.Environment
		},
		Run: func(cmd *cobra.Command, _ []string) {
			ctx := cmd.Context()

			// Setup the Crash Tracker client
			crashTrackerClient, err := crashtracker.GetClient(ctx, crashTrackerOptions)
			if err != nil {
				log.Ctx(ctx).Fatalf("error creating crash tracker client: %s", err.Error())
			}
			serveOpts.CrashTrackerClient = crashTrackerClient

			// Setup the Predictor client
			predictorClient, err := enrichment.GetClient(predictorOptions)
			if err != nil {
				log.Ctx(ctx).Fatalf("error creating predictor client: %s", err.Error())
			}
			serveOpts.PredictorClient = predictorClient

			// Starting Metrics Server (background job)
			go serverService.StartMetricsServe(metricsServeOpts, &serve.HTTPServer{})

			// Starting Application Server
			serverService.StartServe(serveOpts, &serve.HTTPServer{})
		},
	}
	err := configOpts.Init(cmd)
	if err != nil {
		log.Fatalf("Error initializing a config option: %s", err.Error())
	}

	return cmd
}
