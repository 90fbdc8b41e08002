package cmd

import (
	"fmt"
	"go/types"
	"os"

	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/config"
	"github.com/stellar/go-stellar-sdk/support/log"

	cmdUtils "github.com/hereandnowai/customer-ltv-backend/cmd/utils"
	"github.com/hereandnowai/customer-ltv-backend/internal/crashtracker"
	"github.com/hereandnowai/customer-ltv-backend/internal/data"
	"github.com/hereandnowai/customer-ltv-backend/internal/enrichment"
	"github.com/hereandnowai/customer-ltv-backend/internal/services"
)

// ProcessCommand runs the whole pipeline once from the command line: import a
// CSV file, enrich every customer and write the enriched CSV out.
type ProcessCommand struct{}

func (c *ProcessCommand) Command() *cobra.Command {
	var inputPath, outputPath string
	var headerPolicy services.ExportHeaderPolicy
	predictorOptions := enrichment.PredictorOptions{}
	crashTrackerOptions := crashtracker.CrashTrackerOptions{}

	configOpts := config.ConfigOptions{
		{
			Name:      "input",
			Usage:     "Path of the customer CSV file to process.",
			OptType:   types.String,
			ConfigKey: &inputPath,
			Required:  true,
		},
		{
			Name:      "output",
			Usage:     "Path where the enriched CSV file will be written. Defaults to stdout.",
			OptType:   types.String,
			ConfigKey: &outputPath,
			Required:  false,
		},
		{
			Name:           "export-header-policy",
			Usage:          `Whether the CSV export starts with a header row. Options: "emit-header", "no-header".`,
			OptType:        types.String,
			CustomSetValue: cmdUtils.SetConfigOptionExportHeaderPolicy,
			ConfigKey:      &headerPolicy,
			FlagDefault:    string(services.ExportHeaderPolicyEmit),
			Required:       true,
		},
		{
			Name:           "predictor-type",
			Usage:          fmt.Sprintf("Predictor Type. Options: %+v", enrichment.PredictorType("").All()),
			OptType:        types.String,
			CustomSetValue: cmdUtils.SetConfigOptionPredictorType,
			ConfigKey:      &predictorOptions.PredictorType,
			FlagDefault:    string(enrichment.PredictorTypeDryRun),
			Required:       true,
		},
		{
			Name:      "gemini-api-key",
			Usage:     "The API key used to authenticate against the Gemini API.",
			OptType:   types.String,
			ConfigKey: &predictorOptions.GeminiAPIKey,
			Required:  false,
		},
		{
			Name:        "gemini-model",
			Usage:       "The Gemini model used for predictions and suggestions.",
			OptType:     types.String,
			ConfigKey:   &predictorOptions.GeminiModel,
			FlagDefault: enrichment.DefaultGeminiModel,
			Required:    true,
		},
		{
			Name:           "crash-tracker-type",
			Usage:          `Crash tracker type. Options: "SENTRY", "DRY_RUN"`,
			OptType:        types.String,
			CustomSetValue: cmdUtils.SetConfigOptionCrashTrackerType,
			ConfigKey:      &crashTrackerOptions.CrashTrackerType,
			FlagDefault:    string(crashtracker.CrashTrackerTypeDryRun),
			Required:       true,
		},
	}

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Import, enrich and export a customer CSV file in one run",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.Parent().PersistentPreRun(cmd.Parent(), args)

			configOpts.Require()
			if err := configOpts.SetValues(); err != nil {
				log.Fatalf("Error setting values of config options: %s", err.Error())
			}
		},
		Run: func(cmd *cobra.Command, _ []string) {
			ctx := cmd.Context()

			globalOptions.PopulateCrashTrackerOptions(&crashTrackerOptions)
			crashTrackerClient, err := crashtracker.GetClient(ctx, crashTrackerOptions)
			if err != nil {
				log.Ctx(ctx).Fatalf("error creating crash tracker client: %s", err.Error())
			}

			predictorClient, err := enrichment.GetClient(predictorOptions)
			if err != nil {
				log.Ctx(ctx).Fatalf("error creating predictor client: %s", err.Error())
			}

			store := data.NewCustomerStore()
			importService := services.NewImportService(store, nil)
			enrichmentService := services.NewEnrichmentService(store, predictorClient, nil, crashTrackerClient)
			exportService := services.NewExportService(store, headerPolicy, nil)

			file, err := os.Open(inputPath)
			if err != nil {
				log.Ctx(ctx).Fatalf("error opening input file: %s", err.Error())
			}
			defer file.Close()

			total, err := importService.ImportFromCSV(ctx, file)
			if err != nil {
				log.Ctx(ctx).Fatalf("error importing customers: %s", err.Error())
			}
			log.Ctx(ctx).Infof("Imported %d customers from %s", total, inputPath)

			summary, err := enrichmentService.EnrichAll(ctx, func(current, total int) {
				log.Ctx(ctx).Infof("Enrichment progress: %d/%d", current, total)
			})
			if err != nil {
				log.Ctx(ctx).Fatalf("error enriching customers: %s", err.Error())
			}
			if summary.Failed > 0 {
				log.Ctx(ctx).Warnf("Enrichment finished with %d failures: %s", summary.Failed, summary.Notice)
			}

			content := exportService.ExportToCSV(ctx)
			if outputPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), content)
				return
			}
			if err = os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
				log.Ctx(ctx).Fatalf("error writing output file: %s", err.Error())
			}
			log.Ctx(ctx).Infof("Wrote enriched CSV to %s", outputPath)
		},
	}
	if err := configOpts.Init(cmd); err != nil {
		log.Fatalf("Error initializing a config option: %s", err.Error())
	}

	return cmd
}
