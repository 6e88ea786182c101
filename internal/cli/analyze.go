package cli

import (
	"github.com/spf13/cobra"

	"github.com/haskel/gemmpick/internal/config"
	"github.com/haskel/gemmpick/internal/report"
	"github.com/haskel/gemmpick/internal/storage"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Run the full analysis and print a report",
	Long: `Load benchmark files and report the positive-delta value range, the
ratio/delta regression with its threshold, and the loss of every configured rule.

Examples:
  gemmpick analyze                              # Configured data files
  gemmpick analyze gemm_mi250_1_half.csv        # A single file
  gemmpick analyze --bootstrap --save           # Add intervals and keep the report`,
	RunE: runAnalyze,
}

var (
	analyzeSave      bool
	analyzeBootstrap bool
	analyzeNoHost    bool
)

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "save the report to the data directory")
	analyzeCmd.Flags().BoolVar(&analyzeBootstrap, "bootstrap", false, "add bootstrap intervals on mean loss")
	analyzeCmd.Flags().BoolVar(&analyzeNoHost, "no-host", false, "omit host information")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	records, files, err := loadRecords(cfg, log, args)
	if err != nil {
		return err
	}

	opts := reportOptions(cfg, files)
	opts.CollectHost = !analyzeNoHost
	if analyzeBootstrap && opts.Bootstrap == nil {
		b := cfg.Bootstrap.BootstrapOptions()
		opts.Bootstrap = &b
	}

	rep, err := report.Build(cmd.Context(), records, opts, log)
	if err != nil {
		return err
	}

	if analyzeSave {
		path, err := storage.New(cfg.Persistence.DataDir, log).Save(rep)
		if err != nil {
			return err
		}
		log.Info("report saved", "path", path)
	}

	return report.NewPrinter(cmd.OutOrStdout(), jsonOut).Report(rep)
}

// reportOptions maps the configuration onto report options.
func reportOptions(cfg *config.Config, files []string) report.Options {
	opts := report.Options{
		Files:       files,
		BatchFactor: cfg.Model.BatchFactor,
		Window:      cfg.Model.PositiveRange,
		Rules:       cfg.Rules,
	}
	if cfg.Bootstrap.Enabled {
		b := cfg.Bootstrap.BootstrapOptions()
		opts.Bootstrap = &b
	}
	return opts
}
