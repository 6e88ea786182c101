package cli

import (
	"github.com/spf13/cobra"

	"github.com/haskel/gemmpick/internal/report"
)

var fitCmd = &cobra.Command{
	Use:   "fit [files...]",
	Short: "Fit the ratio/delta regression and derive its threshold",
	Long: `Compute the ratio of every record, summarize the ratios whose delta lies in
the positive window, fit delta1 against ratio and print the zero crossing.

Examples:
  gemmpick fit
  gemmpick fit --batch-factor 64 data.csv`,
	RunE: runFit,
}

var fitBatchFactor float64

func init() {
	fitCmd.Flags().Float64Var(&fitBatchFactor, "batch-factor", 0, "batch factor (default from config)")
	rootCmd.AddCommand(fitCmd)
}

func runFit(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	bf := cfg.Model.BatchFactor
	if cmd.Flags().Changed("batch-factor") {
		bf = fitBatchFactor
	}

	records, _, err := loadRecords(cfg, log, args)
	if err != nil {
		return err
	}

	fit, err := report.FitRecords(records, bf, cfg.Model.PositiveRange)
	if err != nil {
		return err
	}
	log.Debug("regression fitted", "slope", fit.Regression.Slope, "intercept", fit.Regression.Intercept)

	return report.NewPrinter(cmd.OutOrStdout(), jsonOut).Fit(fit)
}
