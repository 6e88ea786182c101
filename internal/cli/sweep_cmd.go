package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haskel/gemmpick/internal/report"
	"github.com/haskel/gemmpick/internal/sweep"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep [files...]",
	Short: "Search large_k_ratio constants that minimize mean loss",
	Long: `Brute-force the large_k_ratio threshold, or the threshold and batch factor
together, over the ranges in the sweep config section. The first candidate
with the lowest mean loss wins.

Examples:
  gemmpick sweep                               # Thresholds at the model batch factor
  gemmpick sweep --mode grid --workers 8       # Thresholds x batch factors
  gemmpick sweep --from 0 --to 256 --json`,
	RunE: runSweep,
}

var (
	sweepMode        string
	sweepWorkers     int
	sweepBatchFactor float64
	sweepFrom        int
	sweepTo          int
)

func init() {
	sweepCmd.Flags().StringVar(&sweepMode, "mode", "threshold", "sweep mode: threshold or grid")
	sweepCmd.Flags().IntVarP(&sweepWorkers, "workers", "w", 0, "concurrent scorers (default from config)")
	sweepCmd.Flags().Float64Var(&sweepBatchFactor, "batch-factor", 0, "batch factor for threshold mode; grid mode rejects it and uses sweep.batch_factors (default from config)")
	sweepCmd.Flags().IntVar(&sweepFrom, "from", 0, "first threshold (default from config)")
	sweepCmd.Flags().IntVar(&sweepTo, "to", 0, "end of threshold range, exclusive (default from config)")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	workers := cfg.Sweep.Workers
	if flags.Changed("workers") {
		workers = sweepWorkers
	}
	bf := cfg.Model.BatchFactor
	if flags.Changed("batch-factor") {
		if sweepMode == "grid" {
			return fmt.Errorf("--batch-factor applies to threshold mode only, grid mode sweeps sweep.batch_factors")
		}
		bf = sweepBatchFactor
	}
	thresholds := cfg.Sweep.Thresholds
	if flags.Changed("from") {
		thresholds.Start = sweepFrom
	}
	if flags.Changed("to") {
		thresholds.End = sweepTo
	}
	if err := thresholds.Validate(); err != nil {
		return fmt.Errorf("thresholds: %w", err)
	}

	records, _, err := loadRecords(cfg, log, args)
	if err != nil {
		return err
	}

	s := sweep.New(workers, log)

	var outcome *sweep.Outcome
	switch sweepMode {
	case "threshold":
		outcome, err = s.Thresholds(cmd.Context(), records, thresholds, bf)
	case "grid":
		outcome, err = s.Grid(cmd.Context(), records, thresholds, cfg.Sweep.BatchFactors)
	default:
		return fmt.Errorf("unknown sweep mode: %q (valid: threshold, grid)", sweepMode)
	}
	if err != nil {
		return err
	}

	return report.NewPrinter(cmd.OutOrStdout(), jsonOut).Sweep(outcome)
}
