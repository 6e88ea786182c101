package cli

import (
	"github.com/spf13/cobra"

	"github.com/haskel/gemmpick/internal/cli/tui"
	"github.com/haskel/gemmpick/internal/decision/strategy"
)

var exploreCmd = &cobra.Command{
	Use:   "explore [files...]",
	Short: "Tune rule constants interactively",
	Long: `Launch a terminal explorer that re-scores large_k_ratio and large_k as their
constants are adjusted, and can run a threshold sweep at the current batch factor.

Examples:
  gemmpick explore
  gemmpick explore --step 0.5 gemm_mi250_64_half.csv`,
	RunE: runExplore,
}

var (
	exploreStep      float64
	exploreThreshold float64
	exploreKCutoff   int
)

func init() {
	exploreCmd.Flags().Float64Var(&exploreStep, "step", 1, "threshold increment per key press")
	exploreCmd.Flags().Float64Var(&exploreThreshold, "threshold", strategy.DefaultRatioThreshold, "starting large_k_ratio threshold")
	exploreCmd.Flags().IntVar(&exploreKCutoff, "k-cutoff", strategy.DefaultKCutoff, "starting large_k cutoff")
	rootCmd.AddCommand(exploreCmd)
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	records, files, err := loadRecords(cfg, log, args)
	if err != nil {
		return err
	}

	return tui.Run(tui.Config{
		Records:       records,
		Files:         files,
		Threshold:     exploreThreshold,
		BatchFactor:   cfg.Model.BatchFactor,
		KCutoff:       exploreKCutoff,
		ThresholdStep: exploreStep,
		Sweep:         cfg.Sweep.Thresholds,
		Workers:       cfg.Sweep.Workers,
		Logger:        log,
	})
}
