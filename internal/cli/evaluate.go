package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haskel/gemmpick/internal/decision/strategy"
	"github.com/haskel/gemmpick/internal/report"
	"github.com/haskel/gemmpick/internal/statistics"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [files...]",
	Short: "Score decision rules by the performance they lose",
	Long: `Score one rule given on the command line, or every configured rule, against
the benchmark records. Loss is the delta of each record where the rule picked
the slower backend.

Examples:
  gemmpick evaluate                                         # Configured rules
  gemmpick evaluate --rule large_k --k-cutoff 4096
  gemmpick evaluate --rule large_k_ratio --threshold 8 --batch-factor 64 --bootstrap`,
	RunE: runEvaluate,
}

var (
	evalRule        string
	evalThreshold   float64
	evalBatchFactor float64
	evalKCutoff     int
	evalBootstrap   bool
)

func init() {
	evaluateCmd.Flags().StringVar(&evalRule, "rule", "", "rule type: large_k or large_k_ratio (default: configured rules)")
	evaluateCmd.Flags().Float64Var(&evalThreshold, "threshold", strategy.DefaultRatioThreshold, "large_k_ratio threshold")
	evaluateCmd.Flags().Float64Var(&evalBatchFactor, "batch-factor", 0, "large_k_ratio batch factor (default from config)")
	evaluateCmd.Flags().IntVar(&evalKCutoff, "k-cutoff", strategy.DefaultKCutoff, "large_k cutoff")
	evaluateCmd.Flags().BoolVar(&evalBootstrap, "bootstrap", false, "add bootstrap intervals on mean loss")
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	specs := cfg.Rules
	if evalRule != "" {
		spec := strategy.Spec{
			Type:        strategy.Type(evalRule),
			Threshold:   evalThreshold,
			BatchFactor: cfg.Model.BatchFactor,
			KCutoff:     evalKCutoff,
		}
		if cmd.Flags().Changed("batch-factor") {
			spec.BatchFactor = evalBatchFactor
		}
		specs = []strategy.Spec{spec}
	}

	rules, err := strategy.NewAll(specs)
	if err != nil {
		return err
	}
	if len(rules) == 0 {
		return fmt.Errorf("no rules to evaluate")
	}

	var bootstrap *statistics.Options
	if evalBootstrap || cfg.Bootstrap.Enabled {
		b := cfg.Bootstrap.BootstrapOptions()
		bootstrap = &b
	}

	records, _, err := loadRecords(cfg, log, args)
	if err != nil {
		return err
	}

	results := make([]report.RuleReport, 0, len(rules))
	for _, rule := range rules {
		rr, err := report.EvaluateRule(rule, records, bootstrap)
		if err != nil {
			return err
		}
		results = append(results, *rr)
	}

	return report.NewPrinter(cmd.OutOrStdout(), jsonOut).Rules(results)
}
