package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haskel/gemmpick/internal/report"
	"github.com/haskel/gemmpick/internal/storage"
)

var showCmd = &cobra.Command{
	Use:   "show [report-file]",
	Short: "Print a saved report",
	Long: `Print the report saved by 'gemmpick analyze --save', or an archived report.

Examples:
  gemmpick show                 # Latest report
  gemmpick show --list          # Archived reports
  gemmpick show .gemmpick/reports/20260301T120000.000000000Z.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

var showList bool

func init() {
	showCmd.Flags().BoolVar(&showList, "list", false, "list archived reports")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	store := storage.New(cfg.Persistence.DataDir, log)
	out := cmd.OutOrStdout()

	if showList {
		history, err := store.History()
		if err != nil {
			return err
		}
		if len(history) == 0 {
			fmt.Fprintln(out, "No saved reports.")
			return nil
		}
		for _, path := range history {
			fmt.Fprintln(out, path)
		}
		return nil
	}

	var rep report.Report
	if len(args) > 0 {
		_, err = store.LoadFile(args[0], &rep)
	} else {
		_, err = store.Load(&rep)
	}
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w (run 'gemmpick analyze --save' first)", err)
	}
	if err != nil {
		return err
	}

	return report.NewPrinter(out, jsonOut).Report(&rep)
}
