package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/haskel/gemmpick/internal/config"
	"github.com/haskel/gemmpick/internal/dataset"
	"github.com/haskel/gemmpick/internal/logger"
)

var (
	// Global flags
	cfgFile string
	jsonOut bool
	verbose bool

	// Version info (set from main)
	Version = "0.1.0"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gemmpick",
	Short: "Pick GEMM backends from benchmark data",
	Long: `Gemmpick analyzes GEMM benchmark CSV files that compare the ck and rocblas
backends. It fits a ratio/delta regression, derives a decision threshold and
scores hand-written backend selection rules by the performance they lose.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// SetVersion sets the version for the CLI
func SetVersion(v string) {
	Version = v
	rootCmd.Version = v
}

// IsJSON returns whether JSON output is enabled
func IsJSON() bool {
	return jsonOut
}

// IsVerbose returns whether verbose output is enabled
func IsVerbose() bool {
	return verbose
}

// setup loads the configuration and builds the logger for a command.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Resolve(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	log := logger.NewWithWriter(cmd.ErrOrStderr(), level, cfg.Logging.Format)

	return cfg, log, nil
}

// loadRecords reads the files named on the command line, or the configured
// data files when none are given.
func loadRecords(cfg *config.Config, log *slog.Logger, args []string) ([]dataset.Record, []string, error) {
	files := args
	if len(files) == 0 {
		files = cfg.Data.Paths()
	}

	records, err := dataset.Load(files...)
	if err != nil {
		return nil, nil, err
	}

	log.Info("loaded records", "files", len(files), "records", len(records))
	return records, files, nil
}
