package config

import (
	"github.com/haskel/gemmpick/internal/decision/model"
	"github.com/haskel/gemmpick/internal/decision/strategy"
	"github.com/haskel/gemmpick/internal/statistics"
	"github.com/haskel/gemmpick/internal/sweep"
)

func Default() *Config {
	return &Config{
		Data: DataConfig{
			Files: []string{
				"gemm_mi250_1_half.csv",
				"gemm_mi250_64_half.csv",
			},
		},
		Model: ModelConfig{
			BatchFactor:   model.DefaultBatchFactor,
			PositiveRange: model.DefaultWindow,
		},
		Rules: strategy.Defaults(),
		Sweep: SweepConfig{
			Thresholds: sweep.Range{
				Start: 0,
				End:   2048,
				Step:  1,
			},
			BatchFactors: sweep.Range{
				Start: 1,
				End:   64,
				Step:  1,
			},
			Workers: 0,
		},
		Bootstrap: BootstrapConfig{
			Enabled:         false,
			ConfidenceLevel: 0.95,
			Iterations:      statistics.DefaultBootstrapIterations,
			Seed:            42,
		},
		Persistence: PersistenceConfig{
			DataDir: ".gemmpick",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
