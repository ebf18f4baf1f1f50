package cmd

import (
	"fmt"

	"github.com/Lumos-Labs-HQ/relgen/internal/config"
	"github.com/Lumos-Labs-HQ/relgen/internal/gen"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	genScale       int
	genSeed        int64
	genBatchSize   int
	genOutput      string
	genCompression string
	genOverwrite   bool
	genNoPatterns  bool
	genEnvFile     string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the synthetic dataset as parquet artifacts",
	Long: `Generate customers, products, transactions, and interactions at the
configured scale, with deterministic seed patterns injected, and persist them
as batched parquet artifacts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if genEnvFile != "" {
			if err := godotenv.Load(genEnvFile); err != nil {
				return fmt.Errorf("failed to load env file %s: %w", genEnvFile, err)
			}
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cmd.Flags().Changed("scale") {
			if !config.IsSupportedScale(genScale) {
				return fmt.Errorf("unsupported scale %d, supported: %v", genScale, config.SupportedScales)
			}
			cfg.CustomerCount = genScale
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = genSeed
		}
		if cmd.Flags().Changed("batch-size") {
			cfg.BatchSize = genBatchSize
		}
		if cmd.Flags().Changed("output") {
			cfg.OutputDir = genOutput
		}
		if cmd.Flags().Changed("compression") {
			cfg.Compression = genCompression
		}
		if genOverwrite {
			cfg.OverwriteExisting = true
		}
		if genNoPatterns {
			cfg.IncludePatterns = false
		}

		color.Cyan("🎲 Generating %d customers (seed %d) into %s...", cfg.CustomerCount, cfg.Seed, cfg.OutputDir)

		report, err := gen.NewPipeline(cfg).Run()
		if err != nil {
			return err
		}

		fmt.Println()
		if failed := report.FailedBatches(); len(failed) > 0 {
			color.Yellow("⚠️  Generated %d rows in %s with %d failed batches:", report.TotalRows(), report.Duration.Round(10_000_000), len(failed))
			for _, name := range failed {
				color.Yellow("   - %s", name)
			}
		} else {
			color.Green("✅ Generated %d rows in %s", report.TotalRows(), report.Duration.Round(10_000_000))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().IntVar(&genScale, "scale", 1_000_000, "Customer count (1000000, 10000000, or 100000000)")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 42, "Master random seed")
	generateCmd.Flags().IntVar(&genBatchSize, "batch-size", 100_000, "Rows per parquet chunk")
	generateCmd.Flags().StringVar(&genOutput, "output", "data", "Output directory")
	generateCmd.Flags().StringVar(&genCompression, "compression", "snappy", "Parquet compression (snappy, gzip, zstd, lz4, none)")
	generateCmd.Flags().BoolVar(&genOverwrite, "overwrite", false, "Purge and regenerate existing artifacts")
	generateCmd.Flags().BoolVar(&genNoPatterns, "no-patterns", false, "Skip seed pattern injection")
	generateCmd.Flags().StringVar(&genEnvFile, "env-file", "", "Load environment from file before reading config")
}
