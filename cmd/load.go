package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Lumos-Labs-HQ/relgen/internal/batch"
	"github.com/Lumos-Labs-HQ/relgen/internal/loader"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

var (
	loadDataDir  string
	loadProvider string
	loadURLEnv   string
	loadInsert   int
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Bulk-load generated parquet artifacts into a SQL database",
	Long: `Read the parquet artifacts produced by generate and insert them into
PostgreSQL, MySQL, or SQLite in bounded multi-row batches. Tables are created
if missing; files that keep failing after retries are reported and skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		url := os.Getenv(loadURLEnv)
		if url == "" {
			return fmt.Errorf("database URL not set, export %s or pass --url-env", loadURLEnv)
		}

		db, err := loader.OpenDB(loadProvider, url)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		color.Cyan("📦 Loading artifacts from %s into %s...", loadDataDir, loadProvider)

		l := loader.New(db, loadProvider, loadInsert, batch.DefaultPolicy)
		results, err := l.LoadDir(context.Background(), loadDataDir)
		if err != nil {
			return err
		}

		fmt.Println()
		var totalRows int64
		var totalFailed int
		for _, result := range results {
			totalRows += result.Rows
			totalFailed += len(result.FailedFiles)
			if len(result.FailedFiles) > 0 {
				color.Yellow("  %s: %d rows, %d failed files", result.Table, result.Rows, len(result.FailedFiles))
			} else {
				color.Green("  %s: %d rows", result.Table, result.Rows)
			}
		}
		if totalFailed > 0 {
			color.Yellow("⚠️  Loaded %d rows with %d failed files", totalRows, totalFailed)
		} else {
			color.Green("✅ Loaded %d rows", totalRows)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().StringVar(&loadDataDir, "data-dir", "data", "Directory containing generated artifacts")
	loadCmd.Flags().StringVar(&loadProvider, "provider", "postgresql", "Database provider (postgresql, mysql, sqlite)")
	loadCmd.Flags().StringVar(&loadURLEnv, "url-env", "DATABASE_URL", "Environment variable holding the database URL")
	loadCmd.Flags().IntVar(&loadInsert, "insert-batch", 1000, "Rows per INSERT statement")
}
