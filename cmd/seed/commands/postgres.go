package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/San2021331091/Smart-Cart-Backend/internal/config"
	"github.com/San2021331091/Smart-Cart-Backend/internal/seed"
	"github.com/San2021331091/Smart-Cart-Backend/pkg/database"
	"github.com/San2021331091/Smart-Cart-Backend/pkg/logger"
)

var batchSize int

var postgresCmd = &cobra.Command{
	Use:   "postgres",
	Short: "Load the catalog into the products table",
	Long: `Create the products table when missing and upsert the generated catalog.
Connection settings come from the POSTGRES_* environment variables shared with
the assistant service. Re-running with the same seed leaves the table unchanged.`,
	RunE: runPostgres,
}

func init() {
	postgresCmd.Flags().IntVar(&batchSize, "batch-size", seed.DefaultBatchSize, fmt.Sprintf("rows per INSERT statement (at most %d)", seed.MaxBatchSize))
	rootCmd.AddCommand(postgresCmd)
}

func runPostgres(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.NewWithWriter("catalog-seed", logLevel, cmd.ErrOrStderr())
	ctx := cmd.Context()

	pgCfg := cfg.Postgres()
	pool, err := database.NewPostgresPool(ctx, &pgCfg, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	if err := seed.EnsureSchema(ctx, pool); err != nil {
		return err
	}

	start := time.Now()
	products := generate()
	written, err := seed.Upsert(ctx, pool, products, batchSize)
	if err != nil {
		return err
	}

	log.Info("catalog loaded",
		slog.String("database", pgCfg.DBName),
		slog.Int("products", len(products)),
		slog.Int64("rows_written", written),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}
