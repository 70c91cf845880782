package commands

import (
	"context"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/San2021331091/Smart-Cart-Backend/internal/domain"
	"github.com/San2021331091/Smart-Cart-Backend/internal/seed"
)

var (
	count    int
	randSeed uint64
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate a demo SmartCart catalog",
	Long: `Seed generates a deterministic product catalog spread over the storefront
categories. Write it to a JSON file for the in-memory catalog backend, or load
it into the products table used by the postgres backend.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&count, "count", "n", seed.DefaultCount, "number of products to generate")
	rootCmd.PersistentFlags().Uint64Var(&randSeed, "seed", seed.DefaultSeed, "random seed; the same seed yields the same catalog")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func generate() []domain.Product {
	return seed.Generate(rand.New(rand.NewPCG(randSeed, 0)), count)
}
