package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/San2021331091/Smart-Cart-Backend/internal/seed"
	"github.com/San2021331091/Smart-Cart-Backend/pkg/logger"
)

var outFile string

var jsonCmd = &cobra.Command{
	Use:   "json",
	Short: "Write the catalog as a JSON seed file",
	Long: `Write the generated catalog as a JSON array. Point CATALOG_SEED_FILE at the
result to serve it with CATALOG_BACKEND=memory. Use --out - for stdout.`,
	RunE: runJSON,
}

func init() {
	jsonCmd.Flags().StringVarP(&outFile, "out", "o", "products.json", "output file, or - for stdout")
	rootCmd.AddCommand(jsonCmd)
}

func runJSON(cmd *cobra.Command, _ []string) error {
	log := logger.NewWithWriter("catalog-seed", logLevel, cmd.ErrOrStderr())
	products := generate()

	var w io.Writer = cmd.OutOrStdout()
	if outFile != "-" {
		f, err := os.Create(outFile)
		if err != nil {
			return fmt.Errorf("create %s: %w", outFile, err)
		}
		defer f.Close()
		w = f
	}

	if err := seed.WriteJSON(w, products); err != nil {
		return err
	}

	log.Info("catalog written",
		slog.String("file", outFile),
		slog.Int("products", len(products)),
	)
	return nil
}
