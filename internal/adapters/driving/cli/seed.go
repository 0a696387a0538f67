package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sssmarthaat/haat/internal/adapters/driven/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed [catalog.yaml]",
	Short: "Import categories, banners, and products from YAML",
	Long: `Imports a catalog fixture. Image paths are resolved relative to the file.
Categories that already exist are skipped; products and banners are always added.
The import stops at the first failure and reports what was written.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}
	ctx := cmd.Context()
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	fixture, err := seed.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load fixture: %w", err)
	}

	importer := seed.NewImporter(catalogService, siteSettingsService)
	res, err := importer.Import(ctx, fixture, filepath.Dir(args[0]))
	cmd.Printf("Categories: %d added, %d skipped\n", res.Categories, res.SkippedCategories)
	cmd.Printf("Banners:    %d added\n", res.Banners)
	cmd.Printf("Products:   %d added\n", res.Products)
	if res.SettingsUpdated {
		cmd.Println("Site settings updated.")
	}
	if err != nil {
		return fmt.Errorf("import stopped: %w", err)
	}
	return nil
}
