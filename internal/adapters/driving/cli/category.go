package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage product categories",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Args:  cobra.NoArgs,
	RunE:  runCategoryList,
}

var categoryAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryAdd,
}

var categoryDeleteCmd = &cobra.Command{
	Use:   "delete [category-id]",
	Short: "Delete a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryDelete,
}

var bannerCmd = &cobra.Command{
	Use:   "banner",
	Short: "Manage featured banners",
}

var bannerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List banners",
	Args:  cobra.NoArgs,
	RunE:  runBannerList,
}

var bannerAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a banner",
	Long:  `Adds a featured banner. The photo is required and is cropped to banner bounds.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runBannerAdd,
}

var bannerDeleteCmd = &cobra.Command{
	Use:   "delete [banner-id]",
	Short: "Delete a banner",
	Args:  cobra.ExactArgs(1),
	RunE:  runBannerDelete,
}

var (
	categoryPhoto string
	bannerPhoto   string
	bannerLink    string
)

func init() {
	categoryAddCmd.Flags().StringVar(&categoryPhoto, "photo", "", "path to a category photo")
	bannerAddCmd.Flags().StringVar(&bannerPhoto, "photo", "", "path to the banner image (required)")
	bannerAddCmd.Flags().StringVar(&bannerLink, "link", "", "link opened when the banner is tapped")

	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryDeleteCmd)
	rootCmd.AddCommand(categoryCmd)

	bannerCmd.AddCommand(bannerListCmd)
	bannerCmd.AddCommand(bannerAddCmd)
	bannerCmd.AddCommand(bannerDeleteCmd)
	rootCmd.AddCommand(bannerCmd)
}

func runCategoryList(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	cats, err := catalogService.ListCategories(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}
	if len(cats) == 0 {
		cmd.Println("No categories found.")
		return nil
	}
	for _, c := range cats {
		cmd.Printf("  %s  %s  %s\n", c.ID, c.Name, photoLabel(c.ImageURL))
	}
	return nil
}

func runCategoryAdd(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}
	ctx := cmd.Context()
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	photo, closeFn, err := openOptional(categoryPhoto)
	if err != nil {
		return err
	}
	defer closeFn()

	c, err := catalogService.CreateCategory(ctx, args[0], photo)
	if err != nil {
		return fmt.Errorf("failed to add category: %w", err)
	}
	cmd.Printf("Added category %s: %s\n", c.ID, c.Name)
	return nil
}

func runCategoryDelete(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}
	ctx := cmd.Context()
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	if err := catalogService.DeleteCategory(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	cmd.Printf("Deleted category %s\n", args[0])
	return nil
}

func runBannerList(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	banners, err := catalogService.ListBanners(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list banners: %w", err)
	}
	if len(banners) == 0 {
		cmd.Println("No banners found.")
		return nil
	}
	for _, b := range banners {
		cmd.Printf("  %s  %s\n", b.ID, b.Title)
		if b.Link != "" {
			cmd.Printf("    -> %s\n", b.Link)
		}
	}
	return nil
}

func runBannerAdd(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}
	ctx := cmd.Context()
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	photo, closeFn, err := openOptional(bannerPhoto)
	if err != nil {
		return err
	}
	defer closeFn()

	b, err := catalogService.CreateBanner(ctx, args[0], bannerLink, photo)
	if err != nil {
		return fmt.Errorf("failed to add banner: %w", err)
	}
	cmd.Printf("Added banner %s: %s\n", b.ID, b.Title)
	return nil
}

func runBannerDelete(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}
	ctx := cmd.Context()
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	if err := catalogService.DeleteBanner(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete banner: %w", err)
	}
	cmd.Printf("Deleted banner %s\n", args[0])
	return nil
}

// openOptional opens path, or returns a nil reader when path is empty.
func openOptional(path string) (io.Reader, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open photo: %w", err)
	}
	return f, func() { f.Close() }, nil
}
