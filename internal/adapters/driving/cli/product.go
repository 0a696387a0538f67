package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sssmarthaat/haat/internal/core/domain"
)

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Browse and manage products",
	Long:  `List and view catalog products. Adding, editing, and deleting requires an admin session.`,
}

var productListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	Args:  cobra.NoArgs,
	RunE:  runProductList,
}

var productShowCmd = &cobra.Command{
	Use:   "show [product-id]",
	Short: "Show product details",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductShow,
}

var productAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a product",
	Long: `Adds a product to the catalog.

With --photo the image is resized and re-encoded before it is stored. With
--suggest the photo is also sent to the configured LLM, which proposes a
name, description, and category. Flags given explicitly win over the
suggestion. A failed suggestion is reported and the product is still added
if the required fields are present.`,
	Args: cobra.NoArgs,
	RunE: runProductAdd,
}

var productStockCmd = &cobra.Command{
	Use:   "stock [product-id] [size=qty ...]",
	Short: "Set product stock",
	Long: `Sets stock for a product.

Give size=qty pairs to set per-size stock; the total is derived from them.
Without pairs, --total sets the aggregate stock and clears per-size stock.

Examples:
  haat product stock 6f1c M=3 XL=5
  haat product stock 6f1c --total 12`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProductStock,
}

var productDeleteCmd = &cobra.Command{
	Use:   "delete [product-id]",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductDelete,
}

var (
	productListCategory string
	productListSlider   bool
	productListFlash    bool
	productListJSON     bool

	productName          string
	productDescription   string
	productCategory      string
	productPrice         float64
	productOriginalPrice float64
	productSizes         []string
	productStock         int
	productSlider        bool
	productFlash         bool
	productPhoto         string
	productSuggest       bool

	productStockTotal int
	productDeleteYes  bool
)

func init() {
	productListCmd.Flags().StringVarP(&productListCategory, "category", "c", "", "only products in this category")
	productListCmd.Flags().BoolVar(&productListSlider, "slider", false, "only products shown in the slider")
	productListCmd.Flags().BoolVar(&productListFlash, "flash", false, "only flash-offer products")
	productListCmd.Flags().BoolVar(&productListJSON, "json", false, "output products as JSON")

	productAddCmd.Flags().StringVar(&productName, "name", "", "product name")
	productAddCmd.Flags().StringVar(&productDescription, "description", "", "product description")
	productAddCmd.Flags().StringVar(&productCategory, "category", "", "category name")
	productAddCmd.Flags().Float64Var(&productPrice, "price", 0, "sale price")
	productAddCmd.Flags().Float64Var(&productOriginalPrice, "original-price", 0, "price before discount")
	productAddCmd.Flags().StringSliceVar(&productSizes, "sizes", nil, "comma separated sizes, e.g. M,L,XL")
	productAddCmd.Flags().IntVar(&productStock, "stock", 0, "stock per size, or total stock without sizes")
	productAddCmd.Flags().BoolVar(&productSlider, "slider", false, "show in the home slider")
	productAddCmd.Flags().BoolVar(&productFlash, "flash", false, "show in flash offers")
	productAddCmd.Flags().StringVar(&productPhoto, "photo", "", "path to a product photo")
	productAddCmd.Flags().BoolVar(&productSuggest, "suggest", false, "pre-fill fields from the photo using the LLM")

	productStockCmd.Flags().IntVar(&productStockTotal, "total", 0, "aggregate stock when no sizes are given")
	productDeleteCmd.Flags().BoolVarP(&productDeleteYes, "yes", "y", false, "skip confirmation")

	productCmd.AddCommand(productListCmd)
	productCmd.AddCommand(productShowCmd)
	productCmd.AddCommand(productAddCmd)
	productCmd.AddCommand(productStockCmd)
	productCmd.AddCommand(productDeleteCmd)
	rootCmd.AddCommand(productCmd)
}

func runProductList(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	products, err := catalogService.ListProducts(cmd.Context(), domain.ProductFilter{
		Category:       productListCategory,
		SliderOnly:     productListSlider,
		FlashOfferOnly: productListFlash,
	})
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}

	if productListJSON {
		data, err := json.MarshalIndent(products, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal products: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(products) == 0 {
		cmd.Println("No products found.")
		return nil
	}

	for i := range products {
		p := &products[i]
		cmd.Printf("  %s  %s\n", p.ID, p.Name)
		cmd.Printf("    %s  |  %s  |  stock %s\n", formatPrice(p.Price), p.Category, stockLabel(p))
	}
	cmd.Println()
	cmd.Printf("Total: %d products\n", len(products))
	return nil
}

func runProductShow(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	p, err := catalogService.GetProduct(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}

	cmd.Printf("ID:          %s\n", p.ID)
	cmd.Printf("Name:        %s\n", p.Name)
	cmd.Printf("Category:    %s\n", p.Category)
	cmd.Printf("Price:       %s\n", formatPrice(p.Price))
	if p.OriginalPrice > p.Price {
		cmd.Printf("Was:         %s\n", formatPrice(p.OriginalPrice))
	}
	cmd.Printf("Stock:       %s\n", stockLabel(p))
	if p.Description != "" {
		cmd.Printf("Description: %s\n", p.Description)
	}
	var flags []string
	if p.ShowInSlider {
		flags = append(flags, "slider")
	}
	if p.ShowInFlashOffer {
		flags = append(flags, "flash offer")
	}
	if len(flags) > 0 {
		cmd.Printf("Featured:    %s\n", strings.Join(flags, ", "))
	}
	cmd.Printf("Photo:       %s\n", photoLabel(p.ImageURL))
	cmd.Printf("Updated:     %s\n", humanize.Time(p.UpdatedAt))
	return nil
}

func runProductAdd(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}
	ctx := cmd.Context()
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	var draft domain.ProductDraft
	var imageURL string
	if productPhoto != "" {
		f, err := os.Open(productPhoto)
		if err != nil {
			return fmt.Errorf("failed to open photo: %w", err)
		}
		img, err := catalogService.NormalizePhoto(ctx, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("failed to process photo: %w", err)
		}
		imageURL = img.DataURI()

		if productSuggest {
			if productAnalyzer == nil || !productAnalyzer.Available() {
				cmd.Println("Suggestion skipped: no LLM configured. Run 'haat settings llm'.")
			} else if sug, err := productAnalyzer.Analyze(ctx, img); err != nil {
				cmd.Printf("Suggestion failed: %v\n", err)
			} else {
				draft = draft.ApplySuggestion(sug)
				cmd.Printf("Suggested: %s (%s)\n", sug.Name, sug.Category)
			}
		}
	} else if productSuggest {
		return errors.New("--suggest needs --photo")
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		draft.Name = productName
	}
	if flags.Changed("description") {
		draft.Description = productDescription
	}
	if flags.Changed("category") {
		draft.Category = productCategory
	}

	p := &domain.Product{
		Name:             draft.Name,
		Description:      draft.Description,
		Category:         draft.Category,
		Price:            productPrice,
		OriginalPrice:    productOriginalPrice,
		Sizes:            productSizes,
		ImageURL:         imageURL,
		ShowInSlider:     productSlider,
		ShowInFlashOffer: productFlash,
	}
	if len(productSizes) > 0 {
		p.SizeStock = make(map[string]int, len(productSizes))
		for _, size := range productSizes {
			p.SizeStock[size] = productStock
		}
	} else {
		p.StockQuantity = productStock
	}

	created, err := catalogService.CreateProduct(ctx, p)
	if err != nil {
		return fmt.Errorf("failed to add product: %w", err)
	}
	cmd.Printf("Added product %s: %s\n", created.ID, created.Name)
	return nil
}

func runProductStock(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}
	ctx := cmd.Context()
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	sizeStock, err := parseSizeStock(args[1:])
	if err != nil {
		return err
	}
	if len(sizeStock) == 0 && !cmd.Flags().Changed("total") {
		return errors.New("give size=qty pairs or --total")
	}

	p, err := catalogService.SetStock(ctx, args[0], productStockTotal, sizeStock)
	if err != nil {
		return fmt.Errorf("failed to set stock: %w", err)
	}
	cmd.Printf("Stock for %s: %s\n", p.Name, stockLabel(p))
	return nil
}

func runProductDelete(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}
	ctx := cmd.Context()
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	if !productDeleteYes && !confirm(cmd, cmd.InOrStdin(), fmt.Sprintf("Delete product %s?", args[0])) {
		cmd.Println("Aborted.")
		return nil
	}
	if err := catalogService.DeleteProduct(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	cmd.Printf("Deleted product %s\n", args[0])
	return nil
}

// parseSizeStock parses size=qty pairs.
func parseSizeStock(pairs []string) (map[string]int, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]int, len(pairs))
	for _, pair := range pairs {
		size, qty, ok := strings.Cut(pair, "=")
		size = strings.TrimSpace(size)
		if !ok || size == "" {
			return nil, fmt.Errorf("invalid stock %q: want size=qty", pair)
		}
		n, err := strconv.Atoi(strings.TrimSpace(qty))
		if err != nil {
			return nil, fmt.Errorf("invalid quantity in %q: %w", pair, err)
		}
		out[size] = n
	}
	return out, nil
}

// stockLabel shows the aggregate and, if present, the per-size breakdown.
func stockLabel(p *domain.Product) string {
	if len(p.SizeStock) == 0 {
		return strconv.Itoa(p.StockQuantity)
	}
	sizes := make([]string, 0, len(p.SizeStock))
	for size := range p.SizeStock {
		sizes = append(sizes, size)
	}
	sort.Strings(sizes)
	parts := make([]string, 0, len(sizes))
	for _, size := range sizes {
		parts = append(parts, fmt.Sprintf("%s:%d", size, p.SizeStock[size]))
	}
	return fmt.Sprintf("%d (%s)", p.StockQuantity, strings.Join(parts, " "))
}

func photoLabel(dataURI string) string {
	if dataURI == "" {
		return "(none)"
	}
	return humanize.Bytes(uint64(len(dataURI))) + " inline"
}

func formatPrice(v float64) string {
	return domain.DefaultCurrencyPrefix + " " + humanize.FormatFloat("#,###.##", v)
}
