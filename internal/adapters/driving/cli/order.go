package cli

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sssmarthaat/haat/internal/adapters/driving/browser"
	"github.com/sssmarthaat/haat/internal/core/domain"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Place and manage orders",
	Long: `Place an order as a customer, or manage orders as an admin.

Order lifecycle:
  PENDING   -> confirm (with delivery charge) | cancel
  CONFIRMED -> deliver | cancel
  CANCELLED and DELIVERED are final.`,
}

var orderPlaceCmd = &cobra.Command{
	Use:   "place [product-id]",
	Short: "Place an order for a product",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrderPlace,
}

var orderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders, newest first",
	Args:  cobra.NoArgs,
	RunE:  runOrderList,
}

var orderShowCmd = &cobra.Command{
	Use:   "show [order-id]",
	Short: "Show order details",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrderShow,
}

var orderConfirmCmd = &cobra.Command{
	Use:   "confirm [order-id] [delivery-charge]",
	Short: "Confirm a pending order",
	Long: `Confirms a pending order with a delivery charge.
Without a charge argument you are prompted, with the inside-city charge from
the site settings as the default.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runOrderConfirm,
}

var orderCancelCmd = &cobra.Command{
	Use:   "cancel [order-id]",
	Short: "Cancel an order",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrderCancel,
}

var orderDeliverCmd = &cobra.Command{
	Use:   "deliver [order-id]",
	Short: "Mark a confirmed order as delivered",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrderDeliver,
}

var orderDeleteCmd = &cobra.Command{
	Use:   "delete [order-id]",
	Short: "Delete an order",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrderDelete,
}

var orderInvoiceCmd = &cobra.Command{
	Use:   "invoice [order-id]",
	Short: "Write the order's PDF invoice",
	Long:  `Writes the invoice to --output, or to Invoice_<customer>_<number>.pdf in the current directory.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runOrderInvoice,
}

var (
	orderName    string
	orderPhone   string
	orderAddress string
	orderSize    string
	orderQty     int
	orderSession string

	orderStatusFilter string
	orderDeleteYes    bool
	orderInvoiceOut   string
	orderInvoiceOpen  bool
)

func init() {
	orderPlaceCmd.Flags().StringVar(&orderName, "name", "", "customer name")
	orderPlaceCmd.Flags().StringVar(&orderPhone, "phone", "", "customer phone")
	orderPlaceCmd.Flags().StringVar(&orderAddress, "address", "", "delivery address")
	orderPlaceCmd.Flags().StringVar(&orderSize, "size", "", "size (defaults to the product's first size)")
	orderPlaceCmd.Flags().IntVarP(&orderQty, "quantity", "q", 1, "quantity")
	orderPlaceCmd.Flags().StringVar(&orderSession, "session", "", "chat session id to link")

	orderListCmd.Flags().StringVarP(&orderStatusFilter, "status", "s", "", "only orders with this status")
	orderDeleteCmd.Flags().BoolVarP(&orderDeleteYes, "yes", "y", false, "skip confirmation")
	orderInvoiceCmd.Flags().StringVarP(&orderInvoiceOut, "output", "o", "", "output file path")
	orderInvoiceCmd.Flags().BoolVar(&orderInvoiceOpen, "open", false, "open the invoice in the default PDF viewer")

	orderCmd.AddCommand(orderPlaceCmd)
	orderCmd.AddCommand(orderListCmd)
	orderCmd.AddCommand(orderShowCmd)
	orderCmd.AddCommand(orderConfirmCmd)
	orderCmd.AddCommand(orderCancelCmd)
	orderCmd.AddCommand(orderDeliverCmd)
	orderCmd.AddCommand(orderDeleteCmd)
	orderCmd.AddCommand(orderInvoiceCmd)
	rootCmd.AddCommand(orderCmd)
}

func runOrderPlace(cmd *cobra.Command, args []string) error {
	if checkoutService == nil {
		return errors.New("checkout service not configured")
	}

	order, err := checkoutService.PlaceOrder(cmd.Context(), args[0], domain.OrderDraft{
		CustomerName:  orderName,
		Phone:         orderPhone,
		Address:       orderAddress,
		SelectedSize:  orderSize,
		Quantity:      orderQty,
		ChatSessionID: orderSession,
	})
	if err != nil && !(errors.Is(err, domain.ErrStockNotUpdated) && order != nil) {
		return fmt.Errorf("failed to place order: %w", err)
	}

	cmd.Printf("Order placed: %s\n", order.ID)
	cmd.Printf("  %s x%d (%s)  %s\n", order.ProductName, order.Quantity, sizeLabel(order.SelectedSize), formatPrice(order.Subtotal()))
	cmd.Printf("  Chat session: %s\n", order.ChatSessionID)
	if err != nil {
		cmd.Printf("Warning: %v\n", err)
	}
	return nil
}

func runOrderList(cmd *cobra.Command, _ []string) error {
	if orderService == nil {
		return errors.New("order service not configured")
	}
	ctx := cmd.Context()
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	var filter domain.OrderStatus
	if orderStatusFilter != "" {
		filter = domain.OrderStatus(orderStatusFilter)
		if !filter.IsValid() {
			return fmt.Errorf("unknown status %q", orderStatusFilter)
		}
	}

	orders, err := orderService.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list orders: %w", err)
	}

	shown := 0
	for i := range orders {
		o := &orders[i]
		if filter != "" && o.Status != filter {
			continue
		}
		shown++
		cmd.Printf("  %s  %-9s  %s\n", o.ID, o.Status, humanize.Time(o.CreatedAt))
		cmd.Printf("    %s x%d (%s) for %s, %s\n", o.ProductName, o.Quantity, sizeLabel(o.SelectedSize), o.CustomerName, o.Phone)
	}
	if shown == 0 {
		cmd.Println("No orders found.")
		return nil
	}
	cmd.Println()
	cmd.Printf("Total: %d orders\n", shown)
	return nil
}

func runOrderShow(cmd *cobra.Command, args []string) error {
	if orderService == nil {
		return errors.New("order service not configured")
	}
	ctx := cmd.Context()
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	o, err := orderService.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get order: %w", err)
	}

	cmd.Printf("ID:        %s\n", o.ID)
	cmd.Printf("Status:    %s\n", o.Status)
	cmd.Printf("Placed:    %s\n", humanize.Time(o.CreatedAt))
	cmd.Printf("Customer:  %s\n", o.CustomerName)
	cmd.Printf("Phone:     %s\n", o.Phone)
	cmd.Printf("Address:   %s\n", o.Address)
	cmd.Printf("Product:   %s (%s)\n", o.ProductName, o.ProductID)
	cmd.Printf("Size:      %s\n", sizeLabel(o.SelectedSize))
	cmd.Printf("Quantity:  %d x %s\n", o.Quantity, formatPrice(o.ProductPrice))
	cmd.Printf("Subtotal:  %s\n", formatPrice(o.Subtotal()))
	if o.DeliveryCharge != nil {
		cmd.Printf("Delivery:  %s\n", formatPrice(*o.DeliveryCharge))
		cmd.Printf("Total:     %s\n", formatPrice(o.Subtotal()+*o.DeliveryCharge))
	}
	if o.ChatSessionID != "" {
		cmd.Printf("Chat:      %s\n", o.ChatSessionID)
	}
	return nil
}

func runOrderConfirm(cmd *cobra.Command, args []string) error {
	if orderService == nil {
		return errors.New("order service not configured")
	}
	ctx := cmd.Context()
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	charge := ""
	if len(args) == 2 {
		charge = args[1]
	} else {
		def := strconv.FormatFloat(domain.DefaultSiteSettings().DeliveryChargeInside, 'f', -1, 64)
		if siteSettingsService != nil {
			if s, err := siteSettingsService.Get(ctx); err == nil {
				def = strconv.FormatFloat(s.DeliveryChargeInside, 'f', -1, 64)
				cmd.Printf("Delivery charges: inside %s, outside %s\n",
					formatPrice(s.DeliveryChargeInside), formatPrice(s.DeliveryChargeOutside))
			}
		}
		cmd.Printf("Delivery charge [%s]: ", def)
		charge = readLine(bufio.NewReader(cmd.InOrStdin()))
		if charge == "" {
			charge = def
		}
	}

	o, err := orderService.Confirm(ctx, args[0], charge)
	if err != nil {
		return fmt.Errorf("failed to confirm order: %w", err)
	}
	cmd.Printf("Order %s confirmed with delivery charge %s\n", o.ID, formatPrice(*o.DeliveryCharge))
	return nil
}

func runOrderCancel(cmd *cobra.Command, args []string) error {
	if orderService == nil {
		return errors.New("order service not configured")
	}
	ctx := cmd.Context()
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	o, err := orderService.Cancel(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}
	cmd.Printf("Order %s cancelled\n", o.ID)
	return nil
}

func runOrderDeliver(cmd *cobra.Command, args []string) error {
	if orderService == nil {
		return errors.New("order service not configured")
	}
	ctx := cmd.Context()
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	o, err := orderService.MarkDelivered(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to mark order delivered: %w", err)
	}
	cmd.Printf("Order %s delivered\n", o.ID)
	return nil
}

func runOrderDelete(cmd *cobra.Command, args []string) error {
	if orderService == nil {
		return errors.New("order service not configured")
	}
	ctx := cmd.Context()
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	if !orderDeleteYes && !confirm(cmd, cmd.InOrStdin(), fmt.Sprintf("Delete order %s?", args[0])) {
		cmd.Println("Aborted.")
		return nil
	}
	if err := orderService.Delete(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	cmd.Printf("Deleted order %s\n", args[0])
	return nil
}

func runOrderInvoice(cmd *cobra.Command, args []string) error {
	if invoiceService == nil {
		return errors.New("invoice service not configured")
	}
	ctx := cmd.Context()
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	var buf bytes.Buffer
	inv, err := invoiceService.Write(ctx, args[0], &buf)
	if err != nil {
		return fmt.Errorf("failed to render invoice: %w", err)
	}

	path := orderInvoiceOut
	if path == "" {
		path = inv.FileName
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil { //nolint:gosec // invoices are not secret
		return fmt.Errorf("failed to write invoice: %w", err)
	}
	cmd.Printf("Invoice %s written to %s (%s)\n", inv.Number, path, humanize.Bytes(uint64(buf.Len())))
	if orderInvoiceOpen {
		if err := browser.Open(path); err != nil {
			cmd.Printf("Could not open the invoice: %v\n", err)
		}
	}
	return nil
}

func sizeLabel(size string) string {
	if size == "" {
		return "one size"
	}
	return size
}
