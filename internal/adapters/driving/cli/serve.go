package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sssmarthaat/haat/internal/adapters/driven/photoinbox"
	"github.com/sssmarthaat/haat/internal/adapters/driving/httpapi"
	"github.com/sssmarthaat/haat/internal/core/domain"
)

var (
	serveAddr  string
	serveInbox string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the REST API",
	Long: `Runs the storefront and admin REST API until interrupted.

Admin routes under /api/admin expect the admin password in the
X-Admin-Password header.

With --inbox, photos dropped into that directory are resized and analyzed,
and the suggested listing is printed. Nothing is added to the catalog; use
'haat product add --photo' to commit one.

On shutdown a summary of AI and store call latencies is printed.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from settings)")
	serveCmd.Flags().StringVar(&serveInbox, "inbox", "", "photo inbox directory to watch")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if catalogService == nil || adminGate == nil {
		return errors.New("catalog service not configured")
	}

	addr := serveAddr
	if addr == "" && settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			addr = s.HTTP.Addr
		}
	}
	if addr == "" {
		addr = domain.DefaultHTTPAddr
	}

	server, err := httpapi.NewServer(&httpapi.Ports{
		Catalog:      catalogService,
		Checkout:     checkoutService,
		Chat:         chatService,
		Orders:       orderService,
		Invoices:     invoiceService,
		SiteSettings: siteSettingsService,
		Gate:         adminGate,
		Stats:        statsService,
		Analyzer:     productAnalyzer,
		Stylist:      styleAssistant,
	})
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(cmd.Context())

	g.Go(func() error {
		return server.Run(ctx, addr)
	})
	cmd.Printf("Serving on http://%s\n", addr)

	if serveInbox != "" {
		out := cmd.OutOrStdout()
		suggester := photoinbox.NewSuggester(catalogService, productAnalyzer)
		watcher := photoinbox.NewWatcher(serveInbox, 0, suggester.Handler(func(s *photoinbox.Suggestion) {
			printSuggestion(out, s)
		}))
		g.Go(func() error {
			return watcher.Run(ctx)
		})
		cmd.Printf("Watching %s for product photos\n", watcher.Dir())
	}

	err = g.Wait()
	printLatencies(cmd)
	return err
}

func printSuggestion(w io.Writer, s *photoinbox.Suggestion) {
	fmt.Fprintf(w, "\nPhoto: %s (%s)\n", s.Path, photoLabel(s.Image.DataURI()))
	if s.AnalyzeErr != nil {
		fmt.Fprintf(w, "  No suggestion: %v\n", s.AnalyzeErr)
		return
	}
	fmt.Fprintf(w, "  Name:        %s\n", s.Draft.Name)
	fmt.Fprintf(w, "  Category:    %s\n", s.Draft.Category)
	fmt.Fprintf(w, "  Description: %s\n", s.Draft.Description)
	fmt.Fprintf(w, "  Add with: haat product add --photo %q --suggest --price <price>\n", s.Path)
}

func printLatencies(cmd *cobra.Command) {
	if statsService == nil {
		return
	}
	summaries := statsService.Latencies()
	if len(summaries) == 0 {
		return
	}
	cmd.Println()
	cmd.Println("Call latencies")
	cmd.Printf("  %-24s %7s %10s %10s %10s %10s\n", "operation", "count", "p50", "p95", "p99", "max")
	for _, l := range summaries {
		cmd.Printf("  %-24s %7d %10s %10s %10s %10s\n", l.Operation, l.Count, l.P50, l.P95, l.P99, l.Max)
	}
}
