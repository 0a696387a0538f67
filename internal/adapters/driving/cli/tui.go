package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sssmarthaat/haat/internal/adapters/driving/tui"
	"github.com/sssmarthaat/haat/internal/core/ports/driving"
)

// TUIConfig holds configuration for the TUI command.
type TUIConfig struct {
	// Gate unlocks the orders view. It keeps its session in memory, so
	// quitting the TUI locks it again.
	Gate driving.AdminGate
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive storefront",
	Long: `Launch the interactive terminal storefront.

Browse products, fill in the order form and chat with the shop. On
terminals at least 100 columns wide the chat sits beside the form;
on narrower ones ctrl+t opens it.

The "Manage orders" entry asks for the admin password.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select / Send
  Tab      - Next field
  Ctrl+S   - Place order
  Esc      - Back
  Ctrl+C   - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func tuiPorts() *tui.Ports {
	ports := &tui.Ports{
		Catalog:      catalogService,
		Checkout:     checkoutService,
		Chat:         chatService,
		Orders:       orderService,
		SiteSettings: siteSettingsService,
		Gate:         adminGate,
	}
	if tuiConfig != nil && tuiConfig.Gate != nil {
		ports.Gate = tuiConfig.Gate
	}
	return ports
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(tuiPorts())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	p := tea.NewProgram(app.WithContext(cmd.Context()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
