package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sssmarthaat/haat/internal/adapters/driving/tui/components/status"
	"github.com/sssmarthaat/haat/internal/adapters/driving/tui/keymap"
	"github.com/sssmarthaat/haat/internal/adapters/driving/tui/messages"
	"github.com/sssmarthaat/haat/internal/adapters/driving/tui/styles"
	"github.com/sssmarthaat/haat/internal/adapters/driving/tui/views/catalog"
	"github.com/sssmarthaat/haat/internal/adapters/driving/tui/views/menu"
	"github.com/sssmarthaat/haat/internal/adapters/driving/tui/views/order"
	"github.com/sssmarthaat/haat/internal/adapters/driving/tui/views/orders"
	"github.com/sssmarthaat/haat/internal/core/domain"
)

// settingsStream carries the site settings subscription once it is open.
type settingsStream struct {
	updates <-chan domain.SiteSettings
	err     error
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles is shared by every view; a site accent change restyles them all.
	styles *styles.Styles
	keymap *keymap.KeyMap
	bar    *status.Bar

	menuView    *menu.View
	catalogView *catalog.View
	orderView   *order.View
	ordersView  *orders.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	settings *domain.SiteSettings
	updates  <-chan domain.SiteSettings

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, errors.New("creating app: ports are required")
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		bar:         status.NewBar(s, km),
		menuView:    menu.NewView(s, ports.AdminEnabled()),
		catalogView: catalog.NewView(s, ports.Catalog),
		orderView:   order.NewView(s, ports.Checkout, ports.Chat),
		ordersView:  orders.NewView(s, ports.Orders, ports.Gate),
		currentView: messages.ViewMenu,
		width:       80,
		height:      24,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("SS SMART HAAT"),
		a.watchSettings(),
	)
}

func (a *App) watchSettings() tea.Cmd {
	svc, ctx := a.ports.SiteSettings, a.ctx
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		updates, err := svc.Watch(ctx)
		return settingsStream{updates: updates, err: err}
	}
}

func waitForSettings(updates <-chan domain.SiteSettings) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-updates
		if !ok {
			return nil
		}
		return messages.SiteSettingsChanged{Settings: s}
	}
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message router
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.routeKey(msg)

	case settingsStream:
		if msg.err != nil {
			a.showError(fmt.Errorf("site settings unavailable: %w", msg.err))
			return a, nil
		}
		a.updates = msg.updates
		return a, waitForSettings(msg.updates)

	case messages.SiteSettingsChanged:
		a.applySettings(msg.Settings)
		if a.updates == nil {
			return a, nil
		}
		return a, waitForSettings(a.updates)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.ProductSelected:
		a.currentView = messages.ViewOrder
		a.bar.SetBindings(a.keymap.OrderHelp())
		a.bar.Clear()
		return a, a.orderView.Open(a.ctx, msg.Product)

	case messages.OrderPlaced:
		switch {
		case msg.Err == nil:
			a.bar.SetState(status.StateSuccess)
			a.bar.SetMessage("Order placed")
		case errors.Is(msg.Err, domain.ErrStockNotUpdated):
			a.bar.SetState(status.StateError)
			a.bar.SetMessage("Order placed, stock not updated")
		default:
			a.showError(fmt.Errorf("order not saved: %w", msg.Err))
		}
		a.orderView, cmd = a.orderView.Update(msg)
		return a, cmd

	case messages.OrderDismissed:
		if a.currentView == messages.ViewOrder && a.orderView.Dismissed(msg.Seq) {
			return a, a.switchTo(messages.ViewCatalog)
		}
		return a, nil

	case messages.OrderFormReset:
		if a.currentView != messages.ViewOrder {
			a.orderView.Reset()
		}
		return a, nil

	case messages.ThreadUpdated, messages.MessageSent:
		a.orderView, cmd = a.orderView.Update(msg)
		return a, cmd

	case messages.OrdersLoaded, messages.OrderUpdated, messages.AdminUnlocked:
		a.ordersView, cmd = a.ordersView.Update(msg)
		return a, cmd

	case messages.ProductsLoaded:
		a.catalogView, cmd = a.catalogView.Update(msg)
		if err := a.catalogView.Err(); err != nil {
			a.showError(err)
		} else if a.bar.State() == status.StateLoading {
			a.bar.SetState(status.StateReady)
		}
		return a, cmd

	case messages.ErrorOccurred:
		a.showError(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Unrouted messages, such as the admin gate check, go to the active view.
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewCatalog:
		a.catalogView, cmd = a.catalogView.Update(msg)
	case messages.ViewOrder:
		a.orderView, cmd = a.orderView.Update(msg)
	case messages.ViewAdminOrders:
		a.ordersView, cmd = a.ordersView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

func (a *App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewCatalog:
		a.catalogView, cmd = a.catalogView.Update(msg)
	case messages.ViewOrder:
		a.orderView, cmd = a.orderView.Update(msg)
	case messages.ViewAdminOrders:
		a.ordersView, cmd = a.ordersView.Update(msg)
	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc {
			return a, a.switchTo(messages.ViewMenu)
		}
	}
	return a, cmd
}

// switchTo leaves the current view and initialises the next one.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	// A failed order write stays visible after the form closes.
	keep := a.currentView == messages.ViewOrder && a.bar.State() == status.StateError
	leaving := a.leave()
	a.currentView = view
	if !keep {
		a.bar.Clear()
	}

	var cmd tea.Cmd
	switch view {
	case messages.ViewCatalog:
		a.bar.SetBindings(nil)
		if !keep {
			a.bar.SetState(status.StateLoading)
		}
		cmd = a.catalogView.Init()
	case messages.ViewAdminOrders:
		a.bar.SetBindings(a.keymap.AdminHelp())
		cmd = a.ordersView.Open(a.ctx)
	case messages.ViewOrder, messages.ViewMenu, messages.ViewHelp:
		a.bar.SetBindings(nil)
	}
	return tea.Batch(leaving, cmd)
}

// leave runs the exit hook of the current view.
func (a *App) leave() tea.Cmd {
	if a.currentView == messages.ViewOrder {
		return a.orderView.Close()
	}
	return nil
}

func (a *App) applySettings(s domain.SiteSettings) {
	a.settings = &s
	if s.Theme.Accent != "" {
		*a.styles = *styles.NewStyles(styles.DefaultTheme().WithAccent(s.Theme.Accent))
	}
	a.bar.SetSiteSettings(s)
	a.ordersView.SetDeliveryDefault(s.DeliveryChargeInside)
}

func (a *App) showError(err error) {
	a.err = err
	a.bar.SetState(status.StateError)
	a.bar.SetMessage(err.Error())
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewCatalog:
		body = a.catalogView.View()
	case messages.ViewOrder:
		body = a.orderView.View()
	case messages.ViewAdminOrders:
		body = a.ordersView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.menuView.View()
	}
	return body + "\n\n" + a.bar.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Shop:
  j/k, ↑/↓    Move between products
  enter       Order the selected product
  f           Toggle flash offers
  r           Reload

Order form:
  tab         Next field
  ←/→         Change size or quantity
  ctrl+s      Place order
  ctrl+t      Open or close chat (narrow terminals)
  enter       Send a chat message

Manage orders:
  c           Confirm with a delivery charge
  x           Cancel
  d           Mark delivered
  D           Delete

[esc] back to menu`
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Settings returns the latest site settings, or nil before the first snapshot.
func (a *App) Settings() *domain.SiteSettings {
	return a.settings
}

// StatusBar returns the status bar.
func (a *App) StatusBar() *status.Bar {
	return a.bar
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions and resizes every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	body := max(height-3, 1)
	a.menuView.SetDimensions(width, body)
	a.catalogView.SetDimensions(width, body)
	a.orderView.SetDimensions(width, body)
	a.ordersView.SetDimensions(width, body)
	a.bar.SetWidth(width)
}
