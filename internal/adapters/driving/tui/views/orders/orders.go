// Package orders provides the admin order management view for the TUI.
package orders

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/sssmarthaat/haat/internal/adapters/driving/tui/components/input"
	"github.com/sssmarthaat/haat/internal/adapters/driving/tui/components/list"
	"github.com/sssmarthaat/haat/internal/adapters/driving/tui/messages"
	"github.com/sssmarthaat/haat/internal/adapters/driving/tui/styles"
	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driving"
)

// Mode is what the view is currently asking for.
type Mode int

const (
	// ModeLocked prompts for the admin password.
	ModeLocked Mode = iota
	// ModeList browses orders.
	ModeList
	// ModeCharge prompts for the delivery charge before confirming.
	ModeCharge
	// ModeConfirm asks y/N before a cancel, deliver or delete.
	ModeConfirm
)

type action int

const (
	actionCancel action = iota
	actionDeliver
	actionDelete
)

func (a action) verb() string {
	switch a {
	case actionCancel:
		return "Cancel"
	case actionDeliver:
		return "Mark as delivered"
	default:
		return "Delete"
	}
}

type gateChecked struct {
	err error
}

// View lists orders and applies admin actions to them.
type View struct {
	styles *styles.Styles
	orders driving.OrderAdminService
	gate   driving.AdminGate

	ctx      context.Context
	mode     Mode
	password *input.Field
	charge   *input.Field
	pending  action

	list     []domain.Order
	selected int
	updates  <-chan []domain.Order
	watching bool

	defaultCharge float64
	notice        string
	err           error
	width         int
	height        int
}

// NewView creates a new admin orders view.
func NewView(s *styles.Styles, orders driving.OrderAdminService, gate driving.AdminGate) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:        s,
		orders:        orders,
		gate:          gate,
		ctx:           context.Background(),
		password:      input.NewPasswordField(s, "Password"),
		charge:        input.NewField(s, "Delivery", "charge"),
		defaultCharge: domain.DefaultSiteSettings().DeliveryChargeInside,
		width:         80,
		height:        24,
	}
}

// Open checks the admin session; the orders load once it is unlocked.
func (v *View) Open(ctx context.Context) tea.Cmd {
	v.ctx = ctx
	v.notice = ""
	v.err = nil
	if v.mode != ModeList {
		v.mode = ModeLocked
	}
	gate := v.gate
	return func() tea.Msg {
		if gate == nil {
			return gateChecked{err: errors.New("admin gate not available")}
		}
		return gateChecked{err: gate.Require(ctx)}
	}
}

// SetDeliveryDefault sets the charge pre-filled when confirming.
func (v *View) SetDeliveryDefault(charge float64) {
	v.defaultCharge = charge
}

func (v *View) unlock() tea.Cmd {
	v.mode = ModeList
	v.password.Reset()
	v.password.Blur()
	if v.watching || v.orders == nil {
		return v.reload()
	}
	updates, err := v.orders.Watch(v.ctx)
	if err != nil {
		return v.reload()
	}
	v.watching = true
	v.updates = updates
	return waitForOrders(updates)
}

func waitForOrders(updates <-chan []domain.Order) tea.Cmd {
	return func() tea.Msg {
		orders, ok := <-updates
		if !ok {
			return nil
		}
		return messages.OrdersLoaded{Orders: orders}
	}
}

func (v *View) reload() tea.Cmd {
	svc, ctx := v.orders, v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.OrdersLoaded{Err: errors.New("order service not available")}
		}
		orders, err := svc.List(ctx)
		return messages.OrdersLoaded{Orders: orders, Err: err}
	}
}

// Update handles messages for the orders view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case gateChecked:
		if msg.err == nil {
			return v, v.unlock()
		}
		v.mode = ModeLocked
		return v, v.password.Focus()

	case messages.AdminUnlocked:
		if msg.Err != nil {
			v.password.Reset()
			if errors.Is(msg.Err, domain.ErrAccessDenied) {
				v.err = domain.ErrAccessDenied
			} else {
				v.err = msg.Err
			}
			return v, nil
		}
		v.err = nil
		return v, v.unlock()

	case messages.OrdersLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.list = msg.Orders
		if v.selected >= len(v.list) {
			v.selected = max(len(v.list)-1, 0)
		}
		if v.updates == nil {
			return v, nil
		}
		return v, waitForOrders(v.updates)

	case messages.OrderUpdated:
		v.mode = ModeList
		if msg.Err != nil {
			v.err = msg.Err
			v.notice = ""
			return v, nil
		}
		v.err = nil
		if v.watching {
			return v, nil
		}
		return v, v.reload()

	case tea.KeyMsg:
		switch v.mode {
		case ModeLocked:
			return v.handleLockedKey(msg)
		case ModeCharge:
			return v.handleChargeKey(msg)
		case ModeConfirm:
			return v.handleConfirmKey(msg)
		case ModeList:
			return v.handleListKey(msg)
		}
	}
	return v, nil
}

func (v *View) handleLockedKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, toMenu
	case "enter":
		gate, ctx, password := v.gate, v.ctx, v.password.Value()
		return v, func() tea.Msg {
			if gate == nil {
				return messages.AdminUnlocked{Err: errors.New("admin gate not available")}
			}
			return messages.AdminUnlocked{Err: gate.Login(ctx, password)}
		}
	}
	var cmd tea.Cmd
	v.password, cmd = v.password.Update(msg)
	return v, cmd
}

func toMenu() tea.Msg {
	return messages.ViewChanged{View: messages.ViewMenu}
}

func (v *View) handleListKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, toMenu
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.list)-1 {
			v.selected++
		}
	case "r":
		return v, v.reload()
	case "c":
		if v.Selected() == nil {
			return v, nil
		}
		v.mode = ModeCharge
		v.err = nil
		v.charge.SetValue(strconv.FormatFloat(v.defaultCharge, 'f', -1, 64))
		return v, v.charge.Focus()
	case "x":
		return v, v.ask(actionCancel)
	case "d":
		return v, v.ask(actionDeliver)
	case "D":
		return v, v.ask(actionDelete)
	}
	return v, nil
}

func (v *View) ask(a action) tea.Cmd {
	if v.Selected() == nil {
		return nil
	}
	v.pending = a
	v.mode = ModeConfirm
	v.err = nil
	return nil
}

func (v *View) handleChargeKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.mode = ModeList
		v.charge.Blur()
		return v, nil
	case "enter":
		v.charge.Blur()
		id, value := v.Selected().ID, v.charge.Value()
		v.notice = "Order confirmed."
		return v, v.apply(id, func(ctx context.Context, svc driving.OrderAdminService) (*domain.Order, error) {
			return svc.Confirm(ctx, id, value)
		})
	}
	var cmd tea.Cmd
	v.charge, cmd = v.charge.Update(msg)
	return v, cmd
}

func (v *View) handleConfirmKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() != "y" && msg.String() != "Y" {
		v.mode = ModeList
		return v, nil
	}
	id := v.Selected().ID
	switch v.pending {
	case actionCancel:
		v.notice = "Order cancelled."
		return v, v.apply(id, func(ctx context.Context, svc driving.OrderAdminService) (*domain.Order, error) {
			return svc.Cancel(ctx, id)
		})
	case actionDeliver:
		v.notice = "Order delivered."
		return v, v.apply(id, func(ctx context.Context, svc driving.OrderAdminService) (*domain.Order, error) {
			return svc.MarkDelivered(ctx, id)
		})
	default:
		v.notice = "Order deleted."
		return v, v.apply(id, func(ctx context.Context, svc driving.OrderAdminService) (*domain.Order, error) {
			return nil, svc.Delete(ctx, id)
		})
	}
}

func (v *View) apply(
	id string,
	fn func(context.Context, driving.OrderAdminService) (*domain.Order, error),
) tea.Cmd {
	svc, ctx := v.orders, v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.OrderUpdated{ID: id, Err: errors.New("order service not available")}
		}
		order, err := fn(ctx, svc)
		return messages.OrderUpdated{ID: id, Order: order, Err: err}
	}
}

// View renders the orders view.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Orders"))
	b.WriteString("\n\n")

	if v.mode == ModeLocked {
		b.WriteString(v.styles.Normal.Render("Enter the admin password to manage orders."))
		b.WriteString("\n\n")
		b.WriteString(v.password.View())
		if v.err != nil {
			b.WriteString("\n\n")
			b.WriteString(v.styles.Error.Render(v.err.Error()))
		}
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[enter] unlock  [esc] back"))
		return b.String()
	}

	if len(v.list) == 0 {
		b.WriteString(v.styles.Muted.Render("No orders yet."))
	}
	for i := range v.list {
		b.WriteString(v.renderRow(i, &v.list[i]))
		b.WriteString("\n")
	}
	if o := v.Selected(); o != nil {
		b.WriteString("\n")
		b.WriteString(v.renderDetail(o))
	}

	b.WriteString("\n\n")
	switch {
	case v.mode == ModeCharge:
		b.WriteString(v.charge.View())
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[enter] confirm order  [esc] cancel"))
	case v.mode == ModeConfirm:
		o := v.Selected()
		b.WriteString(v.styles.Warning.Render(fmt.Sprintf("%s order for %s? [y/N]", v.pending.verb(), o.CustomerName)))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case v.notice != "":
		b.WriteString(v.styles.Success.Render(v.notice))
	default:
		b.WriteString(v.styles.Help.Render("[c] confirm  [x] cancel  [d] delivered  [D] delete  [r] reload  [esc] back"))
	}
	return b.String()
}

func (v *View) renderRow(index int, o *domain.Order) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}
	line := fmt.Sprintf("%s%-10s %-20s %-24s x%d", indicator, o.Status, truncate(o.CustomerName, 20),
		truncate(o.ProductName, 24), o.Quantity)
	if index == v.selected {
		return v.styles.Selected.Render(line)
	}
	return v.statusStyle(o.Status).Render(line)
}

func (v *View) statusStyle(s domain.OrderStatus) lipgloss.Style {
	switch s {
	case domain.OrderStatusPending:
		return v.styles.Warning
	case domain.OrderStatusConfirmed:
		return v.styles.Normal
	case domain.OrderStatusDelivered:
		return v.styles.Success
	default:
		return v.styles.Muted
	}
}

func (v *View) renderDetail(o *domain.Order) string {
	var b strings.Builder
	field := func(label, value string) {
		b.WriteString(v.styles.Muted.Width(12).Render(label))
		b.WriteString(v.styles.Normal.Render(value))
		b.WriteString("\n")
	}

	field("Customer", o.CustomerName)
	field("Phone", o.Phone)
	field("Address", o.Address)
	item := fmt.Sprintf("%s × %d", o.ProductName, o.Quantity)
	if o.SelectedSize != "" {
		item += " (" + o.SelectedSize + ")"
	}
	field("Item", item)
	field("Subtotal", list.FormatPrice(o.Subtotal()))
	if o.DeliveryCharge != nil {
		field("Delivery", list.FormatPrice(*o.DeliveryCharge))
		field("Total", list.FormatPrice(o.Subtotal()+*o.DeliveryCharge))
	} else {
		field("Delivery", "set on confirm")
	}
	field("Placed", humanize.Time(o.CreatedAt))
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.password.SetWidth(width / 2)
	v.charge.SetWidth(width / 2)
}

// Mode returns what the view is asking for.
func (v *View) Mode() Mode {
	return v.mode
}

// Orders returns the listed orders.
func (v *View) Orders() []domain.Order {
	return v.list
}

// Selected returns the selected order, or nil if there are none.
func (v *View) Selected() *domain.Order {
	if v.selected < 0 || v.selected >= len(v.list) {
		return nil
	}
	return &v.list[v.selected]
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
