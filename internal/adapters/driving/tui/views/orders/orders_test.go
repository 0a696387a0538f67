package orders

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sssmarthaat/haat/internal/adapters/driven/storage/memory"
	"github.com/sssmarthaat/haat/internal/adapters/driving/tui/messages"
	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driven"
	"github.com/sssmarthaat/haat/internal/core/services"
)

type fixture struct {
	view   *View
	stores driven.Stores
	gate   *services.AdminGate
	ctx    context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	stores := memory.NewStores()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	gate := services.NewAdminGate(stores.Settings, memory.NewSessionStore(), stores.LoginStats)
	v := NewView(nil, services.NewOrderAdminService(stores.Orders), gate)
	v.SetDimensions(100, 40)
	return &fixture{view: v, stores: stores, gate: gate, ctx: ctx}
}

func (f *fixture) seed(t *testing.T, orders ...domain.Order) {
	t.Helper()
	for i := range orders {
		require.NoError(t, f.stores.Orders.Create(context.Background(), &orders[i]))
	}
}

// run executes cmd and feeds its message back into the view, returning the
// follow-up command.
func (f *fixture) run(t *testing.T, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	require.NotNil(t, cmd)
	_, next := f.view.Update(cmd())
	return next
}

// unlocked opens the view with a stored admin session and applies the first
// order snapshot.
func (f *fixture) unlocked(t *testing.T) {
	t.Helper()
	require.NoError(t, f.gate.Login(context.Background(), domain.DefaultAdminPassword))
	next := f.run(t, f.view.Open(f.ctx))
	require.Equal(t, ModeList, f.view.Mode())
	f.run(t, next)
}

// nextSnapshot applies the next order snapshot from the subscription.
func (f *fixture) nextSnapshot(t *testing.T) {
	t.Helper()
	f.run(t, waitForOrders(f.view.updates))
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func pending(id, name string, at time.Time) domain.Order {
	return domain.Order{
		ID: id, CustomerName: name, Phone: "017", Address: "Dhaka",
		ProductID: "p1", ProductName: "Panjabi", ProductPrice: 500, Quantity: 2, SelectedSize: "XL",
		Status: domain.OrderStatusPending, CreatedAt: at,
	}
}

func TestView_LockedUntilLogin(t *testing.T) {
	f := newFixture(t)
	f.seed(t, pending("o1", "Rahim", time.Now()))

	f.run(t, f.view.Open(f.ctx))
	assert.Equal(t, ModeLocked, f.view.Mode())
	assert.Contains(t, f.view.View(), "admin password")

	for _, r := range "wrong" {
		f.view.Update(key(string(r)))
	}
	_, cmd := f.view.Update(key("enter"))
	f.run(t, cmd)
	assert.ErrorIs(t, f.view.Err(), domain.ErrAccessDenied)
	assert.Equal(t, ModeLocked, f.view.Mode())
	assert.Contains(t, f.view.View(), "access denied")

	for _, r := range domain.DefaultAdminPassword {
		f.view.Update(key(string(r)))
	}
	_, cmd = f.view.Update(key("enter"))
	next := f.run(t, cmd)
	assert.Equal(t, ModeList, f.view.Mode())
	assert.NoError(t, f.view.Err())

	f.run(t, next)
	require.Len(t, f.view.Orders(), 1)
	assert.Contains(t, f.view.View(), "Rahim")
}

func TestView_StoredSessionUnlocks(t *testing.T) {
	f := newFixture(t)
	f.seed(t, pending("o1", "Rahim", time.Now()))

	f.unlocked(t)

	assert.Len(t, f.view.Orders(), 1)
	out := f.view.View()
	assert.Contains(t, out, "PENDING")
	assert.Contains(t, out, "Panjabi × 2 (XL)")
	assert.Contains(t, out, "Tk. 1,000.00")
	assert.Contains(t, out, "set on confirm")
}

func TestView_ConfirmWithCharge(t *testing.T) {
	f := newFixture(t)
	f.seed(t, pending("o1", "Rahim", time.Now()))
	f.view.SetDeliveryDefault(70)
	f.unlocked(t)

	f.view.Update(key("c"))
	require.Equal(t, ModeCharge, f.view.Mode())
	assert.Equal(t, "70", f.view.charge.Value())

	f.view.charge.SetValue("60")
	_, cmd := f.view.Update(key("enter"))
	f.run(t, cmd)
	assert.Equal(t, ModeList, f.view.Mode())
	require.NoError(t, f.view.Err())

	f.nextSnapshot(t)
	o := f.view.Selected()
	require.NotNil(t, o)
	assert.Equal(t, domain.OrderStatusConfirmed, o.Status)
	require.NotNil(t, o.DeliveryCharge)
	assert.Equal(t, 60.0, *o.DeliveryCharge)
	assert.Contains(t, f.view.View(), "Tk. 1,060.00")
}

func TestView_ConfirmRejectsBadCharge(t *testing.T) {
	f := newFixture(t)
	f.seed(t, pending("o1", "Rahim", time.Now()))
	f.unlocked(t)

	f.view.Update(key("c"))
	f.view.charge.SetValue("sixty")
	_, cmd := f.view.Update(key("enter"))
	f.run(t, cmd)

	assert.ErrorIs(t, f.view.Err(), domain.ErrInvalidInput)
	assert.Equal(t, domain.OrderStatusPending, f.view.Selected().Status)
}

func TestView_ChargeEscape(t *testing.T) {
	f := newFixture(t)
	f.seed(t, pending("o1", "Rahim", time.Now()))
	f.unlocked(t)

	f.view.Update(key("c"))
	_, cmd := f.view.Update(key("esc"))
	assert.Nil(t, cmd)
	assert.Equal(t, ModeList, f.view.Mode())
}

func TestView_ActionsNeedConfirmation(t *testing.T) {
	f := newFixture(t)
	f.seed(t, pending("o1", "Rahim", time.Now()))
	f.unlocked(t)

	f.view.Update(key("x"))
	require.Equal(t, ModeConfirm, f.view.Mode())
	assert.Contains(t, f.view.View(), "Cancel order for Rahim? [y/N]")

	_, cmd := f.view.Update(key("n"))
	assert.Nil(t, cmd)
	assert.Equal(t, ModeList, f.view.Mode())

	f.view.Update(key("x"))
	_, cmd = f.view.Update(key("y"))
	f.run(t, cmd)
	f.nextSnapshot(t)
	assert.Equal(t, domain.OrderStatusCancelled, f.view.Selected().Status)
	assert.Contains(t, f.view.View(), "Order cancelled.")
}

func TestView_DeliverOnlyFromConfirmed(t *testing.T) {
	f := newFixture(t)
	f.seed(t, pending("o1", "Rahim", time.Now()))
	f.unlocked(t)

	f.view.Update(key("d"))
	_, cmd := f.view.Update(key("y"))
	f.run(t, cmd)

	assert.ErrorIs(t, f.view.Err(), domain.ErrInvalidTransition)
	assert.Contains(t, f.view.View(), "Error:")
}

func TestView_Delete(t *testing.T) {
	f := newFixture(t)
	now := time.Now()
	f.seed(t, pending("o1", "Rahim", now.Add(-time.Hour)), pending("o2", "Karim", now))
	f.unlocked(t)
	require.Len(t, f.view.Orders(), 2)

	f.view.Update(key("down"))
	require.Equal(t, "o1", f.view.Selected().ID)
	f.view.Update(key("D"))
	_, cmd := f.view.Update(key("y"))
	f.run(t, cmd)
	f.nextSnapshot(t)

	require.Len(t, f.view.Orders(), 1)
	assert.Equal(t, "o2", f.view.Selected().ID, "selection is clamped")

	_, err := f.stores.Orders.Get(context.Background(), "o1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestView_EmptyList(t *testing.T) {
	f := newFixture(t)
	f.unlocked(t)

	assert.Nil(t, f.view.Selected())
	assert.Contains(t, f.view.View(), "No orders yet.")

	_, cmd := f.view.Update(key("c"))
	assert.Nil(t, cmd)
	assert.Equal(t, ModeList, f.view.Mode())
}

func TestView_EscReturnsToMenu(t *testing.T) {
	f := newFixture(t)

	_, cmd := f.view.Update(key("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_WithoutServices(t *testing.T) {
	v := NewView(nil, nil, nil)

	v.Update(v.Open(context.Background())())
	assert.Equal(t, ModeLocked, v.Mode())

	v.Update(v.reload()())
	assert.Error(t, v.Err())
}

func TestAction_Verb(t *testing.T) {
	assert.Equal(t, "Cancel", actionCancel.verb())
	assert.Equal(t, "Mark as delivered", actionDeliver.verb())
	assert.Equal(t, "Delete", actionDelete.verb())
}
