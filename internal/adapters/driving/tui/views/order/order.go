// Package order provides the order form and shopper chat view for the TUI.
package order

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sssmarthaat/haat/internal/adapters/driving/tui/components/input"
	"github.com/sssmarthaat/haat/internal/adapters/driving/tui/components/list"
	"github.com/sssmarthaat/haat/internal/adapters/driving/tui/messages"
	"github.com/sssmarthaat/haat/internal/adapters/driving/tui/styles"
	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driving"
	"github.com/sssmarthaat/haat/internal/core/services/orderflow"
)

// DesktopWidth is the terminal width from which chat is shown beside the form.
const DesktopWidth = 100

// Focus targets, in tab order.
const (
	FocusName = iota
	FocusPhone
	FocusAddress
	FocusSize
	FocusQuantity
	FocusChat
)

// View drives an orderflow.Flow: the order form, the shopper's chat thread
// and the success confirmation.
type View struct {
	styles   *styles.Styles
	checkout driving.CheckoutService
	chat     driving.ChatService

	ctx    context.Context
	flow   *orderflow.Flow
	seq    int
	fields []*input.Field
	msgBox *input.Field
	focus  int

	thread   []domain.Message
	updates  <-chan []domain.Message
	watching bool

	placed *domain.Order
	err    error
	width  int
	height int
}

// NewView creates a new order view.
func NewView(s *styles.Styles, checkout driving.CheckoutService, chat driving.ChatService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:   s,
		checkout: checkout,
		chat:     chat,
		ctx:      context.Background(),
		fields: []*input.Field{
			input.NewField(s, "Name", "your full name"),
			input.NewField(s, "Phone", "01XXXXXXXXX"),
			input.NewField(s, "Address", "house, road, area, city"),
		},
		msgBox: input.NewField(s, "Message", "ask about size, colour, delivery..."),
		width:  80,
		height: 24,
	}
}

// LayoutFor maps a terminal width to a flow layout.
func LayoutFor(width int) orderflow.Layout {
	if width >= DesktopWidth {
		return orderflow.LayoutDesktop
	}
	return orderflow.LayoutMobile
}

// Open shows the form for a product. The chat session, and its thread
// subscription, live as long as the view.
func (v *View) Open(ctx context.Context, product domain.Product) tea.Cmd {
	v.ctx = ctx
	v.seq++
	if v.flow == nil {
		v.flow = orderflow.New(product, LayoutFor(v.width))
	} else {
		v.flow.ResetFor(product)
		v.flow.SetLayout(LayoutFor(v.width))
	}
	v.clearInputs()
	v.placed = nil
	v.err = nil
	return tea.Batch(v.setFocus(FocusName), v.watchThread())
}

// Close leaves the view and schedules the delayed field reset.
func (v *View) Close() tea.Cmd {
	for _, f := range v.fields {
		f.Blur()
	}
	v.msgBox.Blur()
	return tea.Tick(orderflow.ResetDelay, func(time.Time) tea.Msg {
		return messages.OrderFormReset{}
	})
}

// Reset clears the inputs.
func (v *View) Reset() {
	v.clearInputs()
	v.err = nil
}

func (v *View) clearInputs() {
	for _, f := range v.fields {
		f.Reset()
	}
	v.msgBox.Reset()
}

// Dismissed reports whether an auto-dismiss for seq still applies.
func (v *View) Dismissed(seq int) bool {
	return v.flow != nil && seq == v.seq && v.flow.Stage() == orderflow.StageSuccess
}

func (v *View) watchThread() tea.Cmd {
	if v.watching || v.chat == nil {
		return nil
	}
	updates, err := v.chat.Watch(v.ctx, v.flow.SessionID())
	if err != nil {
		return func() tea.Msg { return messages.ErrorOccurred{Err: fmt.Errorf("chat unavailable: %w", err)} }
	}
	v.watching = true
	v.updates = updates
	return waitForThread(v.flow.SessionID(), updates)
}

func waitForThread(session string, updates <-chan []domain.Message) tea.Cmd {
	return func() tea.Msg {
		msgs, ok := <-updates
		if !ok {
			return nil
		}
		return messages.ThreadUpdated{SessionID: session, Messages: msgs}
	}
}

// Update handles messages for the order view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ThreadUpdated:
		if v.flow == nil || msg.SessionID != v.flow.SessionID() {
			return v, nil
		}
		v.thread = msg.Messages
		if v.updates == nil {
			return v, nil
		}
		return v, waitForThread(msg.SessionID, v.updates)

	case messages.OrderPlaced:
		v.placed = msg.Order
		v.err = msg.Err
		return v, nil

	case messages.MessageSent:
		if msg.Err != nil {
			v.err = msg.Err
		}
		return v, nil

	case tea.KeyMsg:
		if v.flow == nil {
			return v, nil
		}
		switch v.flow.Stage() {
		case orderflow.StageForm:
			return v.handleFormKey(msg)
		case orderflow.StageChat:
			return v.handleChatKey(msg)
		case orderflow.StageSuccess:
			if msg.String() == "esc" || msg.String() == "enter" {
				return v, back
			}
		}
	}
	return v, nil
}

func back() tea.Msg {
	return messages.ViewChanged{View: messages.ViewCatalog}
}

//nolint:gocyclo // one case per key
func (v *View) handleFormKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, back
	case "ctrl+s":
		return v, v.submit()
	case "ctrl+t":
		// On desktop there is no chat stage; the inline chat takes focus instead.
		_ = v.flow.OpenChat()
		return v, v.setFocus(FocusChat)
	case "tab":
		return v, v.setFocus(v.nextFocus(1))
	case "shift+tab":
		return v, v.setFocus(v.nextFocus(-1))
	case "enter":
		if v.focus == FocusChat {
			return v, v.send()
		}
		return v, v.setFocus(v.nextFocus(1))
	}

	switch v.focus {
	case FocusSize:
		v.stepSize(msg.String())
		return v, nil
	case FocusQuantity:
		v.stepQuantity(msg.String())
		return v, nil
	case FocusChat:
		var cmd tea.Cmd
		v.msgBox, cmd = v.msgBox.Update(msg)
		return v, cmd
	default:
		var cmd tea.Cmd
		v.fields[v.focus], cmd = v.fields[v.focus].Update(msg)
		return v, cmd
	}
}

func (v *View) handleChatKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+t":
		_ = v.flow.CloseChat()
		return v, v.setFocus(FocusName)
	case "enter":
		return v, v.send()
	}
	var cmd tea.Cmd
	v.msgBox, cmd = v.msgBox.Update(msg)
	return v, cmd
}

func (v *View) nextFocus(step int) int {
	order := []int{FocusName, FocusPhone, FocusAddress}
	if len(v.flow.Product().Sizes) > 0 {
		order = append(order, FocusSize)
	}
	order = append(order, FocusQuantity)
	if v.flow.ShowsInlineChat() {
		order = append(order, FocusChat)
	}

	idx := 0
	for i, f := range order {
		if f == v.focus {
			idx = i
			break
		}
	}
	idx = (idx + step + len(order)) % len(order)
	return order[idx]
}

func (v *View) setFocus(target int) tea.Cmd {
	v.focus = target
	for _, f := range v.fields {
		f.Blur()
	}
	v.msgBox.Blur()
	switch {
	case target == FocusChat:
		return v.msgBox.Focus()
	case target < len(v.fields):
		return v.fields[target].Focus()
	}
	return nil
}

func (v *View) stepSize(k string) {
	sizes := v.flow.Product().Sizes
	if len(sizes) == 0 {
		return
	}
	step := 0
	switch k {
	case "left", "h", "-":
		step = -1
	case "right", "l", "+":
		step = 1
	default:
		return
	}
	cur := 0
	for i, s := range sizes {
		if s == v.flow.Form().Size {
			cur = i
		}
	}
	_ = v.flow.SetSize(sizes[(cur+step+len(sizes))%len(sizes)])
}

func (v *View) stepQuantity(k string) {
	q := v.flow.Form().Quantity
	switch k {
	case "left", "h", "-":
		q--
	case "right", "l", "+":
		q++
	default:
		return
	}
	// Below one is rejected by the flow and leaves the quantity unchanged.
	_ = v.flow.SetQuantity(q)
}

func (v *View) submit() tea.Cmd {
	_ = v.flow.SetName(v.fields[FocusName].Value())
	_ = v.flow.SetPhone(v.fields[FocusPhone].Value())
	_ = v.flow.SetAddress(v.fields[FocusAddress].Value())

	draft, err := v.flow.Submit()
	if err != nil {
		v.err = err
		return nil
	}
	v.err = nil
	for _, f := range v.fields {
		f.Blur()
	}
	v.msgBox.Blur()

	ctx, checkout, productID, seq := v.ctx, v.checkout, v.flow.Product().ID, v.seq
	place := func() tea.Msg {
		if checkout == nil {
			return messages.OrderPlaced{Err: errors.New("checkout service not available")}
		}
		order, err := checkout.PlaceOrder(ctx, productID, draft)
		return messages.OrderPlaced{Order: order, Err: err}
	}
	dismiss := tea.Tick(orderflow.AutoDismissDelay, func(time.Time) tea.Msg {
		return messages.OrderDismissed{Seq: seq}
	})
	return tea.Batch(place, dismiss)
}

func (v *View) send() tea.Cmd {
	text := strings.TrimSpace(v.msgBox.Value())
	if text == "" || v.chat == nil {
		return nil
	}
	v.msgBox.Reset()

	ctx, chat, session := v.ctx, v.chat, v.flow.SessionID()
	return func() tea.Msg {
		_, err := chat.Send(ctx, session, domain.SenderCustomer, text)
		return messages.MessageSent{Err: err}
	}
}

// View renders the current stage.
func (v *View) View() string {
	if v.flow == nil {
		return v.styles.Muted.Render("No product selected.")
	}

	switch v.flow.Stage() {
	case orderflow.StageSuccess:
		return v.renderSuccess()
	case orderflow.StageChat:
		return v.renderHeader() + "\n\n" + v.renderChat(v.width) +
			"\n\n" + v.styles.Help.Render("[enter] send  [esc] back to form")
	}

	if v.flow.ShowsInlineChat() {
		half := v.width / 2
		form := lipgloss.NewStyle().Width(half).Render(v.renderForm())
		chat := lipgloss.NewStyle().Width(v.width - half).Render(v.renderChat(v.width - half))
		return v.renderHeader() + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, form, chat) +
			"\n\n" + v.styles.Help.Render("[tab] next  [ctrl+s] place order  [enter] send message  [esc] back")
	}
	return v.renderHeader() + "\n\n" + v.renderForm() +
		"\n\n" + v.styles.Help.Render("[tab] next  [ctrl+s] place order  [ctrl+t] chat with us  [esc] back")
}

func (v *View) renderHeader() string {
	p := v.flow.Product()
	header := v.styles.Title.Render(p.Name) + "  " + v.styles.Price.Render(list.FormatPrice(p.Price))
	if p.OriginalPrice > p.Price {
		header += "  " + v.styles.Muted.Render("was "+list.FormatPrice(p.OriginalPrice))
	}
	return header
}

func (v *View) renderForm() string {
	var b strings.Builder
	for _, f := range v.fields {
		b.WriteString(f.View())
		b.WriteString("\n")
	}

	form := v.flow.Form()
	if sizes := v.flow.Product().Sizes; len(sizes) > 0 {
		b.WriteString(v.selector("Size", form.Size, v.focus == FocusSize))
		b.WriteString("\n")
	}
	b.WriteString(v.selector("Quantity", strconv.Itoa(form.Quantity), v.focus == FocusQuantity))
	b.WriteString("\n\n")

	total := v.flow.Product().Price * float64(form.Quantity)
	b.WriteString(v.styles.Normal.Render("Total: ") + v.styles.Price.Render(list.FormatPrice(total)))
	b.WriteString(v.styles.Muted.Render("  + delivery"))

	if v.err != nil {
		b.WriteString("\n\n")
		b.WriteString(v.styles.Error.Render(v.err.Error()))
	}
	return b.String()
}

func (v *View) selector(label, value string, focused bool) string {
	labelStyle := v.styles.Muted
	if focused {
		labelStyle = v.styles.Title
	}
	return labelStyle.Width(10).Render(label) + v.styles.Normal.Render("‹ "+value+" ›")
}

func (v *View) renderChat(width int) string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Chat with us"))
	b.WriteString("\n")

	// Newest at the bottom; keep the tail that fits.
	room := max(v.height-14, 3)
	start := max(len(v.thread)-room, 0)
	if len(v.thread) == 0 {
		b.WriteString(v.styles.Muted.Render("No messages yet."))
		b.WriteString("\n")
	}
	for _, m := range v.thread[start:] {
		who, style := "You", v.styles.Normal
		if m.Sender == domain.SenderAdmin {
			who, style = "Shop", v.styles.Success
		}
		line := fmt.Sprintf("%s: %s", who, m.Text)
		b.WriteString(style.Width(width - 2).Render(line))
		b.WriteString("\n")
	}
	b.WriteString(v.msgBox.View())
	return b.String()
}

func (v *View) renderSuccess() string {
	var b strings.Builder
	form := v.flow.Form()
	b.WriteString(v.styles.Success.Render("Thank you! Your order is placed."))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Normal.Render(fmt.Sprintf("%s × %d", v.flow.Product().Name, form.Quantity)))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("We will call %s to confirm delivery.", strings.TrimSpace(form.Phone))))
	if errors.Is(v.err, domain.ErrStockNotUpdated) {
		b.WriteString("\n")
		b.WriteString(v.styles.Warning.Render("Stock could not be updated; the shop will check availability."))
	} else if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render("Order could not be saved: " + v.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("Closing shortly...  [enter] back to shop"))
	return b.String()
}

// SetDimensions sets the view dimensions and re-derives the layout.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	for _, f := range v.fields {
		f.SetWidth(width / 2)
	}
	v.msgBox.SetWidth(width / 2)
	if v.flow == nil {
		return
	}
	v.flow.SetLayout(LayoutFor(width))
	if v.focus == FocusChat && !v.flow.ShowsInlineChat() && v.flow.Stage() == orderflow.StageForm {
		v.setFocus(FocusName)
	}
}

// Flow returns the underlying state machine, nil before the first Open.
func (v *View) Flow() *orderflow.Flow {
	return v.flow
}

// Focus returns the focused form target.
func (v *View) Focus() int {
	return v.focus
}

// Thread returns the chat messages shown.
func (v *View) Thread() []domain.Message {
	return v.thread
}

// Placed returns the last order written, if any.
func (v *View) Placed() *domain.Order {
	return v.placed
}

// Err returns the last error shown in the view.
func (v *View) Err() error {
	return v.err
}
