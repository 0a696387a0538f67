// Package orderflow models the shopper's order modal as a pure state machine.
//
// A flow starts in StageForm. On mobile layouts the shopper can switch to a
// full-screen StageChat and back; desktop layouts show chat inline and never
// enter StageChat. A valid submission moves the flow to StageSuccess, which is
// terminal; driving adapters close the flow after AutoDismissDelay.
//
// The flow performs no I/O. Submit returns the domain.OrderDraft that a
// driving adapter hands to the checkout service.
package orderflow

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sssmarthaat/haat/internal/core/domain"
)

// Timing used by driving adapters.
const (
	// AutoDismissDelay is how long the success stage stays visible.
	AutoDismissDelay = 3 * time.Second

	// ResetDelay is the pause before a reused flow is cleared for a new product.
	ResetDelay = 300 * time.Millisecond
)

// ErrNoChatStage is returned when a desktop flow is asked to open the chat stage.
var ErrNoChatStage = errors.New("chat is shown inline on desktop")

// Stage is the visible step of the flow.
type Stage int

// Flow stages.
const (
	StageForm Stage = iota
	StageChat
	StageSuccess
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageForm:
		return "form"
	case StageChat:
		return "chat"
	case StageSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Layout is the presentation width class.
type Layout int

// Layouts.
const (
	LayoutMobile Layout = iota
	LayoutDesktop
)

// String returns the layout name.
func (l Layout) String() string {
	if l == LayoutDesktop {
		return "desktop"
	}
	return "mobile"
}

// Form holds the order form fields.
type Form struct {
	Name     string
	Phone    string
	Address  string
	Size     string
	Quantity int
}

// Flow is one shopper's order modal.
type Flow struct {
	product   domain.Product
	layout    Layout
	stage     Stage
	form      Form
	sessionID string
}

// New starts a flow for product. The chat session id is generated here and
// kept for the lifetime of the flow.
func New(product domain.Product, layout Layout) *Flow {
	f := &Flow{
		layout:    layout,
		sessionID: uuid.NewString(),
	}
	f.reset(product)
	return f
}

// Stage returns the current stage.
func (f *Flow) Stage() Stage { return f.stage }

// Layout returns the current layout.
func (f *Flow) Layout() Layout { return f.layout }

// SessionID returns the chat session id.
func (f *Flow) SessionID() string { return f.sessionID }

// Product returns the product being ordered.
func (f *Flow) Product() domain.Product { return f.product }

// Form returns a copy of the form fields.
func (f *Flow) Form() Form { return f.form }

// ShowsInlineChat reports whether chat is rendered beside the form.
func (f *Flow) ShowsInlineChat() bool {
	return f.layout == LayoutDesktop && f.stage != StageSuccess
}

// SetLayout changes the layout. Leaving mobile while in chat returns to the form.
func (f *Flow) SetLayout(l Layout) {
	f.layout = l
	if l == LayoutDesktop && f.stage == StageChat {
		f.stage = StageForm
	}
}

func (f *Flow) editable() error {
	if f.stage == StageSuccess {
		return fmt.Errorf("%w: order already submitted", domain.ErrInvalidTransition)
	}
	return nil
}

// SetName sets the customer name.
func (f *Flow) SetName(v string) error {
	if err := f.editable(); err != nil {
		return err
	}
	f.form.Name = v
	return nil
}

// SetPhone sets the phone number.
func (f *Flow) SetPhone(v string) error {
	if err := f.editable(); err != nil {
		return err
	}
	f.form.Phone = v
	return nil
}

// SetAddress sets the delivery address.
func (f *Flow) SetAddress(v string) error {
	if err := f.editable(); err != nil {
		return err
	}
	f.form.Address = v
	return nil
}

// SetSize selects a size. Products without sizes accept only "".
func (f *Flow) SetSize(size string) error {
	if err := f.editable(); err != nil {
		return err
	}
	if len(f.product.Sizes) == 0 {
		if size != "" {
			return fmt.Errorf("%w: product has no sizes", domain.ErrInvalidInput)
		}
		return nil
	}
	if !f.product.HasSize(size) {
		return fmt.Errorf("%w: size %q is not offered", domain.ErrInvalidInput, size)
	}
	f.form.Size = size
	return nil
}

// SetQuantity sets the quantity. Values below 1 are rejected.
func (f *Flow) SetQuantity(q int) error {
	if err := f.editable(); err != nil {
		return err
	}
	if q < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidInput)
	}
	f.form.Quantity = q
	return nil
}

// OpenChat switches a mobile flow from the form to the chat stage.
func (f *Flow) OpenChat() error {
	if f.layout == LayoutDesktop {
		return ErrNoChatStage
	}
	if f.stage != StageForm {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, f.stage, StageChat)
	}
	f.stage = StageChat
	return nil
}

// CloseChat returns from the chat stage to the form.
func (f *Flow) CloseChat() error {
	if f.stage != StageChat {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, f.stage, StageForm)
	}
	f.stage = StageForm
	return nil
}

// Submit validates the form and moves to StageSuccess. On a validation
// failure the flow is left unchanged.
func (f *Flow) Submit() (domain.OrderDraft, error) {
	if f.stage != StageForm {
		return domain.OrderDraft{}, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, f.stage, StageSuccess)
	}

	name := strings.TrimSpace(f.form.Name)
	phone := strings.TrimSpace(f.form.Phone)
	address := strings.TrimSpace(f.form.Address)
	if name == "" || phone == "" || address == "" {
		return domain.OrderDraft{}, domain.ErrMissingFields
	}

	f.stage = StageSuccess
	return domain.OrderDraft{
		CustomerName:  name,
		Phone:         phone,
		Address:       address,
		SelectedSize:  f.form.Size,
		Quantity:      f.form.Quantity,
		ChatSessionID: f.sessionID,
	}, nil
}

// ResetFor clears the flow for another product. The chat session id is kept.
func (f *Flow) ResetFor(product domain.Product) {
	f.reset(product)
}

func (f *Flow) reset(product domain.Product) {
	f.product = product
	f.stage = StageForm
	f.form = Form{
		Size:     product.DefaultSize(),
		Quantity: 1,
	}
}
