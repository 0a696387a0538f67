package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sssmarthaat/haat/internal/adapters/driven/storage/memory"
	"github.com/sssmarthaat/haat/internal/core/domain"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "Tk. 0.00"},
		{"60", "Tk. 60.00"},
		{"1060", "Tk. 1,060.00"},
		{"1234567.5", "Tk. 1,234,567.50"},
		{"99.999", "Tk. 100.00"},
		{"-12.3", "Tk. -12.30"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney("Tk.", decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestInvoiceNumberAndFileName(t *testing.T) {
	assert.Equal(t, "AB12CD34", InvoiceNumber("ab12cd34-ef56-7890"))
	assert.Equal(t, "XY", InvoiceNumber("xy"))

	assert.Equal(t, "Invoice_Rahim_Uddin_AB12CD34.pdf", InvoiceFileName(" Rahim  Uddin ", "AB12CD34"))
	assert.Equal(t, "Invoice_Customer_AB12CD34.pdf", InvoiceFileName("", "AB12CD34"))
}

func TestInvoiceService_Build(t *testing.T) {
	charge := 60.0
	created := time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC)
	order := &domain.Order{
		ID:             "ab12cd34-0000",
		CustomerName:   "Rahim",
		Phone:          "01700000000",
		Address:        "Dhaka",
		SelectedSize:   "XL",
		Quantity:       2,
		ProductName:    "Panjabi",
		ProductPrice:   500,
		DeliveryCharge: &charge,
		CreatedAt:      created,
	}

	svc := NewInvoiceService(nil, nil, domain.InvoiceSettings{BrandSubtitle: "Dhaka"})
	inv := svc.Build(order)

	assert.Equal(t, domain.DefaultBrandName, inv.BrandName)
	assert.Equal(t, "Dhaka", inv.BrandSubtitle)
	assert.Equal(t, "AB12CD34", inv.Number)
	assert.Equal(t, created, inv.Date)
	assert.Equal(t, "Rahim", inv.Customer.Name)
	assert.Equal(t, "Panjabi", inv.Item.Description)
	assert.Equal(t, "XL", inv.Item.Size)
	assert.Equal(t, "02", inv.Item.Quantity)
	assert.Equal(t, "Tk. 500.00", inv.Item.UnitPrice)
	assert.Equal(t, "Tk. 1,000.00", inv.Item.Total)
	assert.Equal(t, "Tk. 1,000.00", inv.Subtotal)
	assert.Equal(t, "Tk. 60.00", inv.Delivery)
	assert.Equal(t, "Tk. 1,060.00", inv.GrandTotal)
	assert.Equal(t, "Invoice_Rahim_AB12CD34.pdf", inv.FileName)
	assert.Nil(t, inv.Thumbnail)
}

func TestInvoiceService_Build_MissingFields(t *testing.T) {
	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	svc := NewInvoiceService(nil, nil, domain.InvoiceSettings{CurrencyPrefix: "BDT"})
	svc.now = func() time.Time { return now }

	inv := svc.Build(&domain.Order{ID: "x", ProductImage: "not a data uri"})

	assert.Equal(t, "BDT 0.00", inv.Subtotal)
	assert.Equal(t, "BDT 0.00", inv.Delivery, "absent delivery charge counts as zero")
	assert.Equal(t, "BDT 0.00", inv.GrandTotal)
	assert.Equal(t, now, inv.Date)
	assert.Nil(t, inv.Thumbnail, "unparsable thumbnail is skipped")
}

func TestInvoiceService_Build_Thumbnail(t *testing.T) {
	svc := NewInvoiceService(nil, nil, domain.InvoiceSettings{})
	inv := svc.Build(&domain.Order{ID: "x", ProductImage: "data:image/png;base64,AAEC"})

	require.NotNil(t, inv.Thumbnail)
	assert.Equal(t, "image/png", inv.Thumbnail.MediaType)
	assert.Equal(t, []byte{0, 1, 2}, inv.Thumbnail.Data)
}

func TestInvoiceService_Write(t *testing.T) {
	orders := memory.NewOrderStore()
	require.NoError(t, orders.Create(context.Background(), &domain.Order{ID: "abcdef123456", Quantity: 1}))

	t.Run("renders", func(t *testing.T) {
		svc := NewInvoiceService(orders, &mockRenderer{}, domain.InvoiceSettings{})
		var buf bytes.Buffer
		inv, err := svc.Write(context.Background(), "abcdef123456", &buf)
		require.NoError(t, err)
		assert.Equal(t, "ABCDEF12", inv.Number)
		assert.Equal(t, "INVOICE ABCDEF12", buf.String())
		assert.Equal(t, "text/plain", svc.ContentType())
	})

	t.Run("missing order", func(t *testing.T) {
		svc := NewInvoiceService(orders, &mockRenderer{}, domain.InvoiceSettings{})
		_, err := svc.Write(context.Background(), "nope", &bytes.Buffer{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("renderer failure", func(t *testing.T) {
		boom := errors.New("font missing")
		svc := NewInvoiceService(orders, &mockRenderer{err: boom}, domain.InvoiceSettings{})
		_, err := svc.Write(context.Background(), "abcdef123456", &bytes.Buffer{})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("no renderer", func(t *testing.T) {
		svc := NewInvoiceService(orders, nil, domain.InvoiceSettings{})
		_, err := svc.Write(context.Background(), "abcdef123456", &bytes.Buffer{})
		assert.ErrorIs(t, err, domain.ErrNotImplemented)
		assert.Equal(t, "application/octet-stream", svc.ContentType())
	})
}
