package domain

import "time"

// Invoice is the layout model of a printable invoice.
// Money fields are already formatted for display.
type Invoice struct {
	BrandName     string
	BrandSubtitle string

	// Number is the upper-cased first eight characters of the order id.
	Number string
	Date   time.Time

	Customer InvoiceCustomer

	// Thumbnail is the product image, or nil when absent or undecodable.
	Thumbnail *InlineImage

	Item InvoiceLine

	Subtotal   string
	Delivery   string
	GrandTotal string

	// FileName is the suggested download name.
	FileName string
}

// InvoiceCustomer is the bill-to block.
type InvoiceCustomer struct {
	Name    string
	Phone   string
	Address string
}

// InvoiceLine is a single line item.
type InvoiceLine struct {
	Description string
	Size        string
	UnitPrice   string

	// Quantity is zero-padded to two digits.
	Quantity string
	Total    string
}
