// Package pdf renders invoices as single-item A4 PDF documents.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driven"
	"github.com/sssmarthaat/haat/internal/logger"
)

// Ensure Renderer implements the interface.
var _ driven.InvoiceRenderer = (*Renderer)(nil)

// ContentType is the MIME type of rendered invoices.
const ContentType = "application/pdf"

// Page geometry in millimetres.
const (
	marginX      = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = 180.0 // A4 width 210 minus both margins
	thumbSize    = 32.0
	rowHeight    = 8.0
)

// Column widths of the line item table; they sum to contentWidth.
var columns = []struct {
	title string
	width float64
	align string
}{
	{"Description", 72, "L"},
	{"Size", 20, "C"},
	{"Unit Price", 32, "R"},
	{"Qty", 20, "C"},
	{"Total", 36, "R"},
}

// Renderer draws invoices with fixed coordinates.
type Renderer struct {
	compress bool
}

// NewRenderer creates a PDF invoice renderer.
func NewRenderer() *Renderer {
	return &Renderer{compress: true}
}

// ContentType returns the MIME type of rendered output.
func (r *Renderer) ContentType() string {
	return ContentType
}

// Render writes inv to w. A thumbnail that cannot be embedded is skipped.
func (r *Renderer) Render(ctx context.Context, inv *domain.Invoice, w io.Writer) error {
	if inv == nil {
		return fmt.Errorf("%w: invoice is required", domain.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(marginX, marginTop, marginX)
	doc.SetAutoPageBreak(true, marginBottom)
	doc.SetCompression(r.compress)
	doc.SetTitle("Invoice "+inv.Number, true)
	doc.SetCreator(inv.BrandName, true)
	if !inv.Date.IsZero() {
		doc.SetCreationDate(inv.Date)
	}
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.AddPage()
	drawHeader(doc, tr, inv)
	drawCustomer(doc, tr, inv)
	drawThumbnail(doc, inv)
	drawItem(doc, tr, inv)
	drawTotals(doc, tr, inv)
	drawFooter(doc, tr, inv)

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func drawHeader(doc *fpdf.Fpdf, tr func(string) string, inv *domain.Invoice) {
	doc.SetTextColor(15, 23, 42)
	doc.SetFont("Helvetica", "B", 22)
	doc.CellFormat(contentWidth/2, 10, tr(inv.BrandName), "", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(contentWidth/2, 10, "INVOICE", "", 1, "R", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(100, 116, 139)
	doc.CellFormat(contentWidth/2, 6, tr(inv.BrandSubtitle), "", 0, "L", false, 0, "")
	doc.CellFormat(contentWidth/2, 6, "No. #"+inv.Number, "", 1, "R", false, 0, "")
	doc.CellFormat(contentWidth/2, 6, "", "", 0, "L", false, 0, "")
	doc.CellFormat(contentWidth/2, 6, "Date: "+inv.Date.Format("02 Jan 2006"), "", 1, "R", false, 0, "")

	doc.SetDrawColor(225, 29, 72)
	doc.SetLineWidth(0.6)
	y := doc.GetY() + 3
	doc.Line(marginX, y, marginX+contentWidth, y)
	doc.SetY(y + 6)
}

func drawCustomer(doc *fpdf.Fpdf, tr func(string) string, inv *domain.Invoice) {
	doc.SetTextColor(100, 116, 139)
	doc.SetFont("Helvetica", "B", 9)
	doc.CellFormat(0, 5, "BILL TO", "", 1, "L", false, 0, "")

	doc.SetTextColor(15, 23, 42)
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(contentWidth-thumbSize-5, 7, tr(inv.Customer.Name), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(contentWidth-thumbSize-5, 6, tr("Phone: "+inv.Customer.Phone), "", 1, "L", false, 0, "")
	doc.MultiCell(contentWidth-thumbSize-5, 5, tr(inv.Customer.Address), "", "L", false)
}

// drawThumbnail places the product image to the right of the bill-to block.
func drawThumbnail(doc *fpdf.Fpdf, inv *domain.Invoice) {
	const top = 48.0
	bottom := max(doc.GetY(), top+thumbSize) + 6

	if inv.Thumbnail != nil && len(inv.Thumbnail.Data) > 0 {
		imageType := imageTypeFor(inv.Thumbnail.MediaType)
		if imageType == "" {
			logger.Warn("invoice %s: thumbnail type %s not supported", inv.Number, inv.Thumbnail.MediaType)
		} else {
			name := "thumb-" + inv.Number
			opts := fpdf.ImageOptions{ImageType: imageType}
			doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(inv.Thumbnail.Data))
			if err := doc.Error(); err != nil {
				logger.Warn("invoice %s: thumbnail skipped: %v", inv.Number, err)
				doc.ClearError()
			} else {
				doc.ImageOptions(name, marginX+contentWidth-thumbSize, top, thumbSize, thumbSize, false, opts, 0, "")
			}
		}
	}
	doc.SetY(bottom)
}

func imageTypeFor(mediaType string) string {
	switch mediaType {
	case "image/jpeg", "image/jpg":
		return "JPG"
	case "image/png":
		return "PNG"
	case "image/gif":
		return "GIF"
	default:
		return ""
	}
}

func drawItem(doc *fpdf.Fpdf, tr func(string) string, inv *domain.Invoice) {
	doc.SetFillColor(15, 23, 42)
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 10)
	for _, c := range columns {
		doc.CellFormat(c.width, rowHeight, c.title, "", 0, c.align, true, 0, "")
	}
	doc.Ln(-1)

	size := inv.Item.Size
	if size == "" {
		size = "-"
	}
	values := []string{inv.Item.Description, size, inv.Item.UnitPrice, inv.Item.Quantity, inv.Item.Total}

	doc.SetTextColor(15, 23, 42)
	doc.SetFont("Helvetica", "", 10)
	doc.SetDrawColor(226, 232, 240)
	doc.SetLineWidth(0.2)
	for i, c := range columns {
		doc.CellFormat(c.width, rowHeight+2, tr(values[i]), "B", 0, c.align, false, 0, "")
	}
	doc.Ln(-1)
	doc.Ln(4)
}

func drawTotals(doc *fpdf.Fpdf, tr func(string) string, inv *domain.Invoice) {
	const labelWidth, valueWidth = 40.0, 36.0
	indent := contentWidth - labelWidth - valueWidth

	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		doc.SetFont("Helvetica", style, 10)
		doc.CellFormat(indent, 7, "", "", 0, "L", false, 0, "")
		doc.CellFormat(labelWidth, 7, label, "", 0, "L", false, 0, "")
		doc.CellFormat(valueWidth, 7, tr(value), "", 1, "R", false, 0, "")
	}

	row("Subtotal", inv.Subtotal, false)
	row("Delivery", inv.Delivery, false)

	y := doc.GetY() + 1
	doc.SetDrawColor(15, 23, 42)
	doc.Line(marginX+indent, y, marginX+contentWidth, y)
	doc.SetY(y + 1)
	doc.SetTextColor(225, 29, 72)
	row("Grand Total", inv.GrandTotal, true)
	doc.SetTextColor(15, 23, 42)
}

func drawFooter(doc *fpdf.Fpdf, tr func(string) string, inv *domain.Invoice) {
	doc.Ln(12)
	doc.SetFont("Helvetica", "I", 9)
	doc.SetTextColor(100, 116, 139)
	doc.CellFormat(0, 5, tr("Thank you for shopping with "+inv.BrandName+"."), "", 1, "C", false, 0, "")
}
