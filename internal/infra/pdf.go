package infra

// pdf.go — GST tax invoice rendering using go-pdf/fpdf.
// Produces an A4 invoice from the document's stored snapshots and totals so
// the output matches the figures frozen at finalize, regardless of later
// master-data edits.

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/Mat-rixMJ/WEBGSTBILL/internal/gst"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/model"
)

func rupees(p gst.Paise) string {
	return "Rs " + p.Rupees().StringFixed(2)
}

// GenerateInvoicePDF renders a finalized invoice to storagePath and returns
// the absolute path of the written file.
func GenerateInvoicePDF(inv *model.Invoice, storagePath string) (string, error) {
	if inv.InvoiceNumber == nil {
		return "", fmt.Errorf("pdf: invoice has no number")
	}
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("invoice_%s.pdf", *inv.InvoiceNumber)
	filePath := filepath.Join(storagePath, fileName)

	pdf := renderInvoicePDF(inv)
	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// InvoicePDFBytes renders a finalized invoice into memory, for direct
// download responses.
func InvoicePDFBytes(inv *model.Invoice) ([]byte, error) {
	if inv.InvoiceNumber == nil {
		return nil, fmt.Errorf("pdf: invoice has no number")
	}
	var buf bytes.Buffer
	pdf := renderInvoicePDF(inv)
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}

func renderInvoicePDF(inv *model.Invoice) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, inv.BusinessSnapshot.Name, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, inv.BusinessSnapshot.Address, "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("%s - %s", inv.BusinessSnapshot.City, inv.BusinessSnapshot.Pincode), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, "GSTIN: "+inv.BusinessSnapshot.GSTIN, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, "TAX INVOICE", "TB", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Invoice and customer block ───────────────────────────────────────────
	halfW := contentW / 2

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(halfW, 5, "Invoice No: "+*inv.InvoiceNumber, "", 0, "L", false, 0, "")
	pdf.CellFormat(halfW, 5, "Date: "+inv.InvoiceDate.Format("02/01/2006"), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	placeName := gst.StateName(inv.PlaceOfSupply)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Place of Supply: %s (%s)", placeName, inv.PlaceOfSupply), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, "Bill To:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, inv.CustomerSnapshot.Name, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, inv.CustomerSnapshot.Address, "", 1, "L", false, 0, "")
	if inv.CustomerSnapshot.GSTIN != nil && *inv.CustomerSnapshot.GSTIN != "" {
		pdf.CellFormat(contentW, 5, "GSTIN: "+*inv.CustomerSnapshot.GSTIN, "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// ── Item table ───────────────────────────────────────────────────────────
	interState := inv.IsInterState()

	colName := contentW * 0.28
	colHSN := contentW * 0.10
	colQty := contentW * 0.10
	colRate := contentW * 0.13
	colTaxable := contentW * 0.15
	colTax := contentW * 0.12
	colTotal := contentW * 0.12

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(colName, 6, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(colHSN, 6, "HSN", "1", 0, "C", false, 0, "")
	pdf.CellFormat(colQty, 6, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(colRate, 6, "Rate", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colTaxable, 6, "Taxable", "1", 0, "R", false, 0, "")
	if interState {
		pdf.CellFormat(colTax, 6, "IGST", "1", 0, "R", false, 0, "")
	} else {
		pdf.CellFormat(colTax, 6, "CGST+SGST", "1", 0, "R", false, 0, "")
	}
	pdf.CellFormat(colTotal, 6, "Total", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, item := range inv.Items {
		name := item.ProductName
		if len(name) > 30 {
			name = name[:29] + "…"
		}
		pdf.CellFormat(colName, 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colHSN, 6, item.HSNCode, "1", 0, "C", false, 0, "")
		pdf.CellFormat(colQty, 6, item.Quantity.String()+" "+item.Unit, "1", 0, "C", false, 0, "")
		pdf.CellFormat(colRate, 6, rupees(item.UnitPricePaise), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colTaxable, 6, rupees(item.TaxablePaise), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colTax, 6, rupees(item.TaxAmountPaise)+fmt.Sprintf(" @%d%%", item.GSTRate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colTotal, 6, rupees(item.TotalPaise), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	// ── Totals ───────────────────────────────────────────────────────────────
	labelW := contentW * 0.72
	valueW := contentW * 0.28

	totalRow := func(label string, value gst.Paise, bold bool) {
		if bold {
			pdf.SetFont("Helvetica", "B", 10)
		} else {
			pdf.SetFont("Helvetica", "", 9)
		}
		pdf.CellFormat(labelW, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(valueW, 6, rupees(value), "", 1, "R", false, 0, "")
	}

	totalRow("Taxable Value:", inv.SubtotalPaise, false)
	if interState {
		totalRow("IGST:", inv.IGSTPaise, false)
	} else {
		totalRow("CGST:", inv.CGSTPaise, false)
		totalRow("SGST:", inv.SGSTPaise, false)
	}
	totalRow("GRAND TOTAL:", inv.GrandTotalPaise, true)

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "This is a computer generated invoice.", "", 1, "C", false, 0, "")

	return pdf
}
