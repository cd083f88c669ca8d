package infra

// excel.go — XLSX export of period registers using excelize.
// Accountants live in spreadsheets; registers export with the same row and
// summary figures the JSON endpoints return.

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Mat-rixMJ/WEBGSTBILL/internal/dto"
)

func paiseToRupees(p int64) float64 {
	return float64(p) / 100
}

// SalesRegisterXLSX renders the sales register as an XLSX workbook.
func SalesRegisterXLSX(report *dto.SalesRegisterResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sales Register"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Invoice No", "Date", "Customer", "GSTIN", "Place of Supply",
		"Taxable", "CGST", "SGST", "IGST", "Total GST", "Grand Total", "Status",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, row := range report.Rows {
		r := i + 2
		gstin := ""
		if row.CustomerGSTIN != nil {
			gstin = *row.CustomerGSTIN
		}
		values := []interface{}{
			row.InvoiceNumber, row.InvoiceDate, row.CustomerName, gstin, row.PlaceOfSupply,
			paiseToRupees(row.TaxablePaise), paiseToRupees(row.CGSTPaise),
			paiseToRupees(row.SGSTPaise), paiseToRupees(row.IGSTPaise),
			paiseToRupees(row.TotalGSTPaise), paiseToRupees(row.GrandTotalPaise), row.Status,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r)
			f.SetCellValue(sheet, cell, v)
		}
	}

	writeRegisterSummary(f, sheet, len(report.Rows)+3, report.Summary)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// PurchaseRegisterXLSX renders the purchase register as an XLSX workbook.
func PurchaseRegisterXLSX(report *dto.PurchaseRegisterResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Purchase Register"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Purchase No", "Supplier Invoice", "Date", "Supplier", "GSTIN",
		"Taxable", "CGST", "SGST", "IGST", "Total GST", "Grand Total", "Status",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, row := range report.Rows {
		r := i + 2
		gstin := ""
		if row.SupplierGSTIN != nil {
			gstin = *row.SupplierGSTIN
		}
		values := []interface{}{
			row.PurchaseNumber, row.SupplierInvoiceNo, row.InvoiceDate, row.SupplierName, gstin,
			paiseToRupees(row.TaxablePaise), paiseToRupees(row.CGSTPaise),
			paiseToRupees(row.SGSTPaise), paiseToRupees(row.IGSTPaise),
			paiseToRupees(row.TotalGSTPaise), paiseToRupees(row.GrandTotalPaise), row.Status,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r)
			f.SetCellValue(sheet, cell, v)
		}
	}

	writeRegisterSummary(f, sheet, len(report.Rows)+3, report.Summary)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRegisterSummary(f *excelize.File, sheet string, row int, s dto.RegisterSummary) {
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "TOTALS")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("%d documents (%d cancelled)", s.CountDocuments, s.CountCancelled))
	f.SetCellValue(sheet, fmt.Sprintf("F%d", row), paiseToRupees(s.TaxablePaise))
	f.SetCellValue(sheet, fmt.Sprintf("G%d", row), paiseToRupees(s.CGSTPaise))
	f.SetCellValue(sheet, fmt.Sprintf("H%d", row), paiseToRupees(s.SGSTPaise))
	f.SetCellValue(sheet, fmt.Sprintf("I%d", row), paiseToRupees(s.IGSTPaise))
	f.SetCellValue(sheet, fmt.Sprintf("J%d", row), paiseToRupees(s.TotalGSTPaise))
	f.SetCellValue(sheet, fmt.Sprintf("K%d", row), paiseToRupees(s.GrandTotalPaise))
}
