package worker

// invoice_pdf_worker.go
// Renders finalized invoices to PDF and hands the result to the email queue
// when the customer snapshot carries an address. Runs after the finalize
// transaction commits; a crash here never touches invoice or stock state.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Mat-rixMJ/WEBGSTBILL/internal/infra"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/repository"
)

// InvoicePDFJobPayload is the job envelope sent to QueueInvoicePDF.
type InvoicePDFJobPayload struct {
	InvoiceID string `json:"invoice_id"`
}

type InvoicePDFWorker struct {
	invoiceRepo    repository.InvoiceRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
}

func NewInvoicePDFWorker(invoiceRepo repository.InvoiceRepository, dispatcher *Dispatcher, pdfStoragePath string) *InvoicePDFWorker {
	return &InvoicePDFWorker{
		invoiceRepo:    invoiceRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process renders the invoice PDF and optionally enqueues the email job.
func (w *InvoicePDFWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload InvoicePDFJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("invoice_pdf_worker: invalid payload")
		return nil // malformed payloads never succeed on retry
	}

	invoiceID, err := uuid.Parse(payload.InvoiceID)
	if err != nil {
		log.Error().Str("invoice_id", payload.InvoiceID).Msg("invoice_pdf_worker: invalid invoice_id")
		return nil
	}

	inv, err := w.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("invoice %s not found: %w", payload.InvoiceID, err)
	}
	if inv.InvoiceNumber == nil {
		log.Warn().Str("invoice_id", payload.InvoiceID).Msg("invoice_pdf_worker: invoice not finalized, skipping")
		return nil
	}

	pdfPath, err := infra.GenerateInvoicePDF(inv, w.pdfStoragePath)
	if err != nil {
		return fmt.Errorf("render invoice %s: %w", *inv.InvoiceNumber, err)
	}
	log.Info().Str("pdf", pdfPath).Str("invoice", *inv.InvoiceNumber).Msg("invoice_pdf_worker: PDF generated")

	if inv.CustomerSnapshot.Email != nil && *inv.CustomerSnapshot.Email != "" {
		emailJob := EmailJobPayload{
			ToEmail: *inv.CustomerSnapshot.Email,
			Subject: fmt.Sprintf("Tax Invoice %s from %s", *inv.InvoiceNumber, inv.BusinessSnapshot.Name),
			Body: fmt.Sprintf("Please find attached tax invoice %s dated %s.\nAmount: Rs %s",
				*inv.InvoiceNumber, inv.InvoiceDate.Format("02/01/2006"), inv.GrandTotalPaise.Rupees().StringFixed(2)),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *inv.CustomerSnapshot.Email).Msg("invoice_pdf_worker: failed to enqueue email")
		}
	}

	return nil
}
