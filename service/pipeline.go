package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yashsharma-007/Financeautomation/model"
	"github.com/yashsharma-007/Financeautomation/storage"
)

// Pipeline drives one uploaded file from submission to a terminal invoice
// state: persist a processing record, recognize text through the external
// OCR collaborator, extract fields, persist completed or error. Failed
// ingestions are not retried; resubmission creates a fresh record.
type Pipeline struct {
	invoices   *storage.Store[model.Invoice]
	recognizer Recognizer
	archive    *ArchiveService // optional, may be nil
	language   string
	ocrTimeout time.Duration

	wg sync.WaitGroup
}

func NewPipeline(invoices *storage.Store[model.Invoice], recognizer Recognizer, archive *ArchiveService, language string, ocrTimeout time.Duration) *Pipeline {
	if ocrTimeout <= 0 {
		ocrTimeout = 60 * time.Second
	}
	return &Pipeline{
		invoices:   invoices,
		recognizer: recognizer,
		archive:    archive,
		language:   language,
		ocrTimeout: ocrTimeout,
	}
}

// Submit creates and persists a processing invoice for the file and kicks
// off recognition in the background. It never blocks on OCR; the returned
// record is already persisted. Multiple submissions progress concurrently
// with no completion-order guarantee between files.
func (p *Pipeline) Submit(ctx context.Context, fileName, contentType string, data []byte) (model.Invoice, error) {
	invoice := model.Invoice{
		ID:        uuid.New().String(),
		FileName:  fileName,
		Status:    model.InvoiceStatusProcessing,
		CreatedAt: time.Now(),
	}

	stored, err := p.invoices.Add(ctx, invoice)
	if err != nil {
		return model.Invoice{}, fmt.Errorf("failed to persist invoice: %w", err)
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.process(stored, contentType, data)
	}()

	return stored, nil
}

// Wait blocks until all in-flight ingestions reach a terminal state.
func (p *Pipeline) Wait() {
	p.wg.Wait()
}

// process runs detached from the submitting request: the record must end
// in a terminal state regardless of what the caller does next.
func (p *Pipeline) process(invoice model.Invoice, contentType string, data []byte) {
	// Non-image uploads used to sit in processing forever; they now fail
	// out immediately so the user sees a terminal status.
	if !strings.HasPrefix(contentType, "image/") {
		p.fail(invoice.ID, fmt.Sprintf("unsupported file type %q: only image files can be processed", contentType))
		return
	}

	if p.archive != nil {
		p.archiveSource(invoice, contentType, data)
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.ocrTimeout)
	defer cancel()

	text, err := p.recognizer.Recognize(ctx, data, p.language)
	if err != nil {
		p.fail(invoice.ID, "text recognition failed: "+err.Error())
		return
	}

	fields := ExtractFields(text)
	p.complete(invoice.ID, fields)
}

func (p *Pipeline) complete(id string, fields model.ExtractedFields) {
	found, err := p.invoices.Update(context.Background(), id, func(inv *model.Invoice) {
		inv.Status = model.InvoiceStatusCompleted
		inv.Fields = &fields
		inv.ErrorMsg = ""
	})
	if err != nil {
		slog.Error("failed to persist completed invoice", "invoice_id", id, "error", err)
		return
	}
	if !found {
		// Deleted while processing; nothing left to update.
		slog.Info("invoice removed before completion", "invoice_id", id)
		return
	}
	slog.Info("invoice processing completed", "invoice_id", id, "invoice_no", fields.InvoiceNo)
}

func (p *Pipeline) fail(id, msg string) {
	found, err := p.invoices.Update(context.Background(), id, func(inv *model.Invoice) {
		inv.Status = model.InvoiceStatusError
		inv.ErrorMsg = msg
		inv.Fields = nil
	})
	if err != nil {
		slog.Error("failed to persist failed invoice", "invoice_id", id, "error", err)
		return
	}
	if !found {
		slog.Info("invoice removed before failure recorded", "invoice_id", id)
		return
	}
	slog.Warn("invoice processing failed", "invoice_id", id, "reason", msg)
}

func (p *Pipeline) archiveSource(invoice model.Invoice, contentType string, data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Archiving is best effort; losing the source copy never fails ingestion.
	if err := p.archive.StoreFile(ctx, invoice.ID, invoice.FileName, contentType, data); err != nil {
		slog.Warn("failed to archive invoice source file",
			"invoice_id", invoice.ID,
			"file_name", invoice.FileName,
			"error", err,
		)
	}
}
