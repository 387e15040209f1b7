package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/yashsharma-007/Financeautomation/model"
	"github.com/yashsharma-007/Financeautomation/storage"
)

// fakeRecognizer returns canned text or an error, optionally after a delay.
type fakeRecognizer struct {
	text  string
	err   error
	delay time.Duration
}

func (f *fakeRecognizer) Recognize(ctx context.Context, image []byte, language string) (string, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

func newTestPipeline(t *testing.T, rec Recognizer) (*Pipeline, *storage.Store[model.Invoice]) {
	t.Helper()
	backend, err := storage.NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create backend: %v", err)
	}
	invoices := storage.NewStore[model.Invoice](backend, storage.KeyInvoices)
	return NewPipeline(invoices, rec, nil, "eng", time.Second), invoices
}

func TestSubmitPersistsProcessingImmediately(t *testing.T) {
	ctx := context.Background()
	// Recognizer that blocks long enough to observe the intermediate state
	pipeline, invoices := newTestPipeline(t, &fakeRecognizer{text: "Invoice No: X", delay: 200 * time.Millisecond})

	inv, err := pipeline.Submit(ctx, "scan.jpg", "image/jpeg", []byte("img"))
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if inv.ID == "" {
		t.Error("Expected submit to return an id")
	}
	if inv.Status != model.InvoiceStatusProcessing {
		t.Errorf("Expected processing status, got %s", inv.Status)
	}

	// The record is persisted before recognition finishes.
	items := invoices.GetAll(ctx)
	if len(items) != 1 || items[0].Status != model.InvoiceStatusProcessing {
		t.Errorf("Expected persisted processing record, got %+v", items)
	}
	if items[0].Fields != nil || items[0].ErrorMsg != "" {
		t.Error("Expected neither fields nor error on a processing record")
	}

	pipeline.Wait()
}

func TestSubmitCompletesWithFields(t *testing.T) {
	ctx := context.Background()
	text := "Invoice No: INV-2024-001 GSTIN: 22AAAAA0000A1Z5 Total Amount: ₹1,250.50 Tax Amount: ₹225.00 Date: 05/03/2024"
	pipeline, invoices := newTestPipeline(t, &fakeRecognizer{text: text})

	inv, err := pipeline.Submit(ctx, "scan.jpg", "image/png", []byte("img"))
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	pipeline.Wait()

	items := invoices.GetAll(ctx)
	if len(items) != 1 {
		t.Fatalf("Expected 1 invoice, got %d", len(items))
	}
	got := items[0]
	if got.ID != inv.ID {
		t.Errorf("Expected same record, got %s", got.ID)
	}
	if got.Status != model.InvoiceStatusCompleted {
		t.Fatalf("Expected completed, got %s", got.Status)
	}
	if got.Fields == nil {
		t.Fatal("Expected fields on a completed invoice")
	}
	if got.Fields.InvoiceNo != "INV-2024-001" || got.Fields.Amount != 1250.50 {
		t.Errorf("Expected extracted fields, got %+v", got.Fields)
	}
	if got.ErrorMsg != "" {
		t.Errorf("Expected no error message on completed invoice, got %q", got.ErrorMsg)
	}
}

func TestSubmitOCRFailure(t *testing.T) {
	ctx := context.Background()
	pipeline, invoices := newTestPipeline(t, &fakeRecognizer{err: errors.New("service unavailable")})

	if _, err := pipeline.Submit(ctx, "scan.jpg", "image/jpeg", []byte("img")); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	pipeline.Wait()

	items := invoices.GetAll(ctx)
	if len(items) != 1 {
		t.Fatalf("Expected 1 invoice, got %d", len(items))
	}
	got := items[0]
	if got.Status != model.InvoiceStatusError {
		t.Fatalf("Expected error status, got %s", got.Status)
	}
	if got.ErrorMsg == "" {
		t.Error("Expected error message to be set")
	}
	// The underlying failure detail is retained for observability.
	if want := "service unavailable"; !strings.Contains(got.ErrorMsg, want) {
		t.Errorf("Expected error message to retain %q, got %q", want, got.ErrorMsg)
	}
	if got.Fields != nil {
		t.Error("Expected no fields on a failed invoice")
	}
}

func TestSubmitUnsupportedType(t *testing.T) {
	ctx := context.Background()
	pipeline, invoices := newTestPipeline(t, &fakeRecognizer{text: "irrelevant"})

	if _, err := pipeline.Submit(ctx, "notes.pdf", "application/pdf", []byte("pdf")); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	pipeline.Wait()

	// Non-image uploads previously stayed in processing forever; they now
	// land in a terminal error state.
	items := invoices.GetAll(ctx)
	if len(items) != 1 {
		t.Fatalf("Expected 1 invoice, got %d", len(items))
	}
	got := items[0]
	if got.Status != model.InvoiceStatusError {
		t.Fatalf("Expected terminal error for unsupported type, got %s", got.Status)
	}
	if !strings.Contains(got.ErrorMsg, "unsupported file type") {
		t.Errorf("Expected unsupported-type message, got %q", got.ErrorMsg)
	}
}

func TestSubmitOCRTimeout(t *testing.T) {
	ctx := context.Background()
	backend, err := storage.NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create backend: %v", err)
	}
	invoices := storage.NewStore[model.Invoice](backend, storage.KeyInvoices)
	// Recognizer far slower than the pipeline deadline
	pipeline := NewPipeline(invoices, &fakeRecognizer{text: "x", delay: time.Second}, nil, "eng", 30*time.Millisecond)

	if _, err := pipeline.Submit(ctx, "scan.jpg", "image/jpeg", []byte("img")); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	pipeline.Wait()

	items := invoices.GetAll(ctx)
	if items[0].Status != model.InvoiceStatusError {
		t.Fatalf("Expected timed-out ingestion to end in error, got %s", items[0].Status)
	}
}

func TestSubmitConcurrentFiles(t *testing.T) {
	ctx := context.Background()
	pipeline, invoices := newTestPipeline(t, &fakeRecognizer{text: "Invoice No: C-1", delay: 10 * time.Millisecond})

	const n = 5
	for i := 0; i < n; i++ {
		if _, err := pipeline.Submit(ctx, "scan.jpg", "image/jpeg", []byte("img")); err != nil {
			t.Fatalf("Submit %d failed: %v", i, err)
		}
	}
	pipeline.Wait()

	items := invoices.GetAll(ctx)
	if len(items) != n {
		t.Fatalf("Expected %d invoices, got %d", n, len(items))
	}
	for _, item := range items {
		if item.Status != model.InvoiceStatusCompleted {
			t.Errorf("Expected %s completed, got %s", item.ID, item.Status)
		}
	}
}

func TestSubmitNoAutomaticRetry(t *testing.T) {
	ctx := context.Background()
	pipeline, invoices := newTestPipeline(t, &fakeRecognizer{err: errors.New("down")})

	if _, err := pipeline.Submit(ctx, "scan.jpg", "image/jpeg", []byte("img")); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	pipeline.Wait()

	// Resubmission creates a fresh record rather than reviving the old one.
	if _, err := pipeline.Submit(ctx, "scan.jpg", "image/jpeg", []byte("img")); err != nil {
		t.Fatalf("Resubmit failed: %v", err)
	}
	pipeline.Wait()

	items := invoices.GetAll(ctx)
	if len(items) != 2 {
		t.Fatalf("Expected 2 independent records, got %d", len(items))
	}
	if items[0].ID == items[1].ID {
		t.Error("Expected resubmission to create a new id")
	}
}
