package model

import (
	"time"
)

// Invoice statuses. Processing is the only non-terminal state: the
// ingestion pipeline moves a record to exactly one of Completed or Error
// and never touches it again.
const (
	InvoiceStatusProcessing = "processing"
	InvoiceStatusCompleted  = "completed"
	InvoiceStatusError      = "error"
)

// ExtractedFields holds the structured values recognized from an uploaded
// invoice. A field the extractor could not match is present with its
// default ("N/A" for strings, 0 for amounts), never absent.
type ExtractedFields struct {
	InvoiceNo string  `json:"invoiceNo"`
	GSTIN     string  `json:"gstin"`
	Amount    float64 `json:"amount"`
	TaxAmount float64 `json:"taxAmount"`
	Date      string  `json:"date"`
}

// Invoice represents one uploaded invoice document.
// Exactly one of Fields/ErrorMsg is set, determined by Status.
type Invoice struct {
	ID        string           `json:"id"`
	FileName  string           `json:"fileName"`
	Status    string           `json:"status"`
	Fields    *ExtractedFields `json:"data,omitempty"`
	ErrorMsg  string           `json:"error,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

func (i Invoice) EntityID() string { return i.ID }
