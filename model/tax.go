package model

import (
	"time"
)

// TaxEstimate is one saved GST liability calculation.
type TaxEstimate struct {
	ID        string    `json:"id"`
	Income    float64   `json:"income"`
	Expenses  float64   `json:"expenses"`
	Liability float64   `json:"gstLiability"`
	CreatedAt time.Time `json:"date"`
}

func (t TaxEstimate) EntityID() string { return t.ID }

// ITC mismatch statuses, toggled freely by users in both directions.
const (
	MismatchStatusPending  = "pending"
	MismatchStatusResolved = "resolved"
)

// ITCMismatch is a discrepancy between claimed input tax credit and the
// supplier's filed return.
type ITCMismatch struct {
	ID        string    `json:"id"`
	Supplier  string    `json:"supplier"`
	InvoiceNo string    `json:"invoiceNo"`
	Amount    float64   `json:"amount"`
	Issue     string    `json:"issue"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"date"`
}

func (m ITCMismatch) EntityID() string { return m.ID }

// Compliance issue severities and statuses.
const (
	SeverityCritical = "Critical"
	SeverityWarning  = "Warning"

	IssueStatusOpen     = "open"
	IssueStatusResolved = "resolved"
)

// ComplianceIssue is a filing or data problem flagged for the user.
type ComplianceIssue struct {
	ID        string    `json:"id"`
	Severity  string    `json:"type"`
	Message   string    `json:"message"`
	Affected  string    `json:"affected"`
	Details   string    `json:"details"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"date"`
}

func (c ComplianceIssue) EntityID() string { return c.ID }
