package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yashsharma-007/Financeautomation/model"
	"github.com/yashsharma-007/Financeautomation/storage"
)

// ComplianceService owns ITC reconciliation mismatches and compliance
// issues. Both collections seed sample records on first read so a fresh
// dashboard has something to reconcile, and both statuses toggle freely
// in either direction.
type ComplianceService struct {
	mismatches *storage.Store[model.ITCMismatch]
	issues     *storage.Store[model.ComplianceIssue]
}

func NewComplianceService(mismatches *storage.Store[model.ITCMismatch], issues *storage.Store[model.ComplianceIssue]) *ComplianceService {
	return &ComplianceService{mismatches: mismatches, issues: issues}
}

// Mismatches returns all ITC mismatches, seeding samples when empty.
func (s *ComplianceService) Mismatches(ctx context.Context) []model.ITCMismatch {
	existing := s.mismatches.GetAll(ctx)
	if len(existing) > 0 {
		return existing
	}

	seed := []model.ITCMismatch{
		{
			ID:        uuid.New().String(),
			Supplier:  "ABC Enterprises",
			InvoiceNo: "INV-2024-001",
			Amount:    25000,
			Issue:     "GSTR-1 amount mismatch",
			Status:    model.MismatchStatusPending,
			CreatedAt: time.Now(),
		},
		{
			ID:        uuid.New().String(),
			Supplier:  "XYZ Trading",
			InvoiceNo: "INV-2024-015",
			Amount:    18500,
			Issue:     "Invoice not found in GSTR-1",
			Status:    model.MismatchStatusResolved,
			CreatedAt: time.Now(),
		},
	}
	for _, m := range seed {
		if _, err := s.mismatches.Add(ctx, m); err != nil {
			return existing
		}
	}
	return s.mismatches.GetAll(ctx)
}

// RefreshMismatches simulates a reconciliation run against filed returns
// and records one new pending mismatch.
func (s *ComplianceService) RefreshMismatches(ctx context.Context) (model.ITCMismatch, error) {
	mismatch := model.ITCMismatch{
		ID:        uuid.New().String(),
		Supplier:  "New Supplier Ltd",
		InvoiceNo: "INV-" + strings.ToUpper(uuid.New().String()[:6]),
		Amount:    12400,
		Issue:     "Tax amount calculation mismatch",
		Status:    model.MismatchStatusPending,
		CreatedAt: time.Now(),
	}
	return s.mismatches.Add(ctx, mismatch)
}

// ToggleMismatch flips a mismatch between pending and resolved.
func (s *ComplianceService) ToggleMismatch(ctx context.Context, id string) (bool, error) {
	return s.mismatches.Update(ctx, id, func(m *model.ITCMismatch) {
		if m.Status == model.MismatchStatusPending {
			m.Status = model.MismatchStatusResolved
		} else {
			m.Status = model.MismatchStatusPending
		}
	})
}

// Issues returns all compliance issues, seeding samples when empty.
func (s *ComplianceService) Issues(ctx context.Context) []model.ComplianceIssue {
	existing := s.issues.GetAll(ctx)
	if len(existing) > 0 {
		return existing
	}

	seed := []model.ComplianceIssue{
		{
			ID:        uuid.New().String(),
			Severity:  model.SeverityCritical,
			Message:   "GSTR-3B for the previous period has not been filed",
			Affected:  "GSTR-3B",
			Details:   "Filing is past due; late fees accrue daily until submission.",
			Status:    model.IssueStatusOpen,
			CreatedAt: time.Now(),
		},
		{
			ID:        uuid.New().String(),
			Severity:  model.SeverityWarning,
			Message:   "2 invoices are missing GSTIN details",
			Affected:  "INV-2024-008, INV-2024-012",
			Details:   "Invoices without a supplier GSTIN cannot be claimed for input credit.",
			Status:    model.IssueStatusOpen,
			CreatedAt: time.Now(),
		},
	}
	for _, issue := range seed {
		if _, err := s.issues.Add(ctx, issue); err != nil {
			return existing
		}
	}
	return s.issues.GetAll(ctx)
}

// ReportIssue records a new compliance issue.
func (s *ComplianceService) ReportIssue(ctx context.Context, severity, message, affected, details string) (model.ComplianceIssue, error) {
	if severity != model.SeverityCritical && severity != model.SeverityWarning {
		return model.ComplianceIssue{}, fmt.Errorf("unknown severity %q", severity)
	}
	issue := model.ComplianceIssue{
		ID:        uuid.New().String(),
		Severity:  severity,
		Message:   message,
		Affected:  affected,
		Details:   details,
		Status:    model.IssueStatusOpen,
		CreatedAt: time.Now(),
	}
	return s.issues.Add(ctx, issue)
}

// ToggleIssue flips an issue between open and resolved.
func (s *ComplianceService) ToggleIssue(ctx context.Context, id string) (bool, error) {
	return s.issues.Update(ctx, id, func(issue *model.ComplianceIssue) {
		if issue.Status == model.IssueStatusOpen {
			issue.Status = model.IssueStatusResolved
		} else {
			issue.Status = model.IssueStatusOpen
		}
	})
}
