package storage

import (
	"sync"

	"github.com/yashsharma-007/Financeautomation/model"
)

// Backend keys, one per collection. These match the keys the dashboard has
// always persisted under, so existing data stays readable.
const (
	KeyInvoices         = "gst_invoices"
	KeyTaxEstimates     = "gst_tax_estimates"
	KeyITCMismatches    = "gst_itc_mismatches"
	KeyComplianceIssues = "gst_compliance_issues"
	KeyUserProfiles     = "gst_user_profiles"
	KeyBusinessSettings = "gst_business_settings"
	KeyBillingInfo      = "gst_billing_info"
	KeyCurrentUser      = "gst_current_user"
)

// Registry bundles the seven typed collections over one backend. There are
// no cross-collection transactions: an operation touching two collections
// is two independent store calls.
type Registry struct {
	backend   Backend
	sessionMu sync.Mutex

	Invoices         *Store[model.Invoice]
	TaxEstimates     *Store[model.TaxEstimate]
	ITCMismatches    *Store[model.ITCMismatch]
	ComplianceIssues *Store[model.ComplianceIssue]
	Users            *Store[model.UserProfile]
	BusinessSettings *Store[model.BusinessSettings]
	Billing          *Store[model.BillingInfo]
}

func NewRegistry(backend Backend) *Registry {
	return &Registry{
		backend:          backend,
		Invoices:         NewStore[model.Invoice](backend, KeyInvoices),
		TaxEstimates:     NewStore[model.TaxEstimate](backend, KeyTaxEstimates),
		ITCMismatches:    NewStore[model.ITCMismatch](backend, KeyITCMismatches),
		ComplianceIssues: NewStore[model.ComplianceIssue](backend, KeyComplianceIssues),
		Users:            NewStore[model.UserProfile](backend, KeyUserProfiles),
		BusinessSettings: NewStore[model.BusinessSettings](backend, KeyBusinessSettings),
		Billing:          NewStore[model.BillingInfo](backend, KeyBillingInfo),
	}
}

// Close releases the underlying backend.
func (r *Registry) Close() error {
	return r.backend.Close()
}
