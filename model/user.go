package model

import (
	"time"
)

// User roles. The first registered user becomes the admin.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// UserProfile is a registered dashboard user. PasswordHash is a bcrypt
// hash and is never serialized into API responses.
type UserProfile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u UserProfile) EntityID() string { return u.ID }

// Taxation schemes for BusinessSettings.
const (
	SchemeRegular     = "regular"
	SchemeComposition = "composition"
)

// BusinessSettings holds a user's business details. At most one record
// per owning user.
type BusinessSettings struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	BusinessName   string    `json:"businessName"`
	GSTIN          string    `json:"gstin"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	TaxationScheme string    `json:"taxationScheme"`
	FinancialYear  string    `json:"financialYear"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (b BusinessSettings) EntityID() string { return b.ID }

// Billing plans and payment statuses.
const (
	PlanFree    = "free"
	PlanBasic   = "basic"
	PlanPremium = "premium"

	BillingActive   = "active"
	BillingInactive = "inactive"

	PaymentPaid    = "paid"
	PaymentPending = "pending"
	PaymentFailed  = "failed"
)

// PaymentMethod is the stored payment instrument, card or UPI.
type PaymentMethod struct {
	Type       string `json:"type"`
	Last4      string `json:"last4,omitempty"`
	ExpiryDate string `json:"expiryDate,omitempty"`
}

// PaymentRecord is one line of billing history.
type PaymentRecord struct {
	ID        string    `json:"id"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"date"`
}

// BillingInfo holds a user's subscription state. At most one record per
// owning user.
type BillingInfo struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Plan            string          `json:"plan"`
	Status          string          `json:"status"`
	NextBillingDate time.Time       `json:"nextBillingDate"`
	PaymentMethod   *PaymentMethod  `json:"paymentMethod,omitempty"`
	BillingHistory  []PaymentRecord `json:"billingHistory"`
}

func (b BillingInfo) EntityID() string { return b.ID }
