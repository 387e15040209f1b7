package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yashsharma-007/Financeautomation/middleware"
	"github.com/yashsharma-007/Financeautomation/model"
	"github.com/yashsharma-007/Financeautomation/storage"
)

// planPrices is the monthly price per plan in INR.
var planPrices = map[string]float64{
	model.PlanFree:    0,
	model.PlanBasic:   499,
	model.PlanPremium: 1499,
}

type BillingHandler struct {
	billing *storage.Store[model.BillingInfo]
}

func NewBillingHandler(billing *storage.Store[model.BillingInfo]) *BillingHandler {
	return &BillingHandler{billing: billing}
}

// Get returns the authenticated user's billing info, defaulting to the
// free plan when none was saved yet.
func (h *BillingHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)

	for _, b := range h.billing.GetAll(c.Request.Context()) {
		if b.UserID == userID {
			c.JSON(http.StatusOK, b)
			return
		}
	}

	c.JSON(http.StatusOK, model.BillingInfo{
		UserID:         userID,
		Plan:           model.PlanFree,
		Status:         model.BillingActive,
		BillingHistory: []model.PaymentRecord{},
	})
}

type UpdatePlanRequest struct {
	Plan          string               `json:"plan" binding:"required"`
	PaymentMethod *model.PaymentMethod `json:"paymentMethod"`
}

// UpdatePlan switches the user's subscription plan. A paid plan records
// a payment and pushes the next billing date a month out.
func (h *BillingHandler) UpdatePlan(c *gin.Context) {
	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Plan is required"})
		return
	}

	price, ok := planPrices[req.Plan]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan"})
		return
	}

	ctx := c.Request.Context()
	userID := middleware.GetUserID(c)
	now := time.Now()

	apply := func(b *model.BillingInfo) {
		b.Plan = req.Plan
		b.Status = model.BillingActive
		if req.PaymentMethod != nil {
			b.PaymentMethod = req.PaymentMethod
		}
		if price > 0 {
			b.NextBillingDate = now.AddDate(0, 1, 0)
			b.BillingHistory = append(b.BillingHistory, model.PaymentRecord{
				ID:        uuid.New().String(),
				Amount:    price,
				Status:    model.PaymentPaid,
				CreatedAt: now,
			})
		}
	}

	for _, b := range h.billing.GetAll(ctx) {
		if b.UserID == userID {
			if _, err := h.billing.Update(ctx, b.ID, apply); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update billing"})
				return
			}
			apply(&b)
			c.JSON(http.StatusOK, b)
			return
		}
	}

	info := model.BillingInfo{
		ID:             uuid.New().String(),
		UserID:         userID,
		BillingHistory: []model.PaymentRecord{},
	}
	apply(&info)

	if _, err := h.billing.Add(ctx, info); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update billing"})
		return
	}
	c.JSON(http.StatusOK, info)
}

type RecordPaymentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// RecordPayment appends a manual payment to the user's billing history,
// for example a renewal paid outside a plan change.
func (h *BillingHandler) RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be a positive number"})
		return
	}

	ctx := c.Request.Context()
	userID := middleware.GetUserID(c)
	record := model.PaymentRecord{
		ID:        uuid.New().String(),
		Amount:    req.Amount,
		Status:    model.PaymentPaid,
		CreatedAt: time.Now(),
	}

	for _, b := range h.billing.GetAll(ctx) {
		if b.UserID == userID {
			if _, err := h.billing.Update(ctx, b.ID, func(info *model.BillingInfo) {
				info.BillingHistory = append(info.BillingHistory, record)
				info.NextBillingDate = record.CreatedAt.AddDate(0, 1, 0)
			}); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
				return
			}
			c.JSON(http.StatusCreated, record)
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "No billing record; choose a plan first"})
}
