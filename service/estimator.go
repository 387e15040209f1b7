package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yashsharma-007/Financeautomation/model"
	"github.com/yashsharma-007/Financeautomation/storage"
)

// Estimator computes GST liability from income and expenses and keeps a
// history of past calculations.
type Estimator struct {
	estimates *storage.Store[model.TaxEstimate]
	gstRate   float64
}

func NewEstimator(estimates *storage.Store[model.TaxEstimate], gstRate float64) *Estimator {
	if gstRate <= 0 {
		gstRate = 0.18
	}
	return &Estimator{estimates: estimates, gstRate: gstRate}
}

// Estimate calculates liability, persists the calculation and returns it.
// Liability is rate * (income - expenses), floored at zero. Negative
// inputs are rejected.
func (e *Estimator) Estimate(ctx context.Context, income, expenses float64) (model.TaxEstimate, error) {
	if income < 0 || expenses < 0 {
		return model.TaxEstimate{}, fmt.Errorf("income and expenses must be non-negative")
	}

	liability := (income - expenses) * e.gstRate
	if liability < 0 {
		liability = 0
	}

	estimate := model.TaxEstimate{
		ID:        uuid.New().String(),
		Income:    income,
		Expenses:  expenses,
		Liability: liability,
		CreatedAt: time.Now(),
	}

	return e.estimates.Add(ctx, estimate)
}

// History returns all saved estimates in insertion order.
func (e *Estimator) History(ctx context.Context) []model.TaxEstimate {
	return e.estimates.GetAll(ctx)
}
