package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yashsharma-007/Financeautomation/service"
)

type ReconciliationHandler struct {
	compliance *service.ComplianceService
}

func NewReconciliationHandler(compliance *service.ComplianceService) *ReconciliationHandler {
	return &ReconciliationHandler{compliance: compliance}
}

// ListMismatches returns the current ITC mismatch list, seeding it on
// first access.
func (h *ReconciliationHandler) ListMismatches(c *gin.Context) {
	mismatches := h.compliance.Mismatches(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"mismatches": mismatches})
}

// Refresh simulates a fresh GSTR-2A pull and appends a new mismatch.
func (h *ReconciliationHandler) Refresh(c *gin.Context) {
	mismatch, err := h.compliance.RefreshMismatches(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh mismatches"})
		return
	}
	c.JSON(http.StatusOK, mismatch)
}

// ToggleMismatch flips a mismatch between pending and resolved.
func (h *ReconciliationHandler) ToggleMismatch(c *gin.Context) {
	found, err := h.compliance.ToggleMismatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update mismatch"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mismatch not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Mismatch updated"})
}
