package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yashsharma-007/Financeautomation/service"
)

type ComplianceHandler struct {
	compliance *service.ComplianceService
}

func NewComplianceHandler(compliance *service.ComplianceService) *ComplianceHandler {
	return &ComplianceHandler{compliance: compliance}
}

// ListIssues returns compliance issues, seeding defaults on first access.
func (h *ComplianceHandler) ListIssues(c *gin.Context) {
	issues := h.compliance.Issues(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"issues": issues})
}

type ReportIssueRequest struct {
	Type     string `json:"type" binding:"required"`
	Message  string `json:"message" binding:"required"`
	Affected string `json:"affected"`
	Details  string `json:"details"`
}

// ReportIssue records a new compliance issue.
func (h *ComplianceHandler) ReportIssue(c *gin.Context) {
	var req ReportIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type and message are required"})
		return
	}

	issue, err := h.compliance.ReportIssue(c.Request.Context(), req.Type, req.Message, req.Affected, req.Details)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, issue)
}

// ToggleIssue flips an issue between open and resolved.
func (h *ComplianceHandler) ToggleIssue(c *gin.Context) {
	found, err := h.compliance.ToggleIssue(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Issue updated"})
}
