package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yashsharma-007/Financeautomation/service"
)

type EstimateHandler struct {
	estimator *service.Estimator
}

func NewEstimateHandler(estimator *service.Estimator) *EstimateHandler {
	return &EstimateHandler{estimator: estimator}
}

// Zero is a legitimate income, so no required tag: gin's required treats
// a float zero value as missing and would reject it.
type EstimateRequest struct {
	Income   float64 `json:"income" binding:"gte=0"`
	Expenses float64 `json:"expenses" binding:"gte=0"`
}

// Create computes a GST liability estimate and appends it to the history.
func (h *EstimateHandler) Create(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Income and expenses must be non-negative numbers"})
		return
	}

	estimate, err := h.estimator.Estimate(c.Request.Context(), req.Income, req.Expenses)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, estimate)
}

// History returns past estimates, newest last.
func (h *EstimateHandler) History(c *gin.Context) {
	estimates := h.estimator.History(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"estimates": estimates})
}
