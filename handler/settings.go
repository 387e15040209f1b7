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

type SettingsHandler struct {
	settings *storage.Store[model.BusinessSettings]
}

func NewSettingsHandler(settings *storage.Store[model.BusinessSettings]) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// GetBusiness returns the authenticated user's business settings, or an
// empty default when none were saved yet.
func (h *SettingsHandler) GetBusiness(c *gin.Context) {
	userID := middleware.GetUserID(c)

	for _, s := range h.settings.GetAll(c.Request.Context()) {
		if s.UserID == userID {
			c.JSON(http.StatusOK, s)
			return
		}
	}

	c.JSON(http.StatusOK, model.BusinessSettings{
		UserID:         userID,
		TaxationScheme: model.SchemeRegular,
	})
}

type BusinessSettingsRequest struct {
	BusinessName   string `json:"businessName" binding:"required"`
	GSTIN          string `json:"gstin"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	TaxationScheme string `json:"taxationScheme"`
	FinancialYear  string `json:"financialYear"`
}

// SaveBusiness creates or replaces the authenticated user's business
// settings. One record per user.
func (h *SettingsHandler) SaveBusiness(c *gin.Context) {
	var req BusinessSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Business name is required"})
		return
	}

	scheme := req.TaxationScheme
	switch scheme {
	case "":
		scheme = model.SchemeRegular
	case model.SchemeRegular, model.SchemeComposition:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid taxation scheme"})
		return
	}

	ctx := c.Request.Context()
	userID := middleware.GetUserID(c)

	apply := func(s *model.BusinessSettings) {
		s.BusinessName = req.BusinessName
		s.GSTIN = req.GSTIN
		s.Address = req.Address
		s.Phone = req.Phone
		s.Email = req.Email
		s.TaxationScheme = scheme
		s.FinancialYear = req.FinancialYear
		s.UpdatedAt = time.Now()
	}

	for _, s := range h.settings.GetAll(ctx) {
		if s.UserID == userID {
			if _, err := h.settings.Update(ctx, s.ID, apply); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
				return
			}
			apply(&s)
			c.JSON(http.StatusOK, s)
			return
		}
	}

	settings := model.BusinessSettings{
		ID:     uuid.New().String(),
		UserID: userID,
	}
	apply(&settings)

	if _, err := h.settings.Add(ctx, settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}
