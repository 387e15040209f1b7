package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yashsharma-007/Financeautomation/middleware"
	"github.com/yashsharma-007/Financeautomation/model"
	"github.com/yashsharma-007/Financeautomation/pkg/logger"
	"github.com/yashsharma-007/Financeautomation/service"
	"github.com/yashsharma-007/Financeautomation/storage"
)

// maxUploadSize bounds invoice uploads to 10 MiB.
const maxUploadSize = 10 << 20

type InvoiceHandler struct {
	pipeline *service.Pipeline
	invoices *storage.Store[model.Invoice]
	archive  *service.ArchiveService
}

// NewInvoiceHandler creates an invoice handler. archive may be nil when
// object archiving is disabled.
func NewInvoiceHandler(pipeline *service.Pipeline, invoices *storage.Store[model.Invoice], archive *service.ArchiveService) *InvoiceHandler {
	return &InvoiceHandler{pipeline: pipeline, invoices: invoices, archive: archive}
}

// Upload accepts an invoice file and starts ingestion. The response
// carries the persisted processing record; recognition continues in the
// background and the client polls the status endpoint.
func (h *InvoiceHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	invoice, err := h.pipeline.Submit(c.Request.Context(), header.Filename, contentType, data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit file: " + err.Error()})
		return
	}

	logger.Info(c.Request.Context(), "invoice submitted",
		"invoice_id", invoice.ID,
		"file_name", invoice.FileName,
		"content_type", contentType,
		"user_id", middleware.GetUserID(c),
	)

	c.JSON(http.StatusAccepted, invoice)
}

// List returns all invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	invoices := h.invoices.GetAll(c.Request.Context())

	result := make([]gin.H, len(invoices))
	for i, inv := range invoices {
		result[i] = gin.H{
			"id":        inv.ID,
			"fileName":  inv.FileName,
			"status":    inv.Status,
			"createdAt": inv.CreatedAt.Format(time.RFC3339),
		}
	}

	c.JSON(http.StatusOK, gin.H{"invoices": result})
}

// Get returns a single invoice with its extracted fields.
func (h *InvoiceHandler) Get(c *gin.Context) {
	id := c.Param("id")

	for _, inv := range h.invoices.GetAll(c.Request.Context()) {
		if inv.ID == id {
			c.JSON(http.StatusOK, inv)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
}

// GetStatus returns the processing status of an invoice.
func (h *InvoiceHandler) GetStatus(c *gin.Context) {
	id := c.Param("id")

	for _, inv := range h.invoices.GetAll(c.Request.Context()) {
		if inv.ID == id {
			c.JSON(http.StatusOK, gin.H{
				"id":     inv.ID,
				"status": inv.Status,
				"error":  inv.ErrorMsg,
			})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
}

// GetFileURL returns a presigned download link for the archived source
// file of an invoice.
func (h *InvoiceHandler) GetFileURL(c *gin.Context) {
	if h.archive == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File archiving is not enabled"})
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")

	for _, inv := range h.invoices.GetAll(ctx) {
		if inv.ID == id {
			url, err := h.archive.GetPresignedURL(ctx, inv.ID, inv.FileName)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate download URL"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"url": url})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
}

// Delete removes an invoice. Deletion is an explicit user action, never
// something the pipeline does on its own.
func (h *InvoiceHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var target *model.Invoice
	for _, inv := range h.invoices.GetAll(ctx) {
		if inv.ID == id {
			target = &inv
			break
		}
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}

	if err := h.invoices.Remove(ctx, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete invoice"})
		return
	}

	// The record is gone either way; a dangling archived object is logged,
	// not surfaced.
	if h.archive != nil {
		if err := h.archive.DeleteFile(ctx, target.ID, target.FileName); err != nil {
			logger.Warn(ctx, "failed to delete archived file", "invoice_id", target.ID, "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted"})
}
