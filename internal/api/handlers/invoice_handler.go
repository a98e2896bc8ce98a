package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"cloudmzansi/server/internal/models"
	"cloudmzansi/server/internal/services"
	"cloudmzansi/server/internal/store"
)

// InvoiceHandler handles invoice endpoints.
type InvoiceHandler struct {
	billingService      services.IBillingService
	notificationService services.INotificationService
	store               *store.Store
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(billingService services.IBillingService, notificationService services.INotificationService, st *store.Store) *InvoiceHandler {
	return &InvoiceHandler{
		billingService:      billingService,
		notificationService: notificationService,
		store:               st,
	}
}

// generateInvoiceRequest is the POST /api/invoice/generate body. due_date
// must be a bare calendar date. The scheduler bypasses this schema and calls
// the billing service directly, so its defaulting of due_date and status
// stays service-side.
type generateInvoiceRequest struct {
	ClientID       string                 `json:"clientId" binding:"required,uuid"`
	SubscriptionID string                 `json:"subscriptionId"`
	PlanID         string                 `json:"planId"`
	Amount         float64                `json:"amount" binding:"required,gt=0"`
	TaxRate        float64                `json:"taxRate" binding:"omitempty,gte=0"`
	DueDate        string                 `json:"due_date" binding:"required,datetime=2006-01-02"`
	Status         string                 `json:"status" binding:"required"`
	Notes          string                 `json:"notes"`
	TemplateID     string                 `json:"templateId"`
	CustomFields   map[string]interface{} `json:"customFields"`
}

// Generate handles POST /api/invoice/generate
func (h *InvoiceHandler) Generate(c *gin.Context) {
	var req generateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid invoice data", "errors": err.Error()})
		return
	}

	invoice, err := h.billingService.GenerateInvoice(c.Request.Context(), services.GenerateInvoiceInput{
		ClientID:       req.ClientID,
		SubscriptionID: req.SubscriptionID,
		PlanID:         req.PlanID,
		Amount:         req.Amount,
		TaxRate:        req.TaxRate,
		DueDate:        req.DueDate,
		Status:         req.Status,
		Notes:          req.Notes,
		TemplateID:     req.TemplateID,
		CustomFields:   req.CustomFields,
	})
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate invoice"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "invoice": invoice})
}

// Status handles GET /api/invoice/:invoiceId/status
func (h *InvoiceHandler) Status(c *gin.Context) {
	invoiceID := c.Param("invoiceId")
	status, err := h.billingService.GetInvoiceStatus(c.Request.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Invoice not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch invoice status"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": status})
}

// lateRequest is the POST /api/invoice/late body.
type lateRequest struct {
	InvoiceID string `json:"invoiceId" binding:"required"`
}

// Late handles POST /api/invoice/late: it re-sends the late payment email
// for one invoice on demand.
func (h *InvoiceHandler) Late(c *gin.Context) {
	var req lateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "errors": err.Error()})
		return
	}

	var invoice models.Invoice
	if err := h.store.FindOne(c.Request.Context(), store.TableInvoices, bson.M{"_id": req.InvoiceID}, &invoice); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Invoice not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to handle late payment"})
		return
	}

	if err := h.notificationService.SendLatePaymentNotification(c.Request.Context(), &invoice); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to handle late payment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Analytics handles GET /api/invoice/analytics
func (h *InvoiceHandler) Analytics(c *gin.Context) {
	analytics, err := h.billingService.GetInvoiceAnalytics(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch invoice analytics"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"totalInvoiced": analytics.TotalInvoiced,
		"totalPaid":     analytics.TotalPaid,
		"overdueCount":  analytics.OverdueCount,
	})
}

// Overdue handles GET /api/invoice/overdue (admin only).
func (h *InvoiceHandler) Overdue(c *gin.Context) {
	invoices := h.billingService.GetOverdueInvoices(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true, "invoices": invoices})
}
