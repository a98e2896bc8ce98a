package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"cloudmzansi/server/internal/config"
	"cloudmzansi/server/internal/payfast"
	"cloudmzansi/server/internal/services"
)

// PayFastHandler handles PayFast checkout and ITN endpoints.
type PayFastHandler struct {
	cfg                 *config.Config
	client              *payfast.Client
	verifier            payfast.Verifier
	billingService      services.IBillingService
	notificationService services.INotificationService
}

// NewPayFastHandler creates a new PayFastHandler.
func NewPayFastHandler(
	cfg *config.Config,
	client *payfast.Client,
	verifier payfast.Verifier,
	billingService services.IBillingService,
	notificationService services.INotificationService,
) *PayFastHandler {
	return &PayFastHandler{
		cfg:                 cfg,
		client:              client,
		verifier:            verifier,
		billingService:      billingService,
		notificationService: notificationService,
	}
}

// initiateRequest is the POST /api/payfast/initiate body. Field names
// follow PayFast's own parameter naming.
type initiateRequest struct {
	NameFirst    string  `json:"name_first"`
	NameLast     string  `json:"name_last"`
	EmailAddress string  `json:"email_address" binding:"required,email"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	ItemName     string  `json:"item_name" binding:"required"`
	ReturnURL    string  `json:"return_url"`
	CancelURL    string  `json:"cancel_url"`
	NotifyURL    string  `json:"notify_url"`
}

// subscribeRequest extends initiateRequest with recurring billing fields.
type subscribeRequest struct {
	initiateRequest
	Frequency string `json:"frequency"` // PayFast frequency code, e.g. "3" for monthly
	Cycles    int    `json:"cycles"`    // 0 = indefinite
}

// Initiate handles POST /api/payfast/initiate
func (h *PayFastHandler) Initiate(c *gin.Context) {
	var req initiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payment request", "errors": err.Error()})
		return
	}

	paymentURL := h.client.PaymentURL(payfast.PaymentRequest{
		ReturnURL:    req.ReturnURL,
		CancelURL:    req.CancelURL,
		NotifyURL:    req.NotifyURL,
		NameFirst:    req.NameFirst,
		NameLast:     req.NameLast,
		EmailAddress: req.EmailAddress,
		Amount:       req.Amount,
		ItemName:     req.ItemName,
	})
	c.JSON(http.StatusOK, gin.H{"paymentUrl": paymentURL})
}

// Subscribe handles POST /api/payfast/subscribe
func (h *PayFastHandler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid subscription request", "errors": err.Error()})
		return
	}

	frequency := req.Frequency
	if frequency == "" {
		frequency = payfast.FrequencyMonthly
	}

	paymentURL := h.client.SubscriptionURL(payfast.SubscriptionRequest{
		PaymentRequest: payfast.PaymentRequest{
			ReturnURL:    req.ReturnURL,
			CancelURL:    req.CancelURL,
			NotifyURL:    req.NotifyURL,
			NameFirst:    req.NameFirst,
			NameLast:     req.NameLast,
			EmailAddress: req.EmailAddress,
			Amount:       req.Amount,
			ItemName:     req.ItemName,
		},
		Frequency: frequency,
		Cycles:    req.Cycles,
	})
	c.JSON(http.StatusOK, gin.H{"paymentUrl": paymentURL})
}

// Webhook handles POST /api/payfast/webhook, PayFast's ITN callback. The
// payload is validated against PayFast's servers before any status change
// is applied. An invalid notification is acknowledged with 200 and
// otherwise ignored, as PayFast retries non-200 responses.
func (h *PayFastHandler) Webhook(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid ITN payload"})
		return
	}
	payload := c.Request.PostForm
	log.Printf("PayFast ITN webhook received: payment_status=%s invoice_id=%s", payload.Get("payment_status"), payload.Get("invoice_id"))

	valid, err := h.verifier.Verify(c.Request.Context(), payload)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to process PayFast webhook"})
		return
	}
	if !valid {
		log.Println("PayFast ITN: INVALID notification")
		c.String(http.StatusOK, "OK")
		return
	}

	ctx := c.Request.Context()
	paymentStatus := payload.Get("payment_status")
	invoiceID := payload.Get("invoice_id")
	subscriptionID := payload.Get("subscription_id")

	if paymentStatus != "" {
		if invoiceID != "" {
			if err := h.billingService.UpdatePaymentStatus(ctx, invoiceID, paymentStatus); err != nil {
				log.Printf("[Webhook] Failed to update invoice %s: %v", invoiceID, err)
			} else {
				log.Printf("[Webhook] Updated invoice %s to status %s", invoiceID, paymentStatus)
			}
		}
		if subscriptionID != "" {
			if err := h.billingService.UpdateSubscriptionStatus(ctx, subscriptionID, paymentStatus); err != nil {
				log.Printf("[Webhook] Failed to update subscription %s: %v", subscriptionID, err)
			} else {
				log.Printf("[Webhook] Updated subscription %s to status %s", subscriptionID, paymentStatus)
			}
		}

		if paymentStatus == payfast.StatusFailed || paymentStatus == payfast.StatusCancelled {
			toEmail := payload.Get("email_address")
			if toEmail == "" {
				toEmail = h.cfg.SmtpFromAddress
			}
			message := fmt.Sprintf("Payment failed or cancelled for invoice %s and subscription %s",
				orNA(invoiceID), orNA(subscriptionID))
			if err := h.notificationService.SendPaymentNotification(ctx, toEmail, message); err != nil {
				log.Printf("[Webhook] Failed to send payment notification: %v", err)
			}
		}
		if paymentStatus == payfast.StatusComplete {
			log.Printf("[Webhook] Payment complete for invoice %s and subscription %s", orNA(invoiceID), orNA(subscriptionID))
		}
	}

	c.String(http.StatusOK, "OK")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
