package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"cloudmzansi/server/internal/models"
	"cloudmzansi/server/internal/services"
)

// ContactHandler handles contact form endpoints.
type ContactHandler struct {
	contactService      services.IContactService
	notificationService services.INotificationService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactService services.IContactService, notificationService services.INotificationService) *ContactHandler {
	return &ContactHandler{
		contactService:      contactService,
		notificationService: notificationService,
	}
}

// contactRequest is the POST /api/contact body.
type contactRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Subject   string `json:"subject" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// Submit handles POST /api/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid form data", "errors": err.Error()})
		return
	}

	submission := &models.ContactSubmission{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
	}
	if err := h.contactService.CreateSubmission(c.Request.Context(), submission); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to submit contact form"})
		return
	}

	// Receipt email is best-effort; the submission is already stored.
	if err := h.notificationService.SendContactReceipt(c.Request.Context(), submission); err != nil {
		log.Printf("Contact receipt for %s not sent: %v", submission.Email, err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "id": submission.ID})
}

// List handles GET /api/contact (admin only).
func (h *ContactHandler) List(c *gin.Context) {
	submissions, err := h.contactService.ListSubmissions(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch contact submissions"})
		return
	}
	c.JSON(http.StatusOK, submissions)
}
