package handlers

import (
	"log"

	"github.com/gin-gonic/gin"

	"cloudmzansi/server/internal/api/middleware"
	"cloudmzansi/server/internal/models"
	"cloudmzansi/server/internal/services"
)

// AnalyticsHandler serves the analytics and reporting endpoints. No report
// is implemented yet, so every endpoint answers 501, but each view is still
// audited so demand for the reports is traceable before they ship.
type AnalyticsHandler struct {
	auditService services.IRetentionService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(auditService services.IRetentionService) *AnalyticsHandler {
	return &AnalyticsHandler{auditService: auditService}
}

func (h *AnalyticsHandler) logView(c *gin.Context, endpoint string) {
	userID := middleware.UserID(c)
	if userID == "" {
		userID = "system"
	}
	meta := map[string]interface{}{"endpoint": endpoint}
	if err := h.auditService.LogAuditEvent(c.Request.Context(), models.AuditEventAnalyticsReport, userID, meta); err != nil {
		log.Printf("Failed to log analytics view: %v", err)
	}
}

// Report returns the gin handler for one analytics or reporting endpoint.
func (h *AnalyticsHandler) Report(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.logView(c, name)
		respondPortal(c, services.ErrNotImplemented)
	}
}
