package handlers

import (
	"github.com/gin-gonic/gin"

	"cloudmzansi/server/internal/services"
)

// StubHandler backs the endpoint groups reserved for the portal build-out:
// contract lifecycle, the onboarding wizard, project tracking, payment
// tracking and invoice extras. Each endpoint maps to a named operation on
// the portal service, which answers 501 until the feature ships.
type StubHandler struct {
	portalService services.IPortalService
}

// NewStubHandler creates a new StubHandler.
func NewStubHandler(portalService services.IPortalService) *StubHandler {
	return &StubHandler{portalService: portalService}
}

// Operation returns the gin handler for one reserved operation.
func (h *StubHandler) Operation(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondPortal(c, h.portalService.Operation(c.Request.Context(), name))
	}
}
