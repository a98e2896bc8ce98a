package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cloudmzansi/server/internal/services"
)

// PortalHandler exposes the generic /api/v1 resource surface reserved for
// the client portal. Until the backing services ship, every call reports
// 501 rather than pretending to succeed.
type PortalHandler struct {
	portalService services.IPortalService
}

// NewPortalHandler creates a new PortalHandler.
func NewPortalHandler(portalService services.IPortalService) *PortalHandler {
	return &PortalHandler{portalService: portalService}
}

// checkResource rejects unknown resource names before they reach the
// service layer.
func (h *PortalHandler) checkResource(c *gin.Context) bool {
	resource := c.Param("resource")
	for _, r := range services.PortalResources {
		if r == resource {
			return true
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Unknown resource"})
	return false
}

func respondPortal(c *gin.Context, err error) {
	if errors.Is(err, services.ErrNotImplemented) {
		c.JSON(http.StatusNotImplemented, gin.H{"success": false, "message": "Not implemented"})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal error"})
}

// List handles GET /api/v1/:resource
func (h *PortalHandler) List(c *gin.Context) {
	if !h.checkResource(c) {
		return
	}
	data, err := h.portalService.List(c.Request.Context(), c.Param("resource"))
	if err != nil {
		respondPortal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// Create handles POST /api/v1/:resource
func (h *PortalHandler) Create(c *gin.Context) {
	if !h.checkResource(c) {
		return
	}
	var body map[string]interface{}
	_ = c.ShouldBindJSON(&body)
	created, err := h.portalService.Create(c.Request.Context(), c.Param("resource"), body)
	if err != nil {
		respondPortal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": created})
}

// Get handles GET /api/v1/:resource/:id
func (h *PortalHandler) Get(c *gin.Context) {
	if !h.checkResource(c) {
		return
	}
	data, err := h.portalService.Get(c.Request.Context(), c.Param("resource"), c.Param("id"))
	if err != nil {
		respondPortal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// Update handles PATCH /api/v1/:resource/:id
func (h *PortalHandler) Update(c *gin.Context) {
	if !h.checkResource(c) {
		return
	}
	var body map[string]interface{}
	_ = c.ShouldBindJSON(&body)
	if err := h.portalService.Update(c.Request.Context(), c.Param("resource"), c.Param("id"), body); err != nil {
		respondPortal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete handles DELETE /api/v1/:resource/:id
func (h *PortalHandler) Delete(c *gin.Context) {
	if !h.checkResource(c) {
		return
	}
	if err := h.portalService.Delete(c.Request.Context(), c.Param("resource"), c.Param("id")); err != nil {
		respondPortal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
