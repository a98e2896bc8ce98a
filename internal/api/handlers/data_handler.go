package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cloudmzansi/server/internal/api/middleware"
	"cloudmzansi/server/internal/services"
)

// DataHandler handles export/import and POPIA data-rights endpoints.
type DataHandler struct {
	exportService services.IExportService
}

// NewDataHandler creates a new DataHandler.
func NewDataHandler(exportService services.IExportService) *DataHandler {
	return &DataHandler{exportService: exportService}
}

// exportRequest is the POST /api/data/export body.
type exportRequest struct {
	ExportAll bool `json:"exportAll"`
}

// Export handles POST /api/data/export. Admins may request a full dump;
// everyone else gets their own data regardless of the flag.
func (h *DataHandler) Export(c *gin.Context) {
	userID := middleware.UserID(c)

	var req exportRequest
	_ = c.ShouldBindJSON(&req) // flag only; an empty body means per-user export

	c.Header("Content-Disposition", `attachment; filename="export.json"`)

	if req.ExportAll && middleware.IsAdmin(c) {
		data, err := h.exportService.ExportAll(c.Request.Context(), userID)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to export data"})
			return
		}
		c.JSON(http.StatusOK, data)
		return
	}

	data, err := h.exportService.ExportUser(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to export data"})
		return
	}
	c.JSON(http.StatusOK, data)
}

// Import handles POST /api/data/import (admin only).
func (h *DataHandler) Import(c *gin.Context) {
	var data services.AdminExport
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid import data"})
		return
	}

	if err := h.exportService.ImportAll(c.Request.Context(), &data, middleware.UserID(c)); err != nil {
		if errors.Is(err, services.ErrInvalidImport) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid import data"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to import data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetUserData handles GET /api/user/data
func (h *DataHandler) GetUserData(c *gin.Context) {
	data, err := h.exportService.GetUserData(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch user data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "profile": data.Profile, "client": data.Client})
}

// UpdateUserData handles PATCH /api/user/data
func (h *DataHandler) UpdateUserData(c *gin.Context) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil || len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid update data"})
		return
	}

	// ID and credential fields are never writable through this endpoint.
	delete(updates, "id")
	delete(updates, "_id")
	delete(updates, "user_id")
	delete(updates, "password_hash")
	delete(updates, "role")

	if err := h.exportService.UpdateUserData(c.Request.Context(), middleware.UserID(c), updates); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update user data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteUserData handles DELETE /api/user/data
func (h *DataHandler) DeleteUserData(c *gin.Context) {
	if err := h.exportService.DeleteUserData(c.Request.Context(), middleware.UserID(c)); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete user data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User data deleted"})
}
