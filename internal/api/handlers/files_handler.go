package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cloudmzansi/server/internal/api/middleware"
	"cloudmzansi/server/internal/storage"
)

// FilesHandler issues pre-signed upload URLs for contract and project files.
type FilesHandler struct {
	storageService storage.IS3Storage
}

// NewFilesHandler creates a new FilesHandler.
func NewFilesHandler(storageService storage.IS3Storage) *FilesHandler {
	return &FilesHandler{storageService: storageService}
}

// presignRequest is the POST /api/files/presign body.
type presignRequest struct {
	Folder      string `json:"folder" binding:"required,oneof=contracts projects"`
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

// Presign handles POST /api/files/presign
func (h *FilesHandler) Presign(c *gin.Context) {
	var req presignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid upload request", "errors": err.Error()})
		return
	}

	uploadURL, objectKey, err := h.storageService.GeneratePresignedPutURL(
		c.Request.Context(), middleware.UserID(c), req.Folder, req.Filename, req.ContentType)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create upload URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "uploadUrl": uploadURL, "key": objectKey})
}
