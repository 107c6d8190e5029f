package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ponto/internal/cloudinary"
)

const maxUploadBytes = 10 << 20

// Upload receives an absence document (multipart file or base64 data URL)
// and stores it in Cloudinary. The circuit breaker shields the API from a
// degraded upstream.
func (h *Handler) Upload(c *gin.Context) {
	if _, ok := h.claims(c); !ok {
		return
	}
	if h.cloud == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "document storage is not configured", "code": "UPLOAD_UNAVAILABLE"})
		return
	}

	var upload func() (*cloudinary.UploadResult, error)

	if file, err := c.FormFile("file"); err == nil {
		if file.Size > maxUploadBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds 10MB", "code": "FILE_TOO_LARGE"})
			return
		}
		src, err := file.Open()
		if err != nil {
			h.internalError(c, err)
			return
		}
		defer src.Close()
		data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
		if err != nil {
			h.internalError(c, err)
			return
		}
		filename := file.Filename
		upload = func() (*cloudinary.UploadResult, error) {
			return h.cloud.UploadDocument(data, filename)
		}
	} else {
		var req struct {
			Data string `json:"data"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || !strings.HasPrefix(req.Data, "data:") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "send a multipart file or a base64 data URL", "code": "INVALID_UPLOAD"})
			return
		}
		if len(req.Data) > maxUploadBytes*4/3 {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds 10MB", "code": "FILE_TOO_LARGE"})
			return
		}
		upload = func() (*cloudinary.UploadResult, error) {
			return h.cloud.UploadBase64(req.Data)
		}
	}

	out, err := h.breaker.Execute(func() (interface{}, error) {
		return upload()
	})
	if err != nil {
		h.logger.Warn("document upload failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "document storage is unavailable", "code": "UPLOAD_FAILED"})
		return
	}
	result := out.(*cloudinary.UploadResult)
	c.JSON(http.StatusOK, gin.H{"url": result.SecureURL, "publicId": result.PublicID, "bytes": result.Bytes})
}
