package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ponto/internal/geofence"
	"ponto/internal/hierarchy"
)

// GetGeofence returns the current geofence configuration.
func (h *Handler) GetGeofence(c *gin.Context) {
	if _, ok := h.requirePermission(c, func(p hierarchy.Permissions) bool { return p.ManageGeofence }); !ok {
		return
	}
	s, err := h.fence.Get(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// PutGeofence replaces the geofence configuration after range validation.
func (h *Handler) PutGeofence(c *gin.Context) {
	if _, ok := h.requirePermission(c, func(p hierarchy.Permissions) bool { return p.ManageGeofence }); !ok {
		return
	}
	var s geofence.Settings
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
		return
	}
	if err := s.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
		return
	}
	if err := h.fence.Put(c.Request.Context(), s); err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
