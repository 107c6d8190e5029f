package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ponto/internal/coordination"
	"ponto/internal/hierarchy"
)

// ListCoordinations returns all coordinations. Administrator only; the
// coordinator view of their own coordinations comes through scope
// resolution on the listing endpoints.
func (h *Handler) ListCoordinations(c *gin.Context) {
	if _, ok := h.requirePermission(c, func(p hierarchy.Permissions) bool { return p.ManageCoordinations }); !ok {
		return
	}
	list, err := h.coords.List(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}
	if list == nil {
		list = []coordination.Coordination{}
	}
	c.JSON(http.StatusOK, gin.H{"coordinations": list})
}

type coordinationCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateCoordination adds a new active coordination.
func (h *Handler) CreateCoordination(c *gin.Context) {
	if _, ok := h.requirePermission(c, func(p hierarchy.Permissions) bool { return p.ManageCoordinations }); !ok {
		return
	}
	var req coordinationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
		return
	}
	created, err := h.coords.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

type coordinationUpdateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// UpdateCoordination changes name, description and the active flag.
// Deactivating removes the coordination from its coordinator's authority
// without unassigning anyone.
func (h *Handler) UpdateCoordination(c *gin.Context) {
	if _, ok := h.requirePermission(c, func(p hierarchy.Permissions) bool { return p.ManageCoordinations }); !ok {
		return
	}
	var req coordinationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
		return
	}
	if err := h.coords.Update(c.Request.Context(), c.Param("id"), req.Name, req.Description, req.Active); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "coordination not found", "code": "NOT_FOUND"})
			return
		}
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type setCoordinatorRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SetCoordinator assigns or clears the single coordinator of a
// coordination; an empty email clears it.
func (h *Handler) SetCoordinator(c *gin.Context) {
	if _, ok := h.requirePermission(c, func(p hierarchy.Permissions) bool { return p.ManageCoordinations }); !ok {
		return
	}
	var req setCoordinatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
		return
	}
	if err := h.coords.SetCoordinator(c.Request.Context(), c.Param("id"), req.Email, req.Name); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "coordination not found", "code": "NOT_FOUND"})
			return
		}
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type memberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
}

// AddMember registers a collaborator in a coordination.
func (h *Handler) AddMember(c *gin.Context) {
	if _, ok := h.requirePermission(c, func(p hierarchy.Permissions) bool { return p.ManageCoordinations }); !ok {
		return
	}
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
		return
	}
	if err := h.coords.AddMember(c.Request.Context(), c.Param("id"), req.Email, req.Name); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "coordination not found", "code": "NOT_FOUND"})
			return
		}
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RemoveMember drops a collaborator from a coordination.
func (h *Handler) RemoveMember(c *gin.Context) {
	if _, ok := h.requirePermission(c, func(p hierarchy.Permissions) bool { return p.ManageCoordinations }); !ok {
		return
	}
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
		return
	}
	if err := h.coords.RemoveMember(c.Request.Context(), c.Param("id"), req.Email); err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListMembers returns a coordination's members.
func (h *Handler) ListMembers(c *gin.Context) {
	if _, ok := h.requirePermission(c, func(p hierarchy.Permissions) bool { return p.ManageCoordinations }); !ok {
		return
	}
	members, err := h.coords.Members(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.internalError(c, err)
		return
	}
	if members == nil {
		members = []coordination.Member{}
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}
