package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ponto/internal/hierarchy"
	"ponto/internal/queue"
	"ponto/internal/users"
)

// ListUsers returns users visible to the caller's scope.
func (h *Handler) ListUsers(c *gin.Context) {
	scope, ok := h.resolveScope(c)
	if !ok {
		return
	}
	all, err := h.users.List(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}

	emps := make([]hierarchy.Employee, len(all))
	for i, u := range all {
		emps[i] = u.Employee()
	}
	allowed, msg := hierarchy.AllowedEmails(scope, emps)

	filtered := []users.User{}
	for _, u := range all {
		if allowed[u.Email] {
			filtered = append(filtered, u)
		}
	}
	body := gin.H{"users": filtered}
	if msg != "" {
		body["message"] = msg
	}
	c.JSON(http.StatusOK, body)
}

type approveRequest struct {
	Email           string   `json:"email" binding:"required,email"`
	Niveis          []string `json:"niveis" binding:"required"`
	TipoColaborador *string  `json:"tipoColaborador"`
}

// ApproveUser activates a pending user with the assigned levels.
// Administrator only.
func (h *Handler) ApproveUser(c *gin.Context) {
	if _, ok := h.requirePermission(c, func(p hierarchy.Permissions) bool { return p.ManageUsers }); !ok {
		return
	}
	var req approveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
		return
	}

	u, err := h.users.Approve(c.Request.Context(), req.Email, req.Niveis, req.TipoColaborador)
	if err != nil {
		switch {
		case isNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found", "code": "NOT_FOUND"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
		}
		return
	}

	if err := h.notify.Publish(c.Request.Context(), queue.Message{
		Kind:      queue.KindUserApproved,
		Recipient: u.Email,
		Body:      "Seu cadastro foi aprovado.",
	}); err != nil {
		h.logger.Warn("notification publish failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, u)
}

type scheduleRequest struct {
	Email           string `json:"email" binding:"required,email"`
	HorarioTrabalho string `json:"horarioTrabalho" binding:"required"`
}

// SetWorkSchedule stores a collaborator's expected work schedule.
// Administrator only.
func (h *Handler) SetWorkSchedule(c *gin.Context) {
	if _, ok := h.requirePermission(c, func(p hierarchy.Permissions) bool { return p.ManageUsers }); !ok {
		return
	}
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
		return
	}
	if err := h.users.SetWorkSchedule(c.Request.Context(), req.Email, req.HorarioTrabalho); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found", "code": "NOT_FOUND"})
			return
		}
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type deactivateRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// DeactivateUser moves a user to inactive. Administrator only.
func (h *Handler) DeactivateUser(c *gin.Context) {
	if _, ok := h.requirePermission(c, func(p hierarchy.Permissions) bool { return p.ManageUsers }); !ok {
		return
	}
	var req deactivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
		return
	}
	if err := h.users.Deactivate(c.Request.Context(), req.Email); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found", "code": "NOT_FOUND"})
			return
		}
		h.internalError(c, err)
		return
	}
	// A deactivated user must not be able to rotate an old session back in.
	if h.tokens != nil {
		if err := h.tokens.RevokeAll(c.Request.Context(), req.Email); err != nil {
			h.logger.Warn("token revocation failed", zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
