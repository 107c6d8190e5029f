package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ponto/internal/absence"
	"ponto/internal/hierarchy"
	"ponto/internal/metrics"
	"ponto/internal/queue"
)

type absenceSubmitRequest struct {
	Date          string  `json:"date" binding:"required"`
	Tipo          string  `json:"tipo" binding:"required"`
	Justificativa string  `json:"justificativa" binding:"required"`
	LinkDocumento *string `json:"linkDocumento"`
}

// SubmitAbsence creates a pending absence for the caller.
func (h *Handler) SubmitAbsence(c *gin.Context) {
	claims, ok := h.claims(c)
	if !ok {
		return
	}
	var req absenceSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
		return
	}

	a, err := h.absences.Submit(c.Request.Context(), claims.Email, req.Date, req.Tipo, req.Justificativa, req.LinkDocumento)
	if err != nil {
		if errors.Is(err, absence.ErrInvalidTipo) || errors.Is(err, absence.ErrInvalidDate) || errors.Is(err, absence.ErrEmptyReason) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
			return
		}
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": a.ID, "status": a.Status})
}

// MyAbsences lists the caller's own absences.
func (h *Handler) MyAbsences(c *gin.Context) {
	claims, ok := h.claims(c)
	if !ok {
		return
	}
	list, err := h.absences.ListByUser(c.Request.Context(), claims.Email)
	if err != nil {
		h.internalError(c, err)
		return
	}
	if list == nil {
		list = []absence.Absence{}
	}
	c.JSON(http.StatusOK, gin.H{"absences": list})
}

// AllAbsences lists absences across users, filtered to the caller's scope.
func (h *Handler) AllAbsences(c *gin.Context) {
	scope, ok := h.resolveScope(c)
	if !ok {
		return
	}
	allowed, msg, ok := h.scopeEmails(c, scope)
	if !ok {
		return
	}

	list, err := h.absences.ListAll(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}
	filtered := []absence.Absence{}
	for _, a := range list {
		if allowed[a.UserEmail] {
			filtered = append(filtered, a)
		}
	}
	body := gin.H{"absences": filtered}
	if msg != "" {
		body["message"] = msg
	}
	c.JSON(http.StatusOK, body)
}

type absenceReviewRequest struct {
	AusenciaID string  `json:"ausenciaId" binding:"required"`
	Status     string  `json:"status" binding:"required"`
	Motivo     *string `json:"motivo"`
}

// ReviewAbsence approves or rejects a pending absence. Only allowed when
// the caller's resolved scope covers the absence's owner.
func (h *Handler) ReviewAbsence(c *gin.Context) {
	claims, ok := h.requirePermission(c, func(p hierarchy.Permissions) bool { return p.ReviewAbsences })
	if !ok {
		return
	}
	var req absenceReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
		return
	}

	target, err := h.absences.Get(c.Request.Context(), req.AusenciaID)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "absence not found", "code": "NOT_FOUND"})
			return
		}
		h.internalError(c, err)
		return
	}

	scope, ok := h.resolveScope(c)
	if !ok {
		return
	}
	allowed, _, ok := h.scopeEmails(c, scope)
	if !ok {
		return
	}
	if !allowed[target.UserEmail] {
		c.JSON(http.StatusForbidden, gin.H{"error": "collaborator is outside your coordinations", "code": "FORBIDDEN_SCOPE"})
		return
	}

	a, err := h.absences.Review(c.Request.Context(), req.AusenciaID, req.Status, req.Motivo, claims.Email)
	if err != nil {
		if errors.Is(err, absence.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
			return
		}
		if errors.Is(err, absence.ErrAlreadyDone) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "ALREADY_REVIEWED"})
			return
		}
		h.internalError(c, err)
		return
	}

	metrics.AbsenceReviews.WithLabelValues(a.Status).Inc()
	if err := h.notify.Publish(c.Request.Context(), queue.Message{
		Kind:      queue.KindAbsenceReviewed,
		Recipient: a.UserEmail,
		Body:      "Sua justificativa de " + a.Day + " foi " + a.Status + ".",
	}); err != nil {
		h.logger.Warn("notification publish failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, a)
}
