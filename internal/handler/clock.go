package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ponto/internal/metrics"
	"ponto/internal/timeclock"
)

type clockRequest struct {
	EventType string              `json:"eventType" binding:"required"`
	Location  *timeclock.Location `json:"location"`
}

// Clock validates and persists one clock event for the caller.
func (h *Handler) Clock(c *gin.Context) {
	claims, ok := h.claims(c)
	if !ok {
		return
	}
	var req clockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
		return
	}
	event, ok := timeclock.ParseEventType(req.EventType)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown event type", "code": "VALIDATION"})
		return
	}

	rec, result, err := h.clock.Clock(c.Request.Context(), claims.Email, event, req.Location)
	if err != nil {
		var rej *timeclock.RejectionError
		if errors.As(err, &rej) {
			metrics.GeofenceRejections.WithLabelValues(rej.Code).Inc()
			body := gin.H{"error": rej.Message, "code": rej.Code}
			if rej.Code == timeclock.CodeOutOfRange {
				body["distanceMeters"] = rej.DistanceMeters
				body["maxDistanceMeters"] = rej.MaxDistanceMeters
			}
			c.JSON(http.StatusUnprocessableEntity, body)
			return
		}
		h.internalError(c, err)
		return
	}

	metrics.ClockEvents.WithLabelValues(string(event)).Inc()
	body := gin.H{"success": true, "time": result.Time, "record": rec}
	if result.DistanceMeters != nil {
		body["distanceMeters"] = *result.DistanceMeters
	}
	c.JSON(http.StatusOK, body)
}

// MyRecords lists the caller's own clock records for the range.
func (h *Handler) MyRecords(c *gin.Context) {
	claims, ok := h.claims(c)
	if !ok {
		return
	}
	records, err := h.clock.Records(c.Request.Context(), claims.Email, c.Query("from"), c.Query("to"))
	if err != nil {
		h.internalError(c, err)
		return
	}
	if records == nil {
		records = []timeclock.Record{}
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

// AllRecords lists clock records across users, filtered to the caller's
// scope on the server side.
func (h *Handler) AllRecords(c *gin.Context) {
	scope, ok := h.resolveScope(c)
	if !ok {
		return
	}
	allowed, msg, ok := h.scopeEmails(c, scope)
	if !ok {
		return
	}

	records, err := h.clock.AllRecords(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		h.internalError(c, err)
		return
	}
	filtered := []timeclock.Record{}
	for _, rec := range records {
		if allowed[rec.UserEmail] {
			filtered = append(filtered, rec)
		}
	}
	body := gin.H{"records": filtered}
	if msg != "" {
		body["message"] = msg
	}
	c.JSON(http.StatusOK, body)
}
