package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ponto/internal/report"
	"ponto/internal/timeclock"
)

// Timesheet streams a scope-filtered xlsx timesheet for the range.
func (h *Handler) Timesheet(c *gin.Context) {
	scope, ok := h.resolveScope(c)
	if !ok {
		return
	}
	allowed, msg, ok := h.scopeEmails(c, scope)
	if !ok {
		return
	}
	if msg != "" {
		c.JSON(http.StatusOK, gin.H{"records": []timeclock.Record{}, "message": msg})
		return
	}

	records, err := h.clock.AllRecords(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		h.internalError(c, err)
		return
	}
	filtered := make([]timeclock.Record, 0, len(records))
	for _, rec := range records {
		if allowed[rec.UserEmail] {
			filtered = append(filtered, rec)
		}
	}

	f, err := report.BuildTimesheet(filtered)
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="espelho-de-ponto.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		h.logger.Warn("timesheet write aborted", zap.Error(err))
	}
}
