package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"ponto/internal/absence"
	"ponto/internal/auth"
	"ponto/internal/cloudinary"
	"ponto/internal/config"
	"ponto/internal/coordination"
	"ponto/internal/geofence"
	"ponto/internal/hierarchy"
	"ponto/internal/observability"
	"ponto/internal/queue"
	"ponto/internal/timeclock"
	"ponto/internal/users"
)

// Handler carries the wiring for every API endpoint.
type Handler struct {
	cfg      config.App
	zone     *time.Location
	logger   *zap.Logger
	users    *users.Service
	coords   *coordination.Repository
	clock    *timeclock.Service
	absences *absence.Service
	fence    *geofence.Repository
	cloud    *cloudinary.Client // nil when not configured
	breaker  *gobreaker.CircuitBreaker
	notify   queue.Queue
	tokens   *auth.TokenStore
}

// New builds the handler set.
func New(cfg config.App, logger *zap.Logger, usersSvc *users.Service, coords *coordination.Repository, clock *timeclock.Service, absences *absence.Service, fence *geofence.Repository, cloud *cloudinary.Client, breaker *gobreaker.CircuitBreaker, notify queue.Queue, tokens *auth.TokenStore) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		cfg:      cfg,
		zone:     cfg.Location(),
		logger:   logger,
		users:    usersSvc,
		coords:   coords,
		clock:    clock,
		absences: absences,
		fence:    fence,
		cloud:    cloud,
		breaker:  breaker,
		notify:   notify,
		tokens:   tokens,
	}
}

// claims returns the authenticated caller, aborting with 401 when the
// middleware did not run.
func (h *Handler) claims(c *gin.Context) (auth.Claims, bool) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated", "code": "UNAUTHENTICATED"})
		return auth.Claims{}, false
	}
	return claims, true
}

// resolveScope computes the caller's effective scope from the active
// level in the token and the current coordination assignments.
func (h *Handler) resolveScope(c *gin.Context) (hierarchy.Scope, bool) {
	claims, ok := h.claims(c)
	if !ok {
		return hierarchy.Scope{}, false
	}
	refs, err := h.coords.Refs(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return hierarchy.Scope{}, false
	}
	levels := make([]hierarchy.Level, 0, len(claims.Levels))
	for _, l := range claims.Levels {
		if parsed, ok := hierarchy.ParseLevel(l); ok {
			levels = append(levels, parsed)
		}
	}
	return hierarchy.Resolve(claims.Email, hierarchy.Level(claims.ActiveLevel), levels, refs), true
}

// requirePermission aborts with 403 unless the caller's active level
// grants the capability. Distinct from 401: the session is valid, the
// scope is not.
func (h *Handler) requirePermission(c *gin.Context, allowed func(hierarchy.Permissions) bool) (auth.Claims, bool) {
	claims, ok := h.claims(c)
	if !ok {
		return auth.Claims{}, false
	}
	if !allowed(hierarchy.PermissionsFor(hierarchy.Level(claims.ActiveLevel))) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions for this action", "code": "FORBIDDEN"})
		return auth.Claims{}, false
	}
	return claims, true
}

// internalError hides storage details behind a generic response.
func (h *Handler) internalError(c *gin.Context, err error) {
	h.logger.Error("internal error", zap.String("path", c.FullPath()), zap.Error(err))
	observability.CaptureErr(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error", "code": "INTERNAL_ERROR"})
}

// scopeEmails resolves the set of employee emails visible to the scope.
func (h *Handler) scopeEmails(c *gin.Context, scope hierarchy.Scope) (map[string]bool, string, bool) {
	if scope.Kind == hierarchy.ScopeSelf {
		return map[string]bool{scope.CallerEmail: true}, "", true
	}
	all, err := h.users.List(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return nil, "", false
	}
	emps := make([]hierarchy.Employee, len(all))
	for i, u := range all {
		emps[i] = u.Employee()
	}
	allowed, msg := hierarchy.AllowedEmails(scope, emps)
	return allowed, msg, true
}

var errNotFoundClass = []error{users.ErrNotFound, coordination.ErrNotFound, absence.ErrNotFound}

func isNotFound(err error) bool {
	for _, target := range errNotFoundClass {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
