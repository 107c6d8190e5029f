package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ponto/internal/auth"
	"ponto/internal/users"
)

type loginRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
}

// Login exchanges an externally verified identity (OAuth callback) for
// API tokens. The first sign-in creates the user as pending; pending
// users get tokens but no levels, so they resolve to self scope only.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
		return
	}

	u, err := h.users.SignIn(c.Request.Context(), req.Email, req.Name)
	if err != nil {
		if errors.Is(err, users.ErrUserInactive) {
			c.JSON(http.StatusForbidden, gin.H{"error": "user is inactive", "code": "USER_INACTIVE"})
			return
		}
		h.internalError(c, err)
		return
	}

	h.issueTokens(c, u, http.StatusOK)
}

type levelSwitchRequest struct {
	NovoNivel string `json:"novoNivel" binding:"required"`
}

// SwitchLevel changes the caller's active level and re-issues tokens so
// the new scope takes effect immediately.
func (h *Handler) SwitchLevel(c *gin.Context) {
	claims, ok := h.claims(c)
	if !ok {
		return
	}
	var req levelSwitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
		return
	}

	u, err := h.users.SwitchLevel(c.Request.Context(), claims.Email, req.NovoNivel)
	if err != nil {
		if errors.Is(err, users.ErrUnknownLevel) || errors.Is(err, users.ErrLevelNotAssigned) {
			c.JSON(http.StatusForbidden, gin.H{"error": "requested level is not assigned to you", "code": "UNAUTHORIZED_NIVEL"})
			return
		}
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found", "code": "NOT_FOUND"})
			return
		}
		h.internalError(c, err)
		return
	}

	h.issueTokens(c, u, http.StatusOK)
}

// Refresh rotates a valid refresh token into a fresh pair. The old token
// is revoked on success.
func (h *Handler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
		return
	}

	claims, err := auth.Parse(req.RefreshToken, h.cfg.JWTSigningKey, h.cfg.JWTIssuer)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token", "code": "UNAUTHENTICATED"})
		return
	}
	if err := h.tokens.Validate(c.Request.Context(), claims.Email, req.RefreshToken); err != nil {
		if errors.Is(err, auth.ErrTokenUnknown) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "refresh token revoked or expired", "code": "UNAUTHENTICATED"})
			return
		}
		h.internalError(c, err)
		return
	}

	u, err := h.users.Get(c.Request.Context(), claims.Email)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user no longer exists", "code": "UNAUTHENTICATED"})
			return
		}
		h.internalError(c, err)
		return
	}
	if u.Status == users.StatusInactive {
		c.JSON(http.StatusForbidden, gin.H{"error": "user is inactive", "code": "USER_INACTIVE"})
		return
	}

	if err := h.tokens.Revoke(c.Request.Context(), claims.Email, req.RefreshToken); err != nil {
		h.logger.Warn("refresh token revoke failed", zap.Error(err))
	}
	h.issueTokens(c, u, http.StatusOK)
}

func (h *Handler) issueTokens(c *gin.Context, u users.User, status int) {
	levels := make([]string, len(u.Levels))
	for i, l := range u.Levels {
		levels[i] = string(l)
	}
	tokens, err := auth.Issue(u.Email, u.Name, string(u.ActiveLevel), levels, h.cfg.JWTIssuer, h.cfg.JWTSigningKey, h.cfg.AccessTTL, h.cfg.RefreshTTL)
	if err != nil {
		h.internalError(c, err)
		return
	}
	if h.tokens != nil {
		if err := h.tokens.Save(c.Request.Context(), u.Email, tokens.RefreshToken, tokens.RefreshExp); err != nil {
			h.logger.Warn("refresh token save failed", zap.Error(err))
		}
	}
	c.JSON(status, gin.H{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_at":    tokens.AccessExp.Unix(),
		"user":          u,
	})
}
