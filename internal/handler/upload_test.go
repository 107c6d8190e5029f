package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"ponto/internal/auth"
	"ponto/internal/config"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	cfg := config.App{Timezone: "America/Sao_Paulo"}
	return New(cfg, nil, nil, nil, nil, nil, nil, nil, config.NewCircuitBreaker("test"), nil, nil)
}

func withClaims(claims auth.Claims) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(auth.ClaimsKey, claims)
		c.Next()
	}
}

func TestUploadRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler(t)
	r := gin.New()
	r.POST("/v1/upload", h.Upload)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/upload", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestUploadUnavailableWithoutCloudinary(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler(t)
	r := gin.New()
	r.POST("/v1/upload", withClaims(auth.Claims{Email: "ana@example.com"}), h.Upload)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/upload", strings.NewReader(`{"data":"data:application/pdf;base64,AAAA"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "UPLOAD_UNAVAILABLE") {
		t.Errorf("body = %s", w.Body.String())
	}
}
