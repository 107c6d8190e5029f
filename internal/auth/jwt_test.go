package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestIssueAndParseRoundtrip(t *testing.T) {
	pair, err := Issue("ana@example.com", "Ana", "coordinator", []string{"coordinator", "collaborator"}, "ponto", "test-key", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := Parse(pair.AccessToken, "test-key", "ponto")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Email != "ana@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
	if claims.ActiveLevel != "coordinator" {
		t.Errorf("active level = %q", claims.ActiveLevel)
	}
	if len(claims.Levels) != 2 {
		t.Errorf("levels = %v", claims.Levels)
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	pair, err := Issue("ana@example.com", "Ana", "collaborator", nil, "ponto", "test-key", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := Parse(pair.AccessToken, "other-key", "ponto"); err == nil {
		t.Fatal("expected error for wrong signing key")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	pair, err := Issue("ana@example.com", "Ana", "collaborator", nil, "someone-else", "test-key", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := Parse(pair.AccessToken, "test-key", "ponto"); err == nil {
		t.Fatal("expected issuer mismatch error")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	pair, err := Issue("ana@example.com", "Ana", "collaborator", nil, "ponto", "test-key", -time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := Parse(pair.AccessToken, "test-key", "ponto"); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestUserAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", UserAuth("test-key", "ponto"), func(c *gin.Context) {
		claims, ok := FromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "claims missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": claims.Email})
	})

	t.Run("no token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		pair, err := Issue("ana@example.com", "Ana", "collaborator", []string{"collaborator"}, "ponto", "test-key", time.Minute, time.Hour)
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
	})
}
