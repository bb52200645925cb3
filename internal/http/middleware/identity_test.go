package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/mlipka/go-matchday-backend/internal/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, userID string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"exp":    exp.Unix(),
	})
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// resolveIdentity runs one request through the middleware and returns the
// identity it stored.
func resolveIdentity(t *testing.T, decorate func(*http.Request)) domain.Identity {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var got domain.Identity
	r := gin.New()
	r.Use(Identity(testSecret))
	r.GET("/", func(c *gin.Context) {
		got = identityValue(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if decorate != nil {
		decorate(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("request failed with %d", w.Code)
	}
	return got
}

func identityValue(c *gin.Context) domain.Identity {
	v, _ := c.Get("identity")
	id, _ := v.(domain.Identity)
	return id
}

func TestIdentity_ValidCookieToken(t *testing.T) {
	tok := signToken(t, testSecret, "u42", time.Now().Add(time.Hour))
	id := resolveIdentity(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: tok})
	})
	if id.Kind != domain.IdentityUser || id.Value != "u42" {
		t.Fatalf("expected user identity, got %+v", id)
	}
}

func TestIdentity_BearerFallback(t *testing.T) {
	tok := signToken(t, testSecret, "u7", time.Now().Add(time.Hour))
	id := resolveIdentity(t, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+tok)
	})
	if id.Kind != domain.IdentityUser || id.Value != "u7" {
		t.Fatalf("expected user identity, got %+v", id)
	}
}

func TestIdentity_ExpiredTokenFallsBackToIP(t *testing.T) {
	tok := signToken(t, testSecret, "u42", time.Now().Add(-time.Hour))
	id := resolveIdentity(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: tok})
		req.Header.Set("X-Forwarded-For", "203.0.113.9")
	})
	if id.Kind != domain.IdentityIP || id.Value != "203.0.113.9" {
		t.Fatalf("expected ip identity, got %+v", id)
	}
}

func TestIdentity_WrongSecretFallsBackToIP(t *testing.T) {
	tok := signToken(t, "other-secret", "u42", time.Now().Add(time.Hour))
	id := resolveIdentity(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: tok})
		req.Header.Set("X-Real-IP", "198.51.100.4")
	})
	if id.Kind != domain.IdentityIP || id.Value != "198.51.100.4" {
		t.Fatalf("expected ip identity, got %+v", id)
	}
}

func TestIdentity_ForwardedForPrecedence(t *testing.T) {
	id := resolveIdentity(t, func(req *http.Request) {
		req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
		req.Header.Set("X-Real-IP", "198.51.100.4")
	})
	if id.Value != "203.0.113.9" {
		t.Fatalf("expected first forwarded address, got %+v", id)
	}
}

func TestIdentity_LoopbackForwardedSkipped(t *testing.T) {
	id := resolveIdentity(t, func(req *http.Request) {
		req.Header.Set("X-Forwarded-For", "127.0.0.1")
		req.Header.Set("X-Real-IP", "198.51.100.4")
	})
	if id.Value != "198.51.100.4" {
		t.Fatalf("expected real-ip fallback, got %+v", id)
	}
}

func TestIdentity_ClientIPFallback(t *testing.T) {
	id := resolveIdentity(t, func(req *http.Request) {
		req.Header.Set("X-Forwarded-For", "::1")
		req.Header.Set("X-Client-IP", "192.0.2.33")
	})
	if id.Value != "192.0.2.33" {
		t.Fatalf("expected client-ip fallback, got %+v", id)
	}
}

func TestIdentity_AllLoopbackCollapsesToLocalhost(t *testing.T) {
	id := resolveIdentity(t, func(req *http.Request) {
		req.Header.Set("X-Forwarded-For", "::ffff:127.0.0.1")
	})
	if id.Kind != domain.IdentityIP || id.Value != "localhost" {
		t.Fatalf("expected localhost placeholder, got %+v", id)
	}
}

func TestIdentity_SetsUserIDForRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tok := signToken(t, testSecret, "u42", time.Now().Add(time.Hour))

	var keyed string
	r := gin.New()
	r.Use(Identity(testSecret))
	r.GET("/", func(c *gin.Context) {
		keyed = KeyByUserOrIP()(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: tok})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if keyed != "user:u42" {
		t.Fatalf("rate limiter key = %q", keyed)
	}
}
