// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file resolves the caller identity used for quota accounting and
// in-flight generation locking. Every request gets exactly one identity:
//
//   - Authenticated: the userId claim from a valid access token, read from
//     the "accessToken" cookie or an Authorization: Bearer header. The token
//     is verified (HS256) but never issued here; issuance lives in the
//     account system.
//   - Anonymous: the first non-loopback client address from X-Forwarded-For,
//     then X-Real-IP, then X-Client-IP. When every candidate is loopback or
//     absent (local development, health probes), the fixed placeholder
//     "localhost" is used so those callers share one bucket instead of
//     escaping accounting.
//
// An invalid or expired token silently degrades to the anonymous path; this
// endpoint set is public and a stale cookie must not break it.
package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/mlipka/go-matchday-backend/internal/domain"
)

// accessTokenCookie is the cookie carrying the signed access token.
const accessTokenCookie = "accessToken"

// Identity returns middleware that resolves the caller identity and stores
// it in the Gin context under "identity". For authenticated callers it also
// sets "userID" so the rate limiter keys by user instead of IP.
func Identity(jwtSecret string) gin.HandlerFunc {
	secret := []byte(jwtSecret)
	return func(c *gin.Context) {
		if userID, ok := userFromToken(c, secret); ok {
			c.Set("identity", domain.UserIdentity(userID))
			c.Set("userID", userID)
			c.Next()
			return
		}
		c.Set("identity", domain.IPIdentity(clientAddress(c)))
		c.Next()
	}
}

// userFromToken extracts and verifies the access token, returning the userId
// claim. Any validation failure reads as "not authenticated".
func userFromToken(c *gin.Context, secret []byte) (string, bool) {
	raw, err := c.Cookie(accessTokenCookie)
	if err != nil || raw == "" {
		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			raw = strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		}
	}
	if raw == "" || len(secret) == 0 {
		return "", false
	}

	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return "", false
	}
	userID, _ := claims["userId"].(string)
	return userID, userID != ""
}

// clientAddress picks the first usable client address from the proxy
// headers, in their order of trust.
func clientAddress(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if usableAddress(first) {
			return first
		}
	}
	if real := strings.TrimSpace(c.GetHeader("X-Real-IP")); usableAddress(real) {
		return real
	}
	if client := strings.TrimSpace(c.GetHeader("X-Client-IP")); usableAddress(client) {
		return client
	}
	return "localhost"
}

// usableAddress reports whether addr is a non-loopback, non-placeholder
// client address.
func usableAddress(addr string) bool {
	if addr == "" || addr == "localhost" || addr == "unknown" {
		return false
	}
	if ip := net.ParseIP(strings.TrimPrefix(addr, "::ffff:")); ip != nil && ip.IsLoopback() {
		return false
	}
	return true
}
