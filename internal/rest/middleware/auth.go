package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// bearerSubject parses the Authorization header and returns the token subject.
func bearerSubject(c *gin.Context, secret string) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	tokenStr, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", false
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", false
	}
	return sub, true
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// user id in the gin context for handlers.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub, ok := bearerSubject(c, secret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing or invalid token"})
			return
		}
		c.Set("user_id", sub)
		c.Next()
	}
}

// OptionalAuth stores the user id when a valid token is present but lets
// anonymous requests through. Read endpoints use it to personalize votes and
// bookmarks.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sub, ok := bearerSubject(c, secret); ok {
			c.Set("user_id", sub)
		}
		c.Next()
	}
}
