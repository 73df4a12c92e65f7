package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/beatvault/beatvault/internal/backend"
	"github.com/beatvault/beatvault/internal/pkg/errcode"
	"github.com/beatvault/beatvault/internal/pkg/jwt"
	"github.com/beatvault/beatvault/internal/pkg/response"
)

const (
	ContextUserIDKey = "user_id"
	ContextRoleKey   = "user_role"
)

// JWTAuth rejects requests without a valid bearer token.
func JWTAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Error(c, errcode.ErrUnauthorized, "missing authorization")
			c.Abort()
			return
		}
		claims, err := jwt.ParseToken(token, secret)
		if err != nil {
			response.Error(c, errcode.ErrUnauthorized, "invalid token")
			c.Abort()
			return
		}
		attach(c, token, claims)
		c.Next()
	}
}

// OptionalJWTAuth parses a bearer token when present and otherwise leaves
// the request anonymous. Gated endpoints need the distinction: for them an
// unauthenticated caller is a deny reason, not a transport error.
func OptionalJWTAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := jwt.ParseToken(token, secret); err == nil {
				attach(c, token, claims)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func attach(c *gin.Context, token string, claims *jwt.Claims) {
	c.Set(ContextUserIDKey, claims.UserID)
	c.Set(ContextRoleKey, claims.Role)
	// Backend calls made for this request authenticate as the caller.
	c.Request = c.Request.WithContext(backend.WithToken(c.Request.Context(), token))
}
