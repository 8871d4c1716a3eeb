package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const userRoleKey = "user_role"

// RequireAuth validates the Bearer token; when roles are given, the token's
// role claim must match one of them.
func RequireAuth(secret []byte, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token wajib diisi"})
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token tidak valid"})
			return
		}

		role := ""
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			role, _ = claims["role"].(string)
		}

		if len(roles) > 0 {
			allowed := false
			for _, r := range roles {
				if strings.EqualFold(r, role) {
					allowed = true
					break
				}
			}
			if !allowed {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "akses ditolak"})
				return
			}
		}

		c.Set(userRoleKey, role)
		c.Next()
	}
}

// GetUserRole returns the authenticated role, empty when unauthenticated.
func GetUserRole(c *gin.Context) string {
	if v, ok := c.Get(userRoleKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
