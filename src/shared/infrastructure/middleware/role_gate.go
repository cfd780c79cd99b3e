package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Roles reconocidos por el gate de autorización. La autenticación ocurre
// aguas arriba (gateway); acá solo se valida el rol ya resuelto.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleSeller   = "seller"
)

// HeaderUserRole header con el rol resuelto por el gateway
const HeaderUserRole = "X-User-Role"

// RequireAuthenticated rechaza con 401 las peticiones sin rol resuelto.
// No restringe el rol: cualquier caller autenticado pasa.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(HeaderUserRole) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "X-User-Role header is required",
			})
			return
		}
		c.Next()
	}
}

// RequireRole rechaza con 403 las peticiones cuyo rol no esté en la lista
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role := c.GetHeader(HeaderUserRole)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "X-User-Role header is required",
			})
			return
		}
		if !allowed[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "insufficient role for this operation",
			})
			return
		}
		c.Next()
	}
}
