package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/schoolops-api/internal/models"
	"github.com/noah-isme/schoolops-api/pkg/response"
)

// ContextPrincipalKey is the gin context key storing the resolved principal.
const ContextPrincipalKey = "principal"

// PrincipalResolver maps verified claims to the principal behind them.
type PrincipalResolver interface {
	Resolve(ctx context.Context, claims *models.JWTClaims) (*models.Principal, error)
}

// Identity resolves the principal for requests that carry claims.
// Requests without claims pass through; RBAC rejects them later.
func Identity(resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextUserKey)
		if !exists {
			c.Next()
			return
		}
		claims, ok := value.(*models.JWTClaims)
		if !ok || claims == nil {
			c.Next()
			return
		}

		principal, err := resolver.Resolve(c.Request.Context(), claims)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Set(ContextPrincipalKey, principal)
		c.Next()
	}
}
