package middleware

import (
	"github.com/labstack/echo/v4"

	"tutorhub-api/core/cache"
	"tutorhub-api/core/constants"
	"tutorhub-api/core/controller"
	"tutorhub-api/core/errors"
	"tutorhub-api/core/utils"
)

// Middleware bundles the request guards shared by all modules.
type Middleware struct {
	cache *cache.Cache
}

func NewMiddleware(c *cache.Cache) *Middleware {
	return &Middleware{cache: c}
}

// AuthMiddleware validates the bearer token issued by the platform's auth
// provider and stores its claims in the request context.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, appErr := utils.GetTokenFromHeader(c)
			if appErr != nil {
				return controller.NewErrorResponse(401, appErr.Code, appErr.Message)
			}

			if m.cache != nil && m.cache.IsTokenBlacklisted(c.Request().Context(), token) {
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "Token has been revoked")
			}

			claims, appErr := utils.ValidateAndParseToken(token)
			if appErr != nil {
				return controller.NewErrorResponse(401, appErr.Code, appErr.Message)
			}

			if claims.Scope != constants.ScopeTokenAccess {
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "Access token required")
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

// RequireRole rejects authenticated requests whose token carries a different
// role. Used for admin- and tutor-only routes.
func (m *Middleware) RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenData := c.Get(constants.ContextTokenData)
			claims, ok := tokenData.(*utils.TokenClaims)
			if !ok || claims == nil {
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "User not authenticated")
			}
			if !allowed[claims.Role] {
				return controller.NewErrorResponse(403, errors.ErrForbidden, "Insufficient role for this operation")
			}
			return next(c)
		}
	}
}
