package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/credchain/credential-registry/internal/model"
)

// RequireRole returns a middleware that enforces that the authenticated
// caller has one of the given roles. It assumes JWTAuth ran earlier and
// stored the role claim under CtxRole. The gate fails closed: a missing or
// unknown role is rejected with 403 just like a disallowed one.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
    allowed := make(map[model.Role]bool, len(roles))
    for _, r := range roles {
        allowed[r] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            raw, ok := c.Get(CtxRole).(string)
            if !ok {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            role, ok := model.ParseRole(raw)
            if !ok || !allowed[role] {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            return next(c)
        }
    }
}
