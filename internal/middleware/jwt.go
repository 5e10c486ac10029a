package middleware // middleware contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/credchain/credential-registry/internal/utils"
)

// Context keys under which the authenticated identity is stored. Handlers
// read these via c.Get; absence of all three means the caller is anonymous.
const (
    CtxUserID = "user_id"
    CtxEmail  = "email"
    CtxRole   = "role"
)

// JWTAuth returns an Echo middleware that requires a valid Bearer access
// token and injects the token's user id, email and role claims into the
// request context. The provided secret must match the one used when issuing
// tokens. A missing, malformed or expired token is rejected with 401.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            claims, err := utils.ParseAccessToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }

            c.Set(CtxUserID, claims.UserID)
            c.Set(CtxEmail, claims.Email)
            c.Set(CtxRole, claims.Role)
            return next(c)
        }
    }
}

// OptionalJWT returns an Echo middleware for routes that accept but do not
// require authentication (the public verify endpoint). When a valid token is
// present its claims are injected exactly as JWTAuth does; when the token is
// missing, malformed or expired the request proceeds anonymously. This
// middleware never rejects a request.
func OptionalJWT(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if strings.HasPrefix(auth, "Bearer ") {
                raw := strings.TrimPrefix(auth, "Bearer ")
                if claims, err := utils.ParseAccessToken(secret, raw); err == nil {
                    c.Set(CtxUserID, claims.UserID)
                    c.Set(CtxEmail, claims.Email)
                    c.Set(CtxRole, claims.Role)
                }
            }
            return next(c)
        }
    }
}
