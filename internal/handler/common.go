package handler // handler implements the HTTP endpoints of the registry

import (
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/go-playground/validator/v10"
    "github.com/labstack/echo/v4"

    "github.com/credchain/credential-registry/internal/middleware"
    "github.com/credchain/credential-registry/internal/model"
)

// dbTimeout bounds every store call made from a handler so a stalled
// database surfaces as an error instead of a hung request.
const dbTimeout = 5 * time.Second

// actorID extracts the authenticated user's id from the echo context. The
// JWT middleware stores it as uint64 but claims that travelled through JSON
// may surface as float64 or string, so all three are accepted.
func actorID(c echo.Context) (uint64, error) {
    v := c.Get(middleware.CtxUserID)
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("no authenticated user in context")
}

// actorRole extracts the authenticated caller's role from the context and
// validates it against the closed role set.
func actorRole(c echo.Context) (model.Role, bool) {
    raw, ok := c.Get(middleware.CtxRole).(string)
    if !ok {
        return "", false
    }
    return model.ParseRole(raw)
}

// Validator adapts go-playground/validator to Echo's Validator interface so
// handlers can call c.Validate on bound request DTOs.
type Validator struct{ validate *validator.Validate }

// NewValidator builds the validator used for all request DTOs.
func NewValidator() *Validator {
    return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator. Any rule violation is reported as a
// 400 with a generic message; field-level detail stays in server logs.
func (v *Validator) Validate(i interface{}) error {
    if err := v.validate.Struct(i); err != nil {
        return echo.NewHTTPError(http.StatusBadRequest, err.Error())
    }
    return nil
}
