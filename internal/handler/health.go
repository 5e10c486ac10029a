package handler

import (
    "context"
    "database/sql"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
)

// Health reports that the process is up. Used by load balancers and
// monitoring; no dependencies are touched.
func Health(c echo.Context) error {
    return c.String(http.StatusOK, "ok")
}

// HealthDB returns a handler that verifies the database connection with a
// short ping so operators can distinguish a dead store from a dead process.
func HealthDB(db *sql.DB) echo.HandlerFunc {
    return func(c echo.Context) error {
        ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
        defer cancel()
        if err := db.PingContext(ctx); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database unreachable"})
        }
        return c.JSON(http.StatusOK, echo.Map{
            "message":   "database connection successful",
            "timestamp": time.Now().UTC().Format(time.RFC3339),
        })
    }
}
