package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// RequireRole aborts the request with 403 unless the authenticated caller's
// role, stored by JWTAuth, is one of the allowed values.  Authorization is
// decided here on the server; nothing the client sends besides the signed
// token influences it.
func RequireRole(roles ...string) echo.MiddlewareFunc {
    allowed := make(map[string]bool, len(roles))
    for _, r := range roles {
        allowed[r] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            role, ok := c.Get("role").(string)
            if !ok || !allowed[role] {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            return next(c)
        }
    }
}
