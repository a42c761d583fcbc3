package handler

import (
    "context"
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/ekaraca/carmarket/internal/repository"
)

// reqCtx bounds a handler's database work by the request context plus a
// fixed timeout.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
    return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// currentUserID reads the authenticated caller's id stored by the JWT
// middleware.  Zero means the route was not protected, which is a wiring
// mistake rather than a client error.
func currentUserID(c echo.Context) uint64 {
    if v, ok := c.Get("user_id").(uint64); ok {
        return v
    }
    return 0
}

// sameCaller enforces the identity-match rule on routes that take a user id
// in the path: the authenticated caller must be that user.  Admin callers
// pass regardless.
func sameCaller(c echo.Context, userID uint64) bool {
    if role, ok := c.Get("role").(string); ok && role == "Admin" {
        return true
    }
    return currentUserID(c) == userID
}

func paramID(c echo.Context, name string) (uint64, error) {
    return strconv.ParseUint(c.Param(name), 10, 64)
}

func forbidden(c echo.Context) error {
    return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
}

// writeRepoErr maps repository failures to responses: typed conflicts get a
// field-specific 400, missing rows a 404, anything else a generic 500.
func writeRepoErr(c echo.Context, err error, fallback string) error {
    var conflict *repository.ConflictError
    if errors.As(err, &conflict) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": conflict.Error()})
    }
    if errors.Is(err, repository.ErrNotFound) {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
    }
    c.Logger().Errorf("%s: %v", fallback, err)
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": fallback})
}
