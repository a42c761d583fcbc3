package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/ekaraca/carmarket/internal/repository"
)

// LogHandler serves the append-only audit tables to administrators.  The
// admin check is enforced in the router with role middleware, never by the
// client.
type LogHandler struct {
    Logs *repository.LogRepo
}

func NewLogHandler(logs *repository.LogRepo) *LogHandler {
    return &LogHandler{Logs: logs}
}

func (h *LogHandler) UserLogs(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()

    logs, err := h.Logs.ListUserLogs(ctx)
    if err != nil {
        return writeRepoErr(c, err, "list user logs failed")
    }
    return c.JSON(http.StatusOK, logs)
}

func (h *LogHandler) CarLogs(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()

    logs, err := h.Logs.ListCarLogs(ctx)
    if err != nil {
        return writeRepoErr(c, err, "list car logs failed")
    }
    return c.JSON(http.StatusOK, logs)
}

func (h *LogHandler) OfferLogs(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()

    logs, err := h.Logs.ListOfferLogs(ctx)
    if err != nil {
        return writeRepoErr(c, err, "list offer logs failed")
    }
    return c.JSON(http.StatusOK, logs)
}
