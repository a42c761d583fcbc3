package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/ekaraca/carmarket/internal/repository"
)

// NotificationHandler serves a user's in-app notifications.
type NotificationHandler struct {
    Notifications *repository.NotificationRepo
}

func NewNotificationHandler(n *repository.NotificationRepo) *NotificationHandler {
    return &NotificationHandler{Notifications: n}
}

// List returns a user's notifications, newest first.
func (h *NotificationHandler) List(c echo.Context) error {
    userID, err := paramID(c, "userId")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
    }
    if !sameCaller(c, userID) {
        return forbidden(c)
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    items, err := h.Notifications.ListByReceiver(ctx, userID)
    if err != nil {
        return writeRepoErr(c, err, "list notifications failed")
    }
    return c.JSON(http.StatusOK, items)
}

// UnreadCount returns the badge number.
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
    userID, err := paramID(c, "userId")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
    }
    if !sameCaller(c, userID) {
        return forbidden(c)
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    n, err := h.Notifications.CountUnread(ctx, userID)
    if err != nil {
        return writeRepoErr(c, err, "count notifications failed")
    }
    return c.JSON(http.StatusOK, echo.Map{"count": n})
}

// MarkAllRead clears the unread flag on everything a user has; succeeds as a
// no-op when nothing was unread.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
    userID, err := paramID(c, "userId")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
    }
    if !sameCaller(c, userID) {
        return forbidden(c)
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Notifications.MarkAllRead(ctx, userID); err != nil {
        return writeRepoErr(c, err, "mark notifications read failed")
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "notifications marked read"})
}
