package handler

import (
    "errors"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/ekaraca/carmarket/internal/repository"
)

// FavoriteHandler exposes the bookmark endpoints.  All of them act on the
// authenticated caller's own favorites.
type FavoriteHandler struct {
    Favorites *repository.FavoriteRepo
}

func NewFavoriteHandler(f *repository.FavoriteRepo) *FavoriteHandler {
    return &FavoriteHandler{Favorites: f}
}

type favoriteReq struct {
    UserID uint64 `json:"user_id"`
    CarID  uint64 `json:"car_id"`
}

// bindPair reads the (user, car) pair from the body and rejects requests for
// someone else's favorites.
func (h *FavoriteHandler) bindPair(c echo.Context) (favoriteReq, bool, error) {
    var req favoriteReq
    if err := c.Bind(&req); err != nil {
        return req, false, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.UserID == 0 || req.CarID == 0 {
        return req, false, c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id and car_id are required"})
    }
    if !sameCaller(c, req.UserID) {
        return req, false, forbidden(c)
    }
    return req, true, nil
}

// Add bookmarks a car.  A second add for the same pair answers 400 with the
// already-in-favorites message.
func (h *FavoriteHandler) Add(c echo.Context) error {
    req, ok, err := h.bindPair(c)
    if !ok {
        return err
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Favorites.Add(ctx, req.UserID, req.CarID); err != nil {
        if errors.Is(err, repository.ErrAlreadyFavorited) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "already in favorites"})
        }
        return writeRepoErr(c, err, "add favorite failed")
    }
    return c.JSON(http.StatusCreated, echo.Map{"message": "added to favorites"})
}

// Remove deletes the bookmark.
func (h *FavoriteHandler) Remove(c echo.Context) error {
    req, ok, err := h.bindPair(c)
    if !ok {
        return err
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Favorites.Remove(ctx, req.UserID, req.CarID); err != nil {
        return writeRepoErr(c, err, "remove favorite failed")
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "removed from favorites"})
}

// Check reports whether the caller has bookmarked a car.
func (h *FavoriteHandler) Check(c echo.Context) error {
    userID, err1 := strconv.ParseUint(c.QueryParam("userId"), 10, 64)
    carID, err2 := strconv.ParseUint(c.QueryParam("carId"), 10, 64)
    if err1 != nil || err2 != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "userId and carId are required"})
    }
    if !sameCaller(c, userID) {
        return forbidden(c)
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    exists, err := h.Favorites.Exists(ctx, userID, carID)
    if err != nil {
        return writeRepoErr(c, err, "check favorite failed")
    }
    return c.JSON(http.StatusOK, echo.Map{"favorited": exists})
}

// Count returns how many cars a user has bookmarked.
func (h *FavoriteHandler) Count(c echo.Context) error {
    userID, err := paramID(c, "userId")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
    }
    if !sameCaller(c, userID) {
        return forbidden(c)
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    n, err := h.Favorites.CountByUser(ctx, userID)
    if err != nil {
        return writeRepoErr(c, err, "count favorites failed")
    }
    return c.JSON(http.StatusOK, echo.Map{"count": n})
}
