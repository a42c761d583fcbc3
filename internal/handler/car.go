package handler

import (
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/ekaraca/carmarket/internal/model"
    "github.com/ekaraca/carmarket/internal/repository"
)

// CarHandler bundles dependencies for listing endpoints.
type CarHandler struct {
    Cars *repository.CarRepo
}

func NewCarHandler(cars *repository.CarRepo) *CarHandler {
    return &CarHandler{Cars: cars}
}

type carUploadReq struct {
    Brand        string `json:"brand"`
    Model        string `json:"model"`
    Year         int    `json:"year"`
    KM           int64  `json:"km"`
    FuelType     string `json:"fuel_type"`
    Transmission string `json:"transmission"`
    Price        int64  `json:"price"`
    Description  string `json:"description"`
}

// pagedCars is the browse envelope: one page of items plus enough counts for
// the client to render a pager.
type pagedCars struct {
    Items      []repository.CarListItem `json:"items"`
    TotalItems int                      `json:"total_items"`
    TotalPages int                      `json:"total_pages"`
    PageNumber int                      `json:"page_number"`
    PageSize   int                      `json:"page_size"`
}

// Details serves the public single-car view with owner display info.
func (h *CarHandler) Details(c echo.Context) error {
    id, err := paramID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid car id"})
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    d, err := h.Cars.Details(ctx, id)
    if err != nil {
        return writeRepoErr(c, err, "load car failed")
    }
    return c.JSON(http.StatusOK, d)
}

// All lists every car regardless of status.
func (h *CarHandler) All(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()

    items, err := h.Cars.ListAll(ctx)
    if err != nil {
        return writeRepoErr(c, err, "list cars failed")
    }
    return c.JSON(http.StatusOK, items)
}

// Available serves the paged marketplace browse view.  Page and size default
// to 1 and 10; brand, sortBy and sortDirection are passed through to the
// repository which owns the filter and order semantics.
func (h *CarHandler) Available(c echo.Context) error {
    p := repository.ListParams{
        Page:     queryInt(c, "pageNumber", 1),
        PageSize: queryInt(c, "pageSize", 10),
        Brand:    c.QueryParam("brand"),
        SortBy:   c.QueryParam("sortBy"),
        SortDir:  c.QueryParam("sortDirection"),
    }
    if p.Page < 1 {
        p.Page = 1
    }
    if p.PageSize < 1 {
        p.PageSize = 1
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    items, total, err := h.Cars.ListAvailable(ctx, p)
    if err != nil {
        return writeRepoErr(c, err, "list cars failed")
    }
    return c.JSON(http.StatusOK, pagedCars{
        Items:      items,
        TotalItems: total,
        TotalPages: (total + p.PageSize - 1) / p.PageSize,
        PageNumber: p.Page,
        PageSize:   p.PageSize,
    })
}

// ByOwner lists a user's own cars, any status.
func (h *CarHandler) ByOwner(c echo.Context) error {
    userID, err := paramID(c, "userId")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    items, err := h.Cars.ListByOwner(ctx, userID)
    if err != nil {
        return writeRepoErr(c, err, "list cars failed")
    }
    return c.JSON(http.StatusOK, items)
}

// Favorites lists the still-available cars a user has bookmarked.
func (h *CarHandler) Favorites(c echo.Context) error {
    userID, err := paramID(c, "userId")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
    }
    if !sameCaller(c, userID) {
        return forbidden(c)
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    items, err := h.Cars.ListFavorites(ctx, userID)
    if err != nil {
        return writeRepoErr(c, err, "list favorites failed")
    }
    return c.JSON(http.StatusOK, items)
}

// Upload creates a listing owned by the caller.
func (h *CarHandler) Upload(c echo.Context) error {
    var req carUploadReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.Brand == "" || req.Model == "" || req.Year == 0 || req.Price <= 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "brand, model, year and price are required"})
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    car := model.Car{
        OwnerID:      currentUserID(c),
        Brand:        req.Brand,
        Model:        req.Model,
        Year:         req.Year,
        KM:           req.KM,
        FuelType:     req.FuelType,
        Transmission: req.Transmission,
        Price:        req.Price,
        Description:  req.Description,
    }
    if err := h.Cars.Create(ctx, &car); err != nil {
        return writeRepoErr(c, err, "create car failed")
    }
    return c.JSON(http.StatusCreated, car)
}

// Update edits a listing's mutable fields.  Only the owner (or an admin) may
// edit.
func (h *CarHandler) Update(c echo.Context) error {
    id, err := paramID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid car id"})
    }

    var upd model.CarUpdate
    if err := c.Bind(&upd); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if upd.Brand == "" || upd.Model == "" || upd.Price <= 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "brand, model and price are required"})
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    if ok, err := h.requireOwner(c, id); !ok {
        return err
    }
    if err := h.Cars.Update(ctx, id, upd); err != nil {
        return writeRepoErr(c, err, "update car failed")
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "car updated"})
}

// MarkSold flips the listing to sold.
func (h *CarHandler) MarkSold(c echo.Context) error {
    return h.mark(c, model.CarStatusSold)
}

// MarkAvailable re-lists a car.
func (h *CarHandler) MarkAvailable(c echo.Context) error {
    return h.mark(c, model.CarStatusAvailable)
}

func (h *CarHandler) mark(c echo.Context, status string) error {
    id, err := paramID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid car id"})
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    if ok, err := h.requireOwner(c, id); !ok {
        return err
    }
    if err := h.Cars.SetStatus(ctx, id, status); err != nil {
        return writeRepoErr(c, err, "update car status failed")
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "car marked " + status})
}

// requireOwner answers 404 for a missing car and 403 when the caller neither
// owns it nor is an admin.  The response is already written when ok is
// false; callers just return the error.
func (h *CarHandler) requireOwner(c echo.Context, carID uint64) (bool, error) {
    ctx, cancel := reqCtx(c)
    defer cancel()

    car, err := h.Cars.GetByID(ctx, carID)
    if err != nil {
        return false, writeRepoErr(c, err, "load car failed")
    }
    if !sameCaller(c, car.OwnerID) {
        return false, forbidden(c)
    }
    return true, nil
}

func queryInt(c echo.Context, name string, def int) int {
    v := c.QueryParam(name)
    if v == "" {
        return def
    }
    if n, err := strconv.Atoi(v); err == nil {
        return n
    }
    return def
}
