package handler

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "regexp"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/ekaraca/carmarket/internal/model"
    "github.com/ekaraca/carmarket/internal/repository"
)

func newCarHandler(t *testing.T) (*CarHandler, sqlmock.Sqlmock) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    t.Cleanup(func() { db.Close() })
    return NewCarHandler(repository.NewCarRepo(db)), mock
}

func TestAvailableComputesTotalPages(t *testing.T) {
    h, mock := newCarHandler(t)

    mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM cars c WHERE c.status=?")).
        WithArgs(model.CarStatusAvailable).
        WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
    mock.ExpectQuery("LIMIT \\? OFFSET \\?").
        WithArgs(model.CarStatusAvailable, 10, 20).
        WillReturnRows(sqlmock.NewRows([]string{"id", "brand", "model", "year", "km", "price",
            "status", "listed_at", "owner_id", "username", "location", "url"}))

    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/api/car/available?pageNumber=3&pageSize=10", nil)
    rec := httptest.NewRecorder()
    require.NoError(t, h.Available(e.NewContext(req, rec)))

    require.Equal(t, http.StatusOK, rec.Code)
    var resp struct {
        TotalItems int `json:"total_items"`
        TotalPages int `json:"total_pages"`
        PageNumber int `json:"page_number"`
        PageSize   int `json:"page_size"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    assert.Equal(t, 25, resp.TotalItems)
    assert.Equal(t, 3, resp.TotalPages)
    assert.Equal(t, 3, resp.PageNumber)
    assert.Equal(t, 10, resp.PageSize)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailableClampsBadPaging(t *testing.T) {
    h, mock := newCarHandler(t)

    mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
        WithArgs(model.CarStatusAvailable).
        WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
    mock.ExpectQuery("LIMIT \\? OFFSET \\?").
        WithArgs(model.CarStatusAvailable, 1, 0).
        WillReturnRows(sqlmock.NewRows([]string{"id", "brand", "model", "year", "km", "price",
            "status", "listed_at", "owner_id", "username", "location", "url"}))

    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/api/car/available?pageNumber=0&pageSize=-5", nil)
    rec := httptest.NewRecorder()
    require.NoError(t, h.Available(e.NewContext(req, rec)))
    assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDetailsUnknownCarIs404(t *testing.T) {
    h, mock := newCarHandler(t)

    mock.ExpectQuery("FROM cars c JOIN users u").
        WithArgs(uint64(99)).
        WillReturnRows(sqlmock.NewRows([]string{"id"}))

    c, rec := asUser(http.MethodGet, "/api/car/details/99", 0, "", "id", "99")
    require.NoError(t, h.Details(c))
    assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMarkSoldByNonOwnerIsForbidden(t *testing.T) {
    h, mock := newCarHandler(t)

    carCols := []string{"id", "owner_id", "brand", "model", "year", "km",
        "fuel_type", "transmission", "price", "description", "status", "listed_at"}
    mock.ExpectQuery(regexp.QuoteMeta("FROM cars WHERE id=? LIMIT 1")).
        WithArgs(uint64(3)).
        WillReturnRows(sqlmock.NewRows(carCols).
            AddRow(3, 42, "Toyota", "Corolla", 2020, 50000, "gasoline", "automatic", 500000, "", model.CarStatusAvailable, time.Now().UTC()))

    c, rec := asUser(http.MethodPut, "/api/car/mark/sold/3", 1, "User", "id", "3")
    require.NoError(t, h.MarkSold(c))
    assert.Equal(t, http.StatusForbidden, rec.Code)
}
