package handler

import (
    "net/http"
    "net/http/httptest"
    "regexp"
    "strings"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/ekaraca/carmarket/internal/logger"
    "github.com/ekaraca/carmarket/internal/model"
    "github.com/ekaraca/carmarket/internal/repository"
)

func newOfferHandler(t *testing.T) (*OfferHandler, sqlmock.Sqlmock) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    t.Cleanup(func() { db.Close() })

    fileLog, err := logger.NewFileLogger(t.TempDir())
    require.NoError(t, err)
    return NewOfferHandler(repository.NewOfferRepo(db), repository.NewCarRepo(db),
        repository.NewNotificationRepo(db), fileLog), mock
}

// asUser builds an authenticated context the way the JWT middleware would.
func asUser(method, target string, userID uint64, role string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
    e := echo.New()
    req := httptest.NewRequest(method, target, nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.Set("user_id", userID)
    c.Set("username", "tester")
    c.Set("role", role)
    for i := 0; i+1 < len(params); i += 2 {
        c.SetParamNames(params[i])
        c.SetParamValues(params[i+1])
    }
    return c, rec
}

func offerRow(receiverID uint64) *sqlmock.Rows {
    return sqlmock.NewRows([]string{"id", "car_id", "sender_id", "receiver_id", "price", "status", "offer_time"}).
        AddRow(10, 3, 2, receiverID, 500000, model.OfferStatusPending, time.Now().UTC())
}

func TestAcceptByNonReceiverIsForbidden(t *testing.T) {
    h, mock := newOfferHandler(t)

    mock.ExpectQuery(regexp.QuoteMeta("FROM offers WHERE id=? LIMIT 1")).
        WithArgs(uint64(10)).
        WillReturnRows(offerRow(99))

    c, rec := asUser(http.MethodPut, "/api/offer/accept/10", 1, "User", "id", "10")
    require.NoError(t, h.Accept(c))
    assert.Equal(t, http.StatusForbidden, rec.Code)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectByNonReceiverIsForbidden(t *testing.T) {
    h, mock := newOfferHandler(t)

    mock.ExpectQuery(regexp.QuoteMeta("FROM offers WHERE id=? LIMIT 1")).
        WithArgs(uint64(10)).
        WillReturnRows(offerRow(99))

    c, rec := asUser(http.MethodPut, "/api/offer/reject/10", 1, "User", "id", "10")
    require.NoError(t, h.Reject(c))
    assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAcceptMissingOfferIsNotFound(t *testing.T) {
    h, mock := newOfferHandler(t)

    mock.ExpectQuery(regexp.QuoteMeta("FROM offers WHERE id=? LIMIT 1")).
        WithArgs(uint64(77)).
        WillReturnRows(sqlmock.NewRows([]string{"id"}))

    c, rec := asUser(http.MethodPut, "/api/offer/accept/77", 1, "User", "id", "77")
    require.NoError(t, h.Accept(c))
    assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSentListingForAnotherUserIsForbidden(t *testing.T) {
    h, _ := newOfferHandler(t)

    c, rec := asUser(http.MethodGet, "/api/offer/sent/2", 1, "User", "userId", "2")
    require.NoError(t, h.Sent(c))
    assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminMayReadAnyUsersOffers(t *testing.T) {
    h, mock := newOfferHandler(t)

    mock.ExpectQuery("WHERE sender_id=\\? ORDER BY offer_time DESC").
        WithArgs(uint64(2)).
        WillReturnRows(offerRow(1))

    c, rec := asUser(http.MethodGet, "/api/offer/sent/2", 7, "Admin", "userId", "2")
    require.NoError(t, h.Sent(c))
    assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateOfferOnOwnCarRejected(t *testing.T) {
    h, mock := newOfferHandler(t)

    carCols := []string{"id", "owner_id", "brand", "model", "year", "km",
        "fuel_type", "transmission", "price", "description", "status", "listed_at"}
    mock.ExpectQuery(regexp.QuoteMeta("FROM cars WHERE id=? LIMIT 1")).
        WithArgs(uint64(3)).
        WillReturnRows(sqlmock.NewRows(carCols).
            AddRow(3, 1, "Toyota", "Corolla", 2020, 50000, "gasoline", "automatic", 500000, "", model.CarStatusAvailable, time.Now().UTC()))

    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/api/offer/create",
        strings.NewReader(`{"car_id":3,"price":450000}`))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.Set("user_id", uint64(1))
    c.Set("role", "User")

    require.NoError(t, h.Create(c))
    assert.Equal(t, http.StatusBadRequest, rec.Code)
    assert.Contains(t, rec.Body.String(), "own car")
}

func TestCreateOfferMissingFields(t *testing.T) {
    h, _ := newOfferHandler(t)

    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/api/offer/create", strings.NewReader(`{"price":450000}`))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.Set("user_id", uint64(1))

    require.NoError(t, h.Create(c))
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}
