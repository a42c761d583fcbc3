package repository

import (
    "context"
    "database/sql"
    "regexp"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/ekaraca/carmarket/internal/model"
)

func newOfferRepo(t *testing.T) (*OfferRepo, sqlmock.Sqlmock) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    t.Cleanup(func() { db.Close() })
    return NewOfferRepo(db), mock
}

var offerCols = []string{"id", "car_id", "sender_id", "receiver_id", "price", "status", "offer_time"}

func TestAcceptCascadesInOneTransaction(t *testing.T) {
    repo, mock := newOfferRepo(t)
    now := time.Now().UTC()

    mock.ExpectBegin()

    // The winning offer is locked while still pending.
    mock.ExpectQuery("FROM offers WHERE id=\\? AND status=\\? FOR UPDATE").
        WithArgs(uint64(10), model.OfferStatusPending).
        WillReturnRows(sqlmock.NewRows(offerCols).AddRow(10, 3, 2, 1, 500000, model.OfferStatusPending, now))

    // Car goes sold, with its audit row.
    mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM cars WHERE id=? FOR UPDATE")).
        WithArgs(uint64(3)).
        WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
    mock.ExpectExec(regexp.QuoteMeta("UPDATE cars SET status=? WHERE id=?")).
        WithArgs(model.CarStatusSold, uint64(3)).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO car_logs")).
        WithArgs(uint64(3), model.AuditActionUpdate, sqlmock.AnyArg(), "Car #3 has been updated to sold\n").
        WillReturnResult(sqlmock.NewResult(1, 1))

    // The offer itself is accepted.
    mock.ExpectExec(regexp.QuoteMeta("UPDATE offers SET status=? WHERE id=?")).
        WithArgs(model.OfferStatusAccepted, uint64(10)).
        WillReturnResult(sqlmock.NewResult(0, 1))

    // Two competing pending offers lose.
    mock.ExpectQuery("SELECT id, sender_id FROM offers WHERE car_id=\\? AND id<>\\? AND status=\\? FOR UPDATE").
        WithArgs(uint64(3), uint64(10), model.OfferStatusPending).
        WillReturnRows(sqlmock.NewRows([]string{"id", "sender_id"}).AddRow(11, 5).AddRow(12, 6))

    for _, sib := range []struct{ id, sender uint64 }{{11, 5}, {12, 6}} {
        mock.ExpectExec(regexp.QuoteMeta("UPDATE offers SET status=? WHERE id=?")).
            WithArgs(model.OfferStatusRejected, sib.id).
            WillReturnResult(sqlmock.NewResult(0, 1))
        mock.ExpectExec(regexp.QuoteMeta("INSERT INTO notifications")).
            WithArgs(sib.sender, RejectedOfferNotice, sqlmock.AnyArg(), false).
            WillReturnResult(sqlmock.NewResult(1, 1))
        mock.ExpectExec(regexp.QuoteMeta("INSERT INTO offer_logs")).
            WithArgs(sib.id, model.AuditActionUpdate, sqlmock.AnyArg(), sqlmock.AnyArg()).
            WillReturnResult(sqlmock.NewResult(1, 1))
    }

    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO offer_logs")).
        WithArgs(uint64(10), model.AuditActionUpdate, sqlmock.AnyArg(), "Offer #10 has been updated to accepted\n").
        WillReturnResult(sqlmock.NewResult(1, 1))
    mock.ExpectCommit()

    res, err := repo.Accept(context.Background(), 10)
    require.NoError(t, err)
    assert.Equal(t, model.OfferStatusAccepted, res.Offer.Status)
    assert.Equal(t, uint64(3), res.Offer.CarID)
    assert.Equal(t, []uint64{11, 12}, res.RejectedOffers)
    assert.Equal(t, []uint64{5, 6}, res.RejectedSenders)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptNonPendingIsNotFound(t *testing.T) {
    repo, mock := newOfferRepo(t)

    // A decided or missing offer does not match the pending lock query.
    mock.ExpectBegin()
    mock.ExpectQuery("FROM offers WHERE id=\\? AND status=\\? FOR UPDATE").
        WithArgs(uint64(77), model.OfferStatusPending).
        WillReturnError(sql.ErrNoRows)
    mock.ExpectRollback()

    _, err := repo.Accept(context.Background(), 77)
    assert.ErrorIs(t, err, ErrNotFound)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectHasNoCascade(t *testing.T) {
    repo, mock := newOfferRepo(t)
    now := time.Now().UTC()

    mock.ExpectBegin()
    mock.ExpectQuery("FROM offers WHERE id=\\? AND status=\\? FOR UPDATE").
        WithArgs(uint64(10), model.OfferStatusPending).
        WillReturnRows(sqlmock.NewRows(offerCols).AddRow(10, 3, 2, 1, 500000, model.OfferStatusPending, now))
    mock.ExpectExec(regexp.QuoteMeta("UPDATE offers SET status=? WHERE id=?")).
        WithArgs(model.OfferStatusRejected, uint64(10)).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO offer_logs")).
        WithArgs(uint64(10), model.AuditActionUpdate, sqlmock.AnyArg(), "Offer #10 has been updated to rejected\n").
        WillReturnResult(sqlmock.NewResult(1, 1))
    mock.ExpectCommit()

    require.NoError(t, repo.Reject(context.Background(), 10))
    // ExpectationsWereMet also proves no car update or notification happened.
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateStampsPendingAndAudits(t *testing.T) {
    repo, mock := newOfferRepo(t)

    mock.ExpectBegin()
    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO offers")).
        WithArgs(uint64(3), uint64(2), uint64(1), int64(500000), model.OfferStatusPending, sqlmock.AnyArg()).
        WillReturnResult(sqlmock.NewResult(10, 1))
    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO offer_logs")).
        WithArgs(uint64(10), model.AuditActionInsert, sqlmock.AnyArg(), "User #2 offered 500.000 for Car #3.").
        WillReturnResult(sqlmock.NewResult(1, 1))
    mock.ExpectCommit()

    o := model.Offer{CarID: 3, SenderID: 2, ReceiverID: 1, Price: 500000}
    require.NoError(t, repo.Create(context.Background(), &o))
    assert.Equal(t, uint64(10), o.ID)
    assert.Equal(t, model.OfferStatusPending, o.Status)
    assert.False(t, o.OfferTime.IsZero())
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListSentOrder(t *testing.T) {
    repo, mock := newOfferRepo(t)
    now := time.Now().UTC()

    mock.ExpectQuery("WHERE sender_id=\\? ORDER BY offer_time DESC").
        WithArgs(uint64(2)).
        WillReturnRows(sqlmock.NewRows(offerCols).
            AddRow(12, 3, 2, 1, 600000, model.OfferStatusPending, now).
            AddRow(10, 4, 2, 9, 500000, model.OfferStatusRejected, now.Add(-time.Hour)))

    offers, err := repo.ListSent(context.Background(), 2)
    require.NoError(t, err)
    require.Len(t, offers, 2)
    assert.Equal(t, uint64(12), offers[0].ID)
    assert.NoError(t, mock.ExpectationsWereMet())
}
