package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/ekaraca/carmarket/internal/audit"
    "github.com/ekaraca/carmarket/internal/model"
)

// OfferRepo persists purchase offers and runs the acceptance workflow.
type OfferRepo struct{ DB *sql.DB }

func NewOfferRepo(db *sql.DB) *OfferRepo { return &OfferRepo{DB: db} }

const offerColumns = "id, car_id, sender_id, receiver_id, price, status, offer_time"

// RejectedOfferNotice is sent to every bidder whose pending offer loses when
// the owner accepts a competing one.
const RejectedOfferNotice = "Your offer for a car was automatically rejected because the owner accepted another offer."

// AcceptResult reports what the acceptance transaction changed, so the
// caller can publish the sale event after commit.
type AcceptResult struct {
    Offer           model.Offer // the accepted offer
    RejectedOffers  []uint64    // sibling offer ids that were cascade-rejected
    RejectedSenders []uint64    // senders of those offers (notified in-tx)
}

// Create stores a new pending offer and its creation audit entry.  Field
// presence is validated by the handler; the repository stamps status and
// time.
func (r *OfferRepo) Create(ctx context.Context, o *model.Offer) error {
    o.Status = model.OfferStatusPending
    o.OfferTime = time.Now().UTC()

    tx, err := r.DB.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    defer tx.Rollback()

    res, err := tx.ExecContext(ctx,
        "INSERT INTO offers (car_id, sender_id, receiver_id, price, status, offer_time) VALUES (?,?,?,?,?,?)",
        o.CarID, o.SenderID, o.ReceiverID, o.Price, o.Status, o.OfferTime)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    o.ID = uint64(id)

    if err := insertAuditTx(ctx, tx, offerLogTable, offerLogSubject, o.ID,
        model.AuditActionInsert, audit.OfferCreated(o.SenderID, o.Price, o.CarID), o.OfferTime); err != nil {
        return err
    }
    return tx.Commit()
}

// Accept decides a pending offer in one transaction: the offer becomes
// accepted, the car is marked sold, every other pending offer on the car is
// rejected and its sender notified, and audit rows are appended for each
// state change.  Either all of it commits or none of it does, so a second
// acceptance can never race through a half-applied sale.  A missing or
// already-decided offer returns ErrNotFound.
func (r *OfferRepo) Accept(ctx context.Context, offerID uint64) (AcceptResult, error) {
    var result AcceptResult
    now := time.Now().UTC()

    tx, err := r.DB.BeginTx(ctx, nil)
    if err != nil {
        return result, err
    }
    defer tx.Rollback()

    o, err := lockPendingOffer(ctx, tx, offerID)
    if err != nil {
        return result, err
    }

    if err := setCarStatusTx(ctx, tx, o.CarID, model.CarStatusSold, now); err != nil {
        return result, err
    }

    if _, err := tx.ExecContext(ctx,
        "UPDATE offers SET status=? WHERE id=?", model.OfferStatusAccepted, o.ID); err != nil {
        return result, err
    }
    o.Status = model.OfferStatusAccepted

    // Competing pending offers on the same car lose.
    rows, err := tx.QueryContext(ctx,
        "SELECT id, sender_id FROM offers WHERE car_id=? AND id<>? AND status=? FOR UPDATE",
        o.CarID, o.ID, model.OfferStatusPending)
    if err != nil {
        return result, err
    }
    type sibling struct{ id, sender uint64 }
    var siblings []sibling
    for rows.Next() {
        var s sibling
        if err := rows.Scan(&s.id, &s.sender); err != nil {
            rows.Close()
            return result, err
        }
        siblings = append(siblings, s)
    }
    rows.Close()
    if err := rows.Err(); err != nil {
        return result, err
    }

    for _, s := range siblings {
        if _, err := tx.ExecContext(ctx,
            "UPDATE offers SET status=? WHERE id=?", model.OfferStatusRejected, s.id); err != nil {
            return result, err
        }
        if _, err := tx.ExecContext(ctx,
            "INSERT INTO notifications (receiver_id, message_text, sent_time, is_read) VALUES (?,?,?,?)",
            s.sender, RejectedOfferNotice, now, false); err != nil {
            return result, err
        }
        if err := insertAuditTx(ctx, tx, offerLogTable, offerLogSubject, s.id,
            model.AuditActionUpdate, audit.OfferStatus(s.id, model.OfferStatusRejected), now); err != nil {
            return result, err
        }
        result.RejectedOffers = append(result.RejectedOffers, s.id)
        result.RejectedSenders = append(result.RejectedSenders, s.sender)
    }

    if err := insertAuditTx(ctx, tx, offerLogTable, offerLogSubject, o.ID,
        model.AuditActionUpdate, audit.OfferStatus(o.ID, model.OfferStatusAccepted), now); err != nil {
        return result, err
    }

    if err := tx.Commit(); err != nil {
        return result, err
    }
    result.Offer = o
    return result, nil
}

// Reject decides a pending offer without any cascade.
func (r *OfferRepo) Reject(ctx context.Context, offerID uint64) error {
    tx, err := r.DB.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    defer tx.Rollback()

    o, err := lockPendingOffer(ctx, tx, offerID)
    if err != nil {
        return err
    }
    if _, err := tx.ExecContext(ctx,
        "UPDATE offers SET status=? WHERE id=?", model.OfferStatusRejected, o.ID); err != nil {
        return err
    }
    if err := insertAuditTx(ctx, tx, offerLogTable, offerLogSubject, o.ID,
        model.AuditActionUpdate, audit.OfferStatus(o.ID, model.OfferStatusRejected), time.Now().UTC()); err != nil {
        return err
    }
    return tx.Commit()
}

// lockPendingOffer loads an offer row that is still pending, locking it for
// the rest of the transaction.  A missing id and an already-decided offer
// are indistinguishable to the caller: both are ErrNotFound.
func lockPendingOffer(ctx context.Context, tx *sql.Tx, offerID uint64) (model.Offer, error) {
    var o model.Offer
    err := tx.QueryRowContext(ctx,
        "SELECT "+offerColumns+" FROM offers WHERE id=? AND status=? FOR UPDATE",
        offerID, model.OfferStatusPending).
        Scan(&o.ID, &o.CarID, &o.SenderID, &o.ReceiverID, &o.Price, &o.Status, &o.OfferTime)
    if err == sql.ErrNoRows {
        return o, ErrNotFound
    }
    return o, err
}

// GetByID fetches a single offer row.
func (r *OfferRepo) GetByID(ctx context.Context, id uint64) (model.Offer, error) {
    var o model.Offer
    err := r.DB.QueryRowContext(ctx,
        "SELECT "+offerColumns+" FROM offers WHERE id=? LIMIT 1", id).
        Scan(&o.ID, &o.CarID, &o.SenderID, &o.ReceiverID, &o.Price, &o.Status, &o.OfferTime)
    if err == sql.ErrNoRows {
        return o, ErrNotFound
    }
    return o, err
}

func (r *OfferRepo) listBy(ctx context.Context, column string, userID uint64) ([]model.Offer, error) {
    rows, err := r.DB.QueryContext(ctx,
        "SELECT "+offerColumns+" FROM offers WHERE "+column+"=? ORDER BY offer_time DESC", userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    offers := make([]model.Offer, 0)
    for rows.Next() {
        var o model.Offer
        if err := rows.Scan(&o.ID, &o.CarID, &o.SenderID, &o.ReceiverID, &o.Price, &o.Status, &o.OfferTime); err != nil {
            return nil, err
        }
        offers = append(offers, o)
    }
    return offers, rows.Err()
}

// ListSent returns a user's outgoing offers, newest first.
func (r *OfferRepo) ListSent(ctx context.Context, userID uint64) ([]model.Offer, error) {
    return r.listBy(ctx, "sender_id", userID)
}

// ListReceived returns a user's incoming offers, newest first.
func (r *OfferRepo) ListReceived(ctx context.Context, userID uint64) ([]model.Offer, error) {
    return r.listBy(ctx, "receiver_id", userID)
}

// CountPendingReceived counts a user's undecided incoming offers.
func (r *OfferRepo) CountPendingReceived(ctx context.Context, userID uint64) (int, error) {
    var n int
    err := r.DB.QueryRowContext(ctx,
        "SELECT COUNT(*) FROM offers WHERE receiver_id=? AND status=?",
        userID, model.OfferStatusPending).Scan(&n)
    return n, err
}
