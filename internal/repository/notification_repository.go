package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/ekaraca/carmarket/internal/model"
)

// NotificationRepo persists user notifications.
type NotificationRepo struct{ DB *sql.DB }

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{DB: db} }

// Create stores an unread notification stamped now.  Receiver and text
// presence are validated by the handler.
func (r *NotificationRepo) Create(ctx context.Context, receiverID uint64, text string) error {
    _, err := r.DB.ExecContext(ctx,
        "INSERT INTO notifications (receiver_id, message_text, sent_time, is_read) VALUES (?,?,?,?)",
        receiverID, text, time.Now().UTC(), false)
    return err
}

// ListByReceiver returns a user's notifications, newest first.  A
// non-positive id yields an empty list without a query.
func (r *NotificationRepo) ListByReceiver(ctx context.Context, userID uint64) ([]model.Notification, error) {
    if userID == 0 {
        return []model.Notification{}, nil
    }
    rows, err := r.DB.QueryContext(ctx,
        "SELECT id, receiver_id, message_text, sent_time, is_read FROM notifications WHERE receiver_id=? ORDER BY sent_time DESC",
        userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    items := make([]model.Notification, 0)
    for rows.Next() {
        var n model.Notification
        if err := rows.Scan(&n.ID, &n.ReceiverID, &n.MessageText, &n.SentTime, &n.IsRead); err != nil {
            return nil, err
        }
        items = append(items, n)
    }
    return items, rows.Err()
}

// CountUnread counts a user's unread notifications.
func (r *NotificationRepo) CountUnread(ctx context.Context, userID uint64) (int, error) {
    if userID == 0 {
        return 0, nil
    }
    var n int
    err := r.DB.QueryRowContext(ctx,
        "SELECT COUNT(*) FROM notifications WHERE receiver_id=? AND is_read=?",
        userID, false).Scan(&n)
    return n, err
}

// MarkAllRead flips every unread notification of a user in one statement.
// Succeeds (as a no-op) when nothing was unread.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID uint64) error {
    _, err := r.DB.ExecContext(ctx,
        "UPDATE notifications SET is_read=? WHERE receiver_id=? AND is_read=?",
        true, userID, false)
    return err
}
