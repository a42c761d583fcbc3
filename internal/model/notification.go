package model

import "time"

// Notification mirrors the `notifications` table.  Rows are created by any
// component that needs to tell a user something (offer rejections today) and
// are only ever mutated by marking them read.
type Notification struct {
    ID          uint64    `json:"id"`           // notifications.id
    ReceiverID  uint64    `json:"receiver_id"`  // notifications.receiver_id
    MessageText string    `json:"message_text"` // notifications.message_text
    SentTime    time.Time `json:"sent_time"`    // notifications.sent_time
    IsRead      bool      `json:"is_read"`      // notifications.is_read
}
