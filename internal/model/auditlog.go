package model

import "time"

// Audit action types.  INSERT marks entity creation, UPDATE any later
// mutation including status changes.  The tables are append-only.
const (
    AuditActionInsert = "INSERT"
    AuditActionUpdate = "UPDATE"
)

// AuditLog mirrors one row of the user_logs, car_logs or offer_logs tables.
// SubjectID is the user, car or offer the entry describes.  Details holds the
// rendered human-readable change description and is written together with
// the identifying fields in a single insert.
type AuditLog struct {
    ID         uint64    `json:"id"`
    SubjectID  uint64    `json:"subject_id"`
    ActionType string    `json:"action_type"` // 'INSERT' | 'UPDATE'
    ActionTime time.Time `json:"action_time"`
    Details    string    `json:"action_details"`
}
