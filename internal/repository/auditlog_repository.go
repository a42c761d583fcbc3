package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/ekaraca/carmarket/internal/model"
)

// LogRepo reads the append-only audit tables.  Rows are written by the car,
// user and offer repositories inside the transaction of the action they
// describe; this repository only exposes the admin read side.
type LogRepo struct{ DB *sql.DB }

func NewLogRepo(db *sql.DB) *LogRepo { return &LogRepo{DB: db} }

// Audit table names with their subject column.  Kept together so the insert
// helper and the readers cannot drift apart.
const (
    userLogTable  = "user_logs"
    carLogTable   = "car_logs"
    offerLogTable = "offer_logs"

    userLogSubject  = "user_id"
    carLogSubject   = "car_id"
    offerLogSubject = "offer_id"
)

// insertAuditTx appends one audit row within the caller's transaction.  The
// rendered details string travels in the same insert as the identifying
// fields, so a reader can never observe a log row without its description.
func insertAuditTx(ctx context.Context, tx *sql.Tx, table, subjectCol string, subjectID uint64, action, details string, at time.Time) error {
    q := "INSERT INTO " + table + " (" + subjectCol + ", action_type, action_time, action_details) VALUES (?,?,?,?)"
    _, err := tx.ExecContext(ctx, q, subjectID, action, at, details)
    return err
}

func (r *LogRepo) ListUserLogs(ctx context.Context) ([]model.AuditLog, error) {
    return r.list(ctx, userLogTable, userLogSubject)
}

func (r *LogRepo) ListCarLogs(ctx context.Context) ([]model.AuditLog, error) {
    return r.list(ctx, carLogTable, carLogSubject)
}

func (r *LogRepo) ListOfferLogs(ctx context.Context) ([]model.AuditLog, error) {
    return r.list(ctx, offerLogTable, offerLogSubject)
}

// list returns every row of one audit table, newest first.
func (r *LogRepo) list(ctx context.Context, table, subjectCol string) ([]model.AuditLog, error) {
    q := "SELECT id, " + subjectCol + ", action_type, action_time, action_details FROM " + table + " ORDER BY action_time DESC, id DESC"
    rows, err := r.DB.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    logs := make([]model.AuditLog, 0)
    for rows.Next() {
        var l model.AuditLog
        var details sql.NullString
        if err := rows.Scan(&l.ID, &l.SubjectID, &l.ActionType, &l.ActionTime, &details); err != nil {
            return nil, err
        }
        l.Details = details.String
        logs = append(logs, l)
    }
    return logs, rows.Err()
}
