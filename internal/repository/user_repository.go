package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"

    "github.com/ekaraca/carmarket/internal/audit"
    "github.com/ekaraca/carmarket/internal/model"
    "github.com/ekaraca/carmarket/internal/utils"
)

// UserRepo persists registered users and their audit rows.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id, username, password_hash, email, phone, location, is_admin, is_active, created_at"

func scanUser(row *sql.Row) (model.User, error) {
    var u model.User
    err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Phone,
        &u.Location, &u.IsAdmin, &u.IsActive, &u.CreatedAt)
    if err == sql.ErrNoRows {
        return u, ErrNotFound
    }
    return u, err
}

// Create registers a user: hashes the password, inserts the row with the
// non-admin/active defaults and appends the creation audit entry in the same
// transaction.  Duplicate username/email/phone surfaces as *ConflictError.
func (r *UserRepo) Create(ctx context.Context, u *model.User, password string, cost int) error {
    hash, err := utils.HashPassword(password, cost)
    if err != nil {
        return err
    }
    u.Username = strings.TrimSpace(u.Username)
    u.IsAdmin = false
    u.IsActive = true
    u.CreatedAt = time.Now().UTC()
    u.PasswordHash = hash

    tx, err := r.DB.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    defer tx.Rollback()

    res, err := tx.ExecContext(ctx,
        "INSERT INTO users (username, password_hash, email, phone, location, is_admin, is_active, created_at) VALUES (?,?,?,?,?,?,?,?)",
        u.Username, u.PasswordHash, u.Email, u.Phone, u.Location, u.IsAdmin, u.IsActive, u.CreatedAt)
    if err != nil {
        return asConflict(err)
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    u.ID = uint64(id)

    if err := insertAuditTx(ctx, tx, userLogTable, userLogSubject, u.ID,
        model.AuditActionInsert, audit.UserCreated(*u), u.CreatedAt); err != nil {
        return err
    }
    return tx.Commit()
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
    return scanUser(r.DB.QueryRowContext(ctx,
        "SELECT "+userColumns+" FROM users WHERE username=? LIMIT 1", strings.TrimSpace(username)))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
    return scanUser(r.DB.QueryRowContext(ctx,
        "SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// List returns every user ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
    rows, err := r.DB.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY id")
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    users := make([]model.User, 0)
    for rows.Next() {
        var u model.User
        if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Phone,
            &u.Location, &u.IsAdmin, &u.IsActive, &u.CreatedAt); err != nil {
            return nil, err
        }
        users = append(users, u)
    }
    return users, rows.Err()
}

// Update applies an edit to email/phone/location and optionally the password
// hash (empty newHash keeps the current one).  The field-level diff against
// the stored row drives the audit entry; when nothing tracked changed, no
// UPDATE log row is written.
func (r *UserRepo) Update(ctx context.Context, id uint64, upd model.UserUpdate, newHash string) error {
    tx, err := r.DB.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    defer tx.Rollback()

    old, err := scanUser(tx.QueryRowContext(ctx,
        "SELECT "+userColumns+" FROM users WHERE id=? FOR UPDATE", id))
    if err != nil {
        return err
    }

    details := audit.UserChanges(old, upd)

    hash := old.PasswordHash
    if newHash != "" {
        hash = newHash
    }
    if _, err := tx.ExecContext(ctx,
        "UPDATE users SET email=?, phone=?, location=?, password_hash=? WHERE id=?",
        upd.Email, upd.Phone, upd.Location, hash, id); err != nil {
        return asConflict(err)
    }

    if details != "" {
        if err := insertAuditTx(ctx, tx, userLogTable, userLogSubject, id,
            model.AuditActionUpdate, details, time.Now().UTC()); err != nil {
            return err
        }
    }
    return tx.Commit()
}

// SetActive activates or deactivates an account and appends the status audit
// entry.  The write is idempotent at the data level but always logs.
func (r *UserRepo) SetActive(ctx context.Context, id uint64, active bool) error {
    tx, err := r.DB.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    defer tx.Rollback()

    var found uint64
    err = tx.QueryRowContext(ctx, "SELECT id FROM users WHERE id=? FOR UPDATE", id).Scan(&found)
    if err == sql.ErrNoRows {
        return ErrNotFound
    }
    if err != nil {
        return err
    }

    if _, err := tx.ExecContext(ctx, "UPDATE users SET is_active=? WHERE id=?", active, id); err != nil {
        return err
    }
    if err := insertAuditTx(ctx, tx, userLogTable, userLogSubject, id,
        model.AuditActionUpdate, audit.UserStatus(id, active), time.Now().UTC()); err != nil {
        return err
    }
    return tx.Commit()
}
