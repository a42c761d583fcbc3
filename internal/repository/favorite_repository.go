package repository

import (
    "context"
    "database/sql"
    "time"
)

// FavoriteRepo persists user bookmarks of cars.  Uniqueness per (user, car)
// pair is enforced by the uq_favorites_user_car key, not by a pre-check.
type FavoriteRepo struct{ DB *sql.DB }

func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{DB: db} }

// Add bookmarks a car.  A duplicate pair surfaces as ErrAlreadyFavorited via
// the unique key, so two concurrent adds cannot both succeed.
func (r *FavoriteRepo) Add(ctx context.Context, userID, carID uint64) error {
    _, err := r.DB.ExecContext(ctx,
        "INSERT INTO favorites (user_id, car_id, added_at) VALUES (?,?,?)",
        userID, carID, time.Now().UTC())
    return asConflict(err)
}

// Remove deletes the bookmark; a pair that does not exist is ErrNotFound.
func (r *FavoriteRepo) Remove(ctx context.Context, userID, carID uint64) error {
    res, err := r.DB.ExecContext(ctx,
        "DELETE FROM favorites WHERE user_id=? AND car_id=?", userID, carID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrNotFound
    }
    return nil
}

// Exists reports whether the pair is bookmarked.  Non-positive ids are
// vacuously false without touching the store.
func (r *FavoriteRepo) Exists(ctx context.Context, userID, carID uint64) (bool, error) {
    if userID == 0 || carID == 0 {
        return false, nil
    }
    var one int
    err := r.DB.QueryRowContext(ctx,
        "SELECT 1 FROM favorites WHERE user_id=? AND car_id=? LIMIT 1", userID, carID).Scan(&one)
    if err == sql.ErrNoRows {
        return false, nil
    }
    if err != nil {
        return false, err
    }
    return true, nil
}

// CountByUser counts a user's bookmarks; a non-positive id is zero without a
// query.
func (r *FavoriteRepo) CountByUser(ctx context.Context, userID uint64) (int, error) {
    if userID == 0 {
        return 0, nil
    }
    var n int
    err := r.DB.QueryRowContext(ctx,
        "SELECT COUNT(*) FROM favorites WHERE user_id=?", userID).Scan(&n)
    return n, err
}
