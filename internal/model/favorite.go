package model

import "time"

// Favorite mirrors the `favorites` table.  At most one row exists per
// (user, car) pair, enforced by a unique key in the schema.
type Favorite struct {
    ID      uint64    `json:"id"`       // favorites.id
    UserID  uint64    `json:"user_id"`  // favorites.user_id
    CarID   uint64    `json:"car_id"`   // favorites.car_id
    AddedAt time.Time `json:"added_at"` // favorites.added_at
}
