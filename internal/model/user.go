package model

import "time"

// User represents a registered marketplace user as stored in the `users`
// table.  Accounts are never hard-deleted; deactivation flips IsActive and
// blocks login while keeping the row (and its cars, offers and logs) intact.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  PasswordHash – bcrypt hashed password, never serialized.
//  Email        – unique email address.
//  Phone        – unique phone number.
//  Location     – free-text city/region shown next to listings.
//  IsAdmin      – grants access to the admin endpoints (audit logs, user management).
//  IsActive     – whether the account may log in.
//  CreatedAt    – registration timestamp (UTC).
type User struct {
    ID           uint64    `json:"id"`            // users.id
    Username     string    `json:"username"`      // users.username
    PasswordHash string    `json:"-"`             // users.password_hash
    Email        string    `json:"email"`         // users.email
    Phone        string    `json:"phone"`         // users.phone
    Location     string    `json:"location"`      // users.location
    IsAdmin      bool      `json:"is_admin"`      // users.is_admin
    IsActive     bool      `json:"is_active"`     // users.is_active
    CreatedAt    time.Time `json:"created_at"`    // users.created_at
}
