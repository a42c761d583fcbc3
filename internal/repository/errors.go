// Package repository implements the data access layer over MySQL.  This file
// defines error types reused across repositories so handlers can translate
// failure scenarios to HTTP status codes without inspecting SQL errors
// themselves.
package repository

import (
    "errors"
    "fmt"
    "strings"

    "github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when the requested row does not exist.  For offer
// decisions it also covers "already processed": callers cannot distinguish a
// missing offer from one that left the pending state.
var ErrNotFound = errors.New("not found")

// ErrAlreadyFavorited is returned when the (user, car) pair already exists.
// The favorites table enforces this with a unique key, so the check-then-act
// race of an existence pre-check cannot occur.
var ErrAlreadyFavorited = errors.New("already in favorites")

// ConflictError reports which unique field a write collided with, derived
// from the violated key name instead of matching raw driver message text.
// Handlers render it as a field-specific 400.
type ConflictError struct {
    Field string
}

func (e *ConflictError) Error() string {
    return fmt.Sprintf("duplicate %s", e.Field)
}

// Unique key names as declared in the schema.  The MySQL driver surfaces
// error 1062 with the violated key name in the message; mapping on our own
// key names keeps the detection structured and store-version independent.
var uniqueKeyFields = map[string]string{
    "uq_users_username":     "username",
    "uq_users_email":        "email",
    "uq_users_phone":        "phone",
    "uq_favorites_user_car": "favorite",
}

// asConflict converts a MySQL duplicate-key error into a *ConflictError.
// Any other error is passed through unchanged.
func asConflict(err error) error {
    var me *mysql.MySQLError
    if !errors.As(err, &me) || me.Number != 1062 {
        return err
    }
    for key, field := range uniqueKeyFields {
        if strings.Contains(me.Message, key) {
            if field == "favorite" {
                return ErrAlreadyFavorited
            }
            return &ConflictError{Field: field}
        }
    }
    return &ConflictError{Field: "unknown"}
}
