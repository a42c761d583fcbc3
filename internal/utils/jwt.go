package utils // package utils provides helper functions for token creation and hashing

import (
    "time" // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// Role claim values.  Admin is derived from users.is_admin at login; every
// other account carries the User role.
const (
    RoleAdmin = "Admin"
    RoleUser  = "User"
)

// AccessToken represents a signed JWT along with its expiry.  The Token
// field contains the serialized JWT string; Exp is the UTC expiration time.
// Tokens are presented in the Authorization header on protected endpoints
// and are not renewable — an expired token forces re-authentication.
type AccessToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a user.  The subject is
// the username; user_id and role travel as custom claims so the API layer
// can authorize identity-bound routes without a user lookup.  ttlHours is a
// fixed duration from issuance (8 hours in the reference deployment).
func NewAccessToken(secret, username string, userID uint64, role string, ttlHours int) (AccessToken, error) {
    now := time.Now().UTC()
    exp := now.Add(time.Duration(ttlHours) * time.Hour)
    claims := jwt.MapClaims{
        "sub":     username,
        "user_id": userID,
        "role":    role,
        "exp":     exp.Unix(),
        "iat":     now.Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}
