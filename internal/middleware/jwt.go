package middleware

import (
    "net/http"
    "strings"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token and
// injects its claims into the request context.  Handlers read the caller via
// c.Get("user_id") (uint64), c.Get("username") and c.Get("role").  Every
// failure mode answers with the same 401 body so a probe cannot tell a
// missing header from a bad signature.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return unauthorized(c)
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
                if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                    return nil, echo.ErrUnauthorized
                }
                return []byte(secret), nil
            })
            if err != nil || !tok.Valid {
                return unauthorized(c)
            }

            claims, ok := tok.Claims.(jwt.MapClaims)
            if !ok {
                return unauthorized(c)
            }

            // Numeric claims decode as float64; the id must survive the
            // round trip as an integer.
            id, ok := claims["user_id"].(float64)
            if !ok || id < 1 {
                return unauthorized(c)
            }
            username, _ := claims["sub"].(string)
            role, _ := claims["role"].(string)

            c.Set("user_id", uint64(id))
            c.Set("username", username)
            c.Set("role", role)
            return next(c)
        }
    }
}

func unauthorized(c echo.Context) error {
    return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or missing token"})
}
