package middleware

// identity.go holds the user extraction used by the rate limiter's
// per-user keying strategies.

import (
    "strconv"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"
)

// userID returns a stable identifier for the authenticated user, or
// "guest" when the request carries no usable identity. JWTAuth stores
// the raw subject claim under "user_id"; numeric claims decode as
// float64, and some auth paths store the parsed *jwt.Token instead.
func userID(c echo.Context) string {
    switch v := c.Get("user_id").(type) {
    case string:
        if v != "" {
            return v
        }
    case float64:
        return strconv.FormatUint(uint64(v), 10)
    case uint64:
        return strconv.FormatUint(v, 10)
    case int64:
        return strconv.FormatInt(v, 10)
    }
    if tok, ok := c.Get("user").(*jwt.Token); ok {
        if cl, ok := tok.Claims.(jwt.MapClaims); ok {
            if v, ok := cl["sub"].(string); ok && v != "" {
                return v
            }
            if v, ok := cl["sub"].(float64); ok {
                return strconv.FormatUint(uint64(v), 10)
            }
        }
    }
    return "guest"
}
