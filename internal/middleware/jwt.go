package middleware // middleware provides shared request processing for handlers

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
    "github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers

    "github.com/pochitasw/vetclinic/internal/model"
)

// Context keys set by JWTAuth and read by handlers and the capability
// middleware.
const (
    CtxUserID = "user_id"
    CtxRole   = "role"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject and role claims into the request
// context.  The provided secret must match the one used when issuing
// tokens.  The subject is stored as a uint64 under CtxUserID and the role
// as a model.Role under CtxRole, so handlers never deal with raw claims.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // A valid header starts with "Bearer " followed by the JWT.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            // Parse with HS256 and our secret.  The callback checks the
            // algorithm so a token signed with a different method is
            // rejected rather than trusted.
            tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
                if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                    return nil, echo.ErrUnauthorized
                }
                return []byte(secret), nil
            })
            if err != nil || !tok.Valid {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }

            claims, ok := tok.Claims.(jwt.MapClaims)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
            }

            // Numeric JSON claims decode as float64.
            sub, ok := claims["sub"].(float64)
            if !ok || sub <= 0 {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
            }
            role, _ := claims["role"].(string)

            c.Set(CtxUserID, uint64(sub))
            c.Set(CtxRole, model.ParseRole(role))
            return next(c)
        }
    }
}
