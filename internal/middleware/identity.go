package middleware

// identity.go provides helpers shared across middleware files for reading
// the identity that JWTAuth stored in the Echo context.

import (
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/pochitasw/vetclinic/internal/model"
)

// UserID returns the authenticated user's ID, or 0 when the request is
// anonymous.
func UserID(c echo.Context) uint64 {
    if v, ok := c.Get(CtxUserID).(uint64); ok {
        return v
    }
    return 0
}

// Role returns the authenticated user's role.  Anonymous requests map to
// RoleClient, which holds no staff capabilities.
func Role(c echo.Context) model.Role {
    if v, ok := c.Get(CtxRole).(model.Role); ok {
        return v
    }
    return model.RoleClient
}

// rateKeyUserID renders the user ID for rate-limit keys.  Anonymous
// requests share the "guest" bucket per IP.
func rateKeyUserID(c echo.Context) string {
    if id := UserID(c); id != 0 {
        return strconv.FormatUint(id, 10)
    }
    return "guest"
}
