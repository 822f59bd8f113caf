package handler // handler defines http handlers

import (
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"
)

// dbTimeout bounds every database call made from a handler.
const dbTimeout = 5 * time.Second

// parseIDParam reads a positive numeric path parameter.  A zero or
// malformed value yields ok=false; callers answer 400.
func parseIDParam(c echo.Context, name string) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil || id == 0 {
        return 0, false
    }
    return id, true
}

// parseDateQuery reads a YYYY-MM-DD query parameter.  An empty value
// defaults to today in UTC.
func parseDateQuery(c echo.Context, name string) (time.Time, bool) {
    raw := c.QueryParam(name)
    if raw == "" {
        return time.Now().UTC(), true
    }
    d, err := time.Parse("2006-01-02", raw)
    if err != nil {
        return time.Time{}, false
    }
    return d, true
}

func badRequest(c echo.Context, msg string) error {
    return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

func dbError(c echo.Context) error {
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}
