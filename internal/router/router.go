// Package router defines how HTTP routes are registered for the API.
// Routes are grouped by concern across several files; every protected
// group applies JWTAuth plus the capability each endpoint needs.
package router

import (
    "github.com/labstack/echo/v4"

    "github.com/pochitasw/vetclinic/internal/handler"
    "github.com/pochitasw/vetclinic/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication routes.  loginLimiter wraps the
// credential endpoints; pass a pass-through middleware when rate limiting
// is disabled.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, loginLimiter echo.MiddlewareFunc) {
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register, loginLimiter)
    g.POST("/login", a.Login, loginLimiter)
    g.POST("/refresh", a.Refresh)
    g.POST("/refresh-access", a.RefreshAccess)
    // Logout with a refresh_token body needs no JWT.
    g.POST("/logout", a.Logout)

    auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
    auth.GET("/me", a.Me)
    auth.POST("/auth/change-password", a.ChangePassword)
    // Logout under the protected group revokes every session of the
    // bearer when no refresh_token is supplied.
    auth.POST("/logout", a.Logout)
}
