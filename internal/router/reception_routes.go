package router

import (
    "github.com/labstack/echo/v4"

    "github.com/pochitasw/vetclinic/internal/handler"
    "github.com/pochitasw/vetclinic/internal/middleware"
)

// RegisterReception registers the front-desk surface: client profiles,
// pets and the walk-in queue.
func RegisterReception(e *echo.Echo, clients *handler.ClientHandler, pets *handler.PetHandler, wait *handler.WaitlistHandler, jwtSecret string) {
    g := e.Group("/v1", middleware.JWTAuth(jwtSecret))

    // ---- Clients ----
    g.POST("/clients", clients.QuickRegister, middleware.RequireCapability(middleware.CapManageClients))
    g.GET("/clients", clients.Search, middleware.RequireCapability(middleware.CapManageClients))
    g.GET("/clients/:id", clients.Get, middleware.RequireCapability(middleware.CapManageClients))
    g.PUT("/clients/:id", clients.Update, middleware.RequireCapability(middleware.CapManageClients))
    g.GET("/my/profile", clients.MyProfile, middleware.RequireCapability(middleware.CapBookOwn))

    // ---- Pets ----
    g.POST("/pets", pets.Create, middleware.RequireCapability(middleware.CapManagePets))
    g.PUT("/pets/:id", pets.Update, middleware.RequireCapability(middleware.CapManagePets))
    g.GET("/pets/:id/history", pets.History)
    g.GET("/pets/:id/background", pets.Background)

    // ---- Walk-in queue ----
    g.POST("/waitlist", wait.Register, middleware.RequireCapability(middleware.CapManageWaitlist))
    g.GET("/waitlist", wait.Queue, middleware.RequireCapability(middleware.CapStartService))
    g.POST("/waitlist/:id/start", wait.StartService, middleware.RequireCapability(middleware.CapStartService))
    g.POST("/waitlist/:id/served", wait.MarkServed, middleware.RequireCapability(middleware.CapStartService))
    g.POST("/waitlist/:id/cancel", wait.Cancel, middleware.RequireCapability(middleware.CapManageWaitlist))
}
