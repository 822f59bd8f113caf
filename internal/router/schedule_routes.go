package router

import (
    "github.com/labstack/echo/v4"

    "github.com/pochitasw/vetclinic/internal/handler"
    "github.com/pochitasw/vetclinic/internal/middleware"
)

// RegisterSchedule registers the booking surface: availability grid,
// appointment lifecycle, the vet agenda and visit records.  gridCache
// wraps the availability endpoints; pass a pass-through middleware when
// the cache is disabled.
func RegisterSchedule(e *echo.Echo, appts *handler.AppointmentHandler, avail *handler.AvailabilityHandler, visits *handler.VisitHandler, jwtSecret string, gridCache echo.MiddlewareFunc) {
    g := e.Group("/v1", middleware.JWTAuth(jwtSecret))

    // ---- Availability ----
    g.GET("/availability", avail.Grid, gridCache)
    // The vet roster is public so the booking page can render before login.
    e.GET("/v1/vets", avail.ListVets, gridCache)

    // ---- Appointments ----
    g.POST("/appointments", appts.Create, middleware.RequireCapability(middleware.CapBookOwn))
    g.POST("/appointments/:id/confirm", appts.Confirm, middleware.RequireCapability(middleware.CapBookOwn))
    g.POST("/appointments/:id/cancel", appts.Cancel, middleware.RequireCapability(middleware.CapCancelOwn))
    g.PUT("/appointments/:id/reschedule", appts.Reschedule, middleware.RequireCapability(middleware.CapManageSchedule))
    g.POST("/appointments/:id/no-show", appts.NoShow, middleware.RequireCapability(middleware.CapManageSchedule))
    g.GET("/appointments/calendar", appts.Calendar, middleware.RequireCapability(middleware.CapManageSchedule))
    g.GET("/my/appointments", appts.ListMine, middleware.RequireCapability(middleware.CapBookOwn))

    // ---- Vet agenda and visits ----
    g.GET("/agenda", appts.Agenda, middleware.RequireCapability(middleware.CapViewAgenda))
    g.POST("/visits", visits.Create, middleware.RequireCapability(middleware.CapRecordVisits))
    g.GET("/appointments/:id/visit", visits.GetByAppointment)
}
