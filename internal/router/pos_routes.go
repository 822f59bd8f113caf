package router

import (
    "github.com/labstack/echo/v4"

    "github.com/pochitasw/vetclinic/internal/handler"
    "github.com/pochitasw/vetclinic/internal/middleware"
)

// RegisterPOS registers the point-of-sale surface and the admin staff
// backoffice.
func RegisterPOS(e *echo.Echo, sales *handler.SaleHandler, products *handler.ProductHandler, staff *handler.StaffHandler, jwtSecret string) {
    g := e.Group("/v1", middleware.JWTAuth(jwtSecret))

    // ---- Catalog ----
    // The list is public so the storefront can show prices without a login.
    e.GET("/v1/products", products.List)
    g.POST("/products", products.Create, middleware.RequireCapability(middleware.CapManageCatalog))
    g.PUT("/products/:id", products.Update, middleware.RequireCapability(middleware.CapManageCatalog))

    // ---- Sales ----
    g.POST("/sales", sales.Create, middleware.RequireCapability(middleware.CapSell))
    g.GET("/sales/:id", sales.Get, middleware.RequireCapability(middleware.CapSell))
    g.GET("/sales/receipt/:receipt", sales.GetByReceipt, middleware.RequireCapability(middleware.CapSell))
    g.GET("/clients/:id/sales", sales.ListByClient, middleware.RequireCapability(middleware.CapSell))

    // ---- Staff backoffice ----
    g.POST("/staff", staff.Create, middleware.RequireCapability(middleware.CapManageUsers))
    g.DELETE("/staff/:id", staff.Deactivate, middleware.RequireCapability(middleware.CapManageUsers))
}
