package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/pochitasw/vetclinic/internal/model"
)

// Capability names a single permission that a route can demand.  Routes
// declare the capability they need; which roles hold which capabilities
// is decided in one place, the grants table below.  Adding a role or
// changing a permission is an edit to that table, not a search through
// the router.
type Capability string

const (
    CapManageUsers    Capability = "manage_users"    // create staff accounts, deactivate logins
    CapManageClients  Capability = "manage_clients"  // register and edit client profiles
    CapManagePets     Capability = "manage_pets"     // register and edit pets
    CapBookOwn        Capability = "book_own"        // book and confirm one's own appointments
    CapCancelOwn      Capability = "cancel_own"      // cancel an appointment one is party to
    CapManageSchedule Capability = "manage_schedule" // book, reschedule, cancel and no-show any appointment
    CapViewAgenda     Capability = "view_agenda"     // read a vet's daily agenda
    CapRecordVisits   Capability = "record_visits"   // write medical visit records
    CapManageWaitlist Capability = "manage_waitlist" // register walk-ins, cancel turns
    CapStartService   Capability = "start_service"   // take the next walk-in turn
    CapSell           Capability = "sell"            // run point-of-sale transactions
    CapManageCatalog  Capability = "manage_catalog"  // create and edit products
)

// grants is the single source of truth for authorization.  A role not
// listed under a capability does not have it.
var grants = map[Capability][]model.Role{
    CapManageUsers:    {model.RoleAdmin},
    CapManageClients:  {model.RoleAdmin, model.RoleReceptionist},
    CapManagePets:     {model.RoleAdmin, model.RoleReceptionist, model.RoleClient},
    CapBookOwn:        {model.RoleAdmin, model.RoleReceptionist, model.RoleClient},
    CapCancelOwn:      {model.RoleAdmin, model.RoleReceptionist, model.RoleClient, model.RoleVet},
    CapManageSchedule: {model.RoleAdmin, model.RoleReceptionist},
    CapViewAgenda:     {model.RoleAdmin, model.RoleVet},
    CapRecordVisits:   {model.RoleAdmin, model.RoleVet},
    CapManageWaitlist: {model.RoleAdmin, model.RoleReceptionist},
    CapStartService:   {model.RoleAdmin, model.RoleReceptionist, model.RoleVet},
    CapSell:           {model.RoleAdmin, model.RoleReceptionist},
    CapManageCatalog:  {model.RoleAdmin},
}

// HasCapability reports whether a role holds the given capability.
func HasCapability(role model.Role, capability Capability) bool {
    for _, r := range grants[capability] {
        if r == role {
            return true
        }
    }
    return false
}

// RequireCapability returns a middleware that aborts with 403 unless the
// authenticated user's role holds the capability.  It assumes JWTAuth ran
// earlier and stored the role under CtxRole.
func RequireCapability(capability Capability) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            role, ok := c.Get(CtxRole).(model.Role)
            if !ok || !HasCapability(role, capability) {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            return next(c)
        }
    }
}
