package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/pochitasw/vetclinic/internal/model"
)

func invokeWithRole(t *testing.T, role interface{}, capability Capability) *httptest.ResponseRecorder {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    if role != nil {
        c.Set(CtxRole, role)
    }
    h := RequireCapability(capability)(func(c echo.Context) error {
        return c.NoContent(http.StatusOK)
    })
    if err := h(c); err != nil {
        t.Fatalf("handler returned error: %v", err)
    }
    return rec
}

func TestRequireCapabilityAllows(t *testing.T) {
    cases := []struct {
        role       model.Role
        capability Capability
    }{
        {model.RoleAdmin, CapManageUsers},
        {model.RoleAdmin, CapSell},
        {model.RoleReceptionist, CapManageClients},
        {model.RoleReceptionist, CapManageWaitlist},
        {model.RoleReceptionist, CapSell},
        {model.RoleVet, CapViewAgenda},
        {model.RoleVet, CapRecordVisits},
        {model.RoleVet, CapStartService},
        {model.RoleVet, CapCancelOwn},
        {model.RoleClient, CapBookOwn},
        {model.RoleClient, CapManagePets},
    }
    for _, tc := range cases {
        rec := invokeWithRole(t, tc.role, tc.capability)
        if rec.Code != http.StatusOK {
            t.Errorf("%s with %s: expected 200, got %d", tc.role, tc.capability, rec.Code)
        }
    }
}

func TestRequireCapabilityDenies(t *testing.T) {
    cases := []struct {
        role       model.Role
        capability Capability
    }{
        {model.RoleClient, CapManageUsers},
        {model.RoleClient, CapSell},
        {model.RoleClient, CapRecordVisits},
        {model.RoleClient, CapManageWaitlist},
        {model.RoleVet, CapSell},
        {model.RoleVet, CapManageClients},
        {model.RoleVet, CapBookOwn},
        {model.RoleReceptionist, CapRecordVisits},
        {model.RoleReceptionist, CapManageUsers},
        {model.RoleReceptionist, CapManageCatalog},
    }
    for _, tc := range cases {
        rec := invokeWithRole(t, tc.role, tc.capability)
        if rec.Code != http.StatusForbidden {
            t.Errorf("%s with %s: expected 403, got %d", tc.role, tc.capability, rec.Code)
        }
    }
}

func TestRequireCapabilityMissingRole(t *testing.T) {
    rec := invokeWithRole(t, nil, CapBookOwn)
    if rec.Code != http.StatusForbidden {
        t.Fatalf("expected 403, got %d", rec.Code)
    }
}

func TestRequireCapabilityWrongType(t *testing.T) {
    // A raw string in the context must not pass the typed check.
    rec := invokeWithRole(t, "ADMIN", CapManageUsers)
    if rec.Code != http.StatusForbidden {
        t.Fatalf("expected 403, got %d", rec.Code)
    }
}
