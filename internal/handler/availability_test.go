package handler

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/pochitasw/vetclinic/internal/model"
    "github.com/pochitasw/vetclinic/internal/schedule"
)

// gridSource feeds the engine a fixed set of appointments.
type gridSource struct {
    appts []model.Appointment
}

func (s *gridSource) ActiveInWindow(_ context.Context, vetID uint64, from, to time.Time, excludeID uint64) ([]model.Appointment, error) {
    return nil, nil
}

func (s *gridSource) ActiveBetween(_ context.Context, vetID uint64, from, to time.Time) ([]model.Appointment, error) {
    var out []model.Appointment
    for _, a := range s.appts {
        if vetID != 0 && (a.VetID == nil || *a.VetID != vetID) {
            continue
        }
        if !a.FechaHora.Before(from) && a.FechaHora.Before(to) {
            out = append(out, a)
        }
    }
    return out, nil
}

func doGrid(t *testing.T, src schedule.AppointmentSource, query string) *httptest.ResponseRecorder {
    t.Helper()
    h := &AvailabilityHandler{Engine: schedule.NewEngine(src, nil)}
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/availability"+query, nil)
    rec := httptest.NewRecorder()
    if err := h.Grid(e.NewContext(req, rec)); err != nil {
        t.Fatalf("Grid returned error: %v", err)
    }
    return rec
}

// Without vet_id the grid spans every veterinarian.
func TestGridWithoutVet(t *testing.T) {
    vet := uint64(3)
    src := &gridSource{appts: []model.Appointment{{
        ID:        1,
        VetID:     &vet,
        FechaHora: time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC),
        Estado:    model.StatusScheduled,
    }}}

    rec := doGrid(t, src, "?date=2025-12-01")
    if rec.Code != http.StatusOK {
        t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
    }

    var resp struct {
        Blocks []schedule.Block `json:"blocks"`
    }
    if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
        t.Fatalf("unmarshal: %v", err)
    }
    if len(resp.Blocks) != 22 {
        t.Fatalf("blocks = %d, want 22", len(resp.Blocks))
    }
    for _, b := range resp.Blocks {
        want := b.Hora != "10:00"
        if b.Available != want {
            t.Errorf("block %s available = %v, want %v", b.Hora, b.Available, want)
        }
    }
}

// A vet-less appointment still blocks its slot on the unscoped grid.
func TestGridWithoutVetSeesUnassigned(t *testing.T) {
    src := &gridSource{appts: []model.Appointment{{
        ID:        1,
        FechaHora: time.Date(2025, 12, 1, 9, 30, 0, 0, time.UTC),
        Estado:    model.StatusConfirmed,
    }}}

    rec := doGrid(t, src, "?date=2025-12-01")
    if rec.Code != http.StatusOK {
        t.Fatalf("status = %d, want 200", rec.Code)
    }
    var resp struct {
        Blocks []schedule.Block `json:"blocks"`
    }
    if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
        t.Fatalf("unmarshal: %v", err)
    }
    for _, b := range resp.Blocks {
        if b.Hora == "09:30" && b.Available {
            t.Error("09:30 should be blocked by the unassigned appointment")
        }
    }
}

func TestGridRejectsMalformedVet(t *testing.T) {
    rec := doGrid(t, &gridSource{}, "?date=2025-12-01&vet_id=abc")
    if rec.Code != http.StatusBadRequest {
        t.Fatalf("status = %d, want 400", rec.Code)
    }
}
