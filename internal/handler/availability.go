package handler

import (
    "context"
    "errors"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/pochitasw/vetclinic/internal/repository"
    "github.com/pochitasw/vetclinic/internal/schedule"
)

// AvailabilityHandler serves the half-hour availability grid the booking
// form renders.  The route sits behind the response cache: the grid for a
// vet/date pair is identical for every caller until a booking lands.
type AvailabilityHandler struct {
    Engine *schedule.Engine
    Vets   *repository.VetRepo
}

func NewAvailabilityHandler(e *schedule.Engine, v *repository.VetRepo) *AvailabilityHandler {
    return &AvailabilityHandler{Engine: e, Vets: v}
}

// Grid returns the 22 half-hour blocks between 09:00 and 20:00 for a date
// (?date=YYYY-MM-DD&vet_id=N).  Each block carries whether it is still
// free.  Without vet_id the grid spans every veterinarian: a block is busy
// when any vet has an active appointment in it.
func (h *AvailabilityHandler) Grid(c echo.Context) error {
    var vetID uint64
    if raw := c.QueryParam("vet_id"); raw != "" {
        id, err := strconv.ParseUint(raw, 10, 64)
        if err != nil || id == 0 {
            return badRequest(c, "invalid vet_id")
        }
        vetID = id
    }
    date, ok := parseDateQuery(c, "date")
    if !ok {
        return badRequest(c, "invalid date")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if vetID != 0 {
        if _, err := h.Vets.GetByID(ctx, vetID); err != nil {
            if errors.Is(err, repository.ErrNotFound) {
                return c.JSON(http.StatusNotFound, echo.Map{"error": "vet not found"})
            }
            return dbError(c)
        }
    }

    blocks, err := h.Engine.Availability(ctx, date, vetID)
    if err != nil {
        return dbError(c)
    }

    special, razon := h.Engine.SpecialDate(date)
    return c.JSON(http.StatusOK, echo.Map{
        "vet_id":         vetID,
        "date":           date.Format("2006-01-02"),
        "special":        special,
        "special_reason": razon,
        "blocks":         blocks,
    })
}

// Vets lists the veterinarians the grid can be requested for.
func (h *AvailabilityHandler) ListVets(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    vets, err := h.Vets.List(ctx)
    if err != nil {
        return dbError(c)
    }
    type vetResp struct {
        ID           uint64 `json:"id"`
        Nombre       string `json:"nombre"`
        Especialidad string `json:"especialidad"`
    }
    out := make([]vetResp, 0, len(vets))
    for _, v := range vets {
        out = append(out, vetResp{ID: v.ID, Nombre: v.Nombre, Especialidad: v.Especialidad})
    }
    return c.JSON(http.StatusOK, out)
}
