package handler

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/pochitasw/vetclinic/internal/middleware"
    "github.com/pochitasw/vetclinic/internal/model"
    "github.com/pochitasw/vetclinic/internal/repository"
    "github.com/pochitasw/vetclinic/internal/schedule"
)

// WaitlistHandler manages the walk-in queue board at reception.
type WaitlistHandler struct {
    Waitlist *repository.WaitlistRepo
    Clients  *repository.ClientRepo
    Pets     *repository.PetRepo
    Vets     *repository.VetRepo
}

func NewWaitlistHandler(w *repository.WaitlistRepo, cl *repository.ClientRepo, p *repository.PetRepo, v *repository.VetRepo) *WaitlistHandler {
    return &WaitlistHandler{Waitlist: w, Clients: cl, Pets: p, Vets: v}
}

type waitRegisterReq struct {
    ClientID    uint64 `json:"client_id"`
    PetID       uint64 `json:"pet_id"`
    Priority    string `json:"priority"` // NORMAL | URGENTE
    VetID       uint64 `json:"vet_id"`   // preferred vet, optional
    Preferencia string `json:"preferencia"`
}

type waitResp struct {
    ID          uint64 `json:"id"`
    ClientID    uint64 `json:"client_id"`
    PetID       uint64 `json:"pet_id,omitempty"`
    TurnNumber  int    `json:"turn_number"`
    Estado      string `json:"estado"`
    Priority    string `json:"priority"`
    VetID       uint64 `json:"vet_id,omitempty"`
    RequestedAt string `json:"requested_at"`
    Preferencia string `json:"preferencia,omitempty"`
}

func toWaitResp(e model.WaitingEntry) waitResp {
    out := waitResp{
        ID:          e.ID,
        ClientID:    e.ClientID,
        TurnNumber:  e.TurnNumber,
        Estado:      string(e.Estado),
        Priority:    string(e.Priority),
        RequestedAt: e.RequestedAt.Format(time.RFC3339),
        Preferencia: e.Preferencia,
    }
    if e.PetID != nil {
        out.PetID = *e.PetID
    }
    if e.VetID != nil {
        out.VetID = *e.VetID
    }
    return out
}

// Register hands a walk-in client the next turn number of the day.  The
// number is assigned once inside the locked transaction and printed on
// the ticket; it never changes afterwards.
func (h *WaitlistHandler) Register(c echo.Context) error {
    var req waitRegisterReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }
    if req.ClientID == 0 {
        return badRequest(c, "client_id required")
    }
    priority := model.WaitPriority(req.Priority)
    if req.Priority == "" {
        priority = model.PriorityNormal
    }
    if priority != model.PriorityNormal && priority != model.PriorityUrgent {
        return badRequest(c, "invalid priority")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if _, err := h.Clients.GetByID(ctx, req.ClientID); err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
        }
        return dbError(c)
    }
    e := model.WaitingEntry{
        ClientID:    req.ClientID,
        RequestedAt: time.Now().UTC(),
        Estado:      model.WaitWaiting,
        Priority:    priority,
        Preferencia: req.Preferencia,
    }
    if req.PetID != 0 {
        owned, err := h.Pets.OwnedBy(ctx, req.PetID, req.ClientID)
        if err != nil {
            if errors.Is(err, repository.ErrNotFound) {
                return c.JSON(http.StatusNotFound, echo.Map{"error": "pet not found"})
            }
            return dbError(c)
        }
        if !owned {
            return badRequest(c, "pet does not belong to client")
        }
        e.PetID = &req.PetID
    }
    if req.VetID != 0 {
        if _, err := h.Vets.GetByID(ctx, req.VetID); err != nil {
            if errors.Is(err, repository.ErrNotFound) {
                return c.JSON(http.StatusNotFound, echo.Map{"error": "vet not found"})
            }
            return dbError(c)
        }
        e.VetID = &req.VetID
    }

    if err := h.Waitlist.Register(ctx, &e); err != nil {
        return dbError(c)
    }
    return c.JSON(http.StatusCreated, toWaitResp(e))
}

// Queue returns the day's board ordered by turn (?date=YYYY-MM-DD,
// default today).
func (h *WaitlistHandler) Queue(c echo.Context) error {
    date, ok := parseDateQuery(c, "date")
    if !ok {
        return badRequest(c, "invalid date")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    entries, err := h.Waitlist.Queue(ctx, date)
    if err != nil {
        return dbError(c)
    }
    out := make([]waitResp, 0, len(entries))
    for _, e := range entries {
        out = append(out, toWaitResp(e))
    }
    return c.JSON(http.StatusOK, out)
}

// StartService moves an entry to EN_ATENCION.  A vet caller takes the
// turn themselves; reception must name the vet in the body.
func (h *WaitlistHandler) StartService(c echo.Context) error {
    id, ok := parseIDParam(c, "id")
    if !ok {
        return badRequest(c, "invalid id")
    }
    var req struct {
        VetID uint64 `json:"vet_id"`
    }
    _ = c.Bind(&req)

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    vetID := req.VetID
    if middleware.Role(c) == model.RoleVet {
        vet, err := h.Vets.GetByUserID(ctx, middleware.UserID(c))
        if err != nil {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "vet profile not found"})
        }
        vetID = vet.ID
    }
    if vetID == 0 {
        return badRequest(c, "vet_id required")
    }

    e, err := h.Waitlist.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "entry not found"})
        }
        return dbError(c)
    }
    if !schedule.CanTransitionWait(e.Estado, model.WaitInService) {
        return c.JSON(http.StatusConflict, echo.Map{"error": "invalid state transition"})
    }
    if err := h.Waitlist.StartService(ctx, e.ID, vetID); err != nil {
        return dbError(c)
    }
    e, err = h.Waitlist.GetByID(ctx, e.ID)
    if err != nil {
        return dbError(c)
    }
    return c.JSON(http.StatusOK, toWaitResp(e))
}

// MarkServed closes an EN_ATENCION entry as ATENDIDO.
func (h *WaitlistHandler) MarkServed(c echo.Context) error {
    return h.transition(c, model.WaitServed)
}

// Cancel drops an entry from the queue.  The turn number is not reused.
func (h *WaitlistHandler) Cancel(c echo.Context) error {
    return h.transition(c, model.WaitCancelled)
}

func (h *WaitlistHandler) transition(c echo.Context, to model.WaitStatus) error {
    id, ok := parseIDParam(c, "id")
    if !ok {
        return badRequest(c, "invalid id")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    e, err := h.Waitlist.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "entry not found"})
        }
        return dbError(c)
    }
    if !schedule.CanTransitionWait(e.Estado, to) {
        return c.JSON(http.StatusConflict, echo.Map{"error": "invalid state transition"})
    }
    if err := h.Waitlist.SetStatus(ctx, e.ID, to); err != nil {
        return dbError(c)
    }
    e.Estado = to
    return c.JSON(http.StatusOK, toWaitResp(e))
}
