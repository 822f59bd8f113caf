package handler

import (
    "context"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/pochitasw/vetclinic/internal/middleware"
    "github.com/pochitasw/vetclinic/internal/model"
    "github.com/pochitasw/vetclinic/internal/queue"
    "github.com/pochitasw/vetclinic/internal/repository"
    "github.com/pochitasw/vetclinic/internal/schedule"
    queue_publisher "github.com/pochitasw/vetclinic/internal/service"
)

// AppointmentHandler bundles the repositories and the scheduling engine
// behind the booking endpoints.  Every create and reschedule goes through
// the engine before it touches the database.
type AppointmentHandler struct {
    Appts   *repository.AppointmentRepo
    Pets    *repository.PetRepo
    Clients *repository.ClientRepo
    Vets    *repository.VetRepo
    Engine  *schedule.Engine
}

func NewAppointmentHandler(a *repository.AppointmentRepo, p *repository.PetRepo, cl *repository.ClientRepo, v *repository.VetRepo, e *schedule.Engine) *AppointmentHandler {
    return &AppointmentHandler{Appts: a, Pets: p, Clients: cl, Vets: v, Engine: e}
}

type appointmentReq struct {
    PetID      uint64 `json:"pet_id"`
    VetID      uint64 `json:"vet_id"`
    FechaHora  string `json:"fecha_hora"` // RFC 3339
    Tipo       string `json:"tipo"`
    Motivo     string `json:"motivo"`
    EsUrgencia bool   `json:"es_urgencia"`
}

type rescheduleReq struct {
    FechaHora  string `json:"fecha_hora"`
    VetID      uint64 `json:"vet_id"`      // optional, reassigns the appointment
    EsUrgencia *bool  `json:"es_urgencia"` // optional, keeps the stored flag when absent
    Motivo     string `json:"motivo"`      // reason for the change
}

type cancelReq struct {
    Motivo string `json:"motivo"`
}

type appointmentResp struct {
    ID          uint64 `json:"id"`
    PetID       uint64 `json:"pet_id"`
    VetID       uint64 `json:"vet_id,omitempty"`
    FechaHora   string `json:"fecha_hora"`
    Tipo        string `json:"tipo"`
    Motivo      string `json:"motivo,omitempty"`
    Estado      string `json:"estado"`
    EsUrgencia  bool   `json:"es_urgencia"`
    CancelledBy string `json:"cancelled_by,omitempty"`
}

// calendarEvent is the shape the calendar widget consumes.
type calendarEvent struct {
    ID          uint64 `json:"id"`
    Title       string `json:"title"`
    Start       string `json:"start"`
    VetID       uint64 `json:"veterinario_id,omitempty"`
    Veterinario string `json:"veterinario"`
    Mascota     string `json:"mascota"`
    Dueno       string `json:"dueño"`
    Color       string `json:"color"`
    Tipo        string `json:"tipo"`
    Estado      string `json:"estado"`
    Motivo      string `json:"motivo,omitempty"`
}

func toApptResp(a model.Appointment) appointmentResp {
    out := appointmentResp{
        ID:         a.ID,
        PetID:      a.PetID,
        FechaHora:  a.FechaHora.Format(time.RFC3339),
        Tipo:       string(a.Tipo),
        Motivo:     a.Motivo,
        Estado:     string(a.Estado),
        EsUrgencia: a.EsUrgencia,
    }
    if a.VetID != nil {
        out.VetID = *a.VetID
    }
    if a.CancelledBy != nil {
        out.CancelledBy = *a.CancelledBy
    }
    return out
}

func apptListResp(appts []model.Appointment) []appointmentResp {
    out := make([]appointmentResp, 0, len(appts))
    for _, a := range appts {
        out = append(out, toApptResp(a))
    }
    return out
}

// requirePetAccess loads the pet and, for client callers, verifies
// ownership.  Staff roles may book for any pet.
func (h *AppointmentHandler) requirePetAccess(ctx context.Context, c echo.Context, petID uint64) (model.Pet, int, string) {
    p, err := h.Pets.GetByID(ctx, petID)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return model.Pet{}, http.StatusNotFound, "pet not found"
        }
        return model.Pet{}, http.StatusInternalServerError, "database error"
    }
    if middleware.Role(c) == model.RoleClient {
        cl, err := h.Clients.GetByUserID(ctx, middleware.UserID(c))
        if err != nil || cl.ID != p.ClientID {
            return model.Pet{}, http.StatusForbidden, "forbidden"
        }
    }
    return p, 0, ""
}

// Create books an appointment.  The engine rejects past dates, enforces
// the Sunday/holiday urgency rule and refuses vet double-booking inside
// the half-hour window.  On success an event is published; broker
// failures never fail the booking.
func (h *AppointmentHandler) Create(c echo.Context) error {
    var req appointmentReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }
    at, err := time.Parse(time.RFC3339, req.FechaHora)
    if err != nil {
        return badRequest(c, "Faltan datos obligatorios (Mascota o Fecha).")
    }
    tipo := model.AppointmentType(strings.ToUpper(strings.TrimSpace(req.Tipo)))
    if req.Tipo == "" {
        tipo = model.TypeGeneral
    }
    if !model.ValidAppointmentType(tipo) {
        return badRequest(c, "invalid tipo")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    p, code, msg := h.requirePetAccess(ctx, c, req.PetID)
    if code != 0 {
        return c.JSON(code, echo.Map{"error": msg})
    }
    if req.VetID != 0 {
        if _, err := h.Vets.GetByID(ctx, req.VetID); err != nil {
            if errors.Is(err, repository.ErrNotFound) {
                return c.JSON(http.StatusNotFound, echo.Map{"error": "vet not found"})
            }
            return dbError(c)
        }
    }

    if err := h.Engine.ValidateBooking(ctx, schedule.BookingRequest{
        PetID:      req.PetID,
        VetID:      req.VetID,
        At:         at,
        EsUrgencia: req.EsUrgencia,
    }); err != nil {
        var verr *schedule.ValidationError
        if errors.As(err, &verr) {
            return badRequest(c, verr.Message)
        }
        return dbError(c)
    }

    a := model.Appointment{
        PetID:      req.PetID,
        FechaHora:  at,
        Tipo:       tipo,
        Motivo:     strings.TrimSpace(req.Motivo),
        Estado:     model.StatusScheduled,
        EsUrgencia: req.EsUrgencia,
    }
    if req.VetID != 0 {
        a.VetID = &req.VetID
    }
    if err := h.Appts.Create(ctx, &a); err != nil {
        return dbError(c)
    }

    h.publishBooked(ctx, a, p, false)
    return c.JSON(http.StatusCreated, toApptResp(a))
}

// Reschedule moves an appointment to a new time, and optionally a new vet
// or urgency flag, after re-running the full booking validation with the
// appointment itself excluded from the conflict window.  The status
// carries over unchanged.
func (h *AppointmentHandler) Reschedule(c echo.Context) error {
    id, ok := parseIDParam(c, "id")
    if !ok {
        return badRequest(c, "invalid id")
    }
    var req rescheduleReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }
    at, err := time.Parse(time.RFC3339, req.FechaHora)
    if err != nil {
        return badRequest(c, "Faltan datos obligatorios (Mascota o Fecha).")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    a, code, msg := h.loadForChange(ctx, c, id)
    if code != 0 {
        return c.JSON(code, echo.Map{"error": msg})
    }
    if a.Estado.Terminal() {
        return c.JSON(http.StatusConflict, echo.Map{"error": "appointment already closed"})
    }

    vetID := uint64(0)
    if a.VetID != nil {
        vetID = *a.VetID
    }
    if req.VetID != 0 {
        if _, err := h.Vets.GetByID(ctx, req.VetID); err != nil {
            if errors.Is(err, repository.ErrNotFound) {
                return c.JSON(http.StatusNotFound, echo.Map{"error": "vet not found"})
            }
            return dbError(c)
        }
        vetID = req.VetID
    }
    urg := a.EsUrgencia
    if req.EsUrgencia != nil {
        urg = *req.EsUrgencia
    }
    if err := h.Engine.ValidateBooking(ctx, schedule.BookingRequest{
        PetID:      a.PetID,
        VetID:      vetID,
        At:         at,
        EsUrgencia: urg,
        ExcludeID:  a.ID,
    }); err != nil {
        var verr *schedule.ValidationError
        if errors.As(err, &verr) {
            return badRequest(c, verr.Message)
        }
        return dbError(c)
    }

    if err := h.Appts.Reschedule(ctx, a.ID, at, vetID, urg, strings.TrimSpace(req.Motivo)); err != nil {
        return dbError(c)
    }
    a, err = h.Appts.GetByID(ctx, a.ID)
    if err != nil {
        return dbError(c)
    }
    if p, err := h.Pets.GetByID(ctx, a.PetID); err == nil {
        h.publishBooked(ctx, a, p, true)
    }
    return c.JSON(http.StatusOK, toApptResp(a))
}

// Cancel marks an appointment CANCELADA recording the actor's role and
// the optional reason.
func (h *AppointmentHandler) Cancel(c echo.Context) error {
    return h.close(c, model.StatusCancelled)
}

// NoShow marks an appointment NO_ASISTE.  Reception uses it at the end of
// the day for clients who never arrived.
func (h *AppointmentHandler) NoShow(c echo.Context) error {
    return h.close(c, model.StatusNoShow)
}

func (h *AppointmentHandler) close(c echo.Context, to model.AppointmentStatus) error {
    id, ok := parseIDParam(c, "id")
    if !ok {
        return badRequest(c, "invalid id")
    }
    var req cancelReq
    _ = c.Bind(&req)

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    a, code, msg := h.loadForChange(ctx, c, id)
    if code != 0 {
        return c.JSON(code, echo.Map{"error": msg})
    }
    if !schedule.CanTransitionAppointment(a.Estado, to) {
        return c.JSON(http.StatusConflict, echo.Map{"error": "invalid state transition"})
    }

    role := string(middleware.Role(c))
    reason := strings.TrimSpace(req.Motivo)
    if middleware.Role(c) == model.RoleVet {
        // Vets only close appointments assigned to them, and must say why.
        if reason == "" {
            return badRequest(c, "Debe indicar el motivo de la cancelación.")
        }
        v, err := h.Vets.GetByUserID(ctx, middleware.UserID(c))
        if err != nil || a.VetID == nil || *a.VetID != v.ID {
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        }
    }
    if to == model.StatusCancelled {
        if err := h.Appts.Cancel(ctx, a.ID, role, reason); err != nil {
            return dbError(c)
        }
    } else {
        if err := h.Appts.UpdateStatus(ctx, a.ID, to); err != nil {
            return dbError(c)
        }
    }

    var clientID uint64
    if p, err := h.Pets.GetByID(ctx, a.PetID); err == nil {
        clientID = p.ClientID
    }
    ev := queue.AppointmentCancelledEvent{
        EventID:       uuid.NewString(),
        AppointmentID: a.ID,
        PetID:         a.PetID,
        ClientID:      clientID,
        FechaHora:     a.FechaHora.Format(time.RFC3339),
        CancelledBy:   role,
        Reason:        reason,
        NoShow:        to == model.StatusNoShow,
        CancelledAt:   time.Now().UTC().Format(time.RFC3339),
    }
    _ = queue_publisher.PublishAppointmentCancelled(ctx, ev)

    a, err := h.Appts.GetByID(ctx, a.ID)
    if err != nil {
        return dbError(c)
    }
    return c.JSON(http.StatusOK, toApptResp(a))
}

// Confirm moves AGENDADA to CONFIRMADA.
func (h *AppointmentHandler) Confirm(c echo.Context) error {
    id, ok := parseIDParam(c, "id")
    if !ok {
        return badRequest(c, "invalid id")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    a, code, msg := h.loadForChange(ctx, c, id)
    if code != 0 {
        return c.JSON(code, echo.Map{"error": msg})
    }
    if !schedule.CanTransitionAppointment(a.Estado, model.StatusConfirmed) {
        return c.JSON(http.StatusConflict, echo.Map{"error": "invalid state transition"})
    }
    if err := h.Appts.UpdateStatus(ctx, a.ID, model.StatusConfirmed); err != nil {
        return dbError(c)
    }
    a.Estado = model.StatusConfirmed
    return c.JSON(http.StatusOK, toApptResp(a))
}

// loadForChange fetches the appointment and enforces that client callers
// only touch appointments of their own pets.
func (h *AppointmentHandler) loadForChange(ctx context.Context, c echo.Context, id uint64) (model.Appointment, int, string) {
    a, err := h.Appts.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return model.Appointment{}, http.StatusNotFound, "appointment not found"
        }
        return model.Appointment{}, http.StatusInternalServerError, "database error"
    }
    if _, code, msg := h.requirePetAccess(ctx, c, a.PetID); code != 0 {
        return model.Appointment{}, code, msg
    }
    return a, 0, ""
}

// ListMine returns the authenticated client's appointments across all
// their pets.
func (h *AppointmentHandler) ListMine(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    cl, err := h.Clients.GetByUserID(ctx, middleware.UserID(c))
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
        }
        return dbError(c)
    }
    appts, err := h.Appts.ListByClient(ctx, cl.ID)
    if err != nil {
        return dbError(c)
    }
    return c.JSON(http.StatusOK, apptListResp(appts))
}

// Agenda returns the signed-in vet's appointments for a day
// (?date=YYYY-MM-DD, default today).
func (h *AppointmentHandler) Agenda(c echo.Context) error {
    date, ok := parseDateQuery(c, "date")
    if !ok {
        return badRequest(c, "invalid date")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    vet, err := h.Vets.GetByUserID(ctx, middleware.UserID(c))
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "vet profile not found"})
        }
        return dbError(c)
    }
    dayStart, dayEnd := schedule.DayBounds(date)
    appts, err := h.Appts.ListByVetDay(ctx, vet.ID, dayStart, dayEnd)
    if err != nil {
        return dbError(c)
    }
    return c.JSON(http.StatusOK, apptListResp(appts))
}

// Calendar returns the active appointments in [from, to) as colored
// events for the reception calendar (?from=YYYY-MM-DD&to=YYYY-MM-DD,
// default the current week).  AGENDADA renders blue, CONFIRMADA green.
func (h *AppointmentHandler) Calendar(c echo.Context) error {
    var from, to time.Time
    if raw := c.QueryParam("from"); raw != "" {
        d, err := time.Parse("2006-01-02", raw)
        if err != nil {
            return badRequest(c, "invalid from")
        }
        from = d
    } else {
        from, _ = schedule.DayBounds(time.Now().UTC())
    }
    if raw := c.QueryParam("to"); raw != "" {
        d, err := time.Parse("2006-01-02", raw)
        if err != nil {
            return badRequest(c, "invalid to")
        }
        to = d
    } else {
        to = from.AddDate(0, 0, 7)
    }
    if !to.After(from) {
        return badRequest(c, "to must follow from")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    entries, err := h.Appts.CalendarRange(ctx, from, to)
    if err != nil {
        return dbError(c)
    }
    events := make([]calendarEvent, 0, len(entries))
    for _, e := range entries {
        ev := calendarEvent{
            ID:          e.ID,
            Title:       e.PetName + " (" + string(e.Tipo) + ")",
            Start:       e.FechaHora.Format(time.RFC3339),
            Mascota:     e.PetName,
            Dueno:       e.OwnerName,
            Veterinario: e.VetName,
            Tipo:        string(e.Tipo),
            Estado:      string(e.Estado),
            Motivo:      e.Motivo,
            Color:       "#0d6efd",
        }
        if e.Estado == model.StatusConfirmed {
            ev.Color = "#198754"
        }
        if e.VetID != nil {
            ev.VetID = *e.VetID
        }
        if ev.Veterinario == "" {
            ev.Veterinario = "Sin Asignar"
        }
        events = append(events, ev)
    }
    return c.JSON(http.StatusOK, events)
}

func (h *AppointmentHandler) publishBooked(ctx context.Context, a model.Appointment, p model.Pet, rescheduled bool) {
    ev := queue.AppointmentBookedEvent{
        EventID:       uuid.NewString(),
        AppointmentID: a.ID,
        PetID:         p.ID,
        PetName:       p.Nombre,
        ClientID:      p.ClientID,
        FechaHora:     a.FechaHora.Format(time.RFC3339),
        Tipo:          string(a.Tipo),
        EsUrgencia:    a.EsUrgencia,
        Rescheduled:   rescheduled,
        BookedAt:      time.Now().UTC().Format(time.RFC3339),
    }
    if cl, err := h.Clients.GetByID(ctx, p.ClientID); err == nil {
        ev.ClientName = cl.Nombre + " " + cl.Apellido
    }
    if a.VetID != nil {
        ev.VetID = *a.VetID
        if v, err := h.Vets.GetByID(ctx, *a.VetID); err == nil {
            ev.VetName = v.Nombre
        }
    }
    _ = queue_publisher.PublishAppointmentBooked(ctx, ev)
}
