package handler

import (
    "context"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/pochitasw/vetclinic/internal/middleware"
    "github.com/pochitasw/vetclinic/internal/model"
    "github.com/pochitasw/vetclinic/internal/repository"
)

// PetHandler bundles dependencies for pet registration, editing and the
// clinical history view.
type PetHandler struct {
    Pets    *repository.PetRepo
    Clients *repository.ClientRepo
    Appts   *repository.AppointmentRepo
    Visits  *repository.VisitRepo
}

func NewPetHandler(p *repository.PetRepo, cl *repository.ClientRepo, a *repository.AppointmentRepo, v *repository.VisitRepo) *PetHandler {
    return &PetHandler{Pets: p, Clients: cl, Appts: a, Visits: v}
}

type petReq struct {
    ClientID        uint64 `json:"client_id"`
    Nombre          string `json:"nombre"`
    Especie         string `json:"especie"`
    Genero          string `json:"genero"`
    Raza            string `json:"raza"`
    FechaNacimiento string `json:"fecha_nacimiento"` // YYYY-MM-DD, optional
    Observaciones   string `json:"observaciones"`
}

type petResp struct {
    ID              uint64 `json:"id"`
    ClientID        uint64 `json:"client_id"`
    Nombre          string `json:"nombre"`
    Especie         string `json:"especie"`
    Genero          string `json:"genero"`
    Raza            string `json:"raza"`
    FechaNacimiento string `json:"fecha_nacimiento,omitempty"`
    EdadAprox       int    `json:"edad_aprox"`
    Observaciones   string `json:"observaciones,omitempty"`
}

func toPetResp(p model.Pet) petResp {
    out := petResp{
        ID:            p.ID,
        ClientID:      p.ClientID,
        Nombre:        p.Nombre,
        Especie:       p.Especie,
        Genero:        p.Genero,
        Raza:          p.Raza,
        EdadAprox:     p.ApproxAge(time.Now().UTC()),
        Observaciones: p.Observaciones,
    }
    if p.FechaNacimiento != nil {
        out.FechaNacimiento = p.FechaNacimiento.Format("2006-01-02")
    }
    return out
}

func petListResp(pets []model.Pet) []petResp {
    out := make([]petResp, 0, len(pets))
    for _, p := range pets {
        out = append(out, toPetResp(p))
    }
    return out
}

// resolveOwner returns the client the pet should belong to.  Staff pass
// client_id explicitly; clients always operate on their own profile.
func (h *PetHandler) resolveOwner(ctx context.Context, c echo.Context, requested uint64) (uint64, error) {
    if middleware.Role(c) != model.RoleClient {
        if requested == 0 {
            return 0, errors.New("client_id required")
        }
        return requested, nil
    }
    cl, err := h.Clients.GetByUserID(ctx, middleware.UserID(c))
    if err != nil {
        return 0, err
    }
    return cl.ID, nil
}

// Create registers a pet.  Species and gender fall back to the defaults
// the clinic uses on paper forms.
func (h *PetHandler) Create(c echo.Context) error {
    var req petReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }
    if strings.TrimSpace(req.Nombre) == "" {
        return badRequest(c, "Faltan datos obligatorios.")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    ownerID, err := h.resolveOwner(ctx, c, req.ClientID)
    if err != nil {
        return badRequest(c, "client_id required")
    }
    if _, err := h.Clients.GetByID(ctx, ownerID); err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
        }
        return dbError(c)
    }

    p := model.Pet{
        ClientID:      ownerID,
        Nombre:        strings.TrimSpace(req.Nombre),
        Especie:       req.Especie,
        Genero:        req.Genero,
        Raza:          strings.TrimSpace(req.Raza),
        FechaRegistro: time.Now().UTC(),
        Observaciones: strings.TrimSpace(req.Observaciones),
    }
    if p.Especie == "" {
        p.Especie = model.SpeciesDog
    }
    if p.Genero == "" {
        p.Genero = model.GenderMale
    }
    if req.FechaNacimiento != "" {
        d, err := time.Parse("2006-01-02", req.FechaNacimiento)
        if err != nil {
            return badRequest(c, "invalid fecha_nacimiento")
        }
        p.FechaNacimiento = &d
    }
    if err := h.Pets.Create(ctx, &p); err != nil {
        return dbError(c)
    }
    return c.JSON(http.StatusCreated, toPetResp(p))
}

// Update edits a pet.  Clients can only edit their own pets.
func (h *PetHandler) Update(c echo.Context) error {
    id, ok := parseIDParam(c, "id")
    if !ok {
        return badRequest(c, "invalid id")
    }
    var req petReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    p, err := h.Pets.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "pet not found"})
        }
        return dbError(c)
    }
    if err := h.requireOwnership(ctx, c, p); err != nil {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }

    if v := strings.TrimSpace(req.Nombre); v != "" {
        p.Nombre = v
    }
    if req.Especie != "" {
        p.Especie = req.Especie
    }
    if req.Genero != "" {
        p.Genero = req.Genero
    }
    if v := strings.TrimSpace(req.Raza); v != "" {
        p.Raza = v
    }
    if req.FechaNacimiento != "" {
        d, err := time.Parse("2006-01-02", req.FechaNacimiento)
        if err != nil {
            return badRequest(c, "invalid fecha_nacimiento")
        }
        p.FechaNacimiento = &d
    }
    if req.Observaciones != "" {
        p.Observaciones = strings.TrimSpace(req.Observaciones)
    }
    if err := h.Pets.Update(ctx, &p); err != nil {
        return dbError(c)
    }
    return c.JSON(http.StatusOK, toPetResp(p))
}

// requireOwnership rejects a client touching a pet that is not theirs.
// Staff roles pass unconditionally.
func (h *PetHandler) requireOwnership(ctx context.Context, c echo.Context, p model.Pet) error {
    if middleware.Role(c) != model.RoleClient {
        return nil
    }
    cl, err := h.Clients.GetByUserID(ctx, middleware.UserID(c))
    if err != nil || cl.ID != p.ClientID {
        return repository.ErrForbidden
    }
    return nil
}

// History returns the pet's record: profile, appointment history and the
// medical visits written against those appointments.  This is the
// "antecedentes" sheet the vet reads before seeing the animal.
func (h *PetHandler) History(c echo.Context) error {
    id, ok := parseIDParam(c, "id")
    if !ok {
        return badRequest(c, "invalid id")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    p, err := h.Pets.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "pet not found"})
        }
        return dbError(c)
    }
    if err := h.requireOwnership(ctx, c, p); err != nil {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }

    appts, err := h.Appts.ListByPet(ctx, p.ID)
    if err != nil {
        return dbError(c)
    }
    visits, err := h.Visits.ListByPet(ctx, p.ID)
    if err != nil {
        return dbError(c)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "pet":          toPetResp(p),
        "appointments": apptListResp(appts),
        "visits":       visitListResp(visits),
    })
}

// Background returns the short summary shown at check-in: the last five
// appointments and the most recent visit.
func (h *PetHandler) Background(c echo.Context) error {
    id, ok := parseIDParam(c, "id")
    if !ok {
        return badRequest(c, "invalid id")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    p, err := h.Pets.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "pet not found"})
        }
        return dbError(c)
    }
    if err := h.requireOwnership(ctx, c, p); err != nil {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }

    appts, err := h.Appts.ListByPet(ctx, p.ID)
    if err != nil {
        return dbError(c)
    }
    // Both lists come back newest first.
    if len(appts) > 5 {
        appts = appts[:5]
    }
    visits, err := h.Visits.ListByPet(ctx, p.ID)
    if err != nil {
        return dbError(c)
    }
    out := echo.Map{
        "pet":                 toPetResp(p),
        "recent_appointments": apptListResp(appts),
    }
    if len(visits) > 0 {
        out["last_visit"] = toVisitResp(visits[0])
    }
    return c.JSON(http.StatusOK, out)
}
