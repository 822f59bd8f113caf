package handler

import (
    "context"
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/pochitasw/vetclinic/internal/config"
    "github.com/pochitasw/vetclinic/internal/middleware"
    "github.com/pochitasw/vetclinic/internal/model"
    "github.com/pochitasw/vetclinic/internal/repository"
    "github.com/pochitasw/vetclinic/internal/utils"
)

// ClientHandler bundles dependencies for client-profile endpoints used by
// the front desk and by clients themselves.
type ClientHandler struct {
    Cfg     config.Config
    Clients *repository.ClientRepo
    Users   *repository.UserRepo
    Pets    *repository.PetRepo
}

func NewClientHandler(cfg config.Config, cl *repository.ClientRepo, u *repository.UserRepo, p *repository.PetRepo) *ClientHandler {
    return &ClientHandler{Cfg: cfg, Clients: cl, Users: u, Pets: p}
}

type clientReq struct {
    RUT       string `json:"rut"`
    Nombre    string `json:"nombre"`
    Apellido  string `json:"apellido"`
    Telefono  string `json:"telefono"`
    Email     string `json:"email"`
    Direccion string `json:"direccion"`
}

type clientResp struct {
    ID        uint64 `json:"id"`
    RUT       string `json:"rut"`
    Nombre    string `json:"nombre"`
    Apellido  string `json:"apellido"`
    Telefono  string `json:"telefono"`
    Email     string `json:"email"`
    Direccion string `json:"direccion"`
    HasLogin  bool   `json:"has_login"`
}

func toClientResp(cl model.Client) clientResp {
    return clientResp{
        ID:        cl.ID,
        RUT:       cl.RUT,
        Nombre:    cl.Nombre,
        Apellido:  cl.Apellido,
        Telefono:  cl.Telefono,
        Email:     cl.Email,
        Direccion: cl.Direccion,
        HasLogin:  cl.UserID != nil,
    }
}

// QuickRegister is the front-desk flow: register a walk-in client from
// just their RUT and name.  The RUT is normalised and checksum-validated,
// the phone is formatted to +56 form, and a login account is created with
// the configured temporary password so the client can activate web access
// later.
func (h *ClientHandler) QuickRegister(c echo.Context) error {
    var req clientReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }
    rut := utils.FormatRUT(strings.TrimSpace(req.RUT))
    if !utils.ValidRUT(rut) {
        return badRequest(c, "El RUT ingresado no es válido.")
    }
    if strings.TrimSpace(req.Nombre) == "" || strings.TrimSpace(req.Apellido) == "" {
        return badRequest(c, "Faltan datos obligatorios.")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    cl := model.Client{
        RUT:       rut,
        Nombre:    strings.TrimSpace(req.Nombre),
        Apellido:  strings.TrimSpace(req.Apellido),
        Telefono:  utils.FormatPhone(req.Telefono),
        Email:     strings.TrimSpace(req.Email),
        Direccion: strings.TrimSpace(req.Direccion),
    }
    if err := h.Clients.Create(ctx, &cl); err != nil {
        if errors.Is(err, repository.ErrRUTExists) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "El RUT ya está registrado."})
        }
        return dbError(c)
    }

    // Account creation is best effort: the profile is the record the desk
    // needs; a username collision just means the client already had one.
    if uid, err := h.Users.Create(ctx, rut, cl.Email, h.Cfg.TempPassword, model.RoleClient, h.Cfg.BcryptCost); err == nil {
        if err := h.Clients.LinkUser(ctx, cl.ID, uid); err == nil {
            cl.UserID = &uid
        }
    }

    return c.JSON(http.StatusCreated, toClientResp(cl))
}

// Update edits a client's contact details.  The RUT is immutable.
func (h *ClientHandler) Update(c echo.Context) error {
    id, ok := parseIDParam(c, "id")
    if !ok {
        return badRequest(c, "invalid id")
    }
    var req clientReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    cl, err := h.Clients.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
        }
        return dbError(c)
    }
    if v := strings.TrimSpace(req.Nombre); v != "" {
        cl.Nombre = v
    }
    if v := strings.TrimSpace(req.Apellido); v != "" {
        cl.Apellido = v
    }
    if v := strings.TrimSpace(req.Telefono); v != "" {
        cl.Telefono = utils.FormatPhone(v)
    }
    if v := strings.TrimSpace(req.Email); v != "" {
        cl.Email = v
    }
    if v := strings.TrimSpace(req.Direccion); v != "" {
        cl.Direccion = v
    }
    if err := h.Clients.Update(ctx, &cl); err != nil {
        return dbError(c)
    }
    return c.JSON(http.StatusOK, toClientResp(cl))
}

// Search looks up clients by RUT or name for the front-desk search box.
// Without ?q it returns the full roster ordered by surname.
func (h *ClientHandler) Search(c echo.Context) error {
    q := strings.TrimSpace(c.QueryParam("q"))

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    var (
        found []model.Client
        err   error
    )
    if q == "" {
        found, err = h.Clients.List(ctx)
    } else {
        found, err = h.Clients.Search(ctx, q, 20)
    }
    if err != nil {
        return dbError(c)
    }
    out := make([]clientResp, 0, len(found))
    for _, cl := range found {
        out = append(out, toClientResp(cl))
    }
    return c.JSON(http.StatusOK, out)
}

// Get returns a client with their pets.
func (h *ClientHandler) Get(c echo.Context) error {
    id, ok := parseIDParam(c, "id")
    if !ok {
        return badRequest(c, "invalid id")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    cl, err := h.Clients.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
        }
        return dbError(c)
    }
    pets, err := h.Pets.ListByClient(ctx, cl.ID)
    if err != nil {
        return dbError(c)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "client": toClientResp(cl),
        "pets":   petListResp(pets),
    })
}

// MyProfile returns the profile of the authenticated client, pets
// included.
func (h *ClientHandler) MyProfile(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    cl, err := h.Clients.GetByUserID(ctx, middleware.UserID(c))
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
        }
        return dbError(c)
    }
    pets, err := h.Pets.ListByClient(ctx, cl.ID)
    if err != nil {
        return dbError(c)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "client": toClientResp(cl),
        "pets":   petListResp(pets),
    })
}
