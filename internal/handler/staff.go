package handler

import (
    "context"
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/pochitasw/vetclinic/internal/config"
    "github.com/pochitasw/vetclinic/internal/model"
    "github.com/pochitasw/vetclinic/internal/repository"
    "github.com/pochitasw/vetclinic/internal/utils"
)

// StaffHandler covers the admin backoffice: creating receptionist and
// veterinarian accounts and deactivating logins.
type StaffHandler struct {
    Cfg   config.Config
    Users *repository.UserRepo
    Vets  *repository.VetRepo
}

func NewStaffHandler(cfg config.Config, u *repository.UserRepo, v *repository.VetRepo) *StaffHandler {
    return &StaffHandler{Cfg: cfg, Users: u, Vets: v}
}

type staffReq struct {
    Username     string `json:"username"`
    Email        string `json:"email"`
    Password     string `json:"password"`
    Role         string `json:"role"` // RECEPCIONISTA | VETERINARIO | ADMIN
    RUT          string `json:"rut"`  // required for vets
    Nombre       string `json:"nombre"`
    Especialidad string `json:"especialidad"`
    Telefono     string `json:"telefono"`
}

// Create registers a staff account.  Veterinarians also get their staff
// record so they appear in the availability grid.
func (h *StaffHandler) Create(c echo.Context) error {
    var req staffReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }
    role := model.Role(strings.ToUpper(strings.TrimSpace(req.Role)))
    if role != model.RoleReceptionist && role != model.RoleVet && role != model.RoleAdmin {
        return badRequest(c, "invalid role")
    }
    if strings.TrimSpace(req.Username) == "" || len(req.Password) < 8 {
        return badRequest(c, "username and a password of at least 8 characters required")
    }
    if role == model.RoleVet {
        if !utils.ValidRUT(utils.FormatRUT(req.RUT)) {
            return badRequest(c, "El RUT ingresado no es válido.")
        }
        if strings.TrimSpace(req.Nombre) == "" {
            return badRequest(c, "Faltan datos obligatorios.")
        }
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    uid, err := h.Users.Create(ctx, req.Username, req.Email, req.Password, role, h.Cfg.BcryptCost)
    if err != nil {
        if errors.Is(err, repository.ErrUsernameExists) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "username already registered"})
        }
        return dbError(c)
    }

    if role == model.RoleVet {
        v := model.Veterinarian{
            UserID:       &uid,
            RUT:          utils.FormatRUT(req.RUT),
            Nombre:       strings.TrimSpace(req.Nombre),
            Especialidad: strings.TrimSpace(req.Especialidad),
            Telefono:     utils.FormatPhone(req.Telefono),
        }
        if err := h.Vets.Create(ctx, &v); err != nil {
            if errors.Is(err, repository.ErrRUTExists) {
                return c.JSON(http.StatusConflict, echo.Map{"error": "El RUT ya está registrado."})
            }
            return dbError(c)
        }
        return c.JSON(http.StatusCreated, echo.Map{"user_id": uid, "vet_id": v.ID, "role": role})
    }
    return c.JSON(http.StatusCreated, echo.Map{"user_id": uid, "role": role})
}

// Deactivate disables a login without deleting the account, so records
// authored by the user keep pointing somewhere.
func (h *StaffHandler) Deactivate(c echo.Context) error {
    id, ok := parseIDParam(c, "id")
    if !ok {
        return badRequest(c, "invalid id")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if _, err := h.Users.GetByID(ctx, id); err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        }
        return dbError(c)
    }
    if err := h.Users.SetActive(ctx, id, false); err != nil {
        return dbError(c)
    }
    return c.NoContent(http.StatusNoContent)
}
