package handler

import (
    "context"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/pochitasw/vetclinic/internal/config"
    "github.com/pochitasw/vetclinic/internal/middleware"
    "github.com/pochitasw/vetclinic/internal/model"
    "github.com/pochitasw/vetclinic/internal/repository"
    "github.com/pochitasw/vetclinic/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.  Clients log in
// with their formatted RUT as username; staff accounts use plain
// usernames created by an admin.
type AuthHandler struct {
    Cfg     config.Config
    Users   *repository.UserRepo
    Tokens  *repository.TokenRepo
    Clients *repository.ClientRepo
    Pets    *repository.PetRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo, cl *repository.ClientRepo, p *repository.PetRepo) *AuthHandler {
    return &AuthHandler{Cfg: cfg, Users: u, Tokens: t, Clients: cl, Pets: p}
}

// ----- DTOs -----

type registerPetReq struct {
    Nombre  string `json:"nombre"`
    Especie string `json:"especie"`
    Genero  string `json:"genero"`
    Raza    string `json:"raza"`
}
type registerReq struct {
    RUT      string          `json:"rut"`
    Nombre   string          `json:"nombre"`
    Apellido string          `json:"apellido"`
    Telefono string          `json:"telefono"`
    Email    string          `json:"email"`
    Password string          `json:"password"`
    Mascota  *registerPetReq `json:"mascota"` // optional first pet
}
type loginReq struct {
    Username string `json:"username"`
    Password string `json:"password"`
}
type refreshReq struct {
    RefreshToken string `json:"refresh_token"`
}
type changePasswordReq struct {
    CurrentPassword string `json:"current_password"`
    NewPassword     string `json:"new_password"`
}

type tokenPart struct {
    Token   string `json:"token"`
    Expires string `json:"expires"`
}
type userPart struct {
    ID       uint64 `json:"id"`
    Username string `json:"username"`
    Role     string `json:"role"`
}
type authResp struct {
    User    userPart  `json:"user"`
    Access  tokenPart `json:"access"`
    Refresh tokenPart `json:"refresh"`
}

func (h *AuthHandler) issuePair(ctx context.Context, u model.User) (authResp, error) {
    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Rol, h.Cfg.AccessTTLMin)
    if err != nil {
        return authResp{}, err
    }
    refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
    if err != nil {
        return authResp{}, err
    }
    if err := h.Tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
        return authResp{}, err
    }
    return authResp{
        User:    userPart{ID: u.ID, Username: u.Username, Role: string(u.Rol)},
        Access:  tokenPart{Token: access.Token, Expires: access.Exp.Format("2006-01-02T15:04:05Z07:00")},
        Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp.Format("2006-01-02T15:04:05Z07:00")}, // raw back to client
    }, nil
}

// Register creates a client account.  The RUT doubles as username; when a
// client profile with that RUT already exists at the front desk the new
// account is linked to it instead of duplicating the record.
func (h *AuthHandler) Register(c echo.Context) error {
    var req registerReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }
    rut := utils.FormatRUT(strings.TrimSpace(req.RUT))
    if !utils.ValidRUT(rut) {
        return badRequest(c, "El RUT ingresado no es válido.")
    }
    if req.Nombre == "" || req.Apellido == "" || req.Password == "" {
        return badRequest(c, "Faltan datos obligatorios.")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    uid, err := h.Users.Create(ctx, rut, req.Email, req.Password, model.RoleClient, h.Cfg.BcryptCost)
    if err != nil {
        if errors.Is(err, repository.ErrUsernameExists) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "El RUT ya tiene una cuenta registrada."})
        }
        return dbError(c)
    }

    var clientID uint64
    existing, err := h.Clients.GetByRUT(ctx, rut)
    switch {
    case err == nil:
        if err := h.Clients.LinkUser(ctx, existing.ID, uid); err != nil {
            return dbError(c)
        }
        clientID = existing.ID
    case errors.Is(err, repository.ErrNotFound):
        cl := model.Client{
            UserID:   &uid,
            RUT:      rut,
            Nombre:   strings.TrimSpace(req.Nombre),
            Apellido: strings.TrimSpace(req.Apellido),
            Telefono: utils.FormatPhone(req.Telefono),
            Email:    strings.TrimSpace(req.Email),
        }
        if err := h.Clients.Create(ctx, &cl); err != nil {
            return dbError(c)
        }
        clientID = cl.ID
    default:
        return dbError(c)
    }

    if req.Mascota != nil && strings.TrimSpace(req.Mascota.Nombre) != "" {
        p := model.Pet{
            ClientID:      clientID,
            Nombre:        strings.TrimSpace(req.Mascota.Nombre),
            Especie:       req.Mascota.Especie,
            Genero:        req.Mascota.Genero,
            Raza:          strings.TrimSpace(req.Mascota.Raza),
            FechaRegistro: time.Now().UTC(),
        }
        if p.Especie == "" {
            p.Especie = model.SpeciesDog
        }
        if p.Genero == "" {
            p.Genero = model.GenderMale
        }
        if err := h.Pets.Create(ctx, &p); err != nil {
            return dbError(c)
        }
    }

    u, err := h.Users.GetByID(ctx, uid)
    if err != nil {
        return dbError(c)
    }
    resp, err := h.issuePair(ctx, u)
    if err != nil {
        return dbError(c)
    }
    return c.JSON(http.StatusCreated, resp)
}

// Login verifies credentials and returns a new token pair.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }
    username := strings.TrimSpace(req.Username)
    if username == "" || req.Password == "" {
        return badRequest(c, "username/password required")
    }
    // Clients type their RUT in any format; normalise before lookup.
    if utils.ValidRUT(utils.FormatRUT(username)) {
        username = utils.FormatRUT(username)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    u, err := h.Users.GetByUsername(ctx, username)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
        }
        return dbError(c)
    }
    if !u.IsActive || !utils.VerifyPassword(u.PasswordHash, req.Password) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
    }

    resp, err := h.issuePair(ctx, u)
    if err != nil {
        return dbError(c)
    }
    return c.JSON(http.StatusOK, resp)
}

// Refresh validates a refresh token by hash, revokes it and issues a new
// pair (rotation).
func (h *AuthHandler) Refresh(c echo.Context) error {
    var req refreshReq
    if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
        return badRequest(c, "refresh_token required")
    }
    hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    userID, err := h.Tokens.ValidateRefresh(ctx, hash)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
    }
    _ = h.Tokens.RevokeByHash(ctx, hash)

    u, err := h.Users.GetByID(ctx, userID)
    if err != nil {
        return dbError(c)
    }
    resp, err := h.issuePair(ctx, u)
    if err != nil {
        return dbError(c)
    }
    return c.JSON(http.StatusOK, resp)
}

// RefreshAccess returns a new access token without rotating the refresh
// token.
func (h *AuthHandler) RefreshAccess(c echo.Context) error {
    var req refreshReq
    if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
        return badRequest(c, "refresh_token required")
    }
    hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    userID, err := h.Tokens.ValidateRefresh(ctx, hash)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
    }
    u, err := h.Users.GetByID(ctx, userID)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
        }
        return dbError(c)
    }
    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Rol, h.Cfg.AccessTTLMin)
    if err != nil {
        return dbError(c)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "access": tokenPart{Token: access.Token, Expires: access.Exp.Format("2006-01-02T15:04:05Z07:00")},
    })
}

// Logout revokes a single session when a refresh_token is supplied, or
// every session of the authenticated user when called with only the
// bearer token.
func (h *AuthHandler) Logout(c echo.Context) error {
    var req refreshReq
    _ = c.Bind(&req)
    refreshToken := strings.TrimSpace(req.RefreshToken)

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if refreshToken != "" {
        hash := utils.HashRefreshRaw(refreshToken)
        if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
        }
        if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
            return dbError(c)
        }
        return c.NoContent(http.StatusNoContent)
    }

    uid := middleware.UserID(c)
    if uid == 0 {
        return badRequest(c, "provide Authorization header or refresh_token")
    }
    if err := h.Tokens.RevokeAllForUser(ctx, uid); err != nil {
        return dbError(c)
    }
    return c.NoContent(http.StatusNoContent)
}

// ChangePassword lets an authenticated user replace their password.  The
// front desk hands out a temporary password on quick registration; this
// is how the client replaces it.  All other sessions are revoked.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
    var req changePasswordReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }
    if len(req.NewPassword) < 8 {
        return badRequest(c, "La nueva contraseña debe tener al menos 8 caracteres.")
    }
    uid := middleware.UserID(c)

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    u, err := h.Users.GetByID(ctx, uid)
    if err != nil {
        return dbError(c)
    }
    if !utils.VerifyPassword(u.PasswordHash, req.CurrentPassword) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
    }
    if err := h.Users.UpdatePassword(ctx, uid, req.NewPassword, h.Cfg.BcryptCost); err != nil {
        return dbError(c)
    }
    _ = h.Tokens.RevokeAllForUser(ctx, uid)
    return c.NoContent(http.StatusNoContent)
}

// Me reports the authenticated identity.
func (h *AuthHandler) Me(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{
        "user_id": middleware.UserID(c),
        "role":    middleware.Role(c),
    })
}
