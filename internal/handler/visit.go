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
    "github.com/pochitasw/vetclinic/internal/schedule"
)

// VisitHandler records the medical outcome of an appointment.  Writing a
// visit and completing its appointment happen in one transaction.
type VisitHandler struct {
    Visits *repository.VisitRepo
    Appts  *repository.AppointmentRepo
    Vets   *repository.VetRepo
}

func NewVisitHandler(v *repository.VisitRepo, a *repository.AppointmentRepo, vets *repository.VetRepo) *VisitHandler {
    return &VisitHandler{Visits: v, Appts: a, Vets: vets}
}

type visitReq struct {
    AppointmentID     uint64 `json:"appointment_id"`
    Diagnostico       string `json:"diagnostico"`
    Tratamiento       string `json:"tratamiento"`
    Medicamentos      string `json:"medicamentos"`
    CostoEstimado     int64  `json:"costo_estimado"`
    RequiereOperacion bool   `json:"requiere_operacion"`
}

type visitResp struct {
    ID                uint64 `json:"id"`
    AppointmentID     uint64 `json:"appointment_id"`
    Fecha             string `json:"fecha"`
    Diagnostico       string `json:"diagnostico"`
    Tratamiento       string `json:"tratamiento"`
    Medicamentos      string `json:"medicamentos,omitempty"`
    CostoEstimado     int64  `json:"costo_estimado"`
    RequiereOperacion bool   `json:"requiere_operacion"`
}

func toVisitResp(v model.Visit) visitResp {
    return visitResp{
        ID:                v.ID,
        AppointmentID:     v.AppointmentID,
        Fecha:             v.Fecha.Format(time.RFC3339),
        Diagnostico:       v.Diagnostico,
        Tratamiento:       v.Tratamiento,
        Medicamentos:      v.Medicamentos,
        CostoEstimado:     v.CostoEstimado,
        RequiereOperacion: v.RequiereOperacion,
    }
}

func visitListResp(visits []model.Visit) []visitResp {
    out := make([]visitResp, 0, len(visits))
    for _, v := range visits {
        out = append(out, toVisitResp(v))
    }
    return out
}

// Create writes the visit and marks the appointment REALIZADA in one
// transaction.  A second visit against the same appointment answers 409.
func (h *VisitHandler) Create(c echo.Context) error {
    var req visitReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }
    if req.AppointmentID == 0 || strings.TrimSpace(req.Diagnostico) == "" || strings.TrimSpace(req.Tratamiento) == "" {
        return badRequest(c, "Faltan datos obligatorios.")
    }
    if req.CostoEstimado < 0 {
        return badRequest(c, "invalid costo_estimado")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    a, err := h.Appts.GetByID(ctx, req.AppointmentID)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "appointment not found"})
        }
        return dbError(c)
    }
    if !schedule.CanTransitionAppointment(a.Estado, model.StatusCompleted) {
        return c.JSON(http.StatusConflict, echo.Map{"error": "appointment cannot be completed"})
    }
    if middleware.Role(c) == model.RoleVet {
        // Vets write visits only against their own assignments.
        vet, err := h.Vets.GetByUserID(ctx, middleware.UserID(c))
        if err != nil || a.VetID == nil || *a.VetID != vet.ID {
            return c.JSON(http.StatusForbidden, echo.Map{"error": "appointment is assigned to another veterinarian"})
        }
    }

    v := model.Visit{
        AppointmentID:     a.ID,
        Fecha:             time.Now().UTC(),
        Diagnostico:       strings.TrimSpace(req.Diagnostico),
        Tratamiento:       strings.TrimSpace(req.Tratamiento),
        Medicamentos:      strings.TrimSpace(req.Medicamentos),
        CostoEstimado:     req.CostoEstimado,
        RequiereOperacion: req.RequiereOperacion,
    }

    tx, err := h.Appts.DB().BeginTx(ctx, nil)
    if err != nil {
        return dbError(c)
    }
    defer tx.Rollback()

    if err := h.Visits.CreateTx(ctx, tx, &v); err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "visit already recorded"})
        }
        return dbError(c)
    }
    if err := h.Appts.UpdateStatusTx(ctx, tx, a.ID, model.StatusCompleted); err != nil {
        return dbError(c)
    }
    if err := tx.Commit(); err != nil {
        return dbError(c)
    }
    return c.JSON(http.StatusCreated, toVisitResp(v))
}

// GetByAppointment returns the visit written against an appointment.
func (h *VisitHandler) GetByAppointment(c echo.Context) error {
    id, ok := parseIDParam(c, "id")
    if !ok {
        return badRequest(c, "invalid id")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    v, err := h.Visits.GetByAppointment(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "visit not found"})
        }
        return dbError(c)
    }
    return c.JSON(http.StatusOK, toVisitResp(v))
}
