package handler

import (
    "context"
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/pochitasw/vetclinic/internal/model"
    "github.com/pochitasw/vetclinic/internal/repository"
)

// ProductHandler manages the point-of-sale catalog.
type ProductHandler struct {
    Products *repository.ProductRepo
}

func NewProductHandler(p *repository.ProductRepo) *ProductHandler {
    return &ProductHandler{Products: p}
}

type productReq struct {
    Nombre      string `json:"nombre"`
    Descripcion string `json:"descripcion"`
    Precio      int64  `json:"precio"` // CLP
    Stock       int    `json:"stock"`
}

type productResp struct {
    ID          uint64 `json:"id"`
    Nombre      string `json:"nombre"`
    Descripcion string `json:"descripcion,omitempty"`
    Precio      int64  `json:"precio"`
    Stock       int    `json:"stock"`
}

func toProductResp(p model.Product) productResp {
    return productResp{ID: p.ID, Nombre: p.Nombre, Descripcion: p.Descripcion, Precio: p.Precio, Stock: p.Stock}
}

// Create adds a product to the catalog.
func (h *ProductHandler) Create(c echo.Context) error {
    var req productReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }
    if strings.TrimSpace(req.Nombre) == "" || req.Precio <= 0 || req.Stock < 0 {
        return badRequest(c, "nombre and a positive precio required")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    p := model.Product{
        Nombre:      strings.TrimSpace(req.Nombre),
        Descripcion: strings.TrimSpace(req.Descripcion),
        Precio:      req.Precio,
        Stock:       req.Stock,
    }
    if err := h.Products.Create(ctx, &p); err != nil {
        return dbError(c)
    }
    return c.JSON(http.StatusCreated, toProductResp(p))
}

// Update edits a product.
func (h *ProductHandler) Update(c echo.Context) error {
    id, ok := parseIDParam(c, "id")
    if !ok {
        return badRequest(c, "invalid id")
    }
    var req productReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    p, err := h.Products.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
        }
        return dbError(c)
    }
    if v := strings.TrimSpace(req.Nombre); v != "" {
        p.Nombre = v
    }
    if v := strings.TrimSpace(req.Descripcion); v != "" {
        p.Descripcion = v
    }
    if req.Precio > 0 {
        p.Precio = req.Precio
    }
    if req.Stock >= 0 {
        p.Stock = req.Stock
    }
    if err := h.Products.Update(ctx, &p); err != nil {
        return dbError(c)
    }
    return c.JSON(http.StatusOK, toProductResp(p))
}

// List returns the whole catalog.
func (h *ProductHandler) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    products, err := h.Products.List(ctx)
    if err != nil {
        return dbError(c)
    }
    out := make([]productResp, 0, len(products))
    for _, p := range products {
        out = append(out, toProductResp(p))
    }
    return c.JSON(http.StatusOK, out)
}
