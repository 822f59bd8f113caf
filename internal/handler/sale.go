package handler

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/pochitasw/vetclinic/internal/model"
    "github.com/pochitasw/vetclinic/internal/repository"
)

// SaleHandler runs point-of-sale transactions.  Each sale locks its
// products, checks stock, freezes unit prices and decrements inventory in
// one transaction; the receipt is a UUID printed on the ticket.
type SaleHandler struct {
    Sales    *repository.SaleRepo
    Products *repository.ProductRepo
    Clients  *repository.ClientRepo
}

func NewSaleHandler(s *repository.SaleRepo, p *repository.ProductRepo, cl *repository.ClientRepo) *SaleHandler {
    return &SaleHandler{Sales: s, Products: p, Clients: cl}
}

type saleLineReq struct {
    ProductID uint64 `json:"product_id"`
    Cantidad  int    `json:"cantidad"`
}

type saleReq struct {
    ClientID uint64        `json:"client_id"` // optional, anonymous sales allowed
    Items    []saleLineReq `json:"items"`
}

type saleLineResp struct {
    ProductID      uint64 `json:"product_id"`
    Cantidad       int    `json:"cantidad"`
    PrecioUnitario int64  `json:"precio_unitario"`
    Subtotal       int64  `json:"subtotal"`
}

type saleResp struct {
    ID       uint64         `json:"id"`
    ClientID uint64         `json:"client_id,omitempty"`
    Receipt  string         `json:"receipt"`
    Fecha    string         `json:"fecha"`
    Total    int64          `json:"total"`
    Items    []saleLineResp `json:"items"`
}

func toSaleResp(s model.Sale, items []model.SaleItem) saleResp {
    out := saleResp{
        ID:      s.ID,
        Receipt: s.Receipt,
        Fecha:   s.Fecha.Format(time.RFC3339),
        Total:   s.Total,
        Items:   make([]saleLineResp, 0, len(items)),
    }
    if s.ClientID != nil {
        out.ClientID = *s.ClientID
    }
    for _, it := range items {
        out.Items = append(out.Items, saleLineResp{
            ProductID:      it.ProductID,
            Cantidad:       it.Cantidad,
            PrecioUnitario: it.PrecioUnitario,
            Subtotal:       it.PrecioUnitario * int64(it.Cantidad),
        })
    }
    return out
}

// Create processes a sale.  Lines are validated, each product is locked
// and decremented, and the total is the sum of frozen unit prices.  Any
// shortage aborts the whole sale with 409.
func (h *SaleHandler) Create(c echo.Context) error {
    var req saleReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }
    if len(req.Items) == 0 {
        return badRequest(c, "items required")
    }
    for _, it := range req.Items {
        if it.ProductID == 0 || it.Cantidad <= 0 {
            return badRequest(c, "each item needs product_id and a positive cantidad")
        }
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    s := model.Sale{
        Receipt: uuid.NewString(),
        Fecha:   time.Now().UTC(),
    }
    if req.ClientID != 0 {
        if _, err := h.Clients.GetByID(ctx, req.ClientID); err != nil {
            if errors.Is(err, repository.ErrNotFound) {
                return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
            }
            return dbError(c)
        }
        s.ClientID = &req.ClientID
    }

    tx, err := h.Sales.DB().BeginTx(ctx, nil)
    if err != nil {
        return dbError(c)
    }
    defer tx.Rollback()

    items := make([]model.SaleItem, 0, len(req.Items))
    var total int64
    for _, line := range req.Items {
        p, err := h.Products.GetForUpdateTx(ctx, tx, line.ProductID)
        if err != nil {
            if errors.Is(err, repository.ErrNotFound) {
                return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
            }
            return dbError(c)
        }
        if p.Stock < line.Cantidad {
            return c.JSON(http.StatusConflict, echo.Map{
                "error": "insufficient stock", "product_id": p.ID, "available": p.Stock,
            })
        }
        if err := h.Products.DecrementStockTx(ctx, tx, p.ID, line.Cantidad); err != nil {
            if errors.Is(err, repository.ErrInsufficientStock) {
                return c.JSON(http.StatusConflict, echo.Map{
                    "error": "insufficient stock", "product_id": p.ID, "available": p.Stock,
                })
            }
            return dbError(c)
        }
        items = append(items, model.SaleItem{
            ProductID:      p.ID,
            Cantidad:       line.Cantidad,
            PrecioUnitario: p.Precio,
        })
        total += p.Precio * int64(line.Cantidad)
    }

    s.Total = total
    if err := h.Sales.CreateTx(ctx, tx, &s); err != nil {
        return dbError(c)
    }
    for i := range items {
        items[i].SaleID = s.ID
    }
    if err := h.Sales.CreateItemsBulkTx(ctx, tx, items); err != nil {
        return dbError(c)
    }
    if err := tx.Commit(); err != nil {
        return dbError(c)
    }
    return c.JSON(http.StatusCreated, toSaleResp(s, items))
}

// Get returns a sale with its items.
func (h *SaleHandler) Get(c echo.Context) error {
    id, ok := parseIDParam(c, "id")
    if !ok {
        return badRequest(c, "invalid id")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    s, items, err := h.Sales.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "sale not found"})
        }
        return dbError(c)
    }
    return c.JSON(http.StatusOK, toSaleResp(s, items))
}

// ListByClient returns a client's sale headers, newest first.  Items are
// fetched per sale through Get.
func (h *SaleHandler) ListByClient(c echo.Context) error {
    id, ok := parseIDParam(c, "id")
    if !ok {
        return badRequest(c, "invalid id")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if _, err := h.Clients.GetByID(ctx, id); err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
        }
        return dbError(c)
    }
    list, err := h.Sales.ListByClient(ctx, id)
    if err != nil {
        return dbError(c)
    }
    out := make([]saleResp, 0, len(list))
    for _, s := range list {
        out = append(out, toSaleResp(s, nil))
    }
    return c.JSON(http.StatusOK, out)
}

// GetByReceipt looks a sale up by the UUID on the printed ticket.
func (h *SaleHandler) GetByReceipt(c echo.Context) error {
    receipt := c.Param("receipt")
    if _, err := uuid.Parse(receipt); err != nil {
        return badRequest(c, "invalid receipt")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    s, items, err := h.Sales.GetByReceipt(ctx, receipt)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "sale not found"})
        }
        return dbError(c)
    }
    return c.JSON(http.StatusOK, toSaleResp(s, items))
}
