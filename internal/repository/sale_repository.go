package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/pochitasw/vetclinic/internal/model"
)

// SaleRepo persists point-of-sale transactions.  A sale and its line items
// are always written inside one transaction together with the stock
// decrements, which the handler orchestrates through the Tx methods here
// and on ProductRepo.
type SaleRepo struct{ db *sql.DB }

// NewSaleRepo returns a new SaleRepo bound to the given database.
func NewSaleRepo(db *sql.DB) *SaleRepo { return &SaleRepo{db: db} }

// DB exposes the underlying handle for opening the sale transaction.
func (r *SaleRepo) DB() *sql.DB { return r.db }

const saleCols = "id, client_id, receipt, fecha, total"

// CreateTx inserts the sale header within the caller's transaction and
// populates the generated ID.  Receipt must already hold the UUID.
func (r *SaleRepo) CreateTx(ctx context.Context, tx *sql.Tx, s *model.Sale) error {
    res, err := tx.ExecContext(ctx,
        "INSERT INTO sales (client_id, receipt, fecha, total) VALUES (?,?,?,?)",
        s.ClientID, s.Receipt, s.Fecha, s.Total)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    s.ID = uint64(id)
    return nil
}

// CreateItemsBulkTx inserts all line items in a single statement.  Each
// item must carry the sale ID and the unit price frozen at sale time.
// Passing an empty slice has no effect and returns nil.
func (r *SaleRepo) CreateItemsBulkTx(ctx context.Context, tx *sql.Tx, items []model.SaleItem) error {
    if len(items) == 0 {
        return nil
    }
    query := "INSERT INTO sale_items (sale_id, product_id, cantidad, precio_unitario) VALUES "
    args := make([]interface{}, 0, len(items)*4)
    for i, it := range items {
        if i > 0 {
            query += ","
        }
        query += "(?, ?, ?, ?)"
        args = append(args, it.SaleID, it.ProductID, it.Cantidad, it.PrecioUnitario)
    }
    _, err := tx.ExecContext(ctx, query, args...)
    return err
}

// GetByID fetches a sale header with its line items.
func (r *SaleRepo) GetByID(ctx context.Context, id uint64) (model.Sale, []model.SaleItem, error) {
    row := r.db.QueryRowContext(ctx, "SELECT "+saleCols+" FROM sales WHERE id=? LIMIT 1", id)
    s, err := scanSale(row)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Sale{}, nil, ErrNotFound
    }
    if err != nil {
        return model.Sale{}, nil, err
    }
    items, err := r.itemsFor(ctx, s.ID)
    if err != nil {
        return model.Sale{}, nil, err
    }
    return s, items, nil
}

// GetByReceipt fetches a sale by its receipt UUID, items included.
func (r *SaleRepo) GetByReceipt(ctx context.Context, receipt string) (model.Sale, []model.SaleItem, error) {
    row := r.db.QueryRowContext(ctx, "SELECT "+saleCols+" FROM sales WHERE receipt=? LIMIT 1", receipt)
    s, err := scanSale(row)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Sale{}, nil, ErrNotFound
    }
    if err != nil {
        return model.Sale{}, nil, err
    }
    items, err := r.itemsFor(ctx, s.ID)
    if err != nil {
        return model.Sale{}, nil, err
    }
    return s, items, nil
}

func (r *SaleRepo) itemsFor(ctx context.Context, saleID uint64) ([]model.SaleItem, error) {
    rows, err := r.db.QueryContext(ctx,
        "SELECT id, sale_id, product_id, cantidad, precio_unitario FROM sale_items WHERE sale_id=? ORDER BY id",
        saleID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := []model.SaleItem{}
    for rows.Next() {
        var it model.SaleItem
        if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Cantidad, &it.PrecioUnitario); err != nil {
            return nil, err
        }
        out = append(out, it)
    }
    return out, rows.Err()
}

func scanSale(row rowScanner) (model.Sale, error) {
    var (
        s        model.Sale
        clientID sql.NullInt64
    )
    err := row.Scan(&s.ID, &clientID, &s.Receipt, &s.Fecha, &s.Total)
    if err != nil {
        return model.Sale{}, err
    }
    if clientID.Valid {
        c := uint64(clientID.Int64)
        s.ClientID = &c
    }
    return s, nil
}

// ListByClient returns a client's purchase history, newest first.
func (r *SaleRepo) ListByClient(ctx context.Context, clientID uint64) ([]model.Sale, error) {
    rows, err := r.db.QueryContext(ctx,
        "SELECT "+saleCols+" FROM sales WHERE client_id=? ORDER BY fecha DESC", clientID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := []model.Sale{}
    for rows.Next() {
        s, err := scanSale(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, s)
    }
    return out, rows.Err()
}
