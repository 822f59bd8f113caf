package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/pochitasw/vetclinic/internal/model"
)

// ProductRepo provides CRUD operations for the point-of-sale catalog.
type ProductRepo struct{ db *sql.DB }

// NewProductRepo returns a new ProductRepo bound to the given database.
func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = "id, nombre, descripcion, precio, stock"

// Create inserts a product and populates the generated ID.
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) error {
    res, err := r.db.ExecContext(ctx,
        "INSERT INTO products (nombre, descripcion, precio, stock) VALUES (?,?,?,?)",
        p.Nombre, p.Descripcion, p.Precio, p.Stock)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    p.ID = uint64(id)
    return nil
}

// GetByID fetches a product by primary key.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (model.Product, error) {
    row := r.db.QueryRowContext(ctx, "SELECT "+productCols+" FROM products WHERE id=? LIMIT 1", id)
    p, err := scanProduct(row)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Product{}, ErrNotFound
    }
    return p, err
}

// GetForUpdateTx fetches a product with a row lock inside the caller's
// transaction.  The sale flow locks each line's product before checking
// stock so concurrent sales cannot both take the last unit.
func (r *ProductRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Product, error) {
    row := tx.QueryRowContext(ctx, "SELECT "+productCols+" FROM products WHERE id=? FOR UPDATE", id)
    p, err := scanProduct(row)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Product{}, ErrNotFound
    }
    return p, err
}

func scanProduct(row rowScanner) (model.Product, error) {
    var (
        p    model.Product
        desc sql.NullString
    )
    err := row.Scan(&p.ID, &p.Nombre, &desc, &p.Precio, &p.Stock)
    if err != nil {
        return model.Product{}, err
    }
    p.Descripcion = desc.String
    return p, nil
}

// Update rewrites the product's fields.
func (r *ProductRepo) Update(ctx context.Context, p *model.Product) error {
    res, err := r.db.ExecContext(ctx,
        "UPDATE products SET nombre=?, descripcion=?, precio=?, stock=? WHERE id=?",
        p.Nombre, p.Descripcion, p.Precio, p.Stock, p.ID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrNotFound
    }
    return nil
}

// DecrementStockTx subtracts qty units inside the caller's transaction.
// Zero rows affected means stock dropped below qty and the sale must
// abort with ErrInsufficientStock.
func (r *ProductRepo) DecrementStockTx(ctx context.Context, tx *sql.Tx, id uint64, qty int) error {
    res, err := tx.ExecContext(ctx,
        "UPDATE products SET stock = stock - ? WHERE id=? AND stock >= ?", qty, id, qty)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrInsufficientStock
    }
    return nil
}

// List returns the whole catalog ordered by name.
func (r *ProductRepo) List(ctx context.Context) ([]model.Product, error) {
    rows, err := r.db.QueryContext(ctx, "SELECT "+productCols+" FROM products ORDER BY nombre")
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := []model.Product{}
    for rows.Next() {
        p, err := scanProduct(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, p)
    }
    return out, rows.Err()
}
