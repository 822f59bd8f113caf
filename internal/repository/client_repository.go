package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/pochitasw/vetclinic/internal/model"
)

// ClientRepo provides CRUD operations for clinic clients (pet owners).
// The RUT is the natural key: quick front-desk registration looks up by
// RUT before creating, and the column carries a UNIQUE constraint.
type ClientRepo struct{ DB *sql.DB }

// NewClientRepo returns a new ClientRepo bound to the given database.
func NewClientRepo(db *sql.DB) *ClientRepo { return &ClientRepo{DB: db} }

const clientCols = "id, user_id, rut, nombre, apellido, telefono, email, direccion, created_at"

// Create inserts a client and populates the generated ID.  A duplicate RUT
// maps to ErrRUTExists so handlers can answer 409 instead of 500.
func (r *ClientRepo) Create(ctx context.Context, c *model.Client) error {
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO clients (user_id, rut, nombre, apellido, telefono, email, direccion) VALUES (?,?,?,?,?,?,?)",
        c.UserID, c.RUT, c.Nombre, c.Apellido, c.Telefono, c.Email, c.Direccion)
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return ErrRUTExists
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    c.ID = uint64(id)
    return nil
}

// GetByID fetches a client by primary key.
func (r *ClientRepo) GetByID(ctx context.Context, id uint64) (model.Client, error) {
    return r.get(ctx, "SELECT "+clientCols+" FROM clients WHERE id=? LIMIT 1", id)
}

// GetByRUT fetches a client by formatted RUT.
func (r *ClientRepo) GetByRUT(ctx context.Context, rut string) (model.Client, error) {
    return r.get(ctx, "SELECT "+clientCols+" FROM clients WHERE rut=? LIMIT 1", rut)
}

// GetByUserID fetches the client profile linked to a user account.
func (r *ClientRepo) GetByUserID(ctx context.Context, userID uint64) (model.Client, error) {
    return r.get(ctx, "SELECT "+clientCols+" FROM clients WHERE user_id=? LIMIT 1", userID)
}

func (r *ClientRepo) get(ctx context.Context, query string, arg interface{}) (model.Client, error) {
    var (
        c      model.Client
        userID sql.NullInt64
        dir    sql.NullString
    )
    err := r.DB.QueryRowContext(ctx, query, arg).Scan(
        &c.ID, &userID, &c.RUT, &c.Nombre, &c.Apellido, &c.Telefono, &c.Email, &dir, &c.CreatedAt)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Client{}, ErrNotFound
    }
    if err != nil {
        return model.Client{}, err
    }
    if userID.Valid {
        uid := uint64(userID.Int64)
        c.UserID = &uid
    }
    c.Direccion = dir.String
    return c, nil
}

// Update rewrites the mutable contact fields of a client.  The RUT and the
// account link are fixed at creation and are not touched here.
func (r *ClientRepo) Update(ctx context.Context, c *model.Client) error {
    res, err := r.DB.ExecContext(ctx,
        "UPDATE clients SET nombre=?, apellido=?, telefono=?, email=?, direccion=? WHERE id=?",
        c.Nombre, c.Apellido, c.Telefono, c.Email, c.Direccion, c.ID)
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

// LinkUser attaches a login account to an existing client profile.  Used
// when a walk-in client registered at the desk later gets web access.
func (r *ClientRepo) LinkUser(ctx context.Context, clientID, userID uint64) error {
    _, err := r.DB.ExecContext(ctx, "UPDATE clients SET user_id=? WHERE id=?", userID, clientID)
    return err
}

// Search returns clients whose RUT, name or surname matches the query.
// The front desk uses this for the lookup box; results are capped so a
// one-letter query cannot pull the whole table.
func (r *ClientRepo) Search(ctx context.Context, q string, limit int) ([]model.Client, error) {
    if limit <= 0 || limit > 50 {
        limit = 20
    }
    like := "%" + strings.TrimSpace(q) + "%"
    rows, err := r.DB.QueryContext(ctx,
        "SELECT "+clientCols+" FROM clients WHERE rut LIKE ? OR nombre LIKE ? OR apellido LIKE ? ORDER BY apellido, nombre LIMIT ?",
        like, like, like, limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return scanClients(rows)
}

// List returns every client ordered by surname.  Intended for the admin
// backoffice; paginated listing is left to Search.
func (r *ClientRepo) List(ctx context.Context) ([]model.Client, error) {
    rows, err := r.DB.QueryContext(ctx, "SELECT "+clientCols+" FROM clients ORDER BY apellido, nombre")
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return scanClients(rows)
}

func scanClients(rows *sql.Rows) ([]model.Client, error) {
    out := []model.Client{}
    for rows.Next() {
        var (
            c      model.Client
            userID sql.NullInt64
            dir    sql.NullString
        )
        if err := rows.Scan(&c.ID, &userID, &c.RUT, &c.Nombre, &c.Apellido, &c.Telefono, &c.Email, &dir, &c.CreatedAt); err != nil {
            return nil, err
        }
        if userID.Valid {
            uid := uint64(userID.Int64)
            c.UserID = &uid
        }
        c.Direccion = dir.String
        out = append(out, c)
    }
    return out, rows.Err()
}
