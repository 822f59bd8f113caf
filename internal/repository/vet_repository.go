package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/pochitasw/vetclinic/internal/model"
)

// VetRepo provides access to the 'veterinarians' table.  Vets are staff
// records; the optional user link is what lets a vet log in and see
// their own agenda.
type VetRepo struct{ DB *sql.DB }

// NewVetRepo returns a new VetRepo bound to the given database.
func NewVetRepo(db *sql.DB) *VetRepo { return &VetRepo{DB: db} }

const vetCols = "id, user_id, rut, nombre, especialidad, telefono"

// Create inserts a veterinarian and populates the generated ID.
func (r *VetRepo) Create(ctx context.Context, v *model.Veterinarian) error {
    if v.Especialidad == "" {
        v.Especialidad = "General"
    }
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO veterinarians (user_id, rut, nombre, especialidad, telefono) VALUES (?,?,?,?,?)",
        v.UserID, v.RUT, v.Nombre, v.Especialidad, v.Telefono)
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
    v.ID = uint64(id)
    return nil
}

// GetByID fetches a veterinarian by primary key.
func (r *VetRepo) GetByID(ctx context.Context, id uint64) (model.Veterinarian, error) {
    return r.get(ctx, "SELECT "+vetCols+" FROM veterinarians WHERE id=? LIMIT 1", id)
}

// GetByUserID fetches the veterinarian record linked to a user account.
func (r *VetRepo) GetByUserID(ctx context.Context, userID uint64) (model.Veterinarian, error) {
    return r.get(ctx, "SELECT "+vetCols+" FROM veterinarians WHERE user_id=? LIMIT 1", userID)
}

func (r *VetRepo) get(ctx context.Context, query string, arg interface{}) (model.Veterinarian, error) {
    var (
        v      model.Veterinarian
        userID sql.NullInt64
    )
    err := r.DB.QueryRowContext(ctx, query, arg).Scan(
        &v.ID, &userID, &v.RUT, &v.Nombre, &v.Especialidad, &v.Telefono)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Veterinarian{}, ErrNotFound
    }
    if err != nil {
        return model.Veterinarian{}, err
    }
    if userID.Valid {
        uid := uint64(userID.Int64)
        v.UserID = &uid
    }
    return v, nil
}

// List returns every veterinarian ordered by name.  The availability grid
// and the booking form both present this list.
func (r *VetRepo) List(ctx context.Context) ([]model.Veterinarian, error) {
    rows, err := r.DB.QueryContext(ctx, "SELECT "+vetCols+" FROM veterinarians ORDER BY nombre")
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := []model.Veterinarian{}
    for rows.Next() {
        var (
            v      model.Veterinarian
            userID sql.NullInt64
        )
        if err := rows.Scan(&v.ID, &userID, &v.RUT, &v.Nombre, &v.Especialidad, &v.Telefono); err != nil {
            return nil, err
        }
        if userID.Valid {
            uid := uint64(userID.Int64)
            v.UserID = &uid
        }
        out = append(out, v)
    }
    return out, rows.Err()
}
