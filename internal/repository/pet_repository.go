package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/pochitasw/vetclinic/internal/model"
)

// PetRepo provides CRUD operations for pets.  Every pet belongs to exactly
// one client; ownership checks for client-facing endpoints go through
// OwnedBy rather than loading the whole record.
type PetRepo struct{ DB *sql.DB }

// NewPetRepo returns a new PetRepo bound to the given database.
func NewPetRepo(db *sql.DB) *PetRepo { return &PetRepo{DB: db} }

const petCols = "id, client_id, nombre, especie, genero, raza, fecha_nacimiento, fecha_registro, observaciones"

// Create inserts a pet and populates the generated ID.  fecha_registro is
// set by the caller so the handler controls the clock.
func (r *PetRepo) Create(ctx context.Context, p *model.Pet) error {
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO pets (client_id, nombre, especie, genero, raza, fecha_nacimiento, fecha_registro, observaciones) VALUES (?,?,?,?,?,?,?,?)",
        p.ClientID, p.Nombre, p.Especie, p.Genero, p.Raza, p.FechaNacimiento, p.FechaRegistro, p.Observaciones)
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

// GetByID fetches a pet by primary key.
func (r *PetRepo) GetByID(ctx context.Context, id uint64) (model.Pet, error) {
    var (
        p   model.Pet
        dob sql.NullTime
        obs sql.NullString
    )
    err := r.DB.QueryRowContext(ctx,
        "SELECT "+petCols+" FROM pets WHERE id=? LIMIT 1", id).Scan(
        &p.ID, &p.ClientID, &p.Nombre, &p.Especie, &p.Genero, &p.Raza, &dob, &p.FechaRegistro, &obs)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Pet{}, ErrNotFound
    }
    if err != nil {
        return model.Pet{}, err
    }
    if dob.Valid {
        d := dob.Time
        p.FechaNacimiento = &d
    }
    p.Observaciones = obs.String
    return p, nil
}

// Update rewrites the editable fields of a pet.  The owning client never
// changes; transfers are handled by registering a new record.
func (r *PetRepo) Update(ctx context.Context, p *model.Pet) error {
    res, err := r.DB.ExecContext(ctx,
        "UPDATE pets SET nombre=?, especie=?, genero=?, raza=?, fecha_nacimiento=?, observaciones=? WHERE id=?",
        p.Nombre, p.Especie, p.Genero, p.Raza, p.FechaNacimiento, p.Observaciones, p.ID)
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

// ListByClient returns a client's pets ordered by name.
func (r *PetRepo) ListByClient(ctx context.Context, clientID uint64) ([]model.Pet, error) {
    rows, err := r.DB.QueryContext(ctx,
        "SELECT "+petCols+" FROM pets WHERE client_id=? ORDER BY nombre", clientID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := []model.Pet{}
    for rows.Next() {
        var (
            p   model.Pet
            dob sql.NullTime
            obs sql.NullString
        )
        if err := rows.Scan(&p.ID, &p.ClientID, &p.Nombre, &p.Especie, &p.Genero, &p.Raza, &dob, &p.FechaRegistro, &obs); err != nil {
            return nil, err
        }
        if dob.Valid {
            d := dob.Time
            p.FechaNacimiento = &d
        }
        p.Observaciones = obs.String
        out = append(out, p)
    }
    return out, rows.Err()
}

// OwnedBy reports whether the pet belongs to the given client.  Returns
// ErrNotFound when the pet does not exist at all.
func (r *PetRepo) OwnedBy(ctx context.Context, petID, clientID uint64) (bool, error) {
    var owner uint64
    err := r.DB.QueryRowContext(ctx, "SELECT client_id FROM pets WHERE id=? LIMIT 1", petID).Scan(&owner)
    if errors.Is(err, sql.ErrNoRows) {
        return false, ErrNotFound
    }
    if err != nil {
        return false, err
    }
    return owner == clientID, nil
}
