package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/pochitasw/vetclinic/internal/model"
)

// VisitRepo stores medical visit records.  Each appointment can produce at
// most one visit; the unique constraint on appointment_id enforces it and
// maps to ErrConflict here.
type VisitRepo struct{ db *sql.DB }

// NewVisitRepo returns a new VisitRepo bound to the given database.
func NewVisitRepo(db *sql.DB) *VisitRepo { return &VisitRepo{db: db} }

const visitCols = "id, appointment_id, fecha, diagnostico, tratamiento, medicamentos, costo_estimado, requiere_operacion"

// CreateTx inserts a visit within the caller's transaction and populates
// the generated ID.  The caller couples this with marking the appointment
// REALIZADA so both changes commit or neither does.
func (r *VisitRepo) CreateTx(ctx context.Context, tx *sql.Tx, v *model.Visit) error {
    res, err := tx.ExecContext(ctx,
        "INSERT INTO visits (appointment_id, fecha, diagnostico, tratamiento, medicamentos, costo_estimado, requiere_operacion) VALUES (?,?,?,?,?,?,?)",
        v.AppointmentID, v.Fecha, v.Diagnostico, v.Tratamiento, v.Medicamentos, v.CostoEstimado, v.RequiereOperacion)
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return ErrConflict
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

// GetByAppointment fetches the visit recorded against an appointment.
func (r *VisitRepo) GetByAppointment(ctx context.Context, appointmentID uint64) (model.Visit, error) {
    row := r.db.QueryRowContext(ctx,
        "SELECT "+visitCols+" FROM visits WHERE appointment_id=? LIMIT 1", appointmentID)
    v, err := scanVisit(row)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Visit{}, ErrNotFound
    }
    return v, err
}

func scanVisit(row rowScanner) (model.Visit, error) {
    var (
        v    model.Visit
        meds sql.NullString
    )
    err := row.Scan(&v.ID, &v.AppointmentID, &v.Fecha, &v.Diagnostico, &v.Tratamiento,
        &meds, &v.CostoEstimado, &v.RequiereOperacion)
    if err != nil {
        return model.Visit{}, err
    }
    v.Medicamentos = meds.String
    return v, nil
}

// ListByPet returns a pet's clinical history, newest visit first.  The
// join goes through appointments because visits do not reference pets
// directly.
func (r *VisitRepo) ListByPet(ctx context.Context, petID uint64) ([]model.Visit, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT v.id, v.appointment_id, v.fecha, v.diagnostico, v.tratamiento, v.medicamentos,
            v.costo_estimado, v.requiere_operacion
        FROM visits v JOIN appointments a ON a.id = v.appointment_id
        WHERE a.pet_id=? ORDER BY v.fecha DESC`,
        petID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := []model.Visit{}
    for rows.Next() {
        v, err := scanVisit(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, v)
    }
    return out, rows.Err()
}
