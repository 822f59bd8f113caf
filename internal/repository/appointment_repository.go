package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/pochitasw/vetclinic/internal/model"
)

// AppointmentRepo provides CRUD operations for appointments.  It also
// backs the conflict and availability queries the scheduling engine runs:
// ActiveInWindow and ActiveBetween scope rows to a vet and to the two
// statuses that block a slot (AGENDADA, CONFIRMADA).  All timestamps are
// stored in UTC.
type AppointmentRepo struct{ db *sql.DB }

// NewAppointmentRepo returns a new AppointmentRepo bound to the given database.
func NewAppointmentRepo(db *sql.DB) *AppointmentRepo { return &AppointmentRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions that
// span repositories (e.g. recording a visit and completing its appointment).
func (r *AppointmentRepo) DB() *sql.DB { return r.db }

const apptCols = `id, vet_id, pet_id, fecha_hora, tipo, motivo, estado, es_urgencia,
        cancelled_by, cancel_reason, cancelled_at, reschedule_reason, last_rescheduled_at,
        created_at, updated_at`

// Create inserts a new appointment and populates the generated ID plus the
// database-assigned timestamps.
func (r *AppointmentRepo) Create(ctx context.Context, a *model.Appointment) error {
    res, err := r.db.ExecContext(ctx,
        "INSERT INTO appointments (vet_id, pet_id, fecha_hora, tipo, motivo, estado, es_urgencia) VALUES (?,?,?,?,?,?,?)",
        a.VetID, a.PetID, a.FechaHora, string(a.Tipo), a.Motivo, string(a.Estado), a.EsUrgencia)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    a.ID = uint64(id)
    got, err := r.GetByID(ctx, a.ID)
    if err != nil {
        return err
    }
    *a = got
    return nil
}

// GetByID fetches an appointment by primary key.
func (r *AppointmentRepo) GetByID(ctx context.Context, id uint64) (model.Appointment, error) {
    row := r.db.QueryRowContext(ctx, "SELECT "+apptCols+" FROM appointments WHERE id=? LIMIT 1", id)
    a, err := scanAppointment(row)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Appointment{}, ErrNotFound
    }
    return a, err
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
    Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (model.Appointment, error) {
    var (
        a         model.Appointment
        vetID     sql.NullInt64
        tipo      string
        estado    string
        motivo    sql.NullString
        cBy, cWhy sql.NullString
        cAt       sql.NullTime
        resWhy    sql.NullString
        resAt     sql.NullTime
    )
    err := row.Scan(&a.ID, &vetID, &a.PetID, &a.FechaHora, &tipo, &motivo, &estado, &a.EsUrgencia,
        &cBy, &cWhy, &cAt, &resWhy, &resAt, &a.CreatedAt, &a.UpdatedAt)
    if err != nil {
        return model.Appointment{}, err
    }
    if vetID.Valid {
        v := uint64(vetID.Int64)
        a.VetID = &v
    }
    a.Tipo = model.AppointmentType(tipo)
    a.Estado = model.AppointmentStatus(estado)
    a.Motivo = motivo.String
    if cBy.Valid {
        s := cBy.String
        a.CancelledBy = &s
    }
    if cWhy.Valid {
        s := cWhy.String
        a.CancelReason = &s
    }
    if cAt.Valid {
        t := cAt.Time
        a.CancelledAt = &t
    }
    if resWhy.Valid {
        s := resWhy.String
        a.RescheduleReason = &s
    }
    if resAt.Valid {
        t := resAt.Time
        a.LastRescheduledAt = &t
    }
    return a, nil
}

func collectAppointments(rows *sql.Rows) ([]model.Appointment, error) {
    defer rows.Close()
    out := []model.Appointment{}
    for rows.Next() {
        a, err := scanAppointment(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, a)
    }
    return out, rows.Err()
}

// ActiveInWindow returns a vet's blocking appointments strictly inside the
// open interval (from, to).  The bounds themselves are excluded, which is
// what makes back-to-back half-hour bookings legal.  excludeID, when
// non-zero, skips the appointment being edited.
func (r *AppointmentRepo) ActiveInWindow(ctx context.Context, vetID uint64, from, to time.Time, excludeID uint64) ([]model.Appointment, error) {
    q := "SELECT " + apptCols + ` FROM appointments
        WHERE vet_id=? AND estado IN ('AGENDADA','CONFIRMADA') AND fecha_hora > ? AND fecha_hora < ?`
    args := []interface{}{vetID, from, to}
    if excludeID != 0 {
        q += " AND id <> ?"
        args = append(args, excludeID)
    }
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    return collectAppointments(rows)
}

// ActiveBetween returns blocking appointments in the half-open interval
// [from, to), ordered by time.  A vetID of zero drops the vet filter so
// the grid covers every veterinarian.  The availability grid consumes
// this in a single query per day.
func (r *AppointmentRepo) ActiveBetween(ctx context.Context, vetID uint64, from, to time.Time) ([]model.Appointment, error) {
    q, args := activeBetweenQuery(vetID, from, to)
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    return collectAppointments(rows)
}

// activeBetweenQuery builds the ActiveBetween statement.  Vet-less
// appointments store a NULL vet_id, so the unscoped grid must omit the
// predicate entirely rather than match against zero.
func activeBetweenQuery(vetID uint64, from, to time.Time) (string, []interface{}) {
    q := "SELECT " + apptCols + ` FROM appointments
        WHERE estado IN ('AGENDADA','CONFIRMADA') AND fecha_hora >= ? AND fecha_hora < ?`
    args := []interface{}{from, to}
    if vetID != 0 {
        q += " AND vet_id=?"
        args = append(args, vetID)
    }
    q += " ORDER BY fecha_hora"
    return q, args
}

// UpdateStatus sets the estado column.  Legality of the transition is the
// caller's concern; the repository only persists it.
func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id uint64, status model.AppointmentStatus) error {
    res, err := r.db.ExecContext(ctx, "UPDATE appointments SET estado=? WHERE id=?", string(status), id)
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

// UpdateStatusTx is UpdateStatus inside an existing transaction.  The visit
// flow uses it to mark the appointment REALIZADA atomically with the
// visit insert.
func (r *AppointmentRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status model.AppointmentStatus) error {
    res, err := tx.ExecContext(ctx, "UPDATE appointments SET estado=? WHERE id=?", string(status), id)
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

// rescheduleStmt never touches estado: a move keeps the appointment's
// lifecycle status.
const rescheduleStmt = "UPDATE appointments SET fecha_hora=?, vet_id=?, es_urgencia=?, reschedule_reason=?, last_rescheduled_at=NOW() WHERE id=?"

// Reschedule moves an appointment to a new datetime and vet, recording the
// reason and the moment of the change.  The status is left untouched: a
// CONFIRMADA appointment stays confirmed at its new slot.  A vetID of zero
// clears the assignment.
func (r *AppointmentRepo) Reschedule(ctx context.Context, id uint64, at time.Time, vetID uint64, esUrgencia bool, reason string) error {
    var vet interface{}
    if vetID != 0 {
        vet = vetID
    }
    res, err := r.db.ExecContext(ctx, rescheduleStmt, at, vet, esUrgencia, reason, id)
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

// Cancel marks the appointment CANCELADA and stores who cancelled it and
// why.  cancelledBy is the role of the actor ("CLIENTE", "RECEPCIONISTA",
// "VETERINARIO" or "ADMIN"), kept for the no-show reports.
func (r *AppointmentRepo) Cancel(ctx context.Context, id uint64, cancelledBy, reason string) error {
    res, err := r.db.ExecContext(ctx,
        "UPDATE appointments SET estado='CANCELADA', cancelled_by=?, cancel_reason=?, cancelled_at=NOW() WHERE id=?",
        cancelledBy, reason, id)
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

// ListByVetDay returns every appointment of a vet in [dayStart, dayEnd),
// regardless of status.  This is the vet's daily agenda view.
func (r *AppointmentRepo) ListByVetDay(ctx context.Context, vetID uint64, dayStart, dayEnd time.Time) ([]model.Appointment, error) {
    rows, err := r.db.QueryContext(ctx,
        "SELECT "+apptCols+" FROM appointments WHERE vet_id=? AND fecha_hora >= ? AND fecha_hora < ? ORDER BY fecha_hora",
        vetID, dayStart, dayEnd)
    if err != nil {
        return nil, err
    }
    return collectAppointments(rows)
}

// ListByPet returns a pet's appointment history, newest first.
func (r *AppointmentRepo) ListByPet(ctx context.Context, petID uint64) ([]model.Appointment, error) {
    rows, err := r.db.QueryContext(ctx,
        "SELECT "+apptCols+" FROM appointments WHERE pet_id=? ORDER BY fecha_hora DESC",
        petID)
    if err != nil {
        return nil, err
    }
    return collectAppointments(rows)
}

// ListByClient returns every appointment of every pet owned by the client,
// newest first.  The join keeps the query one round-trip.
func (r *AppointmentRepo) ListByClient(ctx context.Context, clientID uint64) ([]model.Appointment, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT a.id, a.vet_id, a.pet_id, a.fecha_hora, a.tipo, a.motivo, a.estado, a.es_urgencia,
            a.cancelled_by, a.cancel_reason, a.cancelled_at, a.reschedule_reason, a.last_rescheduled_at,
            a.created_at, a.updated_at
        FROM appointments a JOIN pets p ON p.id = a.pet_id
        WHERE p.client_id=? ORDER BY a.fecha_hora DESC`,
        clientID)
    if err != nil {
        return nil, err
    }
    return collectAppointments(rows)
}

// CalendarEntry is one row of the reception calendar feed: an active
// appointment joined with the names the calendar displays.
type CalendarEntry struct {
    ID        uint64
    FechaHora time.Time
    Tipo      model.AppointmentType
    Estado    model.AppointmentStatus
    Motivo    string
    VetID     *uint64
    PetName   string
    OwnerName string
    VetName   string
}

// CalendarRange returns the active appointments in [from, to) with pet,
// owner and vet names resolved in one query.
func (r *AppointmentRepo) CalendarRange(ctx context.Context, from, to time.Time) ([]CalendarEntry, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT a.id, a.fecha_hora, a.tipo, a.estado, a.motivo, a.vet_id,
            p.nombre, CONCAT(c.nombre, ' ', c.apellido), COALESCE(v.nombre, '')
        FROM appointments a
        JOIN pets p ON p.id = a.pet_id
        JOIN clients c ON c.id = p.client_id
        LEFT JOIN veterinarians v ON v.id = a.vet_id
        WHERE a.estado IN ('AGENDADA','CONFIRMADA') AND a.fecha_hora >= ? AND a.fecha_hora < ?
        ORDER BY a.fecha_hora`,
        from, to)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := []CalendarEntry{}
    for rows.Next() {
        var (
            e     CalendarEntry
            tipo  string
            state string
            vetID sql.NullInt64
        )
        if err := rows.Scan(&e.ID, &e.FechaHora, &tipo, &state, &e.Motivo, &vetID,
            &e.PetName, &e.OwnerName, &e.VetName); err != nil {
            return nil, err
        }
        e.Tipo = model.AppointmentType(tipo)
        e.Estado = model.AppointmentStatus(state)
        if vetID.Valid {
            id := uint64(vetID.Int64)
            e.VetID = &id
        }
        out = append(out, e)
    }
    return out, rows.Err()
}
