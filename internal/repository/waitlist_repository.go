package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/pochitasw/vetclinic/internal/model"
    "github.com/pochitasw/vetclinic/internal/schedule"
)

// WaitlistRepo manages the walk-in queue.  Turn numbers are assigned once,
// inside a transaction that locks the day's rows, and are never recomputed
// afterwards: a cancelled turn leaves a gap on the board rather than
// renumbering everyone behind it.
type WaitlistRepo struct{ db *sql.DB }

// NewWaitlistRepo returns a new WaitlistRepo bound to the given database.
func NewWaitlistRepo(db *sql.DB) *WaitlistRepo { return &WaitlistRepo{db: db} }

const waitCols = "id, client_id, pet_id, requested_at, estado, priority, turn_number, vet_id, service_started_at, preferencia"

// Register assigns the next turn number for the entry's day and inserts
// the row, all in one transaction.  Two receptionists registering at the
// same moment serialize on the row lock, so turns come out gapless.
func (r *WaitlistRepo) Register(ctx context.Context, e *model.WaitingEntry) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    defer tx.Rollback()
    if err := r.RegisterTx(ctx, tx, e); err != nil {
        return err
    }
    return tx.Commit()
}

// RegisterTx performs the locked max-turn read and the insert within the
// caller's transaction.  RequestedAt must already be set; the day bounds
// are derived from it.
func (r *WaitlistRepo) RegisterTx(ctx context.Context, tx *sql.Tx, e *model.WaitingEntry) error {
    dayStart, dayEnd := schedule.DayBounds(e.RequestedAt)
    var maxTurn int
    err := tx.QueryRowContext(ctx,
        "SELECT COALESCE(MAX(turn_number),0) FROM waiting_entries WHERE requested_at >= ? AND requested_at < ? FOR UPDATE",
        dayStart, dayEnd).Scan(&maxTurn)
    if err != nil {
        return err
    }
    e.TurnNumber = schedule.NextTurn(maxTurn)
    if e.Estado == "" {
        e.Estado = model.WaitWaiting
    }
    if e.Priority == "" {
        e.Priority = model.PriorityNormal
    }
    res, err := tx.ExecContext(ctx,
        "INSERT INTO waiting_entries (client_id, pet_id, requested_at, estado, priority, turn_number, vet_id, preferencia) VALUES (?,?,?,?,?,?,?,?)",
        e.ClientID, e.PetID, e.RequestedAt, string(e.Estado), string(e.Priority), e.TurnNumber, e.VetID, e.Preferencia)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    e.ID = uint64(id)
    return nil
}

// GetByID fetches a waiting entry by primary key.
func (r *WaitlistRepo) GetByID(ctx context.Context, id uint64) (model.WaitingEntry, error) {
    row := r.db.QueryRowContext(ctx, "SELECT "+waitCols+" FROM waiting_entries WHERE id=? LIMIT 1", id)
    e, err := scanWaitingEntry(row)
    if errors.Is(err, sql.ErrNoRows) {
        return model.WaitingEntry{}, ErrNotFound
    }
    return e, err
}

func scanWaitingEntry(row rowScanner) (model.WaitingEntry, error) {
    var (
        e       model.WaitingEntry
        petID   sql.NullInt64
        estado  string
        prio    string
        vetID   sql.NullInt64
        started sql.NullTime
        pref    sql.NullString
    )
    err := row.Scan(&e.ID, &e.ClientID, &petID, &e.RequestedAt, &estado, &prio,
        &e.TurnNumber, &vetID, &started, &pref)
    if err != nil {
        return model.WaitingEntry{}, err
    }
    if petID.Valid {
        p := uint64(petID.Int64)
        e.PetID = &p
    }
    e.Estado = model.WaitStatus(estado)
    e.Priority = model.WaitPriority(prio)
    if vetID.Valid {
        v := uint64(vetID.Int64)
        e.VetID = &v
    }
    if started.Valid {
        t := started.Time
        e.ServiceStartedAt = &t
    }
    e.Preferencia = pref.String
    return e, nil
}

// Queue returns the day's entries ordered by turn number, then by arrival
// time for ties across legacy rows that predate turn numbering.
func (r *WaitlistRepo) Queue(ctx context.Context, day time.Time) ([]model.WaitingEntry, error) {
    dayStart, dayEnd := schedule.DayBounds(day)
    rows, err := r.db.QueryContext(ctx,
        "SELECT "+waitCols+" FROM waiting_entries WHERE requested_at >= ? AND requested_at < ? ORDER BY turn_number, requested_at",
        dayStart, dayEnd)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := []model.WaitingEntry{}
    for rows.Next() {
        e, err := scanWaitingEntry(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, e)
    }
    return out, rows.Err()
}

// SetStatus persists a status change.  Transition legality is decided by
// the caller before this runs.
func (r *WaitlistRepo) SetStatus(ctx context.Context, id uint64, status model.WaitStatus) error {
    res, err := r.db.ExecContext(ctx,
        "UPDATE waiting_entries SET estado=? WHERE id=?", string(status), id)
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

// StartService marks the entry EN_ATENCION, records which vet took it and
// stamps the moment service began.
func (r *WaitlistRepo) StartService(ctx context.Context, id, vetID uint64) error {
    res, err := r.db.ExecContext(ctx,
        "UPDATE waiting_entries SET estado=?, vet_id=?, service_started_at=NOW() WHERE id=?",
        string(model.WaitInService), vetID, id)
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
