// Package schedule implements the clinic's scheduling rules: time-slot
// conflict detection for veterinarians, the Sunday/holiday urgency policy,
// the day-partitioned availability grid and walk-in turn numbering.  The
// package holds no state of its own; appointments are read through the
// AppointmentSource collaborator and all writes stay in the repository
// layer, which must wrap check-then-create sequences in a transaction.
package schedule

import (
    "context"
    "time"

    "github.com/pochitasw/vetclinic/internal/model"
)

// Scheduling constants.  Appointments are assumed to last SlotMinutes; the
// clinic takes bookings between OpenHour and CloseHour.
const (
    SlotMinutes = 30 // length of one scheduling block
    OpenHour    = 9  // first bookable block starts at 09:00
    CloseHour   = 20 // no block starts at or after 20:00
)

// ConflictWindow is the half-open interval checked around a candidate
// timestamp.  Two appointments for the same vet must be at least this far
// apart; exactly ConflictWindow apart is allowed (back-to-back booking).
const ConflictWindow = SlotMinutes * time.Minute

// AppointmentSource is the persistence collaborator the engine reads
// appointments through.  Both methods must only return appointments whose
// status is active (AGENDADA or CONFIRMADA).
type AppointmentSource interface {
    // ActiveInWindow returns the vet's active appointments strictly inside
    // the open interval (from, to), excluding the appointment with
    // excludeID when it is non-zero.
    ActiveInWindow(ctx context.Context, vetID uint64, from, to time.Time, excludeID uint64) ([]model.Appointment, error)

    // ActiveBetween returns active appointments with from <= fecha_hora < to.
    // A vetID of zero means all veterinarians.
    ActiveBetween(ctx context.Context, vetID uint64, from, to time.Time) ([]model.Appointment, error)
}

// Engine evaluates scheduling rules.  It is safe for concurrent use; every
// call reads a fresh snapshot from the source and results may be stale the
// moment they are returned.
type Engine struct {
    src AppointmentSource
    cal CalendarPolicy
    now func() time.Time
}

// NewEngine builds an Engine reading appointments from src and deciding
// special dates through cal.  A nil cal falls back to the Chilean calendar.
func NewEngine(src AppointmentSource, cal CalendarPolicy) *Engine {
    if cal == nil {
        cal = ChileanCalendar{}
    }
    return &Engine{src: src, cal: cal, now: time.Now}
}

// WithClock replaces the engine's clock.  Used by tests to pin "today".
func (e *Engine) WithClock(now func() time.Time) *Engine {
    e.now = now
    return e
}

// SpecialDate reports whether the date is a Sunday or a public holiday and,
// if so, the reason shown to the user.
func (e *Engine) SpecialDate(date time.Time) (bool, string) {
    return e.cal.IsSpecial(date)
}
