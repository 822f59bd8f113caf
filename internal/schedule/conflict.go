package schedule

import (
    "context"
    "fmt"
    "sort"
    "time"
)

// CheckConflict determines whether booking the vet at the candidate time
// would collide with another active appointment.  Appointments strictly
// inside the open interval (at-30m, at+30m) conflict; an appointment exactly
// 30 minutes away does not, so back-to-back slots remain bookable.  When a
// conflict is found the returned message names the occupied time.
//
// excludeID, when non-zero, removes the appointment under edit from the
// check so that a reschedule does not collide with itself.  A vetID of zero
// or a zero timestamp short-circuits to no conflict: unassigned appointments
// never block a schedule.
func (e *Engine) CheckConflict(ctx context.Context, vetID uint64, at time.Time, excludeID uint64) (bool, string, error) {
    if vetID == 0 || at.IsZero() {
        return false, "", nil
    }

    from := at.Add(-ConflictWindow)
    to := at.Add(ConflictWindow)
    others, err := e.src.ActiveInWindow(ctx, vetID, from, to, excludeID)
    if err != nil {
        return false, "", err
    }
    if len(others) == 0 {
        return false, "", nil
    }

    // Name the earliest colliding appointment for a deterministic message.
    sort.Slice(others, func(i, j int) bool {
        return others[i].FechaHora.Before(others[j].FechaHora)
    })
    msg := fmt.Sprintf("Conflicto: El veterinario ya tiene una cita a las %s",
        others[0].FechaHora.Format("15:04"))
    return true, msg, nil
}
