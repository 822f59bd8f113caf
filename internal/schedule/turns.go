package schedule

import (
    "time"

    "github.com/pochitasw/vetclinic/internal/model"
)

// NextTurn computes the turn number for a new walk-in entry given the
// maximum turn already assigned on the same calendar day (zero when the day
// is empty).  Numbering is gapless from 1 in creation order.  The caller
// must read the maximum and insert the entry inside one transaction with
// the day's rows locked, otherwise two simultaneous walk-ins can draw the
// same number.
func NextTurn(maxExisting int) int {
    if maxExisting < 0 {
        maxExisting = 0
    }
    return maxExisting + 1
}

// DayBounds returns the half-open interval [start, end) covering the
// calendar day of t in t's location.  Used to scope turn-number queries and
// the daily queue listing.
func DayBounds(t time.Time) (time.Time, time.Time) {
    y, m, d := t.Date()
    start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
    return start, start.AddDate(0, 0, 1)
}

// QueueLess orders the walk-in queue for display: turn number ascending,
// ties broken by request time ascending.
func QueueLess(a, b model.WaitingEntry) bool {
    if a.TurnNumber != b.TurnNumber {
        return a.TurnNumber < b.TurnNumber
    }
    return a.RequestedAt.Before(b.RequestedAt)
}
