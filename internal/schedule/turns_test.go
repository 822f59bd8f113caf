package schedule

import (
    "sort"
    "testing"
    "time"

    "github.com/pochitasw/vetclinic/internal/model"
)

func TestNextTurn(t *testing.T) {
    if got := NextTurn(0); got != 1 {
        t.Errorf("first entry of the day should get turn 1, got %d", got)
    }
    if got := NextTurn(5); got != 6 {
        t.Errorf("NextTurn(5) = %d, want 6", got)
    }
    if got := NextTurn(-3); got != 1 {
        t.Errorf("negative max should behave like an empty day, got %d", got)
    }
}

func TestNextTurn_GaplessSequence(t *testing.T) {
    // Simulate a day of serial registrations: numbering must be gapless
    // from 1 in creation order.
    max := 0
    for want := 1; want <= 10; want++ {
        got := NextTurn(max)
        if got != want {
            t.Fatalf("entry %d drew turn %d", want, got)
        }
        max = got
    }
}

func TestDayBounds(t *testing.T) {
    ts := time.Date(2025, time.December, 7, 18, 45, 12, 0, time.UTC)
    start, end := DayBounds(ts)

    if !start.Equal(time.Date(2025, time.December, 7, 0, 0, 0, 0, time.UTC)) {
        t.Errorf("start = %s", start)
    }
    if !end.Equal(time.Date(2025, time.December, 8, 0, 0, 0, 0, time.UTC)) {
        t.Errorf("end = %s", end)
    }
    // Midnight belongs to its own day.
    start, end = DayBounds(end)
    if start.Day() != 8 || end.Day() != 9 {
        t.Errorf("midnight should open a new day, got [%s, %s)", start, end)
    }
}

func TestQueueLess_Ordering(t *testing.T) {
    base := time.Date(2025, time.December, 7, 9, 0, 0, 0, time.UTC)
    entries := []model.WaitingEntry{
        {ID: 3, TurnNumber: 2, RequestedAt: base.Add(10 * time.Minute)},
        {ID: 1, TurnNumber: 1, RequestedAt: base},
        // Same turn number (should not happen, but ordering must stay
        // deterministic): earlier request wins.
        {ID: 4, TurnNumber: 2, RequestedAt: base.Add(5 * time.Minute)},
    }
    sort.Slice(entries, func(i, j int) bool { return QueueLess(entries[i], entries[j]) })

    got := []uint64{entries[0].ID, entries[1].ID, entries[2].ID}
    want := []uint64{1, 4, 3}
    for i := range want {
        if got[i] != want[i] {
            t.Fatalf("queue order = %v, want %v", got, want)
        }
    }
}
