package schedule

import (
    "context"
    "time"
)

// Block is one 30-minute cell of the availability grid.
type Block struct {
    Hora      string    `json:"time"`      // canonical start, "HH:MM"
    DateTime  time.Time `json:"datetime"`  // absolute start of the block
    Available bool      `json:"available"` // false when an active appointment falls inside
}

// Availability produces the day's grid of 30-minute blocks between 09:00
// and 20:00 (22 blocks).  A block is unavailable when any active
// appointment's timestamp falls within [start, start+30m), optionally
// scoped to one veterinarian (vetID zero means any vet).  The grid is a
// read-only snapshot; it is safe to call concurrently with bookings and may
// be stale immediately after being read.
func (e *Engine) Availability(ctx context.Context, date time.Time, vetID uint64) ([]Block, error) {
    loc := date.Location()
    open := time.Date(date.Year(), date.Month(), date.Day(), OpenHour, 0, 0, 0, loc)
    close := time.Date(date.Year(), date.Month(), date.Day(), CloseHour, 0, 0, 0, loc)

    appts, err := e.src.ActiveBetween(ctx, vetID, open, close)
    if err != nil {
        return nil, err
    }

    n := int(close.Sub(open) / (SlotMinutes * time.Minute))
    occupied := make([]bool, n)
    for _, a := range appts {
        idx := int(a.FechaHora.Sub(open) / (SlotMinutes * time.Minute))
        if idx >= 0 && idx < n {
            occupied[idx] = true
        }
    }

    blocks := make([]Block, 0, n)
    for i := 0; i < n; i++ {
        start := open.Add(time.Duration(i) * SlotMinutes * time.Minute)
        blocks = append(blocks, Block{
            Hora:      start.Format("15:04"),
            DateTime:  start,
            Available: !occupied[i],
        })
    }
    return blocks, nil
}
