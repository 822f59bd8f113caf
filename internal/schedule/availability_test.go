package schedule

import (
    "context"
    "testing"
    "time"

    "github.com/pochitasw/vetclinic/internal/model"
)

func TestAvailability_EmptyDay(t *testing.T) {
    e := newTestEngine(&fakeSource{})

    blocks, err := e.Availability(context.Background(), day(2025, time.December, 7), 0)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if len(blocks) != 22 {
        t.Fatalf("expected 22 blocks for 09:00-20:00 at 30m, got %d", len(blocks))
    }
    if blocks[0].Hora != "09:00" || blocks[len(blocks)-1].Hora != "19:30" {
        t.Errorf("grid spans %s-%s, want 09:00-19:30", blocks[0].Hora, blocks[len(blocks)-1].Hora)
    }
    for _, b := range blocks {
        if !b.Available {
            t.Errorf("block %s should be available on an empty day", b.Hora)
        }
    }
}

func TestAvailability_MarksOccupiedBlocks(t *testing.T) {
    src := &fakeSource{appts: []model.Appointment{
        appt(1, 1, at(10, 0), model.StatusScheduled),
        // 11:45 falls inside the 11:30 block.
        appt(2, 1, at(11, 45), model.StatusConfirmed),
        // Cancelled appointments do not occupy anything.
        appt(3, 1, at(15, 0), model.StatusCancelled),
    }}
    e := newTestEngine(src)

    blocks, err := e.Availability(context.Background(), at(0, 0), 0)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }

    byHora := map[string]bool{}
    for _, b := range blocks {
        byHora[b.Hora] = b.Available
    }
    if byHora["10:00"] {
        t.Error("10:00 must be occupied")
    }
    if byHora["11:30"] {
        t.Error("11:30 must be occupied by the 11:45 appointment")
    }
    if !byHora["10:30"] || !byHora["15:00"] {
        t.Error("10:30 and 15:00 must remain available")
    }
}

func TestAvailability_VetScoped(t *testing.T) {
    src := &fakeSource{appts: []model.Appointment{
        appt(1, 2, at(10, 0), model.StatusScheduled),
    }}
    e := newTestEngine(src)

    // Scoped to vet 1 the grid ignores vet 2's appointment.
    blocks, err := e.Availability(context.Background(), at(0, 0), 1)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    for _, b := range blocks {
        if !b.Available {
            t.Errorf("block %s should be available for vet 1", b.Hora)
        }
    }

    // Unscoped, any vet's appointment occupies the block.
    blocks, err = e.Availability(context.Background(), at(0, 0), 0)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    for _, b := range blocks {
        if b.Hora == "10:00" && b.Available {
            t.Error("10:00 must be occupied when no vet filter is applied")
        }
    }
}

func TestAvailability_BlockTimestamps(t *testing.T) {
    e := newTestEngine(&fakeSource{})
    date := day(2025, time.December, 7)

    blocks, err := e.Availability(context.Background(), date, 0)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    want := time.Date(2025, time.December, 7, 9, 0, 0, 0, time.UTC)
    for i, b := range blocks {
        if !b.DateTime.Equal(want) {
            t.Fatalf("block %d starts at %s, want %s", i, b.DateTime, want)
        }
        want = want.Add(30 * time.Minute)
    }
}
