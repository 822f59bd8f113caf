package schedule

import (
    "context"
    "strings"
    "testing"
    "time"

    "github.com/pochitasw/vetclinic/internal/model"
)

// ---------- Helpers ----------

// fakeSource implements AppointmentSource over an in-memory slice, applying
// the same filters the repository applies in SQL.
type fakeSource struct {
    appts []model.Appointment
    err   error
}

func (f *fakeSource) ActiveInWindow(_ context.Context, vetID uint64, from, to time.Time, excludeID uint64) ([]model.Appointment, error) {
    if f.err != nil {
        return nil, f.err
    }
    var out []model.Appointment
    for _, a := range f.appts {
        if a.VetID == nil || *a.VetID != vetID || !a.Estado.Active() {
            continue
        }
        if excludeID != 0 && a.ID == excludeID {
            continue
        }
        if a.FechaHora.After(from) && a.FechaHora.Before(to) {
            out = append(out, a)
        }
    }
    return out, nil
}

func (f *fakeSource) ActiveBetween(_ context.Context, vetID uint64, from, to time.Time) ([]model.Appointment, error) {
    if f.err != nil {
        return nil, f.err
    }
    var out []model.Appointment
    for _, a := range f.appts {
        if !a.Estado.Active() {
            continue
        }
        if vetID != 0 && (a.VetID == nil || *a.VetID != vetID) {
            continue
        }
        if !a.FechaHora.Before(from) && a.FechaHora.Before(to) {
            out = append(out, a)
        }
    }
    return out, nil
}

func vetRef(id uint64) *uint64 { return &id }

func at(h, m int) time.Time {
    return time.Date(2025, 12, 7, h, m, 0, 0, time.UTC)
}

func appt(id, vet uint64, t time.Time, st model.AppointmentStatus) model.Appointment {
    return model.Appointment{ID: id, VetID: vetRef(vet), PetID: 1, FechaHora: t, Estado: st}
}

func newTestEngine(src *fakeSource) *Engine {
    return NewEngine(src, ChileanCalendar{})
}

// ---------- Tests ----------

func TestCheckConflict_SameTime(t *testing.T) {
    src := &fakeSource{appts: []model.Appointment{
        appt(1, 1, at(10, 0), model.StatusScheduled),
    }}
    e := newTestEngine(src)

    conflict, msg, err := e.CheckConflict(context.Background(), 1, at(10, 0), 0)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if !conflict {
        t.Fatal("expected a conflict for an occupied slot")
    }
    if !strings.Contains(msg, "10:00") {
        t.Errorf("message should name the occupied time, got %q", msg)
    }
}

func TestCheckConflict_EmptyCalendar(t *testing.T) {
    e := newTestEngine(&fakeSource{})

    conflict, msg, err := e.CheckConflict(context.Background(), 1, at(10, 0), 0)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if conflict || msg != "" {
        t.Errorf("empty calendar must not conflict, got (%v, %q)", conflict, msg)
    }
}

func TestCheckConflict_BoundaryExclusive(t *testing.T) {
    src := &fakeSource{appts: []model.Appointment{
        appt(1, 1, at(10, 0), model.StatusConfirmed),
    }}
    e := newTestEngine(src)

    // Exactly 30 minutes after: back-to-back is allowed.
    if conflict, _, _ := e.CheckConflict(context.Background(), 1, at(10, 30), 0); conflict {
        t.Error("candidate exactly 30m after an appointment must not conflict")
    }
    // Exactly 30 minutes before.
    if conflict, _, _ := e.CheckConflict(context.Background(), 1, at(9, 30), 0); conflict {
        t.Error("candidate exactly 30m before an appointment must not conflict")
    }
    // One minute inside the window on either side.
    if conflict, _, _ := e.CheckConflict(context.Background(), 1, at(10, 29), 0); !conflict {
        t.Error("candidate 29m after an appointment must conflict")
    }
    if conflict, _, _ := e.CheckConflict(context.Background(), 1, at(9, 31), 0); !conflict {
        t.Error("candidate 29m before an appointment must conflict")
    }
}

func TestCheckConflict_ExcludesAppointmentUnderEdit(t *testing.T) {
    src := &fakeSource{appts: []model.Appointment{
        appt(7, 1, at(10, 0), model.StatusScheduled),
    }}
    e := newTestEngine(src)

    // Rescheduling appointment 7 onto (near) its own slot is fine.
    if conflict, _, _ := e.CheckConflict(context.Background(), 1, at(10, 15), 7); conflict {
        t.Error("the appointment under edit must not conflict with itself")
    }
    // But another appointment still blocks it.
    if conflict, _, _ := e.CheckConflict(context.Background(), 1, at(10, 15), 99); !conflict {
        t.Error("other appointments must still conflict during a reschedule")
    }
}

func TestCheckConflict_UnassignedVetOrZeroTime(t *testing.T) {
    src := &fakeSource{appts: []model.Appointment{
        appt(1, 1, at(10, 0), model.StatusScheduled),
    }}
    e := newTestEngine(src)

    if conflict, _, _ := e.CheckConflict(context.Background(), 0, at(10, 0), 0); conflict {
        t.Error("vetID zero must short-circuit to no conflict")
    }
    if conflict, _, _ := e.CheckConflict(context.Background(), 1, time.Time{}, 0); conflict {
        t.Error("zero timestamp must short-circuit to no conflict")
    }
}

func TestCheckConflict_IgnoresInactiveStatuses(t *testing.T) {
    src := &fakeSource{appts: []model.Appointment{
        appt(1, 1, at(10, 0), model.StatusCancelled),
        appt(2, 1, at(10, 10), model.StatusCompleted),
        appt(3, 1, at(10, 20), model.StatusNoShow),
    }}
    e := newTestEngine(src)

    if conflict, _, _ := e.CheckConflict(context.Background(), 1, at(10, 0), 0); conflict {
        t.Error("cancelled/completed/no-show appointments must not block the slot")
    }
}

func TestCheckConflict_OtherVetDoesNotBlock(t *testing.T) {
    src := &fakeSource{appts: []model.Appointment{
        appt(1, 2, at(10, 0), model.StatusScheduled),
    }}
    e := newTestEngine(src)

    if conflict, _, _ := e.CheckConflict(context.Background(), 1, at(10, 0), 0); conflict {
        t.Error("appointments of another vet must not conflict")
    }
}

func TestCheckConflict_NamesEarliestCollision(t *testing.T) {
    src := &fakeSource{appts: []model.Appointment{
        appt(1, 1, at(10, 20), model.StatusScheduled),
        appt(2, 1, at(9, 45), model.StatusScheduled),
    }}
    e := newTestEngine(src)

    conflict, msg, err := e.CheckConflict(context.Background(), 1, at(10, 0), 0)
    if err != nil || !conflict {
        t.Fatalf("expected conflict, got (%v, %v)", conflict, err)
    }
    if !strings.Contains(msg, "09:45") {
        t.Errorf("message should name the earliest collision, got %q", msg)
    }
}
