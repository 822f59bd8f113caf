package repository

import (
    "strings"
    "testing"
    "time"
)

// The grid query must match the in-memory filter the scheduling engine
// tests run against: vetID zero means every veterinarian, and vet-less
// appointments store a NULL vet_id, so the unscoped form may not mention
// the column at all.
func TestActiveBetweenQueryUnscoped(t *testing.T) {
    from := time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)
    to := from.Add(11 * time.Hour)

    q, args := activeBetweenQuery(0, from, to)
    if strings.Contains(q, "vet_id") {
        t.Errorf("unscoped query mentions vet_id:\n%s", q)
    }
    if len(args) != 2 {
        t.Fatalf("unscoped args = %d, want 2", len(args))
    }
    if args[0] != from || args[1] != to {
        t.Errorf("args = %v, want [%v %v]", args, from, to)
    }
}

func TestActiveBetweenQueryScoped(t *testing.T) {
    from := time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)
    to := from.Add(11 * time.Hour)

    q, args := activeBetweenQuery(7, from, to)
    if !strings.Contains(q, "vet_id=?") {
        t.Errorf("scoped query lacks vet_id predicate:\n%s", q)
    }
    if len(args) != 3 {
        t.Fatalf("scoped args = %d, want 3", len(args))
    }
    if args[2] != uint64(7) {
        t.Errorf("vet arg = %v, want 7", args[2])
    }
}

// Rescheduling moves the appointment; it never writes the estado column.
func TestRescheduleStmtKeepsStatus(t *testing.T) {
    if strings.Contains(rescheduleStmt, "estado") {
        t.Fatalf("reschedule statement writes estado:\n%s", rescheduleStmt)
    }
    for _, col := range []string{"fecha_hora", "vet_id", "es_urgencia", "reschedule_reason", "last_rescheduled_at"} {
        if !strings.Contains(rescheduleStmt, col) {
            t.Errorf("reschedule statement missing %s", col)
        }
    }
}
