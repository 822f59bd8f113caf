package model

import "time"

// WaitStatus is the lifecycle state of a walk-in queue entry, stored in
// `waiting_entries.estado`.
type WaitStatus string

// Walk-in queue states.  The legacy states predate the turn-number queue
// (the waiting list used to be a call-back list); they are still accepted
// when reading old rows but are never written for new entries.
const (
    WaitWaiting   WaitStatus = "ESPERANDO"
    WaitInService WaitStatus = "EN_ATENCION"
    WaitServed    WaitStatus = "ATENDIDO"
    WaitCancelled WaitStatus = "CANCELADO"

    // Legacy call-back list states.
    WaitLegacyPending   WaitStatus = "PENDIENTE"
    WaitLegacyContacted WaitStatus = "CONTACTADO"
    WaitLegacyClosed    WaitStatus = "CERRADO"
)

// WaitPriority orders urgent walk-ins ahead of normal ones on display.
type WaitPriority string

// Priorities for walk-in entries.
const (
    PriorityNormal WaitPriority = "NORMAL"
    PriorityUrgent WaitPriority = "URGENTE"
)

// WaitingEntry represents a row of the `waiting_entries` table: a client who
// arrived without a booked appointment and queues for same-day service.  The
// turn number is assigned exactly once when the entry is created (max of the
// day plus one) and is never recomputed.
//
// Fields:
//  ID               – primary key identifier.
//  ClientID         – client who queued.
//  PetID            – pet to be seen (nullable when registered in a hurry).
//  RequestedAt      – when the client joined the queue.
//  Estado           – queue state (see WaitStatus).
//  Priority         – NORMAL or URGENTE.
//  TurnNumber       – sequential position within the calendar day.
//  VetID            – veterinarian serving the entry (nullable until service).
//  ServiceStartedAt – when service began (nullable).
//  Preferencia      – free-form preference note (doctor, time of day).
type WaitingEntry struct {
    ID               uint64       // waiting_entries.id
    ClientID         uint64       // waiting_entries.client_id
    PetID            *uint64      // waiting_entries.pet_id (nullable)
    RequestedAt      time.Time    // waiting_entries.requested_at
    Estado           WaitStatus   // waiting_entries.estado
    Priority         WaitPriority // waiting_entries.priority
    TurnNumber       int          // waiting_entries.turn_number
    VetID            *uint64      // waiting_entries.vet_id (nullable)
    ServiceStartedAt *time.Time   // waiting_entries.service_started_at (nullable)
    Preferencia      string       // waiting_entries.preferencia
}
