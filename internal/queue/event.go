// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names used by the clinic.  Both are durable.
const (
    AppointmentBookedQueue    = "appointment.booked"
    AppointmentCancelledQueue = "appointment.cancelled"
)

// AppointmentBookedEvent is published when an appointment is created or
// rescheduled.  It carries enough information for downstream consumers
// (reminder senders, the audit log) without querying the primary database.
type AppointmentBookedEvent struct {
    EventID       string `json:"event_id"` // UUID, for consumer-side dedup
    AppointmentID uint64 `json:"appointment_id"`
    PetID         uint64 `json:"pet_id"`
    PetName       string `json:"pet_name"`
    ClientID      uint64 `json:"client_id"`
    ClientName    string `json:"client_name"`
    VetID         uint64 `json:"vet_id,omitempty"`
    VetName       string `json:"vet_name,omitempty"`
    FechaHora     string `json:"fecha_hora"`
    Tipo          string `json:"tipo"`
    EsUrgencia    bool   `json:"es_urgencia"`
    Rescheduled   bool   `json:"rescheduled"`
    BookedAt      string `json:"booked_at"`
}

// AppointmentCancelledEvent is published when an appointment is cancelled
// or marked as a no-show.
type AppointmentCancelledEvent struct {
    EventID       string `json:"event_id"`
    AppointmentID uint64 `json:"appointment_id"`
    PetID         uint64 `json:"pet_id"`
    ClientID      uint64 `json:"client_id"`
    FechaHora     string `json:"fecha_hora"`
    CancelledBy   string `json:"cancelled_by"` // role of the actor
    Reason        string `json:"reason,omitempty"`
    NoShow        bool   `json:"no_show"`
    CancelledAt   string `json:"cancelled_at"`
}
