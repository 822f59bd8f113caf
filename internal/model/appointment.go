package model

import "time"

// AppointmentStatus is the lifecycle state of an appointment as stored in
// the `appointments.estado` column.
type AppointmentStatus string

// Appointment states.  AGENDADA and CONFIRMADA count as active for conflict
// detection and availability; the remaining three are terminal.
const (
    StatusScheduled AppointmentStatus = "AGENDADA"
    StatusConfirmed AppointmentStatus = "CONFIRMADA"
    StatusCompleted AppointmentStatus = "REALIZADA"
    StatusCancelled AppointmentStatus = "CANCELADA"
    StatusNoShow    AppointmentStatus = "NO_ASISTE"
)

// Active reports whether the status occupies the vet's schedule.  Only
// active appointments participate in conflict checks and the availability
// grid.
func (s AppointmentStatus) Active() bool {
    return s == StatusScheduled || s == StatusConfirmed
}

// Terminal reports whether no further transition is allowed from s.
func (s AppointmentStatus) Terminal() bool {
    return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// AppointmentType categorises the reason for the visit, stored in
// `appointments.tipo`.
type AppointmentType string

// Appointment types offered by the clinic.
const (
    TypeGeneral     AppointmentType = "CONSULTA"
    TypeCheckup     AppointmentType = "CONTROL"
    TypeVaccination AppointmentType = "VACUNA"
    TypeSurgery     AppointmentType = "CIRUGIA"
    TypeUrgent      AppointmentType = "URGENCIA"
)

// ValidAppointmentType reports whether t is one of the known types.
func ValidAppointmentType(t AppointmentType) bool {
    switch t {
    case TypeGeneral, TypeCheckup, TypeVaccination, TypeSurgery, TypeUrgent:
        return true
    }
    return false
}

// Appointment represents a row of the `appointments` table.  A vet may be
// unassigned (walk-in conversions, online bookings without preference); such
// appointments never participate in conflict detection.
//
// Fields:
//  ID                – primary key identifier.
//  VetID             – assigned veterinarian (nullable).
//  PetID             – pet the appointment is for.
//  FechaHora         – scheduled timestamp (UTC).
//  Tipo              – appointment type.
//  Motivo            – reason given by the client.
//  Estado            – lifecycle status.
//  EsUrgencia        – urgency flag; required to book on Sundays/holidays.
//  CancelledBy       – role that cancelled the appointment (nullable).
//  CancelReason      – reason given on cancellation (nullable).
//  CancelledAt       – when the cancellation happened (nullable).
//  RescheduleReason  – reason given on the last reschedule (nullable).
//  LastRescheduledAt – when the appointment was last moved (nullable).
//  CreatedAt         – timestamp of creation.
//  UpdatedAt         – timestamp of last update.
type Appointment struct {
    ID                uint64            // appointments.id
    VetID             *uint64           // appointments.vet_id (nullable)
    PetID             uint64            // appointments.pet_id
    FechaHora         time.Time         // appointments.fecha_hora
    Tipo              AppointmentType   // appointments.tipo
    Motivo            string            // appointments.motivo
    Estado            AppointmentStatus // appointments.estado
    EsUrgencia        bool              // appointments.es_urgencia
    CancelledBy       *string           // appointments.cancelled_by (nullable)
    CancelReason      *string           // appointments.cancel_reason (nullable)
    CancelledAt       *time.Time        // appointments.cancelled_at (nullable)
    RescheduleReason  *string           // appointments.reschedule_reason (nullable)
    LastRescheduledAt *time.Time        // appointments.last_rescheduled_at (nullable)
    CreatedAt         time.Time         // appointments.created_at
    UpdatedAt         time.Time         // appointments.updated_at
}
