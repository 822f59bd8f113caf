package model

import "time"

// Visit represents a row of the `visits` table: the medical record written
// by the veterinarian when an appointment is carried out.  Each appointment
// has at most one visit, and an appointment can only reach the REALIZADA
// state once its visit exists.
//
// Fields:
//  ID                 – primary key identifier.
//  AppointmentID      – appointment the visit belongs to (unique).
//  Fecha              – when the visit was recorded.
//  Diagnostico        – diagnosis (required).
//  Tratamiento        – prescribed treatment (required).
//  Medicamentos       – prescribed medication (may be empty).
//  CostoEstimado      – estimated cost in CLP (no decimals).
//  RequiereOperacion  – whether follow-up surgery is required.
type Visit struct {
    ID                uint64    // visits.id
    AppointmentID     uint64    // visits.appointment_id
    Fecha             time.Time // visits.fecha
    Diagnostico       string    // visits.diagnostico
    Tratamiento       string    // visits.tratamiento
    Medicamentos      string    // visits.medicamentos
    CostoEstimado     int64     // visits.costo_estimado (CLP)
    RequiereOperacion bool      // visits.requiere_operacion
}
