package model

import "time"

// Client represents a pet owner as stored in the `clients` table.  A client
// may or may not have a login account; walk-ins registered at the front desk
// start without one.  The RUT is unique and doubles as the username when an
// account exists.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – account of the client (nullable for desk-only records).
//  RUT       – Chilean national ID, normalised to XX.XXX.XXX-Y.
//  Nombre    – first name.
//  Apellido  – last name.
//  Telefono  – phone number, normalised to +56XXXXXXXXX.
//  Email     – contact email (may be empty).
//  Direccion – postal address (may be empty).
//  CreatedAt – timestamp of creation.
type Client struct {
    ID        uint64    // clients.id
    UserID    *uint64   // clients.user_id (nullable)
    RUT       string    // clients.rut
    Nombre    string    // clients.nombre
    Apellido  string    // clients.apellido
    Telefono  string    // clients.telefono
    Email     string    // clients.email
    Direccion string    // clients.direccion
    CreatedAt time.Time // clients.created_at
}

// Veterinarian represents a row of the `veterinarians` table.  Each vet may
// be linked to a VETERINARIO user account used to access their agenda.
//
// Fields:
//  ID           – primary key identifier.
//  UserID       – account of the veterinarian (nullable).
//  RUT          – Chilean national ID.
//  Nombre       – display name.
//  Especialidad – specialty, defaults to "General".
//  Telefono     – contact phone.
type Veterinarian struct {
    ID           uint64  // veterinarians.id
    UserID       *uint64 // veterinarians.user_id (nullable)
    RUT          string  // veterinarians.rut
    Nombre       string  // veterinarians.nombre
    Especialidad string  // veterinarians.especialidad
    Telefono     string  // veterinarians.telefono
}
