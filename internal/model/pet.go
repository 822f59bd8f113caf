package model

import "time"

// Species and gender values accepted for pets.  The clinic only treats dogs
// and cats.
const (
    SpeciesDog = "Perro"
    SpeciesCat = "Gato"

    GenderMale   = "Macho"
    GenderFemale = "Hembra"
)

// Pet represents a row of the `pets` table.  Every pet belongs to exactly
// one client.
//
// Fields:
//  ID              – primary key identifier.
//  ClientID        – owner of the pet.
//  Nombre          – pet name.
//  Especie         – species (Perro or Gato).
//  Genero          – gender (Macho or Hembra).
//  Raza            – breed.
//  FechaNacimiento – date of birth, if known.
//  FechaRegistro   – date the pet was registered at the clinic.
//  Observaciones   – free-form notes (allergies, temperament, ...).
type Pet struct {
    ID              uint64     // pets.id
    ClientID        uint64     // pets.client_id
    Nombre          string     // pets.nombre
    Especie         string     // pets.especie
    Genero          string     // pets.genero
    Raza            string     // pets.raza
    FechaNacimiento *time.Time // pets.fecha_nacimiento (nullable)
    FechaRegistro   time.Time  // pets.fecha_registro
    Observaciones   string     // pets.observaciones
}

// ApproxAge returns the pet's age in whole years at the given reference
// time, or -1 when the date of birth is unknown.
func (p Pet) ApproxAge(now time.Time) int {
    if p.FechaNacimiento == nil {
        return -1
    }
    b := *p.FechaNacimiento
    years := now.Year() - b.Year()
    if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
        years--
    }
    return years
}
