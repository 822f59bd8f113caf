package schedule

import (
    "context"
    "fmt"
    "time"
)

// ValidationError is a user-facing booking rejection.  Handlers translate
// it into a 400 response carrying the message verbatim; any other error
// from the engine is a persistence failure.
type ValidationError struct {
    Message string
}

func (e *ValidationError) Error() string { return e.Message }

// BookingRequest carries the fields the engine validates when an
// appointment is created or rescheduled.
type BookingRequest struct {
    PetID      uint64    // pet the appointment is for (required)
    VetID      uint64    // assigned vet, zero when unassigned
    At         time.Time // scheduled timestamp (required)
    EsUrgencia bool      // urgency override for Sundays/holidays
    ExcludeID  uint64    // appointment under edit, zero on creation
}

// ValidateBooking runs every booking rule in order: required fields, no
// past dates (calendar-day granularity), the special-date urgency policy
// and the vet conflict check.  It returns a *ValidationError when the
// request must be rejected, a plain error on persistence failure, and nil
// when the booking may proceed.  Nothing is written; the caller must keep
// the subsequent insert in the same transaction scope as its own re-check
// when strict serialization matters.
func (e *Engine) ValidateBooking(ctx context.Context, req BookingRequest) error {
    if req.PetID == 0 || req.At.IsZero() {
        return &ValidationError{Message: "Faltan datos obligatorios (Mascota o Fecha)."}
    }

    today := e.now().In(req.At.Location())
    ty, tm, td := today.Date()
    ay, am, ad := req.At.Date()
    if time.Date(ay, am, ad, 0, 0, 0, 0, req.At.Location()).
        Before(time.Date(ty, tm, td, 0, 0, 0, 0, req.At.Location())) {
        return &ValidationError{Message: "No se pueden agendar citas en fechas pasadas."}
    }

    if special, razon := e.cal.IsSpecial(req.At); special && !req.EsUrgencia {
        return &ValidationError{Message: fmt.Sprintf(
            "La fecha seleccionada %s. Debe marcar 'Es Urgencia' para continuar.", razon)}
    }

    conflict, msg, err := e.CheckConflict(ctx, req.VetID, req.At, req.ExcludeID)
    if err != nil {
        return err
    }
    if conflict {
        return &ValidationError{Message: msg}
    }
    return nil
}
