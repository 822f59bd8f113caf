package schedule

import "github.com/pochitasw/vetclinic/internal/model"

// CanTransitionAppointment reports whether an appointment may move from one
// status to another.  AGENDADA and CONFIRMADA flip freely between each
// other and either may close as REALIZADA, CANCELADA or NO_ASISTE; the
// three closed states are terminal.  Rescheduling is not a transition: it
// keeps the status and only moves the timestamp.
func CanTransitionAppointment(from, to model.AppointmentStatus) bool {
    if from == to {
        return false
    }
    switch from {
    case model.StatusScheduled, model.StatusConfirmed:
        switch to {
        case model.StatusScheduled, model.StatusConfirmed,
            model.StatusCompleted, model.StatusCancelled, model.StatusNoShow:
            return true
        }
    }
    return false
}

// CanTransitionWait reports whether a walk-in entry may move between queue
// states.  The live queue runs ESPERANDO → EN_ATENCION → ATENDIDO, with
// cancellation allowed from either non-terminal state.  Legacy call-back
// rows may still advance PENDIENTE → CONTACTADO → CERRADO; nothing ever
// returns to ESPERANDO.
func CanTransitionWait(from, to model.WaitStatus) bool {
    if from == to {
        return false
    }
    switch from {
    case model.WaitWaiting:
        return to == model.WaitInService || to == model.WaitCancelled
    case model.WaitInService:
        return to == model.WaitServed || to == model.WaitCancelled
    case model.WaitLegacyPending:
        return to == model.WaitLegacyContacted || to == model.WaitLegacyClosed
    case model.WaitLegacyContacted:
        return to == model.WaitLegacyClosed
    }
    return false
}
