package schedule

import (
    "testing"

    "github.com/pochitasw/vetclinic/internal/model"
)

func TestCanTransitionAppointment(t *testing.T) {
    allowed := []struct{ from, to model.AppointmentStatus }{
        {model.StatusScheduled, model.StatusConfirmed},
        {model.StatusConfirmed, model.StatusScheduled},
        {model.StatusScheduled, model.StatusCompleted},
        {model.StatusScheduled, model.StatusCancelled},
        {model.StatusScheduled, model.StatusNoShow},
        {model.StatusConfirmed, model.StatusCompleted},
        {model.StatusConfirmed, model.StatusCancelled},
        {model.StatusConfirmed, model.StatusNoShow},
    }
    for _, c := range allowed {
        if !CanTransitionAppointment(c.from, c.to) {
            t.Errorf("%s -> %s should be allowed", c.from, c.to)
        }
    }

    denied := []struct{ from, to model.AppointmentStatus }{
        {model.StatusCompleted, model.StatusScheduled},
        {model.StatusCancelled, model.StatusScheduled},
        {model.StatusNoShow, model.StatusConfirmed},
        {model.StatusCancelled, model.StatusCompleted},
        {model.StatusScheduled, model.StatusScheduled},
    }
    for _, c := range denied {
        if CanTransitionAppointment(c.from, c.to) {
            t.Errorf("%s -> %s must be rejected", c.from, c.to)
        }
    }
}

func TestCanTransitionWait(t *testing.T) {
    allowed := []struct{ from, to model.WaitStatus }{
        {model.WaitWaiting, model.WaitInService},
        {model.WaitWaiting, model.WaitCancelled},
        {model.WaitInService, model.WaitServed},
        {model.WaitInService, model.WaitCancelled},
        {model.WaitLegacyPending, model.WaitLegacyContacted},
        {model.WaitLegacyPending, model.WaitLegacyClosed},
        {model.WaitLegacyContacted, model.WaitLegacyClosed},
    }
    for _, c := range allowed {
        if !CanTransitionWait(c.from, c.to) {
            t.Errorf("%s -> %s should be allowed", c.from, c.to)
        }
    }

    denied := []struct{ from, to model.WaitStatus }{
        {model.WaitServed, model.WaitWaiting},
        {model.WaitCancelled, model.WaitWaiting},
        {model.WaitInService, model.WaitWaiting},
        {model.WaitServed, model.WaitCancelled},
        {model.WaitWaiting, model.WaitServed}, // must pass through EN_ATENCION
        {model.WaitLegacyClosed, model.WaitLegacyPending},
    }
    for _, c := range denied {
        if CanTransitionWait(c.from, c.to) {
            t.Errorf("%s -> %s must be rejected", c.from, c.to)
        }
    }
}
