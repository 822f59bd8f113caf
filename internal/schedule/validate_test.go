package schedule

import (
    "context"
    "errors"
    "strings"
    "testing"
    "time"

    "github.com/pochitasw/vetclinic/internal/model"
)

func fixedClock(t time.Time) func() time.Time {
    return func() time.Time { return t }
}

// Monday 2025-12-01 09:00 UTC as "now" keeps the test dates stable.
var testNow = time.Date(2025, time.December, 1, 9, 0, 0, 0, time.UTC)

func validationMessage(t *testing.T, err error) string {
    t.Helper()
    var verr *ValidationError
    if !errors.As(err, &verr) {
        t.Fatalf("expected *ValidationError, got %v", err)
    }
    return verr.Message
}

func TestValidateBooking_MissingFields(t *testing.T) {
    e := newTestEngine(&fakeSource{}).WithClock(fixedClock(testNow))

    err := e.ValidateBooking(context.Background(), BookingRequest{VetID: 1, At: at(10, 0)})
    if msg := validationMessage(t, err); !strings.Contains(msg, "obligatorios") {
        t.Errorf("missing pet should report mandatory fields, got %q", msg)
    }

    err = e.ValidateBooking(context.Background(), BookingRequest{PetID: 1, VetID: 1})
    if msg := validationMessage(t, err); !strings.Contains(msg, "obligatorios") {
        t.Errorf("missing date should report mandatory fields, got %q", msg)
    }
}

func TestValidateBooking_PastDateRejected(t *testing.T) {
    e := newTestEngine(&fakeSource{}).WithClock(fixedClock(testNow))

    err := e.ValidateBooking(context.Background(), BookingRequest{
        PetID: 1, VetID: 1,
        At: time.Date(2025, time.November, 30, 10, 0, 0, 0, time.UTC),
    })
    if msg := validationMessage(t, err); !strings.Contains(msg, "fechas pasadas") {
        t.Errorf("past booking should be rejected, got %q", msg)
    }

    // Earlier the same day is still allowed: the check uses calendar days.
    err = e.ValidateBooking(context.Background(), BookingRequest{
        PetID: 1, VetID: 1,
        At: time.Date(2025, time.December, 1, 8, 0, 0, 0, time.UTC),
    })
    if err != nil {
        t.Errorf("same-day booking must pass the past-date check, got %v", err)
    }
}

func TestValidateBooking_SpecialDateNeedsUrgency(t *testing.T) {
    e := newTestEngine(&fakeSource{}).WithClock(fixedClock(testNow))
    sunday := time.Date(2025, time.December, 7, 10, 0, 0, 0, time.UTC)

    err := e.ValidateBooking(context.Background(), BookingRequest{PetID: 1, VetID: 1, At: sunday})
    msg := validationMessage(t, err)
    if !strings.Contains(msg, "Es Domingo") || !strings.Contains(msg, "Es Urgencia") {
        t.Errorf("sunday without urgency should instruct to mark urgency, got %q", msg)
    }

    err = e.ValidateBooking(context.Background(), BookingRequest{
        PetID: 1, VetID: 1, At: sunday, EsUrgencia: true,
    })
    if err != nil {
        t.Errorf("urgency flag must override the special-date rejection, got %v", err)
    }

    holiday := time.Date(2025, time.December, 25, 10, 0, 0, 0, time.UTC)
    err = e.ValidateBooking(context.Background(), BookingRequest{PetID: 1, VetID: 1, At: holiday})
    if msg := validationMessage(t, err); !strings.Contains(msg, "Es Feriado") {
        t.Errorf("holiday without urgency should be rejected, got %q", msg)
    }
}

func TestValidateBooking_ConflictRejected(t *testing.T) {
    src := &fakeSource{appts: []model.Appointment{
        appt(1, 1, time.Date(2025, time.December, 2, 10, 0, 0, 0, time.UTC), model.StatusScheduled),
    }}
    e := newTestEngine(src).WithClock(fixedClock(testNow))

    err := e.ValidateBooking(context.Background(), BookingRequest{
        PetID: 1, VetID: 1,
        At: time.Date(2025, time.December, 2, 10, 0, 0, 0, time.UTC),
    })
    if msg := validationMessage(t, err); !strings.Contains(msg, "Conflicto") {
        t.Errorf("occupied slot should be rejected as a conflict, got %q", msg)
    }

    // Excluding the appointment under edit clears the conflict.
    err = e.ValidateBooking(context.Background(), BookingRequest{
        PetID: 1, VetID: 1,
        At:        time.Date(2025, time.December, 2, 10, 0, 0, 0, time.UTC),
        ExcludeID: 1,
    })
    if err != nil {
        t.Errorf("reschedule onto own slot must pass, got %v", err)
    }
}

func TestValidateBooking_SourceErrorIsNotValidation(t *testing.T) {
    boom := errors.New("db down")
    e := newTestEngine(&fakeSource{err: boom}).WithClock(fixedClock(testNow))

    err := e.ValidateBooking(context.Background(), BookingRequest{
        PetID: 1, VetID: 1,
        At: time.Date(2025, time.December, 2, 10, 0, 0, 0, time.UTC),
    })
    var verr *ValidationError
    if errors.As(err, &verr) {
        t.Fatal("persistence failure must not surface as a validation error")
    }
    if !errors.Is(err, boom) {
        t.Errorf("expected the source error, got %v", err)
    }
}
