package schedule

import (
    "testing"
    "time"
)

func day(y int, m time.Month, d int) time.Time {
    return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestChileanCalendar_IsSpecial(t *testing.T) {
    cases := []struct {
        name    string
        date    time.Time
        special bool
        reason  string
    }{
        {"christmas 2025", day(2025, time.December, 25), true, "Es Feriado"},
        {"inmaculada concepcion 2025", day(2025, time.December, 8), true, "Es Feriado"},
        {"plain monday", day(2025, time.December, 1), false, ""},
        {"sunday", day(2025, time.December, 7), true, "Es Domingo"},
        {"fiestas patrias 2024", day(2024, time.September, 18), true, "Es Feriado"},
        {"new year 2024", day(2024, time.January, 1), true, "Es Feriado"},
        {"plain saturday", day(2025, time.December, 6), false, ""},
        // Outside the listed years only Sundays restrict bookings.
        {"holiday-shaped date in 2026", day(2026, time.December, 25), false, ""},
        {"sunday in 2026", day(2026, time.January, 4), true, "Es Domingo"},
    }

    cal := ChileanCalendar{}
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            special, reason := cal.IsSpecial(tc.date)
            if special != tc.special || reason != tc.reason {
                t.Errorf("IsSpecial(%s) = (%v, %q), want (%v, %q)",
                    tc.date.Format("2006-01-02"), special, reason, tc.special, tc.reason)
            }
        })
    }
}

func TestChileanCalendar_SundayWinsOverHoliday(t *testing.T) {
    // 2024-10-27 is both a Sunday and a listed holiday; the Sunday reason
    // is reported because the weekday check runs first.
    special, reason := ChileanCalendar{}.IsSpecial(day(2024, time.October, 27))
    if !special || reason != "Es Domingo" {
        t.Errorf("got (%v, %q), want (true, \"Es Domingo\")", special, reason)
    }
}
