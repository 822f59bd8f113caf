package schedule

import "time"

// CalendarPolicy decides whether a calendar date requires the urgency flag
// to accept bookings.  Implementations must be safe for concurrent use.
// The reason string is user-facing and completes the sentence
// "La fecha seleccionada <razon>".
type CalendarPolicy interface {
    IsSpecial(date time.Time) (bool, string)
}

// ChileanCalendar marks Sundays and Chilean public holidays as special.
// The holiday list covers 2024 and 2025.
type ChileanCalendar struct{}

// chileanHolidays holds the fixed national holidays keyed by ISO date.
var chileanHolidays = map[string]struct{}{
    // 2024
    "2024-01-01": {}, "2024-03-29": {}, "2024-03-30": {}, "2024-05-01": {},
    "2024-05-21": {}, "2024-06-09": {}, "2024-06-20": {}, "2024-07-16": {},
    "2024-08-15": {}, "2024-09-18": {}, "2024-09-19": {}, "2024-09-20": {},
    "2024-10-12": {}, "2024-10-27": {}, "2024-10-31": {}, "2024-11-01": {},
    "2024-12-08": {}, "2024-12-25": {},
    // 2025
    "2025-01-01": {}, "2025-04-18": {}, "2025-04-19": {}, "2025-05-01": {},
    "2025-05-21": {}, "2025-06-20": {}, "2025-06-29": {}, "2025-07-16": {},
    "2025-08-15": {}, "2025-09-18": {}, "2025-09-19": {}, "2025-10-12": {},
    "2025-10-31": {}, "2025-11-01": {}, "2025-12-08": {}, "2025-12-25": {},
}

// IsSpecial reports Sundays first, then holidays.  Dates outside the listed
// years are only restricted when they fall on a Sunday.
func (ChileanCalendar) IsSpecial(date time.Time) (bool, string) {
    if date.Weekday() == time.Sunday {
        return true, "Es Domingo"
    }
    if _, ok := chileanHolidays[date.Format("2006-01-02")]; ok {
        return true, "Es Feriado"
    }
    return false, ""
}
