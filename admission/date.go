/*
Package admission derives the date range a hostel package covers.

PURPOSE:
  A student picks an admission date and a package duration. Billing cycles run
  to month-end, so the package always ends on the last calendar day of the
  final month, whatever day the student moved in.

KEY CONCEPTS:
  - Date: A calendar day (UTC, no time of day)
  - Window: Admission date plus the derived up-to date
  - Billing cycle: A fixed 30-day cycle used for the informational
    "remaining days" figure; fee totals always bill whole months

USAGE:
  end := admission.ComputeAdmissionEnd("2024-01-15", 2) // "2024-02-29"
  days := admission.RemainingDaysInCycle("2024-03-15")  // 16

SEE ALSO:
  - window.go: ComputeAdmissionEnd, RemainingDaysInCycle
  - pricing/breakdown.go: The fee side of the same registration
*/
package admission

import (
	"strings"
	"time"
)

// ISOLayout is the wire format for dates.
const ISOLayout = "2006-01-02"

// =============================================================================
// DATE - Calendar day
// =============================================================================

type Date struct {
	Time time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current UTC calendar day.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ParseDate reads a YYYY-MM-DD date. Full RFC 3339 timestamps are accepted
// too (browsers sometimes send them); their UTC calendar day is used.
func ParseDate(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, false
	}
	if t, err := time.Parse(ISOLayout, s); err == nil {
		return NewDate(t.Year(), t.Month(), t.Day()), true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return NewDate(t.Year(), t.Month(), t.Day()), true
	}
	return Date{}, false
}

// Arithmetic. AddMonths keeps the day of month and lets it overflow into the
// following month (Jan 31 + 1 month = Mar 2, or Mar 3 outside leap years).
func (d Date) AddDays(n int) Date   { return Date{Time: d.Time.AddDate(0, 0, n)} }
func (d Date) AddMonths(n int) Date { return Date{Time: d.Time.AddDate(0, n, 0)} }

// Properties
func (d Date) Year() int         { return d.Time.Year() }
func (d Date) Month() time.Month { return d.Time.Month() }
func (d Date) Day() int          { return d.Time.Day() }

func (d Date) Before(other Date) bool { return d.Time.Before(other.Time) }

func (d Date) String() string { return d.Time.Format(ISOLayout) }

// EndOfMonth returns the last day of d's month.
func (d Date) EndOfMonth() Date { return EndOfMonth(d.Year(), d.Month()) }

func EndOfMonth(year int, month time.Month) Date {
	return Date{Time: time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)}
}

// DaysInMonth returns the number of days in d's month.
func (d Date) DaysInMonth() int { return d.EndOfMonth().Day() }
