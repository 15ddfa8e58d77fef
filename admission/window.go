package admission

// CycleDays is the length of the informational billing cycle.
const CycleDays = 30

// MaxMonths caps a package duration; longer requests end where a
// MaxMonths package would.
const MaxMonths = 1_000_000_000

// Window is the inclusive range a paid package covers.
type Window struct {
	AdmissionDate     string `json:"admission_date"`
	AdmissionUpToDate string `json:"admission_up_to_date"`
}

// IsEmpty reports whether no window could be derived.
func (w Window) IsEmpty() bool { return w.AdmissionUpToDate == "" }

// NewWindow derives the window for a start date and duration.
func NewWindow(startISO string, months int) Window {
	return Window{
		AdmissionDate:     startISO,
		AdmissionUpToDate: ComputeAdmissionEnd(startISO, months),
	}
}

// ComputeAdmissionEnd returns the last day covered by a package of the given
// number of months starting on startISO, as YYYY-MM-DD.
//
// A 1-month package ends at the end of the start month, a 2-month package at
// the end of the next month, and so on. Durations above MaxMonths count as
// MaxMonths. It returns "" when the start date is missing or unparseable, or
// when months is not positive.
func ComputeAdmissionEnd(startISO string, months int) string {
	if startISO == "" || months <= 0 {
		return ""
	}
	start, ok := ParseDate(startISO)
	if !ok {
		return ""
	}
	return start.AddMonths(min(months, MaxMonths) - 1).EndOfMonth().String()
}

// RemainingDaysInCycle returns how many days of a 30-day cycle remain from
// the admission day: 30 on the 1st, 30-(day-1) otherwise. The result is
// clamped into [1, CycleDays]; a missing or unparseable date counts as a
// full cycle.
//
// This is display information only. Fee totals bill whole months.
func RemainingDaysInCycle(admissionISO string) int {
	d, ok := ParseDate(admissionISO)
	if !ok {
		return CycleDays
	}
	remaining := CycleDays - (d.Day() - 1)
	if remaining < 1 {
		return 1
	}
	return remaining
}
