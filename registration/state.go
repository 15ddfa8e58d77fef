/*
Package registration models the student registration form and its submission.

PURPOSE:
  The form is an immutable State value. Every user action is an Event, and
  Reduce(state, event) returns the next State. Fee and admission-window
  figures are never stored independently: they are derived from a State
  snapshot by the pricing and admission packages.

KEY CONCEPTS:
  - State:   Everything the form collects
  - Event:   One field change, toggle, photo action or reset
  - Reduce:  Pure state transition; also keeps admissionUpToDate in sync
  - Session: Concurrency-safe holder that notifies subscribers on change only
  - Desk:    Validate -> build payload -> submit -> archive receipt

INVARIANTS:
  - AdmissionUpToDate is derived state. Reduce overwrites it only when the
    freshly computed value differs from the stored one, so re-applying the
    same input produces no change notification.
  - Breakdown() is recomputed from scratch on every call.

SEE ALSO:
  - reducer.go: Events and Reduce
  - session.go: Session, subscriptions and the post-submit reset timer
  - validate.go: Submission validation
  - desk.go: Submission orchestration
*/
package registration

import (
	"github.com/youstel/registration-desk/admission"
	"github.com/youstel/registration-desk/pricing"
)

// Form defaults.
const (
	DefaultGender        = "female"
	DefaultBloodGroup    = "A+"
	DefaultCountry       = "India"
	DefaultAdvanceAmount = pricing.Amount(10000)
	MaxAdmissionMonths   = 12
)

// Address is the student's postal address.
type Address struct {
	Street  string
	City    string
	State   string
	Pincode string
	Country string
}

// State is one snapshot of the registration form.
type State struct {
	// Personal
	FirstName    string
	MiddleName   string
	LastName     string
	Email        string
	Phone        string
	DateOfBirth  string
	Gender       string
	BloodGroup   string
	Religion     string
	Caste        string
	AadharNumber string
	Address      Address

	// Academic
	Institute                string
	Department               string
	Semester                 int
	PreviousEducationDetails string

	// Guardian
	GuardianName       string
	GuardianLocalName  string
	MotherName         string
	FatherOccupation   string
	MotherOccupation   string
	GuardianPhone      string
	GuardianEmail      string
	MotherEmail        string
	MotherMobileNumber string
	FatherMobileNumber string
	GuardianLocalArea  string

	// Room
	PreferredRoomType string
	AdmissionDate     string
	AdmissionMonths   int
	AdmissionUpToDate string
	AdvanceAmount     pricing.Amount
	PayAdvance        bool

	// ProfilePhoto is an image data URL.
	ProfilePhoto string
}

// NewState returns an empty form with its defaults filled in.
func NewState() State {
	return State{
		Gender:            DefaultGender,
		BloodGroup:        DefaultBloodGroup,
		Address:           Address{Country: DefaultCountry},
		Semester:          1,
		PreferredRoomType: string(pricing.DefaultRoomType),
		AdmissionMonths:   1,
		AdvanceAmount:     DefaultAdvanceAmount,
		PayAdvance:        true,
	}
}

// Breakdown quotes the current room selection.
func (s State) Breakdown() pricing.FeeBreakdown {
	return pricing.ComputeBreakdown(s.PreferredRoomType, s.AdmissionMonths, s.AdvanceAmount, s.PayAdvance)
}

// Window derives the admission window for the current date and duration.
func (s State) Window() admission.Window {
	return admission.NewWindow(s.AdmissionDate, s.monthsOrOne())
}

// RemainingDays is the informational remaining-days figure for the admission date.
func (s State) RemainingDays() int {
	return admission.RemainingDaysInCycle(s.AdmissionDate)
}

func (s State) monthsOrOne() int {
	if s.AdmissionMonths <= 0 {
		return 1
	}
	return s.AdmissionMonths
}
