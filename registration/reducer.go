package registration

import (
	"errors"
	"strconv"
	"strings"

	"github.com/youstel/registration-desk/admission"
	"github.com/youstel/registration-desk/pricing"
)

// =============================================================================
// EVENTS
// =============================================================================

// Event is one user action on the form.
type Event interface {
	apply(s State) State
}

// FieldChanged sets a field by its form name. Address fields use the
// "address.<field>" form, e.g. "address.city".
type FieldChanged struct {
	Name  string
	Value string
}

// PayAdvanceToggled checks or unchecks the pay-advance box.
type PayAdvanceToggled struct {
	Checked bool
}

// PhotoAttached stores an uploaded photo as a data URL.
type PhotoAttached struct {
	DataURL string
}

// PhotoRemoved clears the profile photo.
type PhotoRemoved struct{}

// Reset returns the form to its defaults.
type Reset struct{}

// =============================================================================
// REDUCER
// =============================================================================

// Reduce applies an event and re-derives the admission up-to date.
func Reduce(s State, e Event) State {
	if e == nil {
		return s
	}
	return syncAdmissionEnd(e.apply(s))
}

// syncAdmissionEnd writes the derived up-to date only when it changed.
func syncAdmissionEnd(s State) State {
	if s.AdmissionDate == "" {
		return s
	}
	end := admission.ComputeAdmissionEnd(s.AdmissionDate, s.monthsOrOne())
	if end != "" && end != s.AdmissionUpToDate {
		s.AdmissionUpToDate = end
	}
	return s
}

func (e PayAdvanceToggled) apply(s State) State {
	s.PayAdvance = e.Checked
	switch {
	case !e.Checked:
		s.AdvanceAmount = 0
	case s.AdvanceAmount == 0:
		s.AdvanceAmount = DefaultAdvanceAmount
	}
	return s
}

func (e PhotoAttached) apply(s State) State {
	s.ProfilePhoto = e.DataURL
	return s
}

func (PhotoRemoved) apply(s State) State {
	s.ProfilePhoto = ""
	return s
}

func (Reset) apply(State) State { return NewState() }

func (e FieldChanged) apply(s State) State {
	if field, ok := strings.CutPrefix(e.Name, "address."); ok {
		s.Address = e.applyAddress(s.Address, field)
		return s
	}

	v := e.Value
	switch e.Name {
	case "firstName":
		s.FirstName = v
	case "middleName":
		s.MiddleName = v
	case "lastName":
		s.LastName = v
	case "email":
		s.Email = v
	case "phone":
		s.Phone = v
	case "dateOfBirth":
		s.DateOfBirth = v
	case "gender":
		s.Gender = v
	case "bloodGroup":
		s.BloodGroup = v
	case "religion":
		s.Religion = v
	case "caste":
		s.Caste = v
	case "aadharNumber":
		s.AadharNumber = v
	case "institute":
		s.Institute = v
	case "department":
		s.Department = v
	case "semester":
		s.Semester = parseIntOr(v, 1)
	case "previousEducationDetails":
		s.PreviousEducationDetails = v
	case "guardianName":
		s.GuardianName = v
	case "guardianLocalName":
		s.GuardianLocalName = v
	case "motherName":
		s.MotherName = v
	case "fatherOccupation":
		s.FatherOccupation = v
	case "motherOccupation":
		s.MotherOccupation = v
	case "guardianPhone":
		s.GuardianPhone = v
	case "guardianEmail":
		s.GuardianEmail = v
	case "motherEmail":
		s.MotherEmail = v
	case "motherMobileNumber":
		s.MotherMobileNumber = v
	case "fatherMobileNumber":
		s.FatherMobileNumber = v
	case "guardianLocalArea":
		s.GuardianLocalArea = v
	case "preferredRoomType":
		s.PreferredRoomType = v
	case "admissionDate":
		s.AdmissionDate = v
	case "admissionMonths":
		s.AdmissionMonths = parseIntOr(v, 1)
	case "advanceAmount":
		s.AdvanceAmount = pricing.Amount(parseIntOr(v, 0))
	case "profilePhoto":
		s.ProfilePhoto = v
	}
	// admissionUpToDate is derived and deliberately not settable here.
	return s
}

func (e FieldChanged) applyAddress(a Address, field string) Address {
	switch field {
	case "street":
		a.Street = e.Value
	case "city":
		a.City = e.Value
	case "state":
		a.State = e.Value
	case "pincode":
		a.Pincode = e.Value
	case "country":
		a.Country = e.Value
	}
	return a
}

// parseIntOr parses the leading integer of s ("12abc" -> 12), saturating at
// pricing.MaxWhole in either direction. Empty input, input without a leading
// integer, and zero all give def.
func parseIntOr(s string, def int) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return def
	}
	n = pricing.BoundWhole(n)
	if n == 0 {
		return def
	}
	return int(n)
}
