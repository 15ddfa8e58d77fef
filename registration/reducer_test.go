package registration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/youstel/registration-desk/pricing"
	"github.com/youstel/registration-desk/registration"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func apply(s registration.State, events ...registration.Event) registration.State {
	for _, e := range events {
		s = registration.Reduce(s, e)
	}
	return s
}

func set(name, value string) registration.FieldChanged {
	return registration.FieldChanged{Name: name, Value: value}
}

// =============================================================================
// DEFAULTS
// =============================================================================

func TestNewState_Defaults(t *testing.T) {
	s := registration.NewState()

	assert.Equal(t, "female", s.Gender)
	assert.Equal(t, "A+", s.BloodGroup)
	assert.Equal(t, "India", s.Address.Country)
	assert.Equal(t, 1, s.Semester)
	assert.Equal(t, "2-sharing-ac", s.PreferredRoomType)
	assert.Equal(t, 1, s.AdmissionMonths)
	assert.Equal(t, pricing.Amount(10000), s.AdvanceAmount)
	assert.True(t, s.PayAdvance)
	assert.Empty(t, s.AdmissionUpToDate)
}

func TestNewState_DefaultQuote(t *testing.T) {
	// One month of 2 Sharing AC with the default advance.
	b := registration.NewState().Breakdown()
	assert.Equal(t, pricing.Amount(23000), b.RentTotal)
	assert.Equal(t, pricing.Amount(10000), b.Deposit)
	assert.Equal(t, pricing.Amount(36000), b.Total)
}

// =============================================================================
// FIELD CHANGES
// =============================================================================

func TestReduce_TextAndAddressFields(t *testing.T) {
	s := apply(registration.NewState(),
		set("firstName", "Asha"),
		set("lastName", "Jain"),
		set("address.city", "Pune"),
		set("address.pincode", "411001"),
		set("guardianLocalArea", "Kothrud"),
		set("unknownField", "ignored"),
	)

	assert.Equal(t, "Asha", s.FirstName)
	assert.Equal(t, "Jain", s.LastName)
	assert.Equal(t, "Pune", s.Address.City)
	assert.Equal(t, "411001", s.Address.Pincode)
	assert.Equal(t, "India", s.Address.Country)
	assert.Equal(t, "Kothrud", s.GuardianLocalArea)
}

func TestReduce_NumericFieldsParseLeniently(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		months  int
		advance pricing.Amount
		sem     int
	}{
		{"months set", "admissionMonths", "3", 3, 10000, 1},
		{"months empty", "admissionMonths", "", 1, 10000, 1},
		{"months junk", "admissionMonths", "abc", 1, 10000, 1},
		{"months leading digits", "admissionMonths", "4 months", 4, 10000, 1},
		{"advance empty", "advanceAmount", "", 1, 0, 1},
		{"advance junk", "advanceAmount", "lots", 1, 0, 1},
		{"advance set", "advanceAmount", "7500", 1, 7500, 1},
		{"semester zero", "semester", "0", 1, 10000, 1},
		{"semester set", "semester", "6", 1, 10000, 6},
		{"months overflow", "admissionMonths", "999999999999999", pricing.MaxWhole, 10000, 1},
		{"advance overflow", "advanceAmount", "99999999999999999999", 1, pricing.MaxWhole, 1},
		{"advance beyond bound", "advanceAmount", "1000000001", 1, pricing.MaxWhole, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := registration.Reduce(registration.NewState(), set(tt.field, tt.value))
			assert.Equal(t, tt.months, s.AdmissionMonths)
			assert.Equal(t, tt.advance, s.AdvanceAmount)
			assert.Equal(t, tt.sem, s.Semester)
		})
	}
}

func TestReduce_HugeDurationQuotesAtTheBound(t *testing.T) {
	// GIVEN: A duration typed far past anything the calculator accepts
	s := apply(registration.NewState(),
		set("admissionDate", "2024-01-15"),
		set("admissionMonths", "999999999999999"),
	)

	// THEN: The form agrees with the calculator and the window
	b := s.Breakdown()
	assert.Equal(t, pricing.ComputeBreakdown(s.PreferredRoomType, pricing.MaxWhole, s.AdvanceAmount, true), b)
	assert.Positive(t, int64(b.Total))
	assert.True(t, b.Balanced())
	assert.Equal(t, "83335357-04-30", s.AdmissionUpToDate)
}

func TestReduce_UpToDateIsNotDirectlyEditable(t *testing.T) {
	s := registration.Reduce(registration.NewState(), set("admissionUpToDate", "2030-01-01"))
	assert.Empty(t, s.AdmissionUpToDate)
}

// =============================================================================
// PAY ADVANCE TOGGLE
// =============================================================================

func TestReduce_PayAdvanceToggle(t *testing.T) {
	// GIVEN: The default form (advance 10000, pay advance on)
	s := registration.NewState()

	// WHEN: Unchecking pay advance
	s = registration.Reduce(s, registration.PayAdvanceToggled{Checked: false})
	// THEN: The advance is cleared
	assert.False(t, s.PayAdvance)
	assert.Zero(t, s.AdvanceAmount)

	// WHEN: Checking it again
	s = registration.Reduce(s, registration.PayAdvanceToggled{Checked: true})
	// THEN: The default advance comes back
	assert.True(t, s.PayAdvance)
	assert.Equal(t, pricing.Amount(10000), s.AdvanceAmount)

	// A custom amount survives re-checking.
	s = apply(s, set("advanceAmount", "4000"), registration.PayAdvanceToggled{Checked: true})
	assert.Equal(t, pricing.Amount(4000), s.AdvanceAmount)
}

// =============================================================================
// ADMISSION WINDOW SYNC
// =============================================================================

func TestReduce_DerivesAdmissionUpToDate(t *testing.T) {
	s := apply(registration.NewState(), set("admissionDate", "2024-01-15"))
	assert.Equal(t, "2024-01-31", s.AdmissionUpToDate)

	s = registration.Reduce(s, set("admissionMonths", "2"))
	assert.Equal(t, "2024-02-29", s.AdmissionUpToDate)

	s = registration.Reduce(s, set("admissionDate", "2024-11-03"))
	assert.Equal(t, "2024-12-31", s.AdmissionUpToDate)
}

func TestReduce_KeepsUpToDateWhenDateCleared(t *testing.T) {
	// Clearing the date doesn't wipe the last derived value; it is only ever
	// overwritten by a fresh non-empty computation.
	s := apply(registration.NewState(), set("admissionDate", "2024-01-15"), set("admissionDate", ""))
	assert.Equal(t, "2024-01-31", s.AdmissionUpToDate)
}

func TestReduce_SameInputIsANoOp(t *testing.T) {
	s := apply(registration.NewState(), set("admissionDate", "2024-05-20"), set("admissionMonths", "3"))

	again := registration.Reduce(s, set("admissionMonths", "3"))
	assert.Equal(t, s, again)
}

func TestReduce_Reset(t *testing.T) {
	s := apply(registration.NewState(),
		set("firstName", "Asha"),
		set("admissionDate", "2024-01-15"),
		registration.PhotoAttached{DataURL: "data:image/png;base64,AAAA"},
	)
	assert.Equal(t, registration.NewState(), registration.Reduce(s, registration.Reset{}))
}

func TestReduce_Photo(t *testing.T) {
	s := registration.Reduce(registration.NewState(), registration.PhotoAttached{DataURL: "data:image/jpeg;base64,/9j/"})
	assert.Equal(t, "data:image/jpeg;base64,/9j/", s.ProfilePhoto)

	s = registration.Reduce(s, registration.PhotoRemoved{})
	assert.Empty(t, s.ProfilePhoto)
}

func TestReduce_NilEvent(t *testing.T) {
	s := registration.NewState()
	assert.Equal(t, s, registration.Reduce(s, nil))
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

func TestState_DerivedValues(t *testing.T) {
	s := apply(registration.NewState(),
		set("preferredRoomType", "single-sharing"),
		set("admissionDate", "2024-03-15"),
		set("admissionMonths", "7"),
	)

	b := s.Breakdown()
	assert.Equal(t, pricing.Amount(22000), b.RentPerMonth)
	assert.Equal(t, pricing.Amount(154000), b.RentTotal)
	assert.Equal(t, "5 Months Package", b.PackageLabel)

	assert.Equal(t, "2024-09-30", s.Window().AdmissionUpToDate)
	assert.Equal(t, 16, s.RemainingDays())
	assert.Equal(t, "Single Sharing (Non-AC)", pricing.Label(s.PreferredRoomType))

	s = registration.Reduce(s, set("preferredRoomType", "legacy-room"))
	assert.Equal(t, "legacy-room", pricing.Label(s.PreferredRoomType))
	assert.Equal(t, pricing.Amount(21000), s.Breakdown().RentPerMonth)
}
