/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the registration model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

TYPES:
  Pricing:
    RoomDTO, QuoteRequest

  Admission:
    AdmissionWindowDTO

  Registration:
    RegistrationRequest, ReceiptDTO, SubmitResponse

NUMERIC INPUT:
  Form fields arrive as whatever the browser had: a JSON number, a numeric
  string, an empty string or null. FlexNumber accepts all of them and the
  pricing coercion rules decide what they mean.

VALIDATION:
  Validation is done by registration.Validate, not in DTOs. DTOs are pure
  data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - pricing/coerce.go: Coercion rules for FlexNumber
*/
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/youstel/registration-desk/admission"
	"github.com/youstel/registration-desk/pricing"
	"github.com/youstel/registration-desk/registration"
)

// =============================================================================
// FLEXIBLE NUMBERS
// =============================================================================

// FlexNumber is a numeric form field in its raw textual form.
type FlexNumber string

// UnmarshalJSON accepts a number, a string or null.
func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*n = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = FlexNumber(s)
	default:
		var num json.Number
		if err := json.Unmarshal(data, &num); err != nil {
			return fmt.Errorf("expected number or string, got %s", data)
		}
		*n = FlexNumber(num.String())
	}
	return nil
}

// Months coerces the field into a billable duration.
func (n FlexNumber) Months() int { return pricing.CoerceMonths(string(n)) }

// Amount coerces the field into a non-negative amount.
func (n FlexNumber) Amount() pricing.Amount { return pricing.CoerceAmount(string(n)) }

// IsSet reports whether anything was sent.
func (n FlexNumber) IsSet() bool { return strings.TrimSpace(string(n)) != "" }

// =============================================================================
// PRICING
// =============================================================================

// RoomDTO is one row of the pricing table.
type RoomDTO struct {
	RoomType    string           `json:"room_type"`
	Label       string           `json:"label"`
	Badge       string           `json:"badge"`
	MonthlyRent []pricing.Amount `json:"monthly_rent"`
	Mess        pricing.Amount   `json:"mess"`
}

func toRoomDTO(e pricing.PricingEntry) RoomDTO {
	return RoomDTO{
		RoomType:    string(e.RoomType),
		Label:       e.Label,
		Badge:       e.Badge,
		MonthlyRent: e.Monthly[:],
		Mess:        e.Mess,
	}
}

// QuoteRequest asks for a fee breakdown.
type QuoteRequest struct {
	RoomType      string     `json:"room_type"`
	Months        FlexNumber `json:"months"`
	AdvanceAmount FlexNumber `json:"advance_amount"`
	PayAdvance    *bool      `json:"pay_advance"`
}

// QuoteDTO is a fee breakdown plus display strings.
type QuoteDTO struct {
	pricing.FeeBreakdown
	RoomType       string `json:"room_type"`
	RoomLabel      string `json:"room_label"`
	FormattedTotal string `json:"formatted_total"`
}

// =============================================================================
// ADMISSION
// =============================================================================

// AdmissionWindowDTO is the derived admission window.
type AdmissionWindowDTO struct {
	admission.Window
	Months        int `json:"months"`
	RemainingDays int `json:"remaining_days"`
}

// EmailCheckDTO is the live hint for a partially typed email.
type EmailCheckDTO struct {
	Email string `json:"email"`
	Valid bool   `json:"valid"`
	Hint  string `json:"hint,omitempty"`
}

// =============================================================================
// REGISTRATION
// =============================================================================

// AddressRequest is the student's postal address.
type AddressRequest struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

// RegistrationRequest is the full registration form, keyed the way the
// form names its fields.
type RegistrationRequest struct {
	FirstName    string         `json:"firstName"`
	MiddleName   string         `json:"middleName"`
	LastName     string         `json:"lastName"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	DateOfBirth  string         `json:"dateOfBirth"`
	Gender       string         `json:"gender"`
	BloodGroup   string         `json:"bloodGroup"`
	Religion     string         `json:"religion"`
	Caste        string         `json:"caste"`
	AadharNumber string         `json:"aadharNumber"`
	Address      AddressRequest `json:"address"`

	Institute                string     `json:"institute"`
	Department               string     `json:"department"`
	Semester                 FlexNumber `json:"semester"`
	PreviousEducationDetails string     `json:"previousEducationDetails"`

	GuardianName       string `json:"guardianName"`
	GuardianLocalName  string `json:"guardianLocalName"`
	MotherName         string `json:"motherName"`
	FatherOccupation   string `json:"fatherOccupation"`
	MotherOccupation   string `json:"motherOccupation"`
	GuardianPhone      string `json:"guardianPhone"`
	GuardianEmail      string `json:"guardianEmail"`
	MotherEmail        string `json:"motherEmail"`
	MotherMobileNumber string `json:"motherMobileNumber"`
	FatherMobileNumber string `json:"fatherMobileNumber"`
	GuardianLocalArea  string `json:"guardianLocalArea"`

	PreferredRoomType string     `json:"preferredRoomType"`
	AdmissionDate     string     `json:"admissionDate"`
	AdmissionMonths   FlexNumber `json:"admissionMonths"`
	AdvanceAmount     FlexNumber `json:"advanceAmount"`
	PayAdvance        *bool      `json:"payAdvance"`
	ProfilePhoto      string     `json:"profilePhoto"`
}

// State replays the request onto a fresh form. Fields left empty keep the
// form's defaults, and the admission up-to date is derived, never taken
// from the client.
func (req RegistrationRequest) State() registration.State {
	fields := []registration.FieldChanged{
		{Name: "firstName", Value: req.FirstName},
		{Name: "middleName", Value: req.MiddleName},
		{Name: "lastName", Value: req.LastName},
		{Name: "email", Value: req.Email},
		{Name: "phone", Value: req.Phone},
		{Name: "dateOfBirth", Value: req.DateOfBirth},
		{Name: "gender", Value: req.Gender},
		{Name: "bloodGroup", Value: req.BloodGroup},
		{Name: "religion", Value: req.Religion},
		{Name: "caste", Value: req.Caste},
		{Name: "aadharNumber", Value: req.AadharNumber},
		{Name: "address.street", Value: req.Address.Street},
		{Name: "address.city", Value: req.Address.City},
		{Name: "address.state", Value: req.Address.State},
		{Name: "address.pincode", Value: req.Address.Pincode},
		{Name: "address.country", Value: req.Address.Country},
		{Name: "institute", Value: req.Institute},
		{Name: "department", Value: req.Department},
		{Name: "semester", Value: string(req.Semester)},
		{Name: "previousEducationDetails", Value: req.PreviousEducationDetails},
		{Name: "guardianName", Value: req.GuardianName},
		{Name: "guardianLocalName", Value: req.GuardianLocalName},
		{Name: "motherName", Value: req.MotherName},
		{Name: "fatherOccupation", Value: req.FatherOccupation},
		{Name: "motherOccupation", Value: req.MotherOccupation},
		{Name: "guardianPhone", Value: req.GuardianPhone},
		{Name: "guardianEmail", Value: req.GuardianEmail},
		{Name: "motherEmail", Value: req.MotherEmail},
		{Name: "motherMobileNumber", Value: req.MotherMobileNumber},
		{Name: "fatherMobileNumber", Value: req.FatherMobileNumber},
		{Name: "guardianLocalArea", Value: req.GuardianLocalArea},
		{Name: "preferredRoomType", Value: req.PreferredRoomType},
		{Name: "admissionDate", Value: req.AdmissionDate},
	}

	s := registration.NewState()
	for _, f := range fields {
		if f.Value != "" {
			s = registration.Reduce(s, f)
		}
	}

	if req.AdmissionMonths.IsSet() {
		s = registration.Reduce(s, registration.FieldChanged{
			Name: "admissionMonths", Value: fmt.Sprint(req.AdmissionMonths.Months()),
		})
	}
	if req.PayAdvance != nil {
		s = registration.Reduce(s, registration.PayAdvanceToggled{Checked: *req.PayAdvance})
	}
	if req.AdvanceAmount.IsSet() && s.PayAdvance {
		s = registration.Reduce(s, registration.FieldChanged{
			Name: "advanceAmount", Value: fmt.Sprint(int64(req.AdvanceAmount.Amount())),
		})
	}
	if req.ProfilePhoto != "" {
		s = registration.Reduce(s, registration.PhotoAttached{DataURL: req.ProfilePhoto})
	}
	return s
}

// ReceiptDTO is an archived registration.
type ReceiptDTO struct {
	ID                string               `json:"id"`
	Status            string               `json:"status"`
	StudentID         string               `json:"student_id,omitempty"`
	QRCode            string               `json:"qr_code,omitempty"`
	Email             string               `json:"email"`
	RoomType          string               `json:"room_type"`
	RoomLabel         string               `json:"room_label"`
	Months            int                  `json:"months"`
	AdmissionDate     string               `json:"admission_date"`
	AdmissionUpToDate string               `json:"admission_up_to_date"`
	Breakdown         pricing.FeeBreakdown `json:"breakdown"`
	FormattedTotal    string               `json:"formatted_total"`
	Message           string               `json:"message,omitempty"`
	Attempts          int                  `json:"attempts"`
	CreatedAt         string               `json:"created_at"`
	UpdatedAt         string               `json:"updated_at"`
}

func toReceiptDTO(r registration.Receipt) ReceiptDTO {
	return ReceiptDTO{
		ID:                r.ID,
		Status:            string(r.Status),
		StudentID:         r.StudentID,
		QRCode:            r.QRCode,
		Email:             r.Email,
		RoomType:          r.RoomType,
		RoomLabel:         pricing.Label(r.RoomType),
		Months:            r.Months,
		AdmissionDate:     r.AdmissionDate,
		AdmissionUpToDate: r.AdmissionUpToDate,
		Breakdown:         r.Breakdown,
		FormattedTotal:    r.Breakdown.Total.String(),
		Message:           r.Message,
		Attempts:          r.Attempts,
		CreatedAt:         r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         r.UpdatedAt.Format(time.RFC3339),
	}
}

// SubmitResponse is returned by POST /api/registrations.
type SubmitResponse struct {
	Message string     `json:"message"`
	Receipt ReceiptDTO `json:"receipt"`
}

// ErrorResponse is the body of every error answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Field   string `json:"field,omitempty"`
}
