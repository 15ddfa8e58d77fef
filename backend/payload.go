/*
Package backend talks to the remote hostel management API.

PURPOSE:
  The registration desk doesn't persist registrations or issue student IDs
  itself. It posts each completed form to the hostel backend, which answers
  with a student ID (or registration ID) and a QR code.

WIRE FORMAT:
  POST {base}/student-registration
  Content-Type: application/json

  The body is a Registration (camelCase keys, optional fields omitted when
  empty). Responses look like:

    {"success": true, "message": "...", "data": {"studentId": "...", "qrCode": "..."}}

ERRORS:
  - *APIError:      The backend answered with a non-2xx status
  - ErrRejected:    2xx but success=false
  - ErrHTMLResponse: An HTML page came back (wrong URL, proxy error page)
  - ErrUnavailable: No answer at all (network, timeout); safe to retry

SEE ALSO:
  - client.go: Client.Submit
  - errors.go: Error types and UserMessage
  - registration/submission.go: Builds a Registration from form state
*/
package backend

import "github.com/youstel/registration-desk/pricing"

// Address is the student's postal address.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Pincode string `json:"pincode,omitempty"`
	Country string `json:"country"`
}

// Registration is the payload posted to the backend.
type Registration struct {
	FirstName    string  `json:"firstName"`
	MiddleName   string  `json:"middleName,omitempty"`
	LastName     string  `json:"lastName"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	DateOfBirth  string  `json:"dateOfBirth"`
	Gender       string  `json:"gender"`
	BloodGroup   string  `json:"bloodGroup,omitempty"`
	Religion     string  `json:"religion,omitempty"`
	Caste        string  `json:"caste,omitempty"`
	AadharNumber string  `json:"aadharNumber,omitempty"`
	Address      Address `json:"address"`

	Institute                string `json:"institute,omitempty"`
	Department               string `json:"department,omitempty"`
	Semester                 int    `json:"semester"`
	PreviousEducationDetails string `json:"previousEducationDetails,omitempty"`

	GuardianName       string `json:"guardianName"`
	GuardianLocalName  string `json:"guardianLocalName,omitempty"`
	MotherName         string `json:"motherName,omitempty"`
	FatherOccupation   string `json:"fatherOccupation,omitempty"`
	MotherOccupation   string `json:"motherOccupation,omitempty"`
	GuardianPhone      string `json:"guardianPhone"`
	GuardianEmail      string `json:"guardianEmail,omitempty"`
	MotherEmail        string `json:"motherEmail,omitempty"`
	MotherMobileNumber string `json:"motherMobileNumber,omitempty"`
	FatherMobileNumber string `json:"fatherMobileNumber,omitempty"`
	GuardianLocalArea  string `json:"guardianLocalArea,omitempty"`

	PreferredRoomType string         `json:"preferredRoomType"`
	AdmissionDate     string         `json:"admissionDate"`
	AdmissionMonths   int            `json:"admissionMonths"`
	AdmissionUpToDate string         `json:"admissionUpToDate,omitempty"`
	AdvanceAmount     pricing.Amount `json:"advanceAmount"`
	PayAdvance        bool           `json:"payAdvance"`
	ProfilePhoto      string         `json:"profilePhoto"`

	// Breakdown is the quote the student saw when submitting.
	Breakdown pricing.FeeBreakdown `json:"feeBreakdown"`
}

// Result is what a successful submission returns.
type Result struct {
	Message        string `json:"message"`
	StudentID      string `json:"studentId,omitempty"`
	RegistrationID string `json:"registrationId,omitempty"`
	QRCode         string `json:"qrCode,omitempty"`
}

// ID returns the student ID, or the registration ID when the backend hasn't
// issued a student ID yet.
func (r *Result) ID() string {
	if r.StudentID != "" {
		return r.StudentID
	}
	return r.RegistrationID
}

// response is the backend's envelope.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Data    *struct {
		StudentID string `json:"studentId"`
		ID        string `json:"_id"`
		QRCode    string `json:"qrCode"`
	} `json:"data"`
}
