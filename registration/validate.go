package registration

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
)

// MaxPhotoBytes limits the decoded size of the profile photo.
const MaxPhotoBytes = 2 * 1024 * 1024

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10,}$`)
	phoneNoise   = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "\t", "")
)

// Validate checks the form in the order the student sees the fields and
// returns the first problem as a *ValidationError.
func Validate(s State) error {
	if missing := missingFields(
		"First Name", s.FirstName,
		"Last Name", s.LastName,
		"Email", s.Email,
		"Phone", s.Phone,
	); len(missing) > 0 {
		return &ValidationError{Field: "personal", Message: "Please fill in all required fields: " + strings.Join(missing, ", ")}
	}

	if missing := missingFields(
		"Guardian Name", s.GuardianName,
		"Local Guardian Phone Number", s.GuardianPhone,
	); len(missing) > 0 {
		return &ValidationError{Field: "guardian", Message: "Please fill in all guardian information: " + strings.Join(missing, ", ")}
	}

	if s.Institute == "" {
		return &ValidationError{Field: "institute", Message: "Please enter institute name"}
	}
	if s.AdmissionDate == "" {
		return &ValidationError{Field: "admissionDate", Message: "Please select admission date"}
	}
	if s.AdmissionMonths < 1 || s.AdmissionMonths > MaxAdmissionMonths {
		return &ValidationError{Field: "admissionMonths", Message: fmt.Sprintf("Please enter a valid number of months (1-%d)", MaxAdmissionMonths)}
	}

	if strings.TrimSpace(s.ProfilePhoto) == "" {
		return &ValidationError{Field: "profilePhoto", Message: "Profile photo is required. Please upload a passport photo."}
	}
	if err := CheckPhoto(s.ProfilePhoto); err != nil {
		return err
	}

	if err := validateEmail(s.Email); err != nil {
		return err
	}

	if !validPhone(s.Phone) {
		return &ValidationError{Field: "phone", Message: fmt.Sprintf("Please enter a valid phone number (minimum 10 digits). You entered: %s", s.Phone)}
	}
	if !validPhone(s.GuardianPhone) {
		return &ValidationError{Field: "guardianPhone", Message: fmt.Sprintf("Please enter a valid local guardian phone number (minimum 10 digits). You entered: %s", s.GuardianPhone)}
	}
	return nil
}

func missingFields(pairs ...string) []string {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			missing = append(missing, pairs[i])
		}
	}
	return missing
}

func validateEmail(email string) error {
	trimmed := strings.TrimSpace(email)
	switch {
	case trimmed == "":
		return &ValidationError{Field: "email", Message: "Email address is required. Please enter your email."}
	case !emailPattern.MatchString(trimmed):
		return &ValidationError{Field: "email", Message: fmt.Sprintf("Invalid email format. Please enter a valid email address (e.g., name@example.com). You entered: %s", email)}
	}
	return nil
}

// CheckEmail returns a live hint for a partially typed email, or "" when
// the address looks fine (or nothing was typed).
func CheckEmail(email string) string {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" || emailPattern.MatchString(trimmed) {
		return ""
	}
	switch {
	case strings.Contains(trimmed, " "):
		return "Email cannot contain spaces"
	case !strings.Contains(trimmed, "@"):
		return "Email must contain @ symbol"
	case strings.Count(trimmed, "@") != 1:
		return "Email can only have one @ symbol"
	}
	return "Invalid email format"
}

func validPhone(phone string) bool {
	return phonePattern.MatchString(phoneNoise.Replace(phone))
}

// CheckPhoto validates an image data URL: it must be image/* and decode to
// at most MaxPhotoBytes.
func CheckPhoto(dataURL string) error {
	header, payload, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(header, "data:image/") {
		return &ValidationError{Field: "profilePhoto", Message: "Please upload a valid image file.", Err: ErrPhotoNotImage}
	}

	size := len(payload)
	if strings.HasSuffix(header, ";base64") {
		size = base64.StdEncoding.DecodedLen(len(payload)) - strings.Count(payload[max(0, len(payload)-2):], "=")
	}
	if size > MaxPhotoBytes {
		return &ValidationError{Field: "profilePhoto", Message: "File size must be under 2MB.", Err: ErrPhotoTooLarge}
	}
	return nil
}
