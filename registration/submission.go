package registration

import (
	"strings"
	"time"

	"github.com/youstel/registration-desk/admission"
	"github.com/youstel/registration-desk/backend"
	"github.com/youstel/registration-desk/pricing"
)

// BuildSubmission turns a form snapshot into the backend payload.
//
// The email is trimmed and lower-cased. Missing date of birth and admission
// date default to today. With pay-advance on, an advance of 0 is sent as the
// default advance; with it off, 0 is always sent. The attached breakdown is
// quoted on the advance actually sent.
func BuildSubmission(s State, today time.Time) backend.Registration {
	todayISO := today.Format(admission.ISOLayout)

	advance := s.AdvanceAmount
	if !s.PayAdvance {
		advance = 0
	} else if advance == 0 {
		advance = DefaultAdvanceAmount
	}

	months := s.monthsOrOne()
	admissionDate := orDefault(s.AdmissionDate, todayISO)
	upTo := s.AdmissionUpToDate
	if upTo == "" {
		upTo = admission.ComputeAdmissionEnd(admissionDate, months)
	}

	return backend.Registration{
		FirstName:    s.FirstName,
		MiddleName:   s.MiddleName,
		LastName:     s.LastName,
		Email:        strings.ToLower(strings.TrimSpace(s.Email)),
		Phone:        s.Phone,
		DateOfBirth:  orDefault(s.DateOfBirth, todayISO),
		Gender:       s.Gender,
		BloodGroup:   s.BloodGroup,
		Religion:     s.Religion,
		Caste:        s.Caste,
		AadharNumber: s.AadharNumber,
		Address: backend.Address{
			Street:  s.Address.Street,
			City:    s.Address.City,
			State:   s.Address.State,
			Pincode: s.Address.Pincode,
			Country: s.Address.Country,
		},

		Institute:                s.Institute,
		Department:               s.Department,
		Semester:                 s.Semester,
		PreviousEducationDetails: s.PreviousEducationDetails,

		GuardianName:       s.GuardianName,
		GuardianLocalName:  s.GuardianLocalName,
		MotherName:         s.MotherName,
		FatherOccupation:   s.FatherOccupation,
		MotherOccupation:   s.MotherOccupation,
		GuardianPhone:      s.GuardianPhone,
		GuardianEmail:      s.GuardianEmail,
		MotherEmail:        s.MotherEmail,
		MotherMobileNumber: s.MotherMobileNumber,
		FatherMobileNumber: s.FatherMobileNumber,
		GuardianLocalArea:  s.GuardianLocalArea,

		PreferredRoomType: s.PreferredRoomType,
		AdmissionDate:     admissionDate,
		AdmissionMonths:   months,
		AdmissionUpToDate: upTo,
		AdvanceAmount:     advance,
		PayAdvance:        s.PayAdvance,
		ProfilePhoto:      s.ProfilePhoto,

		Breakdown: pricing.ComputeBreakdown(s.PreferredRoomType, months, advance, s.PayAdvance),
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
