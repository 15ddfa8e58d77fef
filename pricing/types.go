/*
Package pricing provides the hostel pricing table and the fee breakdown engine.

PURPOSE:
  Everything a registration needs to quote a price lives here: the static
  room-type pricing table, the fee breakdown calculator, and the lenient
  coercion of raw form input into the calculator's arguments.

KEY CONCEPTS IN THIS FILE (types.go):
  - RoomType: One of the four accommodation categories
  - Amount: Money in the smallest currency unit (whole rupees)
  - FeeBreakdown: Derived per-month rates, totals and the account split

DESIGN PRINCIPLES:
  1. Total functions: every input yields a breakdown, nothing returns an error
  2. Integer money: all table values and multipliers are integers
  3. No shared mutable state: safe to call on every keystroke, concurrently

USAGE:
  b := pricing.ComputeBreakdown("2-sharing-ac", 3, 10000, true)
  fmt.Println(b.Total) // 85000

SEE ALSO:
  - table.go: The static pricing table and package catalog
  - breakdown.go: ComputeBreakdown
  - coerce.go: Raw input coercion
*/
package pricing

import (
	"strconv"
	"strings"
)

// =============================================================================
// ROOM TYPE
// =============================================================================

// RoomType identifies an accommodation category by its wire key.
type RoomType string

const (
	TwoSharingAC    RoomType = "2-sharing-ac"
	FourSharing     RoomType = "4-sharing"
	SingleSharing   RoomType = "single-sharing"
	TwoSharingNonAC RoomType = "2-sharing-non-ac"
)

// DefaultRoomType is used whenever a room type is missing or unrecognized.
const DefaultRoomType = TwoSharingAC

func (r RoomType) String() string { return string(r) }

// =============================================================================
// AMOUNT - Money in whole rupees
// =============================================================================

type Amount int64

func (a Amount) Times(n int) Amount { return a * Amount(n) }

// NonNegative clamps negative amounts to zero.
func (a Amount) NonNegative() Amount {
	if a < 0 {
		return 0
	}
	return a
}

// String formats the amount with Indian digit grouping, e.g. ₹1,25,000.
func (a Amount) String() string {
	digits := strconv.FormatInt(int64(a), 10)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= 3 {
		return sign + "₹" + digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return sign + "₹" + strings.Join(groups, ",") + "," + tail
}

// =============================================================================
// FEE BREAKDOWN - Derived, never persisted on its own
// =============================================================================

// FeeBreakdown is the quote for one (room, months, advance) combination.
//
// The total is split across two disbursement accounts: the Youstel account
// receives rent plus deposit, the HUF account receives mess charges.
type FeeBreakdown struct {
	MonthsSelected int    `json:"months_selected"`
	PackageLabel   string `json:"package_label"`
	RentPerMonth   Amount `json:"rent_per_month"`
	MessPerMonth   Amount `json:"mess_per_month"`
	RentTotal      Amount `json:"rent_total"`
	MessTotal      Amount `json:"mess_total"`
	Deposit        Amount `json:"deposit"`
	YoustelAmount  Amount `json:"youstel_amount"`
	HUFAmount      Amount `json:"huf_amount"`
	Total          Amount `json:"total"`
}

// Balanced reports whether the breakdown's totals agree with each other.
func (b FeeBreakdown) Balanced() bool {
	return b.Total == b.RentTotal+b.MessTotal+b.Deposit &&
		b.YoustelAmount+b.HUFAmount == b.Total
}
