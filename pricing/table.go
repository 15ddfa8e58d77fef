package pricing

import "fmt"

// =============================================================================
// PRICING TABLE - Static, read-only, process-wide
// =============================================================================

// MaxPricedMonths is the longest duration with its own rate. Longer stays
// are billed at this row's monthly rent.
const MaxPricedMonths = 5

// PricingEntry is one row of the pricing table.
type PricingEntry struct {
	RoomType RoomType
	Label    string
	Badge    string
	Monthly  [MaxPricedMonths]Amount // index = months - 1
	Mess     Amount
}

// RentFor returns the monthly rent for a duration. The duration is clamped
// into [1, MaxPricedMonths] first, so it never indexes out of range.
func (e PricingEntry) RentFor(months int) Amount {
	return e.Monthly[ClampMonths(months)-1]
}

var table = map[RoomType]PricingEntry{
	TwoSharingAC: {
		RoomType: TwoSharingAC,
		Label:    "2 Sharing AC",
		Badge:    "Premium • AC",
		Monthly:  [MaxPricedMonths]Amount{23000, 23000, 22000, 22000, 21000},
		Mess:     3000,
	},
	FourSharing: {
		RoomType: FourSharing,
		Label:    "4 Sharing (Non-AC)",
		Badge:    "Economy • Non-AC",
		Monthly:  [MaxPricedMonths]Amount{14000, 14000, 13000, 13000, 12000},
		Mess:     3000,
	},
	SingleSharing: {
		RoomType: SingleSharing,
		Label:    "Single Sharing (Non-AC)",
		Badge:    "Private • Non-AC",
		Monthly:  [MaxPricedMonths]Amount{24000, 24000, 23000, 23000, 22000},
		Mess:     3000,
	},
	TwoSharingNonAC: {
		RoomType: TwoSharingNonAC,
		Label:    "2 Sharing (Non-AC)",
		Badge:    "Comfort • Non-AC",
		Monthly:  [MaxPricedMonths]Amount{19000, 19000, 18000, 18000, 17000},
		Mess:     3000,
	},
}

// displayOrder is the order rooms are offered in the package catalog.
var displayOrder = []RoomType{TwoSharingAC, FourSharing, TwoSharingNonAC, SingleSharing}

// RoomTypes returns all room types in display order.
func RoomTypes() []RoomType {
	out := make([]RoomType, len(displayOrder))
	copy(out, displayOrder)
	return out
}

// ParseRoomType reports whether s names a known room type.
func ParseRoomType(s string) (RoomType, bool) {
	rt := RoomType(s)
	_, ok := table[rt]
	return rt, ok
}

// Lookup returns the pricing entry for a room type.
// Unknown room types fall back to DefaultRoomType; this is how legacy or
// malformed client state keeps getting a quote.
func Lookup(roomType string) PricingEntry {
	if e, ok := table[RoomType(roomType)]; ok {
		return e
	}
	return table[DefaultRoomType]
}

// Label is the display name of a room type. Unknown keys are shown as given.
func Label(roomType string) string {
	if rt, ok := ParseRoomType(roomType); ok {
		return table[rt].Label
	}
	return roomType
}

// ClampMonths bounds a duration into the priced range [1, MaxPricedMonths].
func ClampMonths(months int) int {
	if months < 1 {
		return 1
	}
	if months > MaxPricedMonths {
		return MaxPricedMonths
	}
	return months
}

// =============================================================================
// PACKAGE CATALOG
// =============================================================================

// PackageRow is one duration offered for a room.
type PackageRow struct {
	Months int    `json:"months"`
	Label  string `json:"label"`
	Rent   Amount `json:"rent"`
	Mess   Amount `json:"mess"`
	Total  Amount `json:"total"`
}

// Package lists the priced durations of one room type.
type Package struct {
	RoomType RoomType     `json:"room_type"`
	Title    string       `json:"title"`
	Badge    string       `json:"badge"`
	Rows     []PackageRow `json:"rows"`
}

// Packages builds the package catalog from the pricing table.
func Packages() []Package {
	out := make([]Package, 0, len(displayOrder))
	for _, rt := range displayOrder {
		e := table[rt]
		p := Package{RoomType: rt, Title: e.Label, Badge: e.Badge}
		for m := 1; m <= MaxPricedMonths; m++ {
			rent := e.RentFor(m).Times(m)
			mess := e.Mess.Times(m)
			p.Rows = append(p.Rows, PackageRow{
				Months: m,
				Label:  monthsLabel(m),
				Rent:   rent,
				Mess:   mess,
				Total:  rent + mess,
			})
		}
		out = append(out, p)
	}
	return out
}

func monthsLabel(m int) string {
	if m > 1 {
		return fmt.Sprintf("%d Months", m)
	}
	return fmt.Sprintf("%d Month", m)
}
