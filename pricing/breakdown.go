package pricing

// ComputeBreakdown quotes a registration.
//
// The rate comes from the pricing row of the clamped duration, but totals are
// billed for every requested month: stays longer than MaxPricedMonths keep the
// last row's rate. The package label shows the clamped duration.
//
// The deposit is the advance amount when payAdvance is set (negative amounts
// count as zero), otherwise nothing. Months and deposit saturate at MaxWhole.
func ComputeBreakdown(roomType string, monthsRequested int, advance Amount, payAdvance bool) FeeBreakdown {
	months := max(1, min(monthsRequested, MaxWhole))
	bounded := ClampMonths(months)

	entry := Lookup(roomType)
	rentPerMonth := entry.RentFor(bounded)
	messPerMonth := entry.Mess

	rentTotal := rentPerMonth.Times(months)
	messTotal := messPerMonth.Times(months)

	var deposit Amount
	if payAdvance {
		deposit = min(advance.NonNegative(), Amount(MaxWhole))
	}

	youstel := rentTotal + deposit
	huf := messTotal

	return FeeBreakdown{
		MonthsSelected: months,
		PackageLabel:   monthsLabel(bounded) + " Package",
		RentPerMonth:   rentPerMonth,
		MessPerMonth:   messPerMonth,
		RentTotal:      rentTotal,
		MessTotal:      messTotal,
		Deposit:        deposit,
		YoustelAmount:  youstel,
		HUFAmount:      huf,
		Total:          youstel + huf,
	}
}
