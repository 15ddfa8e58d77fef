package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/youstel/registration-desk/admission"
	"github.com/youstel/registration-desk/pricing"
	"github.com/youstel/registration-desk/registration"
)

func QuoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Print the fee breakdown for a room and duration",
		RunE: func(cmd *cobra.Command, args []string) error {
			room, _ := cmd.Flags().GetString("room")
			months, _ := cmd.Flags().GetString("months")
			advance, _ := cmd.Flags().GetString("advance")
			noAdvance, _ := cmd.Flags().GetBool("no-advance")

			b := pricing.ComputeBreakdown(room,
				pricing.CoerceMonths(months),
				pricing.CoerceAmount(advance),
				!noAdvance,
			)
			printBreakdown(cmd.OutOrStdout(), pricing.Lookup(room), b)
			return nil
		},
	}

	cmd.Flags().String("room", string(pricing.DefaultRoomType), "Room type")
	cmd.Flags().String("months", "1", "Number of months")
	cmd.Flags().String("advance", fmt.Sprint(int64(registration.DefaultAdvanceAmount)), "Advance (security deposit)")
	cmd.Flags().Bool("no-advance", false, "Don't pay an advance")

	return cmd
}

func WindowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "window",
		Short: "Print the admission window for a start date",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, _ := cmd.Flags().GetString("start")
			months, _ := cmd.Flags().GetString("months")

			if _, ok := admission.ParseDate(start); !ok {
				return fmt.Errorf("invalid start date %q, expected YYYY-MM-DD", start)
			}

			w := admission.NewWindow(start, pricing.CoerceMonths(months))
			out := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(out, "Admission date\t%s\n", w.AdmissionDate)
			fmt.Fprintf(out, "Admission up to\t%s\n", w.AdmissionUpToDate)
			fmt.Fprintf(out, "Days left in first cycle\t%d\n", admission.RemainingDaysInCycle(start))
			return out.Flush()
		},
	}

	cmd.Flags().String("start", admission.Today().String(), "Admission date (YYYY-MM-DD)")
	cmd.Flags().String("months", "1", "Number of months")

	return cmd
}

func printBreakdown(w io.Writer, entry pricing.PricingEntry, b pricing.FeeBreakdown) {
	out := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(out, "%s\t%s\t\n", entry.Label, b.PackageLabel)
	fmt.Fprintf(out, "Rent (%s x %d)\t%s\t\n", b.RentPerMonth, b.MonthsSelected, b.RentTotal)
	fmt.Fprintf(out, "Advance\t%s\t\n", b.Deposit)
	fmt.Fprintf(out, "Payable to Youstel\t%s\t\n", b.YoustelAmount)
	fmt.Fprintf(out, "Mess (%s x %d)\t%s\t\n", b.MessPerMonth, b.MonthsSelected, b.MessTotal)
	fmt.Fprintf(out, "Payable to HUF\t%s\t\n", b.HUFAmount)
	fmt.Fprintf(out, "Total\t%s\t\n", b.Total)
	out.Flush()
}
