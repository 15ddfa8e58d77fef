package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/youstel/registration-desk/api"
	"github.com/youstel/registration-desk/backend"
	"github.com/youstel/registration-desk/pricing"
)

// RegisterCmd submits a registration form stored as JSON, in the same shape
// POST /api/registrations accepts.
func RegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register FILE",
		Short: "Submit a registration form from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var req api.RegistrationRequest
			if err := json.Unmarshal(data, &req); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			desk, store, err := openDesk(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			receipt, err := desk.Submit(cmd.Context(), req.State())
			if err != nil {
				if receipt == nil {
					return err
				}
				return fmt.Errorf("%s", backend.UserMessage(err, cfg.APIBaseURL))
			}

			printBreakdown(cmd.OutOrStdout(), pricing.Lookup(receipt.RoomType), receipt.Breakdown)
			fmt.Fprintf(cmd.OutOrStdout(), "\nReceipt %s: %s", receipt.ID, receipt.Status)
			if receipt.StudentID != "" {
				fmt.Fprintf(cmd.OutOrStdout(), " (student %s)", receipt.StudentID)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	addDBFlag(cmd)
	return cmd
}

func ReceiptsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "receipts",
		Short: "List archived registrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			pendingOnly, _ := cmd.Flags().GetBool("pending")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			_, store, err := openDesk(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			list := store.ListReceipts
			if pendingOnly {
				list = store.ListPending
			}
			receipts, err := list(cmd.Context())
			if err != nil {
				return err
			}

			out := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(out, "ID\tSTATUS\tEMAIL\tROOM\tMONTHS\tTOTAL\tATTEMPTS\tCREATED")
			for _, r := range receipts {
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%d\t%s\t%d\t%s\n",
					r.ID, r.Status, r.Email, r.RoomType, r.Months,
					r.Breakdown.Total, r.Attempts, r.CreatedAt.Format("2006-01-02 15:04"))
			}
			return out.Flush()
		},
	}

	cmd.Flags().Bool("pending", false, "Only show registrations waiting for resubmission")
	addDBFlag(cmd)
	return cmd
}

func RetryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retry",
		Short: "Resubmit pending registrations once",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			desk, store, err := openDesk(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			accepted, err := desk.RetryPending(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "%d registration(s) delivered\n", accepted)
			return err
		},
	}

	addDBFlag(cmd)
	return cmd
}
