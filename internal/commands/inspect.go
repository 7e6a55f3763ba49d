package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/payops-dev/payoutconv/internal/payout"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <payout-report.json>",
		Short: "Summarize an operator payout report before preparing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.OutOrStdout(), args[0])
		},
	}
}

func runInspect(w io.Writer, path string) error {
	entries, err := payout.ReadPayoutReport(path)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "no payments in report")
		return nil
	}

	total := decimal.Zero
	var custodians []string
	seen := make(map[string]bool)
	for i, e := range entries {
		amount, err := decimal.NewFromString(e.Amount.String())
		if err != nil {
			return fmt.Errorf("payment %d: parsing amount %q: %w", i, e.Amount, err)
		}
		total = total.Add(amount)
		if !seen[e.Custodian] {
			seen[e.Custodian] = true
			custodians = append(custodians, e.Custodian)
		}
	}

	fmt.Fprintf(w, "%d payments for a total of %s %s\n", len(entries), total, entries[0].Currency)
	fmt.Fprintf(w, "custodians: %s\n", strings.Join(custodians, ", "))
	fmt.Fprintf(w, "payout id: %s\n", entries[0].PayoutID)
	return nil
}
