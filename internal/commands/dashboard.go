package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fintrail-dev/fintrail/internal/accounts"
	"github.com/fintrail-dev/fintrail/internal/format"
	"github.com/fintrail-dev/fintrail/internal/report"
)

func newDashboardCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show net worth, allocation and recent activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(cmd.Context()); err != nil {
				return err
			}

			d, err := a.client.Dashboard(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Net worth: %s\n", format.Currency(d.NetWorth))
			fmt.Fprintf(a.out, "Assets:    %s\n", format.Currency(d.TotalAssets))
			fmt.Fprintf(a.out, "Liability: %s\n", format.Currency(d.Liabilities))
			fmt.Fprintf(a.out, "This month: income %s, expense %s\n\n",
				format.Currency(d.MonthIncome), format.Currency(d.MonthExpense))

			if len(d.Accounts) > 0 {
				fmt.Fprintln(a.out, "Asset allocation:")
				for _, slice := range report.AssetAllocation(d.Accounts) {
					fmt.Fprintf(a.out, "  %-24s %12s  %s\n",
						slice.Label, format.Currency(slice.Amount), format.Percent(slice.Share))
				}

				breakdown := report.LiabilityBreakdown(d.Accounts)
				if len(breakdown) > 0 {
					fmt.Fprintln(a.out, "Liabilities by sub type:")
					for _, slice := range breakdown {
						fmt.Fprintf(a.out, "  %-24s %12s  %s\n",
							slice.Label, format.Currency(slice.Amount), format.Percent(slice.Share))
					}
				}
			}

			if len(d.Recent) > 0 {
				ix := accounts.NewIndex(d.Accounts)
				fmt.Fprintln(a.out, "\nMonthly flows:")
				for _, flow := range report.MonthlyFlows(d.Recent, ix) {
					fmt.Fprintf(a.out, "  %04d-%02d  income %12s  expense %12s\n",
						flow.Year, flow.Month, format.Currency(flow.Income), format.Currency(flow.Expense))
				}

				tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "\nDATE\tAMOUNT\tDESCRIPTION")
				for _, tx := range d.Recent {
					fmt.Fprintf(tw, "%s\t%s\t%s\n",
						format.Date(tx.Date.Time()), format.Amount(tx.Amount), tx.Description)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
