package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/fintrail-dev/fintrail/internal/format"
	"github.com/fintrail-dev/fintrail/internal/fy"
	"github.com/fintrail-dev/fintrail/internal/report"
)

func newFireCommand(a *app) *cobra.Command {
	var currentAge int
	var targetAge int

	cmd := &cobra.Command{
		Use:   "fire",
		Short: "Show the FIRE projection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if currentAge == 0 && a.cfg != nil {
				currentAge = a.cfg.Profile.CurrentAge
			}
			if targetAge == 0 && a.cfg != nil {
				targetAge = a.cfg.Profile.TargetAge
			}
			if currentAge == 0 || targetAge == 0 {
				return fmt.Errorf("current and target age are required (flags or config profile)")
			}
			if err := a.requireSession(cmd.Context()); err != nil {
				return err
			}

			r, err := a.client.FIREAnalytics(cmd.Context(), currentAge, targetAge)
			if err != nil {
				return err
			}

			progress := report.FIREProgress(r.NetWorth, r.Target)
			fmt.Fprintf(a.out, "Net worth:      %s\n", format.Currency(r.NetWorth))
			fmt.Fprintf(a.out, "Target:         %s\n", format.Currency(r.Target))
			fmt.Fprintf(a.out, "Progress:       %s\n", format.Percent(progress))
			fmt.Fprintf(a.out, "Annual savings: %s\n", format.Currency(r.AnnualSavings))
			fmt.Fprintf(a.out, "Years to go:    %s\n", r.YearsToTarget.Round(1))
			return nil
		},
	}

	cmd.Flags().IntVar(&currentAge, "current-age", 0, "current age")
	cmd.Flags().IntVar(&targetAge, "target-age", 0, "target retirement age")

	return cmd
}

func newTaxCommand(a *app) *cobra.Command {
	var fyStart string

	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Show the tax-section summary for a financial year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			year := fy.Current(time.Now())
			if fyStart != "" {
				var err error
				year, err = fy.Parse(fyStart)
				if err != nil {
					return err
				}
			}
			if err := a.requireSession(cmd.Context()); err != nil {
				return err
			}

			t, err := a.client.TaxSummary(cmd.Context(), year)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "%s\n\n", year.Label())
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SECTION\tLIMIT\tINVESTED\tREMAINING")
			for _, s := range t.Sections {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					s.Section,
					format.Currency(s.Limit),
					format.Currency(s.Invested),
					format.Currency(s.Remaining))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(a.out, "\nTotal invested: %s\n", format.Currency(t.TotalInvested))
			return nil
		},
	}

	cmd.Flags().StringVar(&fyStart, "fy", "", "financial year by starting calendar year (default: current)")

	return cmd
}
