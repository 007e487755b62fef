package commands

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/fintrail-dev/fintrail/internal/api"
	"github.com/fintrail-dev/fintrail/internal/format"
	"github.com/fintrail-dev/fintrail/internal/fy"
	"github.com/fintrail-dev/fintrail/internal/model"
	"github.com/fintrail-dev/fintrail/internal/statement"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// rangeFlags derive a date range from --fy and --month the way the list
// views filter: a financial year alone covers Apr 1..Mar 31, adding a month
// index narrows to that calendar month.
type rangeFlags struct {
	fyStart    string
	monthIndex int
}

func (r *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&r.fyStart, "fy", "", "financial year by starting calendar year, e.g. 2024")
	cmd.Flags().IntVar(&r.monthIndex, "month", -1, "month index within the financial year (0 = April)")
}

func (r *rangeFlags) apply(q *api.TransactionQuery) error {
	if r.fyStart == "" {
		if r.monthIndex >= 0 {
			return fmt.Errorf("--month requires --fy")
		}
		return nil
	}

	year, err := fy.Parse(r.fyStart)
	if err != nil {
		return err
	}

	if r.monthIndex < 0 {
		start, end := year.Range()
		q.StartDate, q.EndDate = start, end
		return nil
	}

	start, next, err := year.MonthRange(r.monthIndex)
	if err != nil {
		return err
	}
	// The API range is inclusive; step back one day from the half-open end.
	q.StartDate = start
	q.EndDate = model.DateOf(next.Time().AddDate(0, 0, -1))
	return nil
}

func newTxCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage transactions",
	}
	cmd.AddCommand(newTxListCommand(a))
	cmd.AddCommand(newTxAddCommand(a))
	cmd.AddCommand(newTxEditCommand(a))
	cmd.AddCommand(newTxDeleteCommand(a))
	cmd.AddCommand(newTxSummaryCommand(a))
	cmd.AddCommand(newTxImportCSVCommand(a))
	return cmd
}

func newTxListCommand(a *app) *cobra.Command {
	var q api.TransactionQuery
	var ranges rangeFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ranges.apply(&q); err != nil {
				return err
			}
			if q.Limit == 0 && a.cfg != nil {
				q.Limit = a.cfg.Defaults.PageLimit
			}
			if err := a.requireSession(cmd.Context()); err != nil {
				return err
			}

			page, err := a.client.ListTransactions(cmd.Context(), q)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tKIND\tAMOUNT\tDESCRIPTION\tDEBIT\tCREDIT\tCATEGORY")
			for _, tx := range page.Transactions {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					tx.ID,
					format.Date(tx.Date.Time()),
					tx.Kind(),
					format.Amount(tx.Amount),
					tx.Description,
					refName(tx.DebitAccount, tx.DebitAccountID),
					refName(tx.CreditAccount, tx.CreditAccountID),
					tx.Category)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			p := page.Pagination
			if p.TotalPages > 0 {
				fmt.Fprintf(a.out, "\nPage %d of %d (%d total)\n", p.Page, p.TotalPages, p.Total)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&q.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&q.Limit, "limit", 0, "page size")
	cmd.Flags().StringVar(&q.Search, "search", "", "free-text search")
	cmd.Flags().Int64Var(&q.AccountID, "account", 0, "filter by account id")
	cmd.Flags().StringVar(&q.SortBy, "sort-by", "", "sort field")
	cmd.Flags().StringVar(&q.SortOrder, "sort-order", "", "asc or desc")
	ranges.register(cmd)

	return cmd
}

func refName(ref *model.AccountRef, id int64) string {
	if ref != nil && ref.Name != "" {
		return ref.Name
	}
	return strconv.FormatInt(id, 10)
}

type txInputFlags struct {
	date        string
	amount      string
	description string
	narration   string
	debit       int64
	credit      int64
	category    string
	taxCategory string
}

func (f *txInputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.amount, "amount", "", "positive amount")
	cmd.Flags().StringVar(&f.description, "description", "", "description")
	cmd.Flags().StringVar(&f.narration, "narration", "", "narration")
	cmd.Flags().Int64Var(&f.debit, "debit", 0, "debit (destination) account id")
	cmd.Flags().Int64Var(&f.credit, "credit", 0, "credit (source) account id")
	cmd.Flags().StringVar(&f.category, "category", "", "category")
	cmd.Flags().StringVar(&f.taxCategory, "tax-category", "", "tax category")
}

func (f *txInputFlags) build() (model.NewTransaction, error) {
	var input model.NewTransaction

	if f.date != "" {
		date, err := model.ParseDate(f.date)
		if err != nil {
			return input, err
		}
		input.Date = date
	}
	if f.amount != "" {
		amount, err := decimal.NewFromString(f.amount)
		if err != nil {
			return input, fmt.Errorf("parsing amount %q: %w", f.amount, err)
		}
		input.Amount = amount
	}

	input.Description = f.description
	input.Narration = f.narration
	input.DebitAccountID = f.debit
	input.CreditAccountID = f.credit
	input.Category = f.category
	input.TaxCategory = f.taxCategory

	if errs := model.ValidateNewTransaction(input); len(errs) > 0 {
		return input, validationMessage(errs)
	}
	return input, nil
}

func newTxAddCommand(a *app) *cobra.Command {
	var flags txInputFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := flags.build()
			if err != nil {
				return err
			}
			if err := a.requireSession(cmd.Context()); err != nil {
				return err
			}

			tx, err := a.client.CreateTransaction(cmd.Context(), input)
			a.audit("transaction.create", "transaction", strconv.FormatInt(tx.ID, 10), err)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Created transaction %d\n", tx.ID)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newTxEditCommand(a *app) *cobra.Command {
	var flags txInputFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			input, err := flags.build()
			if err != nil {
				return err
			}
			if err := a.requireSession(cmd.Context()); err != nil {
				return err
			}

			_, err = a.client.UpdateTransaction(cmd.Context(), id, input)
			a.audit("transaction.update", "transaction", strconv.FormatInt(id, 10), err)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Updated transaction %d\n", id)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newTxDeleteCommand(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.requireSession(cmd.Context()); err != nil {
				return err
			}

			if !yes {
				ok, err := a.promptYesNo(fmt.Sprintf("Delete transaction %d?", id))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(a.out, "Aborted")
					return nil
				}
			}

			err = a.client.DeleteTransaction(cmd.Context(), id)
			a.audit("transaction.delete", "transaction", strconv.FormatInt(id, 10), err)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Deleted transaction %d\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")

	return cmd
}

func newTxSummaryCommand(a *app) *cobra.Command {
	var q api.TransactionQuery
	var ranges rangeFlags

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show income/expense totals for a range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ranges.apply(&q); err != nil {
				return err
			}
			if err := a.requireSession(cmd.Context()); err != nil {
				return err
			}

			s, err := a.client.TransactionSummary(cmd.Context(), q)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Income:  %s\n", format.Currency(s.TotalIncome))
			fmt.Fprintf(a.out, "Expense: %s\n", format.Currency(s.TotalExpense))
			fmt.Fprintf(a.out, "Net:     %s\n", format.Currency(s.Net))
			return nil
		},
	}

	cmd.Flags().StringVar(&q.Search, "search", "", "free-text search")
	cmd.Flags().Int64Var(&q.AccountID, "account", 0, "filter by account id")
	ranges.register(cmd)

	return cmd
}

func newTxImportCSVCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-csv <file>",
		Short: "Direct CSV import, bypassing the staging review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if statement.DetectKind(path) != statement.KindCSV {
				return fmt.Errorf("%s is not a CSV file", path)
			}
			if err := a.requireSession(cmd.Context()); err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			defer f.Close()

			result, err := a.client.ImportCSV(cmd.Context(), f.Name(), f)
			a.audit("transaction.import-csv", "file", path, err)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Imported %d, skipped %d\n", result.Imported, result.Skipped)
			for _, e := range result.Errors {
				fmt.Fprintf(a.out, "  error: %s\n", e)
			}
			return nil
		},
	}
	return cmd
}
