package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fintrail-dev/fintrail/internal/api"
	"github.com/fintrail-dev/fintrail/internal/format"
	"github.com/fintrail-dev/fintrail/internal/model"
	"github.com/fintrail-dev/fintrail/internal/review"
	"github.com/fintrail-dev/fintrail/internal/statement"
)

func newImportCommand(a *app) *cobra.Command {
	var sourceAccount int64
	var password string
	var skipPreview bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Upload a statement and review the staged transactions",
		Long: `Uploads a bank statement (PDF/CSV/Excel) for server-side parsing and
classification, then walks through the review: inspect the suggested
categories and accounts, edit or reject rows, and confirm to promote the
batch to real transactions. Cancelling discards the whole batch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if statement.DetectKind(path) == statement.KindUnknown {
				return fmt.Errorf("unsupported statement format: %s", path)
			}
			if err := a.requireSession(cmd.Context()); err != nil {
				return err
			}

			if !skipPreview && statement.DetectKind(path) == statement.KindCSV {
				if err := a.showPreview(path); err != nil {
					a.notify(err)
				}
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			defer f.Close()

			sess := review.NewSession(a.client)
			if err := sess.Upload(cmd.Context(), f.Name(), f, password, sourceAccount); err != nil {
				// Upload failures leave the workflow in the upload phase.
				return err
			}

			summary := sess.UploadSummary()
			fmt.Fprintf(a.out, "Parsed %d rows (%d high confidence, %d need review), batch %s\n",
				summary.TotalParsed, summary.HighConfidence, summary.NeedsReview, summary.BatchID)

			return a.reviewLoop(cmd, sess)
		},
	}

	cmd.Flags().Int64Var(&sourceAccount, "account", 0, "source account id (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&password, "password", "", "PDF password, if protected")
	cmd.Flags().BoolVar(&skipPreview, "no-preview", false, "skip the local CSV preview")

	return cmd
}

func (a *app) showPreview(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := statement.PreviewCSV(f, 5)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	fmt.Fprintln(a.out, "Preview:")
	for _, row := range rows {
		fmt.Fprintf(a.out, "  %s  %-30s  %s\n", format.Date(row.Date), row.Description, row.Amount.StringFixed(2))
	}
	return nil
}

// reviewLoop drives the interactive review on stdin until the session
// confirms, cancels, or input ends (which cancels too — staged rows must not
// leak past the session).
func (a *app) reviewLoop(cmd *cobra.Command, sess *review.Session) error {
	ctx := cmd.Context()
	scanner := bufio.NewScanner(a.in)

	a.renderReview(sess)
	fmt.Fprintln(a.out, reviewHelp)

	for {
		fmt.Fprint(a.out, "> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				a.notify(err)
			}
			return a.cancelReview(ctx, sess)
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "sel":
			for _, arg := range fields[1:] {
				id, err := parseID(arg)
				if err != nil {
					a.notify(err)
					continue
				}
				if err := sess.Toggle(id); err != nil {
					a.notify(err)
				}
			}
			a.renderReview(sess)

		case "all":
			if err := sess.SelectAllActive(); err != nil {
				a.notify(err)
			}
			a.renderReview(sess)

		case "none":
			sess.ClearSelection()
			a.renderReview(sess)

		case "edit":
			if err := a.editStaged(ctx, sess, fields[1:]); err != nil {
				a.notify(err)
			}
			a.renderReview(sess)

		case "cat":
			if len(fields) < 2 {
				a.notify(fmt.Errorf("usage: cat <category>"))
				continue
			}
			category := strings.Join(fields[1:], " ")
			if err := sess.Recategorize(ctx, category); err != nil {
				a.notify(err)
			}
			a.renderReview(sess)

		case "reject":
			if err := sess.RejectSelected(ctx); err != nil {
				a.notify(err)
			}
			a.renderReview(sess)

		case "confirm":
			if !sess.CanConfirm() {
				a.notify(review.ErrNotReady)
				continue
			}
			if err := sess.Confirm(ctx); err != nil {
				a.notify(err)
				continue
			}
			result := sess.Result()
			a.audit("import.confirm", "batch", sess.UploadSummary().BatchID.String(), nil)
			fmt.Fprintf(a.out, "Imported %d, skipped %d\n", result.Imported, result.Skipped)
			for _, e := range result.Errors {
				fmt.Fprintf(a.out, "  error: %s\n", e)
			}
			if sess.Close() {
				a.refreshAfterImport(cmd)
			}
			return nil

		case "cancel", "q", "quit":
			return a.cancelReview(ctx, sess)

		case "help", "?":
			fmt.Fprintln(a.out, reviewHelp)

		default:
			a.notify(fmt.Errorf("unknown command %q", fields[0]))
		}
	}
}

const reviewHelp = `commands:
  sel <id>...      toggle row selection
  all              select all non-rejected rows
  none             clear selection
  edit <id> [cat=X] [debit=N] [credit=N]
  cat <category>   re-categorize selected rows
  reject           reject selected rows
  confirm          import all ready rows
  cancel           discard the batch`

// editStaged parses "edit <id> [cat=X] [debit=N] [credit=N]" and persists
// the single-row update immediately.
func (a *app) editStaged(ctx context.Context, sess *review.Session, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: edit <id> [cat=X] [debit=N] [credit=N]")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	var updates model.StagedUpdate
	for _, arg := range args[1:] {
		key, value, found := strings.Cut(arg, "=")
		if !found {
			return fmt.Errorf("expected key=value, got %q", arg)
		}
		switch key {
		case "cat":
			updates.SuggestedCategory = &value
		case "debit":
			acct, err := parseID(value)
			if err != nil {
				return err
			}
			updates.SuggestedDebitAccountID = &acct
		case "credit":
			acct, err := parseID(value)
			if err != nil {
				return err
			}
			updates.SuggestedCreditAccountID = &acct
		default:
			return fmt.Errorf("unknown field %q", key)
		}
	}

	return sess.EditRow(ctx, id, updates)
}

func (a *app) renderReview(sess *review.Session) {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, " \tID\tDATE\tDIR\tAMOUNT\tDESCRIPTION\tCATEGORY\tCONF\tACCOUNTS")
	for _, row := range sess.Rows() {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			rowMarker(sess, row),
			row.ID,
			row.Date.String(),
			row.TransactionType,
			format.Amount(row.Amount),
			row.Description,
			row.SuggestedCategory,
			confMarker(row),
			accountsMarker(row))
	}
	tw.Flush()

	c := sess.Counts()
	fmt.Fprintf(a.out, "%d rows, %d active, %d confident, %d ready to import\n",
		c.Total, c.Active, c.Confident, c.Ready)
}

func rowMarker(sess *review.Session, row model.StagedTransaction) string {
	switch {
	case row.Rejected():
		return "REJ"
	case sess.Selected(row.ID):
		return "[x]"
	default:
		return "[ ]"
	}
}

func confMarker(row model.StagedTransaction) string {
	if row.Confident() {
		return row.Confidence.String()
	}
	return row.Confidence.String() + "?"
}

// accountsMarker flags rows that can never import because a suggested
// account is missing, independent of rejection.
func accountsMarker(row model.StagedTransaction) string {
	if row.AccountsComplete() {
		return fmt.Sprintf("%d/%d", *row.SuggestedDebitAccountID, *row.SuggestedCreditAccountID)
	}
	return "!! missing"
}

// cancelReview clears the batch server-side so staged rows never outlive
// the session.
func (a *app) cancelReview(ctx context.Context, sess *review.Session) error {
	if err := sess.Cancel(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Cancelled — staged rows discarded")
	return nil
}

// refreshAfterImport refetches the transaction list and period summary, the
// way the calling view refreshes after a confirmed import.
func (a *app) refreshAfterImport(cmd *cobra.Command) {
	q := api.TransactionQuery{Page: 1, Limit: a.cfg.Defaults.PageLimit}
	if _, err := a.client.ListTransactions(cmd.Context(), q); err != nil {
		a.notify(err)
		return
	}
	s, err := a.client.TransactionSummary(cmd.Context(), api.TransactionQuery{})
	if err != nil {
		a.notify(err)
		return
	}
	fmt.Fprintf(a.out, "Totals now: income %s, expense %s\n",
		format.Currency(s.TotalIncome), format.Currency(s.TotalExpense))
}
