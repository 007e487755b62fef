package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fintrail-dev/fintrail/internal/api"
	"github.com/fintrail-dev/fintrail/internal/export"
	"github.com/fintrail-dev/fintrail/internal/model"
)

func newExportCommand(a *app) *cobra.Command {
	var outPath string
	var ranges rangeFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions to CSV or XLSX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var q api.TransactionQuery
			if err := ranges.apply(&q); err != nil {
				return err
			}
			if err := a.requireSession(cmd.Context()); err != nil {
				return err
			}

			transactions, err := a.fetchAllTransactions(cmd, q)
			if err != nil {
				return err
			}

			if outPath == "" {
				outPath = "transactions.csv"
				if a.cfg.Defaults.ExportDir != "" {
					outPath = filepath.Join(a.cfg.Defaults.ExportDir, outPath)
				}
			}

			switch strings.ToLower(filepath.Ext(outPath)) {
			case ".csv":
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating %s: %w", outPath, err)
				}
				defer f.Close()
				if err := export.WriteCSV(f, transactions); err != nil {
					return err
				}
			case ".xlsx":
				accts, err := a.client.ListAccounts(cmd.Context())
				if err != nil {
					return err
				}
				if err := export.WriteXLSX(outPath, transactions, accts); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported export format %q (use .csv or .xlsx)", filepath.Ext(outPath))
			}

			fmt.Fprintf(a.out, "Wrote %d transactions to %s\n", len(transactions), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (.csv or .xlsx)")
	ranges.register(cmd)

	return cmd
}

// fetchAllTransactions pages through the full filtered list.
func (a *app) fetchAllTransactions(cmd *cobra.Command, q api.TransactionQuery) ([]model.Transaction, error) {
	q.Limit = 100
	q.Page = 1

	var all []model.Transaction
	for {
		page, err := a.client.ListTransactions(cmd.Context(), q)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Transactions...)
		if len(page.Transactions) == 0 || q.Page >= page.Pagination.TotalPages {
			return all, nil
		}
		q.Page++
	}
}
