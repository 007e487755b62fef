// Package export writes fetched transactions and accounts to local CSV and
// XLSX files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fintrail-dev/fintrail/internal/model"
)

// Header is the CSV header for transaction exports.
const Header = "transaction_id,date,amount,description,narration,debit_account,credit_account,category,tax_category"

const (
	numFields    = 9
	colID        = 0
	colDate      = 1
	colAmount    = 2
	colDesc      = 3
	colNarration = 4
	colDebit     = 5
	colCredit    = 6
	colCategory  = 7
	colTaxCat    = 8
)

// WriteCSV writes transactions as CSV, header included.
func WriteCSV(w io.Writer, transactions []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, tx := range transactions {
		if err := cw.Write(MarshalTransaction(tx)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row. Account columns
// carry the embedded name when the server provided one, the raw ID
// otherwise.
func MarshalTransaction(tx model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = strconv.FormatInt(tx.ID, 10)
	row[colDate] = tx.Date.String()
	row[colAmount] = tx.Amount.StringFixed(2)
	row[colDesc] = tx.Description
	row[colNarration] = tx.Narration
	row[colDebit] = accountLabel(tx.DebitAccount, tx.DebitAccountID)
	row[colCredit] = accountLabel(tx.CreditAccount, tx.CreditAccountID)
	row[colCategory] = tx.Category
	row[colTaxCat] = tx.TaxCategory
	return row
}

func accountLabel(ref *model.AccountRef, id int64) string {
	if ref != nil && ref.Name != "" {
		return ref.Name
	}
	return strconv.FormatInt(id, 10)
}
