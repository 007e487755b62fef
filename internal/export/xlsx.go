package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/fintrail-dev/fintrail/internal/model"
)

const (
	sheetTransactions = "Transactions"
	sheetAccounts     = "Accounts"
)

// WriteXLSX writes a workbook with a Transactions sheet and an Accounts
// sheet (display balances, sign convention applied).
func WriteXLSX(path string, transactions []model.Transaction, accounts []model.Account) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetTransactions); err != nil {
		return fmt.Errorf("naming transactions sheet: %w", err)
	}

	txHeader := []any{"ID", "Date", "Amount", "Description", "Narration", "Debit Account", "Credit Account", "Category", "Tax Category"}
	if err := writeRow(f, sheetTransactions, 1, txHeader); err != nil {
		return err
	}
	for i, tx := range transactions {
		amount, _ := tx.Amount.Float64()
		row := []any{
			tx.ID,
			tx.Date.String(),
			amount,
			tx.Description,
			tx.Narration,
			accountLabel(tx.DebitAccount, tx.DebitAccountID),
			accountLabel(tx.CreditAccount, tx.CreditAccountID),
			tx.Category,
			tx.TaxCategory,
		}
		if err := writeRow(f, sheetTransactions, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(sheetAccounts); err != nil {
		return fmt.Errorf("creating accounts sheet: %w", err)
	}
	acctHeader := []any{"ID", "Name", "Type", "Sub Type", "Balance"}
	if err := writeRow(f, sheetAccounts, 1, acctHeader); err != nil {
		return err
	}
	for i, a := range accounts {
		balance, _ := a.DisplayBalance().Float64()
		row := []any{a.ID, a.Name, string(a.Type), a.SubType, balance}
		if err := writeRow(f, sheetAccounts, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("writing cell %s: %w", cell, err)
		}
	}
	return nil
}
