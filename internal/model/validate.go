package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationError describes a single client-side validation failure, caught
// before any request is made.
type ValidationError struct {
	Field       string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Description)
}

// NewTransaction holds user input for creating or updating a transaction.
type NewTransaction struct {
	Date            Date            `json:"date"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	Narration       string          `json:"narration,omitempty"`
	DebitAccountID  int64           `json:"debit_account_id"`
	CreditAccountID int64           `json:"credit_account_id"`
	Category        string          `json:"category,omitempty"`
	TaxCategory     string          `json:"tax_category,omitempty"`
}

// NewAccount holds user input for creating or updating an account.
type NewAccount struct {
	Name        string      `json:"account_name"`
	Type        AccountType `json:"account_type"`
	SubType     string      `json:"sub_type,omitempty"`
	Description string      `json:"description,omitempty"`
}

// ValidateNewTransaction checks required fields and amount shape before the
// request goes out.
func ValidateNewTransaction(tx NewTransaction) []ValidationError {
	var errs []ValidationError

	if tx.Date.IsZero() {
		errs = append(errs, ValidationError{Field: "date", Description: "date is required"})
	}
	if tx.Description == "" {
		errs = append(errs, ValidationError{Field: "description", Description: "description is required"})
	}
	if !tx.Amount.IsPositive() {
		errs = append(errs, ValidationError{Field: "amount", Description: "amount must be positive"})
	}

	// No more than 2 decimal places.
	hundred := decimal.NewFromInt(100)
	if !tx.Amount.Mul(hundred).Equal(tx.Amount.Mul(hundred).Floor()) {
		errs = append(errs, ValidationError{
			Field:       "amount",
			Description: fmt.Sprintf("amount %s has more than 2 decimal places", tx.Amount),
		})
	}

	if tx.DebitAccountID == 0 {
		errs = append(errs, ValidationError{Field: "debit_account_id", Description: "debit account is required"})
	}
	if tx.CreditAccountID == 0 {
		errs = append(errs, ValidationError{Field: "credit_account_id", Description: "credit account is required"})
	}
	if tx.DebitAccountID != 0 && tx.DebitAccountID == tx.CreditAccountID {
		errs = append(errs, ValidationError{
			Field:       "credit_account_id",
			Description: "debit and credit accounts must be distinct",
		})
	}

	return errs
}

// ValidateNewAccount checks required fields on account input.
func ValidateNewAccount(a NewAccount) []ValidationError {
	var errs []ValidationError

	if a.Name == "" {
		errs = append(errs, ValidationError{Field: "account_name", Description: "name is required"})
	}
	if !a.Type.Valid() {
		errs = append(errs, ValidationError{
			Field:       "account_type",
			Description: fmt.Sprintf("unknown account type %q", a.Type),
		})
	}

	return errs
}
