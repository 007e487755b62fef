package model

import "github.com/shopspring/decimal"

// TransactionKind is the display classification of a transaction.
type TransactionKind string

const (
	KindIncome   TransactionKind = "income"
	KindExpense  TransactionKind = "expense"
	KindTransfer TransactionKind = "transfer"
)

// Transaction represents a double-entry transaction: a positive amount moved
// from the credit (source) account to the debit (destination) account.
type Transaction struct {
	ID              int64           `json:"transaction_id"`
	Date            Date            `json:"date"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	Narration       string          `json:"narration,omitempty"`
	DebitAccountID  int64           `json:"debit_account_id"`
	CreditAccountID int64           `json:"credit_account_id"`
	DebitAccount    *AccountRef     `json:"debit_account,omitempty"`
	CreditAccount   *AccountRef     `json:"credit_account,omitempty"`
	Category        string          `json:"category,omitempty"`
	TaxCategory     string          `json:"tax_category,omitempty"`
}

// AccountRef is the abbreviated account shape the server embeds in
// transaction responses.
type AccountRef struct {
	ID   int64       `json:"account_id"`
	Name string      `json:"account_name"`
	Type AccountType `json:"account_type"`
}

// Classify labels a transaction by the types of its two accounts: expense if
// the debit side is an Expense account, income if the credit side is an
// Income account, transfer otherwise. Expense takes precedence when both
// match, so the three labels are mutually exclusive and exhaustive.
//
// A transaction between two Income accounts (or two Expense accounts with an
// Income credit side absent) comes out as a transfer. That matches the
// server's convention and is kept as-is.
func Classify(debitType, creditType AccountType) TransactionKind {
	switch {
	case debitType == AccountTypeExpense:
		return KindExpense
	case creditType == AccountTypeIncome:
		return KindIncome
	default:
		return KindTransfer
	}
}

// Kind classifies the transaction using its embedded account refs. Falls back
// to transfer when either ref is missing.
func (t Transaction) Kind() TransactionKind {
	if t.DebitAccount == nil || t.CreditAccount == nil {
		return KindTransfer
	}
	return Classify(t.DebitAccount.Type, t.CreditAccount.Type)
}
