package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "Asset"
	AccountTypeLiability AccountType = "Liability"
	AccountTypeIncome    AccountType = "Income"
	AccountTypeExpense   AccountType = "Expense"
	AccountTypeEquity    AccountType = "Equity"
)

// AccountTypes lists all valid account types in display order.
var AccountTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeIncome,
	AccountTypeExpense,
	AccountTypeEquity,
}

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeIncome, AccountTypeExpense, AccountTypeEquity:
		return true
	}
	return false
}

// Account represents a server-owned account. The client holds an ephemeral,
// non-authoritative copy; balance is computed server-side from transactions.
type Account struct {
	ID          int64           `json:"account_id"`
	Name        string          `json:"account_name"`
	Type        AccountType     `json:"account_type"`
	SubType     string          `json:"sub_type,omitempty"`
	Description string          `json:"description,omitempty"`
	Balance     decimal.Decimal `json:"balance"`
}

// DisplayBalance returns the balance under the sign convention for the
// account's type: Liability and Income balances display as their magnitude,
// Asset, Expense and Equity display their natural sign.
func (a Account) DisplayBalance() decimal.Decimal {
	switch a.Type {
	case AccountTypeLiability, AccountTypeIncome:
		return a.Balance.Abs()
	default:
		return a.Balance
	}
}

// PathSegments splits a ":"-delimited description into hierarchy segments.
// Descriptions without a delimiter yield a single segment; an empty
// description yields nil.
func (a Account) PathSegments() []string {
	if a.Description == "" {
		return nil
	}
	parts := strings.Split(a.Description, ":")
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			segs = append(segs, s)
		}
	}
	if len(segs) == 0 {
		return nil
	}
	return segs
}
