// Package report derives dashboard views from fetched account and
// transaction lists. Every function is a stateless reducer, recomputed in
// full from its inputs.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fintrail-dev/fintrail/internal/model"
)

// NetWorth computes sum(Asset balances) - abs(sum(Liability balances)).
// Order-independent: balances are summed before the sign convention applies.
func NetWorth(accounts []model.Account) decimal.Decimal {
	assets := decimal.Zero
	liabilities := decimal.Zero
	for _, a := range accounts {
		switch a.Type {
		case model.AccountTypeAsset:
			assets = assets.Add(a.Balance)
		case model.AccountTypeLiability:
			liabilities = liabilities.Add(a.Balance)
		}
	}
	return assets.Sub(liabilities.Abs())
}

// Slice is one account's share of a breakdown.
type Slice struct {
	Label  string
	Amount decimal.Decimal
	Share  decimal.Decimal // fraction of the total, 0 when total is 0
}

// AssetAllocation breaks the Asset total down per account, largest first.
func AssetAllocation(accounts []model.Account) []Slice {
	total := decimal.Zero
	var assets []model.Account
	for _, a := range accounts {
		if a.Type == model.AccountTypeAsset {
			assets = append(assets, a)
			total = total.Add(a.Balance)
		}
	}

	slices := make([]Slice, 0, len(assets))
	for _, a := range assets {
		share := decimal.Zero
		if !total.IsZero() {
			share = a.Balance.Div(total)
		}
		slices = append(slices, Slice{Label: a.Name, Amount: a.Balance, Share: share})
	}
	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].Amount.GreaterThan(slices[j].Amount)
	})
	return slices
}

// LiabilityBreakdown sums Liability magnitudes grouped by sub_type, largest
// first. Accounts without a sub_type group under "Other".
func LiabilityBreakdown(accounts []model.Account) []Slice {
	totals := make(map[string]decimal.Decimal)
	var order []string
	grand := decimal.Zero

	for _, a := range accounts {
		if a.Type != model.AccountTypeLiability {
			continue
		}
		key := a.SubType
		if key == "" {
			key = "Other"
		}
		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}
		amt := a.Balance.Abs()
		totals[key] = totals[key].Add(amt)
		grand = grand.Add(amt)
	}

	slices := make([]Slice, 0, len(order))
	for _, key := range order {
		share := decimal.Zero
		if !grand.IsZero() {
			share = totals[key].Div(grand)
		}
		slices = append(slices, Slice{Label: key, Amount: totals[key], Share: share})
	}
	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].Amount.GreaterThan(slices[j].Amount)
	})
	return slices
}

// MonthFlow is one calendar month's income and expense totals.
type MonthFlow struct {
	Year    int
	Month   int // 1..12
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// AccountTyper resolves an account ID to its type.
type AccountTyper interface {
	TypeOf(id int64) model.AccountType
}

// MonthlyFlows groups transactions into per-month income and expense totals
// using the double-entry classification. Transfers contribute to neither.
// Results are sorted chronologically.
func MonthlyFlows(transactions []model.Transaction, accounts AccountTyper) []MonthFlow {
	type key struct{ year, month int }
	totals := make(map[key]*MonthFlow)

	for _, tx := range transactions {
		kind := model.Classify(accounts.TypeOf(tx.DebitAccountID), accounts.TypeOf(tx.CreditAccountID))
		if kind == model.KindTransfer {
			continue
		}

		t := tx.Date.Time()
		k := key{t.Year(), int(t.Month())}
		flow, ok := totals[k]
		if !ok {
			flow = &MonthFlow{Year: k.year, Month: k.month}
			totals[k] = flow
		}
		switch kind {
		case model.KindIncome:
			flow.Income = flow.Income.Add(tx.Amount)
		case model.KindExpense:
			flow.Expense = flow.Expense.Add(tx.Amount)
		}
	}

	flows := make([]MonthFlow, 0, len(totals))
	for _, f := range totals {
		flows = append(flows, *f)
	}
	sort.Slice(flows, func(i, j int) bool {
		if flows[i].Year != flows[j].Year {
			return flows[i].Year < flows[j].Year
		}
		return flows[i].Month < flows[j].Month
	})
	return flows
}

// FIREProgress returns netWorth/target clamped to [0,1]. A zero or negative
// target yields zero.
func FIREProgress(netWorth, target decimal.Decimal) decimal.Decimal {
	if !target.IsPositive() {
		return decimal.Zero
	}
	ratio := netWorth.Div(target)
	if ratio.IsNegative() {
		return decimal.Zero
	}
	if ratio.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return ratio
}

// CategoryTotals sums transaction amounts grouped by tax category, skipping
// transactions without one. Largest first.
func CategoryTotals(transactions []model.Transaction) []Slice {
	totals := make(map[string]decimal.Decimal)
	var order []string
	grand := decimal.Zero

	for _, tx := range transactions {
		if tx.TaxCategory == "" {
			continue
		}
		if _, seen := totals[tx.TaxCategory]; !seen {
			order = append(order, tx.TaxCategory)
		}
		totals[tx.TaxCategory] = totals[tx.TaxCategory].Add(tx.Amount)
		grand = grand.Add(tx.Amount)
	}

	slices := make([]Slice, 0, len(order))
	for _, key := range order {
		share := decimal.Zero
		if !grand.IsZero() {
			share = totals[key].Div(grand)
		}
		slices = append(slices, Slice{Label: key, Amount: totals[key], Share: share})
	}
	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].Amount.GreaterThan(slices[j].Amount)
	})
	return slices
}
