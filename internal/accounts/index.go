// Package accounts provides in-memory lookup over a fetched account list.
package accounts

import "github.com/fintrail-dev/fintrail/internal/model"

// Index provides lookup over the accounts returned by one fetch. It is
// rebuilt after every refetch; the server stays the source of truth.
type Index struct {
	accounts []model.Account
	byID     map[int64]model.Account
}

// NewIndex creates an Index from a slice of accounts.
func NewIndex(accounts []model.Account) *Index {
	byID := make(map[int64]model.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	return &Index{accounts: accounts, byID: byID}
}

// All returns all accounts in fetch order.
func (ix *Index) All() []model.Account {
	return ix.accounts
}

// Get returns an account by ID.
func (ix *Index) Get(id int64) (model.Account, bool) {
	a, ok := ix.byID[id]
	return a, ok
}

// Exists reports whether an account ID exists.
func (ix *Index) Exists(id int64) bool {
	_, ok := ix.byID[id]
	return ok
}

// Name returns the account name for id, or "" when unknown.
func (ix *Index) Name(id int64) string {
	return ix.byID[id].Name
}

// TypeOf returns the account type for id, or "" when unknown.
func (ix *Index) TypeOf(id int64) model.AccountType {
	return ix.byID[id].Type
}

// ByType returns all accounts of the given type.
func (ix *Index) ByType(accountType model.AccountType) []model.Account {
	var result []model.Account
	for _, a := range ix.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}
