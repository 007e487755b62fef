package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fintrail-dev/fintrail/internal/model"
)

// ListAccounts fetches all accounts with their computed balances.
func (c *Client) ListAccounts(ctx context.Context) ([]model.Account, error) {
	var resp struct {
		Accounts []model.Account `json:"accounts"`
	}
	if err := c.do(ctx, http.MethodGet, "/accounts", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Accounts, nil
}

// GetAccount fetches a single account.
func (c *Client) GetAccount(ctx context.Context, id int64) (model.Account, error) {
	var acct model.Account
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/accounts/%d", id), nil, &acct); err != nil {
		return model.Account{}, err
	}
	return acct, nil
}

// CreateAccount creates an account and returns the server's copy.
func (c *Client) CreateAccount(ctx context.Context, input model.NewAccount) (model.Account, error) {
	var acct model.Account
	if err := c.do(ctx, http.MethodPost, "/accounts", input, &acct); err != nil {
		return model.Account{}, err
	}
	return acct, nil
}

// UpdateAccount overwrites an account. The server applies last-write-wins;
// there is no optimistic concurrency control.
func (c *Client) UpdateAccount(ctx context.Context, id int64, input model.NewAccount) (model.Account, error) {
	var acct model.Account
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/accounts/%d", id), input, &acct); err != nil {
		return model.Account{}, err
	}
	return acct, nil
}

// DeleteAccount deletes an account. Accounts with linked transactions are
// rejected server-side; the rejection message is surfaced verbatim.
func (c *Client) DeleteAccount(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/accounts/%d", id), nil, nil)
}
