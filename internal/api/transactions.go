package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/fintrail-dev/fintrail/internal/model"
)

// TransactionQuery holds the list filters. Zero values are omitted from the
// query string.
type TransactionQuery struct {
	Page      int
	Limit     int
	Search    string
	AccountID int64
	StartDate model.Date
	EndDate   model.Date
	SortBy    string
	SortOrder string
}

func (q TransactionQuery) values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.AccountID != 0 {
		v.Set("account_id", strconv.FormatInt(q.AccountID, 10))
	}
	if !q.StartDate.IsZero() {
		v.Set("start_date", q.StartDate.String())
	}
	if !q.EndDate.IsZero() {
		v.Set("end_date", q.EndDate.String())
	}
	if q.SortBy != "" {
		v.Set("sort_by", q.SortBy)
	}
	if q.SortOrder != "" {
		v.Set("sort_order", q.SortOrder)
	}
	return v
}

// Pagination is the server's paging metadata.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// TransactionPage is one page of the transaction list.
type TransactionPage struct {
	Transactions []model.Transaction `json:"transactions"`
	Pagination   Pagination          `json:"pagination"`
}

// ListTransactions fetches a filtered, paginated transaction page.
func (c *Client) ListTransactions(ctx context.Context, q TransactionQuery) (TransactionPage, error) {
	var page TransactionPage
	if err := c.do(ctx, http.MethodGet, pathWithQuery("/transactions", q.values()), nil, &page); err != nil {
		return TransactionPage{}, err
	}
	return page, nil
}

// Summary holds income and expense totals for a filtered range.
type Summary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Net          decimal.Decimal `json:"net"`
}

// TransactionSummary fetches income/expense totals for the same filters the
// list accepts.
func (c *Client) TransactionSummary(ctx context.Context, q TransactionQuery) (Summary, error) {
	var s Summary
	if err := c.do(ctx, http.MethodGet, pathWithQuery("/transactions/summary", q.values()), nil, &s); err != nil {
		return Summary{}, err
	}
	return s, nil
}

// CreateTransaction creates a transaction and returns the server's copy.
func (c *Client) CreateTransaction(ctx context.Context, input model.NewTransaction) (model.Transaction, error) {
	var tx model.Transaction
	if err := c.do(ctx, http.MethodPost, "/transactions", input, &tx); err != nil {
		return model.Transaction{}, err
	}
	return tx, nil
}

// UpdateTransaction overwrites a transaction.
func (c *Client) UpdateTransaction(ctx context.Context, id int64, input model.NewTransaction) (model.Transaction, error) {
	var tx model.Transaction
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/transactions/%d", id), input, &tx); err != nil {
		return model.Transaction{}, err
	}
	return tx, nil
}

// DeleteTransaction deletes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/transactions/%d", id), nil, nil)
}

// CSVImportResult is the summary of a legacy direct CSV import.
type CSVImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// ImportCSV uploads a CSV for direct import, bypassing the staging review.
func (c *Client) ImportCSV(ctx context.Context, fileName string, file io.Reader) (CSVImportResult, error) {
	var result CSVImportResult
	err := c.doMultipart(ctx, http.MethodPost, "/transactions/import-csv", nil, "file", fileName, file, &result)
	if err != nil {
		return CSVImportResult{}, err
	}
	return result, nil
}
