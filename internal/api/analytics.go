package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/fintrail-dev/fintrail/internal/fy"
	"github.com/fintrail-dev/fintrail/internal/model"
)

// DashboardData is the server's pre-aggregated dashboard payload.
type DashboardData struct {
	NetWorth     decimal.Decimal     `json:"net_worth"`
	TotalAssets  decimal.Decimal     `json:"total_assets"`
	Liabilities  decimal.Decimal     `json:"total_liabilities"`
	Accounts     []model.Account     `json:"accounts"`
	MonthIncome  decimal.Decimal     `json:"month_income"`
	MonthExpense decimal.Decimal     `json:"month_expense"`
	Recent       []model.Transaction `json:"recent_transactions"`
}

// Dashboard fetches the dashboard aggregates.
func (c *Client) Dashboard(ctx context.Context) (DashboardData, error) {
	var d DashboardData
	if err := c.do(ctx, http.MethodGet, "/dashboard", nil, &d); err != nil {
		return DashboardData{}, err
	}
	return d, nil
}

// FIREResult is the server's financial-independence projection.
type FIREResult struct {
	NetWorth      decimal.Decimal `json:"net_worth"`
	Target        decimal.Decimal `json:"target"`
	Progress      decimal.Decimal `json:"progress"`
	AnnualSavings decimal.Decimal `json:"annual_savings"`
	YearsToTarget decimal.Decimal `json:"years_to_target"`
}

// FIREAnalytics fetches the FIRE projection for an age range.
func (c *Client) FIREAnalytics(ctx context.Context, currentAge, targetAge int) (FIREResult, error) {
	q := url.Values{
		"current_age": {strconv.Itoa(currentAge)},
		"target_age":  {strconv.Itoa(targetAge)},
	}

	var r FIREResult
	if err := c.do(ctx, http.MethodGet, pathWithQuery("/analytics/fire", q), nil, &r); err != nil {
		return FIREResult{}, err
	}
	return r, nil
}

// TaxSection is one section's totals in the tax summary.
type TaxSection struct {
	Section   string          `json:"section"`
	Limit     decimal.Decimal `json:"limit"`
	Invested  decimal.Decimal `json:"invested"`
	Remaining decimal.Decimal `json:"remaining"`
}

// TaxSummaryData groups tax-relevant transactions for one financial year.
type TaxSummaryData struct {
	FinancialYear string          `json:"financial_year"`
	Sections      []TaxSection    `json:"sections"`
	TotalInvested decimal.Decimal `json:"total_invested"`
}

// TaxSummary fetches the tax-section summary for a financial year.
func (c *Client) TaxSummary(ctx context.Context, year fy.Year) (TaxSummaryData, error) {
	q := url.Values{"financial_year": {strconv.Itoa(int(year))}}

	var t TaxSummaryData
	if err := c.do(ctx, http.MethodGet, pathWithQuery("/analytics/tax-summary", q), nil, &t); err != nil {
		return TaxSummaryData{}, err
	}
	return t, nil
}
