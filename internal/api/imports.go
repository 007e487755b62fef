package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/fintrail-dev/fintrail/internal/model"
)

// UploadResult is the server's parse summary for an uploaded statement.
type UploadResult struct {
	BatchID        uuid.UUID `json:"batch_id"`
	TotalParsed    int       `json:"total_parsed"`
	HighConfidence int       `json:"high_confidence"`
	NeedsReview    int       `json:"needs_review"`
}

// UploadStatement uploads a bank statement (PDF/CSV/Excel) for parsing and
// classification. Password is only needed for protected PDFs.
func (c *Client) UploadStatement(ctx context.Context, fileName string, file io.Reader, password string, sourceAccountID int64) (UploadResult, error) {
	fields := map[string]string{
		"password":          password,
		"source_account_id": strconv.FormatInt(sourceAccountID, 10),
	}

	var result UploadResult
	err := c.doMultipart(ctx, http.MethodPost, "/import/upload", fields, "file", fileName, file, &result)
	if err != nil {
		return UploadResult{}, err
	}
	return result, nil
}

// ListStaged fetches all staged rows for a batch.
func (c *Client) ListStaged(ctx context.Context, batchID uuid.UUID) ([]model.StagedTransaction, error) {
	q := url.Values{"batch_id": {batchID.String()}}

	var resp struct {
		Staged []model.StagedTransaction `json:"staged_transactions"`
	}
	if err := c.do(ctx, http.MethodGet, pathWithQuery("/import/staged", q), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Staged, nil
}

// UpdateStaged applies a partial update to one staged row and returns the
// updated copy.
func (c *Client) UpdateStaged(ctx context.Context, id int64, updates model.StagedUpdate) (model.StagedTransaction, error) {
	var row model.StagedTransaction
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/import/staged/%d", id), updates, &row); err != nil {
		return model.StagedTransaction{}, err
	}
	return row, nil
}

// UpdateStagedBulk applies one update payload to a list of staged rows in a
// single request.
func (c *Client) UpdateStagedBulk(ctx context.Context, ids []int64, updates model.StagedUpdate) ([]model.StagedTransaction, error) {
	body := struct {
		IDs     []int64            `json:"ids"`
		Updates model.StagedUpdate `json:"updates"`
	}{IDs: ids, Updates: updates}

	var resp struct {
		Staged []model.StagedTransaction `json:"staged_transactions"`
	}
	if err := c.do(ctx, http.MethodPut, "/import/staged-bulk", body, &resp); err != nil {
		return nil, err
	}
	return resp.Staged, nil
}

// ConfirmResult is the outcome of promoting a batch to real transactions.
type ConfirmResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// ConfirmImport promotes all non-rejected, fully specified rows of a batch
// to real transactions. The batch is cleared server-side afterwards.
func (c *Client) ConfirmImport(ctx context.Context, batchID uuid.UUID) (ConfirmResult, error) {
	body := map[string]string{"batch_id": batchID.String()}

	var result ConfirmResult
	if err := c.do(ctx, http.MethodPost, "/import/confirm", body, &result); err != nil {
		return ConfirmResult{}, err
	}
	return result, nil
}

// ClearStaged discards all staged rows for a batch without importing
// anything.
func (c *Client) ClearStaged(ctx context.Context, batchID uuid.UUID) error {
	q := url.Values{"batch_id": {batchID.String()}}
	return c.do(ctx, http.MethodDelete, pathWithQuery("/import/staged", q), nil, nil)
}
