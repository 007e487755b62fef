package review

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrail-dev/fintrail/internal/api"
	"github.com/fintrail-dev/fintrail/internal/model"
)

// fakeAPI is an in-memory staged-batch server.
type fakeAPI struct {
	batchID     uuid.UUID
	rows        []model.StagedTransaction
	uploadErr   error
	bulkCalls   int
	confirmed   bool
	cleared     bool
	confirmResp api.ConfirmResult
}

func (f *fakeAPI) UploadStatement(ctx context.Context, fileName string, file io.Reader, password string, sourceAccountID int64) (api.UploadResult, error) {
	if f.uploadErr != nil {
		return api.UploadResult{}, f.uploadErr
	}
	return api.UploadResult{BatchID: f.batchID, TotalParsed: len(f.rows)}, nil
}

func (f *fakeAPI) ListStaged(ctx context.Context, batchID uuid.UUID) ([]model.StagedTransaction, error) {
	out := make([]model.StagedTransaction, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

func (f *fakeAPI) UpdateStaged(ctx context.Context, id int64, updates model.StagedUpdate) (model.StagedTransaction, error) {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.apply(&f.rows[i], updates)
			return f.rows[i], nil
		}
	}
	return model.StagedTransaction{}, errors.New("not found")
}

func (f *fakeAPI) UpdateStagedBulk(ctx context.Context, ids []int64, updates model.StagedUpdate) ([]model.StagedTransaction, error) {
	f.bulkCalls++
	var out []model.StagedTransaction
	for _, id := range ids {
		row, err := f.UpdateStaged(ctx, id, updates)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeAPI) ConfirmImport(ctx context.Context, batchID uuid.UUID) (api.ConfirmResult, error) {
	f.confirmed = true
	return f.confirmResp, nil
}

func (f *fakeAPI) ClearStaged(ctx context.Context, batchID uuid.UUID) error {
	f.cleared = true
	f.rows = nil
	return nil
}

func (f *fakeAPI) apply(row *model.StagedTransaction, updates model.StagedUpdate) {
	if updates.SuggestedCategory != nil {
		row.SuggestedCategory = *updates.SuggestedCategory
	}
	if updates.SuggestedDebitAccountID != nil {
		row.SuggestedDebitAccountID = updates.SuggestedDebitAccountID
	}
	if updates.SuggestedCreditAccountID != nil {
		row.SuggestedCreditAccountID = updates.SuggestedCreditAccountID
	}
	if updates.Status != nil {
		row.Status = *updates.Status
	}
}

func i64(v int64) *int64 { return &v }

func stagedRow(id int64, conf string, debit, credit *int64, status model.StagedStatus) model.StagedTransaction {
	return model.StagedTransaction{
		ID:                       id,
		Date:                     model.NewDate(2025, time.January, int(id%28)+1),
		Amount:                   decimal.NewFromInt(100 * id),
		Description:              "row",
		TransactionType:          model.DirectionDebit,
		Confidence:               decimal.RequireFromString(conf),
		SuggestedDebitAccountID:  debit,
		SuggestedCreditAccountID: credit,
		Status:                   status,
	}
}

// tenRowBatch: 2 rejected, 6 active with both accounts, 2 active with a
// missing account.
func tenRowBatch() []model.StagedTransaction {
	rows := []model.StagedTransaction{
		stagedRow(1, "0.9", i64(1), i64(2), model.StagedPending),
		stagedRow(2, "0.8", i64(1), i64(2), model.StagedPending),
		stagedRow(3, "0.7", i64(1), i64(2), model.StagedPending),
		stagedRow(4, "0.6", i64(1), i64(2), model.StagedPending),
		stagedRow(5, "0.5", i64(1), i64(2), model.StagedPending),
		stagedRow(6, "0.4", i64(1), i64(2), model.StagedPending),
		stagedRow(7, "0.3", i64(1), nil, model.StagedPending),
		stagedRow(8, "0.2", nil, i64(2), model.StagedPending),
		stagedRow(9, "0.9", i64(1), i64(2), model.StagedRejected),
		stagedRow(10, "0.1", nil, nil, model.StagedRejected),
	}
	return rows
}

func uploadedSession(t *testing.T, f *fakeAPI) *Session {
	t.Helper()
	sess := NewSession(f)
	err := sess.Upload(context.Background(), "stmt.csv", strings.NewReader("data"), "", 1)
	require.NoError(t, err)
	require.Equal(t, PhaseReview, sess.Phase())
	return sess
}

func TestSession_UploadMovesToReview(t *testing.T) {
	f := &fakeAPI{batchID: uuid.New(), rows: tenRowBatch()}
	sess := uploadedSession(t, f)

	assert.Equal(t, f.batchID, sess.UploadSummary().BatchID)
	assert.Len(t, sess.Rows(), 10)
}

func TestSession_UploadFailureStaysInUpload(t *testing.T) {
	f := &fakeAPI{uploadErr: errors.New("password required")}
	sess := NewSession(f)

	err := sess.Upload(context.Background(), "stmt.pdf", strings.NewReader("x"), "", 1)
	require.Error(t, err)
	assert.Equal(t, PhaseUpload, sess.Phase())

	// The session is still usable once the cause is fixed.
	f.uploadErr = nil
	f.batchID = uuid.New()
	f.rows = tenRowBatch()
	require.NoError(t, sess.Upload(context.Background(), "stmt.pdf", strings.NewReader("x"), "pw", 1))
	assert.Equal(t, PhaseReview, sess.Phase())
}

func TestSession_UploadTwiceIsWrongPhase(t *testing.T) {
	f := &fakeAPI{batchID: uuid.New(), rows: tenRowBatch()}
	sess := uploadedSession(t, f)

	err := sess.Upload(context.Background(), "again.csv", strings.NewReader("x"), "", 1)
	assert.ErrorIs(t, err, ErrWrongPhase)
}

func TestSession_Counts(t *testing.T) {
	f := &fakeAPI{batchID: uuid.New(), rows: tenRowBatch()}
	sess := uploadedSession(t, f)

	c := sess.Counts()
	assert.Equal(t, 10, c.Total)
	assert.Equal(t, 8, c.Active)
	assert.Equal(t, 5, c.Confident) // 0.5 is confident, 0.4 and below are not
	assert.Equal(t, 6, c.Ready)     // both accounts set and not rejected
}

func TestSession_ToggleRejectedRow(t *testing.T) {
	f := &fakeAPI{batchID: uuid.New(), rows: tenRowBatch()}
	sess := uploadedSession(t, f)

	require.NoError(t, sess.Toggle(1))
	assert.True(t, sess.Selected(1))
	require.NoError(t, sess.Toggle(1))
	assert.False(t, sess.Selected(1))

	assert.Error(t, sess.Toggle(9))
	assert.False(t, sess.Selected(9))
	assert.Error(t, sess.Toggle(99))
}

func TestSession_SelectAllActiveSkipsRejected(t *testing.T) {
	f := &fakeAPI{batchID: uuid.New(), rows: tenRowBatch()}
	sess := uploadedSession(t, f)

	require.NoError(t, sess.SelectAllActive())
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7, 8}, sess.SelectedIDs())

	sess.ClearSelection()
	assert.Empty(t, sess.SelectedIDs())
}

func TestSession_EditRowReplacesLocalCopy(t *testing.T) {
	f := &fakeAPI{batchID: uuid.New(), rows: tenRowBatch()}
	sess := uploadedSession(t, f)

	require.NoError(t, sess.EditRow(context.Background(), 7, model.StagedUpdate{SuggestedCreditAccountID: i64(4)}))

	c := sess.Counts()
	assert.Equal(t, 7, c.Ready)
	for _, row := range sess.Rows() {
		if row.ID == 7 {
			require.NotNil(t, row.SuggestedCreditAccountID)
			assert.Equal(t, int64(4), *row.SuggestedCreditAccountID)
		}
	}
}

func TestSession_RecategorizeIsOneBulkRequest(t *testing.T) {
	f := &fakeAPI{batchID: uuid.New(), rows: tenRowBatch()}
	sess := uploadedSession(t, f)

	require.NoError(t, sess.Toggle(1))
	require.NoError(t, sess.Toggle(2))
	require.NoError(t, sess.Toggle(3))
	require.NoError(t, sess.Recategorize(context.Background(), "Food"))

	assert.Equal(t, 1, f.bulkCalls)
	for _, row := range sess.Rows() {
		if row.ID <= 3 {
			assert.Equal(t, "Food", row.SuggestedCategory)
		} else {
			assert.Empty(t, row.SuggestedCategory)
		}
	}
	// Recategorizing keeps the selection.
	assert.Equal(t, []int64{1, 2, 3}, sess.SelectedIDs())
}

func TestSession_RejectSelectedDropsFromSelection(t *testing.T) {
	f := &fakeAPI{batchID: uuid.New(), rows: tenRowBatch()}
	sess := uploadedSession(t, f)

	require.NoError(t, sess.Toggle(1))
	require.NoError(t, sess.Toggle(2))
	require.NoError(t, sess.RejectSelected(context.Background()))

	assert.Empty(t, sess.SelectedIDs())
	c := sess.Counts()
	assert.Equal(t, 10, c.Total)
	assert.Equal(t, 6, c.Active)
	assert.Equal(t, 4, c.Ready)

	// Once rejected, rows cannot be reselected.
	assert.Error(t, sess.Toggle(1))
}

func TestSession_BulkWithoutSelection(t *testing.T) {
	f := &fakeAPI{batchID: uuid.New(), rows: tenRowBatch()}
	sess := uploadedSession(t, f)

	assert.Error(t, sess.Recategorize(context.Background(), "Food"))
	assert.Zero(t, f.bulkCalls)
}

func TestSession_ConfirmRequiresReadyRows(t *testing.T) {
	// Every active row is missing an account.
	rows := []model.StagedTransaction{
		stagedRow(1, "0.9", i64(1), nil, model.StagedPending),
		stagedRow(2, "0.9", i64(1), i64(2), model.StagedRejected),
	}
	f := &fakeAPI{batchID: uuid.New(), rows: rows}
	sess := uploadedSession(t, f)

	assert.False(t, sess.CanConfirm())
	err := sess.Confirm(context.Background())
	assert.ErrorIs(t, err, ErrNotReady)
	assert.False(t, f.confirmed)
	assert.Equal(t, PhaseReview, sess.Phase())
}

func TestSession_ConfirmMovesToDone(t *testing.T) {
	f := &fakeAPI{
		batchID:     uuid.New(),
		rows:        tenRowBatch(),
		confirmResp: api.ConfirmResult{Imported: 6, Skipped: 4},
	}
	sess := uploadedSession(t, f)

	require.True(t, sess.CanConfirm())
	require.NoError(t, sess.Confirm(context.Background()))
	assert.Equal(t, PhaseDone, sess.Phase())
	assert.Equal(t, 6, sess.Result().Imported)

	// Done is terminal for review operations.
	assert.ErrorIs(t, sess.Toggle(1), ErrWrongPhase)
	assert.ErrorIs(t, sess.Confirm(context.Background()), ErrWrongPhase)
	assert.ErrorIs(t, sess.Cancel(context.Background()), ErrWrongPhase)

	// Closing after a confirm asks the caller to refresh.
	assert.True(t, sess.Close())
	assert.Equal(t, PhaseClosed, sess.Phase())
}

func TestSession_CancelClearsBatch(t *testing.T) {
	f := &fakeAPI{batchID: uuid.New(), rows: tenRowBatch()}
	sess := uploadedSession(t, f)

	require.NoError(t, sess.Cancel(context.Background()))
	assert.True(t, f.cleared)
	assert.Equal(t, PhaseClosed, sess.Phase())

	// No refresh needed after a cancel.
	assert.False(t, sess.Close())
}

func TestSession_CloseBeforeUpload(t *testing.T) {
	sess := NewSession(&fakeAPI{})
	assert.False(t, sess.Close())
	assert.Equal(t, PhaseClosed, sess.Phase())
}
