// Package review drives the staged-import workflow: upload a statement,
// review the server's parsed rows, then confirm or cancel the batch.
package review

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/fintrail-dev/fintrail/internal/api"
	"github.com/fintrail-dev/fintrail/internal/model"
)

// API is the slice of the REST client the workflow needs.
type API interface {
	UploadStatement(ctx context.Context, fileName string, file io.Reader, password string, sourceAccountID int64) (api.UploadResult, error)
	ListStaged(ctx context.Context, batchID uuid.UUID) ([]model.StagedTransaction, error)
	UpdateStaged(ctx context.Context, id int64, updates model.StagedUpdate) (model.StagedTransaction, error)
	UpdateStagedBulk(ctx context.Context, ids []int64, updates model.StagedUpdate) ([]model.StagedTransaction, error)
	ConfirmImport(ctx context.Context, batchID uuid.UUID) (api.ConfirmResult, error)
	ClearStaged(ctx context.Context, batchID uuid.UUID) error
}

// Phase is the workflow state. Batch data exists only in PhaseReview and the
// confirm result only in PhaseDone, so a confirm without a batch cannot be
// expressed.
type Phase int

const (
	PhaseUpload Phase = iota
	PhaseReview
	PhaseDone
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseUpload:
		return "upload"
	case PhaseReview:
		return "review"
	case PhaseDone:
		return "done"
	case PhaseClosed:
		return "closed"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// ErrWrongPhase is returned when an operation is called outside its phase.
var ErrWrongPhase = errors.New("operation not valid in current phase")

// ErrNotReady is returned when confirm is attempted with no importable rows.
var ErrNotReady = errors.New("no rows are ready to import")

// Counts summarizes review readiness.
type Counts struct {
	Total     int // all rows in the batch
	Active    int // rows not rejected
	Confident int // active rows with confidence >= 0.5
	Ready     int // active rows with both suggested accounts set
}

// Session is one pass through the import workflow.
type Session struct {
	api      API
	phase    Phase
	batchID  uuid.UUID
	upload   api.UploadResult
	rows     []model.StagedTransaction
	selected map[int64]bool
	result   api.ConfirmResult
}

// NewSession starts a workflow in the upload phase.
func NewSession(client API) *Session {
	return &Session{
		api:      client,
		phase:    PhaseUpload,
		selected: make(map[int64]bool),
	}
}

// Phase returns the current workflow phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// UploadSummary returns the server's parse summary. Zero until a successful
// upload.
func (s *Session) UploadSummary() api.UploadResult {
	return s.upload
}

// Rows returns the staged rows in server order. Rejected rows stay in the
// list.
func (s *Session) Rows() []model.StagedTransaction {
	return s.rows
}

// Result returns the confirm outcome. Only meaningful in PhaseDone.
func (s *Session) Result() api.ConfirmResult {
	return s.result
}

// Upload sends the statement and fetches the staged rows for the returned
// batch. On success the session moves to review; on failure it stays in the
// upload phase.
func (s *Session) Upload(ctx context.Context, fileName string, file io.Reader, password string, sourceAccountID int64) error {
	if s.phase != PhaseUpload {
		return fmt.Errorf("%w: upload in phase %s", ErrWrongPhase, s.phase)
	}

	result, err := s.api.UploadStatement(ctx, fileName, file, password, sourceAccountID)
	if err != nil {
		return err
	}

	rows, err := s.api.ListStaged(ctx, result.BatchID)
	if err != nil {
		return err
	}

	s.upload = result
	s.batchID = result.BatchID
	s.rows = rows
	s.phase = PhaseReview
	return nil
}

// Selected reports whether a row is selected.
func (s *Session) Selected(id int64) bool {
	return s.selected[id]
}

// SelectedIDs returns the selected row IDs in display order.
func (s *Session) SelectedIDs() []int64 {
	var ids []int64
	for _, row := range s.rows {
		if s.selected[row.ID] {
			ids = append(ids, row.ID)
		}
	}
	return ids
}

// Toggle flips one row's selection. Rejected rows are unselectable.
func (s *Session) Toggle(id int64) error {
	if s.phase != PhaseReview {
		return fmt.Errorf("%w: toggle in phase %s", ErrWrongPhase, s.phase)
	}
	row, ok := s.find(id)
	if !ok {
		return fmt.Errorf("no staged row %d", id)
	}
	if row.Rejected() {
		return fmt.Errorf("row %d is rejected and cannot be selected", id)
	}
	if s.selected[id] {
		delete(s.selected, id)
	} else {
		s.selected[id] = true
	}
	return nil
}

// SelectAllActive selects every row whose status is not rejected.
func (s *Session) SelectAllActive() error {
	if s.phase != PhaseReview {
		return fmt.Errorf("%w: select in phase %s", ErrWrongPhase, s.phase)
	}
	for _, row := range s.rows {
		if !row.Rejected() {
			s.selected[row.ID] = true
		}
	}
	return nil
}

// ClearSelection deselects everything.
func (s *Session) ClearSelection() {
	s.selected = make(map[int64]bool)
}

// EditRow persists a single-row edit immediately and replaces the local row
// with the server's copy.
func (s *Session) EditRow(ctx context.Context, id int64, updates model.StagedUpdate) error {
	if s.phase != PhaseReview {
		return fmt.Errorf("%w: edit in phase %s", ErrWrongPhase, s.phase)
	}
	if _, ok := s.find(id); !ok {
		return fmt.Errorf("no staged row %d", id)
	}

	row, err := s.api.UpdateStaged(ctx, id, updates)
	if err != nil {
		return err
	}
	s.replace(row)
	return nil
}

// Recategorize applies one category to every selected row in a single bulk
// request.
func (s *Session) Recategorize(ctx context.Context, category string) error {
	return s.bulk(ctx, model.StagedUpdate{SuggestedCategory: &category})
}

// RejectSelected marks every selected row rejected in a single bulk request.
// Rejected rows remain listed but are dropped from the selection and all
// downstream counts.
func (s *Session) RejectSelected(ctx context.Context) error {
	status := model.StagedRejected
	return s.bulk(ctx, model.StagedUpdate{Status: &status})
}

func (s *Session) bulk(ctx context.Context, updates model.StagedUpdate) error {
	if s.phase != PhaseReview {
		return fmt.Errorf("%w: bulk update in phase %s", ErrWrongPhase, s.phase)
	}
	ids := s.SelectedIDs()
	if len(ids) == 0 {
		return errors.New("no rows selected")
	}

	rows, err := s.api.UpdateStagedBulk(ctx, ids, updates)
	if err != nil {
		return err
	}
	for _, row := range rows {
		s.replace(row)
		if row.Rejected() {
			delete(s.selected, row.ID)
		}
	}
	return nil
}

// Counts computes the readiness counters over the current rows.
func (s *Session) Counts() Counts {
	var c Counts
	for _, row := range s.rows {
		c.Total++
		if row.Rejected() {
			continue
		}
		c.Active++
		if row.Confident() {
			c.Confident++
		}
		if row.AccountsComplete() {
			c.Ready++
		}
	}
	return c
}

// CanConfirm reports whether at least one row is ready to import.
func (s *Session) CanConfirm() bool {
	return s.phase == PhaseReview && s.Counts().Ready > 0
}

// Confirm promotes the batch. The staged rows no longer exist server-side
// afterwards, so closing from the done phase must not clear again.
func (s *Session) Confirm(ctx context.Context) error {
	if s.phase != PhaseReview {
		return fmt.Errorf("%w: confirm in phase %s", ErrWrongPhase, s.phase)
	}
	if s.Counts().Ready == 0 {
		return ErrNotReady
	}

	result, err := s.api.ConfirmImport(ctx, s.batchID)
	if err != nil {
		return err
	}
	s.result = result
	s.phase = PhaseDone
	return nil
}

// Cancel abandons the review: the batch's staged rows are cleared
// server-side so nothing leaks across sessions, and the workflow closes.
func (s *Session) Cancel(ctx context.Context) error {
	if s.phase != PhaseReview {
		return fmt.Errorf("%w: cancel in phase %s", ErrWrongPhase, s.phase)
	}
	if err := s.api.ClearStaged(ctx, s.batchID); err != nil {
		return err
	}
	s.phase = PhaseClosed
	return nil
}

// Close ends the workflow after a confirm. Returns true when the caller
// should refresh its transaction list.
func (s *Session) Close() bool {
	if s.phase != PhaseDone {
		s.phase = PhaseClosed
		return false
	}
	s.phase = PhaseClosed
	return true
}

func (s *Session) find(id int64) (model.StagedTransaction, bool) {
	for _, row := range s.rows {
		if row.ID == id {
			return row, true
		}
	}
	return model.StagedTransaction{}, false
}

func (s *Session) replace(row model.StagedTransaction) {
	for i := range s.rows {
		if s.rows[i].ID == row.ID {
			s.rows[i] = row
			return
		}
	}
}
