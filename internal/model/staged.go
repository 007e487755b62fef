package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StagedStatus is the review state of a staged transaction.
type StagedStatus string

const (
	StagedPending  StagedStatus = "pending"
	StagedRejected StagedStatus = "rejected"
)

// StagedDirection is the parsed direction of a statement row relative to the
// source account.
type StagedDirection string

const (
	DirectionCredit StagedDirection = "credit"
	DirectionDebit  StagedDirection = "debit"
)

// StagedTransaction is a provisionally parsed statement row awaiting review.
// Created in bulk by the server on upload, mutated by the reviewer, and
// either promoted to a real Transaction on confirm or discarded.
type StagedTransaction struct {
	ID                       int64           `json:"id"`
	BatchID                  uuid.UUID       `json:"batch_id"`
	Date                     Date            `json:"date"`
	Amount                   decimal.Decimal `json:"amount"`
	Description              string          `json:"description"`
	TransactionType          StagedDirection `json:"transaction_type"`
	SuggestedCategory        string          `json:"suggested_category,omitempty"`
	Confidence               decimal.Decimal `json:"confidence"`
	SuggestedDebitAccountID  *int64          `json:"suggested_debit_account_id,omitempty"`
	SuggestedCreditAccountID *int64          `json:"suggested_credit_account_id,omitempty"`
	Status                   StagedStatus    `json:"status"`
}

// Rejected reports whether the reviewer has rejected the row.
func (s StagedTransaction) Rejected() bool {
	return s.Status == StagedRejected
}

// AccountsComplete reports whether both suggested accounts are populated. A
// row missing either side is never importable, regardless of status.
func (s StagedTransaction) AccountsComplete() bool {
	return s.SuggestedDebitAccountID != nil && s.SuggestedCreditAccountID != nil
}

// Ready reports whether the row would be promoted on confirm: not rejected
// and both accounts populated.
func (s StagedTransaction) Ready() bool {
	return !s.Rejected() && s.AccountsComplete()
}

// confidenceReviewFlag marks suggestions confident enough to import without
// a second look.
var confidenceReviewFlag = decimal.NewFromFloat(0.5)

// Confident reports whether the server's suggestion meets the review
// threshold.
func (s StagedTransaction) Confident() bool {
	return s.Confidence.GreaterThanOrEqual(confidenceReviewFlag)
}

// StagedUpdate is the partial-update payload for staged rows. Nil fields are
// left untouched by the server.
type StagedUpdate struct {
	SuggestedCategory        *string       `json:"suggested_category,omitempty"`
	SuggestedDebitAccountID  *int64        `json:"suggested_debit_account_id,omitempty"`
	SuggestedCreditAccountID *int64        `json:"suggested_credit_account_id,omitempty"`
	Status                   *StagedStatus `json:"status,omitempty"`
}
