package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func i64(v int64) *int64 { return &v }

func TestStagedTransaction_Ready(t *testing.T) {
	complete := StagedTransaction{
		Status:                   StagedPending,
		SuggestedDebitAccountID:  i64(10),
		SuggestedCreditAccountID: i64(20),
	}
	assert.True(t, complete.Ready())
	assert.True(t, complete.AccountsComplete())

	missingDebit := StagedTransaction{
		Status:                   StagedPending,
		SuggestedCreditAccountID: i64(20),
	}
	assert.False(t, missingDebit.Ready())
	assert.False(t, missingDebit.AccountsComplete())

	// A rejected row is never ready, even fully specified.
	rejected := complete
	rejected.Status = StagedRejected
	assert.True(t, rejected.AccountsComplete())
	assert.False(t, rejected.Ready())
}

func TestStagedTransaction_Confident(t *testing.T) {
	assert.True(t, StagedTransaction{Confidence: dec("0.5")}.Confident())
	assert.True(t, StagedTransaction{Confidence: dec("0.92")}.Confident())
	assert.False(t, StagedTransaction{Confidence: dec("0.49")}.Confident())
	assert.False(t, StagedTransaction{}.Confident())
}
