package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		debit  AccountType
		credit AccountType
		kind   TransactionKind
	}{
		{"expense from asset", AccountTypeExpense, AccountTypeAsset, KindExpense},
		{"income to asset", AccountTypeAsset, AccountTypeIncome, KindIncome},
		{"asset to asset is transfer", AccountTypeAsset, AccountTypeAsset, KindTransfer},
		{"liability payment is transfer", AccountTypeLiability, AccountTypeAsset, KindTransfer},
		{"expense beats income credit", AccountTypeExpense, AccountTypeIncome, KindExpense},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, Classify(tt.debit, tt.credit))
		})
	}
}

// Income-to-income pairs come out as transfers while expense-to-expense pairs
// stay expenses, because the debit side wins. That is the server's convention,
// so the client pins it rather than second-guessing.
func TestClassify_SameTypePairs(t *testing.T) {
	assert.Equal(t, KindTransfer, Classify(AccountTypeIncome, AccountTypeIncome))
	assert.Equal(t, KindExpense, Classify(AccountTypeExpense, AccountTypeExpense))
}

func TestClassify_ExhaustiveAndExclusive(t *testing.T) {
	for _, debit := range AccountTypes {
		for _, credit := range AccountTypes {
			kind := Classify(debit, credit)
			assert.Contains(t, []TransactionKind{KindIncome, KindExpense, KindTransfer}, kind)
		}
	}
}

func TestTransaction_Kind(t *testing.T) {
	tx := Transaction{
		DebitAccount:  &AccountRef{Type: AccountTypeExpense},
		CreditAccount: &AccountRef{Type: AccountTypeAsset},
	}
	assert.Equal(t, KindExpense, tx.Kind())

	// Missing refs fall back to transfer.
	assert.Equal(t, KindTransfer, Transaction{}.Kind())
}
