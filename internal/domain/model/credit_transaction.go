package model

import (
	"time"

	"github.com/google/uuid"
)

type CreditTxKind string

const (
	CreditTxPurchase   CreditTxKind = "purchase"
	CreditTxAdminAdd   CreditTxKind = "admin_add"
	CreditTxGeneration CreditTxKind = "generation"
	CreditTxRefund     CreditTxKind = "refund"
)

// CreditTransaction is the audit trail of every ledger mutation. Amount is
// signed: purchases and refunds are positive, generation charges negative.
// RefID links back to the order or generation job that caused the entry.
type CreditTransaction struct {
	ID        string       `json:"id"`
	AccountID string       `json:"account_id"`
	Amount    int64        `json:"amount"`
	Kind      CreditTxKind `json:"kind"`
	RefID     string       `json:"ref_id,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

func NewCreditTransaction(accountID string, amount int64, kind CreditTxKind, refID string) *CreditTransaction {
	return &CreditTransaction{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Amount:    amount,
		Kind:      kind,
		RefID:     refID,
		CreatedAt: time.Now(),
	}
}
