package usecase

import (
	"context"

	"voiceclone-backend/internal/domain/model"
)

// CreditLedger defines the ledger operations needed by external components
// like the generation worker, which refunds charges on failed jobs.
type CreditLedger interface {
	Refund(ctx context.Context, accountID string, amount int64, refID string) (*model.Account, error)
}
