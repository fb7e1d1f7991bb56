package repository

import (
	"context"

	"voiceclone-backend/internal/domain/model"
)

type CreditTransactionRepository interface {
	Save(ctx context.Context, tx Tx, ct *model.CreditTransaction) error
	ListByAccount(ctx context.Context, tx Tx, accountID string) ([]*model.CreditTransaction, error)
	// SumByKind totals the absolute amounts recorded for a kind; feeds the
	// credits-sold / credits-used admin stats.
	SumByKind(ctx context.Context, tx Tx, kind model.CreditTxKind) (int64, error)
}
