package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"voiceclone-backend/internal/domain/model"
	"voiceclone-backend/internal/domain/ports/repository"
)

var _ repository.CreditTransactionRepository = (*creditTxRepo)(nil)

type creditTxRepo struct {
	pool *pgxpool.Pool
}

func NewCreditTransactionRepo(pool *pgxpool.Pool) *creditTxRepo {
	return &creditTxRepo{pool: pool}
}

func (r *creditTxRepo) Save(ctx context.Context, tx repository.Tx, ct *model.CreditTransaction) error {
	const q = `
INSERT INTO credit_transactions (id, account_id, amount, kind, ref_id, created_at)
VALUES ($1,$2,$3,$4,$5,$6);`
	_, err := execSQL(ctx, r.pool, tx, q, ct.ID, ct.AccountID, ct.Amount, ct.Kind, ct.RefID, ct.CreatedAt)
	return err
}

func (r *creditTxRepo) ListByAccount(ctx context.Context, tx repository.Tx, accountID string) ([]*model.CreditTransaction, error) {
	rows, err := queryRows(ctx, r.pool, tx, `
SELECT id, account_id, amount, kind, ref_id, created_at
  FROM credit_transactions
 WHERE account_id=$1
 ORDER BY created_at DESC;`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.CreditTransaction
	for rows.Next() {
		var ct model.CreditTransaction
		var kind string
		if err := rows.Scan(&ct.ID, &ct.AccountID, &ct.Amount, &kind, &ct.RefID, &ct.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan credit transaction: %w", err)
		}
		ct.Kind = model.CreditTxKind(kind)
		out = append(out, &ct)
	}
	return out, rows.Err()
}

func (r *creditTxRepo) SumByKind(ctx context.Context, tx repository.Tx, kind model.CreditTxKind) (int64, error) {
	row, err := pickRow(ctx, r.pool, tx,
		`SELECT COALESCE(SUM(ABS(amount)), 0) FROM credit_transactions WHERE kind=$1;`, string(kind))
	if err != nil {
		return 0, err
	}
	var sum int64
	if err := row.Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum credit transactions: %w", err)
	}
	return sum, nil
}
