package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"voiceclone-backend/internal/domain"
	"voiceclone-backend/internal/domain/model"
	"voiceclone-backend/internal/domain/ports/repository"
)

var _ repository.PaymentAccountRepository = (*paymentAccountRepo)(nil)

type paymentAccountRepo struct {
	pool *pgxpool.Pool
}

func NewPaymentAccountRepo(pool *pgxpool.Pool) *paymentAccountRepo {
	return &paymentAccountRepo{pool: pool}
}

func (r *paymentAccountRepo) Save(ctx context.Context, tx repository.Tx, pa *model.PaymentAccount) error {
	const q = `
INSERT INTO payment_accounts (id, method, account_number, account_name, is_active, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (id) DO UPDATE SET
  method=$2, account_number=$3, account_name=$4, is_active=$5;`
	_, err := execSQL(ctx, r.pool, tx, q,
		pa.ID, pa.Method, pa.AccountNumber, pa.AccountName, pa.IsActive, pa.CreatedAt)
	return err
}

func (r *paymentAccountRepo) scanOne(row pgx.Row) (*model.PaymentAccount, error) {
	var pa model.PaymentAccount
	if err := row.Scan(&pa.ID, &pa.Method, &pa.AccountNumber, &pa.AccountName, &pa.IsActive, &pa.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan payment account: %w", err)
	}
	return &pa, nil
}

func (r *paymentAccountRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.PaymentAccount, error) {
	row, err := pickRow(ctx, r.pool, tx, `
SELECT id, method, account_number, account_name, is_active, created_at
  FROM payment_accounts WHERE id=$1;`, id)
	if err != nil {
		return nil, err
	}
	return r.scanOne(row)
}

func (r *paymentAccountRepo) list(ctx context.Context, tx repository.Tx, onlyActive bool) ([]*model.PaymentAccount, error) {
	rows, err := queryRows(ctx, r.pool, tx, `
SELECT id, method, account_number, account_name, is_active, created_at
  FROM payment_accounts
 WHERE NOT $1 OR is_active
 ORDER BY created_at;`, onlyActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.PaymentAccount
	for rows.Next() {
		pa, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, pa)
	}
	return out, rows.Err()
}

func (r *paymentAccountRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.PaymentAccount, error) {
	return r.list(ctx, tx, false)
}

func (r *paymentAccountRepo) ListActive(ctx context.Context, tx repository.Tx) ([]*model.PaymentAccount, error) {
	return r.list(ctx, tx, true)
}

func (r *paymentAccountRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	tag, err := execSQL(ctx, r.pool, tx, `DELETE FROM payment_accounts WHERE id=$1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
