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

var _ repository.OrderRepository = (*orderRepo)(nil)

type orderRepo struct {
	pool *pgxpool.Pool
}

func NewOrderRepo(pool *pgxpool.Pool) *orderRepo {
	return &orderRepo{pool: pool}
}

const orderColumns = `
id, account_id, account_email, account_name, plan_id, plan_name, amount_cents,
credits, voice_clone_limit, expire_days, payment_method, transaction_id, status, created_at`

func (r *orderRepo) Save(ctx context.Context, tx repository.Tx, o *model.Order) error {
	const q = `
INSERT INTO orders (
  id, account_id, account_email, account_name, plan_id, plan_name, amount_cents,
  credits, voice_clone_limit, expire_days, payment_method, transaction_id, status, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
ON CONFLICT (id) DO UPDATE SET status=$13;`
	_, err := execSQL(ctx, r.pool, tx, q,
		o.ID, o.AccountID, o.AccountEmail, o.AccountName, o.PlanID, o.PlanName, o.AmountCents,
		o.Credits, o.VoiceCloneLim, o.ExpireDays, o.PaymentMethod, o.TransactionID, o.Status, o.CreatedAt)
	return err
}

func (r *orderRepo) scanOne(row pgx.Row) (*model.Order, error) {
	var o model.Order
	var status string
	if err := row.Scan(&o.ID, &o.AccountID, &o.AccountEmail, &o.AccountName, &o.PlanID, &o.PlanName,
		&o.AmountCents, &o.Credits, &o.VoiceCloneLim, &o.ExpireDays, &o.PaymentMethod,
		&o.TransactionID, &status, &o.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	o.Status = model.OrderStatus(status)
	return &o, nil
}

// FindByID takes a row lock when tx is a transaction handle, so concurrent
// approve/reject calls for the same order serialize here.
func (r *orderRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	if _, inTx := tx.(pgx.Tx); inTx {
		q += ` FOR UPDATE`
	}
	row, err := pickRow(ctx, r.pool, tx, q+`;`, id)
	if err != nil {
		return nil, err
	}
	return r.scanOne(row)
}

func (r *orderRepo) ListByAccount(ctx context.Context, tx repository.Tx, accountID string) ([]*model.Order, error) {
	rows, err := queryRows(ctx, r.pool, tx,
		`SELECT `+orderColumns+` FROM orders WHERE account_id=$1 ORDER BY created_at DESC;`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(rows)
}

func (r *orderRepo) List(ctx context.Context, tx repository.Tx, status model.OrderStatus) ([]*model.Order, error) {
	rows, err := queryRows(ctx, r.pool, tx, `
SELECT `+orderColumns+`
  FROM orders
 WHERE $1 = '' OR status = $1
 ORDER BY created_at DESC;`, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(rows)
}

func (r *orderRepo) collect(rows pgx.Rows) ([]*model.Order, error) {
	var out []*model.Order
	for rows.Next() {
		o, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *orderRepo) CountAll(ctx context.Context, tx repository.Tx) (int, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT COUNT(*) FROM orders;`)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

func (r *orderRepo) CountByStatus(ctx context.Context, tx repository.Tx, status model.OrderStatus) (int, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT COUNT(*) FROM orders WHERE status=$1;`, string(status))
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("count orders by status: %w", err)
	}
	return n, nil
}

func (r *orderRepo) SumAmountByStatus(ctx context.Context, tx repository.Tx, status model.OrderStatus) (int64, error) {
	row, err := pickRow(ctx, r.pool, tx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM orders WHERE status=$1;`, string(status))
	if err != nil {
		return 0, err
	}
	var sum int64
	if err := row.Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum orders: %w", err)
	}
	return sum, nil
}
