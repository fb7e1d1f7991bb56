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

var _ repository.AccountRepository = (*accountRepo)(nil)

type accountRepo struct {
	pool *pgxpool.Pool
}

func NewAccountRepo(pool *pgxpool.Pool) *accountRepo {
	return &accountRepo{pool: pool}
}

const accountColumns = `
id, email, name, password_hash, credits, plan_name, plan_expires_at,
voice_clone_used, voice_clone_limit, is_blocked, created_at`

func (r *accountRepo) Save(ctx context.Context, tx repository.Tx, a *model.Account) error {
	const q = `
INSERT INTO accounts (
  id, email, name, password_hash, credits, plan_name, plan_expires_at,
  voice_clone_used, voice_clone_limit, is_blocked, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
ON CONFLICT (id) DO UPDATE SET
  email=$2, name=$3, password_hash=$4, credits=$5, plan_name=$6,
  plan_expires_at=$7, voice_clone_used=$8, voice_clone_limit=$9, is_blocked=$10;`
	_, err := execSQL(ctx, r.pool, tx, q,
		a.ID, a.Email, a.Name, a.PasswordHash, a.Credits, a.PlanName, a.PlanExpiresAt,
		a.VoiceCloneUsed, a.VoiceCloneLim, a.IsBlocked, a.CreatedAt)
	return err
}

func (r *accountRepo) scanOne(row pgx.Row) (*model.Account, error) {
	var a model.Account
	if err := row.Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash, &a.Credits, &a.PlanName,
		&a.PlanExpiresAt, &a.VoiceCloneUsed, &a.VoiceCloneLim, &a.IsBlocked, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return &a, nil
}

func (r *accountRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Account, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT `+accountColumns+` FROM accounts WHERE id=$1;`, id)
	if err != nil {
		return nil, err
	}
	return r.scanOne(row)
}

func (r *accountRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.Account, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT `+accountColumns+` FROM accounts WHERE email=$1;`, email)
	if err != nil {
		return nil, err
	}
	return r.scanOne(row)
}

func (r *accountRepo) List(ctx context.Context, tx repository.Tx, search string, offset, limit int) ([]*model.Account, int, error) {
	const q = `
SELECT ` + accountColumns + `
  FROM accounts
 WHERE $1 = '' OR email ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%'
 ORDER BY created_at DESC
 OFFSET $2 LIMIT $3;`
	rows, err := queryRows(ctx, r.pool, tx, q, search, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*model.Account
	for rows.Next() {
		a, err := r.scanOne(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	row, err := pickRow(ctx, r.pool, tx,
		`SELECT COUNT(*) FROM accounts
		  WHERE $1 = '' OR email ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%';`, search)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := row.Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count accounts: %w", err)
	}
	return out, total, nil
}

func (r *accountRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	tag, err := execSQL(ctx, r.pool, tx, `DELETE FROM accounts WHERE id=$1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *accountRepo) CountAll(ctx context.Context, tx repository.Tx) (int, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT COUNT(*) FROM accounts;`)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return n, nil
}

func (r *accountRepo) CountWithPlan(ctx context.Context, tx repository.Tx) (int, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT COUNT(*) FROM accounts WHERE plan_name IS NOT NULL;`)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("count accounts with plan: %w", err)
	}
	return n, nil
}
