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

var _ repository.VoiceRepository = (*voiceRepo)(nil)

type voiceRepo struct {
	pool *pgxpool.Pool
}

func NewVoiceRepo(pool *pgxpool.Pool) *voiceRepo {
	return &voiceRepo{pool: pool}
}

func (r *voiceRepo) Save(ctx context.Context, tx repository.Tx, v *model.Voice) error {
	const q = `
INSERT INTO voices (id, account_id, name, sample_ref, is_public, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (id) DO UPDATE SET name=$3, is_public=$5;`
	_, err := execSQL(ctx, r.pool, tx, q, v.ID, v.AccountID, v.Name, v.SampleRef, v.IsPublic, v.CreatedAt)
	return err
}

func (r *voiceRepo) scanOne(row pgx.Row) (*model.Voice, error) {
	var v model.Voice
	if err := row.Scan(&v.ID, &v.AccountID, &v.Name, &v.SampleRef, &v.IsPublic, &v.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan voice: %w", err)
	}
	return &v, nil
}

func (r *voiceRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Voice, error) {
	row, err := pickRow(ctx, r.pool, tx,
		`SELECT id, account_id, name, sample_ref, is_public, created_at FROM voices WHERE id=$1;`, id)
	if err != nil {
		return nil, err
	}
	return r.scanOne(row)
}

func (r *voiceRepo) ListByAccount(ctx context.Context, tx repository.Tx, accountID string) ([]*model.Voice, error) {
	rows, err := queryRows(ctx, r.pool, tx, `
SELECT id, account_id, name, sample_ref, is_public, created_at
  FROM voices WHERE account_id=$1 AND NOT is_public
 ORDER BY created_at DESC;`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(rows)
}

func (r *voiceRepo) ListPublic(ctx context.Context, tx repository.Tx) ([]*model.Voice, error) {
	rows, err := queryRows(ctx, r.pool, tx, `
SELECT id, account_id, name, sample_ref, is_public, created_at
  FROM voices WHERE is_public
 ORDER BY created_at DESC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(rows)
}

func (r *voiceRepo) collect(rows pgx.Rows) ([]*model.Voice, error) {
	var out []*model.Voice
	for rows.Next() {
		v, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *voiceRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	tag, err := execSQL(ctx, r.pool, tx, `DELETE FROM voices WHERE id=$1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *voiceRepo) DeleteByAccount(ctx context.Context, tx repository.Tx, accountID string) error {
	_, err := execSQL(ctx, r.pool, tx, `DELETE FROM voices WHERE account_id=$1;`, accountID)
	return err
}
