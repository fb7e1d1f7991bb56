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

var _ repository.AdminRepository = (*adminRepo)(nil)

type adminRepo struct {
	pool *pgxpool.Pool
}

func NewAdminRepo(pool *pgxpool.Pool) *adminRepo {
	return &adminRepo{pool: pool}
}

func (r *adminRepo) Save(ctx context.Context, tx repository.Tx, a *model.Admin) error {
	const q = `
INSERT INTO admins (id, email, password_hash, created_at)
VALUES ($1,$2,$3,$4)
ON CONFLICT (id) DO UPDATE SET email=$2, password_hash=$3;`
	_, err := execSQL(ctx, r.pool, tx, q, a.ID, a.Email, a.PasswordHash, a.CreatedAt)
	return err
}

func (r *adminRepo) scanOne(row pgx.Row) (*model.Admin, error) {
	var a model.Admin
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan admin: %w", err)
	}
	return &a, nil
}

func (r *adminRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Admin, error) {
	row, err := pickRow(ctx, r.pool, tx,
		`SELECT id, email, password_hash, created_at FROM admins WHERE id=$1;`, id)
	if err != nil {
		return nil, err
	}
	return r.scanOne(row)
}

func (r *adminRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.Admin, error) {
	row, err := pickRow(ctx, r.pool, tx,
		`SELECT id, email, password_hash, created_at FROM admins WHERE email=$1;`, email)
	if err != nil {
		return nil, err
	}
	return r.scanOne(row)
}
