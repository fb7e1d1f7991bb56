package repository

import (
	"context"

	"voiceclone-backend/internal/domain/model"
)

type AccountRepository interface {
	Save(ctx context.Context, tx Tx, acc *model.Account) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Account, error)
	FindByEmail(ctx context.Context, tx Tx, email string) (*model.Account, error)
	// List returns a page of accounts matching search (email or name
	// substring, case-insensitive; empty matches all) plus the total count.
	List(ctx context.Context, tx Tx, search string, offset, limit int) ([]*model.Account, int, error)
	Delete(ctx context.Context, tx Tx, id string) error
	CountAll(ctx context.Context, tx Tx) (int, error)
	CountWithPlan(ctx context.Context, tx Tx) (int, error)
}
