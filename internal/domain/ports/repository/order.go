package repository

import (
	"context"

	"voiceclone-backend/internal/domain/model"
)

type OrderRepository interface {
	Save(ctx context.Context, tx Tx, order *model.Order) error
	// FindByID locks the order row when called inside a transaction so a
	// concurrent approve/reject of the same order serializes on it.
	FindByID(ctx context.Context, tx Tx, id string) (*model.Order, error)
	ListByAccount(ctx context.Context, tx Tx, accountID string) ([]*model.Order, error)
	// List returns orders newest first; status "" means all.
	List(ctx context.Context, tx Tx, status model.OrderStatus) ([]*model.Order, error)
	CountAll(ctx context.Context, tx Tx) (int, error)
	CountByStatus(ctx context.Context, tx Tx, status model.OrderStatus) (int, error)
	SumAmountByStatus(ctx context.Context, tx Tx, status model.OrderStatus) (int64, error)
}
