package repository

import (
	"context"

	"voiceclone-backend/internal/domain/model"
)

type PaymentAccountRepository interface {
	Save(ctx context.Context, tx Tx, pa *model.PaymentAccount) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.PaymentAccount, error)
	ListAll(ctx context.Context, tx Tx) ([]*model.PaymentAccount, error)
	ListActive(ctx context.Context, tx Tx) ([]*model.PaymentAccount, error)
	Delete(ctx context.Context, tx Tx, id string) error
}
