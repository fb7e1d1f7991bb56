package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"voiceclone-backend/internal/domain"
	"voiceclone-backend/internal/domain/model"
	"voiceclone-backend/internal/domain/ports/repository"
	"voiceclone-backend/internal/infra/logging"
)

// Compile-time check
var _ PaymentAccountUseCase = (*paymentAccountUC)(nil)

// PaymentAccountUseCase manages the payout destinations shown to users
// placing orders. Users see only active ones; admins manage the full set.
type PaymentAccountUseCase interface {
	Create(ctx context.Context, method, number, name string) (*model.PaymentAccount, error)
	Update(ctx context.Context, pa *model.PaymentAccount) error
	Get(ctx context.Context, id string) (*model.PaymentAccount, error)
	ListActive(ctx context.Context) ([]*model.PaymentAccount, error)
	ListAll(ctx context.Context) ([]*model.PaymentAccount, error)
	Delete(ctx context.Context, id string) error
}

type paymentAccountUC struct {
	payments repository.PaymentAccountRepository
	log      *zerolog.Logger
}

func NewPaymentAccountUseCase(payments repository.PaymentAccountRepository, logger *zerolog.Logger) *paymentAccountUC {
	return &paymentAccountUC{payments: payments, log: logger}
}

func (u *paymentAccountUC) Create(ctx context.Context, method, number, name string) (*model.PaymentAccount, error) {
	defer logging.TraceDuration(u.log, "PaymentAccountUC.Create")()
	pa, err := model.NewPaymentAccount(method, number, name)
	if err != nil {
		return nil, err
	}
	if err := u.payments.Save(ctx, repository.NoTX, pa); err != nil {
		return nil, err
	}
	return pa, nil
}

func (u *paymentAccountUC) ListActive(ctx context.Context) ([]*model.PaymentAccount, error) {
	return u.payments.ListActive(ctx, repository.NoTX)
}

func (u *paymentAccountUC) ListAll(ctx context.Context) ([]*model.PaymentAccount, error) {
	return u.payments.ListAll(ctx, repository.NoTX)
}

func (u *paymentAccountUC) Update(ctx context.Context, pa *model.PaymentAccount) error {
	defer logging.TraceDuration(u.log, "PaymentAccountUC.Update")()
	if pa == nil || pa.ID == "" {
		return domain.ErrInvalidArgument
	}
	return u.payments.Save(ctx, repository.NoTX, pa)
}

func (u *paymentAccountUC) Get(ctx context.Context, id string) (*model.PaymentAccount, error) {
	return u.payments.FindByID(ctx, repository.NoTX, id)
}

func (u *paymentAccountUC) Delete(ctx context.Context, id string) error {
	defer logging.TraceDuration(u.log, "PaymentAccountUC.Delete")()
	return u.payments.Delete(ctx, repository.NoTX, id)
}
