package usecase

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"voiceclone-backend/internal/domain/model"
	"voiceclone-backend/internal/domain/ports/repository"
	"voiceclone-backend/internal/infra/logging"
)

// Compile-time check
var _ AccountUseCase = (*accountUC)(nil)

// AccountUseCase exposes profile reads and the admin account management
// operations (listing, blocking, deletion).
type AccountUseCase interface {
	Get(ctx context.Context, id string) (*model.Account, error)
	Transactions(ctx context.Context, accountID string) ([]*model.CreditTransaction, error)
	List(ctx context.Context, search string, offset, limit int) ([]*model.Account, int, error)
	SetBlocked(ctx context.Context, id string, blocked bool) (*model.Account, error)
	Delete(ctx context.Context, id string) error
}

type accountUC struct {
	accounts repository.AccountRepository
	credits  repository.CreditTransactionRepository
	voices   repository.VoiceRepository
	tm       repository.TransactionManager
	log      *zerolog.Logger
}

func NewAccountUseCase(
	accounts repository.AccountRepository,
	credits repository.CreditTransactionRepository,
	voices repository.VoiceRepository,
	tm repository.TransactionManager,
	logger *zerolog.Logger,
) *accountUC {
	return &accountUC{
		accounts: accounts,
		credits:  credits,
		voices:   voices,
		tm:       tm,
		log:      logger,
	}
}

func (u *accountUC) Get(ctx context.Context, id string) (*model.Account, error) {
	return u.accounts.FindByID(ctx, repository.NoTX, id)
}

func (u *accountUC) Transactions(ctx context.Context, accountID string) ([]*model.CreditTransaction, error) {
	return u.credits.ListByAccount(ctx, repository.NoTX, accountID)
}

func (u *accountUC) List(ctx context.Context, search string, offset, limit int) ([]*model.Account, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return u.accounts.List(ctx, repository.NoTX, search, offset, limit)
}

// SetBlocked flips the block flag. A blocked account keeps its data but
// every ledger mutation and login is refused until unblocked.
func (u *accountUC) SetBlocked(ctx context.Context, id string, blocked bool) (*model.Account, error) {
	defer logging.TraceDuration(u.log, "AccountUC.SetBlocked")()

	var acc *model.Account
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		var err error
		acc, err = u.accounts.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		acc.IsBlocked = blocked
		return u.accounts.Save(ctx, tx, acc)
	})
	if err != nil {
		return nil, err
	}

	u.log.Info().Str("account_id", id).Bool("blocked", blocked).Msg("account block flag changed")
	return acc, nil
}

// Delete removes the account and its voices. Orders and the credit trail
// stay behind as audit history.
func (u *accountUC) Delete(ctx context.Context, id string) error {
	defer logging.TraceDuration(u.log, "AccountUC.Delete")()

	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		if _, err := u.accounts.FindByID(ctx, tx, id); err != nil {
			return err
		}
		if err := u.voices.DeleteByAccount(ctx, tx, id); err != nil {
			return err
		}
		return u.accounts.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	u.log.Info().Str("account_id", id).Msg("account deleted")
	return nil
}
