package usecase

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"voiceclone-backend/internal/domain"
	"voiceclone-backend/internal/domain/model"
	"voiceclone-backend/internal/domain/ports/repository"
	"voiceclone-backend/internal/infra/logging"
	"voiceclone-backend/internal/infra/metrics"
)

// Compile-time check
var _ LedgerUseCase = (*ledgerUC)(nil)

// LedgerUseCase is the single writer of account credits and quota
// counters. Every mutation runs under a per-account lock, keeps the
// balance non-negative and leaves a CreditTransaction behind.
type LedgerUseCase interface {
	Debit(ctx context.Context, accountID string, amount int64, refID string) (*model.Account, error)
	Refund(ctx context.Context, accountID string, amount int64, refID string) (*model.Account, error)
	AdminAdd(ctx context.Context, accountID string, amount int64) (*model.Account, error)
	// DebitTx and GrantPlanTx run inside an enclosing transaction so
	// callers can make the charge atomic with their own writes.
	DebitTx(ctx context.Context, tx repository.Tx, accountID string, amount int64, refID string) (*model.Account, error)
	GrantPlanTx(ctx context.Context, tx repository.Tx, accountID string, grant model.PlanGrant, refID string) (*model.Account, error)
	ReserveQuota(ctx context.Context, accountID string) (*model.Account, error)
	ReleaseQuota(ctx context.Context, accountID string) error
}

type ledgerUC struct {
	accounts repository.AccountRepository
	credits  repository.CreditTransactionRepository
	tm       repository.TransactionManager
	log      *zerolog.Logger

	// per-account serialization for the in-process path; the advisory
	// lock below covers multi-instance deployments
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLedgerUseCase(
	accounts repository.AccountRepository,
	credits repository.CreditTransactionRepository,
	tm repository.TransactionManager,
	logger *zerolog.Logger,
) *ledgerUC {
	return &ledgerUC{
		accounts: accounts,
		credits:  credits,
		tm:       tm,
		log:      logger,
		locks:    make(map[string]*sync.Mutex),
	}
}

func hashToInt64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64() & ((1 << 63) - 1))
}

func (u *ledgerUC) accountLock(accountID string) *sync.Mutex {
	u.mu.Lock()
	defer u.mu.Unlock()
	l, ok := u.locks[accountID]
	if !ok {
		l = &sync.Mutex{}
		u.locks[accountID] = l
	}
	return l
}

// lockAccountTx takes a per-account advisory lock bound to the enclosing
// transaction. No-op outside a real DB transaction.
func lockAccountTx(ctx context.Context, tx repository.Tx, accountID string) error {
	if ptx, ok := tx.(pgx.Tx); ok {
		if _, err := ptx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", hashToInt64(accountID)); err != nil {
			return err
		}
	}
	return nil
}

// apply is the single mutation path: load, check, mutate, save, record.
func (u *ledgerUC) apply(ctx context.Context, tx repository.Tx, accountID string, delta int64, kind model.CreditTxKind, refID string) (*model.Account, error) {
	if err := lockAccountTx(ctx, tx, accountID); err != nil {
		return nil, err
	}
	acc, err := u.accounts.FindByID(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}
	if acc.IsBlocked {
		metrics.IncLedgerRejection("blocked")
		return nil, domain.ErrAccountBlocked
	}
	if acc.Credits+delta < 0 {
		metrics.IncLedgerRejection("insufficient")
		return nil, domain.ErrInsufficientCredits
	}

	acc.Credits += delta
	if err := u.accounts.Save(ctx, tx, acc); err != nil {
		return nil, err
	}
	if err := u.credits.Save(ctx, tx, model.NewCreditTransaction(accountID, delta, kind, refID)); err != nil {
		return nil, err
	}
	metrics.AddCreditsMoved(string(kind), delta)
	return acc, nil
}

func (u *ledgerUC) applyOwnTx(ctx context.Context, accountID string, delta int64, kind model.CreditTxKind, refID string) (*model.Account, error) {
	l := u.accountLock(accountID)
	l.Lock()
	defer l.Unlock()

	var acc *model.Account
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		var err error
		acc, err = u.apply(ctx, tx, accountID, delta, kind, refID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

func (u *ledgerUC) Debit(ctx context.Context, accountID string, amount int64, refID string) (*model.Account, error) {
	defer logging.TraceDuration(u.log, "LedgerUC.Debit")()
	if amount <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	return u.applyOwnTx(ctx, accountID, -amount, model.CreditTxGeneration, refID)
}

// Refund credits back a failed generation charge. Unlike the other
// mutations it goes through even when the account is meanwhile blocked,
// since the money was already taken.
func (u *ledgerUC) Refund(ctx context.Context, accountID string, amount int64, refID string) (*model.Account, error) {
	defer logging.TraceDuration(u.log, "LedgerUC.Refund")()
	if amount <= 0 {
		return nil, domain.ErrInvalidArgument
	}

	l := u.accountLock(accountID)
	l.Lock()
	defer l.Unlock()

	var acc *model.Account
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		if err := lockAccountTx(ctx, tx, accountID); err != nil {
			return err
		}
		var err error
		acc, err = u.accounts.FindByID(ctx, tx, accountID)
		if err != nil {
			return err
		}
		acc.Credits += amount
		if err := u.accounts.Save(ctx, tx, acc); err != nil {
			return err
		}
		return u.credits.Save(ctx, tx, model.NewCreditTransaction(accountID, amount, model.CreditTxRefund, refID))
	})
	if err != nil {
		return nil, err
	}
	metrics.AddCreditsMoved(string(model.CreditTxRefund), amount)
	return acc, nil
}

func (u *ledgerUC) AdminAdd(ctx context.Context, accountID string, amount int64) (*model.Account, error) {
	defer logging.TraceDuration(u.log, "LedgerUC.AdminAdd")()
	if amount <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	return u.applyOwnTx(ctx, accountID, amount, model.CreditTxAdminAdd, "")
}

func (u *ledgerUC) DebitTx(ctx context.Context, tx repository.Tx, accountID string, amount int64, refID string) (*model.Account, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	return u.apply(ctx, tx, accountID, -amount, model.CreditTxGeneration, refID)
}

// GrantPlanTx applies an approved order's snapshot: credits are added and
// the plan name, expiry and clone quota are replaced. The used counter is
// kept, so an account that burned quota on an old plan does not get it
// back for free.
func (u *ledgerUC) GrantPlanTx(ctx context.Context, tx repository.Tx, accountID string, grant model.PlanGrant, refID string) (*model.Account, error) {
	if err := lockAccountTx(ctx, tx, accountID); err != nil {
		return nil, err
	}
	acc, err := u.accounts.FindByID(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	acc.Credits += grant.Credits
	acc.PlanName = &grant.PlanName
	acc.VoiceCloneLim = grant.VoiceCloneLim
	expires := grant.ExpiresFrom(acc.PlanExpiresAt)
	acc.PlanExpiresAt = &expires

	if err := u.accounts.Save(ctx, tx, acc); err != nil {
		return nil, err
	}
	if err := u.credits.Save(ctx, tx, model.NewCreditTransaction(accountID, grant.Credits, model.CreditTxPurchase, refID)); err != nil {
		return nil, err
	}
	metrics.AddCreditsMoved(string(model.CreditTxPurchase), grant.Credits)
	return acc, nil
}

// ReserveQuota claims one voice-clone slot ahead of the clone call.
func (u *ledgerUC) ReserveQuota(ctx context.Context, accountID string) (*model.Account, error) {
	defer logging.TraceDuration(u.log, "LedgerUC.ReserveQuota")()

	l := u.accountLock(accountID)
	l.Lock()
	defer l.Unlock()

	var acc *model.Account
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		if err := lockAccountTx(ctx, tx, accountID); err != nil {
			return err
		}
		var err error
		acc, err = u.accounts.FindByID(ctx, tx, accountID)
		if err != nil {
			return err
		}
		if acc.IsBlocked {
			metrics.IncLedgerRejection("blocked")
			return domain.ErrAccountBlocked
		}
		if acc.VoiceCloneUsed >= acc.VoiceCloneLim {
			metrics.IncLedgerRejection("quota")
			return domain.ErrQuotaExceeded
		}
		acc.VoiceCloneUsed++
		return u.accounts.Save(ctx, tx, acc)
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// ReleaseQuota gives a slot back after a voice deletion or a failed clone.
func (u *ledgerUC) ReleaseQuota(ctx context.Context, accountID string) error {
	defer logging.TraceDuration(u.log, "LedgerUC.ReleaseQuota")()

	l := u.accountLock(accountID)
	l.Lock()
	defer l.Unlock()

	return u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		if err := lockAccountTx(ctx, tx, accountID); err != nil {
			return err
		}
		acc, err := u.accounts.FindByID(ctx, tx, accountID)
		if err != nil {
			return err
		}
		if acc.VoiceCloneUsed > 0 {
			acc.VoiceCloneUsed--
		}
		return u.accounts.Save(ctx, tx, acc)
	})
}
