package usecase

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"voiceclone-backend/internal/domain"
	"voiceclone-backend/internal/domain/model"
	"voiceclone-backend/internal/domain/ports/repository"
	"voiceclone-backend/internal/infra/logging"
)

// Compile-time check
var _ AuthUseCase = (*authUC)(nil)

// AuthUseCase covers user registration and both login flows. Admin login
// requires the shared operator secret on top of the password and creates
// the admin record lazily on first use.
type AuthUseCase interface {
	Register(ctx context.Context, email, name, password string) (*model.Account, error)
	Login(ctx context.Context, email, password string) (*model.Account, error)
	AdminLogin(ctx context.Context, email, password, secretKey string) (*model.Admin, error)
}

type authUC struct {
	accounts    repository.AccountRepository
	admins      repository.AdminRepository
	tm          repository.TransactionManager
	adminSecret string
	log         *zerolog.Logger
}

func NewAuthUseCase(
	accounts repository.AccountRepository,
	admins repository.AdminRepository,
	tm repository.TransactionManager,
	adminSecret string,
	logger *zerolog.Logger,
) *authUC {
	return &authUC{
		accounts:    accounts,
		admins:      admins,
		tm:          tm,
		adminSecret: adminSecret,
		log:         logger,
	}
}

func (u *authUC) Register(ctx context.Context, email, name, password string) (*model.Account, error) {
	defer logging.TraceDuration(u.log, "AuthUC.Register")()
	if email == "" || name == "" || len(password) < 6 {
		return nil, domain.ErrInvalidArgument
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var acc *model.Account
	err = u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		if _, err := u.accounts.FindByEmail(ctx, tx, email); err == nil {
			return domain.ErrAlreadyExists
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		acc, err = model.NewAccount(email, name, string(hash))
		if err != nil {
			return err
		}
		return u.accounts.Save(ctx, tx, acc)
	})
	if err != nil {
		return nil, err
	}

	u.log.Info().Str("account_id", acc.ID).Msg("account registered")
	return acc, nil
}

func (u *authUC) Login(ctx context.Context, email, password string) (*model.Account, error) {
	defer logging.TraceDuration(u.log, "AuthUC.Login")()

	acc, err := u.accounts.FindByEmail(ctx, repository.NoTX, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if acc.IsBlocked {
		return nil, domain.ErrAccountBlocked
	}
	return acc, nil
}

func (u *authUC) AdminLogin(ctx context.Context, email, password, secretKey string) (*model.Admin, error) {
	defer logging.TraceDuration(u.log, "AuthUC.AdminLogin")()
	if subtle.ConstantTimeCompare([]byte(secretKey), []byte(u.adminSecret)) != 1 {
		return nil, domain.ErrInvalidCredentials
	}
	if email == "" || password == "" {
		return nil, domain.ErrInvalidArgument
	}

	var admin *model.Admin
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		existing, err := u.admins.FindByEmail(ctx, tx, email)
		if err == nil {
			if bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(password)) != nil {
				return domain.ErrInvalidCredentials
			}
			admin = existing
			return nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		// First login with the shared secret provisions the admin.
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin = model.NewAdmin(email, string(hash))
		return u.admins.Save(ctx, tx, admin)
	})
	if err != nil {
		return nil, err
	}

	u.log.Info().Str("admin_id", admin.ID).Msg("admin login")
	return admin, nil
}
