package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"voiceclone-backend/internal/domain/model"
	"voiceclone-backend/internal/domain/ports/adapter"
	"voiceclone-backend/internal/domain/ports/repository"
	"voiceclone-backend/internal/infra/logging"
)

// Compile-time check
var _ StatsUseCase = (*statsUC)(nil)

// StatsUseCase aggregates the admin dashboard numbers. All reads are
// independent; the figures are a snapshot, not a consistent view.
type StatsUseCase interface {
	Collect(ctx context.Context) (*model.AdminStats, error)
}

type statsUC struct {
	accounts repository.AccountRepository
	orders   repository.OrderRepository
	credits  repository.CreditTransactionRepository
	jobs     repository.GenerationJobRepository
	synth    adapter.SpeechSynthesizer
	log      *zerolog.Logger
}

func NewStatsUseCase(
	accounts repository.AccountRepository,
	orders repository.OrderRepository,
	credits repository.CreditTransactionRepository,
	jobs repository.GenerationJobRepository,
	synth adapter.SpeechSynthesizer,
	logger *zerolog.Logger,
) *statsUC {
	return &statsUC{
		accounts: accounts,
		orders:   orders,
		credits:  credits,
		jobs:     jobs,
		synth:    synth,
		log:      logger,
	}
}

func (u *statsUC) Collect(ctx context.Context) (*model.AdminStats, error) {
	defer logging.TraceDuration(u.log, "StatsUC.Collect")()

	stats := &model.AdminStats{}
	var err error

	if stats.TotalUsers, err = u.accounts.CountAll(ctx, repository.NoTX); err != nil {
		return nil, err
	}
	if stats.ActiveUsers, err = u.accounts.CountWithPlan(ctx, repository.NoTX); err != nil {
		return nil, err
	}
	if stats.TotalOrders, err = u.orders.CountAll(ctx, repository.NoTX); err != nil {
		return nil, err
	}
	if stats.PendingOrders, err = u.orders.CountByStatus(ctx, repository.NoTX, model.OrderStatusPending); err != nil {
		return nil, err
	}
	if stats.RevenueCents, err = u.orders.SumAmountByStatus(ctx, repository.NoTX, model.OrderStatusApproved); err != nil {
		return nil, err
	}
	if stats.TotalCreditsSold, err = u.credits.SumByKind(ctx, repository.NoTX, model.CreditTxPurchase); err != nil {
		return nil, err
	}
	if stats.TotalCreditsUsed, err = u.credits.SumByKind(ctx, repository.NoTX, model.CreditTxGeneration); err != nil {
		return nil, err
	}
	if stats.TotalGenerations, err = u.jobs.CountAll(ctx, repository.NoTX); err != nil {
		return nil, err
	}

	// Engine telemetry is best effort; a dead engine must not blank the
	// whole dashboard.
	gpu, err := u.synth.GPUStats(ctx)
	if err != nil {
		u.log.Warn().Err(err).Msg("gpu stats unavailable")
	}
	stats.GPU = gpu

	return stats, nil
}
