package usecase

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"voiceclone-backend/internal/domain"
	"voiceclone-backend/internal/domain/model"
	"voiceclone-backend/internal/domain/ports/repository"
	"voiceclone-backend/internal/infra/logging"
)

// Compile-time check
var _ GenerationUseCase = (*generationUC)(nil)

// GenerationUseCase accepts text-to-speech requests. Submit charges the
// account and enqueues a job in one transaction; the worker picks it up
// and refunds the charge if synthesis fails.
type GenerationUseCase interface {
	Submit(ctx context.Context, accountID, voiceID, text, language string) (*model.GenerationJob, error)
	// Poll returns a job's current state to its owner.
	Poll(ctx context.Context, accountID, jobID string) (*model.GenerationJob, error)
}

type generationUC struct {
	jobs   repository.GenerationJobRepository
	voices VoiceUseCase
	ledger LedgerUseCase
	tm     repository.TransactionManager
	log    *zerolog.Logger
}

func NewGenerationUseCase(
	jobs repository.GenerationJobRepository,
	voices VoiceUseCase,
	ledger LedgerUseCase,
	tm repository.TransactionManager,
	logger *zerolog.Logger,
) *generationUC {
	return &generationUC{
		jobs:   jobs,
		voices: voices,
		ledger: ledger,
		tm:     tm,
		log:    logger,
	}
}

func (u *generationUC) Submit(ctx context.Context, accountID, voiceID, text, language string) (*model.GenerationJob, error) {
	defer logging.TraceDuration(u.log, "GenerationUC.Submit")()
	if text == "" {
		return nil, domain.ErrInvalidArgument
	}

	voice, err := u.voices.ResolveUsable(ctx, accountID, voiceID)
	if err != nil {
		return nil, err
	}

	job, err := model.NewGenerationJob(accountID, voice, text, language)
	if err != nil {
		return nil, err
	}

	// Charge and enqueue atomically; a failed insert rolls the debit back.
	err = u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		if _, err := u.ledger.DebitTx(ctx, tx, accountID, job.CreditsCharged, job.ID); err != nil {
			return err
		}
		return u.jobs.Save(ctx, tx, job)
	})
	if err != nil {
		return nil, err
	}

	u.log.Info().Str("job_id", job.ID).Str("account_id", accountID).
		Int64("credits", job.CreditsCharged).Msg("generation job queued")
	return job, nil
}

func (u *generationUC) Poll(ctx context.Context, accountID, jobID string) (*model.GenerationJob, error) {
	job, err := u.jobs.FindByID(ctx, repository.NoTX, jobID)
	if err != nil {
		return nil, err
	}
	if job.AccountID != accountID {
		return nil, domain.ErrNotFound
	}
	return job, nil
}
