package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"voiceclone-backend/internal/domain"
	"voiceclone-backend/internal/domain/model"
	"voiceclone-backend/internal/domain/ports/adapter"
	"voiceclone-backend/internal/domain/ports/repository"
	"voiceclone-backend/internal/domain/ports/usecase"
	"voiceclone-backend/internal/infra/metrics"
)

// SynthesisProcessor drains the generation job queue. Each claimed job is
// sent to the external voice engine; the terminal status write and the
// failure refund happen even when the poll context is already cancelled.
type SynthesisProcessor struct {
	jobsRepo     repository.GenerationJobRepository
	ledger       usecase.CreditLedger
	synth        adapter.SpeechSynthesizer
	callTimeout  time.Duration
	pollInterval time.Duration
	log          *zerolog.Logger
}

func NewSynthesisProcessor(
	jobsRepo repository.GenerationJobRepository,
	ledger usecase.CreditLedger,
	synth adapter.SpeechSynthesizer,
	callTimeout, pollInterval time.Duration,
	log *zerolog.Logger,
) *SynthesisProcessor {
	if callTimeout <= 0 {
		callTimeout = 5 * time.Minute
	}
	if pollInterval <= 0 {
		pollInterval = 500 * time.Millisecond
	}
	return &SynthesisProcessor{
		jobsRepo:     jobsRepo,
		ledger:       ledger,
		synth:        synth,
		callTimeout:  callTimeout,
		pollInterval: pollInterval,
		log:          log,
	}
}

// Start runs the polling loop, handing work to the pool. Run in a goroutine.
func (p *SynthesisProcessor) Start(ctx context.Context, pool *Pool) {
	p.log.Info().Msg("synthesis processor started")
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log.Info().Msg("synthesis processor stopping")
			return
		case <-ticker.C:
			_ = pool.Submit(func(ctx context.Context) error {
				p.ProcessOne(ctx)
				return nil
			})
		}
	}
}

// ProcessOne claims at most one queued job and drives it to a terminal
// status. Safe to call concurrently; SKIP LOCKED in the repo keeps two
// callers off the same job.
func (p *SynthesisProcessor) ProcessOne(ctx context.Context) {
	job, err := p.jobsRepo.FetchAndMarkProcessing(ctx)
	if err != nil {
		if err != domain.ErrNotFound {
			p.log.Error().Err(err).Msg("failed to fetch generation job")
		}
		return
	}

	p.log.Info().Str("job_id", job.ID).Str("voice", job.VoiceName).Msg("processing generation job")

	callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
	start := time.Now()
	audioURL, err := p.synth.Synthesize(callCtx, adapter.SynthesisRequest{
		JobID:     job.ID,
		AccountID: job.AccountID,
		SampleRef: job.SampleRef,
		Text:      job.Text,
		Language:  job.Language,
	})
	cancel()
	latency := time.Since(start)
	metrics.ObserveSynthesisLatency(latency.Seconds())

	now := time.Now()
	job.FinishedAt = &now
	if err != nil {
		job.Status = model.GenerationJobStatusFailed
		job.LastError = err.Error()
		p.log.Error().Err(err).Str("job_id", job.ID).Msg("generation job failed")
	} else {
		job.Status = model.GenerationJobStatusCompleted
		job.AudioURL = audioURL
	}
	metrics.IncGenerationJob(string(job.Status))

	// Background context so a cancelled poll loop cannot strand the job
	// in processing or swallow the refund.
	finalCtx := context.Background()
	if saveErr := p.jobsRepo.Save(finalCtx, repository.NoTX, job); saveErr != nil {
		p.log.Error().Err(saveErr).Str("job_id", job.ID).Msg("failed to finalize generation job")
		return
	}

	if job.Status == model.GenerationJobStatusFailed && job.CreditsCharged > 0 {
		if _, refundErr := p.ledger.Refund(finalCtx, job.AccountID, job.CreditsCharged, job.ID); refundErr != nil {
			p.log.Error().Err(refundErr).Str("job_id", job.ID).
				Int64("credits", job.CreditsCharged).Msg("failed to refund charge for failed job")
		}
	}

	p.log.Info().Str("job_id", job.ID).Str("status", string(job.Status)).
		Dur("duration_ms", latency).Msg("generation job finished")
}
