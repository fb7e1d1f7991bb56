package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"voiceclone-backend/internal/domain"
	"voiceclone-backend/internal/domain/model"
	"voiceclone-backend/internal/domain/ports/repository"
)

var _ repository.GenerationJobRepository = (*generationJobRepo)(nil)

type generationJobRepo struct {
	pool *pgxpool.Pool
}

func NewGenerationJobRepo(pool *pgxpool.Pool) *generationJobRepo {
	return &generationJobRepo{pool: pool}
}

const jobColumns = `
id, account_id, voice_id, voice_name, sample_ref, text, language, credits_charged,
status, audio_url, last_error, created_at, started_at, finished_at`

func (r *generationJobRepo) Save(ctx context.Context, tx repository.Tx, job *model.GenerationJob) error {
	const q = `
INSERT INTO generation_jobs (
  id, account_id, voice_id, voice_name, sample_ref, text, language, credits_charged,
  status, audio_url, last_error, created_at, started_at, finished_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
ON CONFLICT (id) DO UPDATE SET
  status=$9, audio_url=$10, last_error=$11, started_at=$13, finished_at=$14;`
	_, err := execSQL(ctx, r.pool, tx, q,
		job.ID, job.AccountID, job.VoiceID, job.VoiceName, job.SampleRef, job.Text, job.Language,
		job.CreditsCharged, job.Status, job.AudioURL, job.LastError,
		job.CreatedAt, job.StartedAt, job.FinishedAt)
	return err
}

func (r *generationJobRepo) scanOne(row pgx.Row) (*model.GenerationJob, error) {
	var j model.GenerationJob
	var status string
	if err := row.Scan(&j.ID, &j.AccountID, &j.VoiceID, &j.VoiceName, &j.SampleRef, &j.Text,
		&j.Language, &j.CreditsCharged, &status, &j.AudioURL, &j.LastError,
		&j.CreatedAt, &j.StartedAt, &j.FinishedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan generation job: %w", err)
	}
	j.Status = model.GenerationJobStatus(status)
	return &j, nil
}

func (r *generationJobRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.GenerationJob, error) {
	row, err := pickRow(ctx, r.pool, tx,
		`SELECT `+jobColumns+` FROM generation_jobs WHERE id=$1;`, id)
	if err != nil {
		return nil, err
	}
	return r.scanOne(row)
}

// FetchAndMarkProcessing claims the oldest queued job with SKIP LOCKED so
// concurrent pollers never pick the same job twice.
func (r *generationJobRepo) FetchAndMarkProcessing(ctx context.Context) (*model.GenerationJob, error) {
	const q = `
UPDATE generation_jobs
   SET status = 'processing', started_at = NOW()
 WHERE id = (
       SELECT id FROM generation_jobs
        WHERE status = 'queued'
        ORDER BY created_at
        FOR UPDATE SKIP LOCKED
        LIMIT 1
 )
RETURNING ` + jobColumns + `;`
	return r.scanOne(r.pool.QueryRow(ctx, q))
}

func (r *generationJobRepo) CountAll(ctx context.Context, tx repository.Tx) (int, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT COUNT(*) FROM generation_jobs;`)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("count generation jobs: %w", err)
	}
	return n, nil
}
