package repository

import (
	"context"

	"voiceclone-backend/internal/domain/model"
)

type GenerationJobRepository interface {
	Save(ctx context.Context, tx Tx, job *model.GenerationJob) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.GenerationJob, error)
	// FetchAndMarkProcessing atomically claims the oldest queued job and
	// flips it to processing. Returns domain.ErrNotFound when the queue is
	// empty.
	FetchAndMarkProcessing(ctx context.Context) (*model.GenerationJob, error)
	CountAll(ctx context.Context, tx Tx) (int, error)
}
