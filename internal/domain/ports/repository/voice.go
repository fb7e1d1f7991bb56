package repository

import (
	"context"

	"voiceclone-backend/internal/domain/model"
)

type VoiceRepository interface {
	Save(ctx context.Context, tx Tx, v *model.Voice) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Voice, error)
	// ListByAccount and ListPublic return voices newest first.
	ListByAccount(ctx context.Context, tx Tx, accountID string) ([]*model.Voice, error)
	ListPublic(ctx context.Context, tx Tx) ([]*model.Voice, error)
	Delete(ctx context.Context, tx Tx, id string) error
	DeleteByAccount(ctx context.Context, tx Tx, accountID string) error
}
