package usecase

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"voiceclone-backend/internal/domain"
	"voiceclone-backend/internal/domain/model"
	"voiceclone-backend/internal/domain/ports/adapter"
	"voiceclone-backend/internal/domain/ports/repository"
	"voiceclone-backend/internal/infra/logging"
)

// Compile-time check
var _ VoiceUseCase = (*voiceUC)(nil)

// VoiceUseCase manages the voice registry. Private voices consume the
// owner's clone quota; public voices are admin-published and free for
// everyone to use.
type VoiceUseCase interface {
	CreatePrivate(ctx context.Context, accountID, name string, sample io.Reader, contentType string) (*model.Voice, error)
	CreatePublic(ctx context.Context, name string, sample io.Reader, contentType string) (*model.Voice, error)
	Delete(ctx context.Context, accountID, voiceID string) error
	AdminDelete(ctx context.Context, voiceID string) error
	ListMine(ctx context.Context, accountID string) ([]*model.Voice, error)
	ListPublic(ctx context.Context) ([]*model.Voice, error)
	ListUsable(ctx context.Context, accountID string) ([]*model.Voice, error)
	// ResolveUsable loads a voice and checks the account may generate
	// with it: owned private voices and public voices pass.
	ResolveUsable(ctx context.Context, accountID, voiceID string) (*model.Voice, error)
}

type voiceUC struct {
	voices repository.VoiceRepository
	ledger LedgerUseCase
	store  adapter.SampleStore
	log    *zerolog.Logger
}

func NewVoiceUseCase(
	voices repository.VoiceRepository,
	ledger LedgerUseCase,
	store adapter.SampleStore,
	logger *zerolog.Logger,
) *voiceUC {
	return &voiceUC{voices: voices, ledger: ledger, store: store, log: logger}
}

// CreatePrivate claims a quota slot first, then uploads the sample and
// saves the record. Any later failure hands the slot back.
func (u *voiceUC) CreatePrivate(ctx context.Context, accountID, name string, sample io.Reader, contentType string) (*model.Voice, error) {
	defer logging.TraceDuration(u.log, "VoiceUC.CreatePrivate")()
	if name == "" || sample == nil {
		return nil, domain.ErrInvalidArgument
	}

	if _, err := u.ledger.ReserveQuota(ctx, accountID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("samples/%s/%s.wav", accountID, uuid.NewString())
	ref, err := u.store.Put(ctx, key, sample, contentType)
	if err != nil {
		_ = u.ledger.ReleaseQuota(ctx, accountID)
		return nil, err
	}

	voice, err := model.NewPrivateVoice(accountID, name, ref)
	if err == nil {
		err = u.voices.Save(ctx, repository.NoTX, voice)
	}
	if err != nil {
		_ = u.store.Delete(ctx, ref)
		_ = u.ledger.ReleaseQuota(ctx, accountID)
		return nil, err
	}

	u.log.Info().Str("voice_id", voice.ID).Str("account_id", accountID).Msg("voice cloned")
	return voice, nil
}

func (u *voiceUC) CreatePublic(ctx context.Context, name string, sample io.Reader, contentType string) (*model.Voice, error) {
	defer logging.TraceDuration(u.log, "VoiceUC.CreatePublic")()
	if name == "" || sample == nil {
		return nil, domain.ErrInvalidArgument
	}

	key := fmt.Sprintf("samples/public/%s.wav", uuid.NewString())
	ref, err := u.store.Put(ctx, key, sample, contentType)
	if err != nil {
		return nil, err
	}

	voice, err := model.NewPublicVoice(name, ref)
	if err == nil {
		err = u.voices.Save(ctx, repository.NoTX, voice)
	}
	if err != nil {
		_ = u.store.Delete(ctx, ref)
		return nil, err
	}

	u.log.Info().Str("voice_id", voice.ID).Msg("public voice published")
	return voice, nil
}

// Delete removes an owned private voice and frees its quota slot. The
// stored sample is removed best effort; generation jobs keep their own
// sample snapshot.
func (u *voiceUC) Delete(ctx context.Context, accountID, voiceID string) error {
	defer logging.TraceDuration(u.log, "VoiceUC.Delete")()

	voice, err := u.voices.FindByID(ctx, repository.NoTX, voiceID)
	if err != nil {
		return err
	}
	if voice.IsPublic || voice.AccountID != accountID {
		return domain.ErrNotFound
	}

	if err := u.voices.Delete(ctx, repository.NoTX, voiceID); err != nil {
		return err
	}
	if err := u.ledger.ReleaseQuota(ctx, accountID); err != nil {
		u.log.Error().Err(err).Str("account_id", accountID).Msg("failed to release clone quota")
	}
	if err := u.store.Delete(ctx, voice.SampleRef); err != nil {
		u.log.Warn().Err(err).Str("voice_id", voiceID).Msg("failed to delete voice sample")
	}
	return nil
}

func (u *voiceUC) AdminDelete(ctx context.Context, voiceID string) error {
	defer logging.TraceDuration(u.log, "VoiceUC.AdminDelete")()

	voice, err := u.voices.FindByID(ctx, repository.NoTX, voiceID)
	if err != nil {
		return err
	}
	if err := u.voices.Delete(ctx, repository.NoTX, voiceID); err != nil {
		return err
	}
	if !voice.IsPublic && voice.AccountID != "" {
		if err := u.ledger.ReleaseQuota(ctx, voice.AccountID); err != nil {
			u.log.Error().Err(err).Str("account_id", voice.AccountID).Msg("failed to release clone quota")
		}
	}
	if err := u.store.Delete(ctx, voice.SampleRef); err != nil {
		u.log.Warn().Err(err).Str("voice_id", voiceID).Msg("failed to delete voice sample")
	}
	return nil
}

func (u *voiceUC) ListMine(ctx context.Context, accountID string) ([]*model.Voice, error) {
	return u.voices.ListByAccount(ctx, repository.NoTX, accountID)
}

func (u *voiceUC) ListPublic(ctx context.Context) ([]*model.Voice, error) {
	return u.voices.ListPublic(ctx, repository.NoTX)
}

func (u *voiceUC) ListUsable(ctx context.Context, accountID string) ([]*model.Voice, error) {
	mine, err := u.voices.ListByAccount(ctx, repository.NoTX, accountID)
	if err != nil {
		return nil, err
	}
	public, err := u.voices.ListPublic(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}
	// both sublists are newest first, the merged view must stay that way
	usable := append(mine, public...)
	sort.Slice(usable, func(i, j int) bool {
		return usable[i].CreatedAt.After(usable[j].CreatedAt)
	})
	return usable, nil
}

func (u *voiceUC) ResolveUsable(ctx context.Context, accountID, voiceID string) (*model.Voice, error) {
	voice, err := u.voices.FindByID(ctx, repository.NoTX, voiceID)
	if err != nil {
		return nil, err
	}
	if !voice.UsableBy(accountID) {
		return nil, domain.ErrForbidden
	}
	return voice, nil
}
