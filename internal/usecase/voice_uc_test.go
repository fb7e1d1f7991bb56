package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"voiceclone-backend/internal/domain"
	"voiceclone-backend/internal/domain/model"
	"voiceclone-backend/internal/domain/ports/repository"
)

type voiceFixture struct {
	uc       *voiceUC
	voices   *memVoiceRepo
	accounts *memAccountRepo
	store    *memSampleStore
	acc      *model.Account
}

func newVoiceFixture(t *testing.T) *voiceFixture {
	t.Helper()
	accounts := newMemAccountRepo()
	credits := newMemCreditTxRepo()
	voices := newMemVoiceRepo()
	store := newMemSampleStore()

	ledger := NewLedgerUseCase(accounts, credits, memTxManager{}, nopLogger())
	uc := NewVoiceUseCase(voices, ledger, store, nopLogger())

	acc := seedAccount(t, accounts, 0)
	acc.VoiceCloneLim = 2
	_ = accounts.Save(context.Background(), repository.NoTX, acc)

	return &voiceFixture{uc: uc, voices: voices, accounts: accounts, store: store, acc: acc}
}

func sample() *strings.Reader { return strings.NewReader("RIFF....WAVE") }

func TestVoice_CreatePrivateConsumesQuota(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newVoiceFixture(t)

	v, err := f.uc.CreatePrivate(ctx, f.acc.ID, "my voice", sample(), "audio/wav")
	if err != nil {
		t.Fatalf("CreatePrivate: %v", err)
	}
	if v.IsPublic {
		t.Fatal("private voice marked public")
	}

	acc, _ := f.accounts.FindByID(ctx, repository.NoTX, f.acc.ID)
	if acc.VoiceCloneUsed != 1 {
		t.Fatalf("quota not consumed: used=%d", acc.VoiceCloneUsed)
	}
	if len(f.store.store) != 1 {
		t.Fatalf("sample not stored: %d objects", len(f.store.store))
	}
}

func TestVoice_CreatePrivateQuotaExhausted(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newVoiceFixture(t)

	for i := 0; i < 2; i++ {
		if _, err := f.uc.CreatePrivate(ctx, f.acc.ID, "v", sample(), "audio/wav"); err != nil {
			t.Fatalf("clone %d: %v", i, err)
		}
	}
	if _, err := f.uc.CreatePrivate(ctx, f.acc.ID, "v3", sample(), "audio/wav"); !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
}

func TestVoice_CreatePrivateUploadFailureReleasesQuota(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newVoiceFixture(t)

	f.store.putErr = errors.New("s3 down")
	if _, err := f.uc.CreatePrivate(ctx, f.acc.ID, "v", sample(), "audio/wav"); err == nil {
		t.Fatal("expected upload error")
	}

	acc, _ := f.accounts.FindByID(ctx, repository.NoTX, f.acc.ID)
	if acc.VoiceCloneUsed != 0 {
		t.Fatalf("quota slot leaked on failed upload: used=%d", acc.VoiceCloneUsed)
	}
}

func TestVoice_DeleteReleasesQuota(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newVoiceFixture(t)

	v, _ := f.uc.CreatePrivate(ctx, f.acc.ID, "v", sample(), "audio/wav")
	if err := f.uc.Delete(ctx, f.acc.ID, v.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	acc, _ := f.accounts.FindByID(ctx, repository.NoTX, f.acc.ID)
	if acc.VoiceCloneUsed != 0 {
		t.Fatalf("quota not released: used=%d", acc.VoiceCloneUsed)
	}
	if len(f.store.store) != 0 {
		t.Fatalf("sample not deleted: %d objects", len(f.store.store))
	}
}

func TestVoice_DeleteForeignVoice(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newVoiceFixture(t)

	other, _ := model.NewPrivateVoice("someone-else", "theirs", "ref")
	_ = f.voices.Save(ctx, repository.NoTX, other)

	if err := f.uc.Delete(ctx, f.acc.ID, other.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign voice, got %v", err)
	}
}

func TestVoice_PublicVoiceNoQuotaAndUsableByAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newVoiceFixture(t)

	pub, err := f.uc.CreatePublic(ctx, "narrator", sample(), "audio/wav")
	if err != nil {
		t.Fatalf("CreatePublic: %v", err)
	}
	if !pub.IsPublic || pub.AccountID != "" {
		t.Fatalf("unexpected public voice shape: %+v", pub)
	}

	acc, _ := f.accounts.FindByID(ctx, repository.NoTX, f.acc.ID)
	if acc.VoiceCloneUsed != 0 {
		t.Fatalf("public voice consumed user quota: used=%d", acc.VoiceCloneUsed)
	}

	got, err := f.uc.ResolveUsable(ctx, f.acc.ID, pub.ID)
	if err != nil {
		t.Fatalf("ResolveUsable public: %v", err)
	}
	if got.ID != pub.ID {
		t.Fatalf("wrong voice resolved: %s", got.ID)
	}
}

func TestVoice_ResolveUsableForbidden(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newVoiceFixture(t)

	other, _ := model.NewPrivateVoice("someone-else", "theirs", "ref")
	_ = f.voices.Save(ctx, repository.NoTX, other)

	if _, err := f.uc.ResolveUsable(ctx, f.acc.ID, other.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestVoice_ListUsable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newVoiceFixture(t)

	mine, _ := f.uc.CreatePrivate(ctx, f.acc.ID, "mine", sample(), "audio/wav")
	pub, _ := f.uc.CreatePublic(ctx, "narrator", sample(), "audio/wav")
	other, _ := model.NewPrivateVoice("someone-else", "theirs", "ref")
	_ = f.voices.Save(ctx, repository.NoTX, other)

	usable, err := f.uc.ListUsable(ctx, f.acc.ID)
	if err != nil {
		t.Fatalf("ListUsable: %v", err)
	}
	if len(usable) != 2 {
		t.Fatalf("expected own+public voices, got %d", len(usable))
	}
	ids := map[string]bool{}
	for _, v := range usable {
		ids[v.ID] = true
	}
	if !ids[mine.ID] || !ids[pub.ID] || ids[other.ID] {
		t.Fatalf("wrong usable set: %v", ids)
	}
}

func TestVoice_ListUsableNewestFirstAcrossKinds(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newVoiceFixture(t)

	// interleave private and public creation times
	oldMine, _ := model.NewPrivateVoice(f.acc.ID, "old mine", "ref-1")
	oldMine.CreatedAt = time.Now().Add(-3 * time.Hour)
	pub, _ := model.NewPublicVoice("narrator", "ref-2")
	pub.CreatedAt = time.Now().Add(-2 * time.Hour)
	newMine, _ := model.NewPrivateVoice(f.acc.ID, "new mine", "ref-3")
	newMine.CreatedAt = time.Now().Add(-1 * time.Hour)

	for _, v := range []*model.Voice{oldMine, pub, newMine} {
		if err := f.voices.Save(ctx, repository.NoTX, v); err != nil {
			t.Fatalf("seed voice %s: %v", v.Name, err)
		}
	}

	usable, err := f.uc.ListUsable(ctx, f.acc.ID)
	if err != nil {
		t.Fatalf("ListUsable: %v", err)
	}
	want := []string{newMine.ID, pub.ID, oldMine.ID}
	if len(usable) != len(want) {
		t.Fatalf("expected %d voices, got %d", len(want), len(usable))
	}
	for i, id := range want {
		if usable[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s (public voices must interleave by creation time)",
				i, id, usable[i].ID)
		}
	}
}
