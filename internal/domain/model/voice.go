package model

import (
	"time"

	"voiceclone-backend/internal/domain"

	"github.com/google/uuid"
)

// Voice is a cloned voice. Private voices belong to one account and count
// against its quota; public voices are admin-published, owned by nobody
// and usable by every account. SampleRef is the object-store key of the
// reference audio sample.
type Voice struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id,omitempty"`
	Name      string    `json:"name"`
	SampleRef string    `json:"-"`
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
}

func NewPrivateVoice(accountID, name, sampleRef string) (*Voice, error) {
	if accountID == "" || name == "" || sampleRef == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Voice{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Name:      name,
		SampleRef: sampleRef,
		CreatedAt: time.Now(),
	}, nil
}

func NewPublicVoice(name, sampleRef string) (*Voice, error) {
	if name == "" || sampleRef == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Voice{
		ID:        uuid.NewString(),
		Name:      name,
		SampleRef: sampleRef,
		IsPublic:  true,
		CreatedAt: time.Now(),
	}, nil
}

// UsableBy reports whether the account may generate speech with this voice.
func (v *Voice) UsableBy(accountID string) bool {
	return v.IsPublic || v.AccountID == accountID
}
