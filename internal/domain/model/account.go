package model

import (
	"time"

	"voiceclone-backend/internal/domain"

	"github.com/google/uuid"
)

// Account is the billing identity of a registered user. Credits and the
// voice-clone quota counters are mutated only through the entitlement
// ledger; handlers never touch them directly.
type Account struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	PasswordHash   string     `json:"-"`
	Credits        int64      `json:"credits"`
	PlanName       *string    `json:"plan_name"`
	PlanExpiresAt  *time.Time `json:"plan_expires_at"`
	VoiceCloneUsed int        `json:"voice_clone_used"`
	VoiceCloneLim  int        `json:"voice_clone_limit"`
	IsBlocked      bool       `json:"is_blocked"`
	CreatedAt      time.Time  `json:"created_at"`
}

func NewAccount(email, name, passwordHash string) (*Account, error) {
	if email == "" || name == "" || passwordHash == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Account{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}, nil
}

func (a *Account) IsZero() bool { return a == nil || a.ID == "" }

// PlanActive reports whether the account currently holds an unexpired plan.
func (a *Account) PlanActive(now time.Time) bool {
	return a.PlanName != nil && (a.PlanExpiresAt == nil || now.Before(*a.PlanExpiresAt))
}
