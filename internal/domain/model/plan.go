package model

import (
	"time"

	"voiceclone-backend/internal/domain"

	"github.com/google/uuid"
)

// Plan is a purchasable bundle of credits, voice-clone quota and validity
// period. Prices are stored in cents to avoid float drift. Editing a plan
// only affects future purchases; approved orders keep their own snapshot.
type Plan struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Credits       int64     `json:"credits"`
	PriceCents    int64     `json:"price_cents"`
	VoiceCloneLim int       `json:"voice_clone_limit"`
	ExpireDays    int       `json:"expire_days"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewPlan(name string, credits, priceCents int64, voiceCloneLim, expireDays int) (*Plan, error) {
	if name == "" || credits < 0 || priceCents < 0 || voiceCloneLim < 0 || expireDays <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	return &Plan{
		ID:            uuid.NewString(),
		Name:          name,
		Credits:       credits,
		PriceCents:    priceCents,
		VoiceCloneLim: voiceCloneLim,
		ExpireDays:    expireDays,
		IsActive:      true,
		CreatedAt:     time.Now(),
	}, nil
}

// PlanGrant is the immutable slice of a plan an approved order applies to
// an account. Orders carry it so later plan edits cannot change what a
// purchase granted.
type PlanGrant struct {
	PlanName      string
	Credits       int64
	VoiceCloneLim int
	ExpireDays    int
}

// ExpiresFrom computes the expiry an applied grant yields. A still-valid
// current expiry is extended; an expired or absent one restarts from now.
func (g PlanGrant) ExpiresFrom(current *time.Time) time.Time {
	base := time.Now()
	if current != nil && current.After(base) {
		base = *current
	}
	return base.AddDate(0, 0, g.ExpireDays)
}

func (p *Plan) Grant() PlanGrant {
	return PlanGrant{
		PlanName:      p.Name,
		Credits:       p.Credits,
		VoiceCloneLim: p.VoiceCloneLim,
		ExpireDays:    p.ExpireDays,
	}
}
