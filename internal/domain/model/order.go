package model

import (
	"time"

	"voiceclone-backend/internal/domain"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusApproved OrderStatus = "approved"
	OrderStatusRejected OrderStatus = "rejected"
)

// Order records a user's intent to purchase a plan against a manually
// submitted payment reference. It snapshots the plan at purchase time and
// transitions out of pending exactly once, by an administrator.
type Order struct {
	ID            string      `json:"id"`
	AccountID     string      `json:"account_id"`
	AccountEmail  string      `json:"account_email"`
	AccountName   string      `json:"account_name"`
	PlanID        string      `json:"plan_id"`
	PlanName      string      `json:"plan_name"`
	AmountCents   int64       `json:"amount_cents"`
	Credits       int64       `json:"credits"`
	VoiceCloneLim int         `json:"voice_clone_limit"`
	ExpireDays    int         `json:"expire_days"`
	PaymentMethod string      `json:"payment_method"`
	TransactionID string      `json:"transaction_id"`
	Status        OrderStatus `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
}

func NewOrder(acc *Account, plan *Plan, paymentMethod, transactionID string) (*Order, error) {
	if acc.IsZero() || plan == nil || paymentMethod == "" || transactionID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Order{
		ID:            uuid.NewString(),
		AccountID:     acc.ID,
		AccountEmail:  acc.Email,
		AccountName:   acc.Name,
		PlanID:        plan.ID,
		PlanName:      plan.Name,
		AmountCents:   plan.PriceCents,
		Credits:       plan.Credits,
		VoiceCloneLim: plan.VoiceCloneLim,
		ExpireDays:    plan.ExpireDays,
		PaymentMethod: paymentMethod,
		TransactionID: transactionID,
		Status:        OrderStatusPending,
		CreatedAt:     time.Now(),
	}, nil
}

// Grant rebuilds the entitlement grant from the snapshot taken at
// purchase time.
func (o *Order) Grant() PlanGrant {
	return PlanGrant{
		PlanName:      o.PlanName,
		Credits:       o.Credits,
		VoiceCloneLim: o.VoiceCloneLim,
		ExpireDays:    o.ExpireDays,
	}
}
