package model

import (
	"time"

	"voiceclone-backend/internal/domain"

	"github.com/google/uuid"
)

// PaymentAccount is a payout destination shown to users placing orders
// (bank account, mobile wallet). Users wire money there manually and
// submit the transaction id with their order.
type PaymentAccount struct {
	ID            string    `json:"id"`
	Method        string    `json:"method"`
	AccountNumber string    `json:"account_number"`
	AccountName   string    `json:"account_name"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewPaymentAccount(method, number, name string) (*PaymentAccount, error) {
	if method == "" || number == "" || name == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &PaymentAccount{
		ID:            uuid.NewString(),
		Method:        method,
		AccountNumber: number,
		AccountName:   name,
		IsActive:      true,
		CreatedAt:     time.Now(),
	}, nil
}
