package usecase

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"voiceclone-backend/internal/domain"
	"voiceclone-backend/internal/domain/model"
	"voiceclone-backend/internal/domain/ports/repository"
	"voiceclone-backend/internal/infra/logging"
	"voiceclone-backend/internal/infra/metrics"
)

// Compile-time check
var _ OrderUseCase = (*orderUC)(nil)

// OrderUseCase drives the manual payment workflow: a user places an order
// against an active plan, an admin later approves or rejects it. Approval
// applies the order's plan snapshot through the ledger, atomically with
// the status flip.
type OrderUseCase interface {
	Place(ctx context.Context, accountID, planID, paymentMethod, transactionID string) (*model.Order, error)
	ListMine(ctx context.Context, accountID string) ([]*model.Order, error)
	List(ctx context.Context, status model.OrderStatus) ([]*model.Order, error)
	Approve(ctx context.Context, orderID string) (*model.Order, error)
	Reject(ctx context.Context, orderID string) (*model.Order, error)
}

type orderUC struct {
	orders   repository.OrderRepository
	plans    repository.PlanRepository
	accounts repository.AccountRepository
	ledger   LedgerUseCase
	tm       repository.TransactionManager
	log      *zerolog.Logger
}

func NewOrderUseCase(
	orders repository.OrderRepository,
	plans repository.PlanRepository,
	accounts repository.AccountRepository,
	ledger LedgerUseCase,
	tm repository.TransactionManager,
	logger *zerolog.Logger,
) *orderUC {
	return &orderUC{
		orders:   orders,
		plans:    plans,
		accounts: accounts,
		ledger:   ledger,
		tm:       tm,
		log:      logger,
	}
}

func (u *orderUC) Place(ctx context.Context, accountID, planID, paymentMethod, transactionID string) (*model.Order, error) {
	defer logging.TraceDuration(u.log, "OrderUC.Place")()

	acc, err := u.accounts.FindByID(ctx, repository.NoTX, accountID)
	if err != nil {
		return nil, err
	}
	if acc.IsBlocked {
		return nil, domain.ErrAccountBlocked
	}
	plan, err := u.plans.FindByID(ctx, repository.NoTX, planID)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, domain.ErrNotFound
	}

	order, err := model.NewOrder(acc, plan, paymentMethod, transactionID)
	if err != nil {
		return nil, err
	}
	if err := u.orders.Save(ctx, repository.NoTX, order); err != nil {
		return nil, err
	}

	metrics.IncOrder("placed")
	u.log.Info().Str("order_id", order.ID).Str("account_id", accountID).
		Str("plan", plan.Name).Msg("order placed")
	return order, nil
}

func (u *orderUC) ListMine(ctx context.Context, accountID string) ([]*model.Order, error) {
	return u.orders.ListByAccount(ctx, repository.NoTX, accountID)
}

func (u *orderUC) List(ctx context.Context, status model.OrderStatus) ([]*model.Order, error) {
	return u.orders.List(ctx, repository.NoTX, status)
}

// Approve grants the order's plan snapshot and marks it approved in one
// transaction. The row lock taken by FindByID makes a concurrent second
// approval see the final status and bail out.
func (u *orderUC) Approve(ctx context.Context, orderID string) (*model.Order, error) {
	defer logging.TraceDuration(u.log, "OrderUC.Approve")()

	var order *model.Order
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		var err error
		order, err = u.orders.FindByID(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order.Status != model.OrderStatusPending {
			return domain.ErrOrderAlreadyFinalized
		}

		if _, err := u.ledger.GrantPlanTx(ctx, tx, order.AccountID, order.Grant(), order.ID); err != nil {
			return err
		}
		order.Status = model.OrderStatusApproved
		return u.orders.Save(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}

	metrics.IncOrder("approved")
	u.log.Info().Str("order_id", order.ID).Str("account_id", order.AccountID).Msg("order approved")
	return order, nil
}

func (u *orderUC) Reject(ctx context.Context, orderID string) (*model.Order, error) {
	defer logging.TraceDuration(u.log, "OrderUC.Reject")()

	var order *model.Order
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		var err error
		order, err = u.orders.FindByID(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order.Status != model.OrderStatusPending {
			return domain.ErrOrderAlreadyFinalized
		}
		order.Status = model.OrderStatusRejected
		return u.orders.Save(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}

	metrics.IncOrder("rejected")
	u.log.Info().Str("order_id", order.ID).Msg("order rejected")
	return order, nil
}
