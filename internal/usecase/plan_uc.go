package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"voiceclone-backend/internal/domain"
	"voiceclone-backend/internal/domain/model"
	"voiceclone-backend/internal/domain/ports/repository"
	"voiceclone-backend/internal/infra/logging"
)

// Compile-time check
var _ PlanUseCase = (*planUC)(nil)

type PlanUseCase interface {
	Create(ctx context.Context, name string, credits, priceCents int64, voiceCloneLim, expireDays int) (*model.Plan, error)
	Update(ctx context.Context, plan *model.Plan) error
	Get(ctx context.Context, id string) (*model.Plan, error)
	ListActive(ctx context.Context) ([]*model.Plan, error)
	ListAll(ctx context.Context) ([]*model.Plan, error)
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type planUC struct {
	plans repository.PlanRepository
	log   *zerolog.Logger
}

func NewPlanUseCase(plans repository.PlanRepository, logger *zerolog.Logger) *planUC {
	return &planUC{plans: plans, log: logger}
}

func (u *planUC) Create(ctx context.Context, name string, credits, priceCents int64, voiceCloneLim, expireDays int) (*model.Plan, error) {
	defer logging.TraceDuration(u.log, "PlanUC.Create")()
	plan, err := model.NewPlan(name, credits, priceCents, voiceCloneLim, expireDays)
	if err != nil {
		return nil, err
	}
	if err := u.plans.Save(ctx, repository.NoTX, plan); err != nil {
		return nil, err
	}
	u.log.Info().Str("plan_id", plan.ID).Str("name", plan.Name).Msg("plan created")
	return plan, nil
}

func (u *planUC) Update(ctx context.Context, plan *model.Plan) error {
	defer logging.TraceDuration(u.log, "PlanUC.Update")()
	if plan == nil || plan.ID == "" {
		return domain.ErrInvalidArgument
	}
	return u.plans.Save(ctx, repository.NoTX, plan)
}

func (u *planUC) Get(ctx context.Context, id string) (*model.Plan, error) {
	return u.plans.FindByID(ctx, repository.NoTX, id)
}

func (u *planUC) ListActive(ctx context.Context) ([]*model.Plan, error) {
	return u.plans.ListActive(ctx, repository.NoTX)
}

func (u *planUC) ListAll(ctx context.Context) ([]*model.Plan, error) {
	return u.plans.ListAll(ctx, repository.NoTX)
}

// Deactivate hides a plan from the storefront without touching accounts
// that already bought it; their entitlements came from order snapshots.
func (u *planUC) Deactivate(ctx context.Context, id string) error {
	defer logging.TraceDuration(u.log, "PlanUC.Deactivate")()
	plan, err := u.plans.FindByID(ctx, repository.NoTX, id)
	if err != nil {
		return err
	}
	plan.IsActive = false
	return u.plans.Save(ctx, repository.NoTX, plan)
}

func (u *planUC) Delete(ctx context.Context, id string) error {
	defer logging.TraceDuration(u.log, "PlanUC.Delete")()
	return u.plans.Delete(ctx, repository.NoTX, id)
}
