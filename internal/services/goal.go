package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/GregMSThompson/wallet-ledger/internal/dto"
	"github.com/GregMSThompson/wallet-ledger/internal/errs"
	"github.com/GregMSThompson/wallet-ledger/internal/ledger"
	"github.com/GregMSThompson/wallet-ledger/internal/models"
	"github.com/GregMSThompson/wallet-ledger/pkg/logger"
)

const (
	maxGoalNameLen   = 100
	defaultGoalIcon  = "target"
	defaultGoalColor = "#10b981"
)

type goalGSStore interface {
	Create(ctx context.Context, uid string, g *models.SavingsGoal) error
	Get(ctx context.Context, uid, goalID string) (*models.SavingsGoal, error)
	List(ctx context.Context, uid string) ([]*models.SavingsGoal, error)
	Update(ctx context.Context, uid string, g *models.SavingsGoal) error
	Delete(ctx context.Context, uid, goalID string) error
}

type goalService struct {
	store goalGSStore
}

func NewGoalService(store goalGSStore) *goalService {
	return &goalService{store: store}
}

func validateGoal(g *models.SavingsGoal) error {
	if g.Name == "" {
		return errs.NewValidationError("name is required")
	}
	if len(g.Name) > maxGoalNameLen {
		return errs.NewValidationError(fmt.Sprintf("name must be at most %d characters", maxGoalNameLen))
	}
	if err := ledger.ValidateAmount(g.TargetAmount); err != nil {
		return err
	}
	if g.CurrentAmount < 0 {
		return errs.NewInvalidAmountError("currentAmount must not be negative")
	}
	if g.CurrentAmount > ledger.MaxAmount {
		return errs.NewInvalidAmountError(fmt.Sprintf("currentAmount must not exceed %d", ledger.MaxAmount))
	}
	return nil
}

func (s *goalService) CreateGoal(ctx context.Context, uid string, req dto.CreateGoalRequest) (*models.SavingsGoal, error) {
	g := &models.SavingsGoal{
		GoalID:        uuid.New().String(),
		Name:          strings.TrimSpace(req.Name),
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      req.Deadline,
		Icon:          orDefault(req.Icon, defaultGoalIcon),
		Color:         orDefault(req.Color, defaultGoalColor),
	}
	if err := validateGoal(g); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, uid, g); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("savings goal created", "goal_id", g.GoalID)
	return g, nil
}

func (s *goalService) ListGoals(ctx context.Context, uid string) ([]*models.SavingsGoal, error) {
	return s.store.List(ctx, uid)
}

func (s *goalService) UpdateGoal(ctx context.Context, uid, goalID string, req dto.UpdateGoalRequest) (*models.SavingsGoal, error) {
	g, err := s.store.Get(ctx, uid, goalID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		g.Name = strings.TrimSpace(*req.Name)
	}
	if req.TargetAmount != nil {
		g.TargetAmount = *req.TargetAmount
	}
	if req.CurrentAmount != nil {
		g.CurrentAmount = *req.CurrentAmount
	}
	if req.Deadline != nil {
		g.Deadline = req.Deadline
	}
	if req.Icon != nil {
		g.Icon = orDefault(*req.Icon, defaultGoalIcon)
	}
	if req.Color != nil {
		g.Color = orDefault(*req.Color, defaultGoalColor)
	}
	if err := validateGoal(g); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, uid, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *goalService) DeleteGoal(ctx context.Context, uid, goalID string) error {
	if err := s.store.Delete(ctx, uid, goalID); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("savings goal deleted", "goal_id", goalID)
	return nil
}
