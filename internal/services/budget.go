package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/GregMSThompson/wallet-ledger/internal/dto"
	"github.com/GregMSThompson/wallet-ledger/internal/errs"
	"github.com/GregMSThompson/wallet-ledger/internal/ledger"
	"github.com/GregMSThompson/wallet-ledger/internal/models"
	"github.com/GregMSThompson/wallet-ledger/pkg/logger"
)

const monthLayout = "2006-01"

type budgetBSStore interface {
	Get(ctx context.Context, uid, month string) (*models.Budget, error)
	List(ctx context.Context, uid string) ([]*models.Budget, error)
	Replace(ctx context.Context, uid string, b *models.Budget) error
}

// spendSource is where spent amounts are derived from.
type spendSource interface {
	QueryTransactions(ctx context.Context, uid string, q dto.TransactionQuery, handle func(*models.Transaction) error) error
}

type budgetService struct {
	store budgetBSStore
	txs   spendSource
}

func NewBudgetService(store budgetBSStore, txs spendSource) *budgetService {
	return &budgetService{store: store, txs: txs}
}

// monthBounds returns [start, next) of a YYYY-MM month in UTC.
func monthBounds(month string) (time.Time, time.Time, error) {
	start, err := time.Parse(monthLayout, month)
	if err != nil || start.Format(monthLayout) != month {
		return time.Time{}, time.Time{}, errs.NewValidationError("month must be formatted as YYYY-MM")
	}
	return start, start.AddDate(0, 1, 0), nil
}

func validateAllocations(allocations []models.BudgetAllocation) error {
	seen := make(map[string]struct{}, len(allocations))
	for _, a := range allocations {
		if strings.TrimSpace(a.Category) == "" {
			return errs.NewValidationError("allocation category is required")
		}
		if _, dup := seen[a.Category]; dup {
			return errs.NewValidationError("duplicate allocation for category " + a.Category)
		}
		seen[a.Category] = struct{}{}
		if a.Amount < 0 {
			return errs.NewInvalidAmountError("allocation amount must not be negative")
		}
		if a.Amount > ledger.MaxAmount {
			return errs.NewInvalidAmountError(fmt.Sprintf("allocation amount must not exceed %d", ledger.MaxAmount))
		}
		if len(a.Description) > maxDescriptionLen {
			return errs.NewValidationError(fmt.Sprintf("allocation description must be at most %d characters", maxDescriptionLen))
		}
	}
	return nil
}

// ReplaceAllocations overwrites the month's allocations with the supplied
// set. There is no partial patch.
func (s *budgetService) ReplaceAllocations(ctx context.Context, uid, month string, allocations []models.BudgetAllocation) (*models.Budget, error) {
	if _, _, err := monthBounds(month); err != nil {
		return nil, err
	}
	if err := validateAllocations(allocations); err != nil {
		return nil, err
	}

	b := &models.Budget{
		UserID:      uid,
		Month:       month,
		Allocations: make([]models.BudgetAllocation, 0, len(allocations)),
	}
	for _, a := range allocations {
		b.TotalBudget += a.Amount
		b.Allocations = append(b.Allocations, a)
	}

	if err := s.store.Replace(ctx, uid, b); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("budget replaced", "month", month, "allocations", len(b.Allocations), "total", b.TotalBudget)
	return b, nil
}

func (s *budgetService) ListBudgets(ctx context.Context, uid string) ([]*models.Budget, error) {
	return s.store.List(ctx, uid)
}

// GetAllocationsWithSpent pairs each allocation with the expense total of its
// category for the month. Spent is recomputed from transactions on every call.
func (s *budgetService) GetAllocationsWithSpent(ctx context.Context, uid, month string) (*dto.BudgetSummary, error) {
	start, next, err := monthBounds(month)
	if err != nil {
		return nil, err
	}

	var (
		budget *models.Budget
		spent  map[string]int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		budget, err = s.store.Get(gctx, uid, month)
		return err
	})
	g.Go(func() error {
		var err error
		spent, err = s.spentByCategory(gctx, uid, start, next)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &dto.BudgetSummary{
		Month:       month,
		Allocations: make([]dto.AllocationWithSpent, 0, len(budget.Allocations)),
	}
	allocated := make(map[string]struct{}, len(budget.Allocations))
	for _, a := range budget.Allocations {
		allocated[a.Category] = struct{}{}
		sp := spent[a.Category]
		summary.Allocations = append(summary.Allocations, dto.AllocationWithSpent{
			Category:    a.Category,
			Allocated:   a.Amount,
			Spent:       sp,
			Remaining:   a.Amount - sp,
			PercentUsed: percentUsed(sp, a.Amount),
			Description: a.Description,
		})
		summary.TotalAllocated += a.Amount
		summary.TotalSpent += sp
	}
	for category, sp := range spent {
		if category == models.CategoryTransfer {
			continue
		}
		if _, ok := allocated[category]; !ok {
			summary.UnallocatedSpent += sp
		}
	}
	summary.Remaining = summary.TotalAllocated - summary.TotalSpent
	return summary, nil
}

func (s *budgetService) spentByCategory(ctx context.Context, uid string, start, next time.Time) (map[string]int64, error) {
	kind := models.KindExpense
	q := dto.TransactionQuery{Kind: &kind, From: &start, Until: &next}

	spent := make(map[string]int64)
	err := s.txs.QueryTransactions(ctx, uid, q, func(t *models.Transaction) error {
		spent[t.Category] += t.Amount
		return nil
	})
	if err != nil {
		return nil, err
	}
	return spent, nil
}

func percentUsed(spent, allocated int64) decimal.Decimal {
	if allocated <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(spent).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(allocated)).
		Round(2)
}
