package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/wallet-ledger/internal/errs"
	"github.com/GregMSThompson/wallet-ledger/internal/models"
)

type goalStore struct {
	client *firestore.Client
}

func NewGoalStore(client *firestore.Client) *goalStore {
	return &goalStore{client: client}
}

func (s *goalStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("savings_goals")
}

func (s *goalStore) Create(ctx context.Context, uid string, g *models.SavingsGoal) error {
	now := time.Now()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now
	}
	g.UpdatedAt = now
	_, err := s.collection(uid).Doc(g.GoalID).Set(ctx, g)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create savings goal", err)
	}
	return nil
}

func (s *goalStore) Get(ctx context.Context, uid, goalID string) (*models.SavingsGoal, error) {
	doc, err := s.collection(uid).Doc(goalID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errs.NewNotFoundError("savings goal not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get savings goal", err)
	}
	var g models.SavingsGoal
	if err := doc.DataTo(&g); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse savings goal data", err)
	}
	return &g, nil
}

func (s *goalStore) List(ctx context.Context, uid string) ([]*models.SavingsGoal, error) {
	docs, err := s.collection(uid).OrderBy("createdAt", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list savings goals", err)
	}
	goals := make([]*models.SavingsGoal, 0, len(docs))
	for _, d := range docs {
		var g models.SavingsGoal
		if err := d.DataTo(&g); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse savings goal data", err)
		}
		goals = append(goals, &g)
	}
	return goals, nil
}

func (s *goalStore) Update(ctx context.Context, uid string, g *models.SavingsGoal) error {
	g.UpdatedAt = time.Now()
	_, err := s.collection(uid).Doc(g.GoalID).Set(ctx, g)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to update savings goal", err)
	}
	return nil
}

func (s *goalStore) Delete(ctx context.Context, uid, goalID string) error {
	_, err := s.collection(uid).Doc(goalID).Delete(ctx, firestore.Exists)
	if err != nil {
		if isNotFound(err) {
			return errs.NewNotFoundError("savings goal not found")
		}
		return errs.NewDatabaseError("delete", "failed to delete savings goal", err)
	}
	return nil
}
