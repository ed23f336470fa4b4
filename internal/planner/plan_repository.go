package planner

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"ai-grocery-assistant/internal/mealplan"
	"ai-grocery-assistant/internal/planner/plan_db"
)

// StoredPlan represents a persisted meal plan.
type StoredPlan struct {
	ID         string
	UserID     string
	Name       string
	TotalMeals int
	TotalItems int
	CreatedAt  time.Time
	Plan       *mealplan.Imported
}

// PlanRepository is a database-backed repository for imported meal plans.
type PlanRepository struct {
	queries *plan_db.Queries
	db      *sql.DB
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(d *sql.DB) *PlanRepository {
	return &PlanRepository{
		queries: plan_db.New(d),
		db:      d,
	}
}

// Save inserts an imported meal plan into the database. The full plan is
// stored as JSON alongside the summary columns.
func (r *PlanRepository) Save(ctx context.Context, plan *mealplan.Imported) error {
	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal meal plan: %w", err)
	}

	return r.queries.InsertMealPlan(ctx, plan_db.InsertMealPlanParams{
		ID:         plan.ID,
		UserID:     plan.UserID,
		Name:       plan.Name,
		Payload:    string(payload),
		TotalMeals: int64(plan.TotalMeals),
		TotalItems: int64(plan.TotalItems),
		CreatedAt:  time.Now().UTC(),
	})
}

// GetByID retrieves a single stored plan. Returns nil when no plan exists.
func (r *PlanRepository) GetByID(ctx context.Context, id string) (*StoredPlan, error) {
	row, err := r.queries.GetMealPlanByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get meal plan %s: %w", id, err)
	}
	return fromRow(row)
}

// ListRecentByUserID retrieves the N most recent meal plans for a given user.
func (r *PlanRepository) ListRecentByUserID(ctx context.Context, userID string, limit int) ([]StoredPlan, error) {
	rows, err := r.queries.ListRecentMealPlansByUserID(ctx, plan_db.ListRecentMealPlansByUserIDParams{
		UserID: userID,
		Limit:  int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recent meal plans for user %s: %w", userID, err)
	}

	var plans []StoredPlan
	for _, row := range rows {
		plan, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *plan)
	}
	return plans, nil
}

// Delete removes a stored plan.
func (r *PlanRepository) Delete(ctx context.Context, id string) error {
	return r.queries.DeleteMealPlan(ctx, id)
}

func fromRow(row plan_db.MealPlan) (*StoredPlan, error) {
	var imported mealplan.Imported
	if err := json.Unmarshal([]byte(row.Payload), &imported); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan payload for %s: %w", row.ID, err)
	}

	return &StoredPlan{
		ID:         row.ID,
		UserID:     row.UserID,
		Name:       row.Name,
		TotalMeals: int(row.TotalMeals),
		TotalItems: int(row.TotalItems),
		CreatedAt:  row.CreatedAt,
		Plan:       &imported,
	}, nil
}
