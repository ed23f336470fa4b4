package shopping

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ai-grocery-assistant/internal/grocery"
	"ai-grocery-assistant/internal/mealplan"
	shoppingdb "ai-grocery-assistant/internal/shopping/db"

	"github.com/google/uuid"
)

// Repository handles persistence of shopping lists.
type Repository struct {
	queries *shoppingdb.Queries
	db      *sql.DB
}

// NewRepository creates a new shopping list repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: shoppingdb.New(d),
		db:      d,
	}
}

// Save stores the shopping list for a plan, one row per item. Item order is
// preserved through the position column.
func (r *Repository) Save(ctx context.Context, planID string, list mealplan.ShoppingList) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	now := time.Now().UTC()

	for i, item := range list.Items {
		err := qtx.InsertShoppingItem(ctx, shoppingdb.InsertShoppingItemParams{
			ID:        uuid.NewString(),
			PlanID:    planID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Unit:      item.Unit,
			Category:  string(item.Category),
			Position:  int64(i),
			CreatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("failed to insert shopping item %q: %w", item.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit shopping list: %w", err)
	}
	return nil
}

// GetByPlanID retrieves the shopping list for a plan. Returns nil when the
// plan has no stored list.
func (r *Repository) GetByPlanID(ctx context.Context, planID string) (*StoredList, error) {
	rows, err := r.queries.ListShoppingItemsByPlanID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping items for plan %s: %w", planID, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	list := &StoredList{
		PlanID:    planID,
		CreatedAt: rows[0].CreatedAt,
	}
	for _, row := range rows {
		list.Items = append(list.Items, mealplan.ShoppingItem{
			Name:     row.Name,
			Quantity: row.Quantity,
			Unit:     row.Unit,
			Category: grocery.Category(row.Category),
		})
	}
	return list, nil
}

// DeleteByPlanID removes the stored shopping list for a plan.
func (r *Repository) DeleteByPlanID(ctx context.Context, planID string) error {
	return r.queries.DeleteShoppingItemsByPlanID(ctx, planID)
}
