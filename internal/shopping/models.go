package shopping

import (
	"time"

	"ai-grocery-assistant/internal/mealplan"
)

// StoredList is a shopping list loaded from the database, tied to an
// imported meal plan.
type StoredList struct {
	PlanID    string                  `json:"plan_id"`
	Items     []mealplan.ShoppingItem `json:"items"`
	CreatedAt time.Time               `json:"created_at"`
}
