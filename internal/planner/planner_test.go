package planner

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"ai-grocery-assistant/internal/database"
	"ai-grocery-assistant/internal/llm"
	"ai-grocery-assistant/internal/mealplan"
)

type MockTextGenerator struct {
	Response string
	Err      error
	Prompts  []string
}

func (m *MockTextGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return llm.ContentResponse{}, m.Err
	}
	return llm.ContentResponse{
		Content: m.Response,
		Usage:   llm.TokenUsage{PromptTokens: 10, CompletionTokens: 50, TotalTokens: 60, Model: "mock"},
	}, nil
}

const structuredPlanResponse = `{
  "mealPlan": {
    "title": "High Protein Week",
    "servings": 2,
    "days": [
      {
        "day": 1,
        "dayName": "Monday",
        "meals": {
          "breakfast": {
            "name": "Scrambled Eggs",
            "ingredients": [{"item": "eggs", "amount": 4, "unit": ""}]
          },
          "dinner": {
            "name": "Grilled Chicken",
            "ingredients": [{"item": "chicken breast", "amount": 1, "unit": "lbs"}]
          }
        }
      }
    ]
  }
}`

func newTestRepo(t *testing.T) *PlanRepository {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPlanRepository(db.SQL)
}

func TestGeneratePlanStructured(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	gen := &MockTextGenerator{Response: structuredPlanResponse}

	p := NewPlanner(gen, repo)
	result, err := p.GeneratePlan(ctx, "user-1", "high protein meals", 1, 2)
	if err != nil {
		t.Fatalf("GeneratePlan failed: %v", err)
	}

	if result.UsedFallback {
		t.Error("expected structured path, got fallback")
	}
	if result.Plan.Name != "High Protein Week" {
		t.Errorf("unexpected plan name: %q", result.Plan.Name)
	}
	if result.Plan.TotalMeals != 2 {
		t.Errorf("expected 2 meals, got %d", result.Plan.TotalMeals)
	}
	if result.Meta.Caller != "planner" || result.Meta.Usage.TotalTokens != 60 {
		t.Errorf("unexpected call meta: %+v", result.Meta)
	}

	if len(gen.Prompts) != 1 || !strings.Contains(gen.Prompts[0], `"high protein meals"`) {
		t.Errorf("user request not included in prompt")
	}

	// The plan must be persisted.
	stored, err := repo.GetByID(ctx, result.Plan.ID)
	if err != nil {
		t.Fatalf("failed to load stored plan: %v", err)
	}
	if stored == nil {
		t.Fatal("expected stored plan, got nil")
	}
	if stored.Plan.TotalItems != 2 {
		t.Errorf("expected 2 items in stored plan, got %d", stored.Plan.TotalItems)
	}
}

func TestGeneratePlanNarrativeFallback(t *testing.T) {
	ctx := context.Background()
	gen := &MockTextGenerator{Response: `Here is your meal plan!

Day 1 (Monday):
- Breakfast: Overnight Oats
  Ingredients:
  - 1 cup rolled oats
  - 1 cup milk
- Dinner: Veggie Stir Fry
  Ingredients:
  - 2 cups broccoli
  - 1 tbsp soy sauce
`}

	p := NewPlanner(gen, nil)
	result, err := p.GeneratePlan(ctx, "user-1", "easy meals", 1, 2)
	if err != nil {
		t.Fatalf("GeneratePlan failed: %v", err)
	}

	if !result.UsedFallback {
		t.Error("expected fallback path for non-JSON response")
	}
	if result.Plan.TotalMeals != 2 {
		t.Errorf("expected 2 recovered meals, got %d", result.Plan.TotalMeals)
	}
	if _, ok := result.Plan.Days["Monday"]; !ok {
		t.Errorf("expected Monday in recovered plan, got %v", keys(result.Plan.Days))
	}

	// Ingredient amounts must survive the narrative round trip.
	found := false
	for _, item := range result.Plan.ShoppingList.Items {
		if strings.EqualFold(item.Name, "rolled oats") {
			found = true
			if item.Quantity != 1 || item.Unit != "cup" {
				t.Errorf("unexpected oats entry: %+v", item)
			}
		}
	}
	if !found {
		t.Error("rolled oats missing from recovered shopping list")
	}
}

func TestGeneratePlanUnrecoverableResponse(t *testing.T) {
	gen := &MockTextGenerator{Response: "Sorry, I cannot help with that."}

	p := NewPlanner(gen, nil)
	_, err := p.GeneratePlan(context.Background(), "user-1", "meals", 7, 2)
	if err == nil {
		t.Fatal("expected error for unrecoverable response")
	}
}

func keys(m map[string]map[string]mealplan.NormalizedMeal) []string {
	var out []string
	for k := range m {
		out = append(out, k)
	}
	return out
}
