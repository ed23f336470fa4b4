package mealplan

// Recipe is a single meal record extracted from narrative meal-plan text.
// It is mutated only while the extractor is actively building it during a
// single scan pass; once sealed it is never touched again.
type Recipe struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	MealType     string   `json:"meal_type"`
	Day          string   `json:"day,omitempty"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Tags         []string `json:"tags"`
	Servings     string   `json:"servings,omitempty"`
	PrepTime     string   `json:"prep_time,omitempty"`
	CookTime     string   `json:"cook_time,omitempty"`
}

// MealTypeSuggested marks recipes produced by the fallback heuristic rather
// than an explicit meal header.
const MealTypeSuggested = "suggested meal"
