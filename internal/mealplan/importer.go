package mealplan

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"ai-grocery-assistant/internal/grocery"

	"github.com/google/uuid"
)

// Document is the structured meal-plan input, as produced by an upstream
// AI-response parser or a direct user JSON import.
type Document struct {
	MealPlan Plan `json:"mealPlan"`
}

// Plan is the meal-plan body of a Document.
type Plan struct {
	Title    string `json:"title"`
	Servings int    `json:"servings"`
	Days     []Day  `json:"days"`
}

// Day is one day of a structured meal plan.
type Day struct {
	Day     int             `json:"day"`
	Date    string          `json:"date,omitempty"`
	DayName string          `json:"dayName,omitempty"`
	Meals   map[string]Meal `json:"meals"`
}

// Meal describes a single meal of a Day, keyed by meal type in Day.Meals.
type Meal struct {
	Name         string               `json:"name"`
	PrepTime     string               `json:"prepTime,omitempty"`
	CookTime     string               `json:"cookTime,omitempty"`
	Servings     int                  `json:"servings,omitempty"`
	Ingredients  []DocumentIngredient `json:"ingredients"`
	Instructions []string             `json:"instructions,omitempty"`
	Tags         []string             `json:"tags,omitempty"`
}

// DocumentIngredient is one ingredient entry of a structured meal.
type DocumentIngredient struct {
	Item   string  `json:"item"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
	Prep   string  `json:"prep,omitempty"`
	Note   string  `json:"note,omitempty"`
	Size   string  `json:"size,omitempty"`
}

// ValidationResult reports whether a Document can be imported. Validation
// failures are data, not errors: the caller decides whether to reject the
// document or prompt the user for a correction.
type ValidationResult struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors,omitempty"`
}

// Imported is the canonical meal-plan model derived from a valid Document.
type Imported struct {
	ID           string                               `json:"id"`
	Name         string                               `json:"name"`
	UserID       string                               `json:"user_id"`
	Days         map[string]map[string]NormalizedMeal `json:"days"`
	TotalMeals   int                                  `json:"total_meals"`
	TotalItems   int                                  `json:"total_items"`
	ShoppingList ShoppingList                         `json:"shopping_list"`
}

// NormalizedMeal is a meal reduced to its name and ingredient items.
type NormalizedMeal struct {
	Name  string     `json:"name"`
	Items []MealItem `json:"items"`
}

// MealItem is a normalized ingredient reference inside a meal.
type MealItem struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// ShoppingList is the aggregated, categorized list derived from every meal
// of an imported plan.
type ShoppingList struct {
	Items []ShoppingItem `json:"items"`
}

// ShoppingItem is one deduplicated shopping-list line. Quantity is the sum
// of every occurrence of the same (name, unit) pair; units must match
// exactly to be merged.
type ShoppingItem struct {
	Name     string           `json:"name"`
	Quantity float64          `json:"quantity"`
	Unit     string           `json:"unit"`
	Category grocery.Category `json:"category"`
}

// mondayWeek resolves day indexes against a Monday-start week.
var mondayWeek = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// WeekOrder lists weekday names in Monday-start order, for stable display of
// an Imported plan's days.
var WeekOrder = mondayWeek

// Validate checks that a Document satisfies the import invariants: at least
// one day, every day has meals, every meal has ingredients.
func Validate(doc Document) ValidationResult {
	var errs []string

	if len(doc.MealPlan.Days) == 0 {
		errs = append(errs, "mealPlan.days must be a non-empty list")
	}
	for i, day := range doc.MealPlan.Days {
		if len(day.Meals) == 0 {
			errs = append(errs, fmt.Sprintf("day %d has no meals", i+1))
			continue
		}
		for mealType, meal := range day.Meals {
			if len(meal.Ingredients) == 0 {
				errs = append(errs, fmt.Sprintf("day %d meal %q has no ingredients", i+1, mealType))
			}
		}
	}

	sort.Strings(errs)
	return ValidationResult{Success: len(errs) == 0, Errors: errs}
}

// Import converts a validated Document into the canonical Imported model and
// derives its aggregated shopping list. Behavior is undefined for documents
// that do not pass Validate; callers must validate first.
func Import(doc Document, userID string) *Imported {
	name := strings.TrimSpace(doc.MealPlan.Title)
	if name == "" {
		name = "Imported Meal Plan"
	}

	imported := &Imported{
		ID:     uuid.NewString(),
		Name:   name,
		UserID: userID,
		Days:   make(map[string]map[string]NormalizedMeal, len(doc.MealPlan.Days)),
	}

	agg := newShoppingAggregator()

	for i, day := range doc.MealPlan.Days {
		dayName := resolveDayName(day, i)
		meals := make(map[string]NormalizedMeal, len(day.Meals))

		for mealType, meal := range day.Meals {
			items := make([]MealItem, 0, len(meal.Ingredients))
			for _, ing := range meal.Ingredients {
				items = append(items, MealItem{
					Name:   strings.TrimSpace(ing.Item),
					Amount: ing.Amount,
					Unit:   ing.Unit,
				})
				agg.add(ing)
			}
			meals[mealType] = NormalizedMeal{Name: meal.Name, Items: items}

			if len(meal.Ingredients) > 0 {
				imported.TotalMeals++
			}
			imported.TotalItems += len(meal.Ingredients)
		}
		imported.Days[dayName] = meals
	}

	imported.ShoppingList = ShoppingList{Items: agg.sorted()}
	return imported
}

// resolveDayName picks the display name for a day: the explicit dayName
// field, then the weekday of the date field, then the day index resolved
// against a Monday-start week.
func resolveDayName(day Day, index int) string {
	if name := strings.TrimSpace(day.DayName); name != "" {
		return name
	}
	if day.Date != "" {
		if t, err := time.Parse("2006-01-02", day.Date); err == nil {
			return t.Weekday().String()
		}
	}
	if day.Day > 0 {
		return mondayWeek[(day.Day-1)%len(mondayWeek)]
	}
	return mondayWeek[index%len(mondayWeek)]
}

// aggregationKey identifies a shopping-list line. Names are compared
// case-insensitively; units must match exactly.
type aggregationKey struct {
	name string
	unit string
}

type shoppingAggregator struct {
	totals map[aggregationKey]float64
	// displayName preserves the casing of the first occurrence.
	displayName map[aggregationKey]string
}

func newShoppingAggregator() *shoppingAggregator {
	return &shoppingAggregator{
		totals:      make(map[aggregationKey]float64),
		displayName: make(map[aggregationKey]string),
	}
}

func (a *shoppingAggregator) add(ing DocumentIngredient) {
	name := strings.TrimSpace(ing.Item)
	if name == "" {
		return
	}
	key := aggregationKey{name: strings.ToLower(name), unit: ing.Unit}
	if _, seen := a.totals[key]; !seen {
		a.displayName[key] = name
	}
	a.totals[key] += ing.Amount
}

// sorted emits the aggregated items ordered by (category, name). Summation
// is commutative, so traversal order of the input never changes the result.
func (a *shoppingAggregator) sorted() []ShoppingItem {
	items := make([]ShoppingItem, 0, len(a.totals))
	for key, qty := range a.totals {
		name := a.displayName[key]
		items = append(items, ShoppingItem{
			Name:     name,
			Quantity: qty,
			Unit:     key.unit,
			Category: grocery.Classify(name),
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		ni, nj := strings.ToLower(items[i].Name), strings.ToLower(items[j].Name)
		if ni != nj {
			return ni < nj
		}
		return items[i].Unit < items[j].Unit
	})
	return items
}
