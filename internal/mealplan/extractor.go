package mealplan

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ExtractResult is the outcome of a narrative extraction pass. Recipes holds
// at most maxRecipes entries; TotalRecipes reports the true count found
// before truncation.
type ExtractResult struct {
	IsMealPlan   bool     `json:"is_meal_plan"`
	Recipes      []Recipe `json:"recipes"`
	TotalRecipes int      `json:"total_recipes"`
}

const (
	maxRecipes         = 7
	maxFallbackRecipes = 5
	// minStructuredRecipes is the threshold below which the fallback
	// heuristic re-scans the text for likely meal lines.
	minStructuredRecipes = 3
)

type scanMode int

const (
	modeNone scanMode = iota
	modeIngredients
	modeInstructions
)

// scanState is the extractor's per-line state. step returns a new state for
// every line, so each transition can be exercised on its own.
type scanState struct {
	mode       scanMode
	currentDay string
	current    Recipe
	hasCurrent bool
	sealed     []Recipe
}

var (
	dayHeaderPattern   = regexp.MustCompile(`(?i)^day\s+(\d+)\s*(?:\(([^)]+)\))?\s*:?\s*$`)
	weekdayPattern     = regexp.MustCompile(`(?i)^(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\s*:?\s*$`)
	mealHeaderPattern  = regexp.MustCompile(`(?i)^[-•*]?\s*(breakfast|lunch|dinner|snacks?)\s*:\s*(.+)$`)
	instructionsMarker = regexp.MustCompile(`(?i)(instructions?|directions?|method|steps)\s*:`)
	bulletLinePattern  = regexp.MustCompile(`^[-•*]\s*(.+)$`)
	numberedStep       = regexp.MustCompile(`^\d+\.\s*(.+)$`)

	fallbackPrefixStrip = regexp.MustCompile(`^[*#-]+\s*`)
	quantityUnitPrefix  = regexp.MustCompile(`(?i)^\d+(?:\.\d+)?\s*(lbs?|pounds?|oz|ounces?|kg|kilograms?|g|grams?|l|liters?|ml|milliliters?|gal|gallons?|cups?|tbsp|tablespoons?|tsp|teaspoons?)\b`)
)

// foodKeywords marks lines that plausibly name a meal when the narrative has
// no usable structure.
var foodKeywords = []string{
	"chicken", "salmon", "pasta", "salad", "soup",
	"stir", "grilled", "baked", "with", "recipe",
}

// ExtractNarrative scans free-form meal-plan text for day and meal headers,
// ingredient and instruction sections, and builds Recipe records. When the
// structured scan finds too few recipes, a looser heuristic pass supplies
// suggested meals. It never fails: unusable text yields an empty result.
func ExtractNarrative(text string) ExtractResult {
	lines := strings.Split(text, "\n")

	state := scanState{}
	for _, line := range lines {
		state = step(state, strings.TrimSpace(line))
	}
	state = seal(state)

	recipes := state.sealed
	if len(recipes) < minStructuredRecipes {
		recipes = append(recipes, fallbackScan(lines)...)
	}

	total := len(recipes)
	if len(recipes) > maxRecipes {
		recipes = recipes[:maxRecipes]
	}
	if recipes == nil {
		recipes = []Recipe{}
	}

	return ExtractResult{
		IsMealPlan:   true,
		Recipes:      recipes,
		TotalRecipes: total,
	}
}

// step advances the scan state by one (already trimmed) line.
func step(state scanState, line string) scanState {
	if day, ok := parseDayHeader(line); ok {
		state.currentDay = day
		return state
	}

	if m := mealHeaderPattern.FindStringSubmatch(line); m != nil {
		state = seal(state)
		state.current = newRecipe(m[2], normalizeMealType(m[1]), state.currentDay)
		state.hasCurrent = true
		state.mode = modeNone
		return state
	}

	if strings.Contains(strings.ToLower(line), "ingredients:") {
		state.mode = modeIngredients
		return state
	}
	if instructionsMarker.MatchString(line) {
		state.mode = modeInstructions
		return state
	}

	switch state.mode {
	case modeIngredients:
		if m := bulletLinePattern.FindStringSubmatch(line); m != nil && state.hasCurrent {
			state.current.Ingredients = append(state.current.Ingredients, strings.TrimSpace(m[1]))
		}
	case modeInstructions:
		if m := numberedStep.FindStringSubmatch(line); m != nil && state.hasCurrent {
			state.current.Instructions = append(state.current.Instructions, strings.TrimSpace(m[1]))
		}
	}
	return state
}

// seal appends the in-progress recipe to the output if it has a title.
func seal(state scanState) scanState {
	if state.hasCurrent && strings.TrimSpace(state.current.Title) != "" {
		state.sealed = append(state.sealed, state.current)
	}
	state.current = Recipe{}
	state.hasCurrent = false
	return state
}

func newRecipe(title, mealType, day string) Recipe {
	tag := "meal plan"
	if day != "" {
		tag = strings.ToLower(day)
	}
	return Recipe{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(title),
		MealType:     mealType,
		Day:          day,
		Ingredients:  []string{},
		Instructions: []string{},
		Tags:         []string{tag},
	}
}

// parseDayHeader recognizes "Day N (Weekday):" headers and bare weekday
// lines. It returns the day label to attach to subsequent meals.
func parseDayHeader(line string) (string, bool) {
	if m := dayHeaderPattern.FindStringSubmatch(line); m != nil {
		if m[2] != "" {
			return strings.TrimSpace(m[2]), true
		}
		return fmt.Sprintf("Day %s", m[1]), true
	}
	if m := weekdayPattern.FindStringSubmatch(line); m != nil {
		return m[1], true
	}
	return "", false
}

func normalizeMealType(raw string) string {
	mealType := strings.ToLower(raw)
	if mealType == "snacks" {
		mealType = "snack"
	}
	return mealType
}

// fallbackScan loosely re-scans all lines for meal-like sentences. It is
// only used when the structured pass found fewer than minStructuredRecipes.
func fallbackScan(lines []string) []Recipe {
	var found []Recipe
	for _, line := range lines {
		if len(found) >= maxFallbackRecipes {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if strings.Contains(lower, "grocery") || strings.Contains(lower, "shopping") {
			continue
		}
		if bulletLinePattern.MatchString(line) || quantityUnitPrefix.MatchString(line) {
			continue
		}
		if len(line) < 15 || len(line) > 80 || numberedStep.MatchString(line) {
			continue
		}
		if !containsFoodKeyword(lower) {
			continue
		}

		found = append(found, Recipe{
			ID:           uuid.NewString(),
			Title:        strings.TrimSpace(fallbackPrefixStrip.ReplaceAllString(line, "")),
			MealType:     MealTypeSuggested,
			Ingredients:  []string{},
			Instructions: []string{},
			Tags:         []string{"meal idea"},
		})
	}
	return found
}

func containsFoodKeyword(lower string) bool {
	for _, kw := range foodKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
