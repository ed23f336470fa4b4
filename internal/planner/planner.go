package planner

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"

	"ai-grocery-assistant/internal/grocery"
	"ai-grocery-assistant/internal/llm"
	"ai-grocery-assistant/internal/mealplan"
)

//go:embed plan_prompt.md
var planPrompt string

// Result holds a generated plan plus the call metadata for metrics.
type Result struct {
	Plan *mealplan.Imported
	Meta llm.CallMeta

	// UsedFallback is set when the model response was not valid JSON and the
	// plan was recovered from the narrative extractor instead.
	UsedFallback bool
}

// Planner generates meal plans through a text model and persists them.
type Planner struct {
	textGen llm.TextGenerator
	repo    *PlanRepository
}

// NewPlanner creates a new Planner instance.
func NewPlanner(textGen llm.TextGenerator, repo *PlanRepository) *Planner {
	return &Planner{
		textGen: textGen,
		repo:    repo,
	}
}

type promptData struct {
	Request  string
	Days     int
	Servings int
}

// GeneratePlan creates a meal plan for the user's request, imports it and
// saves it. The model is asked for structured JSON; when it answers with
// free-form text instead, the narrative extractor recovers what it can.
func (p *Planner) GeneratePlan(ctx context.Context, userID, userRequest string, days, servings int) (Result, error) {
	start := time.Now()

	prompt, err := buildPlanPrompt(promptData{Request: userRequest, Days: days, Servings: servings})
	if err != nil {
		return Result{}, err
	}

	resp, err := p.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return Result{}, fmt.Errorf("failed to generate meal plan from LLM: %w", err)
	}

	meta := llm.CallMeta{
		Caller:  "planner",
		Usage:   resp.Usage,
		Latency: time.Since(start),
	}

	var doc mealplan.Document
	usedFallback := false
	if err := json.Unmarshal([]byte(resp.Content), &doc); err != nil || len(doc.MealPlan.Days) == 0 {
		doc, err = recoverFromNarrative(resp.Content)
		if err != nil {
			return Result{Meta: meta}, err
		}
		usedFallback = true
	}

	validation := mealplan.Validate(doc)
	if !validation.Success {
		return Result{Meta: meta}, fmt.Errorf("generated plan failed validation: %s", strings.Join(validation.Errors, "; "))
	}

	imported := mealplan.Import(doc, userID)

	if p.repo != nil {
		if err := p.repo.Save(ctx, imported); err != nil {
			return Result{Meta: meta}, fmt.Errorf("failed to save generated plan: %w", err)
		}
	}

	return Result{Plan: imported, Meta: meta, UsedFallback: usedFallback}, nil
}

// recoverFromNarrative rebuilds a structured document from free-form model
// output. Ingredient lines are parsed with the grocery line parser so
// amounts and units survive the round trip.
func recoverFromNarrative(text string) (mealplan.Document, error) {
	result := mealplan.ExtractNarrative(text)
	if !result.IsMealPlan || len(result.Recipes) == 0 {
		return mealplan.Document{}, fmt.Errorf("model response was neither valid JSON nor a recognizable meal plan")
	}

	days := map[string]*mealplan.Day{}
	var order []string

	for _, recipe := range result.Recipes {
		key := recipe.Day
		if key == "" {
			key = "Day 1"
		}
		day, ok := days[key]
		if !ok {
			day = &mealplan.Day{
				Day:     len(order) + 1,
				DayName: weekdayName(recipe.Day),
				Meals:   map[string]mealplan.Meal{},
			}
			days[key] = day
			order = append(order, key)
		}

		meal := mealplan.Meal{
			Name:         recipe.Title,
			PrepTime:     recipe.PrepTime,
			CookTime:     recipe.CookTime,
			Instructions: recipe.Instructions,
			Tags:         recipe.Tags,
		}
		for _, line := range recipe.Ingredients {
			parsed := grocery.ParseLine(line)
			ing := mealplan.DocumentIngredient{Item: parsed.ItemName, Unit: parsed.Unit}
			if parsed.Quantity != nil {
				ing.Amount = *parsed.Quantity
			}
			meal.Ingredients = append(meal.Ingredients, ing)
		}

		mealType := recipe.MealType
		if mealType == "" || mealType == mealplan.MealTypeSuggested {
			mealType = fmt.Sprintf("meal %d", len(day.Meals)+1)
		}
		day.Meals[mealType] = meal
	}

	doc := mealplan.Document{}
	doc.MealPlan.Title = "Recovered Meal Plan"
	for _, key := range order {
		doc.MealPlan.Days = append(doc.MealPlan.Days, *days[key])
	}
	return doc, nil
}

// weekdayName returns day labels like "Monday" unchanged and drops numeric
// labels like "Day 2" so the importer derives the weekday itself.
func weekdayName(label string) string {
	if strings.HasPrefix(strings.ToLower(label), "day ") {
		return ""
	}
	return label
}

func buildPlanPrompt(data promptData) (string, error) {
	tmpl, err := template.New("Plan").Parse(planPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
