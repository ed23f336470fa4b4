package mealplan

import (
	"math/rand"
	"strings"
	"testing"

	"ai-grocery-assistant/internal/grocery"
)

func sampleDocument() Document {
	return Document{
		MealPlan: Plan{
			Title:    "High Protein Week",
			Servings: 2,
			Days: []Day{
				{
					Day:     1,
					DayName: "Monday",
					Meals: map[string]Meal{
						"breakfast": {
							Name: "Overnight Oats",
							Ingredients: []DocumentIngredient{
								{Item: "rolled oats", Amount: 2, Unit: "cups"},
								{Item: "milk", Amount: 1, Unit: "cup"},
							},
						},
						"dinner": {
							Name: "Chicken Stir Fry",
							Ingredients: []DocumentIngredient{
								{Item: "chicken breast", Amount: 1, Unit: "lb"},
								{Item: "broccoli", Amount: 2, Unit: "cups"},
							},
						},
					},
				},
				{
					Day: 2,
					Meals: map[string]Meal{
						"breakfast": {
							Name: "Oatmeal",
							Ingredients: []DocumentIngredient{
								{Item: "Rolled Oats", Amount: 1, Unit: "cup"},
								{Item: "rolled oats", Amount: 1, Unit: "cups"},
							},
						},
					},
				},
			},
		},
	}
}

func TestValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		result := Validate(sampleDocument())
		if !result.Success {
			t.Fatalf("Expected success, got errors: %v", result.Errors)
		}
	})

	t.Run("NoDays", func(t *testing.T) {
		result := Validate(Document{})
		if result.Success {
			t.Fatal("Expected failure for empty document")
		}
		if len(result.Errors) != 1 {
			t.Errorf("Expected 1 error, got %v", result.Errors)
		}
	})

	t.Run("DayWithoutMeals", func(t *testing.T) {
		doc := sampleDocument()
		doc.MealPlan.Days[1].Meals = nil
		result := Validate(doc)
		if result.Success {
			t.Fatal("Expected failure for day without meals")
		}
	})

	t.Run("MealWithoutIngredients", func(t *testing.T) {
		doc := sampleDocument()
		doc.MealPlan.Days[0].Meals["lunch"] = Meal{Name: "Mystery"}
		result := Validate(doc)
		if result.Success {
			t.Fatal("Expected failure for meal without ingredients")
		}
	})
}

func TestImport(t *testing.T) {
	imported := Import(sampleDocument(), "user-1")

	if imported.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", imported.UserID)
	}
	if imported.Name != "High Protein Week" {
		t.Errorf("Name = %q", imported.Name)
	}
	if imported.ID == "" {
		t.Error("Expected a generated plan ID")
	}
	if imported.TotalMeals != 3 {
		t.Errorf("TotalMeals = %d, want 3", imported.TotalMeals)
	}
	if imported.TotalItems != 6 {
		t.Errorf("TotalItems = %d, want 6", imported.TotalItems)
	}

	monday, ok := imported.Days["Monday"]
	if !ok {
		t.Fatalf("Expected explicit dayName 'Monday', got days %v", dayNames(imported))
	}
	if monday["breakfast"].Name != "Overnight Oats" {
		t.Errorf("breakfast = %+v", monday["breakfast"])
	}

	// Day 2 has no dayName and no date; day number 2 resolves against a
	// Monday-start week.
	if _, ok := imported.Days["Tuesday"]; !ok {
		t.Errorf("Expected derived dayName 'Tuesday', got days %v", dayNames(imported))
	}
}

func TestImportDayNameFromDate(t *testing.T) {
	doc := Document{
		MealPlan: Plan{
			Days: []Day{{
				Date: "2026-08-28", // a Friday
				Meals: map[string]Meal{
					"lunch": {Ingredients: []DocumentIngredient{{Item: "bread", Amount: 1, Unit: "loaf"}}},
				},
			}},
		},
	}
	imported := Import(doc, "u")
	if _, ok := imported.Days["Friday"]; !ok {
		t.Errorf("Expected dayName derived from date, got %v", dayNames(imported))
	}
}

func TestImportShoppingListAggregation(t *testing.T) {
	imported := Import(sampleDocument(), "user-1")

	// "rolled oats" appears three times: 2 cups + 1 cups merged (case-insensitive
	// name, exact unit), 1 cup kept separate because the unit string differs.
	var cups, cup *ShoppingItem
	for i := range imported.ShoppingList.Items {
		item := &imported.ShoppingList.Items[i]
		if !strings.EqualFold(item.Name, "rolled oats") {
			continue
		}
		switch item.Unit {
		case "cups":
			cups = item
		case "cup":
			cup = item
		}
	}
	if cups == nil || cups.Quantity != 3 {
		t.Errorf("Expected rolled oats 3 cups, got %+v", cups)
	}
	if cup == nil || cup.Quantity != 1 {
		t.Errorf("Expected rolled oats 1 cup, got %+v", cup)
	}

	// Display casing follows the first occurrence of each (name, unit) key.
	if cups != nil && cups.Name != "rolled oats" {
		t.Errorf("cups display name = %q, want lower-case first occurrence", cups.Name)
	}
	if cup != nil && cup.Name != "Rolled Oats" {
		t.Errorf("cup display name = %q, want original casing of first occurrence", cup.Name)
	}
	if cups != nil && cups.Category != grocery.CategoryOther {
		t.Errorf("Expected oats uncategorized, got %q", cups.Category)
	}

	// Sorted by (category, name).
	items := imported.ShoppingList.Items
	for i := 1; i < len(items); i++ {
		if items[i-1].Category > items[i].Category {
			t.Errorf("Items not sorted by category: %+v before %+v", items[i-1], items[i])
		}
	}
}

// TestImportAggregationOrderInvariant shuffles ingredient traversal order by
// permuting days and checks the summed quantities never change.
func TestImportAggregationOrderInvariant(t *testing.T) {
	base := Import(sampleDocument(), "u")
	want := make(map[aggregationKey]float64)
	for _, item := range base.ShoppingList.Items {
		// Key on the lower-cased name: display casing follows first
		// occurrence and may legitimately change with traversal order.
		want[aggregationKey{name: strings.ToLower(item.Name), unit: item.Unit}] = item.Quantity
	}

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 10; trial++ {
		doc := sampleDocument()
		rng.Shuffle(len(doc.MealPlan.Days), func(i, j int) {
			doc.MealPlan.Days[i], doc.MealPlan.Days[j] = doc.MealPlan.Days[j], doc.MealPlan.Days[i]
		})

		got := Import(doc, "u")
		if len(got.ShoppingList.Items) != len(base.ShoppingList.Items) {
			t.Fatalf("trial %d: item count changed: %d vs %d", trial, len(got.ShoppingList.Items), len(base.ShoppingList.Items))
		}
		for _, item := range got.ShoppingList.Items {
			key := aggregationKey{name: strings.ToLower(item.Name), unit: item.Unit}
			if want[key] != item.Quantity {
				t.Errorf("trial %d: %s/%s = %v, want %v", trial, item.Name, item.Unit, item.Quantity, want[key])
			}
		}
	}
}

func dayNames(imported *Imported) []string {
	names := make([]string, 0, len(imported.Days))
	for name := range imported.Days {
		names = append(names, name)
	}
	return names
}
