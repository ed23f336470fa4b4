package grocery

import "testing"

func floatPtr(f float64) *float64 { return &f }

func TestParseLine(t *testing.T) {
	cases := []struct {
		line     string
		wantName string
		wantQty  *float64
		wantUnit string
		wantCat  Category
	}{
		{"- Milk", "Milk", nil, "", CategoryDairy},
		{"2 lbs chicken breast", "chicken breast", floatPtr(2), "lbs", CategoryMeat},
		{"1. organic quinoa", "organic quinoa", nil, "", CategoryPantry},
		{"a) bananas", "bananas", nil, "", CategoryProduce},
		{"• 3 cans tomato soup", "tomato soup", floatPtr(3), "cans", CategoryProduce},
		{"500 g pasta", "pasta", floatPtr(500), "g", CategoryPantry},
		{"1.5 kg potatoes", "potatoes", floatPtr(1.5), "kg", CategoryProduce},
		{"2 gallons milk", "milk", floatPtr(2), "gallons", CategoryDairy},
		{"4 chicken breasts", "chicken breasts", floatPtr(4), "", CategoryMeat},
		{"two dozen eggs", "eggs", floatPtr(2), "dozen", CategoryDairy},
		{"1/2 cup flour", "flour", floatPtr(0.5), "cup", CategoryOther},
		{"1 1/2 onions", "onions", floatPtr(1.5), "", CategoryProduce},
		{"three apples", "apples", floatPtr(3), "", CategoryProduce},
		{"→ 2 bags frozen peas", "frozen peas", floatPtr(2), "bags", CategoryFrozen},
		{"butter", "butter", nil, "", CategoryDairy},
	}

	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			got := ParseLine(tc.line)
			if got.ItemName != tc.wantName {
				t.Errorf("ItemName = %q, want %q", got.ItemName, tc.wantName)
			}
			if (got.Quantity == nil) != (tc.wantQty == nil) {
				t.Fatalf("Quantity = %v, want %v", got.Quantity, tc.wantQty)
			}
			if got.Quantity != nil && *got.Quantity != *tc.wantQty {
				t.Errorf("Quantity = %v, want %v", *got.Quantity, *tc.wantQty)
			}
			if got.Unit != tc.wantUnit {
				t.Errorf("Unit = %q, want %q", got.Unit, tc.wantUnit)
			}
			if got.Category != tc.wantCat {
				t.Errorf("Category = %q, want %q", got.Category, tc.wantCat)
			}
		})
	}
}

func TestParseLineKeepsOriginal(t *testing.T) {
	got := ParseLine("  - 2 lbs Chicken Breast  ")
	if got.Original != "- 2 lbs Chicken Breast" {
		t.Errorf("Original = %q, want trimmed input preserved", got.Original)
	}
}

func TestParseLineMatcherPriority(t *testing.T) {
	// "2 cups rice" must hit the cooking-volume matcher, not the bare-integer
	// matcher followed by a unit re-match.
	got := ParseLine("2 cups rice")
	if got.Unit != "cups" || got.ItemName != "rice" {
		t.Errorf("got unit %q name %q, want cups/rice", got.Unit, got.ItemName)
	}

	// A bare integer whose remainder starts with a unit word still ends up
	// with the unit split off.
	got = ParseLine("two cups sugar")
	if got.Unit != "cups" || got.ItemName != "sugar" {
		t.Errorf("got unit %q name %q, want cups/sugar", got.Unit, got.ItemName)
	}
}

func TestParseLineEmptyNameFallback(t *testing.T) {
	// Quantity extraction that consumes the whole line falls back to the
	// cleaned line as the item name.
	got := ParseLine("- 2 cups")
	if got.ItemName != "2 cups" {
		t.Errorf("ItemName = %q, want %q", got.ItemName, "2 cups")
	}
	if got.Quantity == nil || *got.Quantity != 2 {
		t.Errorf("Quantity = %v, want 2", got.Quantity)
	}
}

// TestParseLineIdempotent checks that re-parsing an already extracted item
// name never yields another quantity.
func TestParseLineIdempotent(t *testing.T) {
	lines := []string{
		"- Milk",
		"2 lbs chicken breast",
		"1/2 cup flour",
		"1 1/2 onions",
		"two dozen eggs",
		"3 boxes cereal",
		"1. 1 bag frozen berries",
	}
	for _, line := range lines {
		first := ParseLine(line)
		second := ParseLine(first.ItemName)
		if second.Quantity != nil {
			t.Errorf("re-parsing %q (from %q) extracted quantity %v", first.ItemName, line, *second.Quantity)
		}
	}
}
