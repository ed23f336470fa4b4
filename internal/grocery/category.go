package grocery

import "regexp"

// Category is a coarse grocery department label used for grouping and display.
type Category string

const (
	CategoryDairy   Category = "dairy"
	CategoryBakery  Category = "bakery"
	CategoryProduce Category = "produce"
	CategoryMeat    Category = "meat"
	CategoryPantry  Category = "pantry"
	CategoryFrozen  Category = "frozen"
	CategoryOther   Category = "other"
)

type categoryRule struct {
	category Category
	pattern  *regexp.Regexp
}

// categoryRules is evaluated in order and the first match wins. The rules
// overlap (e.g. "cream" vs "ice cream"), so this must stay a slice to
// preserve priority.
var categoryRules = []categoryRule{
	{CategoryDairy, regexp.MustCompile(`(?i)milk|cheese|yogurt|butter|cream|eggs`)},
	{CategoryBakery, regexp.MustCompile(`(?i)bread|bagel|muffin|cake|cookie`)},
	{CategoryProduce, regexp.MustCompile(`(?i)apple|banana|orange|strawberry|grape|fruit`)},
	{CategoryProduce, regexp.MustCompile(`(?i)carrot|lettuce|tomato|potato|onion|vegetable|salad`)},
	{CategoryMeat, regexp.MustCompile(`(?i)chicken|beef|pork|turkey|fish|salmon|meat`)},
	{CategoryPantry, regexp.MustCompile(`(?i)cereal|pasta|rice|quinoa|beans|soup|sauce`)},
	{CategoryFrozen, regexp.MustCompile(`(?i)frozen|ice cream`)},
}

// Classify returns the category for an item name. It is a pure function:
// identical names always classify identically, and unknown names fall back
// to CategoryOther.
func Classify(itemName string) Category {
	for _, rule := range categoryRules {
		if rule.pattern.MatchString(itemName) {
			return rule.category
		}
	}
	return CategoryOther
}
