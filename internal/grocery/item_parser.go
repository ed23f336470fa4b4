package grocery

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedItem is a normalized grocery-list entry. It is created per input line
// and never mutated afterwards.
type ParsedItem struct {
	Original string   `json:"original"`
	ItemName string   `json:"item_name"`
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     string   `json:"unit,omitempty"`
	Category Category `json:"category"`
}

const (
	weightUnits    = `lbs?|pounds?|oz|ounces?|kg|kilograms?|g|grams?`
	volumeUnits    = `l|liters?|ml|milliliters?|gal|gallons?`
	cookingUnits   = `cups?|tbsp|tablespoons?|tsp|teaspoons?`
	packagingUnits = `packs?|packages?|bags?|box|boxes|cans?|jars?|bottles?`
	dozenUnits     = `dozen|doz`

	decimalNumber = `\d+(?:\.\d+)?`
)

// unitVocabulary is the full set of recognized unit words, lower-cased.
// Plural forms are listed explicitly so that lookups stay a plain set test.
var unitVocabulary = buildUnitVocabulary()

func buildUnitVocabulary() map[string]struct{} {
	words := []string{
		"lb", "lbs", "pound", "pounds", "oz", "ounce", "ounces",
		"kg", "kilogram", "kilograms", "g", "gram", "grams",
		"l", "liter", "liters", "ml", "milliliter", "milliliters",
		"gal", "gallon", "gallons",
		"cup", "cups", "tbsp", "tablespoon", "tablespoons",
		"tsp", "teaspoon", "teaspoons",
		"pack", "packs", "package", "packages", "bag", "bags",
		"box", "boxes", "can", "cans", "jar", "jars", "bottle", "bottles",
		"dozen", "doz",
	}
	vocab := make(map[string]struct{}, len(words))
	for _, w := range words {
		vocab[w] = struct{}{}
	}
	return vocab
}

// quantityMatch is the result of one matcher strategy: an extracted quantity,
// an optional unit token (as typed by the user), and the remaining text.
type quantityMatch struct {
	quantity float64
	unit     string
	rest     string
}

// matcherFunc is a single quantity-extraction strategy. Strategies are
// evaluated in fixed order and the first match wins, so overlapping patterns
// are never ambiguous at runtime.
type matcherFunc func(line string) (quantityMatch, bool)

var (
	bulletPrefix  = regexp.MustCompile(`^[-*•·◦▪▫◆◇→➤➢>]\s*`)
	numberPrefix  = regexp.MustCompile(`^\d+\.\s+`)
	letterPrefix  = regexp.MustCompile(`^[A-Za-z]\)\s+`)
	fractionStart = regexp.MustCompile(`^\d+\s*/\s*\d+`)

	weightMatcher    = unitClassMatcher(weightUnits)
	volumeMatcher    = unitClassMatcher(volumeUnits)
	cookingMatcher   = unitClassMatcher(cookingUnits)
	packagingMatcher = unitClassMatcher(packagingUnits)
	dozenMatcher     = unitClassMatcher(dozenUnits)

	bareIntegerPattern = regexp.MustCompile(`^(\d+)\s+(.+)$`)
	numberWordPattern  = regexp.MustCompile(`(?i)^(one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve)\s+(.+)$`)
	fractionPattern    = regexp.MustCompile(`^(\d+)\s*/\s*(\d+)\s+(.+)$`)
	mixedPattern       = regexp.MustCompile(`^(\d+)\s+(\d+)\s*/\s*(\d+)\s+(.+)$`)
)

var numberWords = map[string]float64{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
}

// unitClassMatcher builds a strategy for one class of unit keywords:
// "<number> <unit> <item>", case-insensitive, with optional whitespace
// between number and unit.
func unitClassMatcher(units string) matcherFunc {
	re := regexp.MustCompile(`(?i)^(` + decimalNumber + `)\s*(` + units + `)\s+(.+)$`)
	return func(line string) (quantityMatch, bool) {
		m := re.FindStringSubmatch(line)
		if m == nil {
			return quantityMatch{}, false
		}
		qty, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return quantityMatch{}, false
		}
		return quantityMatch{quantity: qty, unit: m[2], rest: m[3]}, true
	}
}

func matchBareInteger(line string) (quantityMatch, bool) {
	m := bareIntegerPattern.FindStringSubmatch(line)
	if m == nil {
		return quantityMatch{}, false
	}
	// "1 1/2 onions" belongs to the mixed-number strategy further down.
	if fractionStart.MatchString(m[2]) {
		return quantityMatch{}, false
	}
	qty, _ := strconv.ParseFloat(m[1], 64)
	return quantityMatch{quantity: qty, rest: m[2]}, true
}

func matchNumberWord(line string) (quantityMatch, bool) {
	m := numberWordPattern.FindStringSubmatch(line)
	if m == nil {
		return quantityMatch{}, false
	}
	return quantityMatch{quantity: numberWords[strings.ToLower(m[1])], rest: m[2]}, true
}

func matchFraction(line string) (quantityMatch, bool) {
	m := fractionPattern.FindStringSubmatch(line)
	if m == nil {
		return quantityMatch{}, false
	}
	num, _ := strconv.ParseFloat(m[1], 64)
	den, _ := strconv.ParseFloat(m[2], 64)
	if den == 0 {
		return quantityMatch{}, false
	}
	return quantityMatch{quantity: num / den, rest: m[3]}, true
}

func matchMixedNumber(line string) (quantityMatch, bool) {
	m := mixedPattern.FindStringSubmatch(line)
	if m == nil {
		return quantityMatch{}, false
	}
	whole, _ := strconv.ParseFloat(m[1], 64)
	num, _ := strconv.ParseFloat(m[2], 64)
	den, _ := strconv.ParseFloat(m[3], 64)
	if den == 0 {
		return quantityMatch{}, false
	}
	return quantityMatch{quantity: whole + num/den, rest: m[4]}, true
}

// quantityMatchers is the ordered strategy table. Order matters: explicit
// unit classes first, then bare numbers, spelled-out numbers, and fractions.
var quantityMatchers = []matcherFunc{
	weightMatcher,
	volumeMatcher,
	cookingMatcher,
	packagingMatcher,
	dozenMatcher,
	matchBareInteger,
	matchNumberWord,
	matchFraction,
	matchMixedNumber,
}

// ParseLine parses a single grocery-list line into a ParsedItem. It never
// fails: the worst case is an item with no quantity and CategoryOther.
func ParseLine(line string) ParsedItem {
	original := strings.TrimSpace(line)
	cleaned := stripLinePrefix(original)

	item := ParsedItem{Original: original, ItemName: cleaned}
	for _, match := range quantityMatchers {
		m, ok := match(cleaned)
		if !ok {
			continue
		}
		qty := m.quantity
		item.Quantity = &qty
		item.Unit = m.unit
		item.ItemName = strings.TrimSpace(m.rest)
		if item.Unit == "" {
			// The remainder may still start with a unit word, e.g. the
			// "1/2 cup flour" shape where the fraction strategy captured
			// "cup flour" as the remainder.
			if unit, rest, found := splitLeadingUnit(item.ItemName); found {
				item.Unit = unit
				item.ItemName = rest
			}
		}
		if item.ItemName == "" {
			item.ItemName = cleaned
		}
		break
	}

	item.Category = Classify(item.ItemName)
	return item
}

// stripLinePrefix removes a leading bullet glyph, then a leading "1. "-style
// ordinal, then a leading "a) "-style ordinal, each at most once.
func stripLinePrefix(line string) string {
	s := bulletPrefix.ReplaceAllString(line, "")
	s = numberPrefix.ReplaceAllString(s, "")
	s = letterPrefix.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// splitLeadingUnit checks whether the first word of text is a recognized unit
// and, if so, splits it off from the rest.
func splitLeadingUnit(text string) (unit, rest string, found bool) {
	first, remainder, _ := strings.Cut(text, " ")
	if _, ok := unitVocabulary[strings.ToLower(first)]; !ok {
		return "", text, false
	}
	return first, strings.TrimSpace(remainder), true
}
