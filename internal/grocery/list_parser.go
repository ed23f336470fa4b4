package grocery

import (
	"regexp"
	"strings"
)

// noiseHeader matches list headers that carry no item, e.g. "Grocery List:".
var noiseHeader = regexp.MustCompile(`(?i)^(grocery list|shopping list|to buy|items needed):?$`)

var fragmentSplitter = regexp.MustCompile(`[\n;,]`)

// ParseList splits raw grocery-list text into candidate lines and parses each
// one. Input order is preserved. Empty or unusable input yields an empty
// slice, never an error.
func ParseList(text string) []ParsedItem {
	items := []ParsedItem{}
	for _, fragment := range fragmentSplitter.Split(text, -1) {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" || noiseHeader.MatchString(fragment) {
			continue
		}
		items = append(items, ParseLine(fragment))
	}
	return items
}

// GroupByCategory re-indexes parsed items by category. It is a pure
// regrouping of the same items, not a second parse.
func GroupByCategory(items []ParsedItem) map[Category][]ParsedItem {
	grouped := make(map[Category][]ParsedItem)
	for _, item := range items {
		grouped[item.Category] = append(grouped[item.Category], item)
	}
	return grouped
}
