package timeline

import (
	"strings"

	"golang.org/x/text/cases"
)

// Category is the derived type of an event.
type Category string

// String returns the string representation of a Category.
func (c Category) String() string {
	return string(c)
}

// Event categories, in classification priority order.
const (
	CategoryPremiere    Category = "premiere"
	CategoryFuneral     Category = "funeral"
	CategoryPerformance Category = "performance"
	CategoryOther       Category = "other"
)

// DefaultColor is used for any category without an assigned colour.
const DefaultColor = "#d9d9d9"

var categoryColors = map[Category]string{
	CategoryPremiere:    "#f6c445",
	CategoryPerformance: "#3aa6ff",
	CategoryFuneral:     "#b06cff",
	CategoryOther:       DefaultColor,
}

// Color returns the badge and marker colour for the category.
func (c Category) Color() string {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return DefaultColor
}

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{CategoryPremiere, CategoryPerformance, CategoryFuneral, CategoryOther}
}

// rule maps any of its keywords to a category.
type rule struct {
	category Category
	keywords []string
}

// rules are evaluated in order; the first match wins. "stage performance"
// is covered by "performance" but kept so the rule reads like the data.
var rules = []rule{
	{CategoryPremiere, []string{"premiere", "première"}},
	{CategoryFuneral, []string{"funeral"}},
	{CategoryPerformance, []string{"stage performance", "performance"}},
}

// Classify derives a category from an event name using case-insensitive
// substring rules. It is total: empty or unmatched names yield CategoryOther.
func Classify(name string) Category {
	if name == "" {
		return CategoryOther
	}
	// A Caser carries state, so each call gets its own.
	folded := cases.Fold().String(name)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(folded, kw) {
				return r.category
			}
		}
	}
	return CategoryOther
}
