package menu

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortByName returns a copy of dishes ordered by name for display, collated
// for locale (a BCP 47 tag such as "cs"; empty means root collation). Equal
// names keep their relative order.
func SortByName(dishes []Dish, locale string) []Dish {
	out := slices.Clone(dishes)
	col := collate.New(language.Make(locale))
	slices.SortStableFunc(out, func(a, b Dish) int {
		return col.CompareString(a.Name, b.Name)
	})
	return out
}
