package menu

import "strings"

// SearchableText is the normalized concatenation of a dish's name,
// description and ingredients that query tokens are matched against.
func SearchableText(d Dish) string {
	return Normalize(d.Name + " " + d.Description + " " + strings.Join(d.Ingredients, " "))
}

// Tokens normalizes a query and splits it on spaces. Empty tokens from
// repeated spaces are kept; they match any text.
func Tokens(query string) []string {
	return strings.Split(Normalize(query), " ")
}

// Search returns the dishes whose searchable text contains every query token
// as a substring, in stored order. An empty query returns the whole catalog.
func Search(c *Catalog, query string) []Dish {
	if c == nil {
		return []Dish{}
	}
	if query == "" {
		return c.Dishes()
	}

	tokens := Tokens(query)
	out := []Dish{}
	for i, text := range c.text {
		if containsAll(text, tokens) {
			out = append(out, c.dishes[i].clone())
		}
	}
	return out
}

func containsAll(text string, tokens []string) bool {
	for _, tok := range tokens {
		if !strings.Contains(text, tok) {
			return false
		}
	}
	return true
}
