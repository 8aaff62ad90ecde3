// Package menu holds the dish catalog, its text normalization and the
// token search over it.
package menu

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyName       = errors.New("dish has no name")
	ErrDuplicateID     = errors.New("duplicate dish id")
	ErrDishNotFound    = errors.New("dish not found")
	ErrCatalogNotFound = errors.New("catalog not found")
)

// idNamespace seeds the UUIDv5 ids given to records authored without one.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/hazyhaar/ementa/dish"))

// Dish is one menu entry. Ingredients and Images keep their authored order;
// the first image is the primary one.
type Dish struct {
	ID          string   `json:"id" yaml:"id,omitempty"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Ingredients []string `json:"ingredients" yaml:"ingredients"`
	Images      []string `json:"images" yaml:"images"`
}

// PrimaryImage returns the first image reference, or "" when there is none.
func (d Dish) PrimaryImage() string {
	if len(d.Images) == 0 {
		return ""
	}
	return d.Images[0]
}

func (d Dish) clone() Dish {
	d.Ingredients = append([]string{}, d.Ingredients...)
	d.Images = append([]string{}, d.Images...)
	return d
}

// Meta describes a catalog as a whole.
type Meta struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Locale  string `json:"locale"`
	Version string `json:"version"`
	Source  string `json:"source"`
}

// Catalog is an immutable, ordered set of dishes. It is built once and only
// read afterwards, so it can be shared between goroutines without locking.
type Catalog struct {
	meta   Meta
	dishes []Dish
	text   []string // normalized searchable text, parallel to dishes
	byID   map[string]int
}

// NewCatalog validates and copies dishes into a catalog, keeping their order.
// Dishes without an id get one derived from the catalog id and their position.
func NewCatalog(meta Meta, dishes []Dish) (*Catalog, error) {
	c := &Catalog{
		meta:   meta,
		dishes: make([]Dish, 0, len(dishes)),
		text:   make([]string, 0, len(dishes)),
		byID:   make(map[string]int, len(dishes)),
	}

	for i, d := range dishes {
		if strings.TrimSpace(d.Name) == "" {
			return nil, fmt.Errorf("catalog %s: record %d: %w", meta.ID, i, ErrEmptyName)
		}
		d = d.clone()
		if d.ID == "" {
			d.ID = uuid.NewSHA1(idNamespace, []byte(meta.ID+"/"+strconv.Itoa(i))).String()
		}
		if _, exists := c.byID[d.ID]; exists {
			return nil, fmt.Errorf("catalog %s: %q: %w", meta.ID, d.ID, ErrDuplicateID)
		}
		c.byID[d.ID] = len(c.dishes)
		c.dishes = append(c.dishes, d)
		c.text = append(c.text, SearchableText(d))
	}
	return c, nil
}

// Meta returns the catalog description.
func (c *Catalog) Meta() Meta { return c.meta }

// ID returns the catalog id.
func (c *Catalog) ID() string { return c.meta.ID }

// Len returns the number of dishes.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.dishes)
}

// Dishes returns a copy of every dish in stored order.
func (c *Catalog) Dishes() []Dish {
	if c == nil {
		return []Dish{}
	}
	out := make([]Dish, len(c.dishes))
	for i, d := range c.dishes {
		out[i] = d.clone()
	}
	return out
}

// Dish returns the dish with the given id.
func (c *Catalog) Dish(id string) (Dish, error) {
	if c != nil {
		if i, ok := c.byID[id]; ok {
			return c.dishes[i].clone(), nil
		}
	}
	return Dish{}, fmt.Errorf("%q: %w", id, ErrDishNotFound)
}
