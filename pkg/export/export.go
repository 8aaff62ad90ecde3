// Package export renders a catalog as a standalone styled HTML document or
// as Markdown. Dishes are listed by name, collated for the catalog locale.
package export

import (
	"net/url"
	"strings"

	"github.com/hazyhaar/ementa/pkg/menu"
)

// Options configures an export.
type Options struct {
	Title            string // document title; defaults to the catalog title
	ImageBaseURL     string // prefix for image references; empty keeps them relative
	ImageExt         string // appended to each image reference, e.g. ".jpg"
	DetailBaseURL    string // when set, each dish gets a QR code for DetailBaseURL/<id>
	QRSize           int    // QR code edge in pixels (default 128)
	IngredientsLabel string // heading above ingredient lists (default "Ingredientes")
}

func (o Options) withDefaults(c *menu.Catalog) Options {
	if o.Title == "" {
		o.Title = c.Meta().Title
	}
	if o.Title == "" {
		o.Title = c.ID()
	}
	if o.QRSize <= 0 {
		o.QRSize = 128
	}
	if o.IngredientsLabel == "" {
		o.IngredientsLabel = "Ingredientes"
	}
	return o
}

// ImageURL resolves an image reference against the options.
func (o Options) ImageURL(ref string) string {
	if o.ImageBaseURL == "" {
		return ref + o.ImageExt
	}
	return strings.TrimRight(o.ImageBaseURL, "/") + "/" + url.PathEscape(ref) + o.ImageExt
}

// DetailURL returns the detail link for a dish, or "" when no base is set.
func (o Options) DetailURL(d menu.Dish) string {
	if o.DetailBaseURL == "" {
		return ""
	}
	return strings.TrimRight(o.DetailBaseURL, "/") + "/" + url.PathEscape(d.ID)
}

func ordered(c *menu.Catalog) []menu.Dish {
	return menu.SortByName(c.Dishes(), c.Meta().Locale)
}
