package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/hazyhaar/ementa/pkg/menu"
)

// Markdown writes the whole catalog as one Markdown document.
func Markdown(w io.Writer, c *menu.Catalog, opts Options) error {
	opts = opts.withDefaults(c)
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# %s\n\n", opts.Title)
	for _, d := range ordered(c) {
		writeDish(bw, d, opts, "##")
	}
	return bw.Flush()
}

// DishMarkdown writes a single dish detail as Markdown.
func DishMarkdown(w io.Writer, d menu.Dish, opts Options) error {
	if opts.IngredientsLabel == "" {
		opts.IngredientsLabel = "Ingredientes"
	}
	bw := bufio.NewWriter(w)
	writeDish(bw, d, opts, "#")
	return bw.Flush()
}

func writeDish(w *bufio.Writer, d menu.Dish, opts Options, heading string) {
	fmt.Fprintf(w, "%s %s\n\n", heading, d.Name)
	for _, ref := range d.Images {
		fmt.Fprintf(w, "![%s](%s)\n\n", escapeAlt(d.Name), opts.ImageURL(ref))
	}
	if d.Description != "" {
		fmt.Fprintf(w, "%s\n\n", d.Description)
	}
	if len(d.Ingredients) > 0 {
		fmt.Fprintf(w, "%s# %s\n\n", heading, opts.IngredientsLabel)
		for _, ing := range d.Ingredients {
			fmt.Fprintf(w, "- %s\n", ing)
		}
		w.WriteString("\n")
	}
	if link := opts.DetailURL(d); link != "" {
		fmt.Fprintf(w, "<%s>\n\n", link)
	}
}

var altEscaper = strings.NewReplacer("[", `\[`, "]", `\]`)

func escapeAlt(s string) string { return altEscaper.Replace(s) }
