package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
	"github.com/hazyhaar/ementa/pkg/export"
	"github.com/hazyhaar/ementa/pkg/menu"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (a *app) searchCmd() *cobra.Command {
	var stored bool
	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Search dishes by name, description and ingredients",
		Long: `Search the catalog. Matching ignores case and diacritics, and every word
of the query must occur in the dish. Without a query every dish is listed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			c, err := reg.Catalog(a.catalog)
			if err != nil {
				return err
			}
			dishes := menu.Search(c, strings.Join(args, " "))
			if !stored {
				dishes = menu.SortByName(dishes, c.Meta().Locale)
			}
			if a.asJSON {
				return a.printJSON(dishes)
			}
			if len(dishes) == 0 {
				fmt.Fprintln(a.out, "no dishes found")
				return nil
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			for _, d := range dishes {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", d.ID, d.Name, strings.Join(d.Ingredients, ", "))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&stored, "stored", false, "keep catalog order instead of sorting by name")
	return cmd
}

func (a *app) showCmd() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "show <dish-id>",
		Short: "Show one dish",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			c, err := reg.Catalog(a.catalog)
			if err != nil {
				return err
			}
			d, err := c.Dish(args[0])
			if err != nil {
				return err
			}
			if a.asJSON {
				return a.printJSON(d)
			}

			var buf bytes.Buffer
			if err := export.DishMarkdown(&buf, d, a.cfg.Export.options()); err != nil {
				return err
			}
			if !raw && a.out == os.Stdout && term.IsTerminal(int(os.Stdout.Fd())) {
				rendered, err := glamour.Render(buf.String(), "dark")
				if err == nil {
					fmt.Fprint(a.out, rendered)
					return nil
				}
				a.logger.Debug("glamour render failed", "error", err)
			}
			_, err = a.out.Write(buf.Bytes())
			return err
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print Markdown without terminal rendering")
	return cmd
}

func (a *app) catalogsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalogs",
		Short: "List loaded catalogs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			infos := reg.List()
			if a.asJSON {
				return a.printJSON(infos)
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tLOCALE\tVERSION\tDISHES")
			for _, info := range infos {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", info.ID, info.Title, info.Locale, info.Version, info.Dishes)
			}
			return tw.Flush()
		},
	}
}
