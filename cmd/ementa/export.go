package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hazyhaar/ementa/pkg/export"
	"github.com/spf13/cobra"
)

func (a *app) exportCmd() *cobra.Command {
	var format, output, title string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a catalog as HTML or Markdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			c, err := reg.Catalog(a.catalog)
			if err != nil {
				return err
			}
			opts := a.cfg.Export.options()
			if title != "" {
				opts.Title = title
			}

			var render func(io.Writer) error
			switch format {
			case "html":
				render = func(w io.Writer) error { return export.HTML(w, c, opts) }
			case "markdown", "md":
				render = func(w io.Writer) error { return export.Markdown(w, c, opts) }
			default:
				return fmt.Errorf("unknown format %q (want html or markdown)", format)
			}

			if output == "" || output == "-" {
				return render(a.out)
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := render(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			a.logger.Info("catalog exported", "catalog", c.ID(), "format", format, "path", output, "dishes", c.Len())
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "html", "html or markdown")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&title, "title", "", "document title (overrides config)")
	return cmd
}
