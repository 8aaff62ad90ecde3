package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/hazyhaar/ementa/pkg/mcpquic"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

func (a *app) mcpCmd() *cobra.Command {
	var addr string
	var insecure bool
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Talk to a running server over MCP-over-QUIC",
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&addr, "addr", "localhost:8420", "server address (transport: quic)")
	pf.BoolVar(&insecure, "insecure", true, "accept self-signed certificates")
	pf.DurationVar(&timeout, "timeout", 30*time.Second, "overall timeout")

	connect := func(ctx context.Context) (*mcpquic.Client, error) {
		c := mcpquic.NewClient(addr, mcpquic.ClientTLSConfig(insecure), version)
		if err := c.Connect(ctx); err != nil {
			return nil, err
		}
		return c, nil
	}

	toolsCmd := &cobra.Command{
		Use:   "tools",
		Short: "List the tools the server exposes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			c, err := connect(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			res, err := c.ListTools(ctx)
			if err != nil {
				return err
			}
			if a.asJSON {
				return a.printJSON(res.Tools)
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			for _, t := range res.Tools {
				fmt.Fprintf(tw, "%s\t%s\n", t.Name, t.Description)
			}
			return tw.Flush()
		},
	}

	callCmd := &cobra.Command{
		Use:   "call <tool> [key=value...]",
		Short: "Call a tool and print its result",
		Example: `  ementa mcp call search_dishes query="knedliky zeli"
  ementa mcp call get_dish id=5f0c... catalog=ementa`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toolArgs, err := parseToolArgs(args[1:])
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			c, err := connect(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			res, err := c.CallTool(ctx, args[0], toolArgs)
			if err != nil {
				return err
			}
			for _, content := range res.Content {
				if text, ok := content.(mcp.TextContent); ok {
					fmt.Fprintln(a.out, text.Text)
				}
			}
			if res.IsError {
				return fmt.Errorf("tool %s failed", args[0])
			}
			return nil
		},
	}

	cmd.AddCommand(toolsCmd, callCmd)
	return cmd
}

// parseToolArgs turns key=value pairs into tool arguments. Every tool
// parameter is a string, so values are passed through untouched.
func parseToolArgs(pairs []string) (map[string]any, error) {
	args := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("argument %q: want key=value", p)
		}
		args[k] = v
	}
	return args, nil
}
