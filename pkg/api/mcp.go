package api

import (
	"fmt"
	"log/slog"

	"github.com/hazyhaar/ementa/pkg/kit"
	"github.com/hazyhaar/ementa/pkg/menu"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer builds an MCP server exposing the catalog tools.
func NewMCPServer(reg *menu.Registry, version string, logger *slog.Logger) *server.MCPServer {
	srv := server.NewMCPServer("ementa", version, server.WithToolCapabilities(false))
	RegisterMCPTools(srv, reg, logger)
	return srv
}

// RegisterMCPTools registers the Ementa MCP tools on the server.
func RegisterMCPTools(srv *server.MCPServer, reg *menu.Registry, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	kit.RegisterMCPTool(srv,
		mcp.NewTool("search_dishes",
			mcp.WithDescription("Search a dish catalog. Matching ignores case and diacritics; every word of the query must appear in the dish name, description or ingredients. An empty query lists the whole catalog."),
			mcp.WithString("query", mcp.Description("Free-text query, e.g. \"knedliky zeli\"")),
			mcp.WithString("catalog", mcp.Description("Catalog id (default catalog when omitted)")),
			mcp.WithString("sort", mcp.Description("Result order: name (default) or stored"), mcp.Enum(SortName, SortStored)),
		),
		middleware(logger, "search_dishes")(searchEndpoint(reg)),
		func(req mcp.CallToolRequest) (any, error) {
			var r searchReq
			args := req.GetArguments()
			for key, dst := range map[string]*string{"catalog": &r.Catalog, "query": &r.Query, "sort": &r.Sort} {
				v, err := optionalString(args, key)
				if err != nil {
					return nil, err
				}
				*dst = v
			}
			return &r, nil
		})

	kit.RegisterMCPTool(srv,
		mcp.NewTool("get_dish",
			mcp.WithDescription("Return one dish with its description, ingredients and image references."),
			mcp.WithString("id", mcp.Required(), mcp.Description("Dish id")),
			mcp.WithString("catalog", mcp.Description("Catalog id (default catalog when omitted)")),
		),
		middleware(logger, "get_dish")(getDishEndpoint(reg)),
		func(req mcp.CallToolRequest) (any, error) {
			id, err := req.RequireString("id")
			if err != nil {
				return nil, err
			}
			catalog, err := optionalString(req.GetArguments(), "catalog")
			if err != nil {
				return nil, err
			}
			return &dishReq{Catalog: catalog, ID: id}, nil
		})

	kit.RegisterMCPTool(srv,
		mcp.NewTool("list_catalogs",
			mcp.WithDescription("List loaded dish catalogs with title, locale, version, source and dish count."),
		),
		middleware(logger, "list_catalogs")(listCatalogsEndpoint(reg)),
		func(mcp.CallToolRequest) (any, error) { return nil, nil })
}

// optionalString returns args[key] as a string, "" when absent or null.
// Any other type is an error rather than a silent default.
func optionalString(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", key, v)
	}
	return s, nil
}
