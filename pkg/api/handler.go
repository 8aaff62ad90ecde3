package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hazyhaar/ementa/pkg/export"
	"github.com/hazyhaar/ementa/pkg/kit"
	"github.com/hazyhaar/ementa/pkg/menu"
	"github.com/hazyhaar/ementa/pkg/speech"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/cors"
)

// Options configures the router. Zero values are usable.
type Options struct {
	Speaker   speech.Speaker
	Export    export.Options
	MCPServer *server.MCPServer // mounted at /mcp when set
	Logger    *slog.Logger
}

// NewRouter returns an http.Handler with all Ementa API routes.
func NewRouter(reg *menu.Registry, opts Options) http.Handler {
	if opts.Speaker == nil {
		opts.Speaker = speech.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	logged := func(name string, ep kit.Endpoint) kit.Endpoint {
		return middleware(opts.Logger, name)(ep)
	}

	h := &handler{
		search:       logged("search_dishes", searchEndpoint(reg)),
		getDish:      logged("get_dish", getDishEndpoint(reg)),
		listCatalogs: logged("list_catalogs", listCatalogsEndpoint(reg)),
		speak:        logged("speak", speakEndpoint(reg, opts.Speaker)),
		reg:          reg,
		export:       opts.Export,
		logger:       opts.Logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/health", h.handleHealth)
	mux.HandleFunc("GET /v1/catalogs", h.handleListCatalogs)
	mux.HandleFunc("GET /v1/catalogs/{catalog}/dishes", h.handleSearch)
	mux.HandleFunc("GET /v1/catalogs/{catalog}/dishes/{id}", h.handleGetDish)
	mux.HandleFunc("POST /v1/catalogs/{catalog}/dishes/{id}/speak", h.handleSpeak)
	mux.HandleFunc("GET /v1/catalogs/{catalog}/export", h.handleExport)
	if opts.MCPServer != nil {
		mux.Handle("/mcp", server.NewStreamableHTTPServer(opts.MCPServer))
	}

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Mcp-Session-Id", "Mcp-Protocol-Version"},
		ExposedHeaders: []string{"Mcp-Session-Id"},
	}).Handler(mux)
}

type handler struct {
	search       kit.Endpoint
	getDish      kit.Endpoint
	listCatalogs kit.Endpoint
	speak        kit.Endpoint
	reg          *menu.Registry
	export       export.Options
	logger       *slog.Logger
}

// --- search ---

func (h *handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	catalog := r.PathValue("catalog")
	q := r.URL.Query()
	resp, err := h.search(h.ctx(r, catalog), &searchReq{
		Catalog: catalog,
		Query:   q.Get("q"),
		Sort:    q.Get("sort"),
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- dish detail ---

func (h *handler) handleGetDish(w http.ResponseWriter, r *http.Request) {
	catalog := r.PathValue("catalog")
	resp, err := h.getDish(h.ctx(r, catalog), &dishReq{Catalog: catalog, ID: r.PathValue("id")})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- speak ---

func (h *handler) handleSpeak(w http.ResponseWriter, r *http.Request) {
	catalog := r.PathValue("catalog")
	resp, err := h.speak(h.ctx(r, catalog), &dishReq{Catalog: catalog, ID: r.PathValue("id")})
	if err != nil {
		writeErr(w, err)
		return
	}
	if sr := resp.(speakResponse); !sr.Spoken {
		h.logger.Warn("speech failed", "dish", sr.ID, "error", sr.Error)
	}
	writeJSON(w, http.StatusAccepted, resp)
}

// --- list catalogs ---

func (h *handler) handleListCatalogs(w http.ResponseWriter, r *http.Request) {
	resp, err := h.listCatalogs(h.ctx(r, ""), nil)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- export ---

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	c, err := h.reg.Catalog(r.PathValue("catalog"))
	if err != nil {
		writeErr(w, err)
		return
	}

	var buf bytes.Buffer
	var contentType string
	switch format := r.URL.Query().Get("format"); format {
	case "", "html":
		contentType = "text/html; charset=utf-8"
		err = export.HTML(&buf, c, h.export)
	case "markdown", "md":
		contentType = "text/markdown; charset=utf-8"
		err = export.Markdown(&buf, c, h.export)
	default:
		writeError(w, http.StatusBadRequest, "unknown format "+format+" (want html or markdown)")
		return
	}
	if err != nil {
		h.logger.Error("export failed", "catalog", c.ID(), "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// --- health ---

type healthResponse struct {
	Status      string `json:"status"`
	Catalogs    int    `json:"catalogs"`
	TotalDishes int    `json:"total_dishes"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      "ok",
		Catalogs:    h.reg.Count(),
		TotalDishes: h.reg.TotalDishes(),
	})
}

// --- helpers ---

// middleware is the stack every endpoint runs behind, on every transport.
func middleware(logger *slog.Logger, name string) kit.Middleware {
	return kit.Chain(kit.Logging(logger, name), kit.Recover())
}

func (h *handler) ctx(r *http.Request, catalog string) context.Context {
	ctx := kit.WithTransport(r.Context(), "http")
	if id := r.Header.Get("X-Request-Id"); id != "" {
		ctx = kit.WithRequestID(ctx, id)
	}
	if catalog != "" {
		ctx = kit.WithCatalog(ctx, catalog)
	}
	return ctx
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, menu.ErrCatalogNotFound), errors.Is(err, menu.ErrDishNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeErr(w http.ResponseWriter, err error) {
	writeError(w, statusOf(err), err.Error())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
