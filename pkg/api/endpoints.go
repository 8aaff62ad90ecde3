package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hazyhaar/ementa/pkg/kit"
	"github.com/hazyhaar/ementa/pkg/menu"
	"github.com/hazyhaar/ementa/pkg/speech"
)

// ErrBadRequest marks request errors caused by the caller.
var ErrBadRequest = errors.New("bad request")

// Sort orders for search results.
const (
	SortName   = "name"
	SortStored = "stored"
)

// speakTimeout bounds a single announcement.
const speakTimeout = 30 * time.Second

// Shared request/response types used by both HTTP and MCP transports.

type searchReq struct {
	Catalog string
	Query   string
	Sort    string
}

type searchResponse struct {
	Catalog string      `json:"catalog"`
	Query   string      `json:"query"`
	Count   int         `json:"count"`
	Dishes  []menu.Dish `json:"dishes"`
}

type dishReq struct {
	Catalog string
	ID      string
}

type dishResponse struct {
	Catalog string    `json:"catalog"`
	Dish    menu.Dish `json:"dish"`
}

type catalogsResponse struct {
	Default  string             `json:"default"`
	Catalogs []menu.CatalogInfo `json:"catalogs"`
}

type speakResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Spoken bool   `json:"spoken"`
	Error  string `json:"error,omitempty"`
}

func searchEndpoint(reg *menu.Registry) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*searchReq)
		c, err := reg.Catalog(req.Catalog)
		if err != nil {
			return nil, err
		}
		dishes := menu.Search(c, req.Query)
		switch req.Sort {
		case "", SortName:
			dishes = menu.SortByName(dishes, c.Meta().Locale)
		case SortStored:
		default:
			return nil, fmt.Errorf("%w: unknown sort %q (want %s or %s)", ErrBadRequest, req.Sort, SortName, SortStored)
		}
		return searchResponse{Catalog: c.ID(), Query: req.Query, Count: len(dishes), Dishes: dishes}, nil
	}
}

func getDishEndpoint(reg *menu.Registry) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*dishReq)
		c, err := reg.Catalog(req.Catalog)
		if err != nil {
			return nil, err
		}
		d, err := c.Dish(req.ID)
		if err != nil {
			return nil, err
		}
		return dishResponse{Catalog: c.ID(), Dish: d}, nil
	}
}

func listCatalogsEndpoint(reg *menu.Registry) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		resp := catalogsResponse{Catalogs: reg.List()}
		if c, err := reg.Catalog(""); err == nil {
			resp.Default = c.ID()
		}
		return resp, nil
	}
}

// speakEndpoint announces the dish name. A failing synthesizer is reported
// in the response, never as an endpoint error.
func speakEndpoint(reg *menu.Registry, speaker speech.Speaker) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*dishReq)
		c, err := reg.Catalog(req.Catalog)
		if err != nil {
			return nil, err
		}
		d, err := c.Dish(req.ID)
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(ctx, speakTimeout)
		defer cancel()
		resp := speakResponse{ID: d.ID, Name: d.Name, Spoken: true}
		if err := speaker.Speak(ctx, d.Name); err != nil {
			resp.Spoken = false
			resp.Error = err.Error()
		}
		return resp, nil
	}
}
