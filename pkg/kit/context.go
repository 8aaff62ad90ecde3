package kit

import "context"

type contextKey string

const (
	TransportKey contextKey = "ementa_transport" // "http", "mcp", "mcp_quic", "cli"
	RequestIDKey contextKey = "ementa_request_id"
	CatalogKey   contextKey = "ementa_catalog"
)

func WithTransport(ctx context.Context, t string) context.Context {
	return context.WithValue(ctx, TransportKey, t)
}

// GetTransport defaults to "http" when no transport was recorded.
func GetTransport(ctx context.Context) string {
	if v, ok := ctx.Value(TransportKey).(string); ok {
		return v
	}
	return "http"
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}
func GetRequestID(ctx context.Context) string {
	v, _ := ctx.Value(RequestIDKey).(string)
	return v
}

// WithCatalog records the catalog id a request targets, for logging.
func WithCatalog(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CatalogKey, id)
}
func GetCatalog(ctx context.Context) string {
	v, _ := ctx.Value(CatalogKey).(string)
	return v
}
