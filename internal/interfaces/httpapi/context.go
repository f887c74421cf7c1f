package httpapi

import (
	"context"

	"github.com/riskibarqy/weekend-fixtures/internal/domain/geo"
)

type contextKey string

const (
	edgeLocationContextKey contextKey = "edge_location"
	requestIDContextKey    contextKey = "request_id"
)

func withEdgeLocation(ctx context.Context, p geo.Point) context.Context {
	return context.WithValue(ctx, edgeLocationContextKey, p)
}

func edgeLocationFromContext(ctx context.Context) (geo.Point, bool) {
	p, ok := ctx.Value(edgeLocationContextKey).(geo.Point)
	return p, ok
}

func withRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

func requestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(requestIDContextKey).(string)
	return v
}
