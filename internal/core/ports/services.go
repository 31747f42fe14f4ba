package ports

import (
	"context"

	"github.com/samirrijal/routemap/internal/core/domain"
)

// EventHandler reacts to a map widget lifecycle event.
type EventHandler func(ctx context.Context) error

// MapWidget is the interactive map rendering component. Implementations
// deliver events on a single goroutine per widget.
type MapWidget interface {
	Create(ctx context.Context, opts domain.MapOptions) error
	AddNavigationControl(ctx context.Context, position string) error
	AddGeoJSONSource(ctx context.Context, id string, feature domain.RouteFeature) error
	AddLineLayer(ctx context.Context, id, source string, style domain.LineStyle) error
	AddMarker(ctx context.Context, marker domain.MarkerAnnotation, popupOffset int) error
	On(event domain.MapEventType, handler EventHandler)
	Center() domain.GeoPoint
	Zoom() float64
}

// ReadoutDisplay renders the viewport text next to the map.
type ReadoutDisplay interface {
	ShowReadout(ctx context.Context, state domain.ViewportState) error
}

// EventPublisher publishes viewport changes to a message broker.
type EventPublisher interface {
	PublishViewport(ctx context.Context, sessionID string, state domain.ViewportState) error
}

// EventSubscriber receives viewport changes from a message broker.
type EventSubscriber interface {
	SubscribeViewports(ctx context.Context, handler func(ctx context.Context, sessionID string, state domain.ViewportState) error) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
