package usecases

import (
	"context"
	"fmt"

	"github.com/samirrijal/routemap/internal/core/domain"
	"github.com/samirrijal/routemap/internal/core/ports"
)

// RouteLayer registers the static route line and its markers.
type RouteLayer struct {
	route      domain.RouteGeometry
	markers    []domain.MarkerAnnotation
	style      domain.LineStyle
	registered bool
}

// NewRouteLayer creates a RouteLayer with the default route, markers and style.
func NewRouteLayer() *RouteLayer {
	return &RouteLayer{
		route:   domain.DefaultRoute(),
		markers: domain.DefaultMarkers(),
		style:   domain.DefaultLineStyle(),
	}
}

// Register adds the route source, the line layer and one marker per point.
// It runs once per widget lifetime.
func (l *RouteLayer) Register(ctx context.Context, w ports.MapWidget) error {
	if l.registered {
		return ErrAlreadyRegistered
	}
	l.registered = true

	if err := w.AddGeoJSONSource(ctx, domain.RouteSourceID, l.route.Feature()); err != nil {
		return fmt.Errorf("add route source: %w", err)
	}
	if err := w.AddLineLayer(ctx, domain.RouteSourceID, domain.RouteSourceID, l.style); err != nil {
		return fmt.Errorf("add route layer: %w", err)
	}
	for _, m := range l.markers {
		if err := w.AddMarker(ctx, m, domain.PopupOffset); err != nil {
			return fmt.Errorf("add %s marker: %w", m.Color, err)
		}
	}
	return nil
}

// Registered reports whether Register has run.
func (l *RouteLayer) Registered() bool {
	return l.registered
}
