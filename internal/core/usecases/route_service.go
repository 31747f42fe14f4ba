package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/samirrijal/routemap/internal/core/domain"
	"github.com/samirrijal/routemap/internal/core/ports"
	"github.com/samirrijal/routemap/internal/pkg/geospatial"
)

const routeCacheKey = "route:geojson"

// RouteSummary describes the route without its geometry.
type RouteSummary struct {
	Points         int           `json:"points"`
	DistanceMeters float64       `json:"distance_meters"`
	Bounds         domain.Bounds `json:"bounds"`
}

// RouteService exposes the static map scene to read-only APIs.
type RouteService struct {
	route   domain.RouteGeometry
	markers []domain.MarkerAnnotation
	view    domain.MapOptions
	cache   ports.CacheService
}

// NewRouteService creates a RouteService. cache may be nil.
func NewRouteService(view domain.MapOptions, cache ports.CacheService) *RouteService {
	return &RouteService{
		route:   domain.DefaultRoute(),
		markers: domain.DefaultMarkers(),
		view:    view,
		cache:   cache,
	}
}

// Route returns the route line as an encoded GeoJSON Feature.
func (s *RouteService) Route(ctx context.Context) ([]byte, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, routeCacheKey); err == nil && len(data) > 0 {
			return data, nil
		}
	}

	data, err := json.Marshal(s.route.Feature())
	if err != nil {
		return nil, fmt.Errorf("encode route: %w", err)
	}

	// The route never changes during a process lifetime.
	if s.cache != nil {
		_ = s.cache.Set(ctx, routeCacheKey, data, 3600)
	}

	return data, nil
}

// Feature returns the decoded route feature.
func (s *RouteService) Feature(ctx context.Context) (domain.RouteFeature, error) {
	var f domain.RouteFeature
	data, err := s.Route(ctx)
	if err != nil {
		return f, err
	}
	if err := json.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("decode route: %w", err)
	}
	return f, nil
}

// Geometry returns the route points in order.
func (s *RouteService) Geometry(ctx context.Context) domain.RouteGeometry {
	return s.route
}

// Summary returns the point count, length and bounding box of the route.
func (s *RouteService) Summary(ctx context.Context) RouteSummary {
	bound := s.route.Bound()
	return RouteSummary{
		Points:         len(s.route.Points),
		DistanceMeters: geospatial.PathLength(s.route.LineString()),
		Bounds: domain.Bounds{
			MinLat: bound.Min.Lat(),
			MinLng: bound.Min.Lon(),
			MaxLat: bound.Max.Lat(),
			MaxLng: bound.Max.Lon(),
		},
	}
}

// Markers returns the marker annotations in registration order.
func (s *RouteService) Markers(ctx context.Context) []domain.MarkerAnnotation {
	out := make([]domain.MarkerAnnotation, len(s.markers))
	copy(out, s.markers)
	return out
}

// InitialView returns the options the map is constructed with.
func (s *RouteService) InitialView(ctx context.Context) domain.MapOptions {
	return s.view
}
