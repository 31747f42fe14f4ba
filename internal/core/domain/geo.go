package domain

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// Fixed points of the demo route.
var (
	StartLocation   = GeoPoint{Lng: -71.05, Lat: 42.35}
	CurrentLocation = GeoPoint{Lng: -71.78, Lat: 42.25}
	EndLocation     = GeoPoint{Lng: -72.63, Lat: 42.11}
)

// Point converts p to an orb.Point ([lng, lat]).
func (p GeoPoint) Point() orb.Point {
	return orb.Point{p.Lng, p.Lat}
}

// GeoPointFrom converts an orb.Point back to a GeoPoint.
func GeoPointFrom(pt orb.Point) GeoPoint {
	return GeoPoint{Lng: pt.Lon(), Lat: pt.Lat()}
}

// RouteGeometry is an ordered sequence of points forming a line.
type RouteGeometry struct {
	Points []GeoPoint `json:"points"`
}

// DefaultRoute returns the start → current → end line.
func DefaultRoute() RouteGeometry {
	return RouteGeometry{Points: []GeoPoint{StartLocation, CurrentLocation, EndLocation}}
}

// LineString returns the route as an orb.LineString.
func (r RouteGeometry) LineString() orb.LineString {
	ls := make(orb.LineString, 0, len(r.Points))
	for _, p := range r.Points {
		ls = append(ls, p.Point())
	}
	return ls
}

// Feature wraps the route in a GeoJSON Feature with empty properties.
func (r RouteGeometry) Feature() RouteFeature {
	return RouteFeature{Line: r.LineString()}
}

// Coordinates returns the route as [[lng, lat], ...].
func (r RouteGeometry) Coordinates() [][2]float64 {
	out := make([][2]float64, 0, len(r.Points))
	for _, p := range r.Points {
		out = append(out, [2]float64{p.Lng, p.Lat})
	}
	return out
}

// Bound returns the bounding box covering the route.
func (r RouteGeometry) Bound() orb.Bound {
	return r.LineString().Bound()
}

// Bounds represents a geographic bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// RouteFeature is a GeoJSON Feature holding a single LineString. Properties
// always encode as an empty object; orb's Feature writes null for them.
type RouteFeature struct {
	Line orb.LineString
}

type featureDoc struct {
	Type       string            `json:"type"`
	Geometry   *geojson.Geometry `json:"geometry"`
	Properties map[string]any    `json:"properties"`
}

func (f RouteFeature) MarshalJSON() ([]byte, error) {
	return json.Marshal(featureDoc{
		Type:       "Feature",
		Geometry:   geojson.NewGeometry(f.Line),
		Properties: map[string]any{},
	})
}

func (f *RouteFeature) UnmarshalJSON(data []byte) error {
	var doc featureDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.Type != "Feature" {
		return fmt.Errorf("geojson: expected Feature, got %q", doc.Type)
	}

	f.Line = nil
	if doc.Geometry == nil || doc.Geometry.Geometry() == nil {
		return nil
	}
	ls, ok := doc.Geometry.Geometry().(orb.LineString)
	if !ok {
		return fmt.Errorf("geojson: expected LineString, got %s", doc.Geometry.Type)
	}
	f.Line = ls
	return nil
}
