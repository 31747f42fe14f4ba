package usecases_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/samirrijal/routemap/internal/core/domain"
	"github.com/samirrijal/routemap/internal/core/usecases"
)

func TestRouteService_Route(t *testing.T) {
	svc := usecases.NewRouteService(domain.DefaultMapOptions(), nil)

	data, err := svc.Route(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var f struct {
		Type     string `json:"type"`
		Geometry struct {
			Type        string       `json:"type"`
			Coordinates [][2]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties map[string]any `json:"properties"`
	}
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if f.Type != "Feature" || f.Geometry.Type != "LineString" {
		t.Errorf("unexpected types %q / %q", f.Type, f.Geometry.Type)
	}
	if f.Properties == nil || len(f.Properties) != 0 {
		t.Errorf("expected empty properties object, got %s", data)
	}
	want := [][2]float64{{-71.05, 42.35}, {-71.78, 42.25}, {-72.63, 42.11}}
	if len(f.Geometry.Coordinates) != len(want) {
		t.Fatalf("expected %d coordinates, got %d", len(want), len(f.Geometry.Coordinates))
	}
	for i := range want {
		if f.Geometry.Coordinates[i] != want[i] {
			t.Errorf("coordinate %d: expected %v, got %v", i, want[i], f.Geometry.Coordinates[i])
		}
	}
}

func TestRouteService_RouteCached(t *testing.T) {
	cache := newMockCache()
	svc := usecases.NewRouteService(domain.DefaultMapOptions(), cache)
	ctx := context.Background()

	first, err := svc.Route(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected route to be cached once, got %d sets", cache.sets)
	}

	second, err := svc.Route(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.sets != 1 {
		t.Errorf("expected cache hit on second call, got %d sets", cache.sets)
	}
	if string(first) != string(second) {
		t.Errorf("cached route differs: %s vs %s", first, second)
	}
}

func TestRouteService_Feature(t *testing.T) {
	svc := usecases.NewRouteService(domain.DefaultMapOptions(), newMockCache())

	f, err := svc.Feature(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.Line.Equal(domain.DefaultRoute().LineString()) {
		t.Errorf("unexpected line %v", f.Line)
	}
}

func TestRouteService_Summary(t *testing.T) {
	svc := usecases.NewRouteService(domain.DefaultMapOptions(), nil)
	s := svc.Summary(context.Background())

	if s.Points != 3 {
		t.Errorf("expected 3 points, got %d", s.Points)
	}
	// Boston → Worcester → Springfield, roughly 60 km + 72 km.
	if s.DistanceMeters < 120000 || s.DistanceMeters > 145000 {
		t.Errorf("unexpected distance %.0f m", s.DistanceMeters)
	}
	want := domain.Bounds{MinLat: 42.11, MinLng: -72.63, MaxLat: 42.35, MaxLng: -71.05}
	if s.Bounds != want {
		t.Errorf("expected bounds %+v, got %+v", want, s.Bounds)
	}
}

func TestRouteService_MarkersAreCopied(t *testing.T) {
	svc := usecases.NewRouteService(domain.DefaultMapOptions(), nil)
	ctx := context.Background()

	m := svc.Markers(ctx)
	m[0].PopupText = "changed"

	if got := svc.Markers(ctx)[0].PopupText; got != "Start location" {
		t.Errorf("expected markers to be immutable, got %q", got)
	}
}
