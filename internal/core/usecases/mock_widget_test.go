package usecases_test

import (
	"context"
	"errors"

	"github.com/samirrijal/routemap/internal/core/domain"
	"github.com/samirrijal/routemap/internal/core/ports"
)

// --- Mock MapWidget ---

type mockWidget struct {
	calls    []string
	opts     []domain.MapOptions
	sources  map[string]domain.RouteFeature
	layers   map[string]domain.LineStyle
	markers  []domain.MarkerAnnotation
	offsets  []int
	handlers map[domain.MapEventType][]ports.EventHandler

	center domain.GeoPoint
	zoom   float64

	createErr  error
	controlErr error
	markerErr  error
}

func newMockWidget() *mockWidget {
	return &mockWidget{
		sources:  make(map[string]domain.RouteFeature),
		layers:   make(map[string]domain.LineStyle),
		handlers: make(map[domain.MapEventType][]ports.EventHandler),
	}
}

func (m *mockWidget) Create(ctx context.Context, opts domain.MapOptions) error {
	m.calls = append(m.calls, "create")
	if m.createErr != nil {
		return m.createErr
	}
	m.opts = append(m.opts, opts)
	m.center, m.zoom = opts.Center, opts.Zoom
	return nil
}

func (m *mockWidget) AddNavigationControl(ctx context.Context, position string) error {
	m.calls = append(m.calls, "addControl:"+position)
	return m.controlErr
}

func (m *mockWidget) AddGeoJSONSource(ctx context.Context, id string, f domain.RouteFeature) error {
	m.calls = append(m.calls, "addSource:"+id)
	m.sources[id] = f
	return nil
}

func (m *mockWidget) AddLineLayer(ctx context.Context, id, source string, style domain.LineStyle) error {
	m.calls = append(m.calls, "addLayer:"+id)
	m.layers[id] = style
	return nil
}

func (m *mockWidget) AddMarker(ctx context.Context, mk domain.MarkerAnnotation, offset int) error {
	m.calls = append(m.calls, "addMarker:"+string(mk.Color))
	if m.markerErr != nil {
		return m.markerErr
	}
	m.markers = append(m.markers, mk)
	m.offsets = append(m.offsets, offset)
	return nil
}

func (m *mockWidget) On(event domain.MapEventType, h ports.EventHandler) {
	m.handlers[event] = append(m.handlers[event], h)
}

func (m *mockWidget) Center() domain.GeoPoint { return m.center }
func (m *mockWidget) Zoom() float64           { return m.zoom }

// emit runs the handlers subscribed to event, stopping at the first error.
func (m *mockWidget) emit(ctx context.Context, event domain.MapEventType) error {
	for _, h := range m.handlers[event] {
		if err := h(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockWidget) count(prefix string) int {
	n := 0
	for _, c := range m.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

// --- Mock ReadoutDisplay ---

type mockDisplay struct {
	shown []domain.ViewportState
}

func (d *mockDisplay) ShowReadout(ctx context.Context, s domain.ViewportState) error {
	d.shown = append(d.shown, s)
	return nil
}

func (d *mockDisplay) last() domain.ViewportState {
	if len(d.shown) == 0 {
		return domain.ViewportState{}
	}
	return d.shown[len(d.shown)-1]
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	sessionIDs []string
	states     []domain.ViewportState
	err        error
}

func (p *mockPublisher) PublishViewport(ctx context.Context, sessionID string, s domain.ViewportState) error {
	p.sessionIDs = append(p.sessionIDs, sessionID)
	p.states = append(p.states, s)
	return p.err
}

// --- Mock CacheService ---

var errCacheMiss = errors.New("cache miss")

type mockCache struct {
	data map[string][]byte
	gets int
	sets int
}

func newMockCache() *mockCache { return &mockCache{data: make(map[string][]byte)} }

func (c *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.gets++
	if v, ok := c.data[key]; ok {
		return v, nil
	}
	return nil, errCacheMiss
}

func (c *mockCache) Set(ctx context.Context, key string, value []byte, ttl int) error {
	c.sets++
	c.data[key] = value
	return nil
}

func (c *mockCache) Delete(ctx context.Context, key string) error {
	delete(c.data, key)
	return nil
}
